// SPDX-License-Identifier: MPL-2.0

package watch

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"slices"
	"testing"
	"time"
)

// startWatcher runs a watcher on dir that sends each callback's paths to
// the returned channel. The watcher stops when the test ends.
func startWatcher(t *testing.T, dir string, patterns, ignore []string) <-chan []string {
	t.Helper()

	calls := make(chan []string, 10)
	w, err := New(Config{
		BaseDir:  dir,
		Patterns: patterns,
		Ignore:   ignore,
		Debounce: 50 * time.Millisecond,
		Stderr:   &bytes.Buffer{},
		OnChange: func(_ context.Context, changed []string) error {
			calls <- changed
			return nil
		},
	})
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() { errCh <- w.Run(ctx) }()
	t.Cleanup(func() {
		cancel()
		if err := <-errCh; err != nil {
			t.Errorf("Run() error: %v", err)
		}
	})
	return calls
}

func write(t *testing.T, dir, name string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte("0 HEAD\n"), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
}

func TestWatcherCoalescesBurst(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	calls := startWatcher(t, dir, []string{"*.ged"}, nil)

	for _, name := range []string{"a.ged", "b.ged", "c.ged"} {
		write(t, dir, name)
		time.Sleep(5 * time.Millisecond)
	}

	var changed []string
	select {
	case changed = <-calls:
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for callback")
	}
	for _, want := range []string{"a.ged", "b.ged", "c.ged"} {
		if !slices.Contains(changed, want) {
			t.Errorf("changed = %v, missing %q", changed, want)
		}
	}
	if !slices.IsSorted(changed) {
		t.Errorf("changed = %v, want sorted", changed)
	}
}

func TestWatcherFiltersPaths(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	calls := startWatcher(t, dir, []string{"*.ged"}, []string{"draft-*"})

	write(t, dir, "notes.txt")
	write(t, dir, "draft-1.ged")
	write(t, dir, "family.ged.bak")
	time.Sleep(20 * time.Millisecond)
	write(t, dir, "family.ged")

	select {
	case changed := <-calls:
		if !slices.Equal(changed, []string{"family.ged"}) {
			t.Errorf("changed = %v, want only family.ged", changed)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for callback")
	}
}

func TestWatcherNewSubdirectory(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	calls := startWatcher(t, dir, []string{"**/*.ged"}, nil)

	sub := filepath.Join(dir, "branch")
	if err := os.Mkdir(sub, 0o755); err != nil {
		t.Fatal(err)
	}
	time.Sleep(100 * time.Millisecond)
	write(t, sub, "tree.ged")

	deadline := time.After(5 * time.Second)
	for {
		select {
		case changed := <-calls:
			if slices.Contains(changed, filepath.Join("branch", "tree.ged")) {
				return
			}
		case <-deadline:
			t.Fatal("no callback for a file in a new directory")
		}
	}
}

func TestNewRejectsInvalidPattern(t *testing.T) {
	t.Parallel()

	for _, cfg := range []Config{
		{BaseDir: t.TempDir(), Patterns: []string{"[unclosed"}},
		{BaseDir: t.TempDir(), Ignore: []string{"{a,b"}},
	} {
		_, err := New(cfg)
		if !errors.Is(err, ErrInvalidPattern) {
			t.Errorf("New(%+v) error = %v, want ErrInvalidPattern", cfg, err)
		}
		var pe *InvalidPatternError
		if errors.As(err, &pe) && pe.Pattern == "" {
			t.Error("InvalidPatternError should name the pattern")
		}
	}
}

func TestRunTwice(t *testing.T) {
	t.Parallel()

	w, err := New(Config{BaseDir: t.TempDir(), Stderr: &bytes.Buffer{}})
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := w.Run(ctx); err != nil {
		t.Errorf("Run() after cancel = %v, want nil", err)
	}
	if err := w.Run(ctx); err == nil {
		t.Error("second Run should fail")
	}
}

func TestDefaultIgnores(t *testing.T) {
	t.Parallel()

	got := DefaultIgnores()
	got[0] = "changed"
	if DefaultIgnores()[0] == "changed" {
		t.Error("DefaultIgnores must return a copy")
	}

	for _, rel := range []string{".git/HEAD", "family.ged.bak", "family.ged~", "sub/.family.ged.swp"} {
		if !matchAny(defaultIgnores, rel) {
			t.Errorf("%q should be ignored by default", rel)
		}
	}
	if matchAny(defaultIgnores, "family.ged") {
		t.Error("documents must not be ignored")
	}
}
