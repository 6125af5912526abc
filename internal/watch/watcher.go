// SPDX-License-Identifier: MPL-2.0

// Package watch re-checks genealogy documents when they change on disk.
//
// A Watcher monitors the directory tree under BaseDir and calls OnChange once
// per burst of edits: events arriving within the debounce window are merged
// into one call carrying every changed path.
package watch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/fsnotify/fsnotify"
	"golang.org/x/exp/slices"
)

const defaultDebounce = 300 * time.Millisecond

// defaultIgnores are never reported: VCS metadata, editor swap and backup
// files, and OS metadata.
var defaultIgnores = []string{
	"**/.git/**",
	"**/*.swp",
	"**/*.swo",
	"**/*~",
	"**/*.bak",
	"**/.DS_Store",
}

// ErrInvalidPattern is returned when a watch or ignore pattern is not a valid
// doublestar glob.
var ErrInvalidPattern = errors.New("invalid glob pattern")

type (
	// Config holds the parameters for a Watcher.
	Config struct {
		// BaseDir is the watched root. Empty means the working directory.
		BaseDir string
		// Patterns select the paths, relative to BaseDir, that trigger
		// OnChange, e.g. "*.ged". No patterns selects every path.
		Patterns []string
		// Ignore adds to the default ignore patterns.
		Ignore []string
		// Debounce is the quiet period before OnChange fires. Zero or
		// negative values use the default.
		Debounce time.Duration
		// OnChange receives the changed paths relative to BaseDir, sorted.
		OnChange func(ctx context.Context, changed []string) error
		// Stderr receives watcher diagnostics. nil means os.Stderr.
		Stderr io.Writer
	}

	// InvalidPatternError names the pattern that failed to compile.
	InvalidPatternError struct {
		Label   string
		Pattern string
		Err     error
	}

	// Watcher fires a debounced callback when matching documents change.
	// Run may be called once.
	Watcher struct {
		cfg      Config
		fsw      *fsnotify.Watcher
		ignores  []string
		stderr   io.Writer
		debounce time.Duration
		baseDir  string
		started  atomic.Bool
	}
)

// Error implements the error interface for InvalidPatternError.
func (e *InvalidPatternError) Error() string {
	return fmt.Sprintf("watch: invalid %s pattern %q: %v", e.Label, e.Pattern, e.Err)
}

// Unwrap returns ErrInvalidPattern for errors.Is() compatibility.
func (e *InvalidPatternError) Unwrap() error { return ErrInvalidPattern }

// New checks the patterns, resolves BaseDir and registers every directory
// under it that is not ignored.
func New(cfg Config) (*Watcher, error) {
	if err := checkPatterns("watch", cfg.Patterns); err != nil {
		return nil, err
	}
	if err := checkPatterns("ignore", cfg.Ignore); err != nil {
		return nil, err
	}

	base := cfg.BaseDir
	if base == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("watch: determine working directory: %w", err)
		}
		base = wd
	}
	absBase, err := filepath.Abs(base)
	if err != nil {
		return nil, fmt.Errorf("watch: resolve base directory: %w", err)
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("watch: create fsnotify watcher: %w", err)
	}

	w := &Watcher{
		cfg:      cfg,
		fsw:      fsw,
		ignores:  append(slices.Clone(defaultIgnores), cfg.Ignore...),
		stderr:   cfg.Stderr,
		debounce: cfg.Debounce,
		baseDir:  absBase,
	}
	if w.stderr == nil {
		w.stderr = os.Stderr
	}
	if w.debounce <= 0 {
		w.debounce = defaultDebounce
	}

	if err := w.addTree(); err != nil {
		fsw.Close() //nolint:errcheck // best-effort cleanup
		return nil, err
	}
	return w, nil
}

// Run processes events until ctx is canceled, then returns nil. A watcher
// that breaks (e.g. the inotify limit is reached) returns an error. Calls to
// OnChange never overlap; changes arriving during a call are delivered by
// the next one.
func (w *Watcher) Run(ctx context.Context) error {
	if !w.started.CompareAndSwap(false, true) {
		return errors.New("watch: Run called more than once")
	}
	defer func() {
		if err := w.fsw.Close(); err != nil {
			fmt.Fprintf(w.stderr, "watch: close fsnotify: %v\n", err)
		}
	}()

	b := &batch{pending: make(map[string]struct{})}
	defer b.stop()

	var fire func()
	fire = func() {
		if ctx.Err() != nil {
			return
		}
		if !b.running.CompareAndSwap(false, true) {
			b.schedule(w.debounce, fire)
			return
		}
		defer b.running.Store(false)

		changed := b.drain()
		if len(changed) == 0 || w.cfg.OnChange == nil {
			return
		}
		if err := w.cfg.OnChange(ctx, changed); err != nil {
			fmt.Fprintf(w.stderr, "watch: %v\n", err)
		}
	}

	for {
		select {
		case <-ctx.Done():
			return nil

		case evt, ok := <-w.fsw.Events:
			if !ok {
				return errors.New("watch: fsnotify event channel closed")
			}
			rel, err := filepath.Rel(w.baseDir, evt.Name)
			if err != nil {
				rel = evt.Name
			}
			if w.ignored(rel) {
				continue
			}
			if evt.Has(fsnotify.Create) {
				w.addIfDir(evt.Name, rel)
			}
			if !w.selected(rel) {
				continue
			}
			b.add(rel)
			b.schedule(w.debounce, fire)

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return errors.New("watch: fsnotify error channel closed")
			}
			if isFatalFsnotifyError(err) {
				return fmt.Errorf("watch: fatal fsnotify error: %w", err)
			}
			fmt.Fprintf(w.stderr, "watch: fsnotify error: %v\n", err)
		}
	}
}

// batch collects changed paths between two callbacks.
type batch struct {
	mu      sync.Mutex
	pending map[string]struct{}
	timer   *time.Timer
	running atomic.Bool
}

func (b *batch) add(rel string) {
	b.mu.Lock()
	b.pending[rel] = struct{}{}
	b.mu.Unlock()
}

// schedule (re)starts the debounce timer.
func (b *batch) schedule(d time.Duration, fn func()) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.timer == nil {
		b.timer = time.AfterFunc(d, fn)
		return
	}
	b.timer.Reset(d)
}

func (b *batch) drain() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]string, 0, len(b.pending))
	for rel := range b.pending {
		out = append(out, rel)
	}
	clear(b.pending)
	slices.Sort(out)
	return out
}

func (b *batch) stop() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.timer != nil {
		b.timer.Stop()
	}
}

func (w *Watcher) addTree() error {
	err := filepath.WalkDir(w.baseDir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			fmt.Fprintf(w.stderr, "watch: skipping %q: %v\n", path, err)
			return nil //nolint:nilerr // unreadable directories are skipped
		}
		if !d.IsDir() {
			return nil
		}
		rel, relErr := filepath.Rel(w.baseDir, path)
		if relErr != nil {
			return nil //nolint:nilerr // paths outside the root are skipped
		}
		if rel != "." && (w.ignored(rel) || w.ignored(rel+"/")) {
			return filepath.SkipDir
		}
		if addErr := w.fsw.Add(path); addErr != nil {
			return fmt.Errorf("watch: add directory %q: %w", path, addErr)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("watch: walk %s: %w", w.baseDir, err)
	}
	return nil
}

// addIfDir extends the watch to directories created after New.
func (w *Watcher) addIfDir(path, rel string) {
	info, err := os.Stat(path)
	if err != nil || !info.IsDir() || w.ignored(rel+"/") {
		return
	}
	if err := w.fsw.Add(path); err != nil {
		fmt.Fprintf(w.stderr, "watch: add directory %q: %v\n", path, err)
	}
}

func (w *Watcher) ignored(rel string) bool {
	return matchAny(w.ignores, rel)
}

func (w *Watcher) selected(rel string) bool {
	return len(w.cfg.Patterns) == 0 || matchAny(w.cfg.Patterns, rel)
}

// DefaultIgnores returns a copy of the built-in ignore patterns.
func DefaultIgnores() []string {
	return slices.Clone(defaultIgnores)
}

func matchAny(patterns []string, rel string) bool {
	name := filepath.ToSlash(rel)
	for _, pat := range patterns {
		if ok, err := doublestar.Match(pat, name); err == nil && ok {
			return true
		}
	}
	return false
}

func checkPatterns(label string, patterns []string) error {
	for _, pat := range patterns {
		if !doublestar.ValidatePattern(pat) {
			return &InvalidPatternError{Label: label, Pattern: pat, Err: doublestar.ErrBadPattern}
		}
	}
	return nil
}
