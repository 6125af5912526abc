// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gedforge/gedforge/internal/issue"
)

// result holds the output of one CLI invocation.
type result struct {
	stdout string
	stderr string
	err    error
}

// run executes the CLI with a config file holding cfg, so that the user's
// own configuration never leaks into a test.
func run(t *testing.T, cfg string, args ...string) result {
	t.Helper()

	cfgPath := filepath.Join(t.TempDir(), "config.cue")
	require.NoError(t, os.WriteFile(cfgPath, []byte(cfg), 0o644))

	var out, errOut bytes.Buffer
	app := NewApp(Dependencies{Stdout: &out, Stderr: &errOut})
	root := NewRootCommand(app)
	root.SetArgs(append([]string{"--config", cfgPath}, args...))

	err := root.ExecuteContext(context.Background())
	return result{stdout: out.String(), stderr: errOut.String(), err: err}
}

// writeFile writes content to name inside a fresh temp directory.
func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestGetVersionString(t *testing.T) {
	// Not parallel: subtests mutate package-level Version/Commit/BuildDate vars.

	t.Run("ldflags version takes priority", func(t *testing.T) {
		origVersion, origCommit, origBuildDate := Version, Commit, BuildDate
		t.Cleanup(func() {
			Version, Commit, BuildDate = origVersion, origCommit, origBuildDate
		})

		Version = "v1.2.3"
		Commit = "abc1234"
		BuildDate = "2025-06-15T10:00:00Z"

		assert.Equal(t, "v1.2.3 (commit: abc1234, built: 2025-06-15T10:00:00Z)", getVersionString())
	})

	t.Run("dev build", func(t *testing.T) {
		origVersion := Version
		t.Cleanup(func() { Version = origVersion })

		Version = "dev"
		assert.Equal(t, "dev (built from source)", getVersionString())
	})
}

func TestExitError(t *testing.T) {
	t.Parallel()

	cause := errors.New("boom")
	err := &ExitError{Code: 3, Err: cause}
	assert.Equal(t, "boom", err.Error())
	assert.ErrorIs(t, err, cause)

	assert.Equal(t, "exit status 2", (&ExitError{Code: 2}).Error())
}

func TestFormatErrorForDisplay(t *testing.T) {
	t.Parallel()

	plain := errors.New("plain failure")
	assert.Equal(t, "plain failure", formatErrorForDisplay(plain, false))

	ae := issue.NewErrorContext().
		WithOperation("read document").
		WithResource("a.ged").
		WithSuggestion("Verify the file path is correct").
		Wrap(plain).
		Build()
	out := formatErrorForDisplay(ae, false)
	assert.Contains(t, out, "failed to read document: a.ged: plain failure")
	assert.Contains(t, out, "Verify the file path is correct")
	assert.NotContains(t, out, "Error chain")
	assert.Contains(t, formatErrorForDisplay(ae, true), "Error chain")
}

func TestInvalidConfigFallsBackToDefaults(t *testing.T) {
	t.Parallel()

	r := run(t, `log_level: "loud"`, "config", "dump")
	require.NoError(t, r.err)
	assert.Contains(t, r.stderr, "Warning")
	assert.Contains(t, r.stdout, `log_level:        "info"`)
}

func TestMissingConfigFileWarns(t *testing.T) {
	t.Parallel()

	var out, errOut bytes.Buffer
	app := NewApp(Dependencies{Stdout: &out, Stderr: &errOut})
	root := NewRootCommand(app)
	root.SetArgs([]string{"--config", filepath.Join(t.TempDir(), "absent.cue"), "config", "dump"})

	require.NoError(t, root.ExecuteContext(context.Background()))
	assert.Contains(t, errOut.String(), "config file not found")
	assert.Contains(t, out.String(), `default_calendar: "GREGORIAN"`)
}

func TestVerboseLogsToStderr(t *testing.T) {
	t.Parallel()

	r := run(t, "", "--verbose", "age", "2y")
	require.NoError(t, r.err)
	assert.Equal(t, "2y\n", r.stdout)
	assert.Contains(t, r.stderr, "configuration loaded")
}

func TestVerboseFromConfig(t *testing.T) {
	t.Parallel()

	r := run(t, "ui: verbose: true\n", "age", "2y")
	require.NoError(t, r.err)
	assert.Contains(t, r.stderr, "configuration loaded")

	quiet := run(t, "", "age", "2y")
	require.NoError(t, quiet.err)
	assert.Empty(t, quiet.stderr)
}
