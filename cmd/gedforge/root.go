// SPDX-License-Identifier: MPL-2.0

// Package cmd contains all CLI commands for gedforge.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/fang"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/text/language"

	"github.com/gedforge/gedforge/internal/config"
	"github.com/gedforge/gedforge/internal/issue"
)

var (
	// Version is the semantic version (set via -ldflags).
	Version = "dev"
	// Commit is the git commit hash (set via -ldflags).
	Commit = "unknown"
	// BuildDate is the build timestamp (set via -ldflags).
	BuildDate = "unknown"
)

type (
	// App wires CLI services and per-invocation state. Every command handler
	// receives the App that built its command tree.
	App struct {
		Config config.Provider
		stdout io.Writer
		stderr io.Writer

		// Set by the root flags.
		verbose bool
		cfgFile string
		lang    string

		// Set before any subcommand runs.
		cfg    *config.Config
		logger *log.Logger
	}

	// Dependencies defines the injection points for building an App. Nil
	// fields are replaced with production defaults by NewApp.
	Dependencies struct {
		Config config.Provider
		Stdout io.Writer
		Stderr io.Writer
	}
)

// NewApp creates an App with defaults for omitted dependencies.
func NewApp(deps Dependencies) *App {
	if deps.Stdout == nil {
		deps.Stdout = os.Stdout
	}
	if deps.Stderr == nil {
		deps.Stderr = os.Stderr
	}
	if deps.Config == nil {
		deps.Config = config.NewProvider()
	}
	return &App{
		Config: deps.Config,
		stdout: deps.Stdout,
		stderr: deps.Stderr,
		cfg:    config.DefaultConfig(),
		logger: log.New(io.Discard),
	}
}

// NewRootCommand builds the gedforge command tree bound to app.
func NewRootCommand(app *App) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "gedforge",
		Short: "Build, check and render GEDCOM 7 genealogy documents",
		Long: TitleStyle.Render("gedforge") + SubtitleStyle.Render(" - Build, check and render GEDCOM 7 genealogy documents") + `

gedforge checks documents against the GEDCOM 7 structure rules, renders
them in canonical line form and validates single date, time and age
payloads in the Gregorian, Julian, Hebrew and French Republican calendars.

` + SubtitleStyle.Render("Examples:") + `
  gedforge validate family.ged        Report the first violation
  gedforge validate --all family.ged  Report every violation
  gedforge date "ABT 1 JAN 1850"      Check a date payload
  gedforge name "Jim Smith" Smith     Compose a personal name
  gedforge explain DayOutOfRange      Explain an error kind
  gedforge config show                Show current configuration`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			app.initRootConfig(cmd.Context())
			return nil
		},
	}

	rootCmd.SetOut(app.stdout)
	rootCmd.SetErr(app.stderr)

	rootCmd.PersistentFlags().BoolVarP(&app.verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().StringVar(&app.cfgFile, "config", "", "config file (default is $HOME/.config/gedforge/config.cue)")
	rootCmd.PersistentFlags().StringVar(&app.lang, "lang", "", "language for messages (overrides the language setting)")

	rootCmd.AddCommand(
		newValidateCommand(app),
		newRenderCommand(app),
		newTreeCommand(app),
		newDateCommand(app),
		newExactCommand(app),
		newTimeCommand(app),
		newAgeCommand(app),
		newNameCommand(app),
		newPlaceCommand(app),
		newCoordCommand(app),
		newPhoneCommand(app),
		newCalendarsCommand(app),
		newInitCommand(app),
		newExplainCommand(app),
		newConfigCommand(app),
	)

	return rootCmd
}

// getVersionString returns a formatted version string for display.
func getVersionString() string {
	if Version == "dev" {
		return "dev (built from source)"
	}
	return fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, BuildDate)
}

// Execute builds the command tree and runs it. This is called by main.main().
func Execute() {
	app := NewApp(Dependencies{})
	if err := fang.Execute(
		context.Background(),
		NewRootCommand(app),
		fang.WithVersion(getVersionString()),
		fang.WithNotifySignal(os.Interrupt),
	); err != nil {
		var exitErr *ExitError
		if errors.As(err, &exitErr) {
			os.Exit(exitErr.Code)
		}
		os.Exit(1)
	}
}

// initRootConfig loads the configuration and builds the logger. A config
// that fails to load is reported as a warning and the defaults apply.
func (app *App) initRootConfig(ctx context.Context) {
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, err := app.Config.Load(ctx, config.LoadOptions{ConfigFilePath: app.cfgFile})
	if err != nil {
		fmt.Fprintln(app.stderr, WarningStyle.Render("Warning: ")+formatErrorForDisplay(err, app.verbose))
		cfg = config.DefaultConfig()
	}
	app.cfg = cfg

	if !app.verbose {
		app.verbose = cfg.UI.Verbose
	}

	level := cfg.LogLevel.Level()
	if app.verbose {
		level = log.DebugLevel
	}
	app.logger = log.NewWithOptions(app.stderr, log.Options{
		Prefix: "gedforge",
		Level:  level,
	})
	app.logger.Debug("configuration loaded", "calendar", cfg.DefaultCalendar, "language", cfg.Language, "strict", cfg.Strict)
}

// language returns the message language: the --lang flag, else the config.
func (app *App) language() language.Tag {
	if app.lang != "" {
		return config.LanguageTag(app.lang).Tag()
	}
	return app.cfg.Language.Tag()
}

// formatErrorForDisplay formats an error for user display.
// If the error is an ActionableError, it uses the Format method.
// In verbose mode, shows the full error chain.
func formatErrorForDisplay(err error, verboseMode bool) string {
	var ae *issue.ActionableError
	if errors.As(err, &ae) {
		return ae.Format(verboseMode)
	}
	return err.Error()
}
