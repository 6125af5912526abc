// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"golang.org/x/text/language"

	"github.com/gedforge/gedforge/internal/issue"
	"github.com/gedforge/gedforge/internal/watch"
	"github.com/gedforge/gedforge/pkg/gederr"
	"github.com/gedforge/gedforge/pkg/gedline"
	"github.com/gedforge/gedforge/pkg/genealogy"
)

func newValidateCommand(app *App) *cobra.Command {
	var all, watchMode bool

	cmd := &cobra.Command{
		Use:   "validate <file.ged>",
		Short: "Check a document against the GEDCOM 7 structure rules",
		Long: `Parse a document and check every structure against the GEDCOM 7 rules.

By default the first violation is reported. With --all, or with strict
enabled in the configuration, every violation is reported.

The command exits with status 1 when the document has a violation. With
--watch the document is checked again each time it is saved, until the
command is interrupted.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if watchMode {
				return app.watchDocument(cmd.Context(), cmd.OutOrStdout(), args[0], all || app.cfg.Strict)
			}
			return app.validateDocument(cmd.OutOrStdout(), args[0], all || app.cfg.Strict)
		},
	}

	cmd.Flags().BoolVar(&all, "all", false, "report every violation instead of the first")
	cmd.Flags().BoolVarP(&watchMode, "watch", "w", false, "check the document again whenever it changes")

	return cmd
}

func newRenderCommand(app *App) *cobra.Command {
	var (
		output         string
		skipValidation bool
	)

	cmd := &cobra.Command{
		Use:   "render <file.ged>",
		Short: "Re-render a document in canonical line form",
		Long: `Parse and validate a document, then write it back in canonical form:
one line per structure, long text split with CONT, "@" escaped and the
header first, closed by the trailer.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := app.loadDocument(args[0])
			if err != nil {
				return err
			}
			if !skipValidation {
				if err := g.Validate(); err != nil {
					fmt.Fprintln(cmd.ErrOrStderr(), violationLine(gederr.Message(app.language(), err)))
					return &ExitError{Code: 1, Err: issue.ForDocumentError(err, "validate document", args[0])}
				}
			}

			out := g.Render()
			if output == "" {
				_, err := io.WriteString(cmd.OutOrStdout(), out)
				return err
			}
			if err := os.WriteFile(output, []byte(out), 0o644); err != nil {
				return issue.ForFileError(err, "write document", output)
			}
			app.logger.Info("rendered document", "file", output, "records", len(g.Records()))
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "write to a file instead of stdout")
	cmd.Flags().BoolVar(&skipValidation, "skip-validation", false, "render without checking the structure rules")

	return cmd
}

func (app *App) validateDocument(w io.Writer, path string, all bool) error {
	g, err := app.loadDocument(path)
	if err != nil {
		return err
	}
	lang := app.language()

	if all {
		errs := g.ValidateAll()
		if !errs.HasErrors() {
			fmt.Fprintln(w, validLine(path, len(g.Records())))
			return nil
		}
		for _, msg := range errs.Messages(lang) {
			fmt.Fprintln(w, violationLine(msg))
		}
		return &ExitError{Code: 1, Err: fmt.Errorf("%s: %d violation(s)", path, errs.ErrorCount())}
	}

	if err := g.Validate(); err != nil {
		fmt.Fprintln(w, violationLine(gederr.Message(lang, err)))
		return &ExitError{Code: 1, Err: issue.ForDocumentError(err, "validate document", path)}
	}
	fmt.Fprintln(w, validLine(path, len(g.Records())))
	return nil
}

// watchDocument validates path now and after every change until ctx is
// canceled. Violations are reported but do not stop the watch.
func (app *App) watchDocument(ctx context.Context, w io.Writer, path string, all bool) error {
	report := func() {
		err := app.validateDocument(w, path, all)
		var exitErr *ExitError
		if err != nil && !errors.As(err, &exitErr) {
			fmt.Fprintln(w, violationLine(formatErrorForDisplay(err, app.verbose)))
		}
	}
	report()

	watcher, err := watch.New(watch.Config{
		BaseDir:  filepath.Dir(path),
		Patterns: []string{filepath.Base(path)},
		Stderr:   app.stderr,
		OnChange: func(context.Context, []string) error {
			fmt.Fprintln(w, SubtitleStyle.Render("changed: "+path))
			report()
			return nil
		},
	})
	if err != nil {
		return err
	}
	app.logger.Info("watching document", "file", path)
	return watcher.Run(ctx)
}

// loadDocument reads and parses path into a new genealogy. Read and parse
// failures come back as actionable errors.
func (app *App) loadDocument(path string) (*genealogy.Genealogy, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, issue.ForFileError(err, "read document", path)
	}

	g := app.newGenealogy()
	if err := g.Load(string(data)); err != nil {
		fmt.Fprintln(app.stderr, violationLine(describe(app.language(), err)))
		return nil, &ExitError{Code: 1, Err: issue.ForDocumentError(err, "parse document", path)}
	}
	app.logger.Debug("loaded document", "file", path, "records", len(g.Records()))
	return g, nil
}

func (app *App) newGenealogy() *genealogy.Genealogy {
	opts := []genealogy.Option{genealogy.WithLogger(app.logger)}
	if app.cfg.XrefInitial != "" {
		opts = append(opts, genealogy.WithInitial(app.cfg.XrefInitial.String()))
	}
	return genealogy.New(opts...)
}

// describe renders err in lang, keeping the line number of parse failures.
func describe(lang language.Tag, err error) string {
	msg := gederr.Message(lang, err)
	var le *gedline.LineError
	if errors.As(err, &le) {
		return fmt.Sprintf("line %d: %s", le.Line, msg)
	}
	return msg
}

func validLine(path string, records int) string {
	return SuccessStyle.Render("✓") + fmt.Sprintf(" %s is valid (%d records)", path, records)
}

func violationLine(msg string) string {
	return ErrorStyle.Render("✗") + " " + msg
}
