// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"io"
	"io/fs"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/gedforge/gedforge/internal/issue"
	"github.com/gedforge/gedforge/pkg/genealogy"
	"github.com/gedforge/gedforge/pkg/structure"
	"github.com/gedforge/gedforge/pkg/temporal"
	"github.com/gedforge/gedforge/pkg/xref"
)

func newInitCommand(app *App) *cobra.Command {
	var (
		submitter string
		force     bool
	)

	cmd := &cobra.Command{
		Use:   "init [file.ged]",
		Short: "Write a starter document",
		Long: `Write a starter document: a header naming gedforge as the source, the
creation date and the configured language, and a submitter record with a
random UID.

Without a file argument the document is printed to stdout.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := app.starterDocument(submitter, time.Now().UTC())
			if err != nil {
				return err
			}

			if len(args) == 0 {
				_, err := io.WriteString(cmd.OutOrStdout(), doc)
				return err
			}

			path := args[0]
			if _, err := os.Stat(path); err == nil && !force {
				return issue.ForFileError(fs.ErrExist, "create document", path)
			}
			if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
				return issue.ForFileError(err, "create document", path)
			}
			fmt.Fprintln(cmd.OutOrStdout(), SuccessStyle.Render("Created ")+path)
			return nil
		},
	}

	cmd.Flags().StringVar(&submitter, "submitter", "Unknown", "submitter name")
	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing file")

	return cmd
}

// starterDocument builds, validates and renders the document written by
// init.
func (app *App) starterDocument(submitter string, now time.Time) (string, error) {
	g := app.newGenealogy()

	name, err := g.Node("NAME", submitter)
	if err != nil {
		return "", err
	}
	subm, err := g.Record(xref.Submitter, "", name, genealogy.NewUID())
	if err != nil {
		return "", err
	}

	created, err := temporal.FormatDateExact(now.Year(), int(now.Month()), now.Day())
	if err != nil {
		return "", err
	}
	clock, err := temporal.FormatTime(now.Hour(), now.Minute(), float64(now.Second()), true)
	if err != nil {
		return "", err
	}

	extra := make([]*structure.Node, 0, 4)
	for _, n := range []struct {
		key     string
		payload any
	}{
		{key: "HEAD-SOUR", payload: "GEDFORGE"},
		{key: "HEAD-DATE", payload: created},
		{key: "SUBM", payload: subm.ID()},
		{key: "HEAD-LANG", payload: app.cfg.Language.String()},
	} {
		node, err := g.Node(n.key, n.payload)
		if err != nil {
			return "", err
		}
		extra = append(extra, node)
	}
	timeNode, err := g.Node("TIME", clock)
	if err != nil {
		return "", err
	}
	extra[1].Add(timeNode)

	if err := g.StageHeader(g.NewHeader(extra...)); err != nil {
		return "", err
	}
	if err := g.Stage(subm); err != nil {
		return "", err
	}
	if err := g.Validate(); err != nil {
		return "", fmt.Errorf("starter document is invalid: %w", err)
	}

	app.logger.Debug("built starter document", "submitter", subm.ID().Fullname())
	return g.Render(), nil
}
