// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gedforge/gedforge/internal/config"
	"github.com/gedforge/gedforge/internal/issue"
	"github.com/gedforge/gedforge/pkg/gederr"
)

func newExplainCommand(app *App) *cobra.Command {
	var style string

	cmd := &cobra.Command{
		Use:   "explain [kind]",
		Short: "Explain an error kind and how to fix it",
		Long: `Explain an error kind reported by validate, render or the payload
commands, with an example and the usual fixes.

Kind names ignore case, dashes and underscores, so "day-out-of-range"
finds DayOutOfRange. Without an argument every kind is listed.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			w := cmd.OutOrStdout()
			if len(args) == 0 {
				for _, k := range gederr.Kinds() {
					fmt.Fprintf(w, "%4d  %s\n", issue.KindId(k), CmdStyle.Render(k.String()))
				}
				return nil
			}

			kind, err := gederr.ParseKind(args[0])
			if err != nil {
				return issue.NewErrorContext().
					WithOperation("explain error kind").
					WithResource(args[0]).
					WithSuggestion("Run 'gedforge explain' to list the known kinds").
					Wrap(err).
					BuildError()
			}

			if style == "" {
				style = glamourStyle(app.cfg.UI.ColorScheme)
			}
			rendered, err := issue.ForKind(kind).Render(style)
			if err != nil {
				return fmt.Errorf("failed to render explanation: %w", err)
			}
			fmt.Fprint(w, rendered)
			return nil
		},
	}

	cmd.Flags().StringVar(&style, "style", "", "glamour style (auto, dark, light, notty); default from ui.color_scheme")

	return cmd
}

// glamourStyle maps the configured color scheme to a glamour standard style.
func glamourStyle(scheme config.ColorScheme) string {
	switch scheme {
	case config.ColorSchemeDark:
		return "dark"
	case config.ColorSchemeLight:
		return "light"
	default:
		return "auto"
	}
}
