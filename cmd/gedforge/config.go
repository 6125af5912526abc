// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/gedforge/gedforge/internal/config"
)

// newConfigCommand creates the `gedforge config` command tree.
func newConfigCommand(app *App) *cobra.Command {
	cfgCmd := &cobra.Command{
		Use:   "config",
		Short: "Manage gedforge configuration",
		Long: `Manage gedforge configuration.

Configuration is stored in:
  - Linux: ~/.config/gedforge/config.cue
  - macOS: ~/Library/Application Support/gedforge/config.cue
  - Windows: %APPDATA%\gedforge\config.cue

A config.cue in the current directory is used when none of those exists.
Every key can be overridden with a GEDFORGE_ environment variable, e.g.
GEDFORGE_LOG_LEVEL=debug or GEDFORGE_UI_COLOR_SCHEME=light.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	var format string
	showCmd := &cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.showConfig(cmd.OutOrStdout(), format)
		},
	}
	showCmd.Flags().StringVarP(&format, "format", "f", "text", "output format (text, toml, cue)")
	cfgCmd.AddCommand(showCmd)

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "dump",
		Short: "Output raw configuration as CUE",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := io.WriteString(cmd.OutOrStdout(), config.GenerateCUE(app.cfg))
			return err
		},
	})

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Show configuration file path",
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := app.Config.Path(config.LoadOptions{ConfigFilePath: app.cfgFile})
			if err != nil {
				return err
			}
			if path == "" {
				if path, err = config.ConfigPath(""); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", path, SubtitleStyle.Render("(not found, using defaults)"))
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		},
	})

	var dir string
	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Create default configuration file",
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := config.CreateDefaultConfig(dir)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), SuccessStyle.Render("Configuration file: ")+path)
			return nil
		},
	}
	initCmd.Flags().StringVar(&dir, "dir", "", "directory to create config.cue in (default is the platform config directory)")
	cfgCmd.AddCommand(initCmd)

	return cfgCmd
}

func (app *App) showConfig(w io.Writer, format string) error {
	cfg := app.cfg

	switch format {
	case "toml":
		out, err := config.GenerateTOML(cfg)
		if err != nil {
			return err
		}
		_, err = io.WriteString(w, out)
		return err
	case "cue":
		_, err := io.WriteString(w, config.GenerateCUE(cfg))
		return err
	case "text":
	default:
		return fmt.Errorf("unsupported format %q (valid: text, toml, cue)", format)
	}

	keyStyle := CmdStyle
	valueStyle := SuccessStyle

	fmt.Fprintln(w, TitleStyle.Render("Current Configuration"))
	fmt.Fprintln(w)

	path, err := app.Config.Path(config.LoadOptions{ConfigFilePath: app.cfgFile})
	if err != nil || path == "" {
		fmt.Fprintf(w, "%s: %s\n", keyStyle.Render("Config file"), SubtitleStyle.Render("(using defaults)"))
	} else {
		fmt.Fprintf(w, "%s: %s\n", keyStyle.Render("Config file"), path)
	}
	fmt.Fprintln(w)

	for _, kv := range [][2]string{
		{"default_calendar", cfg.DefaultCalendar.String()},
		{"show_calendar", fmt.Sprint(cfg.ShowCalendar)},
		{"language", cfg.Language.String()},
		{"log_level", cfg.LogLevel.String()},
		{"strict", fmt.Sprint(cfg.Strict)},
		{"xref_initial", cfg.XrefInitial.String()},
	} {
		fmt.Fprintf(w, "%s: %s\n", keyStyle.Render(kv[0]), valueStyle.Render(kv[1]))
	}

	fmt.Fprintln(w)
	fmt.Fprintf(w, "%s:\n", keyStyle.Render("ui"))
	fmt.Fprintf(w, "  color_scheme: %s\n", valueStyle.Render(cfg.UI.ColorScheme.String()))
	fmt.Fprintf(w, "  verbose: %s\n", valueStyle.Render(fmt.Sprint(cfg.UI.Verbose)))

	return nil
}
