// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/gedforge/gedforge/pkg/calendar"
)

func newCalendarsCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "calendars [name]",
		Short: "List the calendars dates may be written in",
		Long: `List the registered calendars with their month abbreviations.

Given a calendar name, show its months with day counts, its weekdays and
the range of dates it accepts.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			w := cmd.OutOrStdout()
			if len(args) == 0 {
				for _, def := range calendar.All() {
					listCalendar(w, def, app.cfg.DefaultCalendar.String())
				}
				return nil
			}

			def, err := calendar.Lookup(args[0])
			if err != nil {
				return fmt.Errorf("unknown calendar %q (valid: %s)", args[0], strings.Join(calendar.Names(), ", "))
			}
			describeCalendar(w, def)
			return nil
		},
	}
}

func listCalendar(w io.Writer, def calendar.Definition, defaultName string) {
	abbrs := make([]string, 0, def.MaxMonth())
	for _, m := range def.Months[1:] {
		abbrs = append(abbrs, m.Abbreviation)
	}
	name := TitleStyle.Render(def.Name)
	if def.Name == defaultName {
		name += SubtitleStyle.Render(" (default)")
	}
	fmt.Fprintf(w, "%s\n  %s\n", name, strings.Join(abbrs, " "))
}

func describeCalendar(w io.Writer, def calendar.Definition) {
	fmt.Fprintln(w, TitleStyle.Render(def.Name))
	fmt.Fprintln(w)

	fmt.Fprintln(w, SubtitleStyle.Render("Months:"))
	for _, m := range def.Months[1:] {
		fmt.Fprintf(w, "  %2d  %-4s  %-15s  %d days\n", m.Number, m.Abbreviation, m.Name, m.Days)
	}

	if len(def.Weekdays) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, SubtitleStyle.Render("Weekdays:"))
		for _, d := range def.Weekdays {
			fmt.Fprintf(w, "  %2d  %s\n", d.Number, d.Name)
		}
	}

	fmt.Fprintln(w)
	if def.Epoch != "" {
		fmt.Fprintf(w, "%s: %s\n", CmdStyle.Render("Epoch"), def.Epoch)
	}
	fmt.Fprintf(w, "%s: %s\n", CmdStyle.Render("Range"), calendarRange(def))
}

func calendarRange(def calendar.Definition) string {
	bound := func(b *calendar.YMD) string {
		if b == nil {
			return "open"
		}
		return b.String()
	}
	return bound(def.Start) + " to " + bound(def.End)
}
