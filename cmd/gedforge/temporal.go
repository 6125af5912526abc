// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/gedforge/gedforge/internal/issue"
	"github.com/gedforge/gedforge/pkg/calendar"
	"github.com/gedforge/gedforge/pkg/temporal"
)

// dateKeywords open or join the dates of a Date payload.
var dateKeywords = map[string]bool{
	"ABT": true, "CAL": true, "EST": true, "BEF": true, "AFT": true,
	"BET": true, "AND": true, "FROM": true, "TO": true,
}

func newDateCommand(app *App) *cobra.Command {
	var (
		cal    string
		period bool
	)

	cmd := &cobra.Command{
		Use:   "date <payload>",
		Short: "Check a Date payload and print its canonical form",
		Long: `Check a Date payload such as "ABT 1 JAN 1850", "BET 1800 AND 1810" or
"FROM JULIAN 1700 TO 1710" and print it in canonical form.

Dates that name no calendar are read in the configured default calendar,
which --calendar overrides. With --period only FROM and TO forms are
accepted.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if cal == "" {
				cal = app.cfg.DefaultCalendar.String()
			}
			def, err := calendar.Lookup(cal)
			if err != nil {
				return fmt.Errorf("invalid --calendar: %w", err)
			}

			payload := withCalendar(args[0], def.Name)
			parse := temporal.ParseDate
			if period {
				parse = temporal.ParseDatePeriod
			}
			d, err := parse(payload)
			if err != nil {
				return app.payloadError(cmd, "check date", args[0], err)
			}
			if app.cfg.ShowCalendar {
				for _, v := range []*temporal.DateValue{d.First, d.Second} {
					if v != nil {
						v.ShowCalendar = true
					}
				}
			}
			app.logger.Debug("parsed date", "qualifier", d.Qualifier, "calendar", def.Name)
			fmt.Fprintln(cmd.OutOrStdout(), d.String())
			return nil
		},
	}

	cmd.Flags().StringVarP(&cal, "calendar", "c", "", "calendar for dates that name none (default from config)")
	cmd.Flags().BoolVar(&period, "period", false, "accept only FROM/TO date periods")

	return cmd
}

func newExactCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "exact <payload>",
		Short: "Check an exact Gregorian date such as \"2 OCT 2019\"",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := temporal.ParseDateExact(args[0])
			if err != nil {
				return app.payloadError(cmd, "check exact date", args[0], err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), d.String())
			return nil
		},
	}
}

func newTimeCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "time <payload>",
		Short: "Check a time such as \"13:45:00.5Z\"",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := temporal.ParseTime(args[0])
			if err != nil {
				return app.payloadError(cmd, "check time", args[0], err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), t.String())
			return nil
		},
	}
}

func newAgeCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "age <payload>",
		Short: "Check an age such as \"> 2y 1m 1w 1d\"",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := temporal.ParseAge(args[0])
			if err != nil {
				return app.payloadError(cmd, "check age", args[0], err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), a.String())
			return nil
		},
	}
}

// payloadError prints the localized violation and returns an exit error
// carrying the kind's remedies.
func (app *App) payloadError(cmd *cobra.Command, operation, payload string, err error) error {
	fmt.Fprintln(cmd.OutOrStdout(), violationLine(describe(app.language(), err)))
	return &ExitError{Code: 1, Err: issue.ForDocumentError(err, operation, fmt.Sprintf("%q", payload))}
}

// withCalendar names cal before every date in payload that names no
// calendar. The Gregorian calendar is the parser's default and is left
// implicit.
func withCalendar(payload, cal string) string {
	if cal == calendar.GregorianName || strings.TrimSpace(payload) == "" {
		return payload
	}

	words := strings.Split(payload, " ")
	out := make([]string, 0, len(words)+2)
	atDate := true
	for _, w := range words {
		if dateKeywords[strings.ToUpper(w)] {
			out = append(out, w)
			atDate = true
			continue
		}
		if atDate && !calendar.IsCalendar(w) {
			out = append(out, cal)
		}
		atDate = false
		out = append(out, w)
	}
	return strings.Join(out, " ")
}
