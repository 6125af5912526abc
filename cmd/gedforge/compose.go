// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/gedforge/gedforge/pkg/payload"
)

func newNameCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "name <full name> [surname]",
		Short: "Compose a NAME payload with the surname set off by slashes",
		Example: `  gedforge name "Jim Smith" Smith     prints Jim /Smith/
  gedforge name Madonna               prints Madonna`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			surname := ""
			if len(args) == 2 {
				surname = args[1]
			}
			s, err := payload.Name(args[0], surname)
			if err != nil {
				return app.payloadError(cmd, "compose name", args[0], err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), s)
			return nil
		},
	}
}

func newPlaceCommand(app *App) *cobra.Command {
	var form bool

	cmd := &cobra.Command{
		Use:   "place <city> <county> <state> <country>",
		Short: "Compose a PLAC payload, smallest jurisdiction first",
		Long: `Compose a PLAC payload from four jurisdictions, smallest first. Pass ""
for a jurisdiction that is unknown; it keeps its position in the list.
With --form the arguments are jurisdiction names for a PLAC.FORM payload.`,
		Args: cobra.ExactArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			compose, op := payload.Place, "compose place"
			if form {
				compose, op = payload.Form, "compose place form"
			}
			s, err := compose(args[0], args[1], args[2], args[3])
			if err != nil {
				return app.payloadError(cmd, op, strings.Join(args, ", "), err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), s)
			return nil
		},
	}

	cmd.Flags().BoolVar(&form, "form", false, "compose a PLAC.FORM payload")

	return cmd
}

func newCoordCommand(app *App) *cobra.Command {
	var longitude bool

	cmd := &cobra.Command{
		Use:   "coord <degrees> <minutes> <seconds>",
		Short: "Compose a LATI or LONG payload from degrees, minutes and seconds",
		Long: `Compose a LATI payload, or a LONG payload with --longitude, from
degrees, minutes and seconds. Negative degrees are south or west; put "--"
before the arguments so the sign is not read as a flag.`,
		Example: `  gedforge coord 18 9 3.4                  prints N18.150944
  gedforge coord --longitude -- -168 9 3.4  prints W168.150944`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			deg, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid degrees %q: %w", args[0], err)
			}
			minutes, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("invalid minutes %q: %w", args[1], err)
			}
			seconds, err := strconv.ParseFloat(args[2], 64)
			if err != nil {
				return fmt.Errorf("invalid seconds %q: %w", args[2], err)
			}

			d := payload.DMS{Degrees: deg, Minutes: minutes, Seconds: seconds}
			compose, op := payload.Latitude, "compose latitude"
			if longitude {
				compose, op = payload.Longitude, "compose longitude"
			}
			s, err := compose(d)
			if err != nil {
				return app.payloadError(cmd, op, fmt.Sprintf("%d %d %v", deg, minutes, seconds), err)
			}
			app.logger.Debug("composed coordinate", "decimal", payload.ToDecimal(d, payload.DefaultPrecision))
			fmt.Fprintln(cmd.OutOrStdout(), s)
			return nil
		},
	}

	cmd.Flags().BoolVar(&longitude, "longitude", false, "compose a LONG payload instead of LATI")

	return cmd
}

func newPhoneCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "phone <country> <area> <prefix> <line>",
		Short:   "Compose a PHON payload in international notation",
		Example: `  gedforge phone 1 123 456 7890   prints +1 123 456 7890`,
		Args:    cobra.ExactArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			parts := make([]int, len(args))
			for i, a := range args {
				n, err := strconv.Atoi(a)
				if err != nil {
					return fmt.Errorf("invalid number %q: %w", a, err)
				}
				parts[i] = n
			}
			s, err := payload.Phone(parts[0], parts[1], parts[2], parts[3])
			if err != nil {
				return app.payloadError(cmd, "compose phone", fmt.Sprint(parts), err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), s)
			return nil
		},
	}
}
