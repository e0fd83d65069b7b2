package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ngrash/go-temporal/temporal"
)

func sinceCmd() *cobra.Command {
	return differenceCmd("since", "Duration from --to until --from", temporal.ZonedDateTime.Since)
}

func untilCmd() *cobra.Command {
	return differenceCmd("until", "Duration from --from until --to", temporal.ZonedDateTime.Until)
}

type differenceFunc func(temporal.ZonedDateTime, temporal.ZonedDateTime, temporal.DifferenceOptions) (temporal.Duration, error)

func differenceCmd(use, short string, difference differenceFunc) *cobra.Command {
	var from, to, zone, largestUnit string
	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		RunE: func(cmd *cobra.Command, args []string) error {
			one, err := zonedDateTime(from, zone)
			if err != nil {
				return err
			}
			two, err := zonedDateTime(to, zone)
			if err != nil {
				return err
			}
			if largestUnit == "" {
				largestUnit = cfg.LargestUnit
			}
			unit, err := temporal.ParseUnit(largestUnit)
			if err != nil {
				return err
			}
			d, err := difference(one, two, temporal.DifferenceOptions{LargestUnit: unit})
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), d)
			return nil
		},
	}
	cmd.Flags().StringVar(&from, "from", "0", "first instant in epoch nanoseconds")
	cmd.Flags().StringVar(&to, "to", "0", "second instant in epoch nanoseconds")
	cmd.Flags().StringVar(&zone, "zone", "", "time zone (default from config)")
	cmd.Flags().StringVar(&largestUnit, "largest-unit", "", "largest unit of the result (default from config)")
	return cmd
}
