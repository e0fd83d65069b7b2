package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ngrash/go-temporal/temporal"
)

func addCmd() *cobra.Command {
	var (
		at, zone, overflow string
		fields             temporal.DurationFields
	)
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a duration to a zoned date-time",
		Example: "  temporal add --at 1580450400000000000 --zone Europe/Zurich --months 1\n" +
			"  temporal add --at 0 --days -1 --hours 5",
		RunE: func(cmd *cobra.Command, args []string) error {
			z, err := zonedDateTime(at, zone)
			if err != nil {
				return err
			}
			if overflow == "" {
				overflow = cfg.Overflow
			}
			o, err := temporal.ParseOverflow(overflow)
			if err != nil {
				return err
			}
			d, err := temporal.NewDuration(fields)
			if err != nil {
				return err
			}
			result, err := z.Add(d, temporal.AddOptions{Overflow: o})
			if err != nil {
				return err
			}
			logger.Debug("added", "start", z, "duration", d, "result", result)
			s, err := describe(result)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), s)
			return nil
		},
	}
	cmd.Flags().StringVar(&at, "at", "0", "start instant in epoch nanoseconds")
	cmd.Flags().StringVar(&zone, "zone", "", "time zone (default from config)")
	cmd.Flags().StringVar(&overflow, "overflow", "", "constrain or reject (default from config)")
	durationFlags(cmd, &fields)
	return cmd
}

// durationFlags registers one flag per duration field. All non-zero values must share a sign.
func durationFlags(cmd *cobra.Command, f *temporal.DurationFields) {
	for _, field := range []struct {
		name string
		p    *int64
	}{
		{"years", &f.Years},
		{"months", &f.Months},
		{"weeks", &f.Weeks},
		{"days", &f.Days},
		{"hours", &f.Hours},
		{"minutes", &f.Minutes},
		{"seconds", &f.Seconds},
		{"milliseconds", &f.Milliseconds},
		{"microseconds", &f.Microseconds},
		{"nanoseconds", &f.Nanoseconds},
	} {
		cmd.Flags().Int64Var(field.p, field.name, 0, field.name+" of the duration")
	}
}
