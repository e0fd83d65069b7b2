package commands

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ngrash/go-temporal/temporal"
)

func resolveCmd() *cobra.Command {
	var zone, date, clock, disambiguation string
	cmd := &cobra.Command{
		Use:   "resolve",
		Short: "Find the instant of a wall-clock time in a time zone",
		Long: "Resolve lists every instant at which the time zone shows the given wall-clock time: none in a gap,\n" +
			"two in a fold. It then picks one according to the disambiguation policy.",
		Example: "  temporal resolve --zone America/New_York --date 2024-03-10 --time 02:30",
		RunE: func(cmd *cobra.Command, args []string) error {
			tz, err := timeZone(zone)
			if err != nil {
				return err
			}
			dt, err := parseDateTime(date, clock)
			if err != nil {
				return err
			}
			if disambiguation == "" {
				disambiguation = cfg.Disambiguation
			}
			policy, err := temporal.ParseDisambiguation(disambiguation)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			possible, err := tz.PossibleInstantsFor(dt)
			if err != nil {
				return err
			}
			for _, p := range possible {
				fmt.Fprintln(out, "possible:", p)
			}
			instant, err := temporal.GetInstantFor(tz, dt, policy)
			if err != nil {
				return err
			}
			z, err := temporal.ZonedDateTimeOf(instant, tz, nil)
			if err != nil {
				return err
			}
			s, err := describe(z)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "%s: %s\n", policy, s)
			return nil
		},
	}
	cmd.Flags().StringVar(&zone, "zone", "", "time zone (default from config)")
	cmd.Flags().StringVar(&date, "date", "", "date as YYYY-MM-DD")
	cmd.Flags().StringVar(&clock, "time", "00:00", "wall-clock time as HH:MM[:SS[.fraction]]")
	cmd.Flags().StringVar(&disambiguation, "disambiguation", "", "compatible, earlier, later or reject (default from config)")
	_ = cmd.MarkFlagRequired("date")
	return cmd
}

// parseDateTime reads the --date and --time flags.
func parseDateTime(date, clock string) (temporal.PlainDateTime, error) {
	var year, month, day int
	if _, err := fmt.Sscanf(date, "%d-%d-%d", &year, &month, &day); err != nil {
		return temporal.PlainDateTime{}, fmt.Errorf("date %q: %w", date, err)
	}
	var t temporal.PlainTime
	hms, frac, _ := strings.Cut(clock, ".")
	n, err := fmt.Sscanf(hms, "%d:%d:%d", &t.Hour, &t.Minute, &t.Second)
	if n < 2 {
		return temporal.PlainDateTime{}, fmt.Errorf("time %q: %w", clock, err)
	}
	if frac != "" {
		ns, err := strconv.Atoi((frac + "00000000")[:9])
		if len(frac) > 9 || err != nil || ns < 0 {
			return temporal.PlainDateTime{}, fmt.Errorf("time %q: invalid fraction", clock)
		}
		t.Millisecond, t.Microsecond, t.Nanosecond = ns/1_000_000, ns/1000%1000, ns%1000
	}
	return temporal.NewPlainDateTime(year, month, day, t, nil)
}
