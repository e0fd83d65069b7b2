package commands

import (
	"fmt"
	"log/slog"
	"math/big"
	"os"

	"github.com/spf13/cobra"

	"github.com/ngrash/go-temporal/internal/config"
	"github.com/ngrash/go-temporal/temporal"
	"github.com/ngrash/go-temporal/zoneinfo"
)

var (
	configPath  string
	logLevel    string
	zoneinfoDir string

	cfg    config.Config
	logger *slog.Logger
	loader *zoneinfo.Loader
)

func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "temporal",
		Short:        "Calendar and time zone aware date arithmetic",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			if cfg, err = config.Load(configPath); err != nil {
				return err
			}
			if cmd.Flags().Changed("log-level") {
				cfg.LogLevel = logLevel
			}
			if cmd.Flags().Changed("zoneinfo-dir") {
				cfg.ZoneinfoDir = zoneinfoDir
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			level, _ := cfg.ParsedLogLevel()
			logger = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
			loader = zoneinfo.NewDirLoader(cfg.ZoneinfoDir, zoneinfo.WithLogger(logger))
			logger.Debug("configured", "config", configPath, "zoneinfo_dir", cfg.ZoneinfoDir, "time_zone", cfg.TimeZone)
			return nil
		},
	}

	root.PersistentFlags().StringVar(&configPath, "config", os.Getenv("TEMPORAL_CONFIG"), "YAML configuration file")
	root.PersistentFlags().StringVar(&logLevel, "log-level", "", "debug, info, warn or error (default from config)")
	root.PersistentFlags().StringVar(&zoneinfoDir, "zoneinfo-dir", "", "directory of TZif files (default from config)")

	root.AddCommand(addCmd(), sinceCmd(), untilCmd(), resolveCmd(), zoneCmd())
	return root
}

// timeZone resolves a --zone flag, falling back to the configured time zone.
func timeZone(id string) (temporal.TimeZone, error) {
	if id == "" {
		id = cfg.TimeZone
	}
	return loader.TimeZone(id)
}

// zonedDateTime parses epoch nanoseconds and attaches the time zone id.
func zonedDateTime(epochNs, id string) (temporal.ZonedDateTime, error) {
	ns, ok := new(big.Int).SetString(epochNs, 10)
	if !ok {
		return temporal.ZonedDateTime{}, fmt.Errorf("%q is not a number of nanoseconds", epochNs)
	}
	tz, err := timeZone(id)
	if err != nil {
		return temporal.ZonedDateTime{}, err
	}
	return temporal.NewZonedDateTime(ns, tz, nil)
}

// describe formats z as wall-clock time, offset, zone and epoch nanoseconds.
func describe(z temporal.ZonedDateTime) (string, error) {
	dt, err := z.PlainDateTime()
	if err != nil {
		return "", err
	}
	offset, err := z.OffsetNanoseconds()
	if err != nil {
		return "", err
	}
	fixed, err := temporal.FixedOffsetTimeZone(offset)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%v%s[%s] (%v ns)", dt, fixed.ID(), z.TimeZone().ID(), z.EpochNanoseconds()), nil
}
