// Package config holds the settings of the temporal command.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/ngrash/go-temporal/temporal"
	"github.com/ngrash/go-temporal/zoneinfo"
)

// Config is the YAML configuration of the temporal command. Command-line flags override its values.
type Config struct {
	ZoneinfoDir    string `yaml:"zoneinfo_dir"`
	TimeZone       string `yaml:"time_zone"`
	Disambiguation string `yaml:"disambiguation"`
	Overflow       string `yaml:"overflow"`
	LargestUnit    string `yaml:"largest_unit"`
	LogLevel       string `yaml:"log_level"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		ZoneinfoDir:    zoneinfo.DefaultDir,
		TimeZone:       "UTC",
		Disambiguation: "compatible",
		Overflow:       "constrain",
		LargestUnit:    "auto",
		LogLevel:       "info",
	}
}

// Load reads the YAML file at path over the defaults and applies environment overrides. An empty path skips
// the file.
func Load(path string) (Config, error) {
	c := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return c, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, &c); err != nil {
			return c, fmt.Errorf("parse config %s: %w", path, err)
		}
	}
	c.loadEnv()
	return c, c.Validate()
}

// loadEnv overrides values from TEMPORAL_* variables. ZONEINFO is honored like the Go runtime does.
func (c *Config) loadEnv() {
	if v := os.Getenv("ZONEINFO"); v != "" {
		c.ZoneinfoDir = v
	}
	for name, field := range map[string]*string{
		"TEMPORAL_ZONEINFO_DIR": &c.ZoneinfoDir,
		"TEMPORAL_TIME_ZONE":    &c.TimeZone,
		"TEMPORAL_LOG_LEVEL":    &c.LogLevel,
	} {
		if v := os.Getenv(name); v != "" {
			*field = v
		}
	}
}

// Validate checks every value and reports all problems at once.
func (c Config) Validate() error {
	var errs []error
	if c.ZoneinfoDir == "" {
		errs = append(errs, errors.New("zoneinfo_dir: must not be empty"))
	}
	if c.TimeZone == "" {
		errs = append(errs, errors.New("time_zone: must not be empty"))
	}
	if _, err := c.ParsedDisambiguation(); err != nil {
		errs = append(errs, fmt.Errorf("disambiguation: %w", err))
	}
	if _, err := c.ParsedOverflow(); err != nil {
		errs = append(errs, fmt.Errorf("overflow: %w", err))
	}
	if _, err := c.ParsedLargestUnit(); err != nil {
		errs = append(errs, fmt.Errorf("largest_unit: %w", err))
	}
	if _, err := c.ParsedLogLevel(); err != nil {
		errs = append(errs, fmt.Errorf("log_level: %w", err))
	}
	return errors.Join(errs...)
}

// ParsedDisambiguation returns the disambiguation policy named by the configuration.
func (c Config) ParsedDisambiguation() (temporal.Disambiguation, error) {
	return temporal.ParseDisambiguation(c.Disambiguation)
}

// ParsedOverflow returns the overflow policy named by the configuration.
func (c Config) ParsedOverflow() (temporal.Overflow, error) {
	return temporal.ParseOverflow(c.Overflow)
}

// ParsedLargestUnit returns the default largest unit of differences.
func (c Config) ParsedLargestUnit() (temporal.Unit, error) {
	return temporal.ParseUnit(c.LargestUnit)
}

// ParsedLogLevel accepts the slog level names debug, info, warn and error.
func (c Config) ParsedLogLevel() (slog.Level, error) {
	var level slog.Level
	err := level.UnmarshalText([]byte(c.LogLevel))
	return level, err
}
