// Package config defines the analysis configuration and how it is loaded.
//
// Conventions:
// - Provide New(ctx) to build a Config with defaults.
// - Loading layers defaults, an optional YAML file and OPENINGS_ env vars.
// - Errors are wrapped with this package's sentinels.
package config

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/okian/openings/internal/domain/deviation"
	"github.com/okian/openings/internal/domain/stats"
)

// Accepted values.
var (
	logLevels  = []string{"debug", "info", "warn", "error"}
	logFormats = []string{"text", "json"}
	formats    = []string{"text", "json", "yaml"}
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// LogFormat selects the log handler: text or json.
	LogFormat string `koanf:"log_format"`

	// Dataset is the path of the openings CSV.
	Dataset string `koanf:"dataset"`

	// Format selects the report renderer: text, json or yaml.
	Format string `koanf:"format"`

	// MetricsFile, when set, receives the run's metrics in text exposition
	// format.
	MetricsFile string `koanf:"metrics_file"`

	// CorrectFisher compares each correlation with its own transform instead
	// of the inherited self-comparison.
	CorrectFisher bool `koanf:"correct_fisher"`

	// ConsistentTopZ standardizes the black top quartile with its own mean.
	ConsistentTopZ bool `koanf:"consistent_top_z"`

	// SDConvention is inherited or observed.
	SDConvention string `koanf:"sd_convention"`
}

// New creates a Config with defaults.
func New(_ context.Context) *Config {
	return &Config{
		LogLevel:     "info",
		LogFormat:    "text",
		Dataset:      "openings.csv",
		Format:       "text",
		SDConvention: stats.ConventionInherited.String(),
	}
}

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Dataset) == "" {
		return fmt.Errorf("%w: dataset must not be empty", ErrInvalidConfig)
	}
	if !slices.Contains(formats, strings.ToLower(c.Format)) {
		return fmt.Errorf("%w: format %q, want one of %v", ErrInvalidConfig, c.Format, formats)
	}
	if !slices.Contains(logFormats, strings.ToLower(c.LogFormat)) {
		return fmt.Errorf("%w: log_format %q, want one of %v", ErrInvalidConfig, c.LogFormat, logFormats)
	}
	if !slices.Contains(logLevels, strings.ToLower(c.LogLevel)) {
		return fmt.Errorf("%w: log_level %q, want one of %v", ErrInvalidConfig, c.LogLevel, logLevels)
	}
	if _, err := stats.ParseConvention(c.SDConvention); err != nil {
		return fmt.Errorf("%w: sd_convention: %w", ErrInvalidConfig, err)
	}
	return nil
}

// FisherMode maps CorrectFisher onto the statistical mode.
func (c *Config) FisherMode() stats.FisherMode {
	if c.CorrectFisher {
		return stats.FisherCorrected
	}
	return stats.FisherInherited
}

// TopZMode maps ConsistentTopZ onto the deviation mode.
func (c *Config) TopZMode() deviation.Mode {
	if c.ConsistentTopZ {
		return deviation.TopZConsistent
	}
	return deviation.TopZInherited
}

// Convention returns the parsed SD convention. Call Validate first.
func (c *Config) Convention() stats.Convention {
	conv, err := stats.ParseConvention(c.SDConvention)
	if err != nil {
		return stats.ConventionInherited
	}
	return conv
}
