// Package config defines process configuration and its loading hooks.
//
// Conventions:
// - Provide New() to build a Config with defaults.
// - Load(ctx) layers a YAML file and environment variables over New().
// - External errors are wrapped with this package's sentinels.
package config

import (
	"fmt"
	"runtime"
	"strings"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// ReferenceDataPath points at a YAML reference tables file. Empty uses
	// the built-in tables.
	ReferenceDataPath string `koanf:"reference_data_path"`

	// BatchWorkers bounds concurrent items in a batch run.
	BatchWorkers int `koanf:"batch_workers"`

	// DefaultServiceCount is assumed for physicians without a known count.
	DefaultServiceCount int `koanf:"default_service_count"`

	// RandomSeed seeds the market outlook projection.
	RandomSeed int64 `koanf:"random_seed"`

	// MetricsTextfile, when set, receives a Prometheus text export on exit.
	MetricsTextfile string `koanf:"metrics_textfile"`

	// MetricsNamespace prefixes every metric name.
	MetricsNamespace string `koanf:"metrics_namespace"`
}

// New returns a Config populated with defaults.
func New() *Config {
	return &Config{
		LogLevel:            "info",
		BatchWorkers:        runtime.NumCPU(),
		DefaultServiceCount: 4,
		RandomSeed:          42,
		MetricsNamespace:    "payerlens",
	}
}

// Validate reports the first invalid field.
func (c *Config) Validate() error {
	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("%w: log_level %q", ErrInvalidConfig, c.LogLevel)
	}
	if c.BatchWorkers < 1 {
		return fmt.Errorf("%w: batch_workers must be >= 1, got %d", ErrInvalidConfig, c.BatchWorkers)
	}
	if c.DefaultServiceCount < 0 {
		return fmt.Errorf("%w: default_service_count must be >= 0, got %d", ErrInvalidConfig, c.DefaultServiceCount)
	}
	if strings.TrimSpace(c.MetricsNamespace) == "" {
		return fmt.Errorf("%w: metrics_namespace must not be empty", ErrInvalidConfig)
	}
	return nil
}
