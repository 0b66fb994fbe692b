package config

import (
	"errors"
	"fmt"

	"github.com/jopadan/neolib/internal/engine/gapvec"
	"github.com/jopadan/neolib/internal/logging"
)

// ErrValidationFailed wraps every validation problem.
var ErrValidationFailed = errors.New("validation failed")

// Config is the complete runtime configuration.
type Config struct {
	Vector  gapvec.Config `toml:"vector" yaml:"vector"`
	Logging Logging       `toml:"logging" yaml:"logging"`
	App     App           `toml:"app" yaml:"app"`
	Metrics Metrics       `toml:"metrics" yaml:"metrics"`
}

// Logging configures the process logger.
type Logging struct {
	Level  string `toml:"level" yaml:"level"`
	Format string `toml:"format" yaml:"format"`
}

// App overrides application metadata. Empty fields keep the defaults.
type App struct {
	Name        string `toml:"name" yaml:"name"`
	Company     string `toml:"company" yaml:"company"`
	DataDir     string `toml:"data_dir" yaml:"data_dir"`
	SettingsDir string `toml:"settings_dir" yaml:"settings_dir"`
}

// Metrics toggles Prometheus instrumentation of allocators.
type Metrics struct {
	Enabled bool `toml:"enabled" yaml:"enabled"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Vector: gapvec.DefaultConfig(),
		Logging: Logging{
			Level:  "info",
			Format: "console",
		},
	}
}

// Validate checks every section.
func (c Config) Validate() error {
	var errs []error
	if c.Vector.GapSize <= 0 {
		errs = append(errs, fmt.Errorf("vector.gap_size must be positive, got %d", c.Vector.GapSize))
	}
	if c.Vector.NearnessFactor < 0 {
		errs = append(errs, fmt.Errorf("vector.nearness_factor must not be negative, got %d", c.Vector.NearnessFactor))
	}
	if _, err := c.LoggingConfig(); err != nil {
		errs = append(errs, fmt.Errorf("logging: %w", err))
	}
	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %w", ErrValidationFailed, errors.Join(errs...))
}

// LoggingConfig converts the logging section for logging.New.
func (c Config) LoggingConfig() (logging.Config, error) {
	level, err := logging.ParseSeverity(c.Logging.Level)
	if err != nil {
		return logging.Config{}, err
	}
	cfg := logging.Config{Level: level, Format: c.Logging.Format}
	if err := cfg.Validate(); err != nil {
		return logging.Config{}, err
	}
	return cfg, nil
}

// VectorOptions returns gap vector options carrying the vector section.
func VectorOptions[T any](c Config) []gapvec.Option[T] {
	return []gapvec.Option[T]{gapvec.WithConfig[T](c.Vector)}
}
