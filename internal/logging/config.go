package logging

import "fmt"

// Config holds logger settings.
type Config struct {
	// Level is the initial filter severity.
	Level Severity

	// Format is the encoder: "json" or "console".
	Format string
}

// DefaultConfig returns info level console output.
func DefaultConfig() Config {
	return Config{Level: Info, Format: "console"}
}

// Validate checks the configuration.
func (c Config) Validate() error {
	if c.Level < Debug || c.Level > Error {
		return fmt.Errorf("invalid level %v", c.Level)
	}
	switch c.Format {
	case "json", "console":
	default:
		return fmt.Errorf("invalid format %q: must be json or console", c.Format)
	}
	return nil
}
