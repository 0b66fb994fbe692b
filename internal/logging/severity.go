package logging

import (
	"fmt"
	"strings"

	"go.uber.org/zap/zapcore"
)

// Severity is the minimum importance of messages a logger emits.
type Severity int8

const (
	Debug Severity = iota
	Info
	Warning
	Error
)

var severityNames = [...]string{
	Debug:   "debug",
	Info:    "info",
	Warning: "warning",
	Error:   "error",
}

func (s Severity) String() string {
	if s < Debug || s > Error {
		return fmt.Sprintf("Severity(%d)", int8(s))
	}
	return severityNames[s]
}

// ParseSeverity converts a severity name (case-insensitive). "warn" is
// accepted as an alias for "warning".
func ParseSeverity(name string) (Severity, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "debug":
		return Debug, nil
	case "info", "":
		return Info, nil
	case "warning", "warn":
		return Warning, nil
	case "error":
		return Error, nil
	}
	return Info, fmt.Errorf("unknown severity %q", name)
}

// MarshalText implements encoding.TextMarshaler.
func (s Severity) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *Severity) UnmarshalText(text []byte) error {
	parsed, err := ParseSeverity(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

func (s Severity) zapLevel() zapcore.Level {
	switch s {
	case Debug:
		return zapcore.DebugLevel
	case Warning:
		return zapcore.WarnLevel
	case Error:
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}

func severityFromZap(l zapcore.Level) Severity {
	switch {
	case l <= zapcore.DebugLevel:
		return Debug
	case l == zapcore.InfoLevel:
		return Info
	case l == zapcore.WarnLevel:
		return Warning
	default:
		return Error
	}
}
