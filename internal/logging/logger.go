package logging

import (
	"errors"
	"io"
	"os"
	"syscall"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger wraps zap with a filter severity that can change at runtime.
type Logger struct {
	zap   *zap.Logger
	level zap.AtomicLevel
}

// New creates a logger writing to stderr.
func New(cfg Config) (*Logger, error) {
	return NewWithWriter(cfg, os.Stderr)
}

// NewWithWriter creates a logger writing to w.
func NewWithWriter(cfg Config, w io.Writer) (*Logger, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	level := zap.NewAtomicLevelAt(cfg.Level.zapLevel())
	core := zapcore.NewCore(newEncoder(cfg.Format), zapcore.AddSync(w), level)

	return &Logger{
		zap:   zap.New(core, zap.AddCaller(), zap.AddCallerSkip(1)),
		level: level,
	}, nil
}

// NewFromCore wraps an existing core. Filtering applies before the core.
func NewFromCore(core zapcore.Core, severity Severity) *Logger {
	level := zap.NewAtomicLevelAt(severity.zapLevel())
	return &Logger{
		zap:   zap.New(&filteredCore{Core: core, level: level}),
		level: level,
	}
}

// Nop returns a logger that discards everything.
func Nop() *Logger {
	return &Logger{zap: zap.NewNop(), level: zap.NewAtomicLevelAt(zapcore.InfoLevel)}
}

func newEncoder(format string) zapcore.Encoder {
	encCfg := zap.NewProductionEncoderConfig()
	encCfg.TimeKey = "ts"
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder

	if format == "console" {
		encCfg.EncodeLevel = zapcore.CapitalLevelEncoder
		return zapcore.NewConsoleEncoder(encCfg)
	}
	return zapcore.NewJSONEncoder(encCfg)
}

// Debug logs at debug severity.
func (l *Logger) Debug(msg string, fields ...zap.Field) {
	l.zap.Debug(msg, fields...)
}

// Info logs at info severity.
func (l *Logger) Info(msg string, fields ...zap.Field) {
	l.zap.Info(msg, fields...)
}

// Warn logs at warning severity.
func (l *Logger) Warn(msg string, fields ...zap.Field) {
	l.zap.Warn(msg, fields...)
}

// Error logs at error severity.
func (l *Logger) Error(msg string, fields ...zap.Field) {
	l.zap.Error(msg, fields...)
}

// Log logs at the given severity.
func (l *Logger) Log(s Severity, msg string, fields ...zap.Field) {
	l.zap.Log(s.zapLevel(), msg, fields...)
}

// FilterSeverity returns the minimum severity currently emitted.
func (l *Logger) FilterSeverity() Severity {
	return severityFromZap(l.level.Level())
}

// SetFilterSeverity changes the minimum severity. Child loggers created
// with With or Named share the filter.
func (l *Logger) SetFilterSeverity(s Severity) {
	l.level.SetLevel(s.zapLevel())
}

// Enabled reports whether messages at s would be emitted.
func (l *Logger) Enabled(s Severity) bool {
	return l.zap.Core().Enabled(s.zapLevel())
}

// With returns a child logger with fields added to every entry.
func (l *Logger) With(fields ...zap.Field) *Logger {
	return &Logger{zap: l.zap.With(fields...), level: l.level}
}

// Named returns a child logger with name appended.
func (l *Logger) Named(name string) *Logger {
	return &Logger{zap: l.zap.Named(name), level: l.level}
}

// Sync flushes buffered entries. Sync errors from terminals are ignored.
func (l *Logger) Sync() error {
	err := l.zap.Sync()
	if err != nil && isStdoutSyncError(err) {
		return nil
	}
	return err
}

// Underlying returns the zap logger for packages that take one directly.
// The caller skip set for the wrapper methods is removed.
func (l *Logger) Underlying() *zap.Logger {
	return l.zap.WithOptions(zap.AddCallerSkip(-1))
}

func isStdoutSyncError(err error) bool {
	return errors.Is(err, syscall.EINVAL) || errors.Is(err, syscall.ENOTTY)
}

// filteredCore puts an atomic level in front of a core that has its own.
type filteredCore struct {
	zapcore.Core
	level zap.AtomicLevel
}

func (c *filteredCore) Enabled(l zapcore.Level) bool {
	return c.level.Enabled(l) && c.Core.Enabled(l)
}

func (c *filteredCore) With(fields []zapcore.Field) zapcore.Core {
	return &filteredCore{Core: c.Core.With(fields), level: c.level}
}

func (c *filteredCore) Check(ent zapcore.Entry, ce *zapcore.CheckedEntry) *zapcore.CheckedEntry {
	if !c.level.Enabled(ent.Level) {
		return ce
	}
	return c.Core.Check(ent, ce)
}
