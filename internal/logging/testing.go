package logging

import (
	"strings"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

// TestLogger captures entries in memory for assertions.
type TestLogger struct {
	*Logger
	observed *observer.ObservedLogs
}

// NewTestLogger returns a logger at debug severity backed by an observer.
func NewTestLogger() *TestLogger {
	core, observed := observer.New(zapcore.DebugLevel)
	return &TestLogger{
		Logger:   NewFromCore(core, Debug),
		observed: observed,
	}
}

// All returns every captured entry.
func (t *TestLogger) All() []observer.LoggedEntry {
	return t.observed.All()
}

// FilterMessage returns entries with the exact message.
func (t *TestLogger) FilterMessage(msg string) *observer.ObservedLogs {
	return t.observed.FilterMessage(msg)
}

// Reset discards captured entries.
func (t *TestLogger) Reset() {
	t.observed.TakeAll()
}

// Zap returns a *zap.Logger writing into the same observer.
func (t *TestLogger) Zap() *zap.Logger {
	return t.Underlying()
}

// AssertLogged fails tb unless an entry at s contains msgContains.
func (t *TestLogger) AssertLogged(tb testing.TB, s Severity, msgContains string) {
	tb.Helper()
	for _, entry := range t.observed.All() {
		if entry.Level == s.zapLevel() && strings.Contains(entry.Message, msgContains) {
			return
		}
	}
	tb.Errorf("expected log at %v containing %q, got %d entries", s, msgContains, t.observed.Len())
}

// AssertNotLogged fails tb if an entry at s contains msgContains.
func (t *TestLogger) AssertNotLogged(tb testing.TB, s Severity, msgContains string) {
	tb.Helper()
	for _, entry := range t.observed.All() {
		if entry.Level == s.zapLevel() && strings.Contains(entry.Message, msgContains) {
			tb.Errorf("unexpected log at %v containing %q", s, msgContains)
		}
	}
}
