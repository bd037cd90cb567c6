package config

import (
	"io"

	"github.com/charmbracelet/log"
)

// Logger provides structured logging for installer operations.
// This interface allows callers to plug in their own logging implementation.
type Logger interface {
	// Debug logs debug-level messages with optional key-value pairs.
	Debug(msg string, keysAndValues ...interface{})

	// Info logs info-level messages with optional key-value pairs.
	Info(msg string, keysAndValues ...interface{})

	// Warn logs warning-level messages with optional key-value pairs.
	Warn(msg string, keysAndValues ...interface{})

	// Error logs error-level messages with optional key-value pairs.
	Error(msg string, keysAndValues ...interface{})

	// With returns a Logger that attaches the key-value pairs to every entry.
	With(keysAndValues ...interface{}) Logger
}

// noopLogger is a Logger implementation that does nothing.
// This is the default logger used when none is provided.
type noopLogger struct{}

func (n *noopLogger) Debug(msg string, keysAndValues ...interface{}) {}
func (n *noopLogger) Info(msg string, keysAndValues ...interface{})  {}
func (n *noopLogger) Warn(msg string, keysAndValues ...interface{})  {}
func (n *noopLogger) Error(msg string, keysAndValues ...interface{}) {}
func (n *noopLogger) With(keysAndValues ...interface{}) Logger       { return n }

// NopLogger returns the default no-op logger.
func NopLogger() Logger {
	return &noopLogger{}
}

// charmLogger adapts a charmbracelet/log logger to Logger.
type charmLogger struct {
	l *log.Logger
}

// NewLogger returns a Logger writing to w. Debug entries and timestamps are
// only emitted when verbose is set; otherwise warnings and errors are shown.
func NewLogger(w io.Writer, verbose bool) Logger {
	level := log.WarnLevel
	if verbose {
		level = log.DebugLevel
	}

	return &charmLogger{
		l: log.NewWithOptions(w, log.Options{
			Level:           level,
			Prefix:          "themeinstall",
			ReportTimestamp: verbose,
		}),
	}
}

func (c *charmLogger) Debug(msg string, keysAndValues ...interface{}) {
	c.l.Debug(msg, keysAndValues...)
}

func (c *charmLogger) Info(msg string, keysAndValues ...interface{}) {
	c.l.Info(msg, keysAndValues...)
}

func (c *charmLogger) Warn(msg string, keysAndValues ...interface{}) {
	c.l.Warn(msg, keysAndValues...)
}

func (c *charmLogger) Error(msg string, keysAndValues ...interface{}) {
	c.l.Error(msg, keysAndValues...)
}

func (c *charmLogger) With(keysAndValues ...interface{}) Logger {
	return &charmLogger{l: c.l.With(keysAndValues...)}
}
