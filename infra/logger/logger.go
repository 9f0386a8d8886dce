package logger

import corelogger "github.com/kilianp07/autorange/core/logger"

// Logger mirrors the core logger interface.
type Logger = corelogger.Logger

// NopLogger implements Logger with no-op methods.
type NopLogger struct{}

func (NopLogger) Debugf(string, ...any)            {}
func (NopLogger) Debugw(string, corelogger.Fields) {}
func (NopLogger) Infof(string, ...any)             {}
func (NopLogger) Infow(string, corelogger.Fields)  {}
func (NopLogger) Warnf(string, ...any)             {}
func (NopLogger) Errorf(string, ...any)            {}

// New returns a Logger for the given component using the options set by
// Configure.
func New(component string) Logger {
	return NewZerologLogger(component)
}
