package logger

import corelogger "github.com/kilianp07/opendhw/core/logger"

// Logger mirrors the core logger interface.
type Logger = corelogger.Logger

// NopLogger discards every message.
type NopLogger = corelogger.NopLogger

// New returns a zerolog backed Logger tagged with the component name.
func New(component string) Logger {
	return NewZerologLogger(component)
}
