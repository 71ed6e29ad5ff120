package logger

import (
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// ZerologLogger implements Logger using rs/zerolog.
type ZerologLogger struct {
	log zerolog.Logger
}

var (
	mu       sync.RWMutex
	sharedW  io.Writer
	sharedLv string
)

// NewZerologLogger writes to stderr so generated series can be piped from
// stdout. APP_ENV=dev switches to the console writer and LOG_LEVEL sets the
// minimum level (info by default). Configure overrides both.
func NewZerologLogger(component string) Logger {
	mu.RLock()
	w, level := sharedW, sharedLv
	mu.RUnlock()
	if w == nil {
		w = stderrWriter()
	}
	if level == "" {
		level = os.Getenv("LOG_LEVEL")
	}
	return NewZerologLoggerWithWriter(w, component, level)
}

func stderrWriter() io.Writer {
	if strings.ToLower(os.Getenv("APP_ENV")) == "dev" {
		return zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}
	}
	return os.Stderr
}

// NewZerologLoggerWithWriter builds a logger on w. An empty or unknown level
// falls back to info.
func NewZerologLoggerWithWriter(w io.Writer, component, level string) Logger {
	lvl, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}
	z := zerolog.New(w).Level(lvl).With().Timestamp().Str("component", component).Logger()
	return &ZerologLogger{log: z}
}

func (l *ZerologLogger) Debugf(format string, args ...any) {
	l.log.Debug().Msgf(format, args...)
}

func (l *ZerologLogger) Debugw(msg string, fields map[string]any) {
	ev := l.log.Debug()
	for k, v := range fields {
		ev = ev.Interface(k, v)
	}
	ev.Msg(msg)
}

func (l *ZerologLogger) Infof(format string, args ...any) {
	l.log.Info().Msgf(format, args...)
}

func (l *ZerologLogger) Warnf(format string, args ...any) {
	l.log.Warn().Msgf(format, args...)
}

func (l *ZerologLogger) Errorf(format string, args ...any) {
	l.log.Error().Msgf(format, args...)
}
