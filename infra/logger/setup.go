package logger

import (
	"io"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Options configures the loggers returned by New.
type Options struct {
	Level string
	// File also writes JSON lines to a rotated log file.
	File       string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// Configure applies o to every logger created afterwards. The returned closer
// releases the log file.
func Configure(o Options) (io.Closer, error) {
	var w io.Writer = stderrWriter()
	var closer io.Closer = nopCloser{}
	if o.File != "" {
		if dir := filepath.Dir(o.File); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, err
			}
		}
		lj := &lumberjack.Logger{
			Filename:   o.File,
			MaxSize:    o.MaxSizeMB,
			MaxBackups: o.MaxBackups,
			MaxAge:     o.MaxAgeDays,
		}
		w = zerolog.MultiLevelWriter(w, lj)
		closer = lj
	}
	mu.Lock()
	sharedW, sharedLv = w, o.Level
	mu.Unlock()
	return closer, nil
}

// Reset restores the environment based defaults.
func Reset() {
	mu.Lock()
	sharedW, sharedLv = nil, ""
	mu.Unlock()
}
