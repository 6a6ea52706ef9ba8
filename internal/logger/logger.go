// Package logger provides structured logging for langsalary runs.
package logger

import (
	"errors"
	"io"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
)

// Logger wraps zerolog for structured logging.
type Logger struct {
	zerolog.Logger
	file *os.File
}

type options struct {
	consoleLevel zerolog.Level
}

// Option configures New
type Option func(*options)

// WithConsoleLevel drops console entries below level. The log file still
// receives everything at the logger's own level.
func WithConsoleLevel(level string) Option {
	return func(o *options) {
		if lvl, err := zerolog.ParseLevel(level); err == nil && level != "" {
			o.consoleLevel = lvl
		}
	}
}

// New creates a logger writing to w at the given level.
// When logFile is set, entries are also appended to that file.
func New(level string, logFile string, w io.Writer, opts ...Option) (*Logger, error) {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		lvl = zerolog.InfoLevel
	}

	o := options{consoleLevel: zerolog.TraceLevel}
	for _, opt := range opts {
		opt(&o)
	}

	// tables go to stdout, so the console writer defaults to stderr
	if w == nil {
		w = os.Stderr
	}

	var console zerolog.LevelWriter = zerolog.LevelWriterAdapter{
		Writer: zerolog.ConsoleWriter{Out: w, TimeFormat: "15:04:05"},
	}
	if o.consoleLevel > lvl {
		console = &zerolog.FilteredLevelWriter{Writer: console, Level: o.consoleLevel}
	}
	writers := []io.Writer{console}

	var file *os.File
	if logFile != "" {
		if err := os.MkdirAll(filepath.Dir(logFile), 0755); err != nil {
			return nil, err
		}

		file, err = os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return nil, err
		}
		writers = append(writers, file)
	}

	multi := zerolog.MultiLevelWriter(writers...)

	logger := zerolog.New(multi).
		Level(lvl).
		With().
		Timestamp().
		Logger()

	return &Logger{Logger: logger, file: file}, nil
}

// Close flushes and closes the log file, if one was opened.
func (l *Logger) Close() error {
	if l == nil || l.file == nil {
		return nil
	}
	err := errors.Join(l.file.Sync(), l.file.Close())
	l.file = nil
	return err
}

// Nop returns a logger that discards everything.
func Nop() *Logger {
	return &Logger{Logger: zerolog.Nop()}
}

// Global is the process-wide logger.
var Global *Logger

// Init initializes the global logger.
func Init(level string, logFile string, opts ...Option) error {
	l, err := New(level, logFile, nil, opts...)
	if err != nil {
		return err
	}
	Global = l
	return nil
}

// Get returns the global logger, or a no-op logger before Init.
func Get() *Logger {
	if Global == nil {
		return Nop()
	}
	return Global
}
