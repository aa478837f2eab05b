// Package logging wraps zerolog behind the small structured-field API the
// rest of bondetl depends on, mirroring the teacher's logging adapter
// shape (Options, With, component tagging) over a different backend.
package logging

import (
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
)

// Options configures a Logger.
type Options struct {
	Writer    io.Writer
	Level     string
	Component string
}

// Logger exposes leveled, structured logging with persistent fields
// carried forward via With.
type Logger struct {
	logger zerolog.Logger
}

// New creates a Logger from the supplied options.
func New(opts Options) *Logger {
	writer := opts.Writer
	if writer == nil {
		writer = os.Stdout
	}

	level := parseLevel(opts.Level)
	base := zerolog.New(writer).Level(level).With().Timestamp()
	if opts.Component != "" {
		base = base.Str("component", opts.Component)
	}

	return &Logger{logger: base.Logger()}
}

func parseLevel(level string) zerolog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return zerolog.DebugLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	case "":
		return zerolog.InfoLevel
	default:
		parsed, err := zerolog.ParseLevel(strings.ToLower(level))
		if err != nil {
			return zerolog.InfoLevel
		}
		return parsed
	}
}

// With derives a child Logger carrying the supplied key/value pairs on
// every subsequent entry. fields must alternate string keys and values.
func (l *Logger) With(fields ...interface{}) *Logger {
	if l == nil {
		return nil
	}
	ctx := l.logger.With()
	for i := 0; i+1 < len(fields); i += 2 {
		key, ok := fields[i].(string)
		if !ok {
			continue
		}
		ctx = ctx.Interface(key, fields[i+1])
	}
	return &Logger{logger: ctx.Logger()}
}

// Debug emits a debug-level entry.
func (l *Logger) Debug(msg string, fields ...interface{}) { l.log(zerolog.DebugLevel, msg, fields...) }

// Info emits an info-level entry.
func (l *Logger) Info(msg string, fields ...interface{}) { l.log(zerolog.InfoLevel, msg, fields...) }

// Warn emits a warn-level entry.
func (l *Logger) Warn(msg string, fields ...interface{}) { l.log(zerolog.WarnLevel, msg, fields...) }

// Error emits an error-level entry.
func (l *Logger) Error(msg string, fields ...interface{}) { l.log(zerolog.ErrorLevel, msg, fields...) }

func (l *Logger) log(level zerolog.Level, msg string, fields ...interface{}) {
	if l == nil {
		return
	}
	event := l.logger.WithLevel(level)
	for i := 0; i+1 < len(fields); i += 2 {
		key, ok := fields[i].(string)
		if !ok {
			continue
		}
		event = event.Interface(key, fields[i+1])
	}
	event.Msg(msg)
}
