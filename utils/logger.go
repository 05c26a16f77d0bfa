package utils

import (
	"io"
	"log/slog"
	"strings"
	"time"
)

// Logger provides structured, leveled logging throughout the application.
// Every call takes a message followed by key/value pairs.
type Logger struct {
	l *slog.Logger
}

// NewLogger creates a Logger writing key=value lines to w at the given level
// ("debug", "info", "warn" or "error").
func NewLogger(w io.Writer, level string) *Logger {
	h := slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: ParseLevel(level),
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if len(groups) == 0 && a.Key == slog.TimeKey {
				return slog.String(slog.TimeKey, a.Value.Time().UTC().Format("2006-01-02T15:04:05"))
			}
			return a
		},
	})
	return &Logger{l: slog.New(h)}
}

// NewDiscardLogger returns a Logger that drops everything, for tests.
func NewDiscardLogger() *Logger {
	return NewLogger(io.Discard, "error")
}

// ParseLevel maps a level name to a slog.Level, defaulting to info.
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// With returns a Logger that adds args to every record.
func (l *Logger) With(args ...any) *Logger {
	return &Logger{l: l.l.With(args...)}
}

func (l *Logger) Info(msg string, args ...any)  { l.l.Info(msg, args...) }
func (l *Logger) Warn(msg string, args ...any)  { l.l.Warn(msg, args...) }
func (l *Logger) Error(msg string, args ...any) { l.l.Error(msg, args...) }
func (l *Logger) Debug(msg string, args ...any) { l.l.Debug(msg, args...) }

// Stopwatch measures the duration of one pipeline step.
type Stopwatch struct {
	start time.Time
}

func StartStopwatch() Stopwatch {
	return Stopwatch{start: time.Now()}
}

// Millis is the elapsed time in whole milliseconds, logged as duration_ms.
func (s Stopwatch) Millis() int64 {
	return time.Since(s.start).Milliseconds()
}
