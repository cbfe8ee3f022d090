// Package logger wraps slog with the small surface the services need:
// leveled key/value logging to stdout plus a fatal exit helper.
package logger

import (
	"log/slog"
	"os"
)

// Logger is the application-wide structured logger.
type Logger struct {
	*slog.Logger
}

// New returns a Logger writing text records to stdout at the given slog
// level.
func New(level int) *Logger {
	handler := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.Level(level),
	})

	return &Logger{Logger: slog.New(handler)}
}

// Fatal logs at error level and terminates the process.
func (l *Logger) Fatal(msg string, args ...any) {
	l.Logger.Error(msg, args...)
	os.Exit(1)
}
