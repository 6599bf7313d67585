package utils

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/lmittmann/tint"
)

// Logger provides leveled, printf-style logging throughout the application.
// Output goes to stderr so stdout stays reserved for the analysis report.
type Logger struct {
	l *slog.Logger
}

// NewLogger creates an info-level Logger writing colored output to stderr.
func NewLogger() *Logger {
	return NewLoggerWithLevel(os.Stderr, slog.LevelInfo)
}

// NewLoggerWithLevel creates a Logger writing to w at the given minimum level.
// Color is only enabled when w is stderr.
func NewLoggerWithLevel(w io.Writer, level slog.Level) *Logger {
	h := tint.NewHandler(w, &tint.Options{
		Level:      level,
		TimeFormat: "2006-01-02 15:04:05",
		NoColor:    w != os.Stderr,
	})
	return &Logger{l: slog.New(h)}
}

// Enabled reports whether messages at level would be emitted.
func (l *Logger) Enabled(level slog.Level) bool {
	return l.l.Enabled(context.Background(), level)
}

func (l *Logger) Info(format string, args ...any) {
	l.l.Info(fmt.Sprintf(format, args...))
}

func (l *Logger) Warn(format string, args ...any) {
	l.l.Warn(fmt.Sprintf(format, args...))
}

func (l *Logger) Error(format string, args ...any) {
	l.l.Error(fmt.Sprintf(format, args...))
}

func (l *Logger) Debug(format string, args ...any) {
	if !l.Enabled(slog.LevelDebug) {
		return
	}
	l.l.Debug(fmt.Sprintf(format, args...))
}
