// Package logging provides centralized logging functionality for the
// application. Log output goes to stderr so it never interleaves with the
// conversation rendered on stdout.
package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// defaultLogger is the process-wide logger instance.
var defaultLogger *slog.Logger

func init() {
	Setup(os.Stderr, os.Getenv("LOG_LEVEL"))
}

// Setup configures the logger with the specified output and level. Level is
// one of "debug", "info", "warn", "error" (case-insensitive); anything else,
// including the empty string, means info.
func Setup(w io.Writer, level string) {
	logLevel := slog.LevelInfo
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		logLevel = slog.LevelDebug
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	}

	handler := slog.NewTextHandler(w, &slog.HandlerOptions{Level: logLevel})
	defaultLogger = slog.New(handler)
	slog.SetDefault(defaultLogger)
}

// Debug logs a message at debug level.
func Debug(msg string, args ...any) {
	defaultLogger.Debug(msg, args...)
}

// Info logs a message at info level.
func Info(msg string, args ...any) {
	defaultLogger.Info(msg, args...)
}

// Warn logs a message at warn level.
func Warn(msg string, args ...any) {
	defaultLogger.Warn(msg, args...)
}

// Error logs a message at error level.
func Error(msg string, args ...any) {
	defaultLogger.Error(msg, args...)
}

// MaskSensitive masks sensitive data for logging.
func MaskSensitive(value string) string {
	if value == "" {
		return "<not set>"
	}
	if len(value) <= 4 {
		return "<set>"
	}
	return value[:4] + "..." + strings.Repeat("*", 3)
}
