// Package logger provides structured logging configuration for the application.
// It configures log/slog with JSON output and source location tracking, or a
// text handler for local development.
package logger

import (
	"io"
	"log/slog"
)

// SetupWithFormat initializes the global slog logger writing to w.
// format is "json" or "text"; anything else falls back to JSON.
func SetupWithFormat(w io.Writer, format string, level slog.Level) {
	opts := &slog.HandlerOptions{
		AddSource: true,
		Level:     level,
	}

	var handler slog.Handler
	if format == "text" {
		handler = slog.NewTextHandler(w, opts)
	} else {
		handler = slog.NewJSONHandler(w, opts)
	}
	slog.SetDefault(slog.New(handler))
}

// ParseLevel converts a string log level to slog.Level.
// Valid values: "debug", "info", "warn", "error".
// Unrecognized values default to info level.
func ParseLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
