// Package logging provides structured logging for the whisper tooling.
//
// This package wraps the standard library's log/slog package to provide
// consistent logging across the scan layer and the CLI. The decoding core
// itself never logs; it is a pure function of its input buffer.
//
// Usage:
//
//	logging.Init(slog.LevelInfo, false) // Text format
//	logging.Init(slog.LevelDebug, true) // JSON format
//
//	log := logging.Component("scan")
//	log.Info("decoded", "path", path, "archives", n)
package logging

import (
	"log/slog"
	"os"
)

// Logger is the global logger instance.
var Logger *slog.Logger

// Init initializes the global logger with the specified level and format.
// If jsonFormat is true, logs are output as JSON; otherwise, human-readable text.
func Init(level slog.Level, jsonFormat bool) {
	var handler slog.Handler

	opts := &slog.HandlerOptions{
		Level:     level,
		AddSource: level == slog.LevelDebug,
	}

	if jsonFormat {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	} else {
		handler = slog.NewTextHandler(os.Stderr, opts)
	}

	Logger = slog.New(handler)
	slog.SetDefault(Logger)
}

// InitWithHandler initializes the global logger with a custom handler.
// This is useful for testing or custom output destinations.
func InitWithHandler(handler slog.Handler) {
	Logger = slog.New(handler)
	slog.SetDefault(Logger)
}

// Component returns a logger tagged with the given component name.
func Component(name string) *slog.Logger {
	if Logger == nil {
		return slog.Default().With("component", name)
	}

	return Logger.With("component", name)
}
