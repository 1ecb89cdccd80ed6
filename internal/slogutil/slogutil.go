// Package slogutil centralizes logger construction so every component
// logs through the same slog configuration.
package slogutil

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// NewLogger creates a new slog.Logger writing to w at the given level.
func NewLogger(w io.Writer, level slog.Level) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// NewStderrLogger creates the default CLI logger.
func NewStderrLogger(level slog.Level) *slog.Logger {
	return NewLogger(os.Stderr, level)
}

// NewDiscardLogger creates a logger that discards all output.
// Useful for tests or when logging should be completely suppressed.
func NewDiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.Level(100)}))
}

// LevelFromString converts a string to a slog.Level.
// Supports: debug, info, warn, error (case-insensitive).
// Returns slog.LevelInfo for unrecognized strings.
func LevelFromString(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// LevelFromVerbosity converts CLI verbosity flags to a slog.Level.
// - quiet=true: returns a level that suppresses all logs
// - verbosity=0: warn (default for CLI)
// - verbosity=1: info
// - verbosity>=2: debug
func LevelFromVerbosity(verbosity int, quiet bool) slog.Level {
	if quiet {
		return slog.Level(100) // Above all standard levels
	}
	switch verbosity {
	case 0:
		return slog.LevelWarn
	case 1:
		return slog.LevelInfo
	default:
		return slog.LevelDebug
	}
}
