// Package logging provides structured logging utilities.
//
// Console logs are formatted Maven-style with colors:
// [LEVEL] [COMPONENT] [HH:MM:SS] message key=value
//
// Setting format to "json" switches to slog's JSON handler for
// machine-readable output.
package logging

import (
	"log/slog"
	"os"

	"github.com/smartsplit/smartsplit-backend/internal/infrastructure/config"
)

// NewLogger creates a structured logger based on config
func NewLogger(cfg config.LoggingConfig) *slog.Logger {
	level := slog.LevelInfo
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn", "warning":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}

	opts := &slog.HandlerOptions{
		Level: level,
	}

	var handler slog.Handler
	if cfg.Format == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = NewMavenHandler(os.Stdout, opts)
	}

	return slog.New(handler)
}

// NewLoggerWithComponent creates a logger scoped to one component
// (e.g., "api", "autosave", "storage").
func NewLoggerWithComponent(cfg config.LoggingConfig, component string) *slog.Logger {
	logger := NewLogger(cfg)
	return logger.With("component", component)
}
