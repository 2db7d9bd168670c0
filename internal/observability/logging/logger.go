// Package logging provides structured logging utilities using the standard library's log/slog package.
// It offers helper functions for creating loggers with consistent configuration and context propagation.
package logging

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"

	"notify-svc/internal/handler/http/requestid"
)

// Options configures NewLogger.
type Options struct {
	// Format is "json" (default) or "text".
	Format string
	// Level is one of debug, info, warn, error. Unknown values mean info.
	Level string
	// Verbose forces debug regardless of Level.
	Verbose bool
	// Output defaults to os.Stdout.
	Output io.Writer
}

// OptionsFromEnv reads LOG_FORMAT, LOG_LEVEL and VERBOSE.
func OptionsFromEnv() Options {
	return Options{
		Format:  os.Getenv("LOG_FORMAT"),
		Level:   os.Getenv("LOG_LEVEL"),
		Verbose: strings.EqualFold(os.Getenv("VERBOSE"), "true"),
	}
}

// ParseLevel maps a level name to its slog level.
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

// NewLogger creates a new structured logger. JSON output is the default;
// text output is useful for local development and debugging.
func NewLogger(opts Options) *slog.Logger {
	level := ParseLevel(opts.Level)
	if opts.Verbose {
		level = slog.LevelDebug
	}
	out := opts.Output
	if out == nil {
		out = os.Stdout
	}

	hopts := &slog.HandlerOptions{
		Level: level,
		// Add source code location for error and warn levels
		AddSource: level <= slog.LevelWarn,
	}

	var handler slog.Handler
	if strings.EqualFold(opts.Format, "text") {
		handler = slog.NewTextHandler(out, hopts)
	} else {
		handler = slog.NewJSONHandler(out, hopts)
	}
	return slog.New(handler)
}

// WithRequestID returns a new logger that includes the request ID from the context.
// This enables request tracing across log entries.
func WithRequestID(ctx context.Context, logger *slog.Logger) *slog.Logger {
	reqID := requestid.FromContext(ctx)
	if reqID == "" {
		return logger
	}
	return logger.With("request_id", reqID)
}
