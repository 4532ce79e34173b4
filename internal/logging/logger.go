// Package logging provides structured logging configuration using log/slog.
//
// Each shell session gets an ID stored in its context. Loggers taken from
// that context carry it as session_id so all entries for one session can be
// correlated.
package logging

import (
	"context"
	"io"
	"log/slog"
	"strings"

	"github.com/google/uuid"
)

type contextKey string

const ctxKeySessionID contextKey = "session_id"

// Setup configures the global slog logger based on level and format.
//
// Level values: "debug", "info", "warn", "error" (default: "info")
// Format values: "text", "json" (default: "text")
//
// The shell writes its own output to stdout, so callers normally pass
// os.Stderr here.
func Setup(level, format string, w io.Writer) {
	opts := &slog.HandlerOptions{
		Level: parseLevel(level),
	}

	var handler slog.Handler
	if strings.ToLower(format) == "json" {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}

	slog.SetDefault(slog.New(handler))
}

// parseLevel converts a string log level to slog.Level.
func parseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
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

// NewSession returns a context carrying a fresh session ID, and the ID.
func NewSession(ctx context.Context) (context.Context, string) {
	id := uuid.NewString()
	return context.WithValue(ctx, ctxKeySessionID, id), id
}

// SessionID extracts the session ID from ctx, or "" if there is none.
func SessionID(ctx context.Context) string {
	if v, ok := ctx.Value(ctxKeySessionID).(string); ok {
		return v
	}
	return ""
}

// FromContext returns the default logger enriched with the session ID.
//
// Usage:
//
//	logger := logging.FromContext(ctx)
//	logger.Info("dataset sorted", "column", column)
func FromContext(ctx context.Context) *slog.Logger {
	logger := slog.Default()

	if id := SessionID(ctx); id != "" {
		logger = logger.With("session_id", id)
	}

	return logger
}

// WithFields returns a session logger with additional structured fields.
//
// Usage:
//
//	addLogger := logging.WithFields(ctx, "file", name)
//	addLogger.Info("file merged", "rows", n)
func WithFields(ctx context.Context, args ...any) *slog.Logger {
	return FromContext(ctx).With(args...)
}
