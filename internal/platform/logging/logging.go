// Package logging builds the structured logger and carries it through
// context.Context.
//
//	logger := logging.New("info", "text", os.Stderr).With(slog.String("run_id", id))
//	ctx = logging.WithLogger(ctx, logger)
//	logging.FromContext(ctx).InfoContext(ctx, "starting emulators")
//
// Error logs name the operation and carry the full chain:
//
//	logger.ErrorContext(ctx, "toolchain failed",
//	    slog.String("operation", "Start"),
//	    slog.String("project", name),
//	    slog.Any("error", err),
//	)
package logging

import (
	"context"
	"io"
	"log/slog"
	"strings"
)

// Formats accepted by New.
const (
	FormatText = "text"
	FormatJSON = "json"
)

// RunIDKey is the attribute that ties every log line of one invocation
// together.
const RunIDKey = "run_id"

type contextKey struct{}

// New creates a configured *slog.Logger writing to w.
//
// level is one of "debug", "info", "warn" or "error"; anything else means
// info. format "text" selects slog.NewTextHandler and every other value
// selects slog.NewJSONHandler. Debug output includes the source location.
func New(level, format string, w io.Writer) *slog.Logger {
	lvl := ParseLevel(level)

	opts := &slog.HandlerOptions{
		Level:       lvl,
		AddSource:   lvl == slog.LevelDebug,
		ReplaceAttr: newRedactAttr(),
	}

	var handler slog.Handler
	if format == FormatText {
		handler = slog.NewTextHandler(w, opts)
	} else {
		handler = slog.NewJSONHandler(w, opts)
	}

	return slog.New(handler)
}

// Discard returns a logger that drops everything. Handy in tests.
func Discard() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

// WithLogger returns a new context with the given logger stored in it.
func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, contextKey{}, logger)
}

// FromContext extracts a *slog.Logger from the context.
// If no logger is stored, it returns slog.Default().
func FromContext(ctx context.Context) *slog.Logger {
	if logger, ok := ctx.Value(contextKey{}).(*slog.Logger); ok {
		return logger
	}
	return slog.Default()
}

// ParseLevel converts a level string to slog.Level, case-insensitively.
// Unrecognized values default to slog.LevelInfo.
func ParseLevel(level string) slog.Level {
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
