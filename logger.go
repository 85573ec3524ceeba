package chillvec

import (
	"context"
	"log/slog"
	"os"
)

// Logger wraps slog.Logger with chillvec-specific context.
// This provides structured logging with consistent field names.
type Logger struct {
	*slog.Logger
}

// NewLogger creates a new Logger with the given handler.
// If handler is nil, uses default text handler to stderr.
func NewLogger(handler slog.Handler) *Logger {
	if handler == nil {
		handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		})
	}
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NewJSONLogger creates a Logger that outputs JSON-formatted logs.
// level sets the minimum log level (e.g., slog.LevelDebug, slog.LevelInfo).
func NewJSONLogger(level slog.Level) *Logger {
	handler := slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NewTextLogger creates a Logger that outputs human-readable text logs.
func NewTextLogger(level slog.Level) *Logger {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NoopLogger creates a Logger that discards all log output.
func NoopLogger() *Logger {
	return &Logger{
		Logger: slog.New(slog.DiscardHandler),
	}
}

// LogAbort logs the unrecoverable condition that is about to terminate the process.
func (l *Logger) LogAbort(ctx context.Context, err *AbortError) {
	l.ErrorContext(ctx, "aborting process",
		"op", err.Op,
		"kind", err.Kind,
		"requested_elems", err.Requested,
		"elem_size", err.ElemSize,
		"error", err,
	)
}

// LogUpgrade logs a CompactInts width upgrade.
func (l *Logger) LogUpgrade(ctx context.Context, from, to Width, count int) {
	l.DebugContext(ctx, "compact ints width upgraded",
		"from", from,
		"to", to,
		"count", count,
	)
}

// LogHeapFallback logs that an allocator was ignored because the element
// type holds Go pointers.
func (l *Logger) LogHeapFallback(ctx context.Context, elemType string) {
	l.WarnContext(ctx, "element type contains pointers, using Go heap instead of allocator",
		"elem_type", elemType,
	)
}

// LogFreeFailure logs an allocator that failed to release a region.
func (l *Logger) LogFreeFailure(ctx context.Context, bytes int, err error) {
	l.WarnContext(ctx, "free failed",
		"bytes", bytes,
		"error", err,
	)
}
