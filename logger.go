package xxregion

import (
	"context"
	"io"
	"log/slog"
	"os"

	"github.com/hupe1980/xxregion/internal/platform"
)

// Logger wraps slog.Logger with xxregion-specific helpers so that every
// component uses the same field names.
type Logger struct {
	*slog.Logger
}

// NewLogger creates a Logger with the given handler.
// If handler is nil, a text handler on stderr at info level is used.
func NewLogger(handler slog.Handler) *Logger {
	if handler == nil {
		handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		})
	}
	return &Logger{Logger: slog.New(handler)}
}

// NewJSONLogger creates a Logger that writes JSON lines to w.
func NewJSONLogger(w io.Writer, level slog.Level) *Logger {
	return NewLogger(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level}))
}

// NewTextLogger creates a Logger that writes human-readable text to w.
func NewTextLogger(w io.Writer, level slog.Level) *Logger {
	return NewLogger(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// NoopLogger creates a Logger that discards everything.
func NoopLogger() *Logger {
	return NewLogger(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{
		Level: slog.Level(1000),
	}))
}

// WithAlgorithm adds an algorithm field.
func (l *Logger) WithAlgorithm(name string) *Logger {
	return &Logger{Logger: l.Logger.With("algorithm", name)}
}

// WithBlob adds a blob name field.
func (l *Logger) WithBlob(name string) *Logger {
	return &Logger{Logger: l.Logger.With("blob", name)}
}

// LogPlatform logs the platform layout check result. A failed check is
// logged at error level because nothing can be hashed afterwards.
func (l *Logger) LogPlatform(ctx context.Context) {
	info, err := platform.Layout()
	if err != nil {
		l.ErrorContext(ctx, "platform layout check failed",
			"pointer_size", info.PointerSize,
			"big_endian", info.BigEndian,
			"error", err,
		)
		return
	}
	l.DebugContext(ctx, "platform layout validated",
		"pointer_size", info.PointerSize,
		"big_endian", info.BigEndian,
		"native_loads", info.NativeLoads,
		"strides", len(info.Strides),
	)
}

// LogDigest logs a single blob digest.
func (l *Logger) LogDigest(ctx context.Context, name string, size int64, digest string, err error) {
	if err != nil {
		l.ErrorContext(ctx, "digest failed",
			"blob", name,
			"error", err,
		)
		return
	}
	l.DebugContext(ctx, "digest completed",
		"blob", name,
		"size", size,
		"digest", digest,
	)
}

// LogBatch logs a batch of digests.
func (l *Logger) LogBatch(ctx context.Context, count, failed int) {
	if failed > 0 {
		l.WarnContext(ctx, "digest batch completed with failures",
			"total", count,
			"failed", failed,
			"success", count-failed,
		)
		return
	}
	l.InfoContext(ctx, "digest batch completed",
		"count", count,
	)
}

// LogMismatch logs a ledger verification mismatch.
func (l *Logger) LogMismatch(ctx context.Context, name, want, got string) {
	l.WarnContext(ctx, "digest mismatch",
		"blob", name,
		"want", want,
		"got", got,
	)
}
