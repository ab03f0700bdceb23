package cascade

import (
	"context"
	"log/slog"
	"os"

	"github.com/precisionlens/cascade/trace"
)

// Logger wraps slog.Logger with cascade-specific context.
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
// Use this to disable logging entirely.
func NoopLogger() *Logger {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.Level(1000), // Unreachable level
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// WithTier adds a tier name field to the logger.
func (l *Logger) WithTier(name string) *Logger {
	return &Logger{
		Logger: l.Logger.With("tier", name),
	}
}

// WithMatrixSize adds a matrix dimension field to the logger.
func (l *Logger) WithMatrixSize(n int) *Logger {
	return &Logger{
		Logger: l.Logger.With("matrix_size", n),
	}
}

// LogSegmentStart logs the beginning of a precision tier segment.
func (l *Logger) LogSegmentStart(ctx context.Context, tier Tier, remaining int) {
	l.InfoContext(ctx, "switching precision tier",
		"tier", tier.Name,
		"format", tier.Format.String(),
		"threshold", tier.Threshold,
		"max_stagnant", tier.MaxStagnant,
		"remaining_budget", remaining,
	)
}

// LogSegmentEnd logs a sealed precision tier segment.
func (l *Logger) LogSegmentEnd(ctx context.Context, seg trace.Segment) {
	l.InfoContext(ctx, "tier segment completed",
		"tier", seg.Precision,
		"iterations", seg.Iterations,
		"end_error", seg.EndError,
		"converged", seg.Converged,
	)
}

// LogRunDone logs the terminal state of a cascade run.
func (l *Logger) LogRunDone(ctx context.Context, doc *trace.Document) {
	l.InfoContext(ctx, "cascade completed",
		"converged", doc.Metadata.Converged,
		"final_error", doc.Metadata.FinalError,
		"total_iterations", doc.Summary.TotalIterations,
		"total_time_seconds", doc.Summary.TotalTimeSeconds,
		"precision_levels_used", doc.Summary.PrecisionLevelsUsed,
	)
}
