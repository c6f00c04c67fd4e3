package fuzzyc

import (
	"context"
	"io"
	"log/slog"
	"os"
)

// Logger wraps slog.Logger with clustering-specific context.
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
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

// WithK adds a k (centroid count) field to the logger.
func (l *Logger) WithK(k int) *Logger {
	return &Logger{
		Logger: l.Logger.With("k", k),
	}
}

// WithPoints adds a points (sample count) field to the logger.
func (l *Logger) WithPoints(n int) *Logger {
	return &Logger{
		Logger: l.Logger.With("points", n),
	}
}

// WithFuzzifier adds the fuzzifier m to the logger.
func (l *Logger) WithFuzzifier(m float64) *Logger {
	return &Logger{
		Logger: l.Logger.With("m", m),
	}
}

// LogIteration logs a completed (or failed) iteration.
func (l *Logger) LogIteration(ctx context.Context, iteration int, shift float64, err error) {
	if err != nil {
		l.ErrorContext(ctx, "iteration failed",
			"iteration", iteration,
			"error", err,
		)
	} else {
		l.DebugContext(ctx, "iteration completed",
			"iteration", iteration,
			"max_shift", shift,
		)
	}
}

// LogDegenerate logs a centroid that received no weight during MOVE.
func (l *Logger) LogDegenerate(ctx context.Context, centroid int) {
	l.WarnContext(ctx, "degenerate centroid",
		"centroid", centroid,
	)
}

// LogRun logs the outcome of a driver loop.
func (l *Logger) LogRun(ctx context.Context, iterations int, converged bool, err error) {
	if err != nil {
		l.ErrorContext(ctx, "run stopped",
			"iterations", iterations,
			"error", err,
		)
	} else {
		l.InfoContext(ctx, "run completed",
			"iterations", iterations,
			"converged", converged,
		)
	}
}
