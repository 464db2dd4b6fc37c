// Package observability provides logging, metrics, and tracing hooks for
// wire dispatchers.
//
// Features:
//   - Structured logging via slog (Go stdlib)
//   - Metrics via OpenTelemetry
//   - Tracing via OpenTelemetry
//
// All features are opt-in and have no-op implementations when disabled.
package observability

import (
	"log/slog"
)

// EnrichLogger adds dispatcher context to a logger.
// Returns a new logger with dispatcher and emit_id fields.
//
// Example:
//
//	enriched := EnrichLogger(logger, "orders", "6f1c...")
//	enriched.Info("doing work") // includes dispatcher, emit_id
func EnrichLogger(logger *slog.Logger, dispatcher, emitID string) *slog.Logger {
	if logger == nil {
		return nil
	}
	return logger.With(
		slog.String("dispatcher", dispatcher),
		slog.String("emit_id", emitID),
	)
}

// LogEmitStart logs the start of an emit call.
func LogEmitStart(logger *slog.Logger, channels []string) {
	if logger == nil {
		return
	}
	logger.Debug("emit starting",
		slog.Any("channels", channels),
	)
}

// LogEmitComplete logs an emit call whose chains all succeeded.
func LogEmitComplete(logger *slog.Logger, durationMs float64, handlerCount int) {
	if logger == nil {
		return
	}
	logger.Debug("emit completed",
		slog.Float64("duration_ms", durationMs),
		slog.Int("handlers_executed", handlerCount),
	)
}

// LogEmitError logs an emit call that finished with a handler failure.
func LogEmitError(logger *slog.Logger, err error, durationMs float64, handlerCount int) {
	if logger == nil {
		return
	}
	logger.Warn("emit failed",
		slog.String("error", err.Error()),
		slog.Float64("duration_ms", durationMs),
		slog.Int("handlers_executed", handlerCount),
	)
}

// LogHandlerStart logs handler execution start.
func LogHandlerStart(logger *slog.Logger, channel, handler string, priority int) {
	if logger == nil {
		return
	}
	logger.Debug("handler starting",
		slog.String("channel", channel),
		slog.String("handler", handler),
		slog.Int("priority", priority),
	)
}

// LogHandlerComplete logs successful handler completion.
func LogHandlerComplete(logger *slog.Logger, channel, handler string, durationMs float64) {
	if logger == nil {
		return
	}
	logger.Debug("handler completed",
		slog.String("channel", channel),
		slog.String("handler", handler),
		slog.Float64("duration_ms", durationMs),
	)
}

// LogHandlerError logs a handler failure.
func LogHandlerError(logger *slog.Logger, channel, handler string, err error) {
	if logger == nil {
		return
	}
	logger.Error("handler failed",
		slog.String("channel", channel),
		slog.String("handler", handler),
		slog.String("error", err.Error()),
	)
}

// LogHandlerSkipped logs a handler that did not run because an earlier
// handler in the chain failed.
func LogHandlerSkipped(logger *slog.Logger, channel, handler string) {
	if logger == nil {
		return
	}
	logger.Debug("handler skipped after failure",
		slog.String("channel", channel),
		slog.String("handler", handler),
	)
}

// LogOnceExpired logs removal of a one-shot handler at resolution time.
func LogOnceExpired(logger *slog.Logger, pattern, handler string) {
	if logger == nil {
		return
	}
	logger.Debug("one-shot handler removed",
		slog.String("pattern", pattern),
		slog.String("handler", handler),
	)
}
