// Package observability provides structured logging, metrics, and
// distributed tracing for the AgentForge client toolkit.
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
	"time"
)

// EnrichLogger adds conversation context to a logger.
// Returns a new logger carrying a conversation_id field.
func EnrichLogger(logger *slog.Logger, conversationID string) *slog.Logger {
	if logger == nil {
		return nil
	}
	return logger.With(
		slog.String("conversation_id", conversationID),
	)
}

// LogRequest logs an outgoing API request.
func LogRequest(logger *slog.Logger, method, endpoint string) {
	if logger == nil {
		return
	}
	logger.Debug("api request",
		slog.String("method", method),
		slog.String("endpoint", endpoint),
	)
}

// LogRequestDone logs a completed API request.
func LogRequestDone(logger *slog.Logger, method, endpoint string, status int, duration time.Duration) {
	if logger == nil {
		return
	}
	logger.Debug("api request done",
		slog.String("method", method),
		slog.String("endpoint", endpoint),
		slog.Int("status", status),
		slog.Float64("duration_ms", float64(duration.Microseconds())/1000),
	)
}

// LogRequestError logs a failed API request.
func LogRequestError(logger *slog.Logger, method, endpoint string, err error) {
	if logger == nil {
		return
	}
	logger.Error("api request failed",
		slog.String("method", method),
		slog.String("endpoint", endpoint),
		slog.String("error", err.Error()),
	)
}

// LogSocketOpen logs a websocket open, distinguishing first connects
// from reconnects. Callers pass a logger already enriched with the
// conversation via EnrichLogger.
func LogSocketOpen(logger *slog.Logger, reconnected bool) {
	if logger == nil {
		return
	}
	logger.Info("socket open",
		slog.Bool("reconnected", reconnected),
	)
}

// LogSocketClosed logs a websocket close and the scheduled retry.
func LogSocketClosed(logger *slog.Logger, attempt int, nextDelay time.Duration) {
	if logger == nil {
		return
	}
	logger.Warn("socket closed",
		slog.Int("attempt", attempt),
		slog.Duration("next_delay", nextDelay),
	)
}

// LogConversionError logs a graph/design conversion failure.
func LogConversionError(logger *slog.Logger, direction string, err error) {
	if logger == nil {
		return
	}
	logger.Error("conversion failed",
		slog.String("direction", direction),
		slog.String("error", err.Error()),
	)
}
