package observability

import (
	"context"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// MetricsRecorder records client toolkit metrics.
// Use NewMetricsRecorder() for OTel metrics or NoopMetrics{} when disabled.
type MetricsRecorder interface {
	// RecordRequest records an API request with its duration and status.
	RecordRequest(ctx context.Context, method, endpoint string, status int, duration time.Duration)

	// RecordReconnect records a websocket reconnect attempt.
	RecordReconnect(ctx context.Context, conversationID string, attempt int)

	// RecordConversion records a graph/design conversion and whether it
	// succeeded.
	RecordConversion(ctx context.Context, direction string, nodeCount int, err error)
}

// otelMetrics implements MetricsRecorder using OpenTelemetry.
type otelMetrics struct {
	requests       metric.Int64Counter
	requestLatency metric.Float64Histogram
	reconnects     metric.Int64Counter
	conversions    metric.Int64Counter
	graphSize      metric.Int64Histogram
}

var (
	defaultMetrics     *otelMetrics
	defaultMetricsOnce sync.Once
	defaultMetricsErr  error
)

// getDefaultMetrics returns the default OTel metrics instance.
// Lazily initializes the metrics on first call.
func getDefaultMetrics() (*otelMetrics, error) {
	defaultMetricsOnce.Do(func() {
		defaultMetrics, defaultMetricsErr = newOtelMetrics()
	})
	return defaultMetrics, defaultMetricsErr
}

// newOtelMetrics creates a new OTel metrics instance.
func newOtelMetrics() (*otelMetrics, error) {
	meter := otel.Meter("agentforge")

	requests, err := meter.Int64Counter("agentforge.requests",
		metric.WithDescription("Number of API requests"),
	)
	if err != nil {
		return nil, err
	}

	requestLatency, err := meter.Float64Histogram("agentforge.request.latency_ms",
		metric.WithDescription("API request latency in milliseconds"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return nil, err
	}

	reconnects, err := meter.Int64Counter("agentforge.socket.reconnects",
		metric.WithDescription("Number of websocket reconnect attempts"),
	)
	if err != nil {
		return nil, err
	}

	conversions, err := meter.Int64Counter("agentforge.conversions",
		metric.WithDescription("Number of graph/design conversions"),
	)
	if err != nil {
		return nil, err
	}

	graphSize, err := meter.Int64Histogram("agentforge.graph.nodes",
		metric.WithDescription("Node count of converted graphs"),
	)
	if err != nil {
		return nil, err
	}

	return &otelMetrics{
		requests:       requests,
		requestLatency: requestLatency,
		reconnects:     reconnects,
		conversions:    conversions,
		graphSize:      graphSize,
	}, nil
}

// NewMetricsRecorder returns a MetricsRecorder that uses OpenTelemetry.
// If metrics initialization fails, returns a no-op recorder.
//
// The recorder uses the global OTel meter provider. Configure the
// provider before calling this function:
//
//	import "go.opentelemetry.io/otel"
//	otel.SetMeterProvider(yourProvider)
func NewMetricsRecorder() MetricsRecorder {
	m, err := getDefaultMetrics()
	if err != nil {
		return NoopMetrics{}
	}
	return m
}

// RecordRequest implements MetricsRecorder.
func (m *otelMetrics) RecordRequest(ctx context.Context, method, endpoint string, status int, duration time.Duration) {
	attrs := metric.WithAttributes(
		attribute.String("method", method),
		attribute.String("endpoint", endpoint),
		attribute.Int("status", status),
	)
	m.requests.Add(ctx, 1, attrs)
	m.requestLatency.Record(ctx, float64(duration.Microseconds())/1000, attrs)
}

// RecordReconnect implements MetricsRecorder.
func (m *otelMetrics) RecordReconnect(ctx context.Context, conversationID string, attempt int) {
	m.reconnects.Add(ctx, 1, metric.WithAttributes(
		attribute.String("conversation_id", conversationID),
		attribute.Int("attempt", attempt),
	))
}

// RecordConversion implements MetricsRecorder.
func (m *otelMetrics) RecordConversion(ctx context.Context, direction string, nodeCount int, err error) {
	m.conversions.Add(ctx, 1, metric.WithAttributes(
		attribute.String("direction", direction),
		attribute.Bool("error", err != nil),
	))
	m.graphSize.Record(ctx, int64(nodeCount), metric.WithAttributes(
		attribute.String("direction", direction),
	))
}
