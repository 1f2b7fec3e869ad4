package observability

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// tracer is the toolkit tracer instance.
// Uses the global OTel tracer provider.
var tracer = otel.Tracer("agentforge")

// SpanManager handles trace span lifecycle.
// Use NewSpanManager() for OTel tracing or NoopSpanManager{} when disabled.
type SpanManager interface {
	// StartRequestSpan starts a span for an API request.
	StartRequestSpan(ctx context.Context, method, endpoint string) (context.Context, trace.Span)

	// StartConversionSpan starts a span for a graph/design conversion.
	StartConversionSpan(ctx context.Context, direction string, nodeCount int) (context.Context, trace.Span)

	// EndSpanWithError completes a span, optionally recording an error.
	EndSpanWithError(span trace.Span, err error)

	// AddSpanEvent adds an event to the current span in context.
	AddSpanEvent(ctx context.Context, name string, attrs ...attribute.KeyValue)
}

// otelSpanManager implements SpanManager using OpenTelemetry.
type otelSpanManager struct{}

// NewSpanManager returns a SpanManager that uses OpenTelemetry.
//
// The span manager uses the global OTel tracer provider. Configure the
// provider before calling this function:
//
//	import "go.opentelemetry.io/otel"
//	otel.SetTracerProvider(yourProvider)
func NewSpanManager() SpanManager {
	return &otelSpanManager{}
}

// StartRequestSpan starts a span for an API request.
func (m *otelSpanManager) StartRequestSpan(ctx context.Context, method, endpoint string) (context.Context, trace.Span) {
	return tracer.Start(ctx, "agentforge.request",
		trace.WithAttributes(
			attribute.String("http.method", method),
			attribute.String("http.endpoint", endpoint),
		),
		trace.WithSpanKind(trace.SpanKindClient),
	)
}

// StartConversionSpan starts a span for a graph/design conversion.
func (m *otelSpanManager) StartConversionSpan(ctx context.Context, direction string, nodeCount int) (context.Context, trace.Span) {
	return tracer.Start(ctx, "agentforge.convert."+direction,
		trace.WithAttributes(
			attribute.Int("graph.nodes", nodeCount),
		),
		trace.WithSpanKind(trace.SpanKindInternal),
	)
}

// EndSpanWithError completes a span, optionally recording an error.
func (m *otelSpanManager) EndSpanWithError(span trace.Span, err error) {
	if span == nil {
		return
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	} else {
		span.SetStatus(codes.Ok, "")
	}
	span.End()
}

// AddSpanEvent adds an event to the current span.
func (m *otelSpanManager) AddSpanEvent(ctx context.Context, name string, attrs ...attribute.KeyValue) {
	span := trace.SpanFromContext(ctx)
	if span == nil || !span.IsRecording() {
		return
	}
	span.AddEvent(name, trace.WithAttributes(attrs...))
}
