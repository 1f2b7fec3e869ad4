package design

import (
	"context"
	"log/slog"

	"github.com/Maroco0109/AgentForge-sub000/pkg/flow"
	"github.com/Maroco0109/AgentForge-sub000/pkg/observability"
)

// Conversion directions reported to spans, metrics, and logs.
const (
	DirectionToDesign = "flow_to_design"
	DirectionToFlow   = "design_to_flow"
)

// ConverterOption configures a Converter.
type ConverterOption func(*Converter)

// WithLogger sets the structured logger. Nil disables logging.
func WithLogger(logger *slog.Logger) ConverterOption {
	return func(c *Converter) { c.logger = logger }
}

// WithObservability sets the span manager and metrics recorder.
func WithObservability(spans observability.SpanManager, metrics observability.MetricsRecorder) ConverterOption {
	return func(c *Converter) {
		c.spans = spans
		c.metrics = metrics
	}
}

// Converter wraps the pure FromFlow/ToFlow functions with tracing,
// metrics, and failure logging. The conversions themselves stay
// side-effect free; call the package-level functions directly when no
// instrumentation is wanted.
type Converter struct {
	spans   observability.SpanManager
	metrics observability.MetricsRecorder
	logger  *slog.Logger
}

// NewConverter creates a converter with no-op observability defaults.
func NewConverter(opts ...ConverterOption) *Converter {
	c := &Converter{
		spans:   observability.NoopSpanManager{},
		metrics: observability.NoopMetrics{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// FromFlow converts an editor graph to a design payload, recording the
// conversion.
func (c *Converter) FromFlow(ctx context.Context, nodes []flow.Node, edges []flow.Edge) (Design, error) {
	ctx, span := c.spans.StartConversionSpan(ctx, DirectionToDesign, len(nodes))
	d, err := FromFlow(nodes, edges)
	c.spans.EndSpanWithError(span, err)
	c.metrics.RecordConversion(ctx, DirectionToDesign, len(nodes), err)

	if err != nil {
		observability.LogConversionError(c.logger, DirectionToDesign, err)
	}
	return d, err
}

// ToFlow materializes a design payload as a laid-out editor graph,
// recording the conversion.
func (c *Converter) ToFlow(ctx context.Context, d Design) ([]flow.Node, []flow.Edge, error) {
	ctx, span := c.spans.StartConversionSpan(ctx, DirectionToFlow, len(d.Agents))
	nodes, edges, err := ToFlow(d)
	c.spans.EndSpanWithError(span, err)
	c.metrics.RecordConversion(ctx, DirectionToFlow, len(d.Agents), err)

	if err != nil {
		observability.LogConversionError(c.logger, DirectionToFlow, err)
	}
	return nodes, edges, err
}
