package observability

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.opentelemetry.io/otel/attribute"
)

func TestNoopMetrics_ImplementsInterface(t *testing.T) {
	var _ MetricsRecorder = NoopMetrics{}
}

func TestNoopMetrics_RecordRequest(t *testing.T) {
	m := NoopMetrics{}

	t.Run("does not panic with valid args", func(t *testing.T) {
		assert.NotPanics(t, func() {
			m.RecordRequest(context.Background(), "GET", "/templates", 200, 30*time.Millisecond)
		})
	})

	t.Run("does not panic with nil context", func(t *testing.T) {
		assert.NotPanics(t, func() {
			m.RecordRequest(nil, "", "", 0, 0)
		})
	})
}

func TestNoopMetrics_RecordReconnect(t *testing.T) {
	m := NoopMetrics{}

	assert.NotPanics(t, func() {
		m.RecordReconnect(context.Background(), "conv-1", 3)
	})
	assert.NotPanics(t, func() {
		m.RecordReconnect(nil, "", 0)
	})
}

func TestNoopMetrics_RecordConversion(t *testing.T) {
	m := NoopMetrics{}

	t.Run("does not panic on success", func(t *testing.T) {
		assert.NotPanics(t, func() {
			m.RecordConversion(context.Background(), "from_flow", 4, nil)
		})
	})

	t.Run("does not panic with error", func(t *testing.T) {
		assert.NotPanics(t, func() {
			m.RecordConversion(context.Background(), "from_flow", 0, errors.New("cycle"))
		})
	})
}

func TestNoopSpanManager_ImplementsInterface(t *testing.T) {
	var _ SpanManager = NoopSpanManager{}
}

func TestNoopSpanManager_StartRequestSpan(t *testing.T) {
	m := NoopSpanManager{}
	ctx := context.Background()

	gotCtx, span := m.StartRequestSpan(ctx, "GET", "/templates")
	assert.Equal(t, ctx, gotCtx, "context should be unchanged")
	assert.NotNil(t, span)
	assert.False(t, span.IsRecording())
}

func TestNoopSpanManager_StartConversionSpan(t *testing.T) {
	m := NoopSpanManager{}
	ctx := context.Background()

	gotCtx, span := m.StartConversionSpan(ctx, "to_flow", 3)
	assert.Equal(t, ctx, gotCtx)
	assert.False(t, span.IsRecording())
}

func TestNoopSpanManager_EndSpanWithError(t *testing.T) {
	m := NoopSpanManager{}

	assert.NotPanics(t, func() {
		m.EndSpanWithError(noopSpan, errors.New("test"))
	})
	assert.NotPanics(t, func() {
		m.EndSpanWithError(nil, nil)
	})
}

func TestNoopSpanManager_AddSpanEvent(t *testing.T) {
	m := NoopSpanManager{}

	assert.NotPanics(t, func() {
		m.AddSpanEvent(context.Background(), "event", attribute.String("k", "v"))
	})
}
