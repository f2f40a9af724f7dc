package instrumentation

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func useRecorder(t *testing.T) *tracetest.SpanRecorder {
	t.Helper()
	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))

	prev := otel.GetTracerProvider()
	otel.SetTracerProvider(tp)
	t.Cleanup(func() {
		otel.SetTracerProvider(prev)
		_ = tp.Shutdown(context.Background())
	})
	return recorder
}

func attrMap(attrs []attribute.KeyValue) map[string]attribute.Value {
	out := map[string]attribute.Value{}
	for _, a := range attrs {
		out[string(a.Key)] = a.Value
	}
	return out
}

func TestSpanAttributeBuilder(t *testing.T) {
	attrs := attrMap(NewSpanAttributeBuilder().
		WithPresentation("deck-1").
		WithGesture("jump").
		WithResult("moved").
		WithSlide(3).
		Build())

	assert.Equal(t, "deck-1", attrs[SpanAttrPresentation].AsString())
	assert.Equal(t, "jump", attrs[SpanAttrGesture].AsString())
	assert.Equal(t, "moved", attrs[SpanAttrResult].AsString())
	assert.Equal(t, int64(3), attrs[SpanAttrSlide].AsInt64())
}

func TestSpanAttributeBuilder_EmptyValues(t *testing.T) {
	attrs := NewSpanAttributeBuilder().
		WithPresentation("").
		WithGesture("").
		WithSlide(0).
		Build()

	assert.Empty(t, attrs)
}

func TestStartGoogleAPISpan(t *testing.T) {
	recorder := useRecorder(t)

	ctx, span := StartGoogleAPISpan(context.Background(), ServiceSlides, OperationGet)
	assert.NotEmpty(t, GetTraceID(ctx))
	SetSpanError(span, errors.New("boom"))
	span.End()

	spans := recorder.Ended()
	require.Len(t, spans, 1)
	assert.Equal(t, "google.slides.get", spans[0].Name())
	assert.Equal(t, codes.Error, spans[0].Status().Code)

	attrs := attrMap(spans[0].Attributes())
	assert.Equal(t, ServiceSlides, attrs[SpanAttrService].AsString())
	assert.Equal(t, OperationGet, attrs[SpanAttrOperation].AsString())
}

func TestStartToolSpan(t *testing.T) {
	recorder := useRecorder(t)

	_, span := StartToolSpan(context.Background(), "gesture_next")
	SetSpanSuccess(span)
	span.End()

	_, plain := StartSpan(context.Background(), "plain")
	plain.End()

	spans := recorder.Ended()
	require.Len(t, spans, 2)
	assert.Equal(t, "tool.gesture_next", spans[0].Name())
	assert.Equal(t, codes.Ok, spans[0].Status().Code)
	assert.Equal(t, "plain", spans[1].Name())
}

func TestGetTraceID_NoSpan(t *testing.T) {
	assert.Empty(t, GetTraceID(context.Background()))
}
