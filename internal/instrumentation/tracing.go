package instrumentation

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// TracerName is the default tracer name for the gestureslides package.
const TracerName = "github.com/teemow/gestureslides"

// Span attribute keys
const (
	SpanAttrTool         = "mcp.tool"
	SpanAttrService      = "google.service"
	SpanAttrOperation    = "google.operation"
	SpanAttrPresentation = "slides.presentation_id"
	SpanAttrGesture      = "gesture.kind"
	SpanAttrResult       = "gesture.result"

	// SpanAttrSlide is the 1-based slide number
	SpanAttrSlide = "slides.slide_number"
)

// SpanAttributeBuilder helps construct OpenTelemetry span attributes
// with consistent naming.
type SpanAttributeBuilder struct {
	attrs []attribute.KeyValue
}

// NewSpanAttributeBuilder creates a new SpanAttributeBuilder.
func NewSpanAttributeBuilder() *SpanAttributeBuilder {
	return &SpanAttributeBuilder{
		attrs: make([]attribute.KeyValue, 0, 6),
	}
}

// WithPresentation adds the presentation ID attribute.
func (b *SpanAttributeBuilder) WithPresentation(id string) *SpanAttributeBuilder {
	if id != "" {
		b.attrs = append(b.attrs, attribute.String(SpanAttrPresentation, id))
	}
	return b
}

// WithGesture adds the gesture kind attribute.
func (b *SpanAttributeBuilder) WithGesture(kind string) *SpanAttributeBuilder {
	if kind != "" {
		b.attrs = append(b.attrs, attribute.String(SpanAttrGesture, kind))
	}
	return b
}

// WithResult adds the dispatch result attribute.
func (b *SpanAttributeBuilder) WithResult(result string) *SpanAttributeBuilder {
	b.attrs = append(b.attrs, attribute.String(SpanAttrResult, result))
	return b
}

// WithSlide adds the slide number attribute. Non-positive numbers are skipped.
func (b *SpanAttributeBuilder) WithSlide(number int) *SpanAttributeBuilder {
	if number > 0 {
		b.attrs = append(b.attrs, attribute.Int(SpanAttrSlide, number))
	}
	return b
}

// Build returns the constructed attributes.
func (b *SpanAttributeBuilder) Build() []attribute.KeyValue {
	return b.attrs
}

// StartSpan starts an internal span. End it with defer span.End().
func StartSpan(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	return startSpan(ctx, name, trace.SpanKindInternal, attrs)
}

// StartToolSpan starts the server span of an MCP tool invocation
func StartToolSpan(ctx context.Context, toolName string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	attrs = append([]attribute.KeyValue{attribute.String(SpanAttrTool, toolName)}, attrs...)
	return startSpan(ctx, "tool."+toolName, trace.SpanKindServer, attrs)
}

// StartGoogleAPISpan starts the client span of a Slides or Drive call
func StartGoogleAPISpan(ctx context.Context, service, operation string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	attrs = append([]attribute.KeyValue{
		attribute.String(SpanAttrService, service),
		attribute.String(SpanAttrOperation, operation),
	}, attrs...)
	return startSpan(ctx, "google."+service+"."+operation, trace.SpanKindClient, attrs)
}

// startSpan resolves the tracer on every call so spans follow the provider
// installed most recently
func startSpan(ctx context.Context, name string, kind trace.SpanKind, attrs []attribute.KeyValue) (context.Context, trace.Span) {
	return otel.GetTracerProvider().Tracer(TracerName).Start(ctx, name,
		trace.WithAttributes(attrs...),
		trace.WithSpanKind(kind),
	)
}

// SetSpanError records an error on the span and sets the status to error.
func SetSpanError(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
}

// SetSpanSuccess sets the span status to OK.
func SetSpanSuccess(span trace.Span) {
	span.SetStatus(codes.Ok, "")
}

// GetTraceID returns the trace ID from the current span in context.
// Returns empty string if no valid span is present.
func GetTraceID(ctx context.Context) string {
	span := trace.SpanFromContext(ctx)
	if span.SpanContext().IsValid() {
		return span.SpanContext().TraceID().String()
	}
	return ""
}
