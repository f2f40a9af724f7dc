package instrumentation

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Metric attribute keys
const (
	attrMethod    = "method"
	attrPath      = "path"
	attrStatus    = "status"
	attrOperation = "operation"
	attrService   = "service"
	attrResult    = "result"
	attrTool      = "tool"
	attrKind      = "kind"
	attrSource    = "source"
)

// Metrics provides methods for recording observability metrics.
type Metrics struct {
	// HTTP metrics
	httpRequestsTotal    metric.Int64Counter
	httpRequestDuration  metric.Float64Histogram
	activeGestureStreams metric.Int64UpDownCounter

	// Google API metrics
	googleAPIOperationsTotal   metric.Int64Counter
	googleAPIOperationDuration metric.Float64Histogram

	// OAuth metrics
	oauthAuthTotal metric.Int64Counter

	// Navigation metrics
	gestureCommandsTotal metric.Int64Counter

	// MCP Tool metrics
	toolInvocationsTotal metric.Int64Counter
	toolDuration         metric.Float64Histogram
}

var (
	httpBuckets = []float64{0.001, 0.01, 0.1, 0.5, 1.0, 2.5, 5.0, 10.0}
	callBuckets = []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1.0, 2.5, 5.0, 10.0, 30.0}
)

// NewMetrics creates every instrument on meter.
func NewMetrics(meter metric.Meter) (*Metrics, error) {
	b := &instrumentBuilder{meter: meter}

	m := &Metrics{
		httpRequestsTotal:    b.counter("http_requests_total", "Total number of HTTP requests", "{request}"),
		httpRequestDuration:  b.histogram("http_request_duration_seconds", "HTTP request duration in seconds", httpBuckets),
		activeGestureStreams: b.upDownCounter("active_gesture_streams", "Number of open gesture websocket streams", "{stream}"),

		googleAPIOperationsTotal:   b.counter("google_api_operations_total", "Total number of Google API operations", "{operation}"),
		googleAPIOperationDuration: b.histogram("google_api_operation_duration_seconds", "Google API operation duration in seconds", callBuckets),

		oauthAuthTotal: b.counter("oauth_auth_total", "Total number of OAuth authentication attempts", "{attempt}"),

		gestureCommandsTotal: b.counter("gesture_commands_total", "Total number of dispatched gesture commands", "{command}"),

		toolInvocationsTotal: b.counter("mcp_tool_invocations_total", "Total number of MCP tool invocations", "{invocation}"),
		toolDuration:         b.histogram("mcp_tool_duration_seconds", "MCP tool execution duration in seconds", callBuckets),
	}

	if b.err != nil {
		return nil, b.err
	}
	return m, nil
}

// instrumentBuilder keeps the first error so NewMetrics can build every
// instrument in one expression
type instrumentBuilder struct {
	meter metric.Meter
	err   error
}

func (b *instrumentBuilder) counter(name, description, unit string) metric.Int64Counter {
	c, err := b.meter.Int64Counter(name, metric.WithDescription(description), metric.WithUnit(unit))
	b.fail(name, err)
	return c
}

func (b *instrumentBuilder) upDownCounter(name, description, unit string) metric.Int64UpDownCounter {
	c, err := b.meter.Int64UpDownCounter(name, metric.WithDescription(description), metric.WithUnit(unit))
	b.fail(name, err)
	return c
}

func (b *instrumentBuilder) histogram(name, description string, buckets []float64) metric.Float64Histogram {
	h, err := b.meter.Float64Histogram(name,
		metric.WithDescription(description),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(buckets...),
	)
	b.fail(name, err)
	return h
}

func (b *instrumentBuilder) fail(name string, err error) {
	if err != nil && b.err == nil {
		b.err = fmt.Errorf("failed to create %s: %w", name, err)
	}
}

// RecordHTTPRequest records an HTTP request with method, path, status code, and duration.
// The path should be a route template, not the raw request path.
func (m *Metrics) RecordHTTPRequest(ctx context.Context, method, path string, statusCode int, duration time.Duration) {
	if m.httpRequestsTotal == nil || m.httpRequestDuration == nil {
		return
	}

	attrs := []attribute.KeyValue{
		attribute.String(attrMethod, method),
		attribute.String(attrPath, path),
		attribute.String(attrStatus, strconv.Itoa(statusCode)),
	}

	m.httpRequestsTotal.Add(ctx, 1, metric.WithAttributes(attrs...))
	m.httpRequestDuration.Record(ctx, duration.Seconds(), metric.WithAttributes(attrs...))
}

// RecordGoogleAPIOperation records one Slides or Drive call. operation is one
// of the Operation* constants.
func (m *Metrics) RecordGoogleAPIOperation(ctx context.Context, service, operation, status string, duration time.Duration) {
	if m.googleAPIOperationsTotal == nil || m.googleAPIOperationDuration == nil {
		return
	}

	attrs := []attribute.KeyValue{
		attribute.String(attrService, service),
		attribute.String(attrOperation, operation),
		attribute.String(attrStatus, status),
	}

	m.googleAPIOperationsTotal.Add(ctx, 1, metric.WithAttributes(attrs...))
	m.googleAPIOperationDuration.Record(ctx, duration.Seconds(), metric.WithAttributes(attrs...))
}

// RecordOAuthAuth records an OAuth authentication attempt with result.
// Result should be one of: "success", "failure"
func (m *Metrics) RecordOAuthAuth(ctx context.Context, result string) {
	if m.oauthAuthTotal == nil {
		return
	}

	m.oauthAuthTotal.Add(ctx, 1, metric.WithAttributes(attribute.String(attrResult, result)))
}

// RecordGesture records one dispatched gesture command.
//
// Parameters:
//   - source: Where the command came from (http, stream, mcp)
//   - kind: Gesture kind as received; unknown kinds are folded into "other"
//   - result: Dispatch result (moved, at_last_slide, confidence_too_low, ...)
func (m *Metrics) RecordGesture(ctx context.Context, source, kind, result string) {
	if m.gestureCommandsTotal == nil {
		return
	}

	attrs := []attribute.KeyValue{
		attribute.String(attrSource, source),
		attribute.String(attrKind, GestureKindLabel(kind)),
		attribute.String(attrResult, result),
	}

	m.gestureCommandsTotal.Add(ctx, 1, metric.WithAttributes(attrs...))
}

// RecordToolInvocation records one MCP tool call
func (m *Metrics) RecordToolInvocation(ctx context.Context, toolName, status string, duration time.Duration) {
	if m.toolInvocationsTotal == nil || m.toolDuration == nil {
		return
	}

	attrs := []attribute.KeyValue{
		attribute.String(attrTool, toolName),
		attribute.String(attrStatus, status),
	}

	m.toolInvocationsTotal.Add(ctx, 1, metric.WithAttributes(attrs...))
	m.toolDuration.Record(ctx, duration.Seconds(), metric.WithAttributes(attrs...))
}

// IncrementGestureStreams counts a newly opened gesture stream
func (m *Metrics) IncrementGestureStreams(ctx context.Context) {
	m.addStreams(ctx, 1)
}

// DecrementGestureStreams counts a closed gesture stream
func (m *Metrics) DecrementGestureStreams(ctx context.Context) {
	m.addStreams(ctx, -1)
}

func (m *Metrics) addStreams(ctx context.Context, delta int64) {
	if m.activeGestureStreams != nil {
		m.activeGestureStreams.Add(ctx, delta)
	}
}
