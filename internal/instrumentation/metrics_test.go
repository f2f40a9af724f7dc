package instrumentation

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
)

func newTestMetrics(t *testing.T) (*Metrics, *sdkmetric.ManualReader) {
	t.Helper()
	reader := sdkmetric.NewManualReader()
	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	t.Cleanup(func() { _ = provider.Shutdown(context.Background()) })

	m, err := NewMetrics(provider.Meter("test"))
	require.NoError(t, err)
	return m, reader
}

func collect(t *testing.T, reader *sdkmetric.ManualReader) map[string]metricdata.Metrics {
	t.Helper()
	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))

	out := map[string]metricdata.Metrics{}
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			out[m.Name] = m
		}
	}
	return out
}

func sumOf(t *testing.T, m metricdata.Metrics) int64 {
	t.Helper()
	sum, ok := m.Data.(metricdata.Sum[int64])
	require.True(t, ok, "metric %s is not an int64 sum", m.Name)

	var total int64
	for _, dp := range sum.DataPoints {
		total += dp.Value
	}
	return total
}

func TestMetrics_Record(t *testing.T) {
	m, reader := newTestMetrics(t)
	ctx := context.Background()

	m.RecordHTTPRequest(ctx, "POST", "/gesture/next", 200, 5*time.Millisecond)
	m.RecordGoogleAPIOperation(ctx, ServiceSlides, OperationGet, StatusSuccess, 100*time.Millisecond)
	m.RecordOAuthAuth(ctx, OAuthResultSuccess)
	m.RecordGesture(ctx, SourceHTTP, "next", "moved")
	m.RecordGesture(ctx, SourceStream, "wave", "unknown_kind")
	m.RecordToolInvocation(ctx, "gesture_next", StatusSuccess, time.Millisecond)
	m.IncrementGestureStreams(ctx)
	m.IncrementGestureStreams(ctx)
	m.DecrementGestureStreams(ctx)

	got := collect(t, reader)

	assert.Equal(t, int64(1), sumOf(t, got["http_requests_total"]))
	assert.Equal(t, int64(1), sumOf(t, got["google_api_operations_total"]))
	assert.Equal(t, int64(1), sumOf(t, got["oauth_auth_total"]))
	assert.Equal(t, int64(2), sumOf(t, got["gesture_commands_total"]))
	assert.Equal(t, int64(1), sumOf(t, got["mcp_tool_invocations_total"]))
	assert.Equal(t, int64(1), sumOf(t, got["active_gesture_streams"]))
	assert.Contains(t, got, "http_request_duration_seconds")
}

func TestMetrics_GestureKindLabel(t *testing.T) {
	m, reader := newTestMetrics(t)
	ctx := context.Background()

	m.RecordGesture(ctx, SourceHTTP, "wave", "unknown_kind")

	sum := collect(t, reader)["gesture_commands_total"].Data.(metricdata.Sum[int64])
	require.Len(t, sum.DataPoints, 1)
	kind, ok := sum.DataPoints[0].Attributes.Value(attrKind)
	require.True(t, ok)
	assert.Equal(t, "other", kind.AsString())
}

func TestMetrics_NoOp_WhenDisabled(t *testing.T) {
	m := &Metrics{}
	ctx := context.Background()

	assert.NotPanics(t, func() {
		m.RecordHTTPRequest(ctx, "GET", "/health", 200, time.Millisecond)
		m.RecordGoogleAPIOperation(ctx, ServiceDrive, OperationList, StatusError, time.Millisecond)
		m.RecordOAuthAuth(ctx, OAuthResultFailure)
		m.RecordGesture(ctx, SourceMCP, "point", "pointed")
		m.RecordToolInvocation(ctx, "presentation_status", StatusSuccess, time.Millisecond)
		m.IncrementGestureStreams(ctx)
		m.DecrementGestureStreams(ctx)
	})
}

func TestGestureKindLabel(t *testing.T) {
	tests := map[string]string{
		"next":     "next",
		"previous": "previous",
		"jump":     "jump",
		"point":    "point",
		"wave":     "other",
		"":         "unknown",
	}
	for kind, want := range tests {
		assert.Equal(t, want, GestureKindLabel(kind), "kind %q", kind)
	}
}
