// Package instrumentation provides OpenTelemetry instrumentation for the
// gestureslides server.
//
// # Metrics
//
// Server/HTTP Metrics:
//   - http_requests_total: Counter of HTTP requests by method, route, and status
//   - http_request_duration_seconds: Histogram of HTTP request durations
//   - active_gesture_streams: Gauge of open gesture websocket streams
//
// Google API Metrics:
//   - google_api_operations_total: Counter of Slides and Drive calls by service, operation, status
//   - google_api_operation_duration_seconds: Histogram of Google API call durations
//
// OAuth Metrics:
//   - oauth_auth_total: Counter of completed authorization callbacks by result
//
// Navigation Metrics:
//   - gesture_commands_total: Counter of dispatched gestures by source, kind, and result
//
// MCP Tool Metrics:
//   - mcp_tool_invocations_total: Counter of MCP tool invocations by tool name and status
//   - mcp_tool_duration_seconds: Histogram of MCP tool execution durations
//
// # Tracing
//
// Spans are created for dispatched gestures (gesture.dispatch), MCP tool
// invocations (tool.<name>) and Google API calls (google.<service>.<operation>).
//
// With the prometheus exporter each Provider feeds its own registry, exposed
// through Provider.Gatherer.
//
// # Configuration
//
// Instrumentation is configured via environment variables:
//   - INSTRUMENTATION_ENABLED: Enable/disable instrumentation (default: true)
//   - METRICS_EXPORTER: prometheus, otlp, stdout (default: prometheus)
//   - TRACING_EXPORTER: otlp, stdout, none (default: none)
//   - OTEL_EXPORTER_OTLP_ENDPOINT: OTLP endpoint for traces/metrics
//   - OTEL_TRACES_SAMPLER_ARG: Sampling rate (0.0 to 1.0, default: 0.1)
//   - OTEL_SERVICE_NAME: Service name (default: gestureslides)
//   - AUDIT_LOGGING_ENABLED, AUDIT_LOGGING_INCLUDE_POINTS: navigation audit trail
//
// # Example Usage
//
//	provider, err := instrumentation.NewProvider(ctx, instrumentation.DefaultConfig())
//	if err != nil {
//		return err
//	}
//	defer provider.Shutdown(ctx)
//
//	recorder := provider.Metrics()
//	recorder.RecordGesture(ctx, instrumentation.SourceHTTP, "next", "moved")
package instrumentation
