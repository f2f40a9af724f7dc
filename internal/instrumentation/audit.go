package instrumentation

import (
	"context"
	"log/slog"
	"time"
)

// NavigationEvent records one navigation command for the audit trail.
// Every gesture and reset that reaches the cursor produces one event,
// whatever surface it came through.
type NavigationEvent struct {
	// Source is the surface the command arrived on (http, stream, mcp)
	Source string

	// Action is the gesture kind, or "reset"
	Action string

	// Result is the dispatch result
	Result string

	// Slide is the 1-based slide number current after the command, 0 if none
	Slide int

	PresentationID string
	RequestID      string
	TraceID        string

	StartTime time.Time
	Duration  time.Duration
}

// NewNavigationEvent creates an event with timing started.
// Call Complete() when the command has been applied.
func NewNavigationEvent(source, action string) *NavigationEvent {
	return &NavigationEvent{
		Source:    source,
		Action:    action,
		StartTime: time.Now(),
	}
}

// WithPresentation sets the loaded presentation ID.
func (e *NavigationEvent) WithPresentation(id string) *NavigationEvent {
	e.PresentationID = id
	return e
}

// WithRequestID sets the HTTP request ID.
func (e *NavigationEvent) WithRequestID(id string) *NavigationEvent {
	e.RequestID = id
	return e
}

// WithSpanContext extracts the trace ID from the current span.
func (e *NavigationEvent) WithSpanContext(ctx context.Context) *NavigationEvent {
	e.TraceID = GetTraceID(ctx)
	return e
}

// Complete records the result and the resulting slide, and calculates duration.
func (e *NavigationEvent) Complete(result string, slide int) *NavigationEvent {
	e.Duration = time.Since(e.StartTime)
	e.Result = result
	e.Slide = slide
	return e
}

// LogAttrs returns slog attributes for structured logging.
func (e *NavigationEvent) LogAttrs() []slog.Attr {
	attrs := []slog.Attr{
		slog.String("source", e.Source),
		slog.String("action", e.Action),
		slog.String("result", e.Result),
		slog.Duration("duration", e.Duration),
	}

	if e.Slide > 0 {
		attrs = append(attrs, slog.Int("slide", e.Slide))
	}
	if e.PresentationID != "" {
		attrs = append(attrs, slog.String("presentation_id", e.PresentationID))
	}
	if e.RequestID != "" {
		attrs = append(attrs, slog.String("request_id", e.RequestID))
	}
	if e.TraceID != "" {
		attrs = append(attrs, slog.String("trace_id", e.TraceID))
	}

	return attrs
}

// AuditLogger writes the navigation audit trail.
type AuditLogger struct {
	logger        *slog.Logger
	enabled       bool
	includePoints bool
}

// NewAuditLogger creates an enabled AuditLogger that skips point gestures.
func NewAuditLogger(logger *slog.Logger) *AuditLogger {
	return NewAuditLoggerWithConfig(logger, AuditLoggingConfig{Enabled: true})
}

// NewAuditLoggerWithConfig creates a new AuditLogger with the given configuration.
func NewAuditLoggerWithConfig(logger *slog.Logger, config AuditLoggingConfig) *AuditLogger {
	if logger == nil {
		logger = slog.Default()
	}
	return &AuditLogger{
		logger:        logger,
		enabled:       config.Enabled,
		includePoints: config.IncludePoints,
	}
}

// LogNavigation logs a completed navigation event.
func (al *AuditLogger) LogNavigation(e *NavigationEvent) {
	if al == nil || !al.enabled {
		return
	}
	if e.Action == "point" && !al.includePoints {
		return
	}

	al.logger.LogAttrs(context.Background(), slog.LevelInfo, "navigation", e.LogAttrs()...)
}
