package logging

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
)

// Common log attribute keys for consistent naming across the codebase.
const (
	KeyOperation    = "operation"
	KeyComponent    = "component"
	KeyPresentation = "presentation_id"
	KeySlide        = "slide"
	KeyGesture      = "gesture"
	KeyResult       = "result"
	KeyRequestID    = "request_id"
	KeyDuration     = "duration"
	KeyStatus       = "status"
	KeyError        = "error"
)

// Status values for consistent logging.
// Note: These are intentionally duplicated from instrumentation package
// to avoid circular dependencies (instrumentation imports logging).
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// WithOperation returns a logger with the operation attribute set.
func WithOperation(logger *slog.Logger, operation string) *slog.Logger {
	return logger.With(slog.String(KeyOperation, operation))
}

// WithComponent returns a logger with the component attribute set.
func WithComponent(logger *slog.Logger, component string) *slog.Logger {
	return logger.With(slog.String(KeyComponent, component))
}

// Operation returns a slog attribute for the operation name.
func Operation(op string) slog.Attr {
	return slog.String(KeyOperation, op)
}

// Presentation returns a slog attribute for the presentation identifier.
func Presentation(id string) slog.Attr {
	return slog.String(KeyPresentation, id)
}

// Slide returns a slog attribute for a 1-based slide number.
func Slide(number int) slog.Attr {
	return slog.Int(KeySlide, number)
}

// Gesture returns a slog attribute for the gesture kind.
func Gesture(kind string) slog.Attr {
	return slog.String(KeyGesture, kind)
}

// Result returns a slog attribute for an operation result.
func Result(result string) slog.Attr {
	return slog.String(KeyResult, result)
}

// RequestID returns a slog attribute for the request identifier.
func RequestID(id string) slog.Attr {
	return slog.String(KeyRequestID, id)
}

// Status returns a slog attribute for the status.
func Status(status string) slog.Attr {
	return slog.String(KeyStatus, status)
}

// Err returns a slog attribute for an error.
// If err is nil, returns an empty Group attribute that will be omitted from output.
// This allows safely passing Err(maybeNilErr) without adding empty attributes.
//
// Usage:
//
//	logger.Info("operation", logging.Err(err))  // Safe even if err is nil
func Err(err error) slog.Attr {
	if err == nil {
		return slog.Group("")
	}
	return slog.String(KeyError, err.Error())
}

// SanitizeToken returns a masked version of a token for logging.
// It returns a length indicator without exposing any token content,
// as even partial token prefixes can aid attacks.
func SanitizeToken(token string) string {
	if token == "" {
		return "<empty>"
	}
	return fmt.Sprintf("[token:%d chars]", len(token))
}

// NewHandler builds the slog handler used by the server.
// Format is "json" or "text"; anything else falls back to text.
func NewHandler(w io.Writer, format string, debug bool) slog.Handler {
	opts := &slog.HandlerOptions{Level: slog.LevelInfo}
	if debug {
		opts.Level = slog.LevelDebug
	}

	if strings.EqualFold(format, "json") {
		return slog.NewJSONHandler(w, opts)
	}
	return slog.NewTextHandler(w, opts)
}
