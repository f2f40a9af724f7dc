package instrumentation

// Cardinality management helpers for metrics.
//
// Gesture commands arrive from external classifiers, so the kind label is
// client controlled. Recording it verbatim would let a misbehaving client
// create an unbounded number of series.

// knownGestureKinds are recorded as-is
var knownGestureKinds = map[string]bool{
	"next":     true,
	"previous": true,
	"jump":     true,
	"point":    true,
}

// GestureKindLabel returns the metric label for a gesture kind.
//
// Example:
//
//	GestureKindLabel("next")   // "next"
//	GestureKindLabel("wave")   // "other"
//	GestureKindLabel("")       // "unknown"
func GestureKindLabel(kind string) string {
	if kind == "" {
		return StatusUnknown
	}
	if knownGestureKinds[kind] {
		return kind
	}
	return "other"
}

// Operation types for Google API metrics.
// Status, OAuth, and Service constants are defined in config.go.
const (
	OperationGet        = "get"
	OperationList       = "list"
	OperationThumbnails = "thumbnails"
)

// Sources of navigation commands
const (
	SourceHTTP   = "http"
	SourceStream = "stream"
	SourceMCP    = "mcp"
)
