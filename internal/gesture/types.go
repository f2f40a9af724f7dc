package gesture

import (
	"fmt"

	"github.com/teemow/gestureslides/internal/presentation"
)

// MinConfidence is the classifier confidence below which a gesture is ignored
const MinConfidence = 0.7

// Kind is the classified gesture type
type Kind string

const (
	KindNext     Kind = "next"
	KindPrevious Kind = "previous"
	KindJump     Kind = "jump"
	KindPoint    Kind = "point"
)

// Command is a classified gesture event
type Command struct {
	Kind Kind `json:"type"`

	// Confidence is the classifier score in [0, 1]
	Confidence float64 `json:"confidence"`

	// Timestamp is informational only; commands are applied in arrival order
	Timestamp int64 `json:"timestamp,omitempty"`

	// TargetSlide is the 1-based slide number for jump gestures
	TargetSlide *int `json:"targetSlide,omitempty"`
}

// Result classifies the outcome of a dispatched command
type Result string

const (
	ResultMoved            Result = "moved"
	ResultPointed          Result = "pointed"
	ResultConfidenceTooLow Result = "confidence_too_low"
	ResultNoPresentation   Result = "no_presentation"
	ResultAtLastSlide      Result = "at_last_slide"
	ResultAtFirstSlide     Result = "at_first_slide"
	ResultMissingTarget    Result = "missing_target"
	ResultInvalidSlide     Result = "invalid_slide"
	ResultUnknownKind      Result = "unknown_kind"
)

// Outcome is the structured result of dispatching one command
type Outcome struct {
	Result  Result `json:"result"`
	Message string `json:"message"`

	// Slide is the slide that became current, or the pointed-at slide.
	// Nil when nothing was resolved.
	Slide *presentation.Slide `json:"slideData,omitempty"`
}

// Moved reports whether the command changed the current slide
func (o Outcome) Moved() bool {
	return o.Result == ResultMoved
}

// Rejected reports whether the command was malformed or could not apply to
// the current session at all, as opposed to a normal negative result such as
// reaching the end of the deck.
func (o Outcome) Rejected() bool {
	switch o.Result {
	case ResultNoPresentation, ResultMissingTarget, ResultUnknownKind:
		return true
	}
	return false
}

// Target returns a pointer to n, for building jump commands
func Target(n int) *int {
	return &n
}

// Validate checks that the command is well formed as received from a classifier.
// It does not check the kind; unknown kinds are reported by Dispatch.
func (c Command) Validate() error {
	if c.Kind == "" {
		return fmt.Errorf("gesture type cannot be empty")
	}
	if c.Confidence < 0 || c.Confidence > 1 {
		return fmt.Errorf("confidence must be between 0 and 1, got %f", c.Confidence)
	}
	return nil
}
