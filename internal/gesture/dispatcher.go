package gesture

import (
	"github.com/teemow/gestureslides/internal/presentation"
)

// Navigator is the part of the presentation cursor the dispatcher drives
type Navigator interface {
	Len() int
	Advance() (presentation.Slide, bool)
	Retreat() (presentation.Slide, bool)
	JumpTo(index int) (presentation.Slide, bool)
	Current() (presentation.Slide, bool)
}

// Dispatcher translates gesture commands into cursor movements.
// It keeps no state of its own between calls.
type Dispatcher struct {
	nav Navigator
}

// NewDispatcher creates a dispatcher driving the given navigator
func NewDispatcher(nav Navigator) *Dispatcher {
	return &Dispatcher{nav: nav}
}

// Dispatch applies a single command and describes what happened.
// Low-confidence commands and commands against an empty deck never move the cursor.
func (d *Dispatcher) Dispatch(cmd Command) Outcome {
	if cmd.Confidence < MinConfidence {
		return Outcome{Result: ResultConfidenceTooLow, Message: "Gesture confidence too low"}
	}

	if d.nav.Len() == 0 {
		return Outcome{Result: ResultNoPresentation, Message: "No presentation loaded"}
	}

	switch cmd.Kind {
	case KindNext:
		if slide, ok := d.nav.Advance(); ok {
			return moved("Moved to slide: ", slide)
		}
		return Outcome{Result: ResultAtLastSlide, Message: "Cannot move forward - already at last slide"}

	case KindPrevious:
		if slide, ok := d.nav.Retreat(); ok {
			return moved("Moved to slide: ", slide)
		}
		return Outcome{Result: ResultAtFirstSlide, Message: "Cannot move backward - already at first slide"}

	case KindJump:
		if cmd.TargetSlide == nil {
			return Outcome{Result: ResultMissingTarget, Message: "Jump command missing target slide"}
		}
		// Slide numbers are 1-based, cursor indices are not
		if slide, ok := d.nav.JumpTo(*cmd.TargetSlide - 1); ok {
			return moved("Jumped to slide: ", slide)
		}
		return Outcome{Result: ResultInvalidSlide, Message: "Invalid slide number"}

	case KindPoint:
		slide, ok := d.nav.Current()
		if !ok {
			return Outcome{Result: ResultNoPresentation, Message: "No presentation loaded"}
		}
		return Outcome{
			Result:  ResultPointed,
			Message: "Pointing at slide: " + slide.Title,
			Slide:   &slide,
		}

	default:
		return Outcome{Result: ResultUnknownKind, Message: "Unknown gesture type"}
	}
}

// Next dispatches a fully confident next gesture
func (d *Dispatcher) Next() Outcome {
	return d.Dispatch(Command{Kind: KindNext, Confidence: 1})
}

// Previous dispatches a fully confident previous gesture
func (d *Dispatcher) Previous() Outcome {
	return d.Dispatch(Command{Kind: KindPrevious, Confidence: 1})
}

// Jump dispatches a fully confident jump to the 1-based slide number
func (d *Dispatcher) Jump(slideNumber int) Outcome {
	return d.Dispatch(Command{Kind: KindJump, Confidence: 1, TargetSlide: Target(slideNumber)})
}

// Point dispatches a fully confident point gesture
func (d *Dispatcher) Point() Outcome {
	return d.Dispatch(Command{Kind: KindPoint, Confidence: 1})
}

func moved(prefix string, slide presentation.Slide) Outcome {
	return Outcome{
		Result:  ResultMoved,
		Message: prefix + slide.Title,
		Slide:   &slide,
	}
}
