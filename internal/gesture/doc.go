// Package gesture maps classified gesture events onto presentation navigation.
//
// A Dispatcher gates each Command on classifier confidence (MinConfidence),
// checks that a deck is loaded, and performs exactly one cursor operation:
//
//   - next:     advance to the following slide
//   - previous: go back to the preceding slide
//   - jump:     move to TargetSlide, a 1-based slide number
//   - point:    report the current slide without moving
//
// Every call returns an Outcome describing what happened. The dispatcher does
// not log; callers decide how outcomes are reported.
package gesture
