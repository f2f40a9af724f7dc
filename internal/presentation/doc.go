// Package presentation holds the navigation state for the loaded deck.
//
// A Cursor owns the ordered slide list and the current position within it.
// Every movement is bounded to valid indices: moving past either end, or
// jumping to an index outside the deck, is reported through a false return
// value rather than an error, so callers can always answer with a normal
// response.
//
// View counts track how many times a slide became current through
// navigation. Loading a deck does not count as a visit.
//
// Example usage:
//
//	cursor := presentation.NewCursor()
//	cursor.Load("Quarterly Review", slides)
//
//	if slide, ok := cursor.Advance(); ok {
//	    fmt.Println("now showing", slide.Title)
//	}
package presentation
