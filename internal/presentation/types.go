package presentation

import "fmt"

// Slide is a single slide of the loaded deck
type Slide struct {
	// ID is the provider's object identifier for the slide
	ID string `json:"id"`

	// Title is the display title
	Title string `json:"title"`

	// Content is the display content derived from the slide
	Content string `json:"content"`

	// ViewCount is the number of times navigation made this slide current
	ViewCount int `json:"viewCount"`
}

// State describes the cursor position over the loaded deck.
// CurrentIndex is zero-based and only meaningful when TotalSlides > 0.
type State struct {
	CurrentIndex int    `json:"currentSlideIndex"`
	Active       bool   `json:"isActive"`
	TotalSlides  int    `json:"totalSlides"`
	Title        string `json:"title"`
}

// SlideViews is the per-slide view count entry of Analytics
type SlideViews struct {
	ID        string `json:"id,omitempty"`
	Title     string `json:"title,omitempty"`
	ViewCount int    `json:"viewCount"`
}

// Analytics summarizes how the deck has been navigated
type Analytics struct {
	TotalSlides int `json:"totalSlides"`

	// CurrentSlide is the 1-based number of the current slide
	CurrentSlide int `json:"currentSlide"`

	SlideViewCounts []SlideViews `json:"slideViewCounts"`

	// MostViewedSlide is the first slide in deck order with the highest view
	// count, or a zero placeholder when the deck is empty
	MostViewedSlide SlideViews `json:"mostViewedSlide"`
}

// DefaultTitle returns the fallback title for the slide at the zero-based index
func DefaultTitle(index int) string {
	return fmt.Sprintf("Slide %d", index+1)
}

// ContentFor derives the display content of a slide from its title
func ContentFor(id, title string) string {
	if title != "" {
		return title
	}
	return fmt.Sprintf("Slide content for %s", id)
}
