package presentation

import "sync"

// Cursor tracks the current position over an ordered list of slides.
// All methods are safe for concurrent use; each call observes and leaves
// the cursor in a consistent state.
type Cursor struct {
	mu     sync.RWMutex
	slides []Slide
	state  State
}

// NewCursor creates an empty, inactive cursor
func NewCursor() *Cursor {
	return &Cursor{}
}

// Load replaces the deck with the given slides and moves to the first slide.
// View counts of the given slides are reset. An empty deck is accepted and
// leaves the cursor active with no slides.
func (c *Cursor) Load(title string, slides []Slide) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.slides = make([]Slide, len(slides))
	for i, s := range slides {
		s.ViewCount = 0
		c.slides[i] = s
	}

	c.state = State{
		CurrentIndex: 0,
		Active:       true,
		TotalSlides:  len(c.slides),
		Title:        title,
	}
}

// Advance moves to the next slide and returns it.
// Returns false without moving when already at the last slide.
func (c *Cursor) Advance() (Slide, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state.CurrentIndex >= len(c.slides)-1 {
		return Slide{}, false
	}
	return c.visit(c.state.CurrentIndex + 1), true
}

// Retreat moves to the previous slide and returns it.
// Returns false without moving when already at the first slide.
func (c *Cursor) Retreat() (Slide, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state.CurrentIndex <= 0 || len(c.slides) == 0 {
		return Slide{}, false
	}
	return c.visit(c.state.CurrentIndex - 1), true
}

// JumpTo moves to the slide at the zero-based index and returns it.
// Returns false without moving when the index is out of range.
func (c *Cursor) JumpTo(index int) (Slide, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if index < 0 || index >= len(c.slides) {
		return Slide{}, false
	}
	return c.visit(index), true
}

// visit makes the slide at index current and counts the view.
// Callers must hold the write lock and have checked the bounds.
func (c *Cursor) visit(index int) Slide {
	c.state.CurrentIndex = index
	c.slides[index].ViewCount++
	return c.slides[index]
}

// Current returns the current slide, or false if no slide is loaded
func (c *Cursor) Current() (Slide, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	i := c.state.CurrentIndex
	if len(c.slides) == 0 || i < 0 || i >= len(c.slides) {
		return Slide{}, false
	}
	return c.slides[i], true
}

// Reset clears the deck and deactivates the cursor
func (c *Cursor) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.slides = nil
	c.state = State{}
}

// Analytics returns the view statistics of the loaded deck
func (c *Cursor) Analytics() Analytics {
	c.mu.RLock()
	defer c.mu.RUnlock()

	a := Analytics{
		TotalSlides:     c.state.TotalSlides,
		CurrentSlide:    c.state.CurrentIndex + 1,
		SlideViewCounts: make([]SlideViews, 0, len(c.slides)),
	}

	for i, s := range c.slides {
		views := SlideViews{ID: s.ID, Title: s.Title, ViewCount: s.ViewCount}
		a.SlideViewCounts = append(a.SlideViewCounts, views)
		if i == 0 || s.ViewCount > a.MostViewedSlide.ViewCount {
			a.MostViewedSlide = views
		}
	}

	return a
}

// State returns a snapshot of the cursor state
func (c *Cursor) State() State {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.state
}

// Slides returns a copy of the loaded slides in deck order
func (c *Cursor) Slides() []Slide {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]Slide, len(c.slides))
	copy(out, c.slides)
	return out
}

// Len returns the number of loaded slides
func (c *Cursor) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.slides)
}
