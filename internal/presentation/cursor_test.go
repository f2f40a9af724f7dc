package presentation

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testSlides(n int) []Slide {
	slides := make([]Slide, n)
	for i := range slides {
		slides[i] = Slide{
			ID:    fmt.Sprintf("p%d", i),
			Title: fmt.Sprintf("S%d", i),
		}
		slides[i].Content = ContentFor(slides[i].ID, slides[i].Title)
	}
	return slides
}

func loadedCursor(t *testing.T, n int) *Cursor {
	t.Helper()
	c := NewCursor()
	c.Load("Deck", testSlides(n))
	return c
}

func TestCursor_Load(t *testing.T) {
	c := NewCursor()
	input := testSlides(3)
	input[1].ViewCount = 7

	c.Load("Deck", input)

	state := c.State()
	assert.Equal(t, 0, state.CurrentIndex)
	assert.Equal(t, 3, state.TotalSlides)
	assert.True(t, state.Active)
	assert.Equal(t, "Deck", state.Title)

	for _, s := range c.Slides() {
		assert.Zero(t, s.ViewCount, "load must not count as a visit")
	}

	// The cursor keeps its own copy of the slides
	input[0].Title = "changed"
	current, ok := c.Current()
	require.True(t, ok)
	assert.Equal(t, "S0", current.Title)
}

func TestCursor_LoadEmpty(t *testing.T) {
	c := NewCursor()
	c.Load("Empty", nil)

	state := c.State()
	assert.True(t, state.Active)
	assert.Equal(t, 0, state.TotalSlides)
	assert.Equal(t, 0, c.Len())

	_, ok := c.Current()
	assert.False(t, ok)
	_, ok = c.Advance()
	assert.False(t, ok)
	_, ok = c.Retreat()
	assert.False(t, ok)
	_, ok = c.JumpTo(0)
	assert.False(t, ok)
}

func TestCursor_LoadReplacesDeck(t *testing.T) {
	c := loadedCursor(t, 5)
	c.Advance()
	c.Advance()

	c.Load("Second", testSlides(2))

	state := c.State()
	assert.Equal(t, 0, state.CurrentIndex)
	assert.Equal(t, 2, state.TotalSlides)
	assert.Equal(t, "Second", state.Title)
}

func TestCursor_AdvanceStopsAtLastSlide(t *testing.T) {
	const n = 4
	c := loadedCursor(t, n)

	prev := c.State().CurrentIndex
	for i := 0; i < n+3; i++ {
		slide, ok := c.Advance()
		idx := c.State().CurrentIndex

		assert.GreaterOrEqual(t, idx, prev, "index must not decrease")
		assert.LessOrEqual(t, idx, n-1, "index must stay in range")
		if i < n-1 {
			require.True(t, ok)
			assert.Equal(t, fmt.Sprintf("S%d", i+1), slide.Title)
		} else {
			assert.False(t, ok)
			assert.Equal(t, Slide{}, slide)
			assert.Equal(t, n-1, idx)
		}
		prev = idx
	}
}

func TestCursor_RetreatStopsAtFirstSlide(t *testing.T) {
	c := loadedCursor(t, 3)

	_, ok := c.Retreat()
	assert.False(t, ok)
	assert.Equal(t, 0, c.State().CurrentIndex)

	c.JumpTo(2)
	slide, ok := c.Retreat()
	require.True(t, ok)
	assert.Equal(t, "S1", slide.Title)
	assert.Equal(t, 1, slide.ViewCount)

	slide, ok = c.Retreat()
	require.True(t, ok)
	assert.Equal(t, "S0", slide.Title)

	_, ok = c.Retreat()
	assert.False(t, ok)
	assert.Equal(t, 0, c.State().CurrentIndex)
}

func TestCursor_JumpTo(t *testing.T) {
	tests := []struct {
		name      string
		index     int
		wantOK    bool
		wantIndex int
	}{
		{"first", 0, true, 0},
		{"middle", 2, true, 2},
		{"last", 4, true, 4},
		{"negative", -1, false, 0},
		{"past end", 5, false, 0},
		{"far past end", 100, false, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := loadedCursor(t, 5)
			before := c.Slides()

			slide, ok := c.JumpTo(tt.index)

			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantIndex, c.State().CurrentIndex)
			if tt.wantOK {
				assert.Equal(t, 1, slide.ViewCount)
				assert.Equal(t, before[tt.index].ViewCount+1, c.Slides()[tt.index].ViewCount)
			} else {
				assert.Equal(t, before, c.Slides(), "out of range jump must not change state")
			}
		})
	}
}

func TestCursor_ViewCountsMatchVisits(t *testing.T) {
	c := loadedCursor(t, 3)

	c.Advance()  // S1
	c.Advance()  // S2
	c.Retreat()  // S1
	c.JumpTo(0)  // S0
	c.JumpTo(1)  // S1
	c.Advance()  // S2
	c.Advance()  // boundary, no visit
	c.JumpTo(10) // out of range, no visit

	views := map[string]int{}
	for _, s := range c.Slides() {
		views[s.Title] = s.ViewCount
	}
	assert.Equal(t, map[string]int{"S0": 1, "S1": 3, "S2": 2}, views)
}

func TestCursor_Reset(t *testing.T) {
	c := loadedCursor(t, 5)
	c.JumpTo(3)

	c.Reset()

	state := c.State()
	assert.Equal(t, State{}, state)
	assert.Empty(t, c.Slides())
	_, ok := c.Current()
	assert.False(t, ok)

	// Reset of an empty cursor is a no-op
	c.Reset()
	assert.Equal(t, State{}, c.State())
}

func TestCursor_Analytics(t *testing.T) {
	c := loadedCursor(t, 4)
	c.JumpTo(2)
	c.JumpTo(1)
	c.JumpTo(2)
	c.JumpTo(3)
	c.JumpTo(1)

	a := c.Analytics()

	assert.Equal(t, 4, a.TotalSlides)
	assert.Equal(t, 2, a.CurrentSlide)
	require.Len(t, a.SlideViewCounts, 4)
	assert.Equal(t, SlideViews{ID: "p0", Title: "S0", ViewCount: 0}, a.SlideViewCounts[0])
	// S1 and S2 both have two views; the first in deck order wins
	assert.Equal(t, SlideViews{ID: "p1", Title: "S1", ViewCount: 2}, a.MostViewedSlide)
}

func TestCursor_AnalyticsNoViews(t *testing.T) {
	c := loadedCursor(t, 3)

	a := c.Analytics()
	assert.Equal(t, "p0", a.MostViewedSlide.ID)
	assert.Equal(t, 1, a.CurrentSlide)
}

func TestCursor_AnalyticsEmpty(t *testing.T) {
	a := NewCursor().Analytics()

	assert.Equal(t, 0, a.TotalSlides)
	assert.Empty(t, a.SlideViewCounts)
	assert.Equal(t, SlideViews{}, a.MostViewedSlide)
}

func TestCursor_Scenario(t *testing.T) {
	c := loadedCursor(t, 5)

	slide, ok := c.Advance()
	require.True(t, ok)
	assert.Equal(t, 1, c.State().CurrentIndex)
	assert.Equal(t, "S1", slide.Title)
	assert.Equal(t, 1, slide.ViewCount)

	slide, ok = c.JumpTo(3)
	require.True(t, ok)
	assert.Equal(t, 3, c.State().CurrentIndex)
	assert.Equal(t, "S3", slide.Title)
	assert.Equal(t, 1, slide.ViewCount)

	slide, ok = c.Advance()
	require.True(t, ok)
	assert.Equal(t, 4, c.State().CurrentIndex)
	assert.Equal(t, "S4", slide.Title)

	_, ok = c.Advance()
	assert.False(t, ok)
	assert.Equal(t, 4, c.State().CurrentIndex)
}

func TestCursor_ConcurrentNavigation(t *testing.T) {
	c := loadedCursor(t, 10)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				switch (i + j) % 4 {
				case 0:
					c.Advance()
				case 1:
					c.Retreat()
				case 2:
					c.JumpTo(j % 12)
				default:
					c.Analytics()
				}
			}
		}(i)
	}
	wg.Wait()

	state := c.State()
	assert.GreaterOrEqual(t, state.CurrentIndex, 0)
	assert.Less(t, state.CurrentIndex, state.TotalSlides)
}

func TestContentFor(t *testing.T) {
	assert.Equal(t, "Intro", ContentFor("p1", "Intro"))
	assert.Equal(t, "Slide content for p1", ContentFor("p1", ""))
	assert.Equal(t, "Slide 3", DefaultTitle(2))
}
