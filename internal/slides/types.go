package slides

import "github.com/teemow/gestureslides/internal/presentation"

// UntitledSlide is the title of a slide without a short text run
const UntitledSlide = "Untitled Slide"

// SlideSummary describes one slide of a loaded presentation
type SlideSummary struct {
	ID    string `json:"id"`
	Index int    `json:"index"`
	Title string `json:"title"`
}

// Presentation is the provider's view of a presentation
type Presentation struct {
	ID         string         `json:"id"`
	Title      string         `json:"title"`
	SlideCount int            `json:"slideCount"`
	Slides     []SlideSummary `json:"slides"`
}

// DeckSlides converts the summaries into slides for the navigation cursor
func (p *Presentation) DeckSlides() []presentation.Slide {
	out := make([]presentation.Slide, len(p.Slides))
	for i, s := range p.Slides {
		title := s.Title
		if title == "" {
			title = presentation.DefaultTitle(i)
		}
		out[i] = presentation.Slide{
			ID:      s.ID,
			Title:   title,
			Content: presentation.ContentFor(s.ID, title),
		}
	}
	return out
}

// PresentationFile is a presentation found in the user's Drive
type PresentationFile struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	ThumbnailLink string `json:"thumbnailLink,omitempty"`
	ModifiedTime  string `json:"modifiedTime,omitempty"`
}

// SlideThumbnail links a slide to its PNG export
type SlideThumbnail struct {
	SlideNumber  int    `json:"slideNumber"`
	ObjectID     string `json:"objectId"`
	Title        string `json:"title"`
	ThumbnailURL string `json:"thumbnailUrl"`
}
