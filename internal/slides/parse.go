package slides

import (
	"fmt"
	"net/url"
	"strings"
	"unicode/utf8"

	slidesapi "google.golang.org/api/slides/v1"
)

// maxTitleLength bounds the text run accepted as a slide title
const maxTitleLength = 100

func parsePresentation(id string, p *slidesapi.Presentation) (*Presentation, error) {
	if p == nil {
		return nil, fmt.Errorf("%w: empty presentation", ErrMalformedResponse)
	}

	out := &Presentation{
		ID:         id,
		Title:      p.Title,
		SlideCount: len(p.Slides),
		Slides:     make([]SlideSummary, 0, len(p.Slides)),
	}

	for i, page := range p.Slides {
		if page == nil || page.ObjectId == "" {
			return nil, fmt.Errorf("%w: slide %d has no object ID", ErrMalformedResponse, i+1)
		}
		out.Slides = append(out.Slides, SlideSummary{
			ID:    page.ObjectId,
			Index: i,
			Title: slideTitle(page),
		})
	}

	return out, nil
}

func parseThumbnails(id string, p *slidesapi.Presentation) ([]SlideThumbnail, error) {
	parsed, err := parsePresentation(id, p)
	if err != nil {
		return nil, err
	}

	out := make([]SlideThumbnail, len(parsed.Slides))
	for i, s := range parsed.Slides {
		out[i] = SlideThumbnail{
			SlideNumber:  i + 1,
			ObjectID:     s.ID,
			Title:        s.Title,
			ThumbnailURL: ThumbnailURL(id, s.ID),
		}
	}
	return out, nil
}

// slideTitle returns the first short, non-blank text run of any shape on the slide
func slideTitle(page *slidesapi.Page) string {
	for _, element := range page.PageElements {
		if element == nil || element.Shape == nil || element.Shape.Text == nil {
			continue
		}
		for _, te := range element.Shape.Text.TextElements {
			if te == nil || te.TextRun == nil {
				continue
			}
			text := strings.TrimSpace(te.TextRun.Content)
			if text != "" && utf8.RuneCountInString(text) < maxTitleLength {
				return text
			}
		}
	}
	return UntitledSlide
}

// ThumbnailURL returns the PNG export link of a single slide
func ThumbnailURL(presentationID, objectID string) string {
	return fmt.Sprintf("https://docs.google.com/presentation/d/%s/export?format=png&pageid=%s",
		url.PathEscape(presentationID), url.QueryEscape(objectID))
}
