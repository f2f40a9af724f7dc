package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"

	"github.com/teemow/gestureslides/internal/slides"
)

// fakeProvider serves canned presentations keyed by ID
type fakeProvider struct {
	mu            sync.Mutex
	ready         bool
	presentations map[string]*slides.Presentation
	files         []slides.PresentationFile
	thumbnails    map[string][]slides.SlideThumbnail
	err           error
	loads         int
}

func newFakeProvider() *fakeProvider {
	return &fakeProvider{
		ready: true,
		presentations: map[string]*slides.Presentation{
			"deck-1": testPresentation("deck-1", "Quarterly Review", 5),
			"deck-2": testPresentation("deck-2", "Roadmap", 2),
			"empty":  testPresentation("empty", "Empty", 0),
		},
		files: []slides.PresentationFile{
			{ID: "deck-1", Name: "Quarterly Review"},
			{ID: "deck-2", Name: "Roadmap"},
		},
		thumbnails: map[string][]slides.SlideThumbnail{
			"deck-2": {
				{SlideNumber: 1, ObjectID: "s0", Title: "Roadmap 0", ThumbnailURL: slides.ThumbnailURL("deck-2", "s0")},
				{SlideNumber: 2, ObjectID: "s1", Title: "Roadmap 1", ThumbnailURL: slides.ThumbnailURL("deck-2", "s1")},
			},
		},
	}
}

func testPresentation(id, title string, n int) *slides.Presentation {
	p := &slides.Presentation{ID: id, Title: title, SlideCount: n, Slides: []slides.SlideSummary{}}
	for i := 0; i < n; i++ {
		p.Slides = append(p.Slides, slides.SlideSummary{
			ID:    fmt.Sprintf("s%d", i),
			Index: i,
			Title: fmt.Sprintf("%s %d", title, i),
		})
	}
	return p
}

func (f *fakeProvider) setReady(ready bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.ready = ready
}

func (f *fakeProvider) setErr(err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.err = err
}

func (f *fakeProvider) Ready() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.ready
}

func (f *fakeProvider) LoadPresentation(_ context.Context, id string) (*slides.Presentation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.loads++
	if f.err != nil {
		return nil, f.err
	}
	p, ok := f.presentations[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", slides.ErrNotFound, id)
	}
	return p, nil
}

func (f *fakeProvider) ListPresentations(context.Context) ([]slides.PresentationFile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	return f.files, nil
}

func (f *fakeProvider) PresentationSlides(_ context.Context, id string) ([]slides.SlideThumbnail, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	thumbs, ok := f.thumbnails[id]
	if !ok {
		return nil, slides.ErrNotFound
	}
	return thumbs, nil
}

var errExchange = errors.New("oauth2: cannot fetch token: 400 Bad Request")

// fakeAuthenticator accepts the state "good-state" and the code "good-code"
type fakeAuthenticator struct {
	mu        sync.Mutex
	exchanged []string
}

func (a *fakeAuthenticator) NewState() string { return "good-state" }

func (a *fakeAuthenticator) VerifyState(state string) error {
	if state != "good-state" {
		return errors.New("invalid OAuth state")
	}
	return nil
}

func (a *fakeAuthenticator) AuthURL(state string) string {
	return "https://accounts.example.com/o/oauth2/auth?state=" + state
}

func (a *fakeAuthenticator) Exchange(_ context.Context, code string) (*oauth2.Token, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.exchanged = append(a.exchanged, code)
	if code != "good-code" {
		return nil, errExchange
	}
	return &oauth2.Token{AccessToken: "access"}, nil
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestContext(t *testing.T, provider *fakeProvider, opts ...func(*Options)) *ServerContext {
	t.Helper()
	o := Options{
		Provider:      provider,
		Authenticator: &fakeAuthenticator{},
		Logger:        discardLogger(),
	}
	for _, opt := range opts {
		opt(&o)
	}
	sc, err := NewServerContext(context.Background(), o)
	require.NoError(t, err)
	t.Cleanup(func() { _ = sc.Shutdown() })
	return sc
}

// do sends a request through the full router and returns the recorder
func do(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}
