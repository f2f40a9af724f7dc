package server

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"golang.org/x/oauth2"

	"github.com/teemow/gestureslides/internal/gesture"
	"github.com/teemow/gestureslides/internal/instrumentation"
	"github.com/teemow/gestureslides/internal/logging"
	"github.com/teemow/gestureslides/internal/presentation"
	"github.com/teemow/gestureslides/internal/slides"
)

// Provider is the presentation source the server loads decks from
type Provider interface {
	Ready() bool
	LoadPresentation(ctx context.Context, id string) (*slides.Presentation, error)
	ListPresentations(ctx context.Context) ([]slides.PresentationFile, error)
	PresentationSlides(ctx context.Context, id string) ([]slides.SlideThumbnail, error)
}

// Authenticator runs the provider's OAuth web server flow
type Authenticator interface {
	NewState() string
	VerifyState(state string) error
	AuthURL(state string) string
	Exchange(ctx context.Context, code string) (*oauth2.Token, error)
}

// Options configures a ServerContext
type Options struct {
	Provider      Provider
	Authenticator Authenticator

	// Metrics may be nil
	Metrics *instrumentation.Metrics

	// Audit may be nil
	Audit *instrumentation.AuditLogger

	Logger *slog.Logger
}

// ServerContext owns the navigation session shared by the HTTP API, the
// gesture stream and the MCP tools. There is exactly one per process.
type ServerContext struct {
	ctx    context.Context
	cancel context.CancelFunc

	cursor     *presentation.Cursor
	dispatcher *gesture.Dispatcher

	provider Provider
	auth     Authenticator
	metrics  *instrumentation.Metrics
	audit    *instrumentation.AuditLogger
	logger   *slog.Logger

	// mu guards presentationID and shutdown, and serializes deck replacement
	mu             sync.RWMutex
	presentationID string
	shutdown       bool
}

// NewServerContext creates a new server context with an empty deck
func NewServerContext(ctx context.Context, opts Options) (*ServerContext, error) {
	if opts.Provider == nil {
		return nil, fmt.Errorf("presentation provider is required")
	}
	if opts.Metrics == nil {
		opts.Metrics = &instrumentation.Metrics{}
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}

	shutdownCtx, cancel := context.WithCancel(ctx)
	cursor := presentation.NewCursor()

	return &ServerContext{
		ctx:        shutdownCtx,
		cancel:     cancel,
		cursor:     cursor,
		dispatcher: gesture.NewDispatcher(cursor),
		provider:   opts.Provider,
		auth:       opts.Authenticator,
		metrics:    opts.Metrics,
		audit:      opts.Audit,
		logger:     opts.Logger,
	}, nil
}

// Context returns the server context
func (sc *ServerContext) Context() context.Context {
	return sc.ctx
}

// Cursor returns the navigation cursor
func (sc *ServerContext) Cursor() *presentation.Cursor {
	return sc.cursor
}

// Provider returns the presentation provider
func (sc *ServerContext) Provider() Provider {
	return sc.provider
}

// Authenticator returns the OAuth authenticator, or nil when none is configured
func (sc *ServerContext) Authenticator() Authenticator {
	return sc.auth
}

// Metrics returns the metrics recorder
func (sc *ServerContext) Metrics() *instrumentation.Metrics {
	return sc.metrics
}

// Logger returns the server logger
func (sc *ServerContext) Logger() *slog.Logger {
	return sc.logger
}

// Authenticated reports whether the provider can be called
func (sc *ServerContext) Authenticated() bool {
	return sc.provider.Ready()
}

// PresentationID returns the ID of the loaded presentation, or "" if none
func (sc *ServerContext) PresentationID() string {
	sc.mu.RLock()
	defer sc.mu.RUnlock()
	return sc.presentationID
}

// LoadPresentation fetches a presentation from the provider and replaces the
// deck with it. The deck is left untouched when the provider fails.
func (sc *ServerContext) LoadPresentation(ctx context.Context, id string) (*slides.Presentation, error) {
	if !sc.provider.Ready() {
		return nil, slides.ErrNotAuthenticated
	}

	p, err := sc.provider.LoadPresentation(ctx, id)
	if err != nil {
		return nil, err
	}

	sc.mu.Lock()
	sc.cursor.Load(p.Title, p.DeckSlides())
	sc.presentationID = p.ID
	sc.mu.Unlock()

	logging.WithOperation(sc.logger, "load_presentation").Info("presentation loaded",
		logging.Presentation(p.ID),
		slog.String("title", p.Title),
		slog.Int("total_slides", p.SlideCount))

	return p, nil
}

// Reset clears the deck and forgets the loaded presentation
func (sc *ServerContext) Reset(source string) {
	event := instrumentation.NewNavigationEvent(source, "reset").WithPresentation(sc.PresentationID())

	sc.mu.Lock()
	sc.cursor.Reset()
	sc.presentationID = ""
	sc.mu.Unlock()

	sc.audit.LogNavigation(event.Complete("reset", 0))
	sc.logger.Info("presentation reset", slog.String("source", source))
}

// Dispatch applies a gesture command to the deck, recording metrics and the
// audit trail for it. The returned State is the deck right after this
// command, before any other command runs.
func (sc *ServerContext) Dispatch(ctx context.Context, source string, cmd gesture.Command) (gesture.Outcome, presentation.State) {
	ctx, span := instrumentation.StartSpan(ctx, "gesture.dispatch",
		instrumentation.NewSpanAttributeBuilder().WithGesture(string(cmd.Kind)).Build()...)
	defer span.End()

	event := instrumentation.NewNavigationEvent(source, string(cmd.Kind)).
		WithPresentation(sc.PresentationID()).
		WithRequestID(RequestIDFromContext(ctx)).
		WithSpanContext(ctx)

	// Gestures are serialized so the state reported with an outcome is the
	// one that outcome produced
	sc.mu.Lock()
	outcome := sc.dispatcher.Dispatch(cmd)
	state := sc.cursor.State()
	sc.mu.Unlock()

	slide := 0
	if state.TotalSlides > 0 {
		slide = state.CurrentIndex + 1
	}

	span.SetAttributes(instrumentation.NewSpanAttributeBuilder().
		WithResult(string(outcome.Result)).
		WithSlide(slide).
		Build()...)

	sc.metrics.RecordGesture(ctx, source, string(cmd.Kind), string(outcome.Result))
	sc.audit.LogNavigation(event.Complete(string(outcome.Result), slide))

	sc.logger.Debug("gesture dispatched",
		logging.Gesture(string(cmd.Kind)),
		logging.Result(string(outcome.Result)),
		slog.Float64("confidence", cmd.Confidence),
		logging.Slide(slide))

	return outcome, state
}

// IsShutdown returns whether the server has been shutdown
func (sc *ServerContext) IsShutdown() bool {
	sc.mu.RLock()
	defer sc.mu.RUnlock()
	return sc.shutdown
}

// Shutdown shuts down the server context
func (sc *ServerContext) Shutdown() error {
	sc.mu.Lock()
	defer sc.mu.Unlock()

	if sc.shutdown {
		return nil
	}

	sc.shutdown = true
	sc.cancel()
	return nil
}
