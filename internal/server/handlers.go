package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/teemow/gestureslides/internal/gesture"
	"github.com/teemow/gestureslides/internal/instrumentation"
	"github.com/teemow/gestureslides/internal/logging"
	"github.com/teemow/gestureslides/internal/slides"
)

const maxRequestBody = 64 << 10

func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	if r.Body == nil || r.ContentLength == 0 {
		return nil
	}
	return json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBody)).Decode(v)
}

func (sc *ServerContext) handleAuthStatus(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, authStatusResponse{
		IsAuthenticated:     sc.Authenticated(),
		CurrentPresentation: sc.PresentationID(),
	})
}

func (sc *ServerContext) handleLoadPresentation(w http.ResponseWriter, r *http.Request) {
	var req loadRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.PresentationID == "" {
		writeError(w, http.StatusBadRequest, "presentationId required")
		return
	}
	if !sc.Authenticated() {
		writeError(w, http.StatusUnauthorized, "Not authenticated with Google")
		return
	}

	p, err := sc.LoadPresentation(r.Context(), req.PresentationID)
	if err != nil {
		sc.logger.Warn("failed to load presentation",
			logging.Presentation(req.PresentationID),
			logging.RequestID(RequestIDFromContext(r.Context())),
			logging.Err(err))

		status := http.StatusInternalServerError
		if errors.Is(err, slides.ErrNotAuthenticated) {
			status = http.StatusUnauthorized
		}
		writeProviderError(w, status, slides.Message(err))
		return
	}

	writeJSON(w, http.StatusOK, loadResponse{
		Success: true,
		Message: fmt.Sprintf("Loaded presentation: %s", p.Title),
		Presentation: loadedPresentation{
			ID:           p.ID,
			Title:        p.Title,
			SlideCount:   p.SlideCount,
			CurrentSlide: slideNumber(sc.cursor.State()),
			Slides:       p.Slides,
		},
	})
}

func (sc *ServerContext) handleSlides(w http.ResponseWriter, _ *http.Request) {
	state := sc.cursor.State()
	if state.TotalSlides == 0 {
		writeError(w, http.StatusBadRequest, "No presentation loaded")
		return
	}

	writeJSON(w, http.StatusOK, slidesResponse{
		Slides:            sc.cursor.Slides(),
		CurrentSlideIndex: state.CurrentIndex,
		TotalSlides:       state.TotalSlides,
	})
}

func (sc *ServerContext) handleCurrentSlide(w http.ResponseWriter, _ *http.Request) {
	slide, ok := sc.cursor.Current()
	if !ok {
		writeError(w, http.StatusBadRequest, "No presentation loaded or invalid slide")
		return
	}

	state := sc.cursor.State()
	writeJSON(w, http.StatusOK, currentSlideResponse{
		Slide:       slide,
		SlideNumber: slideNumber(state),
		TotalSlides: state.TotalSlides,
		Title:       state.Title,
	})
}

func (sc *ServerContext) handleStatus(w http.ResponseWriter, _ *http.Request) {
	state := sc.cursor.State()
	writeJSON(w, http.StatusOK, statusResponse{
		CurrentSlide:          slideNumber(state),
		TotalSlides:           state.TotalSlides,
		Title:                 state.Title,
		IsActive:              state.Active,
		IsAuthenticated:       sc.Authenticated(),
		CurrentPresentationID: sc.PresentationID(),
	})
}

func (sc *ServerContext) handleAnalytics(w http.ResponseWriter, _ *http.Request) {
	if sc.cursor.Len() == 0 {
		writeError(w, http.StatusBadRequest, "No presentation loaded")
		return
	}
	writeJSON(w, http.StatusOK, sc.cursor.Analytics())
}

func (sc *ServerContext) handleReset(w http.ResponseWriter, _ *http.Request) {
	sc.Reset(instrumentation.SourceHTTP)
	writeJSON(w, http.StatusOK, resetResponse{
		Success: true,
		Message: "Presentation reset successfully",
	})
}

func (sc *ServerContext) handleListPresentations(w http.ResponseWriter, r *http.Request) {
	if !sc.Authenticated() {
		writeError(w, http.StatusUnauthorized, "Not authenticated with Google")
		return
	}

	files, err := sc.provider.ListPresentations(r.Context())
	if err != nil {
		sc.logger.Warn("failed to list presentations", logging.Err(err))
		writeProviderError(w, http.StatusInternalServerError, slides.Message(err))
		return
	}

	writeJSON(w, http.StatusOK, presentationsResponse{Success: true, Presentations: files})
}

func (sc *ServerContext) handlePresentationThumbnails(w http.ResponseWriter, r *http.Request) {
	if !sc.Authenticated() {
		writeError(w, http.StatusUnauthorized, "Not authenticated")
		return
	}

	id := mux.Vars(r)["id"]
	thumbs, err := sc.provider.PresentationSlides(r.Context(), id)
	if err != nil {
		sc.logger.Warn("failed to load presentation slides", logging.Presentation(id), logging.Err(err))
		writeProviderError(w, http.StatusInternalServerError, slides.Message(err))
		return
	}

	writeJSON(w, http.StatusOK, thumbnailsResponse{Slides: thumbs})
}

// respondGesture dispatches cmd and writes the outcome
func (sc *ServerContext) respondGesture(w http.ResponseWriter, r *http.Request, cmd gesture.Command) {
	outcome, state := sc.Dispatch(r.Context(), instrumentation.SourceHTTP, cmd)
	writeJSON(w, gestureStatus(outcome), NewGestureResponse(outcome, state))
}

func (sc *ServerContext) handleGestureNext(w http.ResponseWriter, r *http.Request) {
	sc.respondGesture(w, r, gesture.Command{Kind: gesture.KindNext, Confidence: 1})
}

func (sc *ServerContext) handleGesturePrevious(w http.ResponseWriter, r *http.Request) {
	sc.respondGesture(w, r, gesture.Command{Kind: gesture.KindPrevious, Confidence: 1})
}

func (sc *ServerContext) handleGestureJump(w http.ResponseWriter, r *http.Request) {
	var req jumpRequest
	if err := decodeJSON(w, r, &req); err != nil || req.SlideNumber == nil {
		writeError(w, http.StatusBadRequest, "slideNumber must be a number")
		return
	}

	n := *req.SlideNumber
	if n != math.Trunc(n) || math.IsInf(n, 0) {
		writeError(w, http.StatusBadRequest, "slideNumber must be a whole number")
		return
	}

	// Out of int range values are still rejected by the dispatcher as invalid_slide
	target := int(math.Max(math.Min(n, math.MaxInt32), math.MinInt32))
	sc.respondGesture(w, r, gesture.Command{Kind: gesture.KindJump, Confidence: 1, TargetSlide: gesture.Target(target)})
}

func (sc *ServerContext) handleGesture(w http.ResponseWriter, r *http.Request) {
	var cmd gesture.Command
	if err := decodeJSON(w, r, &cmd); err != nil {
		writeError(w, http.StatusBadRequest, "invalid gesture command")
		return
	}
	if err := cmd.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	sc.respondGesture(w, r, cmd)
}
