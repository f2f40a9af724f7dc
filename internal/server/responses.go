package server

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/teemow/gestureslides/internal/gesture"
	"github.com/teemow/gestureslides/internal/presentation"
	"github.com/teemow/gestureslides/internal/slides"
)

type errorResponse struct {
	Success *bool  `json:"success,omitempty"`
	Error   string `json:"error"`
}

// GestureResponse is returned for every dispatched gesture
type GestureResponse struct {
	Success      bool                `json:"success"`
	Message      string              `json:"message"`
	Result       gesture.Result      `json:"result"`
	CurrentSlide int                 `json:"currentSlide"`
	TotalSlides  int                 `json:"totalSlides"`
	SlideData    *presentation.Slide `json:"slideData,omitempty"`

	// Error repeats Message for rejected commands
	Error string `json:"error,omitempty"`
}

// NewGestureResponse describes an outcome together with the deck state after it
func NewGestureResponse(outcome gesture.Outcome, state presentation.State) GestureResponse {
	resp := GestureResponse{
		Success:      outcome.Moved() || outcome.Result == gesture.ResultPointed,
		Message:      outcome.Message,
		Result:       outcome.Result,
		CurrentSlide: slideNumber(state),
		TotalSlides:  state.TotalSlides,
		SlideData:    outcome.Slide,
	}
	if outcome.Rejected() {
		resp.Error = outcome.Message
	}
	return resp
}

// gestureStatus maps an outcome onto the HTTP status of its response
func gestureStatus(outcome gesture.Outcome) int {
	if outcome.Rejected() {
		return http.StatusBadRequest
	}
	return http.StatusOK
}

// slideNumber returns the 1-based current slide, or 0 when no deck is loaded
func slideNumber(state presentation.State) int {
	if state.TotalSlides == 0 {
		return 0
	}
	return state.CurrentIndex + 1
}

type authStatusResponse struct {
	IsAuthenticated     bool   `json:"isAuthenticated"`
	CurrentPresentation string `json:"currentPresentation,omitempty"`
}

type loadRequest struct {
	PresentationID string `json:"presentationId"`
}

type loadedPresentation struct {
	ID           string                `json:"id"`
	Title        string                `json:"title"`
	SlideCount   int                   `json:"slideCount"`
	CurrentSlide int                   `json:"currentSlide"`
	Slides       []slides.SlideSummary `json:"slides"`
}

type loadResponse struct {
	Success      bool               `json:"success"`
	Message      string             `json:"message"`
	Presentation loadedPresentation `json:"presentation"`
}

type slidesResponse struct {
	Slides            []presentation.Slide `json:"slides"`
	CurrentSlideIndex int                  `json:"currentSlideIndex"`
	TotalSlides       int                  `json:"totalSlides"`
}

type currentSlideResponse struct {
	Slide       presentation.Slide `json:"slide"`
	SlideNumber int                `json:"slideNumber"`
	TotalSlides int                `json:"totalSlides"`
	Title       string             `json:"title"`
}

type statusResponse struct {
	CurrentSlide          int    `json:"currentSlide"`
	TotalSlides           int    `json:"totalSlides"`
	Title                 string `json:"title"`
	IsActive              bool   `json:"isActive"`
	IsAuthenticated       bool   `json:"isAuthenticated"`
	CurrentPresentationID string `json:"currentPresentationId,omitempty"`
}

type resetResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type presentationsResponse struct {
	Success       bool                      `json:"success"`
	Presentations []slides.PresentationFile `json:"presentations"`
}

type thumbnailsResponse struct {
	Slides []slides.SlideThumbnail `json:"slides"`
}

type jumpRequest struct {
	SlideNumber *float64 `json:"slideNumber"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Debug("failed to write response", slog.Any("error", err))
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}

// writeProviderError reports a failed provider call with success=false
func writeProviderError(w http.ResponseWriter, status int, message string) {
	success := false
	writeJSON(w, status, errorResponse{Success: &success, Error: message})
}
