package server

import (
	"net/http"

	"github.com/gorilla/mux"
)

// RouterOptions configures the HTTP API
type RouterOptions struct {
	// Health serves /health, /healthz and /readyz. A checker over the
	// server context is created when nil.
	Health *HealthChecker

	// MCP serves the MCP streamable HTTP endpoint at /mcp when set
	MCP http.Handler
}

// NewRouter builds the HTTP API over the server context
func NewRouter(sc *ServerContext, opts RouterOptions) http.Handler {
	r := mux.NewRouter()
	r.Use(sc.observe)

	// Provider authorization
	r.HandleFunc("/auth/google", sc.handleAuthGoogle).Methods(http.MethodGet)
	r.HandleFunc("/auth/callback", sc.handleAuthCallback).Methods(http.MethodGet)
	r.HandleFunc("/auth/status", sc.handleAuthStatus).Methods(http.MethodGet)

	// Deck
	r.HandleFunc("/presentation/load", sc.handleLoadPresentation).Methods(http.MethodPost)
	r.HandleFunc("/presentation/slides", sc.handleSlides).Methods(http.MethodGet)
	r.HandleFunc("/presentation/current-slide", sc.handleCurrentSlide).Methods(http.MethodGet)
	r.HandleFunc("/presentation/status", sc.handleStatus).Methods(http.MethodGet)
	r.HandleFunc("/presentation/analytics", sc.handleAnalytics).Methods(http.MethodGet)
	r.HandleFunc("/presentation/reset", sc.handleReset).Methods(http.MethodPost)

	// Drive browsing
	r.HandleFunc("/presentations", sc.handleListPresentations).Methods(http.MethodGet)
	r.HandleFunc("/presentations/{id}/slides", sc.handlePresentationThumbnails).Methods(http.MethodGet)

	// Gestures
	r.HandleFunc("/gesture", sc.handleGesture).Methods(http.MethodPost)
	r.HandleFunc("/gesture/next", sc.handleGestureNext).Methods(http.MethodPost)
	r.HandleFunc("/gesture/previous", sc.handleGesturePrevious).Methods(http.MethodPost)
	r.HandleFunc("/gesture/jump", sc.handleGestureJump).Methods(http.MethodPost)
	r.HandleFunc("/gesture/stream", sc.handleGestureStream).Methods(http.MethodGet)

	health := opts.Health
	if health == nil {
		health = NewHealthChecker(sc)
	}
	health.RegisterHealthEndpoints(r)

	if opts.MCP != nil {
		r.PathPrefix("/mcp").Handler(opts.MCP)
	}

	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusNotFound, "not found")
	})
	r.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	})

	return withCORS(withRequestID(r))
}
