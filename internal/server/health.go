package server

import (
	"net/http"
	"sync/atomic"
	"time"

	"github.com/gorilla/mux"
)

// Health status constants for health check responses.
const (
	healthStatusOK           = "ok"
	healthStatusNotReady     = "not ready"
	healthStatusShuttingDown = "shutting down"
)

// HealthChecker provides the service health endpoint and the Kubernetes probes.
type HealthChecker struct {
	// ready indicates whether the server is ready to receive traffic
	ready atomic.Bool
	// serverContext provides the navigation state reported by /health
	serverContext *ServerContext
	startTime     time.Time
}

// NewHealthChecker creates a new HealthChecker.
func NewHealthChecker(sc *ServerContext) *HealthChecker {
	h := &HealthChecker{
		serverContext: sc,
		startTime:     time.Now(),
	}
	// Server starts as ready by default
	h.ready.Store(true)
	return h
}

// SetReady sets the readiness state of the server.
func (h *HealthChecker) SetReady(ready bool) {
	h.ready.Store(ready)
}

// IsReady returns whether the server is ready to receive traffic.
func (h *HealthChecker) IsReady() bool {
	return h.ready.Load()
}

// isServerShuttingDown returns false if serverContext is nil
func (h *HealthChecker) isServerShuttingDown() bool {
	return h.serverContext != nil && h.serverContext.IsShutdown()
}

// HealthResponse represents the JSON response for the probe endpoints.
type HealthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks,omitempty"`
}

// ServiceHealthResponse is the body of /health
type ServiceHealthResponse struct {
	Status             string `json:"status"`
	IsAuthenticated    bool   `json:"isAuthenticated"`
	PresentationLoaded bool   `json:"presentationLoaded"`
	CurrentSlide       int    `json:"currentSlide"`
	TotalSlides        int    `json:"totalSlides"`
	Uptime             string `json:"uptime"`
}

// LivenessHandler returns an HTTP handler for the /healthz endpoint.
// Liveness probes indicate whether the process should be restarted.
func (h *HealthChecker) LivenessHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, HealthResponse{Status: healthStatusOK})
	})
}

// ReadinessHandler returns an HTTP handler for the /readyz endpoint.
// Readiness does not depend on Google authorization; an unauthenticated
// server still serves the consent flow.
func (h *HealthChecker) ReadinessHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		checks := make(map[string]string)
		allOk := true

		if !h.ready.Load() {
			checks["ready"] = healthStatusNotReady
			allOk = false
		} else {
			checks["ready"] = healthStatusOK
		}

		if h.isServerShuttingDown() {
			checks["shutdown"] = healthStatusShuttingDown
			allOk = false
		} else {
			checks["shutdown"] = healthStatusOK
		}

		if allOk {
			writeJSON(w, http.StatusOK, HealthResponse{Status: healthStatusOK, Checks: checks})
			return
		}
		writeJSON(w, http.StatusServiceUnavailable, HealthResponse{Status: healthStatusNotReady, Checks: checks})
	})
}

// ServiceHealthHandler returns an HTTP handler for the /health endpoint,
// reporting authentication and deck state alongside liveness.
func (h *HealthChecker) ServiceHealthHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		resp := ServiceHealthResponse{
			Status: "OK",
			Uptime: time.Since(h.startTime).Truncate(time.Second).String(),
		}

		if sc := h.serverContext; sc != nil {
			state := sc.cursor.State()
			resp.IsAuthenticated = sc.Authenticated()
			resp.PresentationLoaded = state.TotalSlides > 0
			resp.CurrentSlide = slideNumber(state)
			resp.TotalSlides = state.TotalSlides
		}

		writeJSON(w, http.StatusOK, resp)
	})
}

// RegisterHealthEndpoints registers the health endpoints on the given router.
func (h *HealthChecker) RegisterHealthEndpoints(r *mux.Router) {
	r.Handle("/health", h.ServiceHealthHandler()).Methods(http.MethodGet)
	r.Handle("/healthz", h.LivenessHandler()).Methods(http.MethodGet)
	r.Handle("/readyz", h.ReadinessHandler()).Methods(http.MethodGet)
}
