package server

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHealthChecker_Liveness(t *testing.T) {
	sc := newTestContext(t, newFakeProvider())
	h := NewRouter(sc, RouterOptions{})

	rec := do(t, h, http.MethodGet, "/healthz", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, healthStatusOK, decodeBody[HealthResponse](t, rec).Status)
}

func TestHealthChecker_Readiness(t *testing.T) {
	provider := newFakeProvider()
	provider.setReady(false)
	sc := newTestContext(t, provider)
	health := NewHealthChecker(sc)
	h := NewRouter(sc, RouterOptions{Health: health})

	rec := do(t, h, http.MethodGet, "/readyz", "")
	assert.Equal(t, http.StatusOK, rec.Code, "readiness does not wait for Google authorization")

	health.SetReady(false)
	assert.False(t, health.IsReady())
	rec = do(t, h, http.MethodGet, "/readyz", "")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Equal(t, healthStatusNotReady, decodeBody[HealthResponse](t, rec).Checks["ready"])

	health.SetReady(true)
	require.NoError(t, sc.Shutdown())
	rec = do(t, h, http.MethodGet, "/readyz", "")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Equal(t, healthStatusShuttingDown, decodeBody[HealthResponse](t, rec).Checks["shutdown"])
}

func TestHealthChecker_ServiceHealth(t *testing.T) {
	sc := newTestContext(t, newFakeProvider())
	h := NewRouter(sc, RouterOptions{})

	resp := decodeBody[ServiceHealthResponse](t, do(t, h, http.MethodGet, "/health", ""))
	assert.Equal(t, "OK", resp.Status)
	assert.True(t, resp.IsAuthenticated)
	assert.False(t, resp.PresentationLoaded)
	assert.Equal(t, 0, resp.CurrentSlide)
	assert.NotEmpty(t, resp.Uptime)

	_, err := sc.LoadPresentation(context.Background(), "deck-2")
	require.NoError(t, err)
	do(t, h, http.MethodPost, "/gesture/next", "")

	resp = decodeBody[ServiceHealthResponse](t, do(t, h, http.MethodGet, "/health", ""))
	assert.True(t, resp.PresentationLoaded)
	assert.Equal(t, 2, resp.CurrentSlide)
	assert.Equal(t, 2, resp.TotalSlides)
}

func TestHealthChecker_NilContext(t *testing.T) {
	h := NewHealthChecker(nil)
	assert.False(t, h.isServerShuttingDown())
}
