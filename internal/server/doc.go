// Package server exposes the navigation session over HTTP.
//
// # Key Components
//
// ServerContext owns the single navigation session of the process: the slide
// cursor, the gesture dispatcher and the presentation provider. Loading or
// resetting the deck takes an exclusive lock so a gesture can never observe a
// half replaced deck.
//
// NewRouter registers the JSON API on a gorilla/mux router:
//   - /auth/*: Google OAuth web server flow and status
//   - /presentation/*: load, inspect, analyze and reset the deck
//   - /presentations: browse Drive and slide thumbnails
//   - /gesture/*: single gestures and the websocket gesture stream
//   - /health, /healthz, /readyz: service health and Kubernetes probes
//
// Every request gets an X-Request-ID, is logged with slog and is counted in
// the HTTP metrics by route template.
//
// MetricsServer serves the Prometheus scrape endpoint on its own port.
package server
