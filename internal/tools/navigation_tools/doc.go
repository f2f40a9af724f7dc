// Package navigation_tools provides MCP tools over the navigation session.
//
// Deck tools inspect, load and reset the presentation; gesture tools drive
// the same dispatcher as the HTTP API and the gesture stream, so an agent
// and a camera can share one session. Slide numbers are 1-based.
package navigation_tools
