// Package resources provides MCP resources exposing the navigation session.
// Resources are read-only snapshots that MCP clients can fetch without
// calling a tool: the current slide and the view analytics of the deck.
package resources
