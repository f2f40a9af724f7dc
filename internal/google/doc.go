// Package google implements the OAuth2 web server flow used to authorize
// access to Google Slides and Google Drive.
//
// The Authenticator builds consent URLs, exchanges authorization codes and
// hands out auto-refreshing HTTP clients. Tokens are kept in an mcp-oauth
// TokenStore under a single session account; the in-memory backend is used,
// so an authorization does not survive a restart.
package google
