// Package google_tools provides MCP tools for Google OAuth authorization.
//
// The OAuth flow:
//  1. Call google_auth_status to see whether a token is stored
//  2. If not, call google_get_auth_url to get the consent URL
//  3. The user visits the URL and grants access to Slides and Drive
//  4. The callback at /auth/callback stores the token, or the user copies
//     the code from the redirect and the agent calls google_save_auth_code
//
// The token is refreshed automatically once stored.
package google_tools
