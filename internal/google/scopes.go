package google

// DefaultOAuthScopes are the Google OAuth scopes requested when no scopes are configured.
//
// The scopes provide access to:
//   - Google Slides: read and navigate presentations
//   - Google Drive: list presentations and export slide thumbnails
var DefaultOAuthScopes = []string{
	// Google Slides scopes
	"https://www.googleapis.com/auth/presentations",
	"https://www.googleapis.com/auth/presentations.readonly",

	// Google Drive scopes
	"https://www.googleapis.com/auth/drive",
	"https://www.googleapis.com/auth/drive.readonly",
}
