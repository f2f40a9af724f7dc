package slides

import (
	"errors"
	"fmt"
	"net/http"

	"google.golang.org/api/googleapi"
)

var (
	// ErrNotAuthenticated is returned before the Google authorization completed
	ErrNotAuthenticated = errors.New("not authenticated with Google")

	// ErrNotFound is returned when the presentation does not exist or is not visible
	ErrNotFound = errors.New("presentation not found")

	// ErrAccessDenied is returned when the account may not read the presentation
	ErrAccessDenied = errors.New("access denied")

	// ErrMalformedResponse is returned when the API payload lacks required fields
	ErrMalformedResponse = errors.New("malformed presentation response")
)

// translateError maps Google API status codes onto the sentinel errors
func translateError(action string, err error) error {
	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		switch apiErr.Code {
		case http.StatusNotFound:
			return fmt.Errorf("%w: %s", ErrNotFound, apiErr.Message)
		case http.StatusForbidden:
			return fmt.Errorf("%w: %s", ErrAccessDenied, apiErr.Message)
		}
	}
	return fmt.Errorf("failed to %s: %w", action, err)
}

// Message returns the text shown to API clients for a provider error
func Message(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrNotAuthenticated):
		return "Not authenticated with Google"
	case errors.Is(err, ErrNotFound):
		return "Presentation not found. Check the presentation ID and make sure it's shared."
	case errors.Is(err, ErrAccessDenied):
		return "Access denied. Make sure the presentation is shared with your Google account."
	default:
		return err.Error()
	}
}
