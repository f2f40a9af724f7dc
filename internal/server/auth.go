package server

import (
	"fmt"
	"html"
	"log/slog"
	"net/http"

	"github.com/teemow/gestureslides/internal/instrumentation"
	"github.com/teemow/gestureslides/internal/logging"
)

const authSuccessPage = `<h1>Authentication successful!</h1>
<p>You can now close this tab and use the API.</p>`

func writeHTML(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = fmt.Fprint(w, body)
}

// handleAuthGoogle redirects the browser to the Google consent screen
func (sc *ServerContext) handleAuthGoogle(w http.ResponseWriter, r *http.Request) {
	if sc.auth == nil {
		writeHTML(w, http.StatusServiceUnavailable, "<h1>Google OAuth is not configured</h1>")
		return
	}

	http.Redirect(w, r, sc.auth.AuthURL(sc.auth.NewState()), http.StatusFound)
}

// handleAuthCallback completes the authorization code flow
func (sc *ServerContext) handleAuthCallback(w http.ResponseWriter, r *http.Request) {
	if sc.auth == nil {
		writeHTML(w, http.StatusServiceUnavailable, "<h1>Google OAuth is not configured</h1>")
		return
	}

	q := r.URL.Query()
	if reason := q.Get("error"); reason != "" {
		sc.metrics.RecordOAuthAuth(r.Context(), instrumentation.OAuthResultFailure)
		writeHTML(w, http.StatusBadRequest, "<h1>Authorization was not granted</h1><p>"+html.EscapeString(reason)+"</p>")
		return
	}

	code := q.Get("code")
	if code == "" {
		writeHTML(w, http.StatusBadRequest, "<h1>No authorization code received</h1>")
		return
	}

	if err := sc.auth.VerifyState(q.Get("state")); err != nil {
		sc.metrics.RecordOAuthAuth(r.Context(), instrumentation.OAuthResultFailure)
		sc.logger.Warn("rejected OAuth callback", logging.Err(err))
		writeHTML(w, http.StatusBadRequest, "<h1>Invalid authorization state</h1><p>Start again at /auth/google.</p>")
		return
	}

	if _, err := sc.auth.Exchange(r.Context(), code); err != nil {
		sc.metrics.RecordOAuthAuth(r.Context(), instrumentation.OAuthResultFailure)
		sc.logger.Error("google authentication failed",
			slog.String("code", logging.SanitizeToken(code)),
			logging.Err(err))
		writeHTML(w, http.StatusInternalServerError, "<h1>Authentication failed</h1><p>"+html.EscapeString(err.Error())+"</p>")
		return
	}

	sc.metrics.RecordOAuthAuth(r.Context(), instrumentation.OAuthResultSuccess)
	writeHTML(w, http.StatusOK, authSuccessPage)
}
