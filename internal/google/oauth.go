package google

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"

	"github.com/teemow/gestureslides/internal/logging"
)

// stateTTL bounds how long a consent URL stays usable
const stateTTL = 10 * time.Minute

var (
	// ErrInvalidState is returned when the callback state was not issued by this server
	ErrInvalidState = errors.New("invalid or expired OAuth state")

	// ErrNoToken is returned when no Google token has been stored yet
	ErrNoToken = errors.New("not authenticated with Google")
)

// Config holds the OAuth client settings of the Google Cloud project
type Config struct {
	ClientID     string
	ClientSecret string
	RedirectURL  string

	// Scopes defaults to DefaultOAuthScopes when empty
	Scopes []string
}

// Validate checks that the client is fully configured
func (c Config) Validate() error {
	if c.ClientID == "" {
		return fmt.Errorf("google client ID is required")
	}
	if c.ClientSecret == "" {
		return fmt.Errorf("google client secret is required")
	}
	if c.RedirectURL == "" {
		return fmt.Errorf("google redirect URI is required")
	}
	return nil
}

// Authenticator runs the OAuth2 authorization code flow against Google
// and provides authenticated HTTP clients once a token is stored.
type Authenticator struct {
	oauth  *oauth2.Config
	tokens *TokenProvider
	logger *slog.Logger

	mu     sync.Mutex
	states map[string]time.Time
}

// NewAuthenticator creates an authenticator storing tokens in the given provider
func NewAuthenticator(cfg Config, tokens *TokenProvider) (*Authenticator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	scopes := cfg.Scopes
	if len(scopes) == 0 {
		scopes = DefaultOAuthScopes
	}

	return &Authenticator{
		oauth: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			Endpoint:     google.Endpoint,
			RedirectURL:  cfg.RedirectURL,
			Scopes:       scopes,
		},
		tokens: tokens,
		logger: logging.WithComponent(slog.Default(), "google"),
		states: make(map[string]time.Time),
	}, nil
}

// NewState issues a one-time state value for a consent URL
func (a *Authenticator) NewState() string {
	state := uuid.NewString()

	a.mu.Lock()
	defer a.mu.Unlock()

	now := time.Now()
	for s, issued := range a.states {
		if now.Sub(issued) > stateTTL {
			delete(a.states, s)
		}
	}
	a.states[state] = now
	return state
}

// VerifyState consumes a state value issued by NewState
func (a *Authenticator) VerifyState(state string) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	issued, ok := a.states[state]
	if !ok {
		return ErrInvalidState
	}
	delete(a.states, state)
	if time.Since(issued) > stateTTL {
		return ErrInvalidState
	}
	return nil
}

// AuthURL returns the Google consent URL.
// Offline access with a forced consent prompt makes Google return a refresh token.
func (a *Authenticator) AuthURL(state string) string {
	return a.oauth.AuthCodeURL(state, oauth2.AccessTypeOffline, oauth2.SetAuthURLParam("prompt", "consent"))
}

// Exchange trades an authorization code for a token and stores it
func (a *Authenticator) Exchange(ctx context.Context, code string) (*oauth2.Token, error) {
	token, err := a.oauth.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("failed to exchange auth code: %w", err)
	}

	if err := a.tokens.SaveToken(ctx, DefaultAccount, token); err != nil {
		return nil, fmt.Errorf("failed to store token: %w", err)
	}

	a.logger.Info("google authorization completed",
		slog.String("access_token", logging.SanitizeToken(token.AccessToken)),
		slog.Bool("has_refresh_token", token.RefreshToken != ""))

	return token, nil
}

// Ready reports whether a token has been stored
func (a *Authenticator) Ready() bool {
	return a.tokens.HasTokenForAccount(DefaultAccount)
}

// HTTPClient returns a client that authenticates requests with the stored
// token and refreshes it when it expires
func (a *Authenticator) HTTPClient(ctx context.Context) (*http.Client, error) {
	token, err := a.tokens.GetTokenForAccount(ctx, DefaultAccount)
	if err != nil || token == nil {
		return nil, ErrNoToken
	}

	ts := &savingTokenSource{
		ctx:      context.WithoutCancel(ctx),
		base:     a.oauth.TokenSource(context.WithoutCancel(ctx), token),
		provider: a.tokens,
		account:  DefaultAccount,
		last:     token.AccessToken,
	}

	return oauth2.NewClient(ctx, oauth2.ReuseTokenSource(token, ts)), nil
}
