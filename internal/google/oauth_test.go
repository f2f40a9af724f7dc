package google

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"

	"github.com/giantswarm/mcp-oauth/storage/memory"
)

func testConfig() Config {
	return Config{
		ClientID:     "client-id",
		ClientSecret: "client-secret",
		RedirectURL:  "http://localhost:3000/auth/callback",
	}
}

func newTestAuthenticator(t *testing.T) *Authenticator {
	t.Helper()
	store := memory.New()
	t.Cleanup(store.Stop)

	auth, err := NewAuthenticator(testConfig(), NewTokenProvider(store))
	require.NoError(t, err)
	return auth
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"valid", func(*Config) {}, ""},
		{"missing client id", func(c *Config) { c.ClientID = "" }, "client ID"},
		{"missing client secret", func(c *Config) { c.ClientSecret = "" }, "client secret"},
		{"missing redirect", func(c *Config) { c.RedirectURL = "" }, "redirect URI"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestNewAuthenticator_InvalidConfig(t *testing.T) {
	_, err := NewAuthenticator(Config{}, NewTokenProvider(memory.New()))
	assert.Error(t, err)
}

func TestAuthURL(t *testing.T) {
	auth := newTestAuthenticator(t)

	u, err := url.Parse(auth.AuthURL("abc"))
	require.NoError(t, err)

	q := u.Query()
	assert.Equal(t, "accounts.google.com", u.Host)
	assert.Equal(t, "client-id", q.Get("client_id"))
	assert.Equal(t, "abc", q.Get("state"))
	assert.Equal(t, "offline", q.Get("access_type"))
	assert.Equal(t, "consent", q.Get("prompt"))
	assert.Contains(t, q.Get("scope"), "https://www.googleapis.com/auth/presentations")
	assert.Contains(t, q.Get("scope"), "https://www.googleapis.com/auth/drive.readonly")
}

func TestState(t *testing.T) {
	auth := newTestAuthenticator(t)

	state := auth.NewState()
	assert.NotEmpty(t, state)
	assert.NoError(t, auth.VerifyState(state))

	// States are single use
	assert.ErrorIs(t, auth.VerifyState(state), ErrInvalidState)
	assert.ErrorIs(t, auth.VerifyState("forged"), ErrInvalidState)

	expired := auth.NewState()
	auth.states[expired] = time.Now().Add(-2 * stateTTL)
	assert.ErrorIs(t, auth.VerifyState(expired), ErrInvalidState)
}

func TestExchange(t *testing.T) {
	tokenServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		if r.Form.Get("code") != "good-code" {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusBadRequest)
			fmt.Fprint(w, `{"error":"invalid_grant"}`)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"access_token":"access-1","refresh_token":"refresh-1","token_type":"Bearer","expires_in":3600}`)
	}))
	defer tokenServer.Close()

	auth := newTestAuthenticator(t)
	auth.oauth.Endpoint = oauth2.Endpoint{
		AuthURL:   tokenServer.URL + "/auth",
		TokenURL:  tokenServer.URL + "/token",
		AuthStyle: oauth2.AuthStyleInParams,
	}

	ctx := context.Background()
	assert.False(t, auth.Ready())

	_, err := auth.Exchange(ctx, "bad-code")
	assert.Error(t, err)
	assert.False(t, auth.Ready())

	token, err := auth.Exchange(ctx, "good-code")
	require.NoError(t, err)
	assert.Equal(t, "access-1", token.AccessToken)
	assert.True(t, auth.Ready())

	client, err := auth.HTTPClient(ctx)
	require.NoError(t, err)
	assert.NotNil(t, client)
}

func TestHTTPClient_NoToken(t *testing.T) {
	auth := newTestAuthenticator(t)

	_, err := auth.HTTPClient(context.Background())
	assert.ErrorIs(t, err, ErrNoToken)
}

func TestHTTPClient_SendsStoredToken(t *testing.T) {
	var gotAuth string
	api := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.WriteHeader(http.StatusOK)
	}))
	defer api.Close()

	auth := newTestAuthenticator(t)
	ctx := context.Background()
	require.NoError(t, auth.tokens.SaveToken(ctx, DefaultAccount, &oauth2.Token{
		AccessToken: "stored-token",
		TokenType:   "Bearer",
		Expiry:      time.Now().Add(time.Hour),
	}))

	client, err := auth.HTTPClient(ctx)
	require.NoError(t, err)

	resp, err := client.Get(api.URL)
	require.NoError(t, err)
	resp.Body.Close()

	assert.Equal(t, "Bearer stored-token", gotAuth)
}
