package google_tools

import (
	"context"
	"errors"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"

	"github.com/teemow/gestureslides/internal/server"
	"github.com/teemow/gestureslides/internal/slides"
)

type stubProvider struct{ ready bool }

func (p *stubProvider) Ready() bool { return p.ready }

func (p *stubProvider) LoadPresentation(context.Context, string) (*slides.Presentation, error) {
	return nil, slides.ErrNotFound
}

func (p *stubProvider) ListPresentations(context.Context) ([]slides.PresentationFile, error) {
	return nil, nil
}

func (p *stubProvider) PresentationSlides(context.Context, string) ([]slides.SlideThumbnail, error) {
	return nil, nil
}

type stubAuthenticator struct {
	provider *stubProvider
}

func (a *stubAuthenticator) NewState() string            { return "state-1" }
func (a *stubAuthenticator) VerifyState(string) error    { return nil }
func (a *stubAuthenticator) AuthURL(state string) string { return "https://accounts.example.com/auth?state=" + state }

func (a *stubAuthenticator) Exchange(_ context.Context, code string) (*oauth2.Token, error) {
	if code != "valid" {
		return nil, errors.New("invalid_grant")
	}
	a.provider.ready = true
	return &oauth2.Token{AccessToken: "token"}, nil
}

func newContext(t *testing.T, withAuth bool) *server.ServerContext {
	t.Helper()
	provider := &stubProvider{}
	opts := server.Options{Provider: provider}
	if withAuth {
		opts.Authenticator = &stubAuthenticator{provider: provider}
	}
	sc, err := server.NewServerContext(context.Background(), opts)
	require.NoError(t, err)
	t.Cleanup(func() { _ = sc.Shutdown() })
	return sc
}

func textOf(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()
	require.NotEmpty(t, result.Content)
	text, ok := result.Content[0].(mcp.TextContent)
	require.True(t, ok)
	return text.Text
}

func TestRegisterGoogleTools(t *testing.T) {
	s := mcpserver.NewMCPServer("test", "1.0.0", mcpserver.WithToolCapabilities(true))
	require.NoError(t, RegisterGoogleTools(s, newContext(t, true)))

	tools := s.ListTools()
	for _, name := range []string{"google_auth_status", "google_get_auth_url", "google_save_auth_code"} {
		assert.Contains(t, tools, name)
	}
}

func TestHandleGetAuthURL(t *testing.T) {
	result, err := handleGetAuthURL(context.Background(), mcp.CallToolRequest{}, newContext(t, true))
	require.NoError(t, err)
	assert.False(t, result.IsError)
	assert.Contains(t, textOf(t, result), "https://accounts.example.com/auth?state=state-1")

	result, err = handleGetAuthURL(context.Background(), mcp.CallToolRequest{}, newContext(t, false))
	require.NoError(t, err)
	assert.True(t, result.IsError)
	assert.Equal(t, errNotConfigured, textOf(t, result))
}

func TestHandleSaveAuthCode(t *testing.T) {
	sc := newContext(t, true)

	req := mcp.CallToolRequest{}
	req.Params.Arguments = map[string]any{}
	result, err := handleSaveAuthCode(context.Background(), req, sc)
	require.NoError(t, err)
	assert.Equal(t, "authCode is required", textOf(t, result))

	req.Params.Arguments = map[string]any{"authCode": "expired"}
	result, err = handleSaveAuthCode(context.Background(), req, sc)
	require.NoError(t, err)
	assert.True(t, result.IsError)
	assert.Contains(t, textOf(t, result), "invalid_grant")
	assert.False(t, sc.Authenticated())

	req.Params.Arguments = map[string]any{"authCode": "valid"}
	result, err = handleSaveAuthCode(context.Background(), req, sc)
	require.NoError(t, err)
	assert.False(t, result.IsError)
	assert.True(t, sc.Authenticated())

	status, err := handleAuthStatus(context.Background(), mcp.CallToolRequest{}, sc)
	require.NoError(t, err)
	assert.Equal(t, "Google Slides access is authorized.", textOf(t, status))
}
