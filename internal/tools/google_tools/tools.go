package google_tools

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/teemow/gestureslides/internal/logging"
	"github.com/teemow/gestureslides/internal/server"
	"github.com/teemow/gestureslides/internal/tools/common"
)

const errNotConfigured = "Google OAuth is not configured. Set GOOGLE_CLIENT_ID, GOOGLE_CLIENT_SECRET and GOOGLE_REDIRECT_URI."

// RegisterGoogleTools registers all Google OAuth-related tools with the MCP server
func RegisterGoogleTools(s *mcpserver.MCPServer, sc *server.ServerContext) error {
	statusTool := mcp.NewTool("google_auth_status",
		mcp.WithDescription("Check whether Google Slides and Drive access is authorized"),
	)
	s.AddTool(statusTool, common.InstrumentedToolHandler("google_auth_status", sc, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return handleAuthStatus(ctx, request, sc)
	}))

	getAuthURLTool := mcp.NewTool("google_get_auth_url",
		mcp.WithDescription("Get the OAuth URL to authorize Google Slides and Drive access"),
	)
	s.AddTool(getAuthURLTool, common.InstrumentedToolHandler("google_get_auth_url", sc, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return handleGetAuthURL(ctx, request, sc)
	}))

	saveAuthCodeTool := mcp.NewTool("google_save_auth_code",
		mcp.WithDescription("Save the OAuth authorization code to complete Google authorization"),
		mcp.WithString("authCode",
			mcp.Required(),
			mcp.Description("The authorization code from Google OAuth"),
		),
	)
	s.AddTool(saveAuthCodeTool, common.InstrumentedToolHandler("google_save_auth_code", sc, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return handleSaveAuthCode(ctx, request, sc)
	}))

	return nil
}

func handleAuthStatus(_ context.Context, _ mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	if sc.Authenticated() {
		return mcp.NewToolResultText("Google Slides access is authorized."), nil
	}
	return mcp.NewToolResultText("Google Slides access is not authorized yet. Call google_get_auth_url to start."), nil
}

func handleGetAuthURL(_ context.Context, _ mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	auth := sc.Authenticator()
	if auth == nil {
		return mcp.NewToolResultError(errNotConfigured), nil
	}

	authURL := auth.AuthURL(auth.NewState())

	result := fmt.Sprintf(`To authorize Google Slides and Drive access:

1. Visit this URL in your browser:
   %s

2. Sign in with your Google account
3. Grant read access to your presentations

Authorization completes automatically when the browser returns to this server.
If it cannot reach the server, copy the "code" parameter from the address bar
and call the google_save_auth_code tool with it.`, authURL)

	return mcp.NewToolResultText(result), nil
}

func handleSaveAuthCode(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	auth := sc.Authenticator()
	if auth == nil {
		return mcp.NewToolResultError(errNotConfigured), nil
	}

	args := request.GetArguments()

	authCode, ok := args["authCode"].(string)
	if !ok || authCode == "" {
		return mcp.NewToolResultError("authCode is required"), nil
	}

	if _, err := auth.Exchange(ctx, authCode); err != nil {
		sc.Logger().Warn("failed to save authorization code",
			logging.Operation("google_save_auth_code"),
			logging.Err(err))
		return mcp.NewToolResultError(fmt.Sprintf("Failed to save authorization code: %v", err)), nil
	}

	return mcp.NewToolResultText("Authorization successful. Google token saved; presentations can now be loaded."), nil
}
