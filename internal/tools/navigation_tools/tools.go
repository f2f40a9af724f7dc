package navigation_tools

import (
	"fmt"

	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/teemow/gestureslides/internal/server"
)

// RegisterNavigationTools registers the deck and gesture tools with the MCP
// server. In read-only mode only the tools that do not change the session
// are registered.
func RegisterNavigationTools(s *mcpserver.MCPServer, sc *server.ServerContext, readOnly bool) error {
	if err := registerDeckTools(s, sc, readOnly); err != nil {
		return fmt.Errorf("failed to register deck tools: %w", err)
	}

	if readOnly {
		return nil
	}

	if err := registerGestureTools(s, sc); err != nil {
		return fmt.Errorf("failed to register gesture tools: %w", err)
	}

	return nil
}
