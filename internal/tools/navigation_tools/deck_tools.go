package navigation_tools

import (
	"context"
	"errors"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/teemow/gestureslides/internal/instrumentation"
	"github.com/teemow/gestureslides/internal/presentation"
	"github.com/teemow/gestureslides/internal/server"
	"github.com/teemow/gestureslides/internal/slides"
	"github.com/teemow/gestureslides/internal/tools/common"
)

const (
	errNoPresentation       = "No presentation loaded"
	notAuthenticatedMessage = "Not authenticated with Google. Authorize with google_get_auth_url first."
)

// deckStatus is the presentation_status result
type deckStatus struct {
	CurrentSlide          int    `json:"currentSlide"`
	TotalSlides           int    `json:"totalSlides"`
	Title                 string `json:"title"`
	IsActive              bool   `json:"isActive"`
	IsAuthenticated       bool   `json:"isAuthenticated"`
	CurrentPresentationID string `json:"currentPresentationId,omitempty"`
}

func registerDeckTools(s *mcpserver.MCPServer, sc *server.ServerContext, readOnly bool) error {
	statusTool := mcp.NewTool("presentation_status",
		mcp.WithDescription("Show the loaded presentation, the current slide number and whether Google is authorized"),
	)
	s.AddTool(statusTool, common.InstrumentedToolHandler("presentation_status", sc, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return handleStatus(ctx, request, sc)
	}))

	slidesTool := mcp.NewTool("presentation_slides",
		mcp.WithDescription("List the slides of the loaded presentation with their view counts"),
	)
	s.AddTool(slidesTool, common.InstrumentedToolHandler("presentation_slides", sc, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return handleSlides(ctx, request, sc)
	}))

	analyticsTool := mcp.NewTool("presentation_analytics",
		mcp.WithDescription("Summarize how often each slide of the loaded presentation has been shown"),
	)
	s.AddTool(analyticsTool, common.InstrumentedToolHandler("presentation_analytics", sc, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return handleAnalytics(ctx, request, sc)
	}))

	listTool := mcp.NewTool("presentation_list",
		mcp.WithDescription("List the Google Slides presentations in the authorized Drive, most recently modified first"),
	)
	s.AddTool(listTool, common.InstrumentedToolHandler("presentation_list", sc, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return handleList(ctx, request, sc)
	}))

	thumbnailsTool := mcp.NewTool("presentation_thumbnails",
		mcp.WithDescription("List the slides of any presentation with links to their PNG thumbnails"),
		mcp.WithString("presentationId",
			mcp.Required(),
			mcp.Description("The Google Slides presentation ID"),
		),
	)
	s.AddTool(thumbnailsTool, common.InstrumentedToolHandler("presentation_thumbnails", sc, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return handleThumbnails(ctx, request, sc)
	}))

	if readOnly {
		return nil
	}

	loadTool := mcp.NewTool("presentation_load",
		mcp.WithDescription("Load a Google Slides presentation for navigation. Replaces the loaded deck and starts at slide 1."),
		mcp.WithString("presentationId",
			mcp.Required(),
			mcp.Description("The Google Slides presentation ID, as found in its URL"),
		),
	)
	s.AddTool(loadTool, common.InstrumentedToolHandler("presentation_load", sc, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return handleLoad(ctx, request, sc)
	}))

	resetTool := mcp.NewTool("presentation_reset",
		mcp.WithDescription("Unload the presentation and clear all view counts"),
	)
	s.AddTool(resetTool, common.InstrumentedToolHandler("presentation_reset", sc, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return handleReset(ctx, request, sc)
	}))

	return nil
}

func handleStatus(_ context.Context, _ mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	state := sc.Cursor().State()
	return common.JSONResult(deckStatus{
		CurrentSlide:          slideNumber(state),
		TotalSlides:           state.TotalSlides,
		Title:                 state.Title,
		IsActive:              state.Active,
		IsAuthenticated:       sc.Authenticated(),
		CurrentPresentationID: sc.PresentationID(),
	})
}

func handleSlides(_ context.Context, _ mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	state := sc.Cursor().State()
	if state.TotalSlides == 0 {
		return mcp.NewToolResultError(errNoPresentation), nil
	}

	return common.JSONResult(map[string]any{
		"slides":            sc.Cursor().Slides(),
		"currentSlideIndex": state.CurrentIndex,
		"totalSlides":       state.TotalSlides,
	})
}

func handleAnalytics(_ context.Context, _ mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	if sc.Cursor().Len() == 0 {
		return mcp.NewToolResultError(errNoPresentation), nil
	}
	return common.JSONResult(sc.Cursor().Analytics())
}

func handleList(ctx context.Context, _ mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	if !sc.Authenticated() {
		return mcp.NewToolResultError(notAuthenticatedMessage), nil
	}

	files, err := sc.Provider().ListPresentations(ctx)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to list presentations: %s", slides.Message(err))), nil
	}
	return common.JSONResult(files)
}

func handleThumbnails(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	id, ok := args["presentationId"].(string)
	if !ok || id == "" {
		return mcp.NewToolResultError("presentationId is required"), nil
	}
	if !sc.Authenticated() {
		return mcp.NewToolResultError(notAuthenticatedMessage), nil
	}

	thumbs, err := sc.Provider().PresentationSlides(ctx, id)
	if err != nil {
		return mcp.NewToolResultError(slides.Message(err)), nil
	}
	return common.JSONResult(thumbs)
}

func handleLoad(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	id, ok := args["presentationId"].(string)
	if !ok || id == "" {
		return mcp.NewToolResultError("presentationId is required"), nil
	}

	p, err := sc.LoadPresentation(ctx, id)
	if err != nil {
		if errors.Is(err, slides.ErrNotAuthenticated) {
			return mcp.NewToolResultError(notAuthenticatedMessage), nil
		}
		return mcp.NewToolResultError(slides.Message(err)), nil
	}

	return mcp.NewToolResultText(fmt.Sprintf("Loaded presentation: %s (%d slides). Now at slide %d.",
		p.Title, p.SlideCount, slideNumber(sc.Cursor().State()))), nil
}

func handleReset(_ context.Context, _ mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	sc.Reset(instrumentation.SourceMCP)
	return mcp.NewToolResultText("Presentation reset successfully"), nil
}

// slideNumber returns the 1-based current slide, or 0 when the deck is empty
func slideNumber(state presentation.State) int {
	if state.TotalSlides == 0 {
		return 0
	}
	return state.CurrentIndex + 1
}
