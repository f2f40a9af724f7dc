package resources

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/teemow/gestureslides/internal/server"
)

const (
	CurrentSlideURI = "presentation://current-slide"
	AnalyticsURI    = "presentation://analytics"
)

// currentSlide is the content of the current slide resource
type currentSlide struct {
	PresentationID string `json:"presentationId,omitempty"`
	Title          string `json:"title"`
	SlideNumber    int    `json:"slideNumber"`
	TotalSlides    int    `json:"totalSlides"`
	SlideTitle     string `json:"slideTitle,omitempty"`
	SlideContent   string `json:"slideContent,omitempty"`
	ViewCount      int    `json:"viewCount"`
}

// RegisterSessionResources registers the navigation session resources
func RegisterSessionResources(s *mcpserver.MCPServer, sc *server.ServerContext) error {
	currentResource := mcp.NewResource(
		CurrentSlideURI,
		"Current Slide",
		mcp.WithResourceDescription("The loaded presentation and the slide currently shown"),
		mcp.WithMIMEType("application/json"),
	)

	s.AddResource(currentResource, func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		return handleCurrentSlide(ctx, request, sc)
	})

	analyticsResource := mcp.NewResource(
		AnalyticsURI,
		"Slide Analytics",
		mcp.WithResourceDescription("View counts per slide and the most viewed slide"),
		mcp.WithMIMEType("application/json"),
	)

	s.AddResource(analyticsResource, func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		return handleAnalytics(ctx, request, sc)
	})

	return nil
}

func handleCurrentSlide(_ context.Context, request mcp.ReadResourceRequest, sc *server.ServerContext) ([]mcp.ResourceContents, error) {
	state := sc.Cursor().State()
	data := currentSlide{
		PresentationID: sc.PresentationID(),
		Title:          state.Title,
		TotalSlides:    state.TotalSlides,
	}

	if slide, ok := sc.Cursor().Current(); ok {
		data.SlideNumber = state.CurrentIndex + 1
		data.SlideTitle = slide.Title
		data.SlideContent = slide.Content
		data.ViewCount = slide.ViewCount
	}

	return jsonContents(request.Params.URI, data)
}

func handleAnalytics(_ context.Context, request mcp.ReadResourceRequest, sc *server.ServerContext) ([]mcp.ResourceContents, error) {
	if sc.Cursor().Len() == 0 {
		return nil, fmt.Errorf("no presentation loaded")
	}
	return jsonContents(request.Params.URI, sc.Cursor().Analytics())
}

func jsonContents(uri string, v any) ([]mcp.ResourceContents, error) {
	jsonData, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal resource data: %w", err)
	}

	return []mcp.ResourceContents{
		&mcp.TextResourceContents{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(jsonData),
		},
	}, nil
}
