package navigation_tools

import (
	"context"
	"math"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/teemow/gestureslides/internal/gesture"
	"github.com/teemow/gestureslides/internal/instrumentation"
	"github.com/teemow/gestureslides/internal/server"
	"github.com/teemow/gestureslides/internal/tools/common"
)

func registerGestureTools(s *mcpserver.MCPServer, sc *server.ServerContext) error {
	nextTool := mcp.NewTool("gesture_next",
		mcp.WithDescription("Advance to the next slide"),
	)
	s.AddTool(nextTool, common.InstrumentedToolHandler("gesture_next", sc, func(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return dispatch(ctx, sc, gesture.Command{Kind: gesture.KindNext, Confidence: 1})
	}))

	previousTool := mcp.NewTool("gesture_previous",
		mcp.WithDescription("Go back to the previous slide"),
	)
	s.AddTool(previousTool, common.InstrumentedToolHandler("gesture_previous", sc, func(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return dispatch(ctx, sc, gesture.Command{Kind: gesture.KindPrevious, Confidence: 1})
	}))

	pointTool := mcp.NewTool("gesture_point",
		mcp.WithDescription("Report the current slide without moving"),
	)
	s.AddTool(pointTool, common.InstrumentedToolHandler("gesture_point", sc, func(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return dispatch(ctx, sc, gesture.Command{Kind: gesture.KindPoint, Confidence: 1})
	}))

	jumpTool := mcp.NewTool("gesture_jump",
		mcp.WithDescription("Jump to a slide by its number"),
		mcp.WithNumber("slideNumber",
			mcp.Required(),
			mcp.Description("The 1-based slide number to jump to"),
		),
	)
	s.AddTool(jumpTool, common.InstrumentedToolHandler("gesture_jump", sc, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return handleJump(ctx, request, sc)
	}))

	dispatchTool := mcp.NewTool("gesture_dispatch",
		mcp.WithDescription("Apply a classified gesture exactly as a gesture recognizer would send it. Gestures below 0.7 confidence are ignored."),
		mcp.WithString("type",
			mcp.Required(),
			mcp.Description("Gesture type"),
			mcp.Enum(string(gesture.KindNext), string(gesture.KindPrevious), string(gesture.KindJump), string(gesture.KindPoint)),
		),
		mcp.WithNumber("confidence",
			mcp.Required(),
			mcp.Description("Classifier confidence between 0 and 1"),
		),
		mcp.WithNumber("targetSlide",
			mcp.Description("The 1-based target slide number, required for jump"),
		),
	)
	s.AddTool(dispatchTool, common.InstrumentedToolHandler("gesture_dispatch", sc, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return handleDispatch(ctx, request, sc)
	}))

	return nil
}

func handleJump(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	n, ok := wholeNumber(args["slideNumber"])
	if !ok {
		return mcp.NewToolResultError("slideNumber must be a whole number"), nil
	}

	return dispatch(ctx, sc, gesture.Command{Kind: gesture.KindJump, Confidence: 1, TargetSlide: gesture.Target(n)})
}

func handleDispatch(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	kind, _ := args["type"].(string)
	confidence, ok := args["confidence"].(float64)
	if !ok {
		return mcp.NewToolResultError("confidence must be a number"), nil
	}

	cmd := gesture.Command{Kind: gesture.Kind(kind), Confidence: confidence}
	if raw, present := args["targetSlide"]; present && raw != nil {
		n, ok := wholeNumber(raw)
		if !ok {
			return mcp.NewToolResultError("targetSlide must be a whole number"), nil
		}
		cmd.TargetSlide = gesture.Target(n)
	}

	if err := cmd.Validate(); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return dispatch(ctx, sc, cmd)
}

// dispatch applies cmd and renders the outcome. Rejected commands are
// reported as tool errors; boundary and low confidence outcomes are not.
func dispatch(ctx context.Context, sc *server.ServerContext, cmd gesture.Command) (*mcp.CallToolResult, error) {
	outcome, state := sc.Dispatch(ctx, instrumentation.SourceMCP, cmd)
	if outcome.Rejected() {
		return mcp.NewToolResultError(outcome.Message), nil
	}
	return common.JSONResult(server.NewGestureResponse(outcome, state))
}

// wholeNumber converts a JSON number argument to an int, clamped to the
// int32 range so the dispatcher reports huge values as invalid slides
func wholeNumber(v any) (int, bool) {
	f, ok := v.(float64)
	if !ok || math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) {
		return 0, false
	}
	return int(math.Max(math.Min(f, math.MaxInt32), math.MinInt32)), true
}
