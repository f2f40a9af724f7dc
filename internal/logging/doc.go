// Package logging provides structured logging utilities for gestureslides.
//
// This package centralizes logging patterns so that request handlers, the
// provider client and the OAuth flow log with consistent attribute names
// using the standard library's slog package.
//
// # Usage Patterns
//
// Create a logger with standard attributes:
//
//	logger := logging.WithOperation(slog.Default(), "presentation.load")
//	logger.Info("presentation loaded",
//	    logging.Presentation(id),
//	    logging.Status(logging.StatusSuccess))
//
// Report a gesture outcome:
//
//	logger.Info("gesture dispatched",
//	    logging.Gesture(string(cmd.Kind)),
//	    logging.Result(string(out.Result)))
//
// # Security Considerations
//
// OAuth tokens and authorization codes are never logged directly; use
// SanitizeToken to log their presence.
package logging
