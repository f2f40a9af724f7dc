// Package cmd implements the command-line interface for gestureslides.
//
// This package provides the following commands:
//   - serve: Start the HTTP API, the gesture stream and optionally the MCP endpoint
//   - version: Display version information
//   - generate-docs: Generate markdown documentation for all MCP tools
//
// The serve command is the default command when no subcommand is specified.
package cmd
