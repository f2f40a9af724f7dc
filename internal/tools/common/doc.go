// Package common provides helpers shared by the MCP tool packages: the
// instrumentation wrapper every tool is registered through and JSON result
// rendering.
package common
