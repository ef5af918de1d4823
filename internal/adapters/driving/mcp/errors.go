// Package mcp provides an MCP (Model Context Protocol) server adapter for launchpad.
// It lets AI assistants run launcher searches and calculations.
package mcp

import "errors"

// ErrMissingLauncher is returned when the launcher is not provided.
var ErrMissingLauncher = errors.New("mcp: launcher is required")
