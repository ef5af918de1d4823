package mcp

import (
	"github.com/custodia-labs/launchpad/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the MCP server.
type Ports struct {
	// Launcher runs federated searches.
	Launcher driving.Launcher

	// Calculator evaluates expressions. Optional.
	Calculator driving.Calculator

	// Catalog lists applications and shortcuts. Optional.
	Catalog driving.CatalogBrowser
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p == nil || p.Launcher == nil {
		return ErrMissingLauncher
	}
	return nil
}
