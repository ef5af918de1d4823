// Package tui provides the interactive terminal launcher.
// It implements a driving adapter following hexagonal architecture principles.
package tui

import (
	"github.com/custodia-labs/launchpad/internal/core/ports/driving"
)

// Ports aggregates the driving ports the TUI uses.
type Ports struct {
	// Launcher federates queries and executes results.
	Launcher driving.Launcher
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p == nil || p.Launcher == nil {
		return ErrMissingLauncher
	}
	return nil
}
