// Package messages defines Bubbletea message types for the TUI.
package messages

import (
	"github.com/custodia-labs/launchpad/internal/core/domain"
)

// SnapshotReceived carries a snapshot published by the launcher.
type SnapshotReceived struct {
	Snapshot domain.Snapshot
}

// UpdatesClosed signals the launcher stopped publishing snapshots.
type UpdatesClosed struct{}

// ResultExecuted reports the outcome of running a result.
type ResultExecuted struct {
	Result domain.SearchResult
	Err    error
}

// ErrorOccurred signals that an error happened.
type ErrorOccurred struct {
	Err error
}
