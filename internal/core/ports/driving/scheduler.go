package driving

import (
	"context"

	"github.com/custodia-labs/launchpad/internal/core/domain"
)

// RefreshScheduler periodically rebuilds catalogs and the file index.
type RefreshScheduler interface {
	// Start begins running refresh tasks.
	// Blocks until context is cancelled or Stop is called.
	Start(ctx context.Context) error

	// Stop gracefully stops all running tasks.
	Stop() error

	// RunNow runs one task immediately and waits for it.
	RunNow(ctx context.Context, taskID string) (*domain.RefreshResult, error)
}

// IndexService maintains the file index.
type IndexService interface {
	// Rebuild crawls roots into the index and returns the number of entries written.
	Rebuild(ctx context.Context, roots []string) (int, error)

	// Watch keeps the index current until ctx is cancelled.
	Watch(ctx context.Context, roots []string) error

	// Count returns the number of indexed entries.
	Count(ctx context.Context) (int, error)
}
