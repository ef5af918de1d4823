package driving

import (
	"context"

	"github.com/custodia-labs/launchpad/internal/core/domain"
)

// Launcher federates one query across every enabled source.
type Launcher interface {
	// Search supersedes the current query with text. Empty text clears the
	// results immediately; anything else is dispatched after the debounce.
	Search(text string)

	// TriggerSearch runs a triggered-mode source for text and merges its
	// results into the current snapshot.
	TriggerSearch(kind domain.SourceKind, text string)

	// LoadMore appends the next page of a paginated source.
	LoadMore(kind domain.SourceKind)

	// Updates delivers one snapshot per completed generation.
	// Only the latest undelivered snapshot is kept.
	Updates() <-chan domain.Snapshot

	// Current returns the last published snapshot.
	Current() domain.Snapshot

	// IsSearching reports whether a generation is debouncing or dispatched.
	IsSearching() bool

	// Execute performs the default action of a result.
	Execute(ctx context.Context, result domain.SearchResult) error

	// Query runs one federated search without debounce and returns the merged snapshot.
	// Triggered sources are included when listed in kinds.
	Query(ctx context.Context, text string, kinds ...domain.SourceKind) (domain.Snapshot, error)
}

// Calculator evaluates compute queries on their own.
type Calculator interface {
	// Evaluate returns the calculation for input, or false when nothing recognizes it.
	Evaluate(input string) (domain.Calculation, bool)
}

// CatalogBrowser lists the catalogs behind the sources.
type CatalogBrowser interface {
	// Applications returns the application catalog, loading it if needed.
	Applications(ctx context.Context) ([]domain.AppInfo, error)

	// Shortcuts returns the shortcut catalog, loading it if needed.
	Shortcuts(ctx context.Context) ([]domain.Shortcut, error)
}
