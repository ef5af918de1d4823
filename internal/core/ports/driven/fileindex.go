package driven

import (
	"context"

	"github.com/custodia-labs/launchpad/internal/core/domain"
)

// FileIndex is a filesystem metadata index.
type FileIndex interface {
	// StartFileQuery starts one live query for entries matching q.
	StartFileQuery(ctx context.Context, q domain.FileQuery) (<-chan domain.FileEntry, <-chan error)

	// Upsert adds or replaces entries keyed by path.
	Upsert(ctx context.Context, entries ...domain.FileEntry) error

	// Remove deletes the entry for path and every entry below it.
	Remove(ctx context.Context, path string) error

	// Count returns the number of indexed entries.
	Count(ctx context.Context) (int, error)

	// Close releases resources.
	Close() error
}

// PathProbe inspects a path on the filesystem.
type PathProbe interface {
	// IsDir reports whether path is an existing directory.
	IsDir(path string) bool
}

// FileCrawler walks directory trees.
type FileCrawler interface {
	// Crawl reports every non-hidden entry below roots.
	Crawl(ctx context.Context, roots []string) (<-chan domain.FileEntry, <-chan error)
}

// FileWatcher reports filesystem changes below a set of roots.
type FileWatcher interface {
	// Watch streams coalesced changes until ctx is cancelled.
	Watch(ctx context.Context, roots []string) (<-chan domain.FileChange, error)
}
