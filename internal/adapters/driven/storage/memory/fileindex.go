package memory

import (
	"context"
	"path/filepath"
	"strings"
	"sync"

	"github.com/custodia-labs/launchpad/internal/core/domain"
	"github.com/custodia-labs/launchpad/internal/core/ports/driven"
)

// Ensure FileIndex implements the interface.
var _ driven.FileIndex = (*FileIndex)(nil)

// FileIndex is an in-memory implementation of driven.FileIndex.
// Queries evaluate the predicate against a snapshot taken when they start.
type FileIndex struct {
	mu      sync.RWMutex
	entries map[string]domain.FileEntry
}

// NewFileIndex creates an empty in-memory file index.
func NewFileIndex() *FileIndex {
	return &FileIndex{entries: make(map[string]domain.FileEntry)}
}

// StartFileQuery streams every entry matching q.
func (f *FileIndex) StartFileQuery(ctx context.Context, q domain.FileQuery) (<-chan domain.FileEntry, <-chan error) {
	f.mu.RLock()
	var matches []domain.FileEntry
	for _, e := range f.entries {
		if q.Matches(e) {
			matches = append(matches, e)
		}
	}
	f.mu.RUnlock()

	out := make(chan domain.FileEntry)
	errs := make(chan error, 1)
	go func() {
		defer close(out)
		for _, e := range matches {
			select {
			case out <- e:
			case <-ctx.Done():
				errs <- ctx.Err()
				return
			}
		}
	}()
	return out, errs
}

// Upsert adds or replaces entries keyed by path.
func (f *FileIndex) Upsert(_ context.Context, entries ...domain.FileEntry) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, e := range entries {
		if e.Path == "" {
			return domain.ErrInvalidInput
		}
		if e.FileName == "" {
			e.FileName = filepath.Base(e.Path)
		}
		if e.Name == "" {
			e.Name = strings.TrimSuffix(e.FileName, filepath.Ext(e.FileName))
		}
		f.entries[e.Path] = e
	}
	return nil
}

// Remove deletes the entry for path and every entry below it.
func (f *FileIndex) Remove(_ context.Context, path string) error {
	path = filepath.Clean(path)
	prefix := strings.TrimSuffix(path, string(filepath.Separator)) + string(filepath.Separator)

	f.mu.Lock()
	defer f.mu.Unlock()
	for p := range f.entries {
		if p == path || strings.HasPrefix(p, prefix) {
			delete(f.entries, p)
		}
	}
	return nil
}

// Count returns the number of indexed entries.
func (f *FileIndex) Count(_ context.Context) (int, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return len(f.entries), nil
}

// Close is a no-op.
func (f *FileIndex) Close() error {
	return nil
}
