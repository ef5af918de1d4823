package services

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/launchpad/internal/core/domain"
	"github.com/custodia-labs/launchpad/internal/core/ports/driven"
)

// mockCrawler streams a fixed list of entries.
type mockCrawler struct {
	entries []domain.FileEntry
	err     error
}

func (m *mockCrawler) Crawl(ctx context.Context, _ []string) (<-chan domain.FileEntry, <-chan error) {
	out := make(chan domain.FileEntry)
	errs := make(chan error, 1)
	go func() {
		defer close(out)
		for _, e := range m.entries {
			select {
			case out <- e:
			case <-ctx.Done():
				return
			}
		}
		if m.err != nil {
			errs <- m.err
		}
	}()
	return out, errs
}

// mockWatcher replays a fixed list of changes, then closes.
type mockWatcher struct {
	changes []domain.FileChange
}

func (m *mockWatcher) Watch(_ context.Context, _ []string) (<-chan domain.FileChange, error) {
	out := make(chan domain.FileChange, len(m.changes))
	for _, c := range m.changes {
		out <- c
	}
	close(out)
	return out, nil
}

var (
	_ driven.FileCrawler = (*mockCrawler)(nil)
	_ driven.FileWatcher = (*mockWatcher)(nil)
)

func crawledEntries(n int) []domain.FileEntry {
	entries := make([]domain.FileEntry, n)
	for i := range entries {
		name := fmt.Sprintf("file-%03d.txt", i)
		entries[i] = domain.FileEntry{Path: "/data/" + name, Name: name, FileName: name}
	}
	return entries
}

func TestIndexService_Rebuild(t *testing.T) {
	index := &mockFileIndex{}
	service := NewIndexService(index, &mockCrawler{entries: crawledEntries(600)}, nil)

	n, err := service.Rebuild(context.Background(), []string{"/data"})
	require.NoError(t, err)
	assert.Equal(t, 600, n)
	assert.Equal(t, []string{"/data"}, index.removed)
	assert.Len(t, index.upserts, 600)

	count, err := service.Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 600, count)
}

func TestIndexService_RebuildNoRoots(t *testing.T) {
	index := &mockFileIndex{}
	service := NewIndexService(index, &mockCrawler{entries: crawledEntries(3)}, nil)

	n, err := service.Rebuild(context.Background(), nil)
	require.NoError(t, err)
	assert.Zero(t, n)
	assert.Empty(t, index.removed)
}

func TestIndexService_RebuildCrawlError(t *testing.T) {
	index := &mockFileIndex{}
	service := NewIndexService(index, &mockCrawler{entries: crawledEntries(2), err: errors.New("permission denied")}, nil)

	n, err := service.Rebuild(context.Background(), []string{"/data"})
	require.Error(t, err)
	assert.Equal(t, 2, n)
}

func TestIndexService_WatchAppliesChanges(t *testing.T) {
	index := &mockFileIndex{}
	watcher := &mockWatcher{changes: []domain.FileChange{
		{Kind: domain.ChangeUpsert, Entry: domain.FileEntry{Path: "/data/new.txt"}},
		{Kind: domain.ChangeRemove, Entry: domain.FileEntry{Path: "/data/old"}},
		{Kind: domain.ChangeKind("rename"), Entry: domain.FileEntry{Path: "/data/x"}},
	}}
	service := NewIndexService(index, &mockCrawler{}, watcher)

	require.NoError(t, service.Watch(context.Background(), []string{"/data"}))
	require.Len(t, index.upserts, 1)
	assert.Equal(t, "/data/new.txt", index.upserts[0].Path)
	assert.Equal(t, []string{"/data/old"}, index.removed)
}

func TestIndexService_WatchWithoutWatcher(t *testing.T) {
	service := NewIndexService(&mockFileIndex{}, &mockCrawler{}, nil)
	err := service.Watch(context.Background(), []string{"/data"})
	assert.True(t, errors.Is(err, domain.ErrSourceUnavailable))
}

func TestIndexService_ApplicationChangesCoalesce(t *testing.T) {
	var fired atomic.Int32
	watcher := &mockWatcher{changes: []domain.FileChange{
		{Kind: domain.ChangeUpsert, Entry: domain.FileEntry{Path: "/usr/share/applications/a.desktop"}},
		{Kind: domain.ChangeUpsert, Entry: domain.FileEntry{Path: "/usr/share/applications/b.desktop"}},
		{Kind: domain.ChangeRemove, Entry: domain.FileEntry{Path: "/Applications/Old.app"}},
		{Kind: domain.ChangeUpsert, Entry: domain.FileEntry{Path: "/home/me/notes.txt"}},
	}}
	service := NewIndexService(&mockFileIndex{}, &mockCrawler{}, watcher)
	service.OnApplicationsChanged(func() { fired.Add(1) })

	require.NoError(t, service.Watch(context.Background(), nil))
	assert.Equal(t, int32(0), fired.Load())

	require.Eventually(t, func() bool { return fired.Load() == 1 }, 4*time.Second, 50*time.Millisecond)
	time.Sleep(100 * time.Millisecond)
	assert.Equal(t, int32(1), fired.Load())
}
