package tui

import (
	"context"
	"sync"

	"github.com/custodia-labs/launchpad/internal/core/domain"
)

// mockLauncher records calls and serves snapshots from a channel.
type mockLauncher struct {
	mu       sync.Mutex
	searches []string
	updates  chan domain.Snapshot
}

func newMockLauncher() *mockLauncher {
	return &mockLauncher{updates: make(chan domain.Snapshot, 1)}
}

func (m *mockLauncher) Search(text string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.searches = append(m.searches, text)
}

func (m *mockLauncher) TriggerSearch(domain.SourceKind, string) {}

func (m *mockLauncher) LoadMore(domain.SourceKind) {}

func (m *mockLauncher) Updates() <-chan domain.Snapshot { return m.updates }

func (m *mockLauncher) Current() domain.Snapshot { return domain.Snapshot{} }

func (m *mockLauncher) IsSearching() bool { return false }

func (m *mockLauncher) Execute(context.Context, domain.SearchResult) error { return nil }

func (m *mockLauncher) Query(context.Context, string, ...domain.SourceKind) (domain.Snapshot, error) {
	return domain.Snapshot{}, nil
}
