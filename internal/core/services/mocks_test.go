package services

import (
	"context"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/custodia-labs/launchpad/internal/core/domain"
	"github.com/custodia-labs/launchpad/internal/core/ports/driven"
)

// --- Mock implementations of driven ports ---

// mockAppQuery streams a fixed catalog, optionally blocking until released.
type mockAppQuery struct {
	apps    []domain.AppInfo
	err     error
	release chan struct{}
	// hang keeps the query open after the listed apps until ctx is cancelled.
	hang  bool
	calls atomic.Int32
}

func (m *mockAppQuery) StartAppQuery(ctx context.Context, _ []string) (<-chan domain.AppInfo, <-chan error) {
	m.calls.Add(1)
	out := make(chan domain.AppInfo)
	errs := make(chan error, 1)
	go func() {
		defer close(out)
		if m.release != nil {
			select {
			case <-m.release:
			case <-ctx.Done():
				return
			}
		}
		for _, app := range m.apps {
			select {
			case out <- app:
			case <-ctx.Done():
				return
			}
		}
		if m.err != nil {
			errs <- m.err
			return
		}
		if m.hang {
			<-ctx.Done()
		}
	}()
	return out, errs
}

// mockFileIndex answers every query with the same entries and counts calls.
type mockFileIndex struct {
	mu      sync.Mutex
	entries []domain.FileEntry
	err     error
	queries []domain.FileQuery
	calls   atomic.Int32

	upserts []domain.FileEntry
	removed []string
}

func (m *mockFileIndex) StartFileQuery(ctx context.Context, q domain.FileQuery) (<-chan domain.FileEntry, <-chan error) {
	m.calls.Add(1)
	m.mu.Lock()
	m.queries = append(m.queries, q)
	entries := append([]domain.FileEntry(nil), m.entries...)
	err := m.err
	m.mu.Unlock()

	out := make(chan domain.FileEntry)
	errs := make(chan error, 1)
	go func() {
		defer close(out)
		if err != nil {
			errs <- err
			return
		}
		for _, e := range entries {
			select {
			case out <- e:
			case <-ctx.Done():
				return
			}
		}
	}()
	return out, errs
}

func (m *mockFileIndex) Upsert(_ context.Context, entries ...domain.FileEntry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.upserts = append(m.upserts, entries...)
	return nil
}

func (m *mockFileIndex) Remove(_ context.Context, path string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.removed = append(m.removed, path)
	return nil
}

func (m *mockFileIndex) Count(_ context.Context) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.upserts), nil
}

func (m *mockFileIndex) Close() error {
	return nil
}

// mockProbe reports the listed paths as directories.
type mockProbe map[string]bool

func (m mockProbe) IsDir(path string) bool {
	return m[path]
}

// mockRunner records subprocess invocations.
type mockRunner struct {
	mu       sync.Mutex
	output   []byte
	err      error
	startErr error
	delay    time.Duration
	listed   int
	started  [][]string
}

func (m *mockRunner) CombinedOutput(ctx context.Context, name string, args ...string) ([]byte, error) {
	if m.delay > 0 {
		select {
		case <-time.After(m.delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.listed++
	return m.output, m.err
}

func (m *mockRunner) Start(_ context.Context, name string, args ...string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.started = append(m.started, append([]string{name}, args...))
	return m.startErr
}

func (m *mockRunner) listCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.listed
}

// mockIcons resolves every app to a fixed icon.
type mockIcons struct {
	icon string
}

func (m mockIcons) ResolveAppIcon(_ context.Context, appName string) (string, bool) {
	if m.icon == "" {
		return "", false
	}
	return m.icon, true
}

// mockOpener records opened paths.
type mockOpener struct {
	mu     sync.Mutex
	opened []string
}

func (m *mockOpener) Open(_ context.Context, path string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.opened = append(m.opened, path)
	return nil
}

// mockClipboard records copied text.
type mockClipboard struct {
	mu     sync.Mutex
	copied []string
}

func (m *mockClipboard) Copy(_ context.Context, text string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.copied = append(m.copied, text)
	return nil
}

// mockCalculator recognizes inputs from a fixed table.
type mockCalculator map[string]domain.Calculation

func (m mockCalculator) Evaluate(input string) (domain.Calculation, bool) {
	c, ok := m[input]
	return c, ok
}

// stubSource answers with results named after the query, after an optional delay.
// A non-nil block holds every non-empty search until it is closed.
type stubSource struct {
	kind     domain.SourceKind
	delay    func(query string) time.Duration
	block    chan struct{}
	category string
	calls    atomic.Int32
}

func (s *stubSource) Kind() domain.SourceKind {
	return s.kind
}

func (s *stubSource) Search(_ context.Context, query string) []domain.SearchResult {
	s.calls.Add(1)
	if strings.TrimSpace(query) == "" {
		return nil
	}
	if s.block != nil {
		<-s.block
	}
	if s.delay != nil {
		time.Sleep(s.delay(query))
	}
	category := s.category
	if category == "" {
		category = string(s.kind)
	}
	return []domain.SearchResult{{
		ID:       string(s.kind) + ":" + query,
		Name:     query,
		Type:     domain.ResultType(category),
		Category: category,
	}}
}

// Ensure mocks implement interfaces
var (
	_ driven.AppCatalogQuery = (*mockAppQuery)(nil)
	_ driven.FileIndex       = (*mockFileIndex)(nil)
	_ driven.PathProbe       = mockProbe(nil)
	_ driven.CommandRunner   = (*mockRunner)(nil)
	_ driven.IconResolver    = mockIcons{}
	_ driven.Opener          = (*mockOpener)(nil)
	_ driven.Clipboard       = (*mockClipboard)(nil)
	_ Source                 = (*stubSource)(nil)
)
