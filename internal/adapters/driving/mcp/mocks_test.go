package mcp

import (
	"context"

	"github.com/custodia-labs/launchpad/internal/core/domain"
)

// mockLauncher is a mock implementation of driving.Launcher.
type mockLauncher struct {
	snapshot  domain.Snapshot
	err       error
	lastQuery string
	lastKinds []domain.SourceKind
}

func (m *mockLauncher) Search(string)                                      {}
func (m *mockLauncher) TriggerSearch(domain.SourceKind, string)            {}
func (m *mockLauncher) LoadMore(domain.SourceKind)                         {}
func (m *mockLauncher) Updates() <-chan domain.Snapshot                    { return nil }
func (m *mockLauncher) Current() domain.Snapshot                           { return m.snapshot }
func (m *mockLauncher) IsSearching() bool                                  { return false }
func (m *mockLauncher) Execute(context.Context, domain.SearchResult) error { return nil }

func (m *mockLauncher) Query(_ context.Context, text string, kinds ...domain.SourceKind) (domain.Snapshot, error) {
	m.lastQuery = text
	m.lastKinds = kinds
	return m.snapshot, m.err
}

// mockCalculator is a mock implementation of driving.Calculator.
type mockCalculator struct {
	calc domain.Calculation
	ok   bool
}

func (m *mockCalculator) Evaluate(string) (domain.Calculation, bool) {
	return m.calc, m.ok
}

// mockCatalog is a mock implementation of driving.CatalogBrowser.
type mockCatalog struct {
	apps      []domain.AppInfo
	shortcuts []domain.Shortcut
	err       error
}

func (m *mockCatalog) Applications(context.Context) ([]domain.AppInfo, error) {
	return m.apps, m.err
}

func (m *mockCatalog) Shortcuts(context.Context) ([]domain.Shortcut, error) {
	return m.shortcuts, m.err
}
