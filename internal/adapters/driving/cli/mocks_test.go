package cli

import (
	"context"
	"errors"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/launchpad/internal/core/domain"
)

type mockLauncher struct {
	snapshot  domain.Snapshot
	queryErr  error
	execErr   error
	executed  []domain.SearchResult
	lastKinds []domain.SourceKind
	updates   chan domain.Snapshot
}

func (m *mockLauncher) Search(string)                           {}
func (m *mockLauncher) TriggerSearch(domain.SourceKind, string) {}
func (m *mockLauncher) LoadMore(domain.SourceKind)              {}
func (m *mockLauncher) Updates() <-chan domain.Snapshot         { return m.updates }
func (m *mockLauncher) Current() domain.Snapshot                { return m.snapshot }
func (m *mockLauncher) IsSearching() bool                       { return false }

func (m *mockLauncher) Execute(_ context.Context, r domain.SearchResult) error {
	m.executed = append(m.executed, r)
	return m.execErr
}

func (m *mockLauncher) Query(_ context.Context, _ string, kinds ...domain.SourceKind) (domain.Snapshot, error) {
	m.lastKinds = kinds
	return m.snapshot, m.queryErr
}

type mockCalculator struct{}

func (mockCalculator) Evaluate(input string) (domain.Calculation, bool) {
	if input != "1+1" {
		return domain.Calculation{}, false
	}
	return domain.Calculation{Kind: domain.CalculationArithmetic, Formula: "1+1", Result: "2"}, true
}

type mockCatalog struct {
	apps      []domain.AppInfo
	shortcuts []domain.Shortcut
}

func (m *mockCatalog) Applications(context.Context) ([]domain.AppInfo, error) {
	return m.apps, nil
}

func (m *mockCatalog) Shortcuts(context.Context) ([]domain.Shortcut, error) {
	return m.shortcuts, nil
}

type mockIndex struct {
	roots []string
	count int
}

func (m *mockIndex) Rebuild(_ context.Context, roots []string) (int, error) {
	m.roots = roots
	return m.count, nil
}

func (m *mockIndex) Watch(ctx context.Context, roots []string) error {
	m.roots = roots
	return context.Canceled
}

func (m *mockIndex) Count(context.Context) (int, error) {
	return m.count, nil
}

type mockSettings struct {
	settings domain.LauncherSettings
	enabled  map[domain.SourceKind]bool
	modes    map[domain.SourceKind]domain.SourceMode
}

func newMockSettings() *mockSettings {
	return &mockSettings{
		settings: domain.DefaultLauncherSettings(),
		enabled:  map[domain.SourceKind]bool{},
		modes:    map[domain.SourceKind]domain.SourceMode{},
	}
}

func (m *mockSettings) Get() (*domain.LauncherSettings, error) {
	s := m.settings
	return &s, nil
}

func (m *mockSettings) Save(s *domain.LauncherSettings) error {
	m.settings = *s
	return nil
}

func (m *mockSettings) SetSourceEnabled(kind domain.SourceKind, enabled bool) error {
	m.enabled[kind] = enabled
	return nil
}

func (m *mockSettings) SetSourceMode(kind domain.SourceKind, mode domain.SourceMode) error {
	if !mode.IsValid() {
		return domain.ErrInvalidInput
	}
	m.modes[kind] = mode
	return nil
}

func (m *mockSettings) Validate() error { return nil }

func (m *mockSettings) GetDefaults() domain.LauncherSettings {
	return domain.DefaultLauncherSettings()
}

type mockScheduler struct {
	ran     []string
	started chan struct{}
	stopped bool
}

func (m *mockScheduler) Start(ctx context.Context) error {
	if m.started != nil {
		close(m.started)
	}
	<-ctx.Done()
	return ctx.Err()
}

func (m *mockScheduler) Stop() error {
	m.stopped = true
	return nil
}

func (m *mockScheduler) RunNow(_ context.Context, taskID string) (*domain.RefreshResult, error) {
	m.ran = append(m.ran, taskID)
	now := time.Now()
	if taskID == "broken" {
		return nil, errors.New("unknown task")
	}
	return &domain.RefreshResult{TaskID: taskID, StartedAt: now, EndedAt: now, Success: true, ItemsRefreshed: 3}, nil
}

// testServices holds the fakes installed by setupTestServices.
type testServices struct {
	launcher  *mockLauncher
	catalog   *mockCatalog
	index     *mockIndex
	settings  *mockSettings
	scheduler *mockScheduler
}

// setupTestServices installs fakes for every service and returns them
// with a cleanup function restoring the previous state.
func setupTestServices() (*testServices, func()) {
	results := []domain.SearchResult{
		{ID: "1", Name: "Terminal", Path: "/usr/share/applications/terminal.desktop",
			Type: domain.ResultApplication, Category: domain.CategoryApplication, RelevanceScore: 90},
		{ID: "2", Name: "= 2", Type: domain.ResultCalculator, Category: domain.CategoryCalculator,
			Subtitle: "1+1"},
	}
	ts := &testServices{
		launcher: &mockLauncher{snapshot: domain.Snapshot{
			Query: "t", Results: results, Categories: domain.GroupByCategory(results),
		}},
		catalog: &mockCatalog{
			apps: []domain.AppInfo{
				{Name: "Terminal", Path: "/usr/share/applications/terminal.desktop"},
				{Name: "calendar", LocalizedNames: []string{"日历"}, Path: "/usr/share/applications/calendar.desktop"},
			},
			shortcuts: []domain.Shortcut{{Name: "Morning Routine"}},
		},
		index:     &mockIndex{count: 42},
		settings:  newMockSettings(),
		scheduler: &mockScheduler{},
	}

	prevBuilder := builder
	prevRun := runProgram
	builder = nil
	SetServices(&Services{
		Launcher:   ts.launcher,
		Calculator: mockCalculator{},
		Catalog:    ts.catalog,
		Index:      ts.index,
		Settings:   ts.settings,
		Scheduler:  ts.scheduler,
	})
	runProgram = func(m tea.Model) (tea.Model, error) { return m, nil }

	return ts, func() {
		SetServices(&Services{})
		builder = prevBuilder
		runProgram = prevRun
	}
}
