package tui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/launchpad/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/launchpad/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/launchpad/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/launchpad/internal/adapters/driving/tui/views/search"
)

// App is the TUI application following the Elm architecture.
// It implements tea.Model for use with Bubbletea.
type App struct {
	ports  *Ports
	styles *styles.Styles
	view   *search.View

	// lastExecuted is the result run before the program quit, if any.
	lastExecuted string

	ready bool
}

// Ensure App implements tea.Model.
var _ tea.Model = (*App)(nil)

// NewApp creates a new TUI application with the given ports.
func NewApp(ports *Ports) (*App, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("creating app: %w", err)
	}

	s := styles.DefaultStyles()
	return &App{
		ports:  ports,
		styles: s,
		view:   search.NewView(s, keymap.DefaultKeyMap(), ports.Launcher),
	}, nil
}

// WithContext sets the context results are executed with.
func (a *App) WithContext(ctx context.Context) *App {
	a.view.WithContext(ctx)
	return a
}

// Init implements tea.Model.
func (a *App) Init() tea.Cmd {
	return tea.Batch(
		tea.SetWindowTitle("launchpad"),
		a.view.Init(),
	)
}

// Update implements tea.Model.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.ready = true
	case messages.ResultExecuted:
		if msg.Err == nil {
			a.lastExecuted = msg.Result.Name
		}
	case messages.UpdatesClosed:
		return a, tea.Quit
	}

	var cmd tea.Cmd
	a.view, cmd = a.view.Update(msg)
	return a, cmd
}

// View implements tea.Model.
func (a *App) View() string {
	if !a.ready {
		return "Initialising..."
	}
	return a.view.View()
}

// LastExecuted returns the name of the result run before quitting.
func (a *App) LastExecuted() string {
	return a.lastExecuted
}

// Launcher returns the launcher view.
func (a *App) Launcher() *search.View {
	return a.view
}
