// Package search provides the launcher view: query input, grouped results
// and status line over a live driving.Launcher.
package search

import (
	"context"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/launchpad/internal/adapters/driving/tui/components/input"
	"github.com/custodia-labs/launchpad/internal/adapters/driving/tui/components/list"
	"github.com/custodia-labs/launchpad/internal/adapters/driving/tui/components/status"
	"github.com/custodia-labs/launchpad/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/launchpad/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/launchpad/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/launchpad/internal/core/domain"
	"github.com/custodia-labs/launchpad/internal/core/ports/driving"
)

// chromeRows is the number of rows taken by the input and the status bar.
const chromeRows = 5

// View is the launcher view.
type View struct {
	styles    *styles.Styles
	keymap    *keymap.KeyMap
	input     *input.QueryInput
	list      *list.ResultList
	statusbar *status.Bar

	launcher driving.Launcher
	ctx      context.Context

	query    string
	showHelp bool
	width    int
	height   int
}

// NewView creates a launcher view over l.
func NewView(s *styles.Styles, km *keymap.KeyMap, l driving.Launcher) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}
	return &View{
		styles:    s,
		keymap:    km,
		input:     input.NewQueryInput(s),
		list:      list.NewResultList(s),
		statusbar: status.NewBar(s, km),
		launcher:  l,
		ctx:       context.Background(),
		width:     80,
		height:    24,
	}
}

// WithContext sets the context results are executed with.
func (v *View) WithContext(ctx context.Context) *View {
	v.ctx = ctx
	return v
}

// Init starts the cursor and the snapshot listener.
func (v *View) Init() tea.Cmd {
	return tea.Batch(v.input.Init(), v.waitForSnapshot())
}

// waitForSnapshot blocks on the launcher's update channel.
// Every SnapshotReceived re-arms it.
func (v *View) waitForSnapshot() tea.Cmd {
	updates := v.launcher.Updates()
	return func() tea.Msg {
		snapshot, ok := <-updates
		if !ok {
			return messages.UpdatesClosed{}
		}
		return messages.SnapshotReceived{Snapshot: snapshot}
	}
}

// Update handles messages for the launcher view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)

	case messages.SnapshotReceived:
		v.handleSnapshot(msg.Snapshot)
		return v, v.waitForSnapshot()

	case messages.ResultExecuted:
		if msg.Err != nil {
			v.showError(msg.Err)
			return v, nil
		}
		return v, tea.Quit

	case messages.ErrorOccurred:
		v.showError(msg.Err)
		return v, nil
	}

	var cmd tea.Cmd
	v.input, cmd = v.input.Update(msg)
	return v, cmd
}

func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	k := msg.String()
	switch {
	case keymap.Matches(k, v.keymap.Quit):
		return v, tea.Quit

	case keymap.Matches(k, v.keymap.Clear):
		if v.input.Value() == "" {
			return v, tea.Quit
		}
		v.input.Reset()
		v.setQuery("")
		return v, nil

	case keymap.Matches(k, v.keymap.Up):
		v.list.MoveUp()
		return v, nil

	case keymap.Matches(k, v.keymap.Down):
		v.list.MoveDown()
		if v.list.AtEnd() {
			v.launcher.LoadMore(domain.SourceFile)
		}
		return v, nil

	case keymap.Matches(k, v.keymap.Execute):
		return v, v.execute()

	case keymap.Matches(k, v.keymap.Files):
		if strings.TrimSpace(v.query) != "" {
			v.statusbar.SetState(status.StateSearching)
			v.launcher.TriggerSearch(domain.SourceFile, v.query)
		}
		return v, nil

	case keymap.Matches(k, v.keymap.More):
		v.launcher.LoadMore(domain.SourceFile)
		return v, nil

	case keymap.Matches(k, v.keymap.Help):
		v.showHelp = !v.showHelp
		return v, nil
	}

	var cmd tea.Cmd
	v.input, cmd = v.input.Update(msg)
	if value := v.input.Value(); value != v.query {
		v.setQuery(value)
	}
	return v, cmd
}

// setQuery supersedes the current query. Empty queries clear the results at once.
func (v *View) setQuery(query string) {
	v.query = query
	v.launcher.Search(query)
	if strings.TrimSpace(query) == "" {
		v.list.Clear()
		v.statusbar.Clear()
		return
	}
	v.statusbar.SetState(status.StateSearching)
}

func (v *View) handleSnapshot(snapshot domain.Snapshot) {
	if snapshot.Query != strings.TrimSpace(v.query) {
		// A snapshot for text the user has already replaced.
		return
	}
	if snapshot.Query == "" {
		v.list.Clear()
		v.statusbar.Clear()
		return
	}
	v.list.SetSnapshot(snapshot)
	v.statusbar.SetResultCount(v.list.Count())
	v.statusbar.SetState(status.StateResults)
	if v.launcher.IsSearching() {
		v.statusbar.SetState(status.StateSearching)
	}
}

func (v *View) execute() tea.Cmd {
	selected := v.list.SelectedResult()
	if selected == nil {
		return nil
	}
	result := *selected
	ctx := v.ctx
	return func() tea.Msg {
		return messages.ResultExecuted{Result: result, Err: v.launcher.Execute(ctx, result)}
	}
}

func (v *View) showError(err error) {
	v.statusbar.SetState(status.StateError)
	v.statusbar.SetMessage(err.Error())
}

// View renders the launcher.
func (v *View) View() string {
	sections := []string{v.input.View()}
	if v.showHelp {
		sections = append(sections, "", v.statusbar.HelpView())
	} else if strings.TrimSpace(v.query) != "" {
		sections = append(sections, v.list.View())
	}

	body := strings.Join(sections, "\n")
	used := strings.Count(body, "\n") + 1
	if pad := v.height - used - 1; pad > 0 {
		body += strings.Repeat("\n", pad)
	}
	return body + "\n" + v.statusbar.View()
}

// SetDimensions sizes the view and its components.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.input.SetWidth(width)
	v.list.SetDimensions(width, max(height-chromeRows, 1))
	v.statusbar.SetWidth(width)
}

// Query returns the current query.
func (v *View) Query() string {
	return v.query
}

// Results returns the number of listed results.
func (v *View) Results() int {
	return v.list.Count()
}

// Selected returns the selected result, or nil.
func (v *View) Selected() *domain.SearchResult {
	return v.list.SelectedResult()
}

// State returns the status bar state.
func (v *View) State() status.State {
	return v.statusbar.State()
}
