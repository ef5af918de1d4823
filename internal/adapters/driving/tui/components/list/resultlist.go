// Package list provides the grouped result list of the launcher.
package list

import (
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/custodia-labs/launchpad/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/launchpad/internal/core/domain"
)

// row is one rendered line: a category heading or a result.
type row struct {
	heading string
	result  int
}

// ResultList displays a snapshot grouped by category with one selected result.
type ResultList struct {
	styles   *styles.Styles
	results  []domain.SearchResult
	rows     []row
	selected int
	width    int
	height   int
}

// NewResultList creates an empty result list.
func NewResultList(s *styles.Styles) *ResultList {
	if s == nil {
		s = styles.DefaultStyles()
	}
	return &ResultList{styles: s, width: 80, height: 20}
}

// SetSnapshot replaces the listed results. The selection stays on the same
// result when it is still present, otherwise it returns to the top.
func (r *ResultList) SetSnapshot(snapshot domain.Snapshot) {
	var keep string
	if sel := r.SelectedResult(); sel != nil {
		keep = selectionKey(*sel)
	}

	r.results = nil
	r.rows = nil
	r.selected = 0
	for _, g := range snapshot.Categories {
		r.rows = append(r.rows, row{heading: domain.CategoryTitle(g.Name), result: -1})
		for _, res := range g.Results {
			if keep != "" && selectionKey(res) == keep {
				r.selected = len(r.results)
			}
			r.rows = append(r.rows, row{result: len(r.results)})
			r.results = append(r.results, res)
		}
	}
}

// selectionKey identifies a result across snapshots. IDs are regenerated
// per query, so the type and path or name are used.
func selectionKey(res domain.SearchResult) string {
	if res.Path != "" {
		return string(res.Type) + ":" + res.Path
	}
	return string(res.Type) + ":" + res.Name
}

// View renders the rows around the selection that fit the height.
func (r *ResultList) View() string {
	if len(r.results) == 0 {
		return r.styles.Muted.Render("No results")
	}

	start, end := r.window()
	lines := make([]string, 0, end-start)
	for _, rw := range r.rows[start:end] {
		if rw.result < 0 {
			lines = append(lines, r.styles.Category.Render(rw.heading))
			continue
		}
		lines = append(lines, r.renderResult(rw.result))
	}
	return strings.Join(lines, "\n")
}

// window returns the row range to render, keeping the selected row visible.
func (r *ResultList) window() (int, int) {
	visible := max(r.height, 1)
	if len(r.rows) <= visible {
		return 0, len(r.rows)
	}
	selRow := 0
	for i, rw := range r.rows {
		if rw.result == r.selected {
			selRow = i
			break
		}
	}
	start := 0
	if selRow >= visible {
		start = selRow - visible + 1
	}
	return start, min(start+visible, len(r.rows))
}

func (r *ResultList) renderResult(i int) string {
	res := r.results[i]
	nameWidth := max(r.width/2, 10)
	name := runewidth.FillRight(runewidth.Truncate(res.Name, nameWidth, "…"), nameWidth)
	subtitle := runewidth.Truncate(res.Subtitle, max(r.width-nameWidth-6, 0), "…")

	if i == r.selected {
		return r.styles.Selected.Render("▸ " + name + "  " + subtitle)
	}
	nameStyle := r.styles.Normal
	if res.Type == domain.ResultCalculator {
		nameStyle = r.styles.Calculation
	}
	return "  " + nameStyle.Render(name) + "  " + r.styles.Muted.Render(subtitle)
}

// SelectedResult returns the selected result, or nil when the list is empty.
func (r *ResultList) SelectedResult() *domain.SearchResult {
	if r.selected < 0 || r.selected >= len(r.results) {
		return nil
	}
	return &r.results[r.selected]
}

// Selected returns the index of the selected result.
func (r *ResultList) Selected() int {
	return r.selected
}

// MoveUp moves the selection up.
func (r *ResultList) MoveUp() {
	if r.selected > 0 {
		r.selected--
	}
}

// MoveDown moves the selection down.
func (r *ResultList) MoveDown() {
	if r.selected < len(r.results)-1 {
		r.selected++
	}
}

// AtEnd reports whether the last result is selected.
func (r *ResultList) AtEnd() bool {
	return len(r.results) > 0 && r.selected == len(r.results)-1
}

// SetDimensions sets the list size in cells and rows.
func (r *ResultList) SetDimensions(width, height int) {
	r.width = width
	r.height = height
}

// Count returns the number of results.
func (r *ResultList) Count() int {
	return len(r.results)
}

// Clear removes every result.
func (r *ResultList) Clear() {
	r.results = nil
	r.rows = nil
	r.selected = 0
}
