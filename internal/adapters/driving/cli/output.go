package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/mattn/go-runewidth"
	"golang.org/x/term"

	"github.com/custodia-labs/launchpad/internal/core/domain"
)

// defaultWidth is used when the output is not a terminal.
const defaultWidth = 100

// terminalWidth returns the column count of w, or false when w is not a terminal.
func terminalWidth(w io.Writer) (int, bool) {
	f, ok := w.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return 0, false
	}
	width, _, err := term.GetSize(int(f.Fd()))
	if err != nil || width <= 0 {
		return defaultWidth, true
	}
	return width, true
}

// table lays out rows in aligned columns. Widths are measured in terminal
// cells so CJK names line up. When the output is not a terminal, rows are
// written tab-separated for scripts.
type table struct {
	rows [][]string
}

func (t *table) add(cols ...string) {
	t.rows = append(t.rows, cols)
}

func (t *table) write(w io.Writer, indent string) {
	width, tty := terminalWidth(w)
	if !tty {
		for _, row := range t.rows {
			fmt.Fprintln(w, strings.Join(row, "\t"))
		}
		return
	}

	var widths []int
	for _, row := range t.rows {
		for i, col := range row {
			if i >= len(widths) {
				widths = append(widths, 0)
			}
			widths[i] = max(widths[i], runewidth.StringWidth(col))
		}
	}

	for _, row := range t.rows {
		var b strings.Builder
		b.WriteString(indent)
		for i, col := range row {
			if i == len(row)-1 {
				b.WriteString(col)
				break
			}
			b.WriteString(runewidth.FillRight(col, widths[i]))
			b.WriteString("  ")
		}
		fmt.Fprintln(w, runewidth.Truncate(b.String(), width, "…"))
	}
}

// resultView is the JSON form of a search result.
type resultView struct {
	ID       string     `json:"id"`
	Name     string     `json:"name"`
	Path     string     `json:"path,omitempty"`
	Type     string     `json:"type"`
	Category string     `json:"category"`
	Icon     string     `json:"icon,omitempty"`
	Subtitle string     `json:"subtitle,omitempty"`
	LastUsed *time.Time `json:"last_used,omitempty"`
	Score    int        `json:"score"`
}

func viewOf(r domain.SearchResult) resultView {
	return resultView{
		ID:       r.ID,
		Name:     r.Name,
		Path:     r.Path,
		Type:     r.Type.String(),
		Category: r.Category,
		Icon:     r.Icon,
		Subtitle: r.Subtitle,
		LastUsed: r.LastUsedDate,
		Score:    r.RelevanceScore,
	}
}

func writeJSON(w io.Writer, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}
