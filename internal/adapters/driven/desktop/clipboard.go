package desktop

import (
	"context"
	"fmt"
	"os/exec"
	"runtime"
	"strings"

	"github.com/custodia-labs/launchpad/internal/core/ports/driven"
)

// Ensure Clipboard implements the interface.
var _ driven.Clipboard = (*Clipboard)(nil)

// Clipboard copies text with the first clipboard utility found on the host.
type Clipboard struct {
	goos     string
	lookPath func(string) (string, error)
}

// NewClipboard creates a clipboard for the running platform.
func NewClipboard() *Clipboard {
	return &Clipboard{goos: runtime.GOOS, lookPath: exec.LookPath}
}

// Copy writes text to the system clipboard.
func (c *Clipboard) Copy(ctx context.Context, text string) error {
	args, ok := c.detect()
	if !ok {
		return ErrNoClipboard
	}
	cmd := exec.CommandContext(ctx, args[0], args[1:]...)
	cmd.Stdin = strings.NewReader(text)
	if out, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("%s: %w: %s", args[0], err, strings.TrimSpace(string(out)))
	}
	return nil
}

// detect returns the clipboard command line, trying the platform's own
// utility first.
func (c *Clipboard) detect() ([]string, bool) {
	candidates := [][]string{
		{"pbcopy"},
		{"wl-copy"},
		{"xclip", "-selection", "clipboard"},
		{"xsel", "--clipboard", "--input"},
	}
	if c.goos == "windows" {
		candidates = append([][]string{{"clip.exe"}, {"clip"}}, candidates...)
	}
	for _, cand := range candidates {
		if path, err := c.lookPath(cand[0]); err == nil && path != "" {
			return append([]string{path}, cand[1:]...), true
		}
	}
	return nil, false
}
