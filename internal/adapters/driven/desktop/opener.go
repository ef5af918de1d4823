package desktop

import (
	"context"
	"fmt"
	"os/exec"
	"runtime"
	"strings"

	"github.com/custodia-labs/launchpad/internal/core/ports/driven"
)

// Ensure Opener implements the interface.
var _ driven.Opener = (*Opener)(nil)

// Opener hands paths to the platform's default handler.
type Opener struct {
	goos     string
	lookPath func(string) (string, error)
	runner   driven.CommandRunner
}

// NewOpener creates an opener for the running platform.
func NewOpener(runner driven.CommandRunner) *Opener {
	return &Opener{goos: runtime.GOOS, lookPath: exec.LookPath, runner: runner}
}

// Open launches path without waiting for the handler.
func (o *Opener) Open(ctx context.Context, path string) error {
	args, err := o.command(path)
	if err != nil {
		return err
	}
	return o.runner.Start(ctx, args[0], args[1:]...)
}

// command picks the handler invocation for path. Launcher entries are run
// with gio when it is installed; everything else goes to the generic opener.
func (o *Opener) command(path string) ([]string, error) {
	switch o.goos {
	case "darwin":
		return []string{"open", path}, nil
	case "windows":
		return []string{"cmd", "/c", "start", "", path}, nil
	}

	if strings.HasSuffix(path, ".desktop") {
		if gio, err := o.lookPath("gio"); err == nil {
			return []string{gio, "launch", path}, nil
		}
	}
	xdg, err := o.lookPath("xdg-open")
	if err != nil {
		return nil, fmt.Errorf("%w: install xdg-utils", ErrNoOpener)
	}
	return []string{xdg, path}, nil
}
