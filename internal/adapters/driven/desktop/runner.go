package desktop

import (
	"context"
	"fmt"
	"os/exec"

	"github.com/custodia-labs/launchpad/internal/core/ports/driven"
)

// Ensure ExecRunner implements the interface.
var _ driven.CommandRunner = (*ExecRunner)(nil)

// ExecRunner runs host commands with os/exec.
type ExecRunner struct{}

// NewExecRunner creates a command runner.
func NewExecRunner() *ExecRunner {
	return &ExecRunner{}
}

// CombinedOutput runs name and returns its combined stdout and stderr.
// The process is killed when ctx is cancelled.
func (r *ExecRunner) CombinedOutput(ctx context.Context, name string, args ...string) ([]byte, error) {
	out, err := exec.CommandContext(ctx, name, args...).CombinedOutput()
	if err != nil {
		return out, fmt.Errorf("%s: %w", name, err)
	}
	return out, nil
}

// Start launches name without waiting for it. The process is detached from
// ctx so it outlives the caller; ctx only guards the launch itself.
func (r *ExecRunner) Start(ctx context.Context, name string, args ...string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	cmd := exec.Command(name, args...)
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("starting %s: %w", name, err)
	}
	go func() {
		// Reap the child so it does not linger as a zombie.
		_ = cmd.Wait()
	}()
	return nil
}
