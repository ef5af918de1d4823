package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"runtime/debug"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/custodia-labs/launchpad/internal/adapters/driving/tui"
	"github.com/custodia-labs/launchpad/internal/logger"
)

// runProgram runs a bubbletea model. Tests replace it.
var runProgram = func(m tea.Model) (tea.Model, error) {
	return tea.NewProgram(m, tea.WithAltScreen()).Run()
}

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Open the interactive launcher",
	Long: `Opens the interactive launcher. This is also what runs when launchpad is
started without a subcommand.

Controls:
  type      - Search
  ↑/↓       - Move the selection
  Enter     - Open, run or copy the selected result
  Ctrl+F    - Search files for the current query
  Ctrl+L    - Load more file results
  Esc       - Clear the query, or quit when it is empty
  F1        - Toggle help`,
	RunE: runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(cmd *cobra.Command, _ []string) error {
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "Panic in TUI: %v\n", r)
			fmt.Fprintf(os.Stderr, "Stack trace:\n%s\n", debug.Stack())
		}
	}()

	if launcher == nil {
		return errors.New("launcher not configured")
	}

	// The launcher is long-running, so catalogs are refreshed in the background.
	if scheduler != nil {
		schedulerCtx, schedulerCancel := context.WithCancel(cmd.Context())
		defer schedulerCancel()

		go func() {
			if err := scheduler.Start(schedulerCtx); err != nil && !errors.Is(err, context.Canceled) {
				logger.Warn("scheduler stopped: %v", err)
			}
		}()

		defer func() {
			if err := scheduler.Stop(); err != nil {
				logger.Warn("scheduler stop error: %v", err)
			}
		}()
	}

	if background != nil {
		bgCtx, bgCancel := context.WithCancel(cmd.Context())
		defer bgCancel()
		go background(bgCtx)
	}

	app, err := tui.NewApp(&tui.Ports{Launcher: launcher})
	if err != nil {
		return fmt.Errorf("failed to create TUI: %w", err)
	}
	app.WithContext(cmd.Context())

	if _, err := runProgram(app); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}
