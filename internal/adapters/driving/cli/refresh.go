package cli

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/launchpad/internal/core/domain"
)

var refreshCmd = &cobra.Command{
	Use:   "refresh [task...]",
	Short: "Run refresh tasks now",
	Long: `Runs refresh tasks immediately instead of waiting for their schedule.

Tasks:
  app-catalog       rebuild the application catalog
  shortcut-catalog  reload the shortcut list
  file-index        recrawl the configured file roots

Without arguments every task runs.`,
	RunE: runRefresh,
}

func init() {
	rootCmd.AddCommand(refreshCmd)
}

func runRefresh(cmd *cobra.Command, args []string) error {
	if scheduler == nil {
		return errors.New("scheduler not configured")
	}

	tasks := args
	if len(tasks) == 0 {
		tasks = []string{domain.TaskIDAppCatalog, domain.TaskIDShortcuts, domain.TaskIDFileIndex}
	}

	var failed int
	for _, id := range tasks {
		result, err := scheduler.RunNow(cmd.Context(), id)
		if err != nil {
			cmd.PrintErrf("%s: %v\n", id, err)
			failed++
			continue
		}
		if !result.Success {
			cmd.PrintErrf("%s: %s\n", id, result.Error)
			failed++
			continue
		}
		cmd.Printf("%s: %d items in %s\n", id, result.ItemsRefreshed, result.EndedAt.Sub(result.StartedAt).Round(time.Millisecond))
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d tasks failed", failed, len(tasks))
	}
	return nil
}
