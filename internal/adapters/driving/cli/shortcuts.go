package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/launchpad/internal/core/domain"
)

var shortcutsCmd = &cobra.Command{
	Use:   "shortcuts",
	Short: "List or run shortcuts",
	RunE:  runShortcutsList,
}

var shortcutsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List registered shortcuts",
	RunE:  runShortcutsList,
}

var shortcutsRunCmd = &cobra.Command{
	Use:   "run [name]",
	Short: "Run a shortcut by name",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runShortcutsRun,
}

func init() {
	shortcutsCmd.AddCommand(shortcutsListCmd)
	shortcutsCmd.AddCommand(shortcutsRunCmd)
	rootCmd.AddCommand(shortcutsCmd)
}

func runShortcutsList(cmd *cobra.Command, _ []string) error {
	if catalog == nil {
		return errors.New("catalog not configured")
	}

	shortcuts, err := catalog.Shortcuts(cmd.Context())
	if err != nil {
		return fmt.Errorf("loading shortcuts: %w", err)
	}
	if len(shortcuts) == 0 {
		cmd.Println("No shortcuts found.")
		return nil
	}
	for _, s := range shortcuts {
		cmd.Println(s.Name)
	}
	return nil
}

func runShortcutsRun(cmd *cobra.Command, args []string) error {
	if launcher == nil {
		return errors.New("launcher not configured")
	}

	shortcut := domain.Shortcut{Name: strings.Join(args, " ")}
	result := domain.SearchResult{
		Name:     shortcut.Name,
		Path:     shortcut.Token(),
		Type:     domain.ResultShortcut,
		Category: domain.CategoryShortcut,
	}
	if err := launcher.Execute(cmd.Context(), result); err != nil {
		return fmt.Errorf("running shortcut: %w", err)
	}
	cmd.Printf("Started: %s\n", shortcut.Name)
	return nil
}
