package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/launchpad/internal/core/domain"
)

var openFiles bool

var openCmd = &cobra.Command{
	Use:   "open [query]",
	Short: "Run the top result of a search",
	Long: `Searches like the search command and performs the default action of the
first result: applications and files are opened, shortcuts are run and
calculations are copied to the clipboard.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runOpen,
}

func init() {
	openCmd.Flags().BoolVarP(&openFiles, "files", "f", false, "include file search")
	rootCmd.AddCommand(openCmd)
}

func runOpen(cmd *cobra.Command, args []string) error {
	if launcher == nil {
		return errors.New("launcher not configured")
	}

	var kinds []domain.SourceKind
	if openFiles {
		kinds = append(kinds, domain.SourceFile)
	}
	query := strings.Join(args, " ")
	snapshot, err := launcher.Query(cmd.Context(), query, kinds...)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}
	results := domain.Flatten(snapshot.Categories)
	if len(results) == 0 {
		return fmt.Errorf("%w: nothing matches %q", domain.ErrNotFound, query)
	}

	top := results[0]
	if err := launcher.Execute(cmd.Context(), top); err != nil {
		return fmt.Errorf("executing %s: %w", top.Name, err)
	}
	cmd.Printf("%s: %s\n", actionVerb(top.Type), top.Name)
	return nil
}

func actionVerb(t domain.ResultType) string {
	switch {
	case t.IsOpenable():
		return "Opened"
	case t == domain.ResultShortcut:
		return "Started"
	case t == domain.ResultCalculator:
		return "Copied"
	}
	return "Selected"
}
