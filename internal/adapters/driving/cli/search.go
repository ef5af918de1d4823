package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/launchpad/internal/core/domain"
)

var (
	searchLimit int
	searchJSON  bool
	searchFiles bool
)

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search every enabled source",
	Long: `Runs one federated search across applications, shortcuts and the
calculator, and prints the merged results grouped by category.

File search is triggered on request; pass --files to include it.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().IntVarP(&searchLimit, "limit", "n", 20, "maximum number of results (0 = no limit)")
	searchCmd.Flags().BoolVar(&searchJSON, "json", false, "output results as JSON")
	searchCmd.Flags().BoolVarP(&searchFiles, "files", "f", false, "include file search")
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	if launcher == nil {
		return errors.New("launcher not configured")
	}

	var kinds []domain.SourceKind
	if searchFiles {
		kinds = append(kinds, domain.SourceFile)
	}
	snapshot, err := launcher.Query(cmd.Context(), strings.Join(args, " "), kinds...)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}
	groups := limitGroups(snapshot.Categories, searchLimit)

	if searchJSON {
		views := []resultView{}
		for _, r := range domain.Flatten(groups) {
			views = append(views, viewOf(r))
		}
		return writeJSON(cmd.OutOrStdout(), views)
	}

	if len(groups) == 0 {
		cmd.Println("No results found.")
		return nil
	}
	for _, g := range groups {
		cmd.Printf("%s\n", domain.CategoryTitle(g.Name))
		var t table
		for _, r := range g.Results {
			t.add(r.Name, r.Subtitle)
		}
		t.write(cmd.OutOrStdout(), "  ")
	}
	return nil
}

// limitGroups keeps the first limit results in display order.
func limitGroups(groups []domain.CategoryGroup, limit int) []domain.CategoryGroup {
	if limit <= 0 {
		return groups
	}
	out := make([]domain.CategoryGroup, 0, len(groups))
	for _, g := range groups {
		if limit == 0 {
			break
		}
		n := min(limit, len(g.Results))
		out = append(out, domain.CategoryGroup{Name: g.Name, Results: g.Results[:n]})
		limit -= n
	}
	return out
}
