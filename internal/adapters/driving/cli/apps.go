package cli

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"
)

var appsJSON bool

var appsCmd = &cobra.Command{
	Use:   "apps",
	Short: "List the application catalog",
	RunE:  runApps,
}

func init() {
	appsCmd.Flags().BoolVar(&appsJSON, "json", false, "output the catalog as JSON")
	rootCmd.AddCommand(appsCmd)
}

type appView struct {
	Name           string   `json:"name"`
	LocalizedNames []string `json:"localized_names,omitempty"`
	Path           string   `json:"path"`
	BundleID       string   `json:"bundle_id,omitempty"`
	Icon           string   `json:"icon,omitempty"`
}

func runApps(cmd *cobra.Command, _ []string) error {
	if catalog == nil {
		return errors.New("catalog not configured")
	}

	apps, err := catalog.Applications(cmd.Context())
	if err != nil {
		return fmt.Errorf("loading applications: %w", err)
	}
	sort.SliceStable(apps, func(i, j int) bool {
		return strings.ToLower(apps[i].Name) < strings.ToLower(apps[j].Name)
	})

	if appsJSON {
		views := make([]appView, 0, len(apps))
		for _, a := range apps {
			views = append(views, appView{
				Name:           a.Name,
				LocalizedNames: a.LocalizedNames,
				Path:           a.Path,
				BundleID:       a.BundleID,
				Icon:           a.Icon,
			})
		}
		return writeJSON(cmd.OutOrStdout(), views)
	}

	if len(apps) == 0 {
		cmd.Println("No applications found.")
		return nil
	}
	var t table
	for _, a := range apps {
		t.add(a.Name, strings.Join(a.LocalizedNames, ", "), a.Path)
	}
	t.write(cmd.OutOrStdout(), "")
	cmd.Printf("\n%d applications\n", len(apps))
	return nil
}
