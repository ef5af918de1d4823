package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var indexCmd = &cobra.Command{
	Use:   "index",
	Short: "Maintain the file index",
	Long:  `Commands for building and watching the file index behind file search.`,
}

var indexBuildCmd = &cobra.Command{
	Use:   "build [root...]",
	Short: "Crawl roots into the file index",
	Long:  `Crawls the given roots, or the configured files.roots, into the file index.`,
	RunE:  runIndexBuild,
}

var indexWatchCmd = &cobra.Command{
	Use:   "watch [root...]",
	Short: "Keep the file index current until interrupted",
	RunE:  runIndexWatch,
}

var indexStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the number of indexed entries",
	RunE:  runIndexStatus,
}

func init() {
	indexCmd.AddCommand(indexBuildCmd)
	indexCmd.AddCommand(indexWatchCmd)
	indexCmd.AddCommand(indexStatusCmd)
	rootCmd.AddCommand(indexCmd)
}

// indexRoots returns args, or the configured roots when args is empty.
func indexRoots(args []string) ([]string, error) {
	if len(args) > 0 {
		return args, nil
	}
	if settingsService == nil {
		return nil, errors.New("settings service not configured")
	}
	settings, err := settingsService.Get()
	if err != nil {
		return nil, fmt.Errorf("failed to get settings: %w", err)
	}
	if len(settings.Files.Roots) == 0 {
		return nil, errors.New("no roots given and files.roots is empty")
	}
	return settings.Files.Roots, nil
}

func runIndexBuild(cmd *cobra.Command, args []string) error {
	if indexService == nil {
		return errors.New("index service not configured")
	}
	roots, err := indexRoots(args)
	if err != nil {
		return err
	}

	n, err := indexService.Rebuild(cmd.Context(), roots)
	if err != nil {
		return fmt.Errorf("building index: %w", err)
	}
	cmd.Printf("Indexed %d entries from %d roots\n", n, len(roots))
	return nil
}

func runIndexWatch(cmd *cobra.Command, args []string) error {
	if indexService == nil {
		return errors.New("index service not configured")
	}
	roots, err := indexRoots(args)
	if err != nil {
		return err
	}

	cmd.Printf("Watching %d roots, press Ctrl+C to stop\n", len(roots))
	err = indexService.Watch(cmd.Context(), roots)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

func runIndexStatus(cmd *cobra.Command, _ []string) error {
	if indexService == nil {
		return errors.New("index service not configured")
	}
	n, err := indexService.Count(cmd.Context())
	if err != nil {
		return fmt.Errorf("counting index: %w", err)
	}
	cmd.Printf("%d entries indexed\n", n)
	return nil
}
