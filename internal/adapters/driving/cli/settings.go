package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/launchpad/internal/core/domain"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage launcher settings",
	Long: `View launcher settings and switch sources on or off.

Other values are edited in config.toml in the config directory.`,
	RunE: runSettingsShow,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	RunE:  runSettingsShow,
}

var settingsSourceCmd = &cobra.Command{
	Use:   "source [kind]",
	Short: "Enable, disable or change the mode of a source",
	Long: `Changes one source.

Kinds:  application, file, shortcut, calculator
Modes:  automatic (searched on every query), triggered (searched on request)

Examples:
  launchpad settings source file --mode automatic
  launchpad settings source shortcut --disable`,
	Args: cobra.ExactArgs(1),
	RunE: runSettingsSource,
}

var (
	sourceEnable  bool
	sourceDisable bool
	sourceMode    string
)

func init() {
	settingsSourceCmd.Flags().BoolVar(&sourceEnable, "enable", false, "enable the source")
	settingsSourceCmd.Flags().BoolVar(&sourceDisable, "disable", false, "disable the source")
	settingsSourceCmd.Flags().StringVar(&sourceMode, "mode", "", "automatic or triggered")
	settingsSourceCmd.MarkFlagsMutuallyExclusive("enable", "disable")

	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsSourceCmd)
	rootCmd.AddCommand(settingsCmd)
}

func runSettingsShow(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	cmd.Println("Current Settings")
	cmd.Println("================")
	cmd.Println()

	cmd.Println("[Search]")
	cmd.Printf("  Debounce: %s\n", settings.Search.Debounce)
	cmd.Printf("  Source timeout: %s\n", settings.Search.SourceTimeout)
	cmd.Println()

	cmd.Println("[Sources]")
	for _, kind := range domain.AllSourceKinds() {
		src := settings.Source(kind)
		state := "disabled"
		if src.Enabled {
			state = "enabled"
		}
		cmd.Printf("  %-12s %-9s %s\n", kind, state, src.Mode)
	}
	cmd.Println()

	cmd.Println("[Applications]")
	cmd.Printf("  Directories: %s\n", orDefault(settings.Applications.Dirs))
	cmd.Printf("  Load timeout: %s\n", settings.Applications.LoadTimeout)
	if settings.Applications.RefreshInterval > 0 {
		cmd.Printf("  Refresh interval: %s\n", settings.Applications.RefreshInterval)
	} else {
		cmd.Printf("  Refresh interval: (disabled)\n")
	}
	cmd.Println()

	cmd.Println("[Files]")
	roots := "(none)"
	if len(settings.Files.Roots) > 0 {
		roots = strings.Join(settings.Files.Roots, ", ")
	}
	cmd.Printf("  Roots: %s\n", roots)
	cmd.Printf("  Page size: %d\n", settings.Files.PageSize)
	cmd.Printf("  Cache TTL: %s\n", settings.Files.CacheTTL)
	indexPath := settings.Files.IndexPath
	if indexPath == "" {
		indexPath = "(default)"
	}
	cmd.Printf("  Index: %s\n", indexPath)
	cmd.Println()

	cmd.Println("[Shortcuts]")
	cmd.Printf("  List command: %s\n", strings.Join(settings.Shortcuts.ListCommand, " "))
	cmd.Printf("  Run command: %s\n", strings.Join(settings.Shortcuts.RunCommand, " "))
	cmd.Printf("  Host app: %s\n", settings.Shortcuts.HostApp)
	return nil
}

func runSettingsSource(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	kind := domain.SourceKind(strings.ToLower(args[0]))
	if !kind.IsValid() {
		return fmt.Errorf("%w: unknown source %q", domain.ErrInvalidInput, args[0])
	}
	if !sourceEnable && !sourceDisable && sourceMode == "" {
		return errors.New("nothing to change: pass --enable, --disable or --mode")
	}

	if sourceEnable || sourceDisable {
		if err := settingsService.SetSourceEnabled(kind, sourceEnable); err != nil {
			return fmt.Errorf("failed to save settings: %w", err)
		}
	}
	if sourceMode != "" {
		if err := settingsService.SetSourceMode(kind, domain.SourceMode(strings.ToLower(sourceMode))); err != nil {
			return fmt.Errorf("failed to save settings: %w", err)
		}
	}
	cmd.Printf("Updated source %s\n", kind)
	return nil
}

func orDefault(values []string) string {
	if len(values) == 0 {
		return "(default)"
	}
	return strings.Join(values, ", ")
}
