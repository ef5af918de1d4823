// Package cli provides the cobra command tree of launchpad.
package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/launchpad/internal/core/ports/driving"
	"github.com/custodia-labs/launchpad/internal/logger"
)

// version is set at build time.
var version = "dev"

// Services holds the core services the commands drive.
type Services struct {
	Launcher   driving.Launcher
	Calculator driving.Calculator
	Catalog    driving.CatalogBrowser
	Index      driving.IndexService
	Settings   driving.SettingsService
	Scheduler  driving.RefreshScheduler

	// Background runs while the interactive launcher is open. Optional.
	Background func(ctx context.Context)
}

// Builder wires Services from the config directory given on the command line.
// The returned close function releases what the services hold.
type Builder func(ctx context.Context, configDir string) (*Services, func(), error)

var (
	launcher        driving.Launcher
	calculator      driving.Calculator
	catalog         driving.CatalogBrowser
	indexService    driving.IndexService
	settingsService driving.SettingsService
	scheduler       driving.RefreshScheduler
	background      func(ctx context.Context)

	builder   Builder
	closeFunc func()

	verbose   bool
	configDir string
)

var rootCmd = &cobra.Command{
	Use:   "launchpad",
	Short: "Federated quick-launcher search",
	Long: `launchpad searches installed applications, indexed files, shortcuts and
inline calculations from one prompt.

Run without a subcommand to open the interactive launcher.`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
	PersistentPostRun: func(*cobra.Command, []string) {
		if closeFunc != nil {
			closeFunc()
			closeFunc = nil
		}
	},
	RunE: runTUI,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&configDir, "config", "", "config directory (default ~/.launchpad)")
}

// SetServices installs the services used by every command.
func SetServices(s *Services) {
	launcher = s.Launcher
	calculator = s.Calculator
	catalog = s.Catalog
	indexService = s.Index
	settingsService = s.Settings
	scheduler = s.Scheduler
	background = s.Background
}

// SetBuilder installs the function that wires services before a command runs.
func SetBuilder(b Builder) {
	builder = b
}

// SetVersion sets the version printed by the version command.
func SetVersion(v string) {
	version = v
}

// Execute runs the root command.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

func setup(cmd *cobra.Command, _ []string) error {
	logger.SetVerbose(verbose)
	logger.SetOutput(cmd.ErrOrStderr())
	if builder == nil || cmd == versionCmd {
		return nil
	}
	services, closeFn, err := builder(cmd.Context(), configDir)
	if err != nil {
		return err
	}
	SetServices(services)
	closeFunc = closeFn
	return nil
}
