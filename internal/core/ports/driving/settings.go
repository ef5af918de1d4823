package driving

import "github.com/custodia-labs/launchpad/internal/core/domain"

// SettingsService manages launcher settings.
type SettingsService interface {
	// Get retrieves current launcher settings.
	Get() (*domain.LauncherSettings, error)

	// Save validates and persists launcher settings.
	Save(settings *domain.LauncherSettings) error

	// SetSourceEnabled switches a source on or off.
	SetSourceEnabled(kind domain.SourceKind, enabled bool) error

	// SetSourceMode changes when a source is consulted.
	SetSourceMode(kind domain.SourceKind, mode domain.SourceMode) error

	// Validate checks the current settings.
	Validate() error

	// GetDefaults returns default settings.
	GetDefaults() domain.LauncherSettings
}
