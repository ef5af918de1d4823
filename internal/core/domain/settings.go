package domain

import (
	"fmt"
	"time"
)

// Settings defaults.
const (
	DefaultDebounce        = 200 * time.Millisecond
	DefaultSourceTimeout   = 1500 * time.Millisecond
	DefaultLoadTimeout     = 20 * time.Second
	DefaultRefreshInterval = 30 * time.Minute
	DefaultFilePageSize    = 20
	DefaultFileCacheTTL    = 300 * time.Second
	DefaultQueryCacheSize  = 20
)

// IndexInMemory is the IndexPath that selects a process-local file index.
const IndexInMemory = ":memory:"

// SearchSettings holds orchestrator timing.
type SearchSettings struct {
	// Debounce is how long input must be stable before dispatch.
	Debounce time.Duration

	// SourceTimeout is the per-source soft cap. A source still pending
	// past the cap contributes nothing to the round.
	SourceTimeout time.Duration
}

// SourceSettings holds per-source switches.
type SourceSettings struct {
	// Enabled indicates whether the source is consulted at all.
	Enabled bool

	// Mode decides whether the source runs on every query or on request.
	Mode SourceMode
}

// ApplicationSettings configures the application catalog.
type ApplicationSettings struct {
	// Dirs are the directories scanned for applications.
	// Empty means the platform defaults.
	Dirs []string

	// LoadTimeout is the hard deadline of one catalog build.
	LoadTimeout time.Duration

	// RefreshInterval is how often the catalog is rebuilt. Zero disables it.
	RefreshInterval time.Duration
}

// FileSettings configures the file source and its index.
type FileSettings struct {
	// Roots are the directories crawled into the file index.
	Roots []string

	// PageSize is the number of results per page.
	PageSize int

	// CacheTTL is how long a complete result list stays cached.
	CacheTTL time.Duration

	// IndexPath is the directory holding the index database.
	// Empty means the default data directory; IndexInMemory keeps the
	// index in process memory.
	IndexPath string
}

// ShortcutSettings configures the external automation catalog.
type ShortcutSettings struct {
	// ListCommand prints one shortcut name per line.
	ListCommand []string

	// RunCommand is invoked with the shortcut name appended.
	RunCommand []string

	// HostApp names the automation application whose icon decorates results.
	HostApp string
}

// LauncherSettings holds all launcher settings.
type LauncherSettings struct {
	Search       SearchSettings
	Sources      map[SourceKind]SourceSettings
	Applications ApplicationSettings
	Files        FileSettings
	Shortcuts    ShortcutSettings
}

// Source returns the settings of one source.
// Unknown kinds are reported disabled.
func (s LauncherSettings) Source(kind SourceKind) SourceSettings {
	if s.Sources == nil {
		return SourceSettings{}
	}
	return s.Sources[kind]
}

// Validate checks the settings for values the services cannot run with.
func (s LauncherSettings) Validate() error {
	if s.Search.Debounce < 0 {
		return fmt.Errorf("%w: negative debounce", ErrInvalidInput)
	}
	if s.Search.SourceTimeout <= 0 {
		return fmt.Errorf("%w: source timeout must be positive", ErrInvalidInput)
	}
	for kind, src := range s.Sources {
		if !kind.IsValid() {
			return fmt.Errorf("%w: unknown source %q", ErrInvalidInput, kind)
		}
		if !src.Mode.IsValid() {
			return fmt.Errorf("%w: source %s has mode %q", ErrInvalidInput, kind, src.Mode)
		}
	}
	if s.Applications.LoadTimeout <= 0 {
		return fmt.Errorf("%w: application load timeout must be positive", ErrInvalidInput)
	}
	if s.Files.PageSize <= 0 {
		return fmt.Errorf("%w: file page size must be positive", ErrInvalidInput)
	}
	if s.Files.CacheTTL <= 0 {
		return fmt.Errorf("%w: file cache ttl must be positive", ErrInvalidInput)
	}
	return nil
}

// DefaultLauncherSettings returns settings with sensible defaults.
// File search is triggered rather than automatic.
func DefaultLauncherSettings() LauncherSettings {
	return LauncherSettings{
		Search: SearchSettings{
			Debounce:      DefaultDebounce,
			SourceTimeout: DefaultSourceTimeout,
		},
		Sources: map[SourceKind]SourceSettings{
			SourceApplication: {Enabled: true, Mode: SourceModeAutomatic},
			SourceShortcut:    {Enabled: true, Mode: SourceModeAutomatic},
			SourceCalculator:  {Enabled: true, Mode: SourceModeAutomatic},
			SourceFile:        {Enabled: true, Mode: SourceModeTriggered},
		},
		Applications: ApplicationSettings{
			LoadTimeout:     DefaultLoadTimeout,
			RefreshInterval: DefaultRefreshInterval,
		},
		Files: FileSettings{
			PageSize: DefaultFilePageSize,
			CacheTTL: DefaultFileCacheTTL,
		},
		Shortcuts: ShortcutSettings{
			ListCommand: []string{"shortcuts", "list"},
			RunCommand:  []string{"shortcuts", "run"},
			HostApp:     "Shortcuts",
		},
	}
}
