package services

import (
	"fmt"
	"time"

	"github.com/custodia-labs/launchpad/internal/core/domain"
	"github.com/custodia-labs/launchpad/internal/core/ports/driven"
	"github.com/custodia-labs/launchpad/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
const (
	keyDebounceMS      = "search.debounce_ms"
	keySourceTimeoutMS = "search.source_timeout_ms"
	keyAppDirs         = "applications.dirs"
	keyAppLoadTimeout  = "applications.load_timeout_s"
	keyAppRefresh      = "applications.refresh_interval_m"
	keyFileRoots       = "files.roots"
	keyFilePageSize    = "files.page_size"
	keyFileCacheTTL    = "files.cache_ttl_s"
	keyFileIndexPath   = "files.index_path"
	keyShortcutList    = "shortcuts.list_command"
	keyShortcutRun     = "shortcuts.run_command"
	keyShortcutHost    = "shortcuts.host_app"
)

func keySourceEnabled(kind domain.SourceKind) string {
	return "sources." + kind.String() + ".enabled"
}

func keySourceMode(kind domain.SourceKind) string {
	return "sources." + kind.String() + ".mode"
}

// configValue is one key written by Save.
type configValue struct {
	key   string
	value any
}

// SettingsService maps configuration keys to launcher settings.
type SettingsService struct {
	configStore driven.ConfigStore
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore) *SettingsService {
	return &SettingsService{configStore: configStore}
}

// Get retrieves current launcher settings. Missing or invalid values fall back to defaults.
func (s *SettingsService) Get() (*domain.LauncherSettings, error) {
	defaults := domain.DefaultLauncherSettings()

	settings := &domain.LauncherSettings{
		Search: domain.SearchSettings{
			Debounce:      s.getDuration(keyDebounceMS, time.Millisecond, defaults.Search.Debounce),
			SourceTimeout: s.getDuration(keySourceTimeoutMS, time.Millisecond, defaults.Search.SourceTimeout),
		},
		Sources: make(map[domain.SourceKind]domain.SourceSettings, len(defaults.Sources)),
		Applications: domain.ApplicationSettings{
			Dirs:            s.getStrings(keyAppDirs, defaults.Applications.Dirs),
			LoadTimeout:     s.getDuration(keyAppLoadTimeout, time.Second, defaults.Applications.LoadTimeout),
			RefreshInterval: s.getDuration(keyAppRefresh, time.Minute, defaults.Applications.RefreshInterval),
		},
		Files: domain.FileSettings{
			Roots:     s.getStrings(keyFileRoots, defaults.Files.Roots),
			PageSize:  s.getInt(keyFilePageSize, defaults.Files.PageSize),
			CacheTTL:  s.getDuration(keyFileCacheTTL, time.Second, defaults.Files.CacheTTL),
			IndexPath: s.getString(keyFileIndexPath, defaults.Files.IndexPath),
		},
		Shortcuts: domain.ShortcutSettings{
			ListCommand: s.getStrings(keyShortcutList, defaults.Shortcuts.ListCommand),
			RunCommand:  s.getStrings(keyShortcutRun, defaults.Shortcuts.RunCommand),
			HostApp:     s.getString(keyShortcutHost, defaults.Shortcuts.HostApp),
		},
	}

	for _, kind := range domain.AllSourceKinds() {
		def := defaults.Source(kind)
		settings.Sources[kind] = domain.SourceSettings{
			Enabled: s.getBool(keySourceEnabled(kind), def.Enabled),
			Mode:    s.getMode(kind, def.Mode),
		}
	}

	return settings, nil
}

// Save validates and persists launcher settings.
func (s *SettingsService) Save(settings *domain.LauncherSettings) error {
	if settings == nil {
		return domain.ErrInvalidInput
	}
	if err := settings.Validate(); err != nil {
		return err
	}

	values := []configValue{
		{keyDebounceMS, int(settings.Search.Debounce / time.Millisecond)},
		{keySourceTimeoutMS, int(settings.Search.SourceTimeout / time.Millisecond)},
		{keyAppDirs, settings.Applications.Dirs},
		{keyAppLoadTimeout, int(settings.Applications.LoadTimeout / time.Second)},
		{keyAppRefresh, int(settings.Applications.RefreshInterval / time.Minute)},
		{keyFileRoots, settings.Files.Roots},
		{keyFilePageSize, settings.Files.PageSize},
		{keyFileCacheTTL, int(settings.Files.CacheTTL / time.Second)},
		{keyFileIndexPath, settings.Files.IndexPath},
		{keyShortcutList, settings.Shortcuts.ListCommand},
		{keyShortcutRun, settings.Shortcuts.RunCommand},
		{keyShortcutHost, settings.Shortcuts.HostApp},
	}
	for kind, src := range settings.Sources {
		values = append(values,
			configValue{keySourceEnabled(kind), src.Enabled},
			configValue{keySourceMode(kind), src.Mode.String()},
		)
	}

	for _, v := range values {
		if err := s.configStore.Set(v.key, v.value); err != nil {
			return fmt.Errorf("save %s: %w", v.key, err)
		}
	}
	return nil
}

// SetSourceEnabled switches a source on or off.
func (s *SettingsService) SetSourceEnabled(kind domain.SourceKind, enabled bool) error {
	if !kind.IsValid() {
		return fmt.Errorf("%w: unknown source %q", domain.ErrInvalidInput, kind)
	}
	return s.configStore.Set(keySourceEnabled(kind), enabled)
}

// SetSourceMode changes when a source is consulted.
func (s *SettingsService) SetSourceMode(kind domain.SourceKind, mode domain.SourceMode) error {
	if !kind.IsValid() {
		return fmt.Errorf("%w: unknown source %q", domain.ErrInvalidInput, kind)
	}
	if !mode.IsValid() {
		return fmt.Errorf("%w: unknown mode %q", domain.ErrInvalidInput, mode)
	}
	return s.configStore.Set(keySourceMode(kind), mode.String())
}

// Validate checks the current settings.
func (s *SettingsService) Validate() error {
	settings, err := s.Get()
	if err != nil {
		return err
	}
	return settings.Validate()
}

// GetDefaults returns default settings.
func (s *SettingsService) GetDefaults() domain.LauncherSettings {
	return domain.DefaultLauncherSettings()
}

// Helper methods for reading config with defaults.

func (s *SettingsService) getString(key, defaultVal string) string {
	val := s.configStore.GetString(key)
	if val == "" {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getInt(key string, defaultVal int) int {
	if _, exists := s.configStore.Get(key); !exists {
		return defaultVal
	}
	return s.configStore.GetInt(key)
}

func (s *SettingsService) getBool(key string, defaultVal bool) bool {
	if _, exists := s.configStore.Get(key); !exists {
		return defaultVal
	}
	return s.configStore.GetBool(key)
}

func (s *SettingsService) getStrings(key string, defaultVal []string) []string {
	if val := s.configStore.GetStringSlice(key); len(val) > 0 {
		return val
	}
	return defaultVal
}

func (s *SettingsService) getDuration(key string, unit, defaultVal time.Duration) time.Duration {
	if _, exists := s.configStore.Get(key); !exists {
		return defaultVal
	}
	return time.Duration(s.configStore.GetInt(key)) * unit
}

func (s *SettingsService) getMode(kind domain.SourceKind, defaultVal domain.SourceMode) domain.SourceMode {
	mode := domain.SourceMode(s.configStore.GetString(keySourceMode(kind)))
	if !mode.IsValid() {
		return defaultVal
	}
	return mode
}
