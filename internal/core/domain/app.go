package domain

import "time"

// AppInfo is one installed application in the catalog.
// Entries are built in bulk and never modified once the catalog is published.
type AppInfo struct {
	// Name is the primary display name.
	Name string

	// LocalizedNames are alternate display names, deduplicated.
	LocalizedNames []string

	// Path is the application bundle or launcher entry path.
	Path string

	// BundleID is the platform identifier, if any.
	BundleID string

	// Icon is an opaque icon handle.
	Icon string

	// LastUsedDate is when the application was last used, if known.
	LastUsedDate *time.Time
}

// Names returns the primary name followed by every localized name.
func (a AppInfo) Names() []string {
	names := make([]string, 0, 1+len(a.LocalizedNames))
	names = append(names, a.Name)
	return append(names, a.LocalizedNames...)
}

// DedupeNames returns names with duplicates and the primary name removed,
// preserving first-seen order. Empty names are dropped.
func DedupeNames(primary string, names []string) []string {
	seen := map[string]struct{}{primary: {}}
	out := make([]string, 0, len(names))
	for _, n := range names {
		if n == "" {
			continue
		}
		if _, ok := seen[n]; ok {
			continue
		}
		seen[n] = struct{}{}
		out = append(out, n)
	}
	return out
}

// Shortcut is one externally registered automation script.
type Shortcut struct {
	// Name is the script name as reported by the list command.
	Name string
}

// ShortcutTokenPrefix prefixes the execution token stored in SearchResult.Path.
const ShortcutTokenPrefix = "run "

// Token returns the execution token for the shortcut.
func (s Shortcut) Token() string {
	return ShortcutTokenPrefix + s.Name
}
