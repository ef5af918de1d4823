package domain

// SourceKind identifies one of the federated sources.
type SourceKind string

// Built-in source kinds.
const (
	SourceApplication SourceKind = "application"
	SourceFile        SourceKind = "file"
	SourceShortcut    SourceKind = "shortcut"
	SourceCalculator  SourceKind = "calculator"
)

// IsValid returns true if the source kind is recognised.
func (k SourceKind) IsValid() bool {
	switch k {
	case SourceApplication, SourceFile, SourceShortcut, SourceCalculator:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (k SourceKind) String() string {
	return string(k)
}

// AllSourceKinds returns every source kind in dispatch order.
func AllSourceKinds() []SourceKind {
	return []SourceKind{
		SourceCalculator,
		SourceApplication,
		SourceShortcut,
		SourceFile,
	}
}

// SourceMode decides when the orchestrator consults a source.
type SourceMode string

// Available source modes.
const (
	// SourceModeAutomatic sources are searched on every debounced query.
	SourceModeAutomatic SourceMode = "automatic"

	// SourceModeTriggered sources are searched only on explicit request.
	SourceModeTriggered SourceMode = "triggered"
)

// IsValid returns true if the mode is recognised.
func (m SourceMode) IsValid() bool {
	return m == SourceModeAutomatic || m == SourceModeTriggered
}

// String returns the string representation.
func (m SourceMode) String() string {
	return string(m)
}
