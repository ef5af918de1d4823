package domain

import "time"

// ResultType is the closed set of result kinds the launcher knows how to show and execute.
type ResultType string

// Result kinds.
const (
	ResultApplication ResultType = "application"
	ResultFile        ResultType = "file"
	ResultFolder      ResultType = "folder"
	ResultDocument    ResultType = "document"
	ResultShortcut    ResultType = "shortcut"
	ResultCalculator  ResultType = "calculator"
	ResultSystem      ResultType = "system"
	ResultSuggestion  ResultType = "suggestion"
	ResultAI          ResultType = "ai"
)

// IsValid returns true if the result type is recognised.
func (t ResultType) IsValid() bool {
	switch t {
	case ResultApplication, ResultFile, ResultFolder, ResultDocument, ResultShortcut,
		ResultCalculator, ResultSystem, ResultSuggestion, ResultAI:
		return true
	default:
		return false
	}
}

// IsOpenable returns true if executing the result opens its path.
func (t ResultType) IsOpenable() bool {
	return t == ResultApplication || t == ResultFile || t == ResultDocument || t == ResultFolder
}

// String returns the string representation.
func (t ResultType) String() string {
	return string(t)
}

// SearchResult represents a single launcher hit.
// It is a value type and must not be modified once handed to the orchestrator.
type SearchResult struct {
	// ID is an opaque token, unique per result instance.
	ID string

	// Name is the primary display text.
	Name string

	// Path is a filesystem path, an execution token (e.g. "run <name>"),
	// or empty for results that have neither.
	Path string

	// Type selects the execution path.
	Type ResultType

	// Category is the display grouping key.
	Category string

	// Icon is an opaque icon handle resolved by the platform.
	Icon string

	// Subtitle is secondary display text.
	Subtitle string

	// LastUsedDate is when the item was last used, if known.
	LastUsedDate *time.Time

	// RelevanceScore is the source's own score for the current query, 0-100.
	RelevanceScore int
}

// Equal reports whether two results are the same result instance.
func (r SearchResult) Equal(other SearchResult) bool {
	return r.ID == other.ID
}
