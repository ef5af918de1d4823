package domain

// Snapshot is one delivered query generation.
type Snapshot struct {
	// Generation identifies the query generation that produced the snapshot.
	Generation uint64

	// Query is the text that was searched.
	Query string

	// Results is the concatenation of every source's results, in source order.
	Results []SearchResult

	// Categories groups Results by category in display order.
	Categories []CategoryGroup
}

// IsEmpty returns true if the snapshot carries no results.
func (s Snapshot) IsEmpty() bool {
	return len(s.Results) == 0
}

// HasCategory returns true if a group with the given name is present.
func (s Snapshot) HasCategory(name string) bool {
	for i := range s.Categories {
		if s.Categories[i].Name == name {
			return true
		}
	}
	return false
}
