package domain

import (
	"sort"
	"strings"
)

// Category keys used by the built-in sources.
const (
	CategoryCalculator  = "calculator"
	CategoryApplication = "application"
	CategorySystem      = "system"
	CategoryShortcut    = "shortcut"
	CategoryDocument    = "document"
	CategoryFile        = "file"
	CategoryFolder      = "folder"
	CategorySuggestion  = "suggestion"
	CategoryAI          = "ai"
)

// categoryPriority is the fixed display order. Lower sorts first; the calculator
// is placed ahead of everything when present.
var categoryPriority = map[string]int{
	CategoryCalculator:  0,
	CategoryApplication: 1,
	CategorySystem:      2,
	CategoryShortcut:    3,
	CategoryDocument:    4,
	CategoryFile:        5,
	CategoryFolder:      6,
	CategorySuggestion:  7,
}

// CategoryPriority returns the display rank of a category.
// Unknown categories rank after all known ones.
func CategoryPriority(category string) int {
	if p, ok := categoryPriority[category]; ok {
		return p
	}
	return len(categoryPriority)
}

// categoryTitles are the display headings of the built-in categories.
var categoryTitles = map[string]string{
	CategoryCalculator:  "Calculator",
	CategoryApplication: "Applications",
	CategorySystem:      "System",
	CategoryShortcut:    "Shortcuts",
	CategoryDocument:    "Documents",
	CategoryFile:        "Files",
	CategoryFolder:      "Folders",
	CategorySuggestion:  "Suggestions",
	CategoryAI:          "AI",
}

// CategoryTitle returns the display heading of a category key.
func CategoryTitle(category string) string {
	if title, ok := categoryTitles[category]; ok {
		return title
	}
	if category == "" {
		return "Other"
	}
	return strings.ToUpper(category[:1]) + category[1:]
}

// CategoryForType returns the default category key for a result type.
func CategoryForType(t ResultType) string {
	return string(t)
}

// CategoryGroup is a named group of results sharing one category.
type CategoryGroup struct {
	// Name is the category key.
	Name string

	// Results keeps the order in which the results were merged.
	Results []SearchResult
}

// GroupByCategory groups results by Category and orders the groups by priority.
// Groups of equal priority keep their first-seen order.
func GroupByCategory(results []SearchResult) []CategoryGroup {
	if len(results) == 0 {
		return nil
	}

	index := make(map[string]int)
	groups := make([]CategoryGroup, 0, 4)
	for i := range results {
		name := results[i].Category
		if name == "" {
			name = CategoryForType(results[i].Type)
		}
		pos, ok := index[name]
		if !ok {
			pos = len(groups)
			index[name] = pos
			groups = append(groups, CategoryGroup{Name: name})
		}
		groups[pos].Results = append(groups[pos].Results, results[i])
	}

	sort.SliceStable(groups, func(i, j int) bool {
		return CategoryPriority(groups[i].Name) < CategoryPriority(groups[j].Name)
	})

	return groups
}

// Flatten returns the grouped results in display order.
func Flatten(groups []CategoryGroup) []SearchResult {
	n := 0
	for i := range groups {
		n += len(groups[i].Results)
	}
	out := make([]SearchResult, 0, n)
	for i := range groups {
		out = append(out, groups[i].Results...)
	}
	return out
}
