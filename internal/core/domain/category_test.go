package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCategoryPriority(t *testing.T) {
	ordered := []string{
		CategoryCalculator,
		CategoryApplication,
		CategorySystem,
		CategoryShortcut,
		CategoryDocument,
		CategoryFile,
		CategoryFolder,
		CategorySuggestion,
	}
	for i := 1; i < len(ordered); i++ {
		assert.Less(t, CategoryPriority(ordered[i-1]), CategoryPriority(ordered[i]),
			"%s should rank before %s", ordered[i-1], ordered[i])
	}

	assert.Greater(t, CategoryPriority(CategoryAI), CategoryPriority(CategorySuggestion))
	assert.Equal(t, CategoryPriority(CategoryAI), CategoryPriority("something-else"))
}

func TestGroupByCategory(t *testing.T) {
	results := []SearchResult{
		{ID: "1", Name: "notes.txt", Type: ResultFile, Category: CategoryFile},
		{ID: "2", Name: "Ask AI", Type: ResultAI, Category: CategoryAI},
		{ID: "3", Name: "Notes", Type: ResultApplication, Category: CategoryApplication},
		{ID: "4", Name: "4", Type: ResultCalculator, Category: CategoryCalculator},
		{ID: "5", Name: "Notepad", Type: ResultApplication, Category: CategoryApplication},
		{ID: "6", Name: "Docs", Type: ResultFolder},
	}

	groups := GroupByCategory(results)

	names := make([]string, 0, len(groups))
	for _, g := range groups {
		names = append(names, g.Name)
	}
	assert.Equal(t, []string{
		CategoryCalculator,
		CategoryApplication,
		CategoryFile,
		CategoryFolder,
		CategoryAI,
	}, names)

	// Results keep merge order inside a group
	assert.Equal(t, "3", groups[1].Results[0].ID)
	assert.Equal(t, "5", groups[1].Results[1].ID)

	flat := Flatten(groups)
	assert.Len(t, flat, len(results))
	assert.Equal(t, "4", flat[0].ID)
}

func TestGroupByCategory_Empty(t *testing.T) {
	assert.Nil(t, GroupByCategory(nil))
	assert.Empty(t, Flatten(nil))
}

func TestSnapshot_HasCategory(t *testing.T) {
	s := Snapshot{Categories: []CategoryGroup{{Name: CategoryApplication}}}
	assert.True(t, s.HasCategory(CategoryApplication))
	assert.False(t, s.HasCategory(CategoryCalculator))
	assert.True(t, s.IsEmpty())
}

func TestCategoryTitle(t *testing.T) {
	assert.Equal(t, "Applications", CategoryTitle(CategoryApplication))
	assert.Equal(t, "Calculator", CategoryTitle(CategoryCalculator))
	assert.Equal(t, "Bookmarks", CategoryTitle("bookmarks"))
	assert.Equal(t, "Other", CategoryTitle(""))
}
