package cli

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/launchpad/internal/core/domain"
)

func TestSearchCmd_Use(t *testing.T) {
	assert.Equal(t, "search [query]", searchCmd.Use)
}

func TestSearchCmd_RequiresQuery(t *testing.T) {
	_, cleanup := setupTestServices()
	defer cleanup()

	_, err := executeCommand("search")
	assert.Error(t, err)
}

func TestSearchCmd_HasFlags(t *testing.T) {
	flag := searchCmd.Flags().Lookup("limit")
	require.NotNil(t, flag)
	assert.Equal(t, "n", flag.Shorthand)
	assert.Equal(t, "20", flag.DefValue)

	flag = searchCmd.Flags().Lookup("files")
	require.NotNil(t, flag)
	assert.Equal(t, "f", flag.Shorthand)
}

func TestSearchCmd_GroupsByCategory(t *testing.T) {
	ts, cleanup := setupTestServices()
	defer cleanup()

	out, err := executeCommand("search", "t")

	require.NoError(t, err)
	assert.Contains(t, out, "Calculator")
	assert.Contains(t, out, "Applications")
	assert.Contains(t, out, "Terminal")
	assert.Less(t, strings.Index(out, "Calculator"), strings.Index(out, "Applications"))
	assert.Empty(t, ts.launcher.lastKinds)
}

func TestSearchCmd_Files(t *testing.T) {
	ts, cleanup := setupTestServices()
	defer cleanup()

	_, err := executeCommand("search", "--files", "t")

	require.NoError(t, err)
	assert.Equal(t, []domain.SourceKind{domain.SourceFile}, ts.launcher.lastKinds)
}

func TestSearchCmd_JSONOutput(t *testing.T) {
	_, cleanup := setupTestServices()
	defer cleanup()

	out, err := executeCommand("search", "--json", "-n", "1", "t")
	require.NoError(t, err)

	var views []resultView
	require.NoError(t, json.Unmarshal([]byte(out), &views))
	require.Len(t, views, 1)
	assert.Equal(t, "calculator", views[0].Type)
}

func TestSearchCmd_NoResults(t *testing.T) {
	ts, cleanup := setupTestServices()
	defer cleanup()
	ts.launcher.snapshot = domain.Snapshot{}

	out, err := executeCommand("search", "zzz")

	require.NoError(t, err)
	assert.Contains(t, out, "No results found.")
}

func TestSearchCmd_QueryError(t *testing.T) {
	ts, cleanup := setupTestServices()
	defer cleanup()
	ts.launcher.queryErr = errors.New("closed")

	_, err := executeCommand("search", "t")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "search failed")
}

func TestLimitGroups(t *testing.T) {
	groups := []domain.CategoryGroup{
		{Name: "a", Results: make([]domain.SearchResult, 3)},
		{Name: "b", Results: make([]domain.SearchResult, 3)},
	}

	tests := []struct {
		name   string
		limit  int
		groups int
		total  int
	}{
		{"no limit", 0, 2, 6},
		{"within first group", 2, 1, 2},
		{"spans groups", 4, 2, 4},
		{"beyond total", 10, 2, 6},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := limitGroups(groups, tt.limit)
			assert.Len(t, got, tt.groups)
			assert.Len(t, domain.Flatten(got), tt.total)
		})
	}
}
