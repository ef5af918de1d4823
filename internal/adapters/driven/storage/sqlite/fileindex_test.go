package sqlite

import (
	"context"
	"fmt"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/launchpad/internal/core/domain"
	"github.com/custodia-labs/launchpad/internal/core/services"
)

// collect drains a live query.
func collect(t *testing.T) func(<-chan domain.FileEntry, <-chan error) []domain.FileEntry {
	return func(entries <-chan domain.FileEntry, errs <-chan error) []domain.FileEntry {
		t.Helper()
		var out []domain.FileEntry
		for e := range entries {
			out = append(out, e)
		}
		select {
		case err := <-errs:
			require.NoError(t, err)
		default:
		}
		return out
	}
}

func paths(entries []domain.FileEntry) []string {
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.Path)
	}
	sort.Strings(out)
	return out
}

func seedIndex(t *testing.T, index interface {
	Upsert(context.Context, ...domain.FileEntry) error
}) {
	t.Helper()
	used := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	require.NoError(t, index.Upsert(context.Background(),
		domain.FileEntry{Path: "/home/me/Reports/Annual Report.pdf", Name: "Annual Report", FileName: "Annual Report.pdf", LastUsed: &used},
		domain.FileEntry{Path: "/home/me/Reports", Name: "Reports", FileName: "Reports", ContentType: "folder"},
		domain.FileEntry{Path: "/home/me/report_2025.txt"},
		domain.FileEntry{Path: "/home/me/notes/100%.md"},
		domain.FileEntry{Path: "/opt/Reporter.app", Name: "Reporter", FileName: "Reporter.app", ContentType: domain.ContentTypeApplication},
		domain.FileEntry{Path: "/home/me/年度报告.docx"},
	))
}

func TestFileIndex_QueryWithFileSourcePredicate(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()
	index := store.FileIndex()
	ctx := context.Background()
	seedIndex(t, index)

	got := collect(t)(index.StartFileQuery(ctx, services.BuildFileQuery("rep")))
	assert.Equal(t, []string{
		"/home/me/Reports",
		"/home/me/Reports/Annual Report.pdf",
		"/home/me/report_2025.txt",
	}, paths(got))

	got = collect(t)(index.StartFileQuery(ctx, services.BuildFileQuery("报告")))
	assert.Empty(t, got, "two-rune queries only match prefixes")

	got = collect(t)(index.StartFileQuery(ctx, services.BuildFileQuery("年度报告")))
	assert.Equal(t, []string{"/home/me/年度报告.docx"}, paths(got))
}

func TestFileIndex_DerivesNames(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()
	index := store.FileIndex()
	ctx := context.Background()
	seedIndex(t, index)

	got := collect(t)(index.StartFileQuery(ctx, domain.FileQuery{
		AnyOf: []domain.FileClause{{Field: domain.FieldName, Op: domain.OpEquals, Value: "REPORT_2025"}},
	}))
	require.Len(t, got, 1)
	assert.Equal(t, "report_2025", got[0].Name)
	assert.Equal(t, "report_2025.txt", got[0].FileName)
	assert.Nil(t, got[0].LastUsed)
}

func TestFileIndex_LikeWildcardsAreLiteral(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()
	index := store.FileIndex()
	ctx := context.Background()
	seedIndex(t, index)

	got := collect(t)(index.StartFileQuery(ctx, domain.FileQuery{
		AnyOf: []domain.FileClause{{Field: domain.FieldFileName, Op: domain.OpContains, Value: "0%"}},
	}))
	assert.Equal(t, []string{"/home/me/notes/100%.md"}, paths(got))

	got = collect(t)(index.StartFileQuery(ctx, domain.FileQuery{
		AnyOf: []domain.FileClause{{Field: domain.FieldFileName, Op: domain.OpPrefix, Value: "report_"}},
	}))
	assert.Equal(t, []string{"/home/me/report_2025.txt"}, paths(got))
}

func TestFileIndex_LastUsedRoundTrip(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()
	index := store.FileIndex()
	ctx := context.Background()
	seedIndex(t, index)

	got := collect(t)(index.StartFileQuery(ctx, domain.FileQuery{
		AnyOf: []domain.FileClause{{Field: domain.FieldName, Op: domain.OpPrefix, Value: "annual"}},
	}))
	require.Len(t, got, 1)
	require.NotNil(t, got[0].LastUsed)
	assert.True(t, got[0].LastUsed.Equal(time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)))
}

func TestFileIndex_UpsertReplaces(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()
	index := store.FileIndex()
	ctx := context.Background()

	require.NoError(t, index.Upsert(ctx, domain.FileEntry{Path: "/a/draft.txt"}))
	require.NoError(t, index.Upsert(ctx, domain.FileEntry{Path: "/a/draft.txt", Name: "Final"}))

	n, err := index.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	got := collect(t)(index.StartFileQuery(ctx, domain.FileQuery{
		AnyOf: []domain.FileClause{{Field: domain.FieldName, Op: domain.OpEquals, Value: "final"}},
	}))
	assert.Len(t, got, 1)

	assert.ErrorIs(t, index.Upsert(ctx, domain.FileEntry{Name: "no path"}), domain.ErrInvalidInput)
}

func TestFileIndex_RemoveSubtree(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()
	index := store.FileIndex()
	ctx := context.Background()
	seedIndex(t, index)
	require.NoError(t, index.Upsert(ctx, domain.FileEntry{Path: "/home/me/Reports-old/x.txt"}))

	require.NoError(t, index.Remove(ctx, "/home/me/Reports/"))

	n, err := index.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 5, n, "siblings sharing the prefix survive")

	got := collect(t)(index.StartFileQuery(ctx, domain.FileQuery{
		AnyOf: []domain.FileClause{{Field: domain.FieldFileName, Op: domain.OpPrefix, Value: "x"}},
	}))
	assert.Equal(t, []string{"/home/me/Reports-old/x.txt"}, paths(got))
}

func TestFileIndex_EmptyQuery(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()
	index := store.FileIndex()
	seedIndex(t, index)

	assert.Empty(t, collect(t)(index.StartFileQuery(context.Background(), domain.FileQuery{})))
}

func TestFileIndex_InvalidClause(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()
	index := store.FileIndex()

	entries, errs := index.StartFileQuery(context.Background(), domain.FileQuery{
		AnyOf: []domain.FileClause{{Field: "path", Op: domain.OpEquals, Value: "/"}},
	})
	for range entries {
		t.Fatal("no entries expected")
	}
	assert.ErrorIs(t, <-errs, domain.ErrInvalidInput)
}

func TestFileIndex_Cancellation(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()
	index := store.FileIndex()

	batch := make([]domain.FileEntry, 100)
	for i := range batch {
		batch[i] = domain.FileEntry{Path: fmt.Sprintf("/bulk/item-%03d.txt", i)}
	}
	require.NoError(t, index.Upsert(context.Background(), batch...))

	ctx, cancel := context.WithCancel(context.Background())
	entries, _ := index.StartFileQuery(ctx, domain.FileQuery{
		AnyOf: []domain.FileClause{{Field: domain.FieldName, Op: domain.OpPrefix, Value: "item"}},
	})
	<-entries
	cancel()

	n := 1
	for range entries {
		n++
	}
	assert.Less(t, n, 100)
}

func TestBuildFileQuery_SQL(t *testing.T) {
	query, args, err := buildFileQuery(domain.FileQuery{
		AnyOf: []domain.FileClause{
			{Field: domain.FieldName, Op: domain.OpEquals, Value: "Mail"},
			{Field: domain.FieldFileName, Op: domain.OpContains, Value: "a_b"},
		},
		ExcludeContentTypes: []string{"Application", "folder"},
	})
	require.NoError(t, err)
	assert.Contains(t, query, "name_lower = ?")
	assert.Contains(t, query, `filename_lower LIKE ? ESCAPE '\'`)
	assert.Contains(t, query, "NOT IN (?, ?)")
	assert.Equal(t, []any{"mail", `%a\_b%`, "application", "folder"}, args)
}
