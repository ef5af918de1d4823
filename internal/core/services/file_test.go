package services

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/launchpad/internal/core/domain"
)

func reportEntries(n int) []domain.FileEntry {
	entries := make([]domain.FileEntry, 0, n)
	base := time.Now()
	for i := 0; i < n; i++ {
		name := fmt.Sprintf("report-%02d.pdf", i)
		used := base.Add(-time.Duration(i) * time.Minute)
		entries = append(entries, domain.FileEntry{
			Path:     "/home/me/docs/" + name,
			Name:     name,
			FileName: name,
			LastUsed: &used,
		})
	}
	return entries
}

func TestFileSource_Paging(t *testing.T) {
	index := &mockFileIndex{entries: reportEntries(45)}
	src := NewFileSource(index, nil, domain.FileSettings{})
	ctx := context.Background()

	seen := map[string]bool{}
	var sizes []int
	for page := 0; ; page++ {
		results, more := src.SearchPage(ctx, "report", page)
		sizes = append(sizes, len(results))
		for _, r := range results {
			assert.False(t, seen[r.Path], "duplicate %s", r.Path)
			seen[r.Path] = true
		}
		if !more {
			break
		}
	}

	assert.Equal(t, []int{20, 20, 5}, sizes)
	assert.Len(t, seen, 45)
	assert.Equal(t, int32(1), index.calls.Load(), "pages are served from one cached query")

	results, more := src.SearchPage(ctx, "report", 3)
	assert.Empty(t, results)
	assert.False(t, more)
}

func TestFileSource_SortedByRecency(t *testing.T) {
	src := NewFileSource(&mockFileIndex{entries: reportEntries(5)}, nil, domain.FileSettings{})

	results := src.Search(context.Background(), "report")
	require.Len(t, results, 5)
	for i := 1; i < len(results); i++ {
		assert.True(t, results[i-1].LastUsedDate.After(*results[i].LastUsedDate))
	}
	assert.Equal(t, domain.ResultDocument, results[0].Type)
	assert.Equal(t, domain.CategoryDocument, results[0].Category)
	assert.Equal(t, "/home/me/docs", results[0].Subtitle)
}

func TestFileSource_DeduplicatesPaths(t *testing.T) {
	entries := reportEntries(3)
	entries = append(entries, entries[0], entries[1])
	src := NewFileSource(&mockFileIndex{entries: entries}, nil, domain.FileSettings{})

	results := src.Search(context.Background(), "report")
	assert.Len(t, results, 3)
}

func TestFileSource_CacheIsIdempotent(t *testing.T) {
	index := &mockFileIndex{entries: reportEntries(3)}
	src := NewFileSource(index, nil, domain.FileSettings{})
	ctx := context.Background()

	first := src.Search(ctx, "Report")
	second := src.Search(ctx, "report ")
	assert.Equal(t, first, second)
	assert.Equal(t, int32(1), index.calls.Load())
}

func TestFileSource_CacheExpires(t *testing.T) {
	index := &mockFileIndex{entries: reportEntries(3)}
	src := NewFileSource(index, nil, domain.FileSettings{CacheTTL: 30 * time.Millisecond})
	ctx := context.Background()

	src.Search(ctx, "report")
	time.Sleep(80 * time.Millisecond)
	src.Search(ctx, "report")
	assert.Equal(t, int32(2), index.calls.Load())
}

func TestFileSource_FailureIsNotCached(t *testing.T) {
	index := &mockFileIndex{err: errors.New("index locked")}
	src := NewFileSource(index, nil, domain.FileSettings{})
	ctx := context.Background()

	results, more := src.SearchPage(ctx, "report", 0)
	assert.Empty(t, results)
	assert.False(t, more)

	index.mu.Lock()
	index.err = nil
	index.entries = reportEntries(2)
	index.mu.Unlock()

	assert.Len(t, src.Search(ctx, "report"), 2)
	assert.Equal(t, int32(2), index.calls.Load())
}

func TestFileSource_EmptyQuery(t *testing.T) {
	index := &mockFileIndex{entries: reportEntries(3)}
	src := NewFileSource(index, nil, domain.FileSettings{})

	assert.Empty(t, src.Search(context.Background(), "   "))
	assert.Equal(t, int32(0), index.calls.Load())
}

func TestFileSource_Classification(t *testing.T) {
	entries := []domain.FileEntry{
		{Path: "/opt/Tool.app", Name: "Tool.app"},
		{Path: "/home/me/projects", Name: "projects"},
		{Path: "/home/me/music", Name: "music", ContentType: "folder"},
		{Path: "/home/me/notes.md", Name: "notes.md"},
		{Path: "/home/me/archive.tar", Name: "archive.tar"},
	}
	src := NewFileSource(&mockFileIndex{entries: entries}, mockProbe{"/home/me/projects": true}, domain.FileSettings{})

	types := map[string]domain.ResultType{}
	for _, r := range src.Search(context.Background(), "x") {
		types[r.Path] = r.Type
	}
	assert.Equal(t, map[string]domain.ResultType{
		"/opt/Tool.app":        domain.ResultApplication,
		"/home/me/projects":    domain.ResultFolder,
		"/home/me/music":       domain.ResultFolder,
		"/home/me/notes.md":    domain.ResultDocument,
		"/home/me/archive.tar": domain.ResultFile,
	}, types)
}

func TestBuildFileQuery(t *testing.T) {
	short := BuildFileQuery("re")
	assert.Len(t, short.AnyOf, 3)
	assert.Equal(t, []string{domain.ContentTypeApplication}, short.ExcludeContentTypes)
	for _, c := range short.AnyOf {
		assert.NotEqual(t, domain.OpContains, c.Op)
	}

	long := BuildFileQuery("rep")
	require.Len(t, long.AnyOf, 5)
	assert.Equal(t, domain.FileClause{Field: domain.FieldName, Op: domain.OpEquals, Value: "rep"}, long.AnyOf[0])
	assert.Equal(t, domain.FileClause{Field: domain.FieldFileName, Op: domain.OpContains, Value: "rep"}, long.AnyOf[4])

	// Rune count, not byte count
	assert.Len(t, BuildFileQuery("报告").AnyOf, 3)
	assert.Len(t, BuildFileQuery("年度报").AnyOf, 5)
}
