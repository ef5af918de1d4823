package services

import (
	"context"
	"sort"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/custodia-labs/launchpad/internal/core/domain"
)

// Source is one federated backend of the orchestrator.
// Search never fails: a source that cannot answer returns no results.
type Source interface {
	// Kind identifies the source.
	Kind() domain.SourceKind

	// Search returns the source's results for query, already scored and sorted.
	Search(ctx context.Context, query string) []domain.SearchResult
}

// PagedSource is a Source whose results are served in pages.
type PagedSource interface {
	Source

	// SearchPage returns one page of results and whether more pages follow.
	SearchPage(ctx context.Context, query string, page int) ([]domain.SearchResult, bool)
}

// Preparer is a Source that builds a catalog before it can answer.
type Preparer interface {
	// Prepare loads the catalog if it has not been loaded yet.
	Prepare(ctx context.Context) error
}

// queryCache maps lowercased queries to result lists. Entries are evicted
// oldest-inserted first: lookups use Peek so reads never refresh an entry.
type queryCache struct {
	entries *lru.Cache[string, []domain.SearchResult]
}

func newQueryCache(size int) *queryCache {
	if size <= 0 {
		size = domain.DefaultQueryCacheSize
	}
	entries, err := lru.New[string, []domain.SearchResult](size)
	if err != nil {
		// lru.New only fails for a non-positive size.
		panic(err)
	}
	return &queryCache{entries: entries}
}

func cacheKey(query string) string {
	return strings.ToLower(strings.TrimSpace(query))
}

func (c *queryCache) get(query string) ([]domain.SearchResult, bool) {
	return c.entries.Peek(cacheKey(query))
}

func (c *queryCache) put(query string, results []domain.SearchResult) {
	c.entries.Add(cacheKey(query), results)
}

func (c *queryCache) purge() {
	c.entries.Purge()
}

func (c *queryCache) len() int {
	return c.entries.Len()
}

// sortByRecency orders results by most recent use first, unknown last,
// then by relevance score descending.
func sortByRecency(results []domain.SearchResult) {
	sort.SliceStable(results, func(i, j int) bool {
		a, b := results[i].LastUsedDate, results[j].LastUsedDate
		switch {
		case a != nil && b != nil && !a.Equal(*b):
			return a.After(*b)
		case a != nil && b == nil:
			return true
		case a == nil && b != nil:
			return false
		}
		return results[i].RelevanceScore > results[j].RelevanceScore
	})
}
