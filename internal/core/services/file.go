package services

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/hashicorp/golang-lru/v2/expirable"
	"golang.org/x/sync/singleflight"

	"github.com/custodia-labs/launchpad/internal/core/domain"
	"github.com/custodia-labs/launchpad/internal/core/matcher"
	"github.com/custodia-labs/launchpad/internal/core/ports/driven"
	"github.com/custodia-labs/launchpad/internal/logger"
)

// Ensure FileSource satisfies the source contracts.
var _ PagedSource = (*FileSource)(nil)

// fileCacheSize bounds the number of distinct queries kept alive within the TTL.
const fileCacheSize = 64

// minContainsRunes is the shortest query that also matches mid-name.
const minContainsRunes = 3

var (
	applicationSuffixes = []string{".app", ".desktop"}
	documentSuffixes    = []string{
		".pdf", ".doc", ".docx", ".odt", ".rtf", ".txt", ".md",
		".xls", ".xlsx", ".ods", ".csv", ".ppt", ".pptx", ".odp",
		".pages", ".numbers", ".key", ".epub",
	}
)

// FileSource searches the filesystem index on demand. The complete result
// list of a query is cached for a fixed TTL and served in pages.
type FileSource struct {
	index    driven.FileIndex
	probe    driven.PathProbe
	pageSize int

	cache  *expirable.LRU[string, []domain.SearchResult]
	flight singleflight.Group
}

// NewFileSource creates a file source. probe may be nil.
func NewFileSource(index driven.FileIndex, probe driven.PathProbe, settings domain.FileSettings) *FileSource {
	pageSize := settings.PageSize
	if pageSize <= 0 {
		pageSize = domain.DefaultFilePageSize
	}
	ttl := settings.CacheTTL
	if ttl <= 0 {
		ttl = domain.DefaultFileCacheTTL
	}
	return &FileSource{
		index:    index,
		probe:    probe,
		pageSize: pageSize,
		cache:    expirable.NewLRU[string, []domain.SearchResult](fileCacheSize, nil, ttl),
	}
}

// Kind identifies the source.
func (s *FileSource) Kind() domain.SourceKind {
	return domain.SourceFile
}

// PageSize returns the number of results per page.
func (s *FileSource) PageSize() int {
	return s.pageSize
}

// Search returns the first page of results.
func (s *FileSource) Search(ctx context.Context, query string) []domain.SearchResult {
	page, _ := s.SearchPage(ctx, query, 0)
	return page
}

// SearchPage returns page of the complete result list for query and whether
// more pages follow. A failed index query yields no results and is not cached.
func (s *FileSource) SearchPage(ctx context.Context, query string, page int) ([]domain.SearchResult, bool) {
	key := cacheKey(query)
	if key == "" || page < 0 {
		return nil, false
	}

	all, ok := s.cache.Get(key)
	if !ok {
		v, err, _ := s.flight.Do(key, func() (any, error) {
			results, err := s.run(ctx, strings.TrimSpace(query))
			if err != nil {
				return nil, err
			}
			s.cache.Add(key, results)
			return results, nil
		})
		if err != nil {
			logger.Warn("File search for %q failed: %v", query, err)
			return nil, false
		}
		all = v.([]domain.SearchResult)
	}

	start := page * s.pageSize
	if start >= len(all) {
		return nil, false
	}
	end := min(start+s.pageSize, len(all))
	return all[start:end], end < len(all)
}

// run issues one live query and builds the complete, sorted result list.
func (s *FileSource) run(ctx context.Context, query string) ([]domain.SearchResult, error) {
	start := time.Now()
	entries, errs := s.index.StartFileQuery(ctx, BuildFileQuery(query))

	seen := make(map[string]struct{})
	var results []domain.SearchResult
	for entries != nil {
		select {
		case e, ok := <-entries:
			if !ok {
				entries = nil
				continue
			}
			if _, dup := seen[e.Path]; dup {
				continue
			}
			seen[e.Path] = struct{}{}
			results = append(results, s.toResult(e, query))
		case <-ctx.Done():
			return nil, fmt.Errorf("%w: %v", domain.ErrQueryFailed, ctx.Err())
		}
	}

	select {
	case err := <-errs:
		if err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrQueryFailed, err)
		}
	default:
	}

	sortByRecency(results)
	logger.Debug("File query %q: %d hits in %s", query, len(results), logger.Elapsed(start))
	return results, nil
}

func (s *FileSource) toResult(e domain.FileEntry, query string) domain.SearchResult {
	name := e.Name
	if name == "" {
		name = e.FileName
	}
	if name == "" {
		name = filepath.Base(e.Path)
	}
	rt := s.classify(e)
	return domain.SearchResult{
		ID:             uuid.NewString(),
		Name:           name,
		Path:           e.Path,
		Type:           rt,
		Category:       domain.CategoryForType(rt),
		Icon:           iconForType(rt),
		Subtitle:       filepath.Dir(e.Path),
		LastUsedDate:   e.LastUsed,
		RelevanceScore: matcher.BestScore(query, name, e.FileName),
	}
}

// classify decides the result type of an index entry by suffix, then by probing the path.
func (s *FileSource) classify(e domain.FileEntry) domain.ResultType {
	lower := strings.ToLower(e.Path)
	for _, suf := range applicationSuffixes {
		if strings.HasSuffix(lower, suf) {
			return domain.ResultApplication
		}
	}
	if e.ContentType == string(domain.ResultFolder) || (s.probe != nil && s.probe.IsDir(e.Path)) {
		return domain.ResultFolder
	}
	for _, suf := range documentSuffixes {
		if strings.HasSuffix(lower, suf) {
			return domain.ResultDocument
		}
	}
	return domain.ResultFile
}

// BuildFileQuery returns the index predicate for query: name equality, name
// and file name prefixes and, for queries of three or more runes, name and
// file name containment. Applications are excluded.
func BuildFileQuery(query string) domain.FileQuery {
	q := domain.FileQuery{
		AnyOf: []domain.FileClause{
			{Field: domain.FieldName, Op: domain.OpEquals, Value: query},
			{Field: domain.FieldName, Op: domain.OpPrefix, Value: query},
			{Field: domain.FieldFileName, Op: domain.OpPrefix, Value: query},
		},
		ExcludeContentTypes: []string{domain.ContentTypeApplication},
	}
	if utf8.RuneCountInString(query) >= minContainsRunes {
		q.AnyOf = append(q.AnyOf,
			domain.FileClause{Field: domain.FieldName, Op: domain.OpContains, Value: query},
			domain.FileClause{Field: domain.FieldFileName, Op: domain.OpContains, Value: query},
		)
	}
	return q
}

func iconForType(t domain.ResultType) string {
	switch t {
	case domain.ResultApplication:
		return "application-x-executable"
	case domain.ResultFolder:
		return "folder"
	case domain.ResultDocument:
		return "x-office-document"
	default:
		return "text-x-generic"
	}
}
