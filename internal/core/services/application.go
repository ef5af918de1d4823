package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/custodia-labs/launchpad/internal/core/domain"
	"github.com/custodia-labs/launchpad/internal/core/matcher"
	"github.com/custodia-labs/launchpad/internal/core/ports/driven"
	"github.com/custodia-labs/launchpad/internal/logger"
)

// Ensure ApplicationSource satisfies the source contracts.
var (
	_ Source   = (*ApplicationSource)(nil)
	_ Preparer = (*ApplicationSource)(nil)
)

// ReplayFunc receives results for a query that arrived while a catalog was loading.
type ReplayFunc func(query string, results []domain.SearchResult)

// ApplicationSource searches the installed application catalog.
// The catalog is rebuilt wholesale on Refresh and swapped in atomically.
type ApplicationSource struct {
	query   driven.AppCatalogQuery
	dirs    []string
	timeout time.Duration

	catalog atomic.Pointer[[]domain.AppInfo]
	loadMu  sync.Mutex
	cache   *queryCache

	pendingMu sync.Mutex
	pending   []string
	replay    ReplayFunc
}

// NewApplicationSource creates an application source. The catalog is empty
// until the first Refresh completes.
func NewApplicationSource(query driven.AppCatalogQuery, settings domain.ApplicationSettings) *ApplicationSource {
	timeout := settings.LoadTimeout
	if timeout <= 0 {
		timeout = domain.DefaultLoadTimeout
	}
	return &ApplicationSource{
		query:   query,
		dirs:    settings.Dirs,
		timeout: timeout,
		cache:   newQueryCache(domain.DefaultQueryCacheSize),
	}
}

// Kind identifies the source.
func (s *ApplicationSource) Kind() domain.SourceKind {
	return domain.SourceApplication
}

// SetReplayHandler registers the receiver of replayed queries.
func (s *ApplicationSource) SetReplayHandler(fn ReplayFunc) {
	s.pendingMu.Lock()
	defer s.pendingMu.Unlock()
	s.replay = fn
}

// IsLoading reports whether no catalog has been published yet.
func (s *ApplicationSource) IsLoading() bool {
	return s.catalog.Load() == nil
}

// Catalog returns the current catalog. The slice must not be modified.
func (s *ApplicationSource) Catalog() []domain.AppInfo {
	if p := s.catalog.Load(); p != nil {
		return *p
	}
	return nil
}

// Prepare loads the catalog unless one is already published.
func (s *ApplicationSource) Prepare(ctx context.Context) error {
	if !s.IsLoading() {
		return nil
	}
	_, err := s.Refresh(ctx)
	return err
}

// Refresh rebuilds the catalog with one live query. A query that outlives the
// load timeout is abandoned and whatever it gathered becomes the catalog.
// It returns the number of applications published.
func (s *ApplicationSource) Refresh(ctx context.Context) (int, error) {
	s.loadMu.Lock()
	defer s.loadMu.Unlock()

	logger.Section("Application Catalog")
	start := time.Now()

	qctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	items, errs := s.query.StartAppQuery(qctx, s.dirs)

	apps := make([]domain.AppInfo, 0, 256)
	timedOut := false
collect:
	for {
		select {
		case app, ok := <-items:
			if !ok {
				break collect
			}
			app.LocalizedNames = domain.DedupeNames(app.Name, app.LocalizedNames)
			apps = append(apps, app)
		case <-qctx.Done():
			timedOut = errors.Is(qctx.Err(), context.DeadlineExceeded)
			break collect
		}
	}

	var queryErr error
	select {
	case err := <-errs:
		queryErr = err
	default:
	}

	if ctx.Err() != nil && !timedOut {
		return 0, fmt.Errorf("application query: %w", ctx.Err())
	}
	if timedOut {
		logger.Warn("%v after %s, keeping %d applications", domain.ErrLoadTimeout, s.timeout, len(apps))
	}
	if queryErr != nil && !errors.Is(queryErr, context.DeadlineExceeded) {
		logger.Warn("Application query failed: %v", queryErr)
		if len(apps) == 0 && !s.IsLoading() {
			return 0, fmt.Errorf("%w: %v", domain.ErrQueryFailed, queryErr)
		}
	}

	s.catalog.Store(&apps)
	s.cache.purge()
	logger.Info("Application catalog: %d entries in %s", len(apps), logger.Elapsed(start))

	s.replayPending(ctx)
	return len(apps), nil
}

// Search matches query against every application name and localized name.
func (s *ApplicationSource) Search(_ context.Context, query string) []domain.SearchResult {
	if cacheKey(query) == "" {
		s.cache.purge()
		return nil
	}
	if cached, ok := s.cache.get(query); ok {
		return cached
	}

	p := s.catalog.Load()
	if p == nil {
		s.registerPending(query)
		return nil
	}

	results := matchApplications(*p, query)
	s.cache.put(query, results)
	return results
}

func matchApplications(apps []domain.AppInfo, query string) []domain.SearchResult {
	var results []domain.SearchResult
	for i := range apps {
		app := &apps[i]
		names := app.Names()
		if !matcher.MatchesAny(query, names...) {
			continue
		}
		results = append(results, domain.SearchResult{
			ID:             uuid.NewString(),
			Name:           app.Name,
			Path:           app.Path,
			Type:           domain.ResultApplication,
			Category:       domain.CategoryApplication,
			Icon:           app.Icon,
			Subtitle:       app.Path,
			LastUsedDate:   app.LastUsedDate,
			RelevanceScore: matcher.BestScore(query, names...),
		})
	}
	sortByRecency(results)
	return results
}

func (s *ApplicationSource) registerPending(query string) {
	s.pendingMu.Lock()
	defer s.pendingMu.Unlock()
	for _, q := range s.pending {
		if q == query {
			return
		}
	}
	s.pending = append(s.pending, query)
}

func (s *ApplicationSource) replayPending(ctx context.Context) {
	s.pendingMu.Lock()
	queries := s.pending
	s.pending = nil
	replay := s.replay
	s.pendingMu.Unlock()

	for _, q := range queries {
		results := s.Search(ctx, q)
		logger.Debug("Replaying %q after catalog load: %d results", q, len(results))
		if replay != nil {
			replay(q, results)
		}
	}
}
