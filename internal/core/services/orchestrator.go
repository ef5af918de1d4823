package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/panjf2000/ants/v2"
	"golang.org/x/sync/errgroup"

	"github.com/custodia-labs/launchpad/internal/core/domain"
	"github.com/custodia-labs/launchpad/internal/core/ports/driven"
	"github.com/custodia-labs/launchpad/internal/core/ports/driving"
	"github.com/custodia-labs/launchpad/internal/logger"
)

// Ensure Orchestrator implements the interface.
var _ driving.Launcher = (*Orchestrator)(nil)

// defaultPoolSize bounds the number of source calls in flight, late ones included.
const defaultPoolSize = 64

// maxCallsPerSource bounds the calls one source may have running: the
// current one plus one that missed the soft cap.
const maxCallsPerSource = 2

// errSourceBusy rejects a call to a source that already has maxCallsPerSource running.
var errSourceBusy = errors.New("source has too many calls running")

// Executor runs results a source produced.
type Executor interface {
	Execute(ctx context.Context, result domain.SearchResult) error
}

// replayer is a source that can answer a query again once its catalog is loaded.
type replayer interface {
	SetReplayHandler(fn ReplayFunc)
}

// triggered holds the results of a triggered or paginated source for one query.
type triggered struct {
	query   string
	results []domain.SearchResult
	page    int
	more    bool
}

// round is the merged state of the current generation.
type round struct {
	generation uint64
	query      string
	bySource   map[domain.SourceKind][]domain.SearchResult
}

// inFlight is a generation whose fan-out has not returned yet. Replays that
// arrive meanwhile are held here and merged when it completes.
type inFlight struct {
	generation uint64
	query      string
	replays    map[domain.SourceKind][]domain.SearchResult
}

// Orchestrator debounces input, fans each query out to the enabled sources,
// discards stale generations and publishes one merged snapshot per generation.
type Orchestrator struct {
	sources   map[domain.SourceKind]Source
	order     []domain.SourceKind
	settings  domain.LauncherSettings
	opener    driven.Opener
	clipboard driven.Clipboard
	pool      *ants.Pool
	// running counts the calls in flight per source.
	running map[domain.SourceKind]*atomic.Int32

	generation atomic.Uint64
	searching  atomic.Bool

	mu        sync.Mutex
	timer     *time.Timer
	state     round
	pending   *inFlight
	triggered map[domain.SourceKind]*triggered
	current   domain.Snapshot
	updates   chan domain.Snapshot
}

// NewOrchestrator creates an orchestrator over sources. Sources are merged
// in the order given. clipboard may be nil.
func NewOrchestrator(
	settings domain.LauncherSettings,
	opener driven.Opener,
	clipboard driven.Clipboard,
	sources ...Source,
) (*Orchestrator, error) {
	pool, err := ants.NewPool(defaultPoolSize, ants.WithNonblocking(true))
	if err != nil {
		return nil, fmt.Errorf("creating source pool: %w", err)
	}

	o := &Orchestrator{
		sources:   make(map[domain.SourceKind]Source, len(sources)),
		settings:  settings,
		opener:    opener,
		clipboard: clipboard,
		pool:      pool,
		running:   make(map[domain.SourceKind]*atomic.Int32, len(sources)),
		triggered: make(map[domain.SourceKind]*triggered),
		updates:   make(chan domain.Snapshot, 1),
	}
	for _, src := range sources {
		kind := src.Kind()
		if _, dup := o.sources[kind]; dup {
			pool.Release()
			return nil, fmt.Errorf("%w: duplicate source %s", domain.ErrInvalidInput, kind)
		}
		o.sources[kind] = src
		o.running[kind] = new(atomic.Int32)
		o.order = append(o.order, kind)
		if r, ok := src.(replayer); ok {
			r.SetReplayHandler(o.replayHandler(kind))
		}
	}
	return o, nil
}

// Source returns the registered source of kind.
func (o *Orchestrator) Source(kind domain.SourceKind) (Source, bool) {
	src, ok := o.sources[kind]
	return src, ok
}

// Start warms every catalog in the background.
func (o *Orchestrator) Start(ctx context.Context) {
	go func() {
		if err := o.Prepare(ctx); err != nil {
			logger.Warn("Warming catalogs: %v", err)
		}
	}()
}

// Prepare loads every catalog that is not loaded yet and waits for them.
func (o *Orchestrator) Prepare(ctx context.Context) error {
	g, gctx := errgroup.WithContext(ctx)
	var mu sync.Mutex
	var errs []error
	for _, kind := range o.order {
		p, ok := o.sources[kind].(Preparer)
		if !ok || !o.settings.Source(kind).Enabled {
			continue
		}
		g.Go(func() error {
			if err := p.Prepare(gctx); err != nil {
				mu.Lock()
				errs = append(errs, fmt.Errorf("%s: %w", kind, err))
				mu.Unlock()
			}
			return nil
		})
	}
	_ = g.Wait()
	return errors.Join(errs...)
}

// Close stops the debounce timer and releases the worker pool.
func (o *Orchestrator) Close() {
	o.mu.Lock()
	if o.timer != nil {
		o.timer.Stop()
	}
	o.mu.Unlock()
	o.pool.Release()
}

// Updates delivers one snapshot per completed generation, latest wins.
func (o *Orchestrator) Updates() <-chan domain.Snapshot {
	return o.updates
}

// Current returns the last published snapshot.
func (o *Orchestrator) Current() domain.Snapshot {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.current
}

// IsSearching reports whether a generation is debouncing or dispatched.
func (o *Orchestrator) IsSearching() bool {
	return o.searching.Load()
}

// Search supersedes the current generation with text.
func (o *Orchestrator) Search(text string) {
	gen := o.generation.Add(1)
	query := strings.TrimSpace(text)

	o.mu.Lock()
	if o.timer != nil {
		o.timer.Stop()
		o.timer = nil
	}

	if query != "" {
		o.searching.Store(true)
		o.timer = time.AfterFunc(o.settings.Search.Debounce, func() {
			o.dispatch(gen, query)
		})
		o.mu.Unlock()
		return
	}

	logger.Debug("Generation %d: empty query, clearing results", gen)
	o.searching.Store(false)
	o.pending = nil
	o.triggered = make(map[domain.SourceKind]*triggered)
	o.state = round{generation: gen}
	o.publishLocked()
	o.mu.Unlock()

	// Sources purge their caches on an empty query.
	for _, kind := range o.order {
		o.sources[kind].Search(context.Background(), "")
	}
}

// dispatch runs one generation against every automatic source and publishes it
// if it is still current.
func (o *Orchestrator) dispatch(gen uint64, query string) {
	if !o.isCurrent(gen) {
		return
	}
	logger.Section("Dispatch")
	logger.Debug("Generation %d: %q", gen, query)

	start := time.Now()
	flight := &inFlight{generation: gen, query: query}
	o.mu.Lock()
	o.pending = flight
	o.mu.Unlock()

	replies := o.fanOut(context.Background(), query, o.automaticKinds())

	o.mu.Lock()
	defer o.mu.Unlock()
	if o.pending == flight {
		o.pending = nil
	}
	if !o.isCurrent(gen) {
		logger.Debug("Generation %d superseded after %s, discarding", gen, logger.Elapsed(start))
		return
	}

	for kind, results := range flight.replays {
		replies[kind] = results
	}
	o.state = round{generation: gen, query: query, bySource: replies}
	for kind, t := range o.triggered {
		if t.query == query {
			o.state.bySource[kind] = t.results
		} else {
			delete(o.triggered, kind)
		}
	}
	o.searching.Store(false)
	o.publishLocked()
	logger.Debug("Generation %d delivered in %s", gen, logger.Elapsed(start))
}

// TriggerSearch runs a triggered source for text and merges its first page.
func (o *Orchestrator) TriggerSearch(kind domain.SourceKind, text string) {
	query := strings.TrimSpace(text)
	src, ok := o.sources[kind]
	if !ok || query == "" || !o.settings.Source(kind).Enabled {
		logger.Debug("Trigger %s ignored", kind)
		return
	}
	gen := o.generation.Load()

	err := o.submit(kind, func() {
		results, more := o.searchPage(src, query, 0)
		o.mergeTriggered(gen, kind, &triggered{query: query, results: results, more: more})
	})
	if err != nil {
		logger.Warn("Trigger %s rejected: %v", kind, err)
	}
}

// LoadMore appends the next page of a paginated source to the current snapshot.
func (o *Orchestrator) LoadMore(kind domain.SourceKind) {
	src, ok := o.sources[kind].(PagedSource)
	if !ok {
		return
	}

	o.mu.Lock()
	t := o.triggered[kind]
	o.mu.Unlock()
	if t == nil || !t.more {
		return
	}
	gen := o.generation.Load()

	err := o.submit(kind, func() {
		page, more := src.SearchPage(context.Background(), t.query, t.page+1)
		next := &triggered{
			query:   t.query,
			results: append(append([]domain.SearchResult(nil), t.results...), page...),
			page:    t.page + 1,
			more:    more,
		}
		o.mergeTriggered(gen, kind, next)
	})
	if err != nil {
		logger.Warn("Load more %s rejected: %v", kind, err)
	}
}

// HasMore reports whether a paginated source has further pages for the current query.
func (o *Orchestrator) HasMore(kind domain.SourceKind) bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	t := o.triggered[kind]
	return t != nil && t.more
}

func (o *Orchestrator) mergeTriggered(gen uint64, kind domain.SourceKind, t *triggered) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if !o.isCurrent(gen) {
		logger.Debug("Trigger %s for generation %d superseded, discarding", kind, gen)
		return
	}
	o.triggered[kind] = t
	if o.state.query == t.query {
		if o.state.bySource == nil {
			o.state.bySource = make(map[domain.SourceKind][]domain.SearchResult)
		}
		o.state.bySource[kind] = t.results
		o.publishLocked()
	}
}

// replayHandler merges results a source produced after its catalog finished loading.
func (o *Orchestrator) replayHandler(kind domain.SourceKind) ReplayFunc {
	return func(query string, results []domain.SearchResult) {
		query = strings.TrimSpace(query)
		o.mu.Lock()
		defer o.mu.Unlock()
		if p := o.pending; p != nil && p.query == query && o.isCurrent(p.generation) {
			if p.replays == nil {
				p.replays = make(map[domain.SourceKind][]domain.SearchResult)
			}
			p.replays[kind] = results
			return
		}
		if o.state.query == "" || o.state.query != query || !o.isCurrent(o.state.generation) {
			return
		}
		if o.state.bySource == nil {
			o.state.bySource = make(map[domain.SourceKind][]domain.SearchResult)
		}
		o.state.bySource[kind] = results
		o.publishLocked()
	}
}

// Query runs one federated search without debounce. Triggered sources listed
// in kinds are included.
func (o *Orchestrator) Query(ctx context.Context, text string, kinds ...domain.SourceKind) (domain.Snapshot, error) {
	query := strings.TrimSpace(text)
	if query == "" {
		return domain.Snapshot{}, nil
	}

	targets := o.automaticKinds()
	for _, k := range kinds {
		if _, ok := o.sources[k]; ok && o.settings.Source(k).Enabled && !containsKind(targets, k) {
			targets = append(targets, k)
		}
	}

	replies := o.fanOut(ctx, query, targets)
	if err := ctx.Err(); err != nil {
		return domain.Snapshot{}, err
	}
	return o.merge(0, query, replies), nil
}

// Execute performs the default action of result.
func (o *Orchestrator) Execute(ctx context.Context, result domain.SearchResult) error {
	switch result.Type {
	case domain.ResultApplication, domain.ResultFile, domain.ResultDocument, domain.ResultFolder:
		if result.Path == "" {
			return fmt.Errorf("%w: %s result has no path", domain.ErrInvalidInput, result.Type)
		}
		logger.Debug("Opening %s", result.Path)
		return o.opener.Open(ctx, result.Path)

	case domain.ResultShortcut:
		exec, ok := o.sources[domain.SourceShortcut].(Executor)
		if !ok {
			return domain.ErrSourceUnavailable
		}
		return exec.Execute(ctx, result)

	case domain.ResultCalculator:
		if o.clipboard == nil {
			return fmt.Errorf("%w: no clipboard", domain.ErrSourceUnavailable)
		}
		return o.clipboard.Copy(ctx, result.Name)

	default:
		return nil
	}
}

// fanOut calls every source in kinds concurrently and collects the replies
// that arrive before the soft cap. Late calls keep running; their results
// only reach the sources' caches.
func (o *Orchestrator) fanOut(
	ctx context.Context, query string, kinds []domain.SourceKind,
) map[domain.SourceKind][]domain.SearchResult {
	type reply struct {
		kind    domain.SourceKind
		results []domain.SearchResult
	}

	replies := make(chan reply, len(kinds))
	pending := 0
	for _, kind := range kinds {
		src := o.sources[kind]
		err := o.submit(kind, func() {
			results, _ := o.searchPage(src, query, 0)
			replies <- reply{kind: kind, results: results}
		})
		if err != nil {
			logger.Warn("Source %s rejected: %v", kind, err)
			continue
		}
		pending++
	}

	out := make(map[domain.SourceKind][]domain.SearchResult, pending)
	deadline := time.NewTimer(o.settings.Search.SourceTimeout)
	defer deadline.Stop()

	for pending > 0 {
		select {
		case r := <-replies:
			out[r.kind] = r.results
			pending--
		case <-deadline.C:
			logger.Warn("%d source(s) missed the %s cap for %q", pending, o.settings.Search.SourceTimeout, query)
			return out
		case <-ctx.Done():
			return out
		}
	}
	return out
}

// submit runs fn on the pool unless kind already has maxCallsPerSource calls
// running. A source that never returns holds at most that many workers.
func (o *Orchestrator) submit(kind domain.SourceKind, fn func()) error {
	n := o.running[kind]
	if n.Add(1) > maxCallsPerSource {
		n.Add(-1)
		return errSourceBusy
	}
	err := o.pool.Submit(func() {
		defer n.Add(-1)
		fn()
	})
	if err != nil {
		n.Add(-1)
	}
	return err
}

// searchPage calls a source, paginated when it supports pages.
func (o *Orchestrator) searchPage(src Source, query string, page int) ([]domain.SearchResult, bool) {
	if paged, ok := src.(PagedSource); ok {
		return paged.SearchPage(context.Background(), query, page)
	}
	return src.Search(context.Background(), query), false
}

func (o *Orchestrator) automaticKinds() []domain.SourceKind {
	kinds := make([]domain.SourceKind, 0, len(o.order))
	for _, kind := range o.order {
		s := o.settings.Source(kind)
		if s.Enabled && s.Mode == domain.SourceModeAutomatic {
			kinds = append(kinds, kind)
		}
	}
	return kinds
}

func (o *Orchestrator) isCurrent(gen uint64) bool {
	return o.generation.Load() == gen
}

// merge concatenates replies in source order and groups them by category.
func (o *Orchestrator) merge(
	gen uint64, query string, bySource map[domain.SourceKind][]domain.SearchResult,
) domain.Snapshot {
	var results []domain.SearchResult
	for _, kind := range o.order {
		results = append(results, bySource[kind]...)
	}
	return domain.Snapshot{
		Generation: gen,
		Query:      query,
		Results:    results,
		Categories: domain.GroupByCategory(results),
	}
}

// publishLocked replaces the current snapshot and the pending update.
// Callers hold o.mu.
func (o *Orchestrator) publishLocked() {
	o.current = o.merge(o.state.generation, o.state.query, o.state.bySource)
	select {
	case <-o.updates:
	default:
	}
	o.updates <- o.current
}

func containsKind(kinds []domain.SourceKind, k domain.SourceKind) bool {
	for _, kind := range kinds {
		if kind == k {
			return true
		}
	}
	return false
}
