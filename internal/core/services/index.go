package services

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/custodia-labs/launchpad/internal/core/domain"
	"github.com/custodia-labs/launchpad/internal/core/ports/driven"
	"github.com/custodia-labs/launchpad/internal/core/ports/driving"
	"github.com/custodia-labs/launchpad/internal/logger"
)

// Ensure IndexService implements the interface.
var _ driving.IndexService = (*IndexService)(nil)

const (
	// upsertBatch is the number of crawled entries written per index call.
	upsertBatch = 256

	// catalogSettle is how long application entries must be quiet before
	// the catalog callback fires.
	catalogSettle = 2 * time.Second
)

// IndexService keeps the file index in step with the filesystem.
type IndexService struct {
	index   driven.FileIndex
	crawler driven.FileCrawler
	watcher driven.FileWatcher

	mu             sync.Mutex
	onAppsChanged  func()
	appsChangedJob *time.Timer
}

// NewIndexService creates an index service. watcher may be nil.
func NewIndexService(index driven.FileIndex, crawler driven.FileCrawler, watcher driven.FileWatcher) *IndexService {
	return &IndexService{index: index, crawler: crawler, watcher: watcher}
}

// OnApplicationsChanged registers fn to run after application entries change.
// Bursts of changes are coalesced into one call.
func (s *IndexService) OnApplicationsChanged(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onAppsChanged = fn
}

// Rebuild drops the entries below roots and crawls them again.
func (s *IndexService) Rebuild(ctx context.Context, roots []string) (int, error) {
	if len(roots) == 0 {
		return 0, nil
	}
	logger.Section("File Index")
	defer logger.Timed("file index rebuild")()

	for _, root := range roots {
		if err := s.index.Remove(ctx, root); err != nil {
			return 0, fmt.Errorf("clearing %s: %w", root, err)
		}
	}

	entries, errs := s.crawler.Crawl(ctx, roots)
	batch := make([]domain.FileEntry, 0, upsertBatch)
	written := 0
	flush := func() error {
		if len(batch) == 0 {
			return nil
		}
		if err := s.index.Upsert(ctx, batch...); err != nil {
			return fmt.Errorf("writing index batch: %w", err)
		}
		written += len(batch)
		batch = batch[:0]
		return nil
	}

	for e := range entries {
		batch = append(batch, e)
		if len(batch) == upsertBatch {
			if err := flush(); err != nil {
				return written, err
			}
		}
	}
	if err := flush(); err != nil {
		return written, err
	}

	select {
	case err := <-errs:
		if err != nil {
			return written, fmt.Errorf("crawling: %w", err)
		}
	default:
	}

	logger.Info("File index: %d entries written", written)
	return written, nil
}

// Watch applies filesystem changes below roots until ctx is cancelled.
func (s *IndexService) Watch(ctx context.Context, roots []string) error {
	if s.watcher == nil {
		return fmt.Errorf("%w: no file watcher", domain.ErrSourceUnavailable)
	}
	changes, err := s.watcher.Watch(ctx, roots)
	if err != nil {
		return fmt.Errorf("watching: %w", err)
	}

	for change := range changes {
		if err := s.apply(ctx, change); err != nil {
			logger.Warn("Applying change to %s: %v", change.Entry.Path, err)
		}
	}
	return ctx.Err()
}

// Count returns the number of indexed entries.
func (s *IndexService) Count(ctx context.Context) (int, error) {
	return s.index.Count(ctx)
}

func (s *IndexService) apply(ctx context.Context, change domain.FileChange) error {
	var err error
	switch change.Kind {
	case domain.ChangeUpsert:
		err = s.index.Upsert(ctx, change.Entry)
	case domain.ChangeRemove:
		err = s.index.Remove(ctx, change.Entry.Path)
	default:
		return fmt.Errorf("%w: change kind %q", domain.ErrInvalidInput, change.Kind)
	}
	if err != nil {
		return err
	}

	if isApplicationPath(change.Entry.Path) {
		s.scheduleAppsChanged()
	}
	return nil
}

func (s *IndexService) scheduleAppsChanged() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.onAppsChanged == nil {
		return
	}
	if s.appsChangedJob != nil {
		s.appsChangedJob.Stop()
	}
	s.appsChangedJob = time.AfterFunc(catalogSettle, s.onAppsChanged)
}

func isApplicationPath(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".desktop" || ext == ".app"
}
