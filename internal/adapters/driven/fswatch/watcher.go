package fswatch

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"golang.org/x/time/rate"

	"github.com/custodia-labs/launchpad/internal/core/domain"
	"github.com/custodia-labs/launchpad/internal/core/ports/driven"
	"github.com/custodia-labs/launchpad/internal/logger"
)

// Ensure Watcher implements the interface.
var _ driven.FileWatcher = (*Watcher)(nil)

// Watcher defaults.
const (
	DefaultSettle    = 300 * time.Millisecond
	DefaultRateLimit = 50
)

// Watcher reports filesystem changes below a set of roots.
type Watcher struct {
	settle time.Duration
	limit  rate.Limit
}

// NewWatcher creates a watcher. A path must be quiet for settle before its
// change is reported; at most perSecond changes are reported per second.
// Non-positive values select the defaults.
func NewWatcher(settle time.Duration, perSecond float64) *Watcher {
	if settle <= 0 {
		settle = DefaultSettle
	}
	if perSecond <= 0 {
		perSecond = DefaultRateLimit
	}
	return &Watcher{settle: settle, limit: rate.Limit(perSecond)}
}

// Watch starts watching roots and every visible directory below them.
// The change channel closes when ctx is cancelled.
func (w *Watcher) Watch(ctx context.Context, roots []string) (<-chan domain.FileChange, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating watcher: %w", err)
	}
	for _, root := range roots {
		root = LocalPath(root)
		if err := checkRoot(root); err != nil {
			fsw.Close()
			return nil, err
		}
		if err := addTree(fsw, root); err != nil {
			fsw.Close()
			return nil, fmt.Errorf("watching %s: %w", root, err)
		}
	}

	s := &session{
		watcher: w,
		fsw:     fsw,
		limiter: rate.NewLimiter(w.limit, 1),
		pending: make(map[string]*time.Timer),
		ready:   make(chan string),
		done:    make(chan struct{}),
		out:     make(chan domain.FileChange),
	}
	go s.run(ctx)
	return s.out, nil
}

// session is one Watch call. Only run sends on out.
type session struct {
	watcher *Watcher
	fsw     *fsnotify.Watcher
	limiter *rate.Limiter
	pending map[string]*time.Timer
	ready   chan string
	done    chan struct{}
	out     chan domain.FileChange
}

func (s *session) run(ctx context.Context) {
	defer close(s.out)
	defer close(s.done)
	defer s.fsw.Close()
	defer func() {
		for _, t := range s.pending {
			t.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-s.fsw.Events:
			if !ok {
				return
			}
			s.handleEvent(event)
		case err, ok := <-s.fsw.Errors:
			if !ok {
				return
			}
			logger.Warn("File watcher: %v", err)
		case path := <-s.ready:
			delete(s.pending, path)
			change, ok := resolve(path)
			if !ok {
				continue
			}
			if err := s.limiter.Wait(ctx); err != nil {
				return
			}
			select {
			case s.out <- change:
			case <-ctx.Done():
				return
			}
		}
	}
}

// handleEvent (re)arms the settle timer of the event's path.
// Hidden paths and attribute-only changes are ignored.
func (s *session) handleEvent(event fsnotify.Event) {
	if isHidden(event.Name) || event.Op == fsnotify.Chmod {
		return
	}
	if event.Has(fsnotify.Create) {
		if info, err := os.Stat(event.Name); err == nil && info.IsDir() && !isBundle(event.Name) {
			if err := addTree(s.fsw, event.Name); err != nil {
				logger.Warn("Watching new directory %s: %v", event.Name, err)
			}
		}
	}

	path := event.Name
	if t, ok := s.pending[path]; ok {
		t.Reset(s.watcher.settle)
		return
	}
	s.pending[path] = time.AfterFunc(s.watcher.settle, func() {
		select {
		case s.ready <- path:
		case <-s.done:
		}
	})
}

// resolve turns a settled path into a change by looking at what is there now.
func resolve(path string) (domain.FileChange, bool) {
	info, err := os.Stat(path)
	if errors.Is(err, fs.ErrNotExist) {
		return domain.FileChange{Kind: domain.ChangeRemove, Entry: domain.FileEntry{Path: path}}, true
	}
	if err != nil {
		logger.Warn("Inspecting %s: %v", path, err)
		return domain.FileChange{}, false
	}
	return domain.FileChange{Kind: domain.ChangeUpsert, Entry: entryFor(path, info)}, true
}

// addTree watches dir and every visible directory below it.
func addTree(fsw *fsnotify.Watcher, dir string) error {
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == dir {
				return err
			}
			return nil
		}
		if !d.IsDir() {
			return nil
		}
		if path != dir && (isHidden(path) || isBundle(path)) {
			return fs.SkipDir
		}
		return fsw.Add(path)
	})
}
