package fswatch

import (
	"context"
	"io/fs"
	"path/filepath"

	"golang.org/x/sync/errgroup"

	"github.com/custodia-labs/launchpad/internal/core/domain"
	"github.com/custodia-labs/launchpad/internal/core/ports/driven"
)

// Ensure Crawler implements the interface.
var _ driven.FileCrawler = (*Crawler)(nil)

// defaultCrawlWorkers bounds the number of roots walked at once.
const defaultCrawlWorkers = 4

// Crawler walks directory trees into index entries.
// Hidden files and directories are skipped; application bundles are not descended into.
type Crawler struct {
	workers int
}

// NewCrawler creates a crawler.
func NewCrawler() *Crawler {
	return &Crawler{workers: defaultCrawlWorkers}
}

// Crawl streams an entry for every visible file and directory below roots.
// The roots themselves are not reported. The first walk error is sent on
// the error channel before the entry channel closes.
func (c *Crawler) Crawl(ctx context.Context, roots []string) (<-chan domain.FileEntry, <-chan error) {
	out := make(chan domain.FileEntry)
	errs := make(chan error, 1)

	go func() {
		defer close(out)

		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(c.workers)
		for _, root := range roots {
			root := LocalPath(root)
			g.Go(func() error {
				if err := checkRoot(root); err != nil {
					return err
				}
				return walk(gctx, root, out)
			})
		}
		if err := g.Wait(); err != nil {
			errs <- err
		}
	}()

	return out, errs
}

func walk(ctx context.Context, root string, out chan<- domain.FileEntry) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		if err != nil {
			if path == root {
				return err
			}
			// Unreadable entries below the root are skipped.
			if d != nil && d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if path == root {
			return nil
		}
		if isHidden(path) {
			if d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}

		info, err := d.Info()
		if err != nil {
			return nil
		}
		select {
		case out <- entryFor(path, info):
		case <-ctx.Done():
			return ctx.Err()
		}

		if d.IsDir() && isBundle(path) {
			return fs.SkipDir
		}
		return nil
	})
}
