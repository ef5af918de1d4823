package desktop

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/custodia-labs/launchpad/internal/core/domain"
	"github.com/custodia-labs/launchpad/internal/core/ports/driven"
)

// Ensure Catalog implements the interface.
var _ driven.AppCatalogQuery = (*Catalog)(nil)

// defaultParseWorkers bounds the number of entries parsed at once.
const defaultParseWorkers = 8

// Catalog discovers installed applications.
type Catalog struct {
	locales []string
	workers int
}

// NewCatalog creates a catalog query for the current locale.
func NewCatalog() *Catalog {
	return NewCatalogWithLocales(defaultLocales())
}

// NewCatalogWithLocales creates a catalog query that picks display names for locales.
func NewCatalogWithLocales(locales []string) *Catalog {
	return &Catalog{locales: locales, workers: defaultParseWorkers}
}

// DefaultDirs returns the application directories of the platform.
func DefaultDirs() []string {
	home, _ := os.UserHomeDir()
	if runtime.GOOS == "darwin" {
		return []string{"/Applications", "/System/Applications", filepath.Join(home, "Applications")}
	}

	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		dataHome = filepath.Join(home, ".local", "share")
	}
	dataDirs := os.Getenv("XDG_DATA_DIRS")
	if dataDirs == "" {
		dataDirs = "/usr/local/share:/usr/share"
	}

	dirs := []string{filepath.Join(dataHome, "applications")}
	for _, d := range strings.Split(dataDirs, ":") {
		if d != "" {
			dirs = append(dirs, filepath.Join(d, "applications"))
		}
	}
	return dirs
}

// candidate is one file found by the scan, with the precedence of its directory.
type candidate struct {
	rank int
	dir  string
	path string
}

// StartAppQuery streams every visible application below dirs, or below
// DefaultDirs when dirs is empty. A desktop file ID found in several
// directories is reported once, from the earliest directory. Missing
// directories are skipped; only cancellation is reported as an error.
func (c *Catalog) StartAppQuery(ctx context.Context, dirs []string) (<-chan domain.AppInfo, <-chan error) {
	if len(dirs) == 0 {
		dirs = DefaultDirs()
	}
	out := make(chan domain.AppInfo)
	errs := make(chan error, 1)

	go func() {
		defer close(out)

		found, err := scan(ctx, dirs)
		if err != nil {
			errs <- err
			return
		}

		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(c.workers)
		for _, cand := range found {
			g.Go(func() error {
				app, ok := c.load(cand)
				if !ok {
					return nil
				}
				select {
				case out <- app:
					return nil
				case <-gctx.Done():
					return gctx.Err()
				}
			})
		}
		if err := g.Wait(); err != nil {
			errs <- err
		}
	}()

	return out, errs
}

// scan lists the .desktop files and .app bundles below dirs, deduplicated by ID.
func scan(ctx context.Context, dirs []string) ([]candidate, error) {
	var (
		mu   sync.Mutex
		byID = map[string]candidate{}
	)
	g, gctx := errgroup.WithContext(ctx)
	for rank, dir := range dirs {
		g.Go(func() error {
			return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
				if ctxErr := gctx.Err(); ctxErr != nil {
					return ctxErr
				}
				if err != nil {
					if d != nil && d.IsDir() && path != dir {
						return fs.SkipDir
					}
					return nil
				}

				var id string
				switch {
				case d.IsDir() && strings.HasSuffix(path, ".app"):
					id = filepath.Base(path)
				case !d.IsDir() && strings.HasSuffix(path, ".desktop"):
					id = desktopID(dir, path)
				default:
					return nil
				}

				mu.Lock()
				if prev, ok := byID[id]; !ok || rank < prev.rank {
					byID[id] = candidate{rank: rank, dir: dir, path: path}
				}
				mu.Unlock()

				if d.IsDir() {
					return fs.SkipDir
				}
				return nil
			})
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := make([]candidate, 0, len(byID))
	for _, cand := range byID {
		out = append(out, cand)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].path < out[j].path })
	return out, nil
}

func (c *Catalog) load(cand candidate) (domain.AppInfo, bool) {
	info, err := os.Stat(cand.path)
	if err != nil {
		return domain.AppInfo{}, false
	}

	var app domain.AppInfo
	if info.IsDir() {
		name := strings.TrimSuffix(filepath.Base(cand.path), ".app")
		app = domain.AppInfo{Name: name, Path: cand.path, BundleID: name}
	} else {
		f, err := os.Open(cand.path)
		if err != nil {
			return domain.AppInfo{}, false
		}
		e, err := parseEntry(f)
		f.Close()
		if err != nil || !e.visible() {
			return domain.AppInfo{}, false
		}
		app = e.appInfo(cand.path, desktopID(cand.dir, cand.path), c.locales)
	}

	if used, ok := accessTime(info); ok {
		app.LastUsedDate = &used
	}
	return app, true
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
