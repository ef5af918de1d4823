package services

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/custodia-labs/launchpad/internal/core/domain"
	"github.com/custodia-labs/launchpad/internal/core/matcher"
	"github.com/custodia-labs/launchpad/internal/core/ports/driven"
	"github.com/custodia-labs/launchpad/internal/logger"
)

// Ensure ShortcutSource satisfies the source contracts.
var (
	_ Source   = (*ShortcutSource)(nil)
	_ Preparer = (*ShortcutSource)(nil)
)

// glyphIconPrefix marks an icon generated from the first letter of a name.
const glyphIconPrefix = "glyph:"

// shortcutRetryBackoff is how long searches wait after a failed load before
// starting another one.
const shortcutRetryBackoff = 30 * time.Second

// ShortcutSource catalogs and runs externally registered automation scripts.
type ShortcutSource struct {
	runner  driven.CommandRunner
	icons   driven.IconResolver
	listCmd []string
	runCmd  []string
	hostApp string

	mu        sync.RWMutex
	shortcuts []domain.Shortcut
	hostIcon  string
	loaded    bool

	loading atomic.Bool
	// failedAt is the UnixNano time of the last failed load, zero after a success.
	failedAt atomic.Int64
	backoff  time.Duration
	cache    *queryCache
}

// NewShortcutSource creates a shortcut source. icons may be nil.
func NewShortcutSource(runner driven.CommandRunner, icons driven.IconResolver, settings domain.ShortcutSettings) *ShortcutSource {
	return &ShortcutSource{
		runner:  runner,
		icons:   icons,
		listCmd: settings.ListCommand,
		runCmd:  settings.RunCommand,
		hostApp: settings.HostApp,
		backoff: shortcutRetryBackoff,
		cache:   newQueryCache(domain.DefaultQueryCacheSize),
	}
}

// Kind identifies the source.
func (s *ShortcutSource) Kind() domain.SourceKind {
	return domain.SourceShortcut
}

// IsLoaded reports whether a catalog has been loaded.
func (s *ShortcutSource) IsLoaded() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loaded
}

// Catalog returns the loaded shortcuts.
func (s *ShortcutSource) Catalog() []domain.Shortcut {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]domain.Shortcut(nil), s.shortcuts...)
}

// Prepare loads the catalog unless it is already loaded.
func (s *ShortcutSource) Prepare(ctx context.Context) error {
	if s.IsLoaded() {
		return nil
	}
	_, err := s.Load(ctx)
	return err
}

// Load runs the list command and replaces the catalog. Concurrent calls
// while a load is running return immediately. It returns the number of
// shortcuts loaded.
func (s *ShortcutSource) Load(ctx context.Context) (int, error) {
	if !s.loading.CompareAndSwap(false, true) {
		return 0, nil
	}
	defer s.loading.Store(false)

	if len(s.listCmd) == 0 {
		s.failedAt.Store(time.Now().UnixNano())
		return 0, fmt.Errorf("%w: no list command configured", domain.ErrSourceUnavailable)
	}

	out, err := s.runner.CombinedOutput(ctx, s.listCmd[0], s.listCmd[1:]...)
	if err != nil {
		s.failedAt.Store(time.Now().UnixNano())
		logger.Warn("Shortcut list command %q failed: %v", strings.Join(s.listCmd, " "), err)
		return 0, fmt.Errorf("%w: %v", domain.ErrSubprocessFailed, err)
	}
	s.failedAt.Store(0)

	shortcuts := ParseShortcutList(out)

	hostIcon := ""
	if s.icons != nil && s.hostApp != "" {
		if icon, ok := s.icons.ResolveAppIcon(ctx, s.hostApp); ok {
			hostIcon = icon
		}
	}

	s.mu.Lock()
	s.shortcuts = shortcuts
	s.hostIcon = hostIcon
	s.loaded = true
	s.mu.Unlock()
	s.cache.purge()

	logger.Info("Shortcut catalog: %d entries", len(shortcuts))
	return len(shortcuts), nil
}

// Search matches query against shortcut names. Before the first load it
// returns nothing and starts a load in the background, unless a load failed
// within the backoff window.
func (s *ShortcutSource) Search(ctx context.Context, query string) []domain.SearchResult {
	if cacheKey(query) == "" {
		s.cache.purge()
		return nil
	}

	if !s.IsLoaded() {
		if s.backingOff() {
			return nil
		}
		go func() {
			_, _ = s.Load(context.WithoutCancel(ctx))
		}()
		return nil
	}

	if cached, ok := s.cache.get(query); ok {
		return cached
	}

	s.mu.RLock()
	shortcuts := s.shortcuts
	hostIcon := s.hostIcon
	s.mu.RUnlock()

	var results []domain.SearchResult
	for _, sc := range shortcuts {
		if !matcher.Matches(sc.Name, query) {
			continue
		}
		icon := hostIcon
		if icon == "" {
			icon = glyphIcon(sc.Name)
		}
		results = append(results, domain.SearchResult{
			ID:             uuid.NewString(),
			Name:           sc.Name,
			Path:           sc.Token(),
			Type:           domain.ResultShortcut,
			Category:       domain.CategoryShortcut,
			Icon:           icon,
			Subtitle:       s.hostApp,
			RelevanceScore: matcher.Score(sc.Name, query),
		})
	}
	sortByRecency(results)
	s.cache.put(query, results)
	return results
}

// backingOff reports whether the last failed load is too recent to retry.
func (s *ShortcutSource) backingOff() bool {
	failed := s.failedAt.Load()
	return failed != 0 && time.Since(time.Unix(0, failed)) < s.backoff
}

// Execute runs the shortcut named by the result's token without waiting for it.
// Only a malformed token is reported; run failures are logged.
func (s *ShortcutSource) Execute(ctx context.Context, result domain.SearchResult) error {
	name, err := ShortcutName(result.Path)
	if err != nil {
		return err
	}
	if len(s.runCmd) == 0 {
		logger.Warn("No shortcut run command configured, cannot run %q", name)
		return nil
	}

	args := append(append([]string(nil), s.runCmd[1:]...), name)
	if err := s.runner.Start(ctx, s.runCmd[0], args...); err != nil {
		logger.Warn("%v: running shortcut %q: %v", domain.ErrSubprocessFailed, name, err)
	}
	return nil
}

// ShortcutName extracts the shortcut name from a "run <name>" token.
func ShortcutName(token string) (string, error) {
	if !strings.HasPrefix(token, domain.ShortcutTokenPrefix) {
		return "", fmt.Errorf("%w: %q", domain.ErrInvalidShortcutToken, token)
	}
	name := strings.TrimSpace(strings.TrimPrefix(token, domain.ShortcutTokenPrefix))
	if name == "" {
		return "", fmt.Errorf("%w: empty name", domain.ErrInvalidShortcutToken)
	}
	return name, nil
}

// ParseShortcutList reads one shortcut name per line, skipping blank lines,
// separator rules and header lines ending in a colon. Duplicates are dropped.
func ParseShortcutList(out []byte) []domain.Shortcut {
	var shortcuts []domain.Shortcut
	seen := make(map[string]struct{})

	scanner := bufio.NewScanner(bytes.NewReader(out))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || isSeparator(line) || strings.HasSuffix(line, ":") {
			continue
		}
		if _, dup := seen[line]; dup {
			continue
		}
		seen[line] = struct{}{}
		shortcuts = append(shortcuts, domain.Shortcut{Name: line})
	}
	return shortcuts
}

func isSeparator(line string) bool {
	for _, r := range line {
		if !strings.ContainsRune("-=_*#~─━═+|", r) && !unicode.IsSpace(r) {
			return false
		}
	}
	return true
}

func glyphIcon(name string) string {
	r, _ := utf8.DecodeRuneInString(name)
	if r == utf8.RuneError {
		return glyphIconPrefix + "?"
	}
	return glyphIconPrefix + string(unicode.ToUpper(r))
}
