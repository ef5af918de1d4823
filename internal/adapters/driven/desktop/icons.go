package desktop

import (
	"context"
	"strings"
	"sync"

	"github.com/custodia-labs/launchpad/internal/core/domain"
	"github.com/custodia-labs/launchpad/internal/core/ports/driven"
)

// Ensure IconResolver implements the interface.
var _ driven.IconResolver = (*IconResolver)(nil)

// IconResolver looks up application icons in the catalog.
// Successful lookups are remembered for the life of the resolver.
type IconResolver struct {
	query driven.AppCatalogQuery
	dirs  []string

	mu    sync.Mutex
	icons map[string]string
}

// NewIconResolver creates a resolver over query, scanning dirs (or the defaults).
func NewIconResolver(query driven.AppCatalogQuery, dirs []string) *IconResolver {
	return &IconResolver{query: query, dirs: dirs, icons: map[string]string{}}
}

// ResolveAppIcon returns the icon of the application named appName.
// Any of the application's names matches, case-insensitively.
func (r *IconResolver) ResolveAppIcon(ctx context.Context, appName string) (string, bool) {
	key := strings.ToLower(appName)
	r.mu.Lock()
	icon, ok := r.icons[key]
	r.mu.Unlock()
	if ok {
		return icon, true
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	apps, _ := r.query.StartAppQuery(ctx, r.dirs)
	for app := range apps {
		if app.Icon == "" || !hasName(app, appName) {
			continue
		}
		r.mu.Lock()
		r.icons[key] = app.Icon
		r.mu.Unlock()
		return app.Icon, true
	}
	return "", false
}

func hasName(app domain.AppInfo, name string) bool {
	for _, n := range app.Names() {
		if strings.EqualFold(n, name) {
			return true
		}
	}
	return false
}
