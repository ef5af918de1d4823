package driven

import (
	"context"

	"github.com/custodia-labs/launchpad/internal/core/domain"
)

// AppCatalogQuery enumerates installed applications.
type AppCatalogQuery interface {
	// StartAppQuery starts one live query over the given application
	// directories. Empty dirs means the platform defaults. Only application
	// entries are reported. Localized names need not be deduplicated.
	StartAppQuery(ctx context.Context, dirs []string) (<-chan domain.AppInfo, <-chan error)
}

// IconResolver resolves icons of applications that are not in the catalog.
type IconResolver interface {
	// ResolveAppIcon returns the icon handle of the named application.
	ResolveAppIcon(ctx context.Context, appName string) (string, bool)
}
