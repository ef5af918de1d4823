package services

import (
	"context"

	"github.com/custodia-labs/launchpad/internal/core/domain"
	"github.com/custodia-labs/launchpad/internal/core/ports/driving"
)

// Ensure CatalogService implements the interface.
var _ driving.CatalogBrowser = (*CatalogService)(nil)

// CatalogService exposes the catalogs behind the application and shortcut sources.
type CatalogService struct {
	apps      *ApplicationSource
	shortcuts *ShortcutSource
}

// NewCatalogService creates a catalog service. Either source may be nil.
func NewCatalogService(apps *ApplicationSource, shortcuts *ShortcutSource) *CatalogService {
	return &CatalogService{apps: apps, shortcuts: shortcuts}
}

// Applications returns the application catalog, loading it if needed.
func (s *CatalogService) Applications(ctx context.Context) ([]domain.AppInfo, error) {
	if s.apps == nil {
		return nil, domain.ErrSourceUnavailable
	}
	if err := s.apps.Prepare(ctx); err != nil {
		return nil, err
	}
	return s.apps.Catalog(), nil
}

// Shortcuts returns the shortcut catalog, loading it if needed.
func (s *CatalogService) Shortcuts(ctx context.Context) ([]domain.Shortcut, error) {
	if s.shortcuts == nil {
		return nil, domain.ErrSourceUnavailable
	}
	if err := s.shortcuts.Prepare(ctx); err != nil {
		return nil, err
	}
	return s.shortcuts.Catalog(), nil
}
