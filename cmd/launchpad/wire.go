package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/custodia-labs/launchpad/internal/adapters/driven/config/file"
	"github.com/custodia-labs/launchpad/internal/adapters/driven/desktop"
	"github.com/custodia-labs/launchpad/internal/adapters/driven/fswatch"
	"github.com/custodia-labs/launchpad/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/launchpad/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/launchpad/internal/adapters/driving/cli"
	"github.com/custodia-labs/launchpad/internal/core/domain"
	"github.com/custodia-labs/launchpad/internal/core/expression"
	"github.com/custodia-labs/launchpad/internal/core/ports/driven"
	"github.com/custodia-labs/launchpad/internal/core/services"
	"github.com/custodia-labs/launchpad/internal/logger"
)

// build wires every service from the config in configDir.
func build(ctx context.Context, configDir string) (*cli.Services, func(), error) {
	configStore, err := file.NewConfigStore(configDir)
	if err != nil {
		return nil, nil, fmt.Errorf("opening config: %w", err)
	}
	settingsService := services.NewSettingsService(configStore)
	settings, err := settingsService.Get()
	if err != nil {
		return nil, nil, fmt.Errorf("reading settings: %w", err)
	}

	var closers []func() error
	closeAll := func() {
		for i := len(closers) - 1; i >= 0; i-- {
			if err := closers[i](); err != nil {
				logger.Warn("Closing: %v", err)
			}
		}
	}

	index, schedulerStore, closeStore, err := openStores(settings.Files.IndexPath)
	if err != nil {
		return nil, nil, err
	}
	closers = append(closers, closeStore)

	runner := desktop.NewExecRunner()
	appCatalog := desktop.NewCatalog()
	probe := desktop.PathProbe{}
	engine := expression.NewEngine()

	calculator := services.NewCalculatorSource(engine)
	apps := services.NewApplicationSource(appCatalog, settings.Applications)
	shortcuts := services.NewShortcutSource(runner, desktop.NewIconResolver(appCatalog, settings.Applications.Dirs), settings.Shortcuts)
	files := services.NewFileSource(index, probe, settings.Files)

	orchestrator, err := services.NewOrchestrator(*settings, desktop.NewOpener(runner), desktop.NewClipboard(),
		calculator, apps, shortcuts, files)
	if err != nil {
		closeAll()
		return nil, nil, fmt.Errorf("creating orchestrator: %w", err)
	}
	closers = append(closers, func() error {
		orchestrator.Close()
		return nil
	})
	orchestrator.Start(ctx)

	indexService := services.NewIndexService(index, fswatch.NewCrawler(),
		fswatch.NewWatcher(fswatch.DefaultSettle, fswatch.DefaultRateLimit))
	indexService.OnApplicationsChanged(func() {
		if _, err := apps.Refresh(ctx); err != nil {
			logger.Warn("Refreshing applications: %v", err)
		}
	})

	roots := settings.Files.Roots
	jobs := map[string]services.RefreshFunc{
		domain.TaskIDAppCatalog: apps.Refresh,
		domain.TaskIDShortcuts:  shortcuts.Load,
		domain.TaskIDFileIndex: func(ctx context.Context) (int, error) {
			return indexService.Rebuild(ctx, roots)
		},
	}
	scheduler := services.NewScheduler(domain.RefreshSchedule(*settings), jobs, schedulerStore)

	return &cli.Services{
		Launcher:   orchestrator,
		Calculator: engine,
		Catalog:    services.NewCatalogService(apps, shortcuts),
		Index:      indexService,
		Settings:   settingsService,
		Scheduler:  scheduler,
		Background: func(ctx context.Context) {
			watchRoots := watchedRoots(probe, roots, settings.Applications.Dirs)
			if len(watchRoots) == 0 {
				return
			}
			if err := indexService.Watch(ctx, watchRoots); err != nil && !errors.Is(err, context.Canceled) {
				logger.Warn("Watching files: %v", err)
			}
		},
	}, closeAll, nil
}

// openStores opens the file index and scheduler store selected by indexPath.
func openStores(indexPath string) (driven.FileIndex, driven.SchedulerStore, func() error, error) {
	if indexPath == domain.IndexInMemory {
		index := memory.NewFileIndex()
		return index, memory.NewSchedulerStore(), index.Close, nil
	}
	store, err := sqlite.NewStore(indexPath)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("opening index: %w", err)
	}
	return store.FileIndex(), store.SchedulerStore(), store.Close, nil
}

// watchedRoots returns the existing file roots and application directories.
// Changes below application directories refresh the application catalog.
func watchedRoots(probe driven.PathProbe, fileRoots, appDirs []string) []string {
	if len(appDirs) == 0 {
		appDirs = desktop.DefaultDirs()
	}
	seen := map[string]bool{}
	var out []string
	for _, dir := range append(append([]string{}, fileRoots...), appDirs...) {
		if seen[dir] || !probe.IsDir(dir) {
			continue
		}
		seen[dir] = true
		out = append(out, dir)
	}
	return out
}
