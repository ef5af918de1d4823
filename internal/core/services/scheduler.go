package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/custodia-labs/launchpad/internal/core/domain"
	"github.com/custodia-labs/launchpad/internal/core/ports/driven"
	"github.com/custodia-labs/launchpad/internal/core/ports/driving"
	"github.com/custodia-labs/launchpad/internal/logger"
)

// Ensure Scheduler implements the interface.
var _ driving.RefreshScheduler = (*Scheduler)(nil)

// historyRetention is the number of results kept per task.
const historyRetention = 100

// RefreshFunc performs one refresh and returns the number of items written.
type RefreshFunc func(ctx context.Context) (int, error)

// Scheduler periodically rebuilds catalogs and the file index.
type Scheduler struct {
	schedule map[string]time.Duration
	jobs     map[string]RefreshFunc
	store    driven.SchedulerStore
	tick     time.Duration

	mu      sync.Mutex
	running bool
	stopCh  chan struct{}
	wg      sync.WaitGroup
	active  map[string]bool
}

// NewScheduler creates a scheduler. schedule gives the interval of each task;
// tasks without a job or with a zero interval are disabled.
func NewScheduler(
	schedule map[string]time.Duration,
	jobs map[string]RefreshFunc,
	store driven.SchedulerStore,
) *Scheduler {
	return &Scheduler{
		schedule: schedule,
		jobs:     jobs,
		store:    store,
		tick:     time.Minute,
		active:   make(map[string]bool),
	}
}

// SetTick changes how often due tasks are checked.
func (s *Scheduler) SetTick(d time.Duration) {
	if d > 0 {
		s.tick = d
	}
}

// Start begins the scheduler loop. This method blocks until Stop is called
// or ctx is cancelled.
func (s *Scheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return nil
	}
	s.running = true
	s.stopCh = make(chan struct{})
	stopCh := s.stopCh
	s.mu.Unlock()

	if err := s.initialiseTasks(ctx); err != nil {
		logger.Warn("scheduler: failed to initialise tasks: %v", err)
	}

	return s.run(ctx, stopCh)
}

// Stop gracefully shuts down the scheduler and waits for running tasks.
func (s *Scheduler) Stop() error {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return nil
	}
	s.running = false
	close(s.stopCh)
	s.mu.Unlock()

	s.wg.Wait()
	return nil
}

// RunNow runs one task immediately and waits for it.
func (s *Scheduler) RunNow(ctx context.Context, taskID string) (*domain.RefreshResult, error) {
	if _, ok := s.jobs[taskID]; !ok {
		return nil, fmt.Errorf("%w: task %q", domain.ErrNotFound, taskID)
	}
	task, err := s.store.GetTask(ctx, taskID)
	if err != nil {
		return nil, fmt.Errorf("get task %s: %w", taskID, err)
	}
	if task == nil {
		task = s.newTask(taskID, s.schedule[taskID])
	}
	return s.execute(ctx, task), nil
}

// initialiseTasks ensures every scheduled task exists in the store.
func (s *Scheduler) initialiseTasks(ctx context.Context) error {
	for id, interval := range s.schedule {
		if _, ok := s.jobs[id]; !ok {
			continue
		}
		if err := s.ensureTask(ctx, id, interval); err != nil {
			return err
		}
	}
	return nil
}

func (s *Scheduler) newTask(id string, interval time.Duration) *domain.RefreshTask {
	return &domain.RefreshTask{
		ID:       id,
		Name:     taskName(id),
		Interval: interval,
		Enabled:  interval > 0,
		NextRun:  time.Now().Add(interval),
	}
}

// ensureTask creates or updates a task in the store.
func (s *Scheduler) ensureTask(ctx context.Context, id string, interval time.Duration) error {
	task, err := s.store.GetTask(ctx, id)
	if err != nil {
		return err
	}

	if task == nil {
		task = s.newTask(id, interval)
	} else if task.Interval != interval {
		task.Interval = interval
		task.NextRun = time.Now().Add(interval)
		task.Enabled = interval > 0
	}

	return s.store.SaveTask(ctx, task)
}

// run is the main scheduler loop.
func (s *Scheduler) run(ctx context.Context, stopCh <-chan struct{}) error {
	s.checkAndRunDueTasks(ctx)

	ticker := time.NewTicker(s.tick)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-stopCh:
			return nil
		case <-ticker.C:
			s.checkAndRunDueTasks(ctx)
		}
	}
}

// checkAndRunDueTasks starts every due task that is not already running.
func (s *Scheduler) checkAndRunDueTasks(ctx context.Context) {
	tasks, err := s.store.ListTasks(ctx)
	if err != nil {
		logger.Warn("scheduler: failed to list tasks: %v", err)
		return
	}

	now := time.Now()
	for i := range tasks {
		task := tasks[i]
		if _, ok := s.jobs[task.ID]; !ok || !task.IsDue(now) {
			continue
		}

		s.mu.Lock()
		if s.active[task.ID] {
			s.mu.Unlock()
			continue
		}
		s.active[task.ID] = true
		s.mu.Unlock()

		s.wg.Add(1)
		go func() {
			defer s.wg.Done()
			defer func() {
				s.mu.Lock()
				delete(s.active, task.ID)
				s.mu.Unlock()
			}()
			s.execute(ctx, &task)
		}()
	}
}

// execute runs a task, then records its outcome and next run.
func (s *Scheduler) execute(ctx context.Context, task *domain.RefreshTask) *domain.RefreshResult {
	result := &domain.RefreshResult{
		TaskID:    task.ID,
		StartedAt: time.Now(),
	}

	logger.Debug("scheduler: running %s", task.ID)
	n, err := s.jobs[task.ID](ctx)
	result.EndedAt = time.Now()
	result.ItemsRefreshed = n

	if err != nil {
		result.Error = err.Error()
		task.LastError = err.Error()
		logger.Warn("scheduler: %s failed: %v", task.ID, err)
	} else {
		result.Success = true
		task.LastError = ""
		task.LastSuccess = result.EndedAt
	}

	task.LastRun = result.StartedAt
	task.NextRun = result.EndedAt.Add(task.Interval)

	if saveErr := s.store.SaveTask(ctx, task); saveErr != nil {
		logger.Warn("scheduler: failed to save task %s: %v", task.ID, saveErr)
	}
	if recordErr := s.store.RecordResult(ctx, result); recordErr != nil {
		logger.Warn("scheduler: failed to record result for %s: %v", task.ID, recordErr)
	}
	if pruneErr := s.store.PruneHistory(ctx, historyRetention); pruneErr != nil {
		logger.Warn("scheduler: failed to prune history: %v", pruneErr)
	}

	return result
}

func taskName(id string) string {
	switch id {
	case domain.TaskIDAppCatalog:
		return "Application Catalog Refresh"
	case domain.TaskIDShortcuts:
		return "Shortcut Catalog Reload"
	case domain.TaskIDFileIndex:
		return "File Index Rebuild"
	default:
		return id
	}
}
