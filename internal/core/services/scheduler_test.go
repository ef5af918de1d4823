package services

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/launchpad/internal/core/domain"
	"github.com/custodia-labs/launchpad/internal/core/ports/driven"
)

// --- Mock implementations for scheduler testing ---

// mockSchedulerStore implements driven.SchedulerStore for testing.
type mockSchedulerStore struct {
	mu      sync.RWMutex
	tasks   map[string]*domain.RefreshTask
	results map[string][]domain.RefreshResult
	listErr error
}

func newMockSchedulerStore() *mockSchedulerStore {
	return &mockSchedulerStore{
		tasks:   make(map[string]*domain.RefreshTask),
		results: make(map[string][]domain.RefreshResult),
	}
}

func (m *mockSchedulerStore) GetTask(_ context.Context, taskID string) (*domain.RefreshTask, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	task, exists := m.tasks[taskID]
	if !exists {
		return nil, nil
	}
	taskCopy := *task
	return &taskCopy, nil
}

func (m *mockSchedulerStore) ListTasks(_ context.Context) ([]domain.RefreshTask, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.listErr != nil {
		return nil, m.listErr
	}
	tasks := make([]domain.RefreshTask, 0, len(m.tasks))
	for _, t := range m.tasks {
		tasks = append(tasks, *t)
	}
	return tasks, nil
}

func (m *mockSchedulerStore) SaveTask(_ context.Context, task *domain.RefreshTask) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if task == nil {
		return domain.ErrInvalidInput
	}
	taskCopy := *task
	m.tasks[task.ID] = &taskCopy
	return nil
}

func (m *mockSchedulerStore) RecordResult(_ context.Context, result *domain.RefreshResult) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if result == nil {
		return domain.ErrInvalidInput
	}
	m.results[result.TaskID] = append(m.results[result.TaskID], *result)
	return nil
}

func (m *mockSchedulerStore) GetTaskHistory(_ context.Context, taskID string, limit int) ([]domain.RefreshResult, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	results := m.results[taskID]
	if len(results) > limit {
		results = results[len(results)-limit:]
	}
	return results, nil
}

func (m *mockSchedulerStore) PruneHistory(_ context.Context, _ int) error {
	return nil
}

// Ensure mocks implement interfaces
var _ driven.SchedulerStore = (*mockSchedulerStore)(nil)

// countingJob returns a RefreshFunc that counts its runs.
func countingJob(n *atomic.Int32, err error) RefreshFunc {
	return func(context.Context) (int, error) {
		n.Add(1)
		return 7, err
	}
}

// ==================== Scheduler Tests ====================

func TestScheduler_StartStop(t *testing.T) {
	scheduler := NewScheduler(nil, nil, newMockSchedulerStore())

	ctx, cancel := context.WithCancel(context.Background())

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		_ = scheduler.Start(ctx)
	}()

	time.Sleep(50 * time.Millisecond)

	cancel()
	require.NoError(t, scheduler.Stop())
	wg.Wait()
}

func TestScheduler_StopWithoutStart(t *testing.T) {
	scheduler := NewScheduler(nil, nil, newMockSchedulerStore())
	require.NoError(t, scheduler.Stop())
}

func TestScheduler_InitialiseTasks(t *testing.T) {
	store := newMockSchedulerStore()
	var runs atomic.Int32
	scheduler := NewScheduler(
		map[string]time.Duration{
			domain.TaskIDAppCatalog: 30 * time.Minute,
			domain.TaskIDFileIndex:  time.Hour,
		},
		map[string]RefreshFunc{domain.TaskIDAppCatalog: countingJob(&runs, nil)},
		store,
	)
	ctx := context.Background()

	require.NoError(t, scheduler.initialiseTasks(ctx))

	task, err := store.GetTask(ctx, domain.TaskIDAppCatalog)
	require.NoError(t, err)
	require.NotNil(t, task)
	assert.Equal(t, "Application Catalog Refresh", task.Name)
	assert.True(t, task.Enabled)
	assert.Equal(t, 30*time.Minute, task.Interval)

	// Tasks without a job are not stored
	task, err = store.GetTask(ctx, domain.TaskIDFileIndex)
	require.NoError(t, err)
	assert.Nil(t, task)
}

func TestScheduler_EnsureTask_UpdateInterval(t *testing.T) {
	store := newMockSchedulerStore()
	scheduler := NewScheduler(nil, nil, store)
	ctx := context.Background()

	require.NoError(t, scheduler.ensureTask(ctx, "test-task", time.Hour))
	require.NoError(t, scheduler.ensureTask(ctx, "test-task", 2*time.Hour))

	task, err := store.GetTask(ctx, "test-task")
	require.NoError(t, err)
	assert.Equal(t, 2*time.Hour, task.Interval)
	assert.Equal(t, "test-task", task.Name)
}

func TestScheduler_CheckAndRunDueTasks(t *testing.T) {
	store := newMockSchedulerStore()
	var runs atomic.Int32
	scheduler := NewScheduler(
		map[string]time.Duration{domain.TaskIDShortcuts: time.Hour},
		map[string]RefreshFunc{domain.TaskIDShortcuts: countingJob(&runs, nil)},
		store,
	)
	ctx := context.Background()

	require.NoError(t, store.SaveTask(ctx, &domain.RefreshTask{
		ID:       domain.TaskIDShortcuts,
		Interval: time.Hour,
		NextRun:  time.Now().Add(-time.Minute),
		Enabled:  true,
	}))

	scheduler.checkAndRunDueTasks(ctx)
	scheduler.wg.Wait()

	assert.Equal(t, int32(1), runs.Load())

	task, err := store.GetTask(ctx, domain.TaskIDShortcuts)
	require.NoError(t, err)
	assert.True(t, task.NextRun.After(time.Now().Add(50*time.Minute)))
	assert.Empty(t, task.LastError)

	history, err := store.GetTaskHistory(ctx, domain.TaskIDShortcuts, 10)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.True(t, history[0].Success)
	assert.Equal(t, 7, history[0].ItemsRefreshed)

	// Not due any more
	scheduler.checkAndRunDueTasks(ctx)
	scheduler.wg.Wait()
	assert.Equal(t, int32(1), runs.Load())
}

func TestScheduler_RunNow(t *testing.T) {
	store := newMockSchedulerStore()
	var runs atomic.Int32
	scheduler := NewScheduler(
		map[string]time.Duration{domain.TaskIDFileIndex: time.Hour},
		map[string]RefreshFunc{domain.TaskIDFileIndex: countingJob(&runs, errors.New("disk full"))},
		store,
	)
	ctx := context.Background()

	result, err := scheduler.RunNow(ctx, domain.TaskIDFileIndex)
	require.NoError(t, err)
	assert.False(t, result.Success)
	assert.Equal(t, "disk full", result.Error)
	assert.Equal(t, int32(1), runs.Load())

	task, err := store.GetTask(ctx, domain.TaskIDFileIndex)
	require.NoError(t, err)
	assert.Equal(t, "disk full", task.LastError)

	_, err = scheduler.RunNow(ctx, "unknown-task")
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestScheduler_ListFailureIsTolerated(t *testing.T) {
	store := newMockSchedulerStore()
	store.listErr = errors.New("locked")
	var runs atomic.Int32
	scheduler := NewScheduler(nil, map[string]RefreshFunc{"x": countingJob(&runs, nil)}, store)

	scheduler.checkAndRunDueTasks(context.Background())
	scheduler.wg.Wait()
	assert.Equal(t, int32(0), runs.Load())
}
