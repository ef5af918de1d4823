package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/launchpad/internal/core/domain"
)

func TestSchedulerStore_Tasks(t *testing.T) {
	store := NewSchedulerStore()
	ctx := context.Background()

	task, err := store.GetTask(ctx, domain.TaskIDAppCatalog)
	require.NoError(t, err)
	assert.Nil(t, task)

	require.NoError(t, store.SaveTask(ctx, &domain.RefreshTask{ID: domain.TaskIDShortcuts, Interval: time.Hour}))
	require.NoError(t, store.SaveTask(ctx, &domain.RefreshTask{ID: domain.TaskIDAppCatalog, Interval: time.Minute}))
	assert.ErrorIs(t, store.SaveTask(ctx, nil), domain.ErrInvalidInput)

	tasks, err := store.ListTasks(ctx)
	require.NoError(t, err)
	require.Len(t, tasks, 2)
	assert.Equal(t, domain.TaskIDAppCatalog, tasks[0].ID)

	// Returned tasks are copies
	got, err := store.GetTask(ctx, domain.TaskIDAppCatalog)
	require.NoError(t, err)
	got.Interval = 0
	again, err := store.GetTask(ctx, domain.TaskIDAppCatalog)
	require.NoError(t, err)
	assert.Equal(t, time.Minute, again.Interval)
}

func TestSchedulerStore_History(t *testing.T) {
	store := NewSchedulerStore()
	ctx := context.Background()

	for i := 1; i <= 5; i++ {
		require.NoError(t, store.RecordResult(ctx, &domain.RefreshResult{TaskID: "t", ItemsRefreshed: i}))
	}
	assert.ErrorIs(t, store.RecordResult(ctx, nil), domain.ErrInvalidInput)

	history, err := store.GetTaskHistory(ctx, "t", 2)
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, 5, history[0].ItemsRefreshed)
	assert.Equal(t, 4, history[1].ItemsRefreshed)

	require.NoError(t, store.PruneHistory(ctx, 3))
	history, err = store.GetTaskHistory(ctx, "t", 10)
	require.NoError(t, err)
	require.Len(t, history, 3)
	assert.Equal(t, 3, history[2].ItemsRefreshed)
}
