package driven

import (
	"context"

	"github.com/custodia-labs/launchpad/internal/core/domain"
)

// SchedulerStore persists refresh task state across restarts.
type SchedulerStore interface {
	// GetTask retrieves a refresh task by ID.
	// Returns nil and no error if the task does not exist.
	GetTask(ctx context.Context, taskID string) (*domain.RefreshTask, error)

	// ListTasks returns all refresh tasks.
	ListTasks(ctx context.Context) ([]domain.RefreshTask, error)

	// SaveTask creates or updates a task based on ID.
	SaveTask(ctx context.Context, task *domain.RefreshTask) error

	// RecordResult logs a task execution result.
	RecordResult(ctx context.Context, result *domain.RefreshResult) error

	// GetTaskHistory returns recent results for a task, most recent first.
	GetTaskHistory(ctx context.Context, taskID string, limit int) ([]domain.RefreshResult, error)

	// PruneHistory keeps the most recent 'keep' results per task.
	PruneHistory(ctx context.Context, keep int) error
}
