package domain

import "time"

// RefreshTask is a recurring catalog or index refresh.
type RefreshTask struct {
	// ID is the unique identifier for the task.
	ID string

	// Name is a human-readable name for the task.
	Name string

	// Interval defines how often the task should run.
	Interval time.Duration

	// LastRun is when the task last ran.
	LastRun time.Time

	// NextRun is when the task should run next.
	NextRun time.Time

	// LastError contains the last error message, if any.
	LastError string

	// LastSuccess is when the task last completed successfully.
	LastSuccess time.Time

	// Enabled indicates whether the task is active.
	Enabled bool
}

// IsDue reports whether the task should run at now.
func (t *RefreshTask) IsDue(now time.Time) bool {
	return t.Enabled && (t.NextRun.IsZero() || !t.NextRun.After(now))
}

// RefreshResult is the outcome of one task run.
type RefreshResult struct {
	// TaskID identifies which task was run.
	TaskID string

	// StartedAt is when the task started.
	StartedAt time.Time

	// EndedAt is when the task completed.
	EndedAt time.Time

	// Success indicates whether the task completed without error.
	Success bool

	// Error contains the error message if Success is false.
	Error string

	// ItemsRefreshed counts catalog entries or index rows written.
	ItemsRefreshed int
}

// Task IDs for built-in refresh tasks.
const (
	TaskIDAppCatalog = "app-catalog"
	TaskIDShortcuts  = "shortcut-catalog"
	TaskIDFileIndex  = "file-index"
)

// RefreshSchedule returns the interval of every built-in task derived from settings.
// Tasks with a zero interval are disabled.
func RefreshSchedule(s LauncherSettings) map[string]time.Duration {
	schedule := map[string]time.Duration{
		TaskIDAppCatalog: s.Applications.RefreshInterval,
		TaskIDShortcuts:  s.Applications.RefreshInterval,
	}
	if len(s.Files.Roots) > 0 {
		schedule[TaskIDFileIndex] = 6 * s.Applications.RefreshInterval
	}
	return schedule
}
