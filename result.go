package maintagent

import "time"

// ExecutionResult is one immutable record per execution attempt. Error is
// empty when the task succeeded.
type ExecutionResult struct {
	TaskID    string
	Success   bool
	Output    string
	Error     string
	Duration  float64
	Timestamp time.Time
}

// TaskStatistics summarizes the registry and recent history for display.
type TaskStatistics struct {
	TotalTasks        int
	CompletedTasks    int
	FailedTasks       int
	PendingTasks      int
	SuccessRate       float64
	RecentSuccessRate float64
	LastMaintenance   *time.Time
}
