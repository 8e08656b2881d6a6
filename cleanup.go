package maintagent

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
)

// cleanupCategories are the task categories eligible for the automated
// sweep. High and critical priority tasks (firmware, disk health) are
// never swept automatically.
var cleanupCategories = map[string]bool{
	CategoryPackageManagement: true,
	CategorySystemCleanup:     true,
	CategoryUserCleanup:       true,
}

// RunAutomatedCleanup runs every low-risk cleanup task. Tasks requiring
// elevation are concatenated into a single elevated batch session so the
// whole sweep costs one credential prompt; the batch outcome is fanned out
// into one result per task with zero duration, since only aggregate timing
// exists. Non-elevated tasks run individually through the normal path with
// continue-on-error semantics.
func (m *Manager) RunAutomatedCleanup(ctx context.Context) []ExecutionResult {
	m.mu.Lock()
	defer m.mu.Unlock()
	log.Info().Msg("starting automated cleanup")

	var sudoTasks, plainTasks []*MaintenanceTask
	for _, taskID := range m.order {
		task := m.tasks[taskID]
		if !cleanupCategories[task.Category] {
			continue
		}
		if task.Priority != PriorityLow && task.Priority != PriorityMedium {
			continue
		}
		if task.RequiresSudo {
			sudoTasks = append(sudoTasks, task)
		} else {
			plainTasks = append(plainTasks, task)
		}
	}

	var results []ExecutionResult
	if len(sudoTasks) > 0 {
		results = append(results, m.runSudoBatchLocked(ctx, sudoTasks)...)
	}
	for _, task := range plainTasks {
		result, err := m.runLocked(ctx, task.ID)
		if err != nil {
			log.Error().Err(err).Str("task", task.ID).Msg("automated cleanup task failed to run")
			continue
		}
		if !result.Success {
			log.Warn().Str("task", task.ID).Str("error", result.Error).Msg("automated cleanup task failed")
		}
		results = append(results, *result)
	}

	log.Info().Int("executed", len(results)).Msg("automated cleanup completed")
	return results
}

// runSudoBatchLocked executes all elevated cleanup tasks in one batch
// session and fans the aggregate outcome out per task. A session that
// cannot start at all marks every task failed with the setup error.
func (m *Manager) runSudoBatchLocked(ctx context.Context, tasks []*MaintenanceTask) []ExecutionResult {
	var commands []string
	for _, task := range tasks {
		commands = append(commands, task.Commands...)
	}
	log.Info().Int("tasks", len(tasks)).Msg("running elevated cleanup tasks in single batch")

	ok, output, errText, setupErr := runBatchScript(ctx, m.runner, commands)
	if setupErr != nil {
		log.Error().Err(setupErr).Msg("elevated batch session failed to start")
		ok, output, errText = false, "", setupErr.Error()
	}

	results := make([]ExecutionResult, 0, len(tasks))
	for _, task := range tasks {
		if ok {
			task.Status = StatusCompleted
			task.Result = "Success"
		} else {
			task.Status = StatusFailed
			task.Result = "Failed: " + errText
			log.Warn().Str("task", task.ID).Str("error", errText).Msg("automated cleanup task failed")
		}
		results = append(results, ExecutionResult{
			TaskID:    task.ID,
			Success:   ok,
			Output:    output,
			Error:     errText,
			Duration:  0, // only aggregate timing exists for the batch
			Timestamp: time.Now(),
		})
	}
	return results
}
