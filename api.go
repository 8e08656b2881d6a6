package maintagent

import (
	"time"

	pkgerrors "github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

const defaultHistoryQueryLimit = 50

// GetAllTasks returns a snapshot of every task in registration order.
func (m *Manager) GetAllTasks() []MaintenanceTask {
	m.mu.Lock()
	defer m.mu.Unlock()
	tasks := make([]MaintenanceTask, 0, len(m.order))
	for _, taskID := range m.order {
		tasks = append(tasks, *m.tasks[taskID])
	}
	return tasks
}

// GetTasksByCategory returns tasks matching the category label.
func (m *Manager) GetTasksByCategory(category string) []MaintenanceTask {
	return m.filterTasks(func(t *MaintenanceTask) bool { return t.Category == category })
}

// GetTasksByPriority returns tasks matching the priority.
func (m *Manager) GetTasksByPriority(priority TaskPriority) []MaintenanceTask {
	return m.filterTasks(func(t *MaintenanceTask) bool { return t.Priority == priority })
}

// GetPendingTasks returns tasks still in the pending state.
func (m *Manager) GetPendingTasks() []MaintenanceTask {
	return m.filterTasks(func(t *MaintenanceTask) bool { return t.Status == StatusPending })
}

func (m *Manager) filterTasks(keep func(*MaintenanceTask) bool) []MaintenanceTask {
	m.mu.Lock()
	defer m.mu.Unlock()
	var tasks []MaintenanceTask
	for _, taskID := range m.order {
		if task := m.tasks[taskID]; keep(task) {
			tasks = append(tasks, *task)
		}
	}
	return tasks
}

// GetTaskHistory returns the most recent limit history entries, oldest
// first. A non-positive limit defaults to 50.
func (m *Manager) GetTaskHistory(limit int) []ExecutionResult {
	m.mu.Lock()
	defer m.mu.Unlock()
	if limit <= 0 {
		limit = defaultHistoryQueryLimit
	}
	history := m.history
	if len(history) > limit {
		history = history[len(history)-limit:]
	}
	out := make([]ExecutionResult, len(history))
	copy(out, history)
	return out
}

// ClearTaskHistory drops the in-memory history and removes the backing file.
func (m *Manager) ClearTaskHistory() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.history = nil
	m.historyStore.Clear()
	log.Info().Msg("task history cleared")
}

// GetTaskStatistics summarizes registry status counts and recent history.
func (m *Manager) GetTaskStatistics() TaskStatistics {
	m.mu.Lock()
	defer m.mu.Unlock()

	stats := TaskStatistics{TotalTasks: len(m.tasks)}
	for _, task := range m.tasks {
		switch task.Status {
		case StatusCompleted:
			stats.CompletedTasks++
		case StatusFailed:
			stats.FailedTasks++
		case StatusPending:
			stats.PendingTasks++
		}
	}
	if stats.TotalTasks > 0 {
		stats.SuccessRate = float64(stats.CompletedTasks) / float64(stats.TotalTasks) * 100
	}

	recent := m.history
	if len(recent) > 10 {
		recent = recent[len(recent)-10:]
	}
	if len(recent) > 0 {
		ok := 0
		for _, r := range recent {
			if r.Success {
				ok++
			}
		}
		stats.RecentSuccessRate = float64(ok) / float64(len(recent)) * 100
	}

	for _, r := range m.history {
		if !r.Success {
			continue
		}
		if stats.LastMaintenance == nil || r.Timestamp.After(*stats.LastMaintenance) {
			ts := r.Timestamp
			stats.LastMaintenance = &ts
		}
	}
	return stats
}

// ScheduleTask records an advisory next-run time for a task. No dispatcher
// consumes it; the timestamp exists for display and future gating.
func (m *Manager) ScheduleTask(taskID string, runAt time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	task, ok := m.tasks[taskID]
	if !ok {
		return pkgerrors.Wrapf(ErrTaskNotFound, "task %q", taskID)
	}
	task.NextRun = &runAt
	task.Status = StatusPending
	log.Info().Str("task", taskID).Time("run_at", runAt).Msg("task scheduled")
	return nil
}

// CancelScheduledTask clears a task's advisory next-run time.
func (m *Manager) CancelScheduledTask(taskID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	task, ok := m.tasks[taskID]
	if !ok {
		return pkgerrors.Wrapf(ErrTaskNotFound, "task %q", taskID)
	}
	task.NextRun = nil
	log.Info().Str("task", taskID).Msg("task schedule cancelled")
	return nil
}

// HasNoSupportedFirmwareDevices reports the persisted firmware flag from
// the last firmware update attempt.
func (m *Manager) HasNoSupportedFirmwareDevices() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.flags.firmwareNoSupportedHardware
}

// IsSmartctlNotFound reports whether the last disk health check found the
// smartctl binary missing.
func (m *Manager) IsSmartctlNotFound() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.flags.smartctlNotFound
}

// NoSmartDevices reports whether the last SATA check found zero devices.
func (m *Manager) NoSmartDevices() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.flags.noSmartDevicesFound
}

// HasSata reports whether at least one SATA device was discovered.
func (m *Manager) HasSata() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.flags.hasSataDevices
}

// HasNvme reports whether at least one NVMe device was discovered.
func (m *Manager) HasNvme() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.flags.hasNvmeDevices
}
