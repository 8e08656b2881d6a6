// Package maintagent implements the maintenance task orchestration engine
// behind the System Companion dashboard: a fixed catalog of system
// maintenance tasks executed as external commands (optionally under a
// privilege broker), with durable per-task state, a bounded execution
// history, and hardware capability flags gating device-dependent tasks.
//
// The engine is synchronous: every public operation blocks for the full
// duration of its external commands, and a per-manager mutex serializes
// all state-mutating operations. Callers wanting background execution run
// these operations from their own worker.
package maintagent

import (
	"context"
	"strings"
	"sync"
	"time"

	pkgerrors "github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"github.com/system-companion/maintagent/internal/config"
	"github.com/system-companion/maintagent/pkg/storage"
)

// EnvElevateCommand overrides the privilege broker prefix (default pkexec).
const EnvElevateCommand = "MAINT_ELEVATE_COMMAND"

// ErrTaskNotFound reports a task id missing from the registry.
var ErrTaskNotFound = pkgerrors.New("maintenance task not found")

// Output markers that feed capability flags after task execution.
const (
	firmwareNoSupportMarker = "0 local devices supported"
	smartctlMissingMarker   = "Command 'smartctl' not found"
)

// capabilityFlags is the in-memory copy of the persisted environmental
// facts. All mutation funnels through persistStateLocked so memory and
// durable storage never diverge.
type capabilityFlags struct {
	firmwareNoSupportedHardware bool
	smartctlNotFound            bool
	noSmartDevicesFound         bool
	hasSataDevices              bool
	hasNvmeDevices              bool
}

// Options configures a Manager. Zero-value fields get working defaults;
// device providers have no default and device-gated tasks fail without
// them.
type Options struct {
	Runner       CommandRunner
	SataProvider DeviceProvider
	NvmeProvider DeviceProvider
	StateStore   *storage.StateStore
	HistoryStore *storage.HistoryStore
	Mirror       *storage.ResultMirror
	// SkipInitialScan suppresses the construction-time device scan.
	SkipInitialScan bool
}

// Manager is the maintenance task orchestration engine.
type Manager struct {
	mu           sync.Mutex
	tasks        map[string]*MaintenanceTask
	order        []string
	history      []ExecutionResult
	flags        capabilityFlags
	runner       CommandRunner
	providers    map[DeviceClass]DeviceProvider
	stateStore   *storage.StateStore
	historyStore *storage.HistoryStore
	mirror       *storage.ResultMirror
}

// New builds the engine: registry construction, history and state
// rehydration, then an initial storage device scan. Construction never
// fails; damaged prior state degrades to empty state.
func New(ctx context.Context, opts Options) *Manager {
	if opts.Runner == nil {
		opts.Runner = NewShellRunner(config.String(EnvElevateCommand, DefaultElevateCommand))
	}
	if opts.StateStore == nil {
		opts.StateStore = storage.NewStateStore(storage.DefaultStatePath())
	}
	if opts.HistoryStore == nil {
		opts.HistoryStore = storage.NewHistoryStore(storage.DefaultHistoryPath(), storage.HistoryLimit())
	}

	tasks, order := initializeTasks()
	m := &Manager{
		tasks:        tasks,
		order:        order,
		runner:       opts.Runner,
		stateStore:   opts.StateStore,
		historyStore: opts.HistoryStore,
		mirror:       opts.Mirror,
		providers: map[DeviceClass]DeviceProvider{
			DeviceClassSATA: opts.SataProvider,
			DeviceClassNVMe: opts.NvmeProvider,
		},
	}

	for _, entry := range m.historyStore.Load() {
		m.history = append(m.history, fromHistoryEntry(entry))
	}
	state := m.stateStore.Load()
	for taskID, lastRun := range state.LastRun {
		if task, ok := m.tasks[taskID]; ok {
			task.LastRun = lastRun
		}
	}
	m.flags = capabilityFlags{
		firmwareNoSupportedHardware: state.FirmwareNoSupportedHardware,
		smartctlNotFound:            state.SmartctlNotFound,
		noSmartDevicesFound:         state.NoSmartDevicesFound,
		hasSataDevices:              state.HasSataDevices,
		hasNvmeDevices:              state.HasNvmeDevices,
	}

	if !opts.SkipInitialScan {
		m.ScanStorageDevices(ctx)
	}
	log.Info().Int("tasks", len(m.order)).Msg("maintenance manager initialized")
	return m
}

// Close releases optional resources (the SQLite mirror).
func (m *Manager) Close() error {
	return m.mirror.Close()
}

// Run executes one task by id and returns its execution result. Unknown
// ids fail with ErrTaskNotFound and mutate nothing. Every other outcome,
// including command failures and zero-devices conditions, is encoded in
// the returned result and appended to history.
func (m *Manager) Run(ctx context.Context, taskID string) (*ExecutionResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.runLocked(ctx, taskID)
}

func (m *Manager) runLocked(ctx context.Context, taskID string) (*ExecutionResult, error) {
	task, ok := m.tasks[taskID]
	if !ok {
		return nil, pkgerrors.Wrapf(ErrTaskNotFound, "task %q", taskID)
	}
	log.Info().Str("task", taskID).Str("name", task.Name).Msg("starting maintenance task")

	task.Status = StatusRunning
	now := time.Now()
	task.LastRun = &now
	m.persistStateLocked()

	start := time.Now()
	o := task.Strategy.execute(ctx, m, task)
	m.sniffCapabilityMarkersLocked(task, o)
	duration := time.Since(start).Seconds()

	if o.success {
		task.Status = StatusCompleted
		task.Result = "Success"
	} else {
		task.Status = StatusFailed
		task.Result = "Failed: " + o.errText
	}
	result := ExecutionResult{
		TaskID:    taskID,
		Success:   o.success,
		Output:    o.output,
		Error:     o.errText,
		Duration:  duration,
		Timestamp: time.Now(),
	}
	m.appendHistoryLocked(ctx, result)

	log.Info().Str("task", taskID).Bool("success", o.success).
		Float64("duration_s", duration).Msg("maintenance task finished")
	return &result, nil
}

// sniffCapabilityMarkersLocked inspects task output for environmental
// markers: firmware updates with zero supported devices, and a missing
// smartctl binary. Flags are overwritten wholesale each run so a repaired
// environment clears them.
func (m *Manager) sniffCapabilityMarkersLocked(task *MaintenanceTask, o outcome) {
	switch task.ID {
	case TaskUpdateFirmware:
		m.flags.firmwareNoSupportedHardware = strings.Contains(o.output, firmwareNoSupportMarker)
		m.persistStateLocked()
	case TaskCheckDiskHealth:
		m.flags.smartctlNotFound = strings.Contains(o.errText, smartctlMissingMarker) ||
			strings.Contains(o.output, smartctlMissingMarker)
		m.persistStateLocked()
	}
}

// recordDevicePresenceLocked updates the presence flags for one device
// class and persists them. Called by the per-device execution path with
// fresh enumeration data so the ad hoc scan and the standalone scanner
// stay consistent.
func (m *Manager) recordDevicePresenceLocked(class DeviceClass, found bool) {
	switch class {
	case DeviceClassSATA:
		m.flags.hasSataDevices = found
		m.flags.noSmartDevicesFound = !found
	case DeviceClassNVMe:
		m.flags.hasNvmeDevices = found
	}
	m.persistStateLocked()
}

func (m *Manager) enumerateDevices(ctx context.Context, class DeviceClass, timeout time.Duration) ([]string, error) {
	provider := m.providers[class]
	if provider == nil {
		return nil, pkgerrors.Errorf("no device provider configured for class %s", class)
	}
	scanCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	return provider.ListDevices(scanCtx)
}

// persistStateLocked writes the capability flags and every task's last-run
// timestamp through the state store.
func (m *Manager) persistStateLocked() {
	state := storage.CapabilityState{
		LastRun:                     make(map[string]*time.Time, len(m.tasks)),
		FirmwareNoSupportedHardware: m.flags.firmwareNoSupportedHardware,
		SmartctlNotFound:            m.flags.smartctlNotFound,
		NoSmartDevicesFound:         m.flags.noSmartDevicesFound,
		HasSataDevices:              m.flags.hasSataDevices,
		HasNvmeDevices:              m.flags.hasNvmeDevices,
	}
	for taskID, task := range m.tasks {
		state.LastRun[taskID] = task.LastRun
	}
	m.stateStore.Save(state)
}

func (m *Manager) appendHistoryLocked(ctx context.Context, result ExecutionResult) {
	m.history = append(m.history, result)
	m.saveHistoryLocked(ctx, result)
}

func (m *Manager) saveHistoryLocked(ctx context.Context, results ...ExecutionResult) {
	entries := make([]storage.HistoryEntry, 0, len(m.history))
	for _, r := range m.history {
		entries = append(entries, toHistoryEntry(r))
	}
	m.historyStore.Save(entries)
	for _, r := range results {
		if err := m.mirror.Append(ctx, toHistoryEntry(r)); err != nil {
			log.Error().Err(err).Str("task", r.TaskID).Msg("mirror result append failed")
		}
	}
}

func toHistoryEntry(r ExecutionResult) storage.HistoryEntry {
	entry := storage.HistoryEntry{
		TaskID:    r.TaskID,
		Success:   r.Success,
		Output:    r.Output,
		Duration:  r.Duration,
		Timestamp: r.Timestamp,
	}
	if r.Error != "" {
		errText := r.Error
		entry.Error = &errText
	}
	return entry
}

func fromHistoryEntry(entry storage.HistoryEntry) ExecutionResult {
	result := ExecutionResult{
		TaskID:    entry.TaskID,
		Success:   entry.Success,
		Output:    entry.Output,
		Duration:  entry.Duration,
		Timestamp: entry.Timestamp,
	}
	if entry.Error != nil {
		result.Error = *entry.Error
	}
	return result
}
