package maintagent

import "time"

// TaskStatus describes where a task sits in its lifecycle.
type TaskStatus string

const (
	StatusPending   TaskStatus = "pending"
	StatusRunning   TaskStatus = "running"
	StatusCompleted TaskStatus = "completed"
	StatusFailed    TaskStatus = "failed"
	// StatusSkipped is reachable in the model but no execution path sets it yet.
	StatusSkipped TaskStatus = "skipped"
)

// TaskPriority orders tasks from routine housekeeping to critical work.
type TaskPriority int

const (
	PriorityLow TaskPriority = iota
	PriorityMedium
	PriorityHigh
	PriorityCritical
)

func (p TaskPriority) String() string {
	switch p {
	case PriorityLow:
		return "low"
	case PriorityMedium:
		return "medium"
	case PriorityHigh:
		return "high"
	case PriorityCritical:
		return "critical"
	}
	return "unknown"
}

// Task categories used by the registry and the cleanup sweep.
const (
	CategoryPackageManagement  = "Package Management"
	CategorySystemCleanup      = "System Cleanup"
	CategoryUserCleanup        = "User Cleanup"
	CategorySystemOptimization = "System Optimization"
	CategorySystemUpdates      = "System Updates"
	CategorySystemHealth       = "System Health"
)

// Registry task ids. The registry is fixed at construction and never
// extended at runtime.
const (
	TaskUpdatePackages       = "update_packages"
	TaskCleanPackageCache    = "clean_package_cache"
	TaskCleanTempFiles       = "clean_temp_files"
	TaskCleanLogs            = "clean_logs"
	TaskCleanBrowserCache    = "clean_browser_cache"
	TaskOptimizeSwap         = "optimize_swap"
	TaskDefragmentFilesystem = "defragment_filesystem"
	TaskUpdateFirmware       = "update_firmware"
	TaskCheckDiskHealth      = "check_disk_health"
	TaskCheckNvmeHealth      = "check_nvme_health"
)

// MaintenanceTask is one catalog entry. Identity and definition fields are
// immutable after registration; Status, LastRun, NextRun and Result are
// updated by the manager and rehydrated from the state store on startup.
type MaintenanceTask struct {
	ID                string
	Name              string
	Description       string
	Category          string
	Priority          TaskPriority
	EstimatedDuration string
	Commands          []string
	RequiresSudo      bool
	Strategy          ExecutionStrategy

	Status  TaskStatus
	LastRun *time.Time
	NextRun *time.Time
	Result  string
}

// initializeTasks builds the fixed maintenance catalog. Pure construction,
// no I/O. The returned order preserves registration order for display.
func initializeTasks() (map[string]*MaintenanceTask, []string) {
	catalog := []*MaintenanceTask{
		{
			ID:                TaskUpdatePackages,
			Name:              "Update System Packages",
			Description:       "Update all system packages to their latest versions",
			Category:          CategoryPackageManagement,
			Priority:          PriorityMedium,
			EstimatedDuration: "5-15 minutes",
			Commands: []string{
				"sudo apt update",
				"sudo apt upgrade -y",
				"sudo apt autoremove -y",
			},
			RequiresSudo: true,
			Strategy:     BatchElevated{},
		},
		{
			ID:                TaskCleanPackageCache,
			Name:              "Clean Package Cache",
			Description:       "Remove old package cache files to free up disk space",
			Category:          CategoryPackageManagement,
			Priority:          PriorityLow,
			EstimatedDuration: "1-2 minutes",
			Commands: []string{
				"sudo apt autoclean",
				"sudo apt autoremove -y",
			},
			RequiresSudo: true,
			Strategy:     BatchElevated{},
		},
		{
			ID:                TaskCleanTempFiles,
			Name:              "Clean Temporary Files",
			Description:       "Remove temporary files and directories",
			Category:          CategorySystemCleanup,
			Priority:          PriorityLow,
			EstimatedDuration: "1-3 minutes",
			Commands: []string{
				"sudo rm -rf /tmp/*",
				"sudo rm -rf /var/tmp/*",
				`find /home -name "*.tmp" -delete`,
				`find /home -name "*.temp" -delete`,
			},
			RequiresSudo: true,
			Strategy:     BatchElevated{},
		},
		{
			ID:                TaskCleanLogs,
			Name:              "Clean Old Log Files",
			Description:       "Remove old log files to free up disk space",
			Category:          CategorySystemCleanup,
			Priority:          PriorityLow,
			EstimatedDuration: "1-2 minutes",
			Commands: []string{
				"sudo journalctl --vacuum-time=7d",
				`sudo find /var/log -name "*.log.*" -mtime +7 -delete`,
				`sudo find /var/log -name "*.gz" -mtime +7 -delete`,
			},
			RequiresSudo: true,
			Strategy:     BatchElevated{},
		},
		{
			ID:                TaskCleanBrowserCache,
			Name:              "Clean Browser Cache",
			Description:       "Remove browser cache files to free up disk space",
			Category:          CategoryUserCleanup,
			Priority:          PriorityLow,
			EstimatedDuration: "2-5 minutes",
			Commands: []string{
				"rm -rf ~/.cache/mozilla/firefox/*/Cache*",
				"rm -rf ~/.cache/google-chrome/Default/Cache*",
				"rm -rf ~/.cache/chromium/Default/Cache*",
				"rm -rf ~/.cache/brave/Default/Cache*",
			},
			RequiresSudo: false,
			Strategy:     FixedCommands{},
		},
		{
			ID:                TaskOptimizeSwap,
			Name:              "Optimize Swap Usage",
			Description:       "Configure swap usage for better performance",
			Category:          CategorySystemOptimization,
			Priority:          PriorityMedium,
			EstimatedDuration: "1 minute",
			Commands: []string{
				"sudo sysctl vm.swappiness=10",
				`echo "vm.swappiness=10" | sudo tee -a /etc/sysctl.conf`,
			},
			RequiresSudo: true,
			Strategy:     BatchElevated{},
		},
		{
			ID:                TaskDefragmentFilesystem,
			Name:              "Defragment Filesystem",
			Description:       "Defragment ext4 filesystem for better performance",
			Category:          CategorySystemOptimization,
			Priority:          PriorityLow,
			EstimatedDuration: "10-30 minutes",
			Commands: []string{
				"sudo e4defrag /",
				"sudo e4defrag /home",
			},
			RequiresSudo: true,
			Strategy:     BatchElevated{},
		},
		{
			ID:                TaskUpdateFirmware,
			Name:              "Update System Firmware",
			Description:       "Check for and install firmware updates",
			Category:          CategorySystemUpdates,
			Priority:          PriorityHigh,
			EstimatedDuration: "5-20 minutes",
			Commands: []string{
				"sudo fwupdmgr refresh --force",
				"sudo fwupdmgr update",
			},
			RequiresSudo: true,
			Strategy:     BatchElevated{},
		},
		{
			ID:                TaskCheckDiskHealth,
			Name:              "Check Disk Health",
			Description:       "Check disk health and SMART status",
			Category:          CategorySystemHealth,
			Priority:          PriorityMedium,
			EstimatedDuration: "2-5 minutes",
			// Placeholder; real commands are resolved per discovered device.
			Commands:     []string{"smartctl -a /dev/sda"},
			RequiresSudo: true,
			Strategy: PerDeviceDiagnostic{
				Class:   DeviceClassSATA,
				Command: "smartctl -a %s",
			},
		},
		{
			ID:                TaskCheckNvmeHealth,
			Name:              "Check NVMe Health",
			Description:       "Check NVMe SSD health and SMART status",
			Category:          CategorySystemHealth,
			Priority:          PriorityMedium,
			EstimatedDuration: "1-2 minutes",
			// Placeholder; real commands are resolved per discovered device.
			Commands:     []string{"nvme smart-log /dev/nvme0n1"},
			RequiresSudo: true,
			Strategy: PerDeviceDiagnostic{
				Class:   DeviceClassNVMe,
				Command: "nvme smart-log %s",
			},
		},
	}

	tasks := make(map[string]*MaintenanceTask, len(catalog))
	order := make([]string, 0, len(catalog))
	for _, task := range catalog {
		task.Status = StatusPending
		tasks[task.ID] = task
		order = append(order, task.ID)
	}
	return tasks, order
}
