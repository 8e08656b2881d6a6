// Package storage persists the maintenance engine's durable surfaces: the
// capability/last-run state file, the bounded execution history, and an
// optional SQLite mirror of execution results.
//
// The JSON stores are deliberately forgiving: a missing or corrupt file
// loads as empty state, and a failed save is logged without propagating,
// so persistence trouble never blocks task execution.
package storage

import (
	"os"
	"path/filepath"

	"github.com/system-companion/maintagent/internal/config"
)

const (
	// EnvStateFile overrides the capability/last-run state file path.
	EnvStateFile = "MAINT_STATE_FILE"
	// EnvHistoryFile overrides the execution history file path.
	EnvHistoryFile = "MAINT_HISTORY_FILE"
	// EnvHistoryLimit overrides the persisted history cap.
	EnvHistoryLimit = "MAINT_HISTORY_LIMIT"

	defaultDataDirName  = "system-companion"
	defaultStateFile    = "maintenance_state.json"
	defaultHistoryFile  = "maintenance_history.json"
	DefaultHistoryLimit = 100
)

func defaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", defaultDataDirName)
	}
	return filepath.Join(home, ".local", "share", defaultDataDirName)
}

// DefaultStatePath resolves the state file location, honoring EnvStateFile.
func DefaultStatePath() string {
	return config.String(EnvStateFile, filepath.Join(defaultDataDir(), defaultStateFile))
}

// DefaultHistoryPath resolves the history file location, honoring EnvHistoryFile.
func DefaultHistoryPath() string {
	return config.String(EnvHistoryFile, filepath.Join(defaultDataDir(), defaultHistoryFile))
}

// HistoryLimit resolves the persisted history cap, honoring EnvHistoryLimit.
func HistoryLimit() int {
	limit := config.Int(EnvHistoryLimit, DefaultHistoryLimit)
	if limit <= 0 {
		return DefaultHistoryLimit
	}
	return limit
}
