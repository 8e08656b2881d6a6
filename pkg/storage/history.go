package storage

import (
	"encoding/json"
	"os"
	"time"

	"github.com/rs/zerolog/log"
)

// HistoryEntry is one execution outcome as persisted. Error is null when
// the execution succeeded.
type HistoryEntry struct {
	TaskID    string    `json:"task_id"`
	Success   bool      `json:"success"`
	Output    string    `json:"output"`
	Error     *string   `json:"error"`
	Duration  float64   `json:"duration"`
	Timestamp time.Time `json:"timestamp"`
}

type historyFile struct {
	History []HistoryEntry `json:"history"`
}

// HistoryStore owns the bounded execution history file. The cap applies at
// save time: in-memory history may briefly exceed it between saves.
type HistoryStore struct {
	path  string
	limit int
}

// NewHistoryStore returns a store capped to limit entries; limit <= 0
// falls back to DefaultHistoryLimit.
func NewHistoryStore(path string, limit int) *HistoryStore {
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	return &HistoryStore{path: path, limit: limit}
}

// Path returns the backing file path.
func (h *HistoryStore) Path() string { return h.path }

// Load reads the history file, degrading to an empty sequence on any
// read or parse failure.
func (h *HistoryStore) Load() []HistoryEntry {
	data, err := os.ReadFile(h.path)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Error().Err(err).Str("path", h.path).Msg("read history file failed")
		}
		return nil
	}
	var file historyFile
	if err := json.Unmarshal(data, &file); err != nil {
		log.Error().Err(err).Str("path", h.path).Msg("parse history file failed, starting fresh")
		return nil
	}
	return file.History
}

// Save overwrites the history file with the most recent entries, dropping
// anything beyond the cap. Failures are logged, never propagated.
func (h *HistoryStore) Save(entries []HistoryEntry) {
	if len(entries) > h.limit {
		entries = entries[len(entries)-h.limit:]
	}
	data, err := json.Marshal(historyFile{History: entries})
	if err != nil {
		log.Error().Err(err).Msg("marshal history failed")
		return
	}
	if err := writeFileAtomic(h.path, data); err != nil {
		log.Error().Err(err).Str("path", h.path).Msg("save history file failed")
	}
}

// Clear removes the backing file. A missing file is not an error.
func (h *HistoryStore) Clear() {
	if err := os.Remove(h.path); err != nil && !os.IsNotExist(err) {
		log.Error().Err(err).Str("path", h.path).Msg("clear history file failed")
	}
}
