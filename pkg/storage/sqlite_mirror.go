package storage

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	pkgerrors "github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	_ "modernc.org/sqlite"

	"github.com/system-companion/maintagent/internal/config"
)

const (
	// EnvMirrorEnabled turns the SQLite result mirror on.
	EnvMirrorEnabled = "MAINT_SQLITE_MIRROR"
	// EnvMirrorDBPath overrides the mirror database location.
	EnvMirrorDBPath = "MAINT_SQLITE_DB_PATH"

	mirrorTableName     = "maintenance_results"
	defaultMirrorDBFile = "results.sqlite"
)

const createMirrorTableSQL = `CREATE TABLE IF NOT EXISTS ` + mirrorTableName + ` (
	id TEXT PRIMARY KEY,
	task_id TEXT NOT NULL,
	success INTEGER NOT NULL,
	output TEXT,
	error TEXT,
	duration REAL NOT NULL,
	timestamp TEXT NOT NULL
)`

const insertMirrorRowSQL = `INSERT INTO ` + mirrorTableName +
	` (id, task_id, success, output, error, duration, timestamp) VALUES (?, ?, ?, ?, ?, ?, ?)`

// ResultMirror appends every execution result to a SQLite table, keeping a
// queryable record beyond the JSON history cap. It is an optional sink:
// callers treat a nil mirror as disabled.
type ResultMirror struct {
	mu sync.Mutex
	db *sql.DB
}

// OpenResultMirrorFromEnv opens the mirror when EnvMirrorEnabled is set,
// returning (nil, nil) when disabled.
func OpenResultMirrorFromEnv() (*ResultMirror, error) {
	if !config.Bool(EnvMirrorEnabled, false) {
		return nil, nil
	}
	path := config.String(EnvMirrorDBPath, filepath.Join(defaultDataDir(), defaultMirrorDBFile))
	return OpenResultMirror(path)
}

// OpenResultMirror opens (creating if needed) the mirror database at path.
func OpenResultMirror(path string) (*ResultMirror, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, pkgerrors.Wrapf(err, "create mirror db directory for %s failed", path)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, pkgerrors.Wrapf(err, "open result mirror db %s failed", path)
	}
	if _, err := db.Exec(createMirrorTableSQL); err != nil {
		db.Close()
		return nil, pkgerrors.Wrap(err, "create result mirror table failed")
	}
	log.Debug().Str("path", path).Msg("result mirror opened")
	return &ResultMirror{db: db}, nil
}

// Append inserts one entry. Safe on a nil mirror.
func (m *ResultMirror) Append(ctx context.Context, entry HistoryEntry) error {
	if m == nil {
		return nil
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	success := 0
	if entry.Success {
		success = 1
	}
	var errText any
	if entry.Error != nil {
		errText = *entry.Error
	}
	_, err := m.db.ExecContext(ctx, insertMirrorRowSQL,
		uuid.NewString(),
		entry.TaskID,
		success,
		entry.Output,
		errText,
		entry.Duration,
		entry.Timestamp.Format(time.RFC3339),
	)
	return pkgerrors.Wrap(err, "insert result mirror row failed")
}

// Close releases the database handle. Safe on a nil mirror.
func (m *ResultMirror) Close() error {
	if m == nil {
		return nil
	}
	return m.db.Close()
}
