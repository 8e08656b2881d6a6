package storage

import (
	"context"
	"path/filepath"
	"testing"
	"time"
)

func TestResultMirrorAppend(t *testing.T) {
	mirror, err := OpenResultMirror(filepath.Join(t.TempDir(), "results.sqlite"))
	if err != nil {
		t.Fatalf("OpenResultMirror: %v", err)
	}
	defer mirror.Close()

	errText := "command failed: boom"
	entries := []HistoryEntry{
		{TaskID: "update_packages", Success: true, Output: "ok", Duration: 1.5, Timestamp: time.Now()},
		{TaskID: "clean_logs", Success: false, Error: &errText, Duration: 0.2, Timestamp: time.Now()},
	}
	for _, entry := range entries {
		if err := mirror.Append(context.Background(), entry); err != nil {
			t.Fatalf("Append: %v", err)
		}
	}

	var count int
	if err := mirror.db.QueryRow("SELECT COUNT(*) FROM " + mirrorTableName).Scan(&count); err != nil {
		t.Fatalf("count rows: %v", err)
	}
	if count != 2 {
		t.Fatalf("want 2 mirrored rows, got %d", count)
	}

	var gotErr *string
	if err := mirror.db.QueryRow("SELECT error FROM "+mirrorTableName+" WHERE task_id = ?", "clean_logs").Scan(&gotErr); err != nil {
		t.Fatalf("query error column: %v", err)
	}
	if gotErr == nil || *gotErr != errText {
		t.Fatalf("error column mismatch: %v", gotErr)
	}
}

func TestResultMirrorNilSafe(t *testing.T) {
	var mirror *ResultMirror
	if err := mirror.Append(context.Background(), HistoryEntry{TaskID: "x"}); err != nil {
		t.Fatalf("nil mirror Append should be a no-op, got %v", err)
	}
	if err := mirror.Close(); err != nil {
		t.Fatalf("nil mirror Close should be a no-op, got %v", err)
	}
}
