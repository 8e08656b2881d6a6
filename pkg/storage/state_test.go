package storage

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestStateStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	store := NewStateStore(path)

	ranAt := time.Now().Truncate(time.Second)
	state := NewCapabilityState()
	state.LastRun["update_packages"] = &ranAt
	state.LastRun["clean_logs"] = nil
	state.HasSataDevices = true
	state.SmartctlNotFound = true
	store.Save(state)

	loaded := NewStateStore(path).Load()
	if !loaded.HasSataDevices || !loaded.SmartctlNotFound {
		t.Fatalf("flags lost in round trip: %+v", loaded)
	}
	if loaded.HasNvmeDevices || loaded.FirmwareNoSupportedHardware || loaded.NoSmartDevicesFound {
		t.Fatalf("unset flags should stay false: %+v", loaded)
	}
	got := loaded.LastRun["update_packages"]
	if got == nil || !got.Equal(ranAt) {
		t.Fatalf("last_run mismatch: want %v got %v", ranAt, got)
	}
	if ts, ok := loaded.LastRun["clean_logs"]; !ok || ts != nil {
		t.Fatalf("null last_run should survive as nil, got %v (present=%v)", ts, ok)
	}
}

func TestStateStoreMissingFile(t *testing.T) {
	store := NewStateStore(filepath.Join(t.TempDir(), "absent.json"))
	state := store.Load()
	if len(state.LastRun) != 0 || state.HasSataDevices || state.HasNvmeDevices {
		t.Fatalf("missing file should load as empty state: %+v", state)
	}
}

func TestStateStoreCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	if err := os.WriteFile(path, []byte("{\"last_run\": nonsense"), 0o644); err != nil {
		t.Fatalf("seed corrupt file: %v", err)
	}
	state := NewStateStore(path).Load()
	if len(state.LastRun) != 0 || state.HasSataDevices {
		t.Fatalf("corrupt file should load as empty state: %+v", state)
	}
}

func TestStateStoreMalformedTimestampDiscarded(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	payload := `{"last_run":{"good":"2026-01-02T03:04:05Z","bad":"yesterday"},"has_sata_devices":true}`
	if err := os.WriteFile(path, []byte(payload), 0o644); err != nil {
		t.Fatalf("seed file: %v", err)
	}
	state := NewStateStore(path).Load()
	if !state.HasSataDevices {
		t.Fatalf("valid fields should still load")
	}
	if state.LastRun["good"] == nil {
		t.Fatalf("valid timestamp discarded")
	}
	if _, ok := state.LastRun["bad"]; ok {
		t.Fatalf("malformed timestamp should be dropped, got %v", state.LastRun["bad"])
	}
}

func TestStateStoreCreatesDirectories(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "deeper", "state.json")
	store := NewStateStore(path)
	store.Save(NewCapabilityState())
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("state file not created: %v", err)
	}
}

func TestWriteFileAtomicLeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "state.json")
	if err := writeFileAtomic(path, []byte(`{"a":1}`)); err != nil {
		t.Fatalf("writeFileAtomic: %v", err)
	}
	if err := writeFileAtomic(path, []byte(`{"a":2}`)); err != nil {
		t.Fatalf("writeFileAtomic overwrite: %v", err)
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("read dir: %v", err)
	}
	for _, entry := range entries {
		if strings.Contains(entry.Name(), ".tmp-") {
			t.Fatalf("temp file left behind: %s", entry.Name())
		}
	}
	data, err := os.ReadFile(path)
	if err != nil || string(data) != `{"a":2}` {
		t.Fatalf("unexpected content %q (err=%v)", data, err)
	}
}
