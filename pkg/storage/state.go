package storage

import (
	"encoding/json"
	"os"
	"time"

	"github.com/rs/zerolog/log"
)

// CapabilityState is the persisted environmental state: per-task last-run
// timestamps plus the hardware/tool capability flags gating device tasks.
type CapabilityState struct {
	LastRun                     map[string]*time.Time
	FirmwareNoSupportedHardware bool
	SmartctlNotFound            bool
	NoSmartDevicesFound         bool
	HasSataDevices              bool
	HasNvmeDevices              bool
}

// NewCapabilityState returns an empty state with all flags false.
func NewCapabilityState() CapabilityState {
	return CapabilityState{LastRun: make(map[string]*time.Time)}
}

// stateFile is the on-disk JSON shape. Timestamps are RFC 3339 strings or
// null so a reader without this code can still make sense of the file.
type stateFile struct {
	LastRun                     map[string]*string `json:"last_run"`
	FirmwareNoSupportedHardware bool               `json:"firmware_no_supported_hardware"`
	SmartctlNotFound            bool               `json:"smartctl_not_found"`
	NoSmartDevicesFound         bool               `json:"no_smart_devices_found"`
	HasSataDevices              bool               `json:"has_sata_devices"`
	HasNvmeDevices              bool               `json:"has_nvme_devices"`
}

// StateStore owns the capability state file.
type StateStore struct {
	path string
}

// NewStateStore returns a store writing to path.
func NewStateStore(path string) *StateStore {
	return &StateStore{path: path}
}

// Path returns the backing file path.
func (s *StateStore) Path() string { return s.path }

// Load reads the state file. A missing or unreadable file, a parse
// failure, or a malformed timestamp all degrade to empty state: the
// engine must never fail to start because of prior-state damage.
func (s *StateStore) Load() CapabilityState {
	state := NewCapabilityState()
	data, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Error().Err(err).Str("path", s.path).Msg("read state file failed")
		}
		return state
	}
	var file stateFile
	if err := json.Unmarshal(data, &file); err != nil {
		log.Error().Err(err).Str("path", s.path).Msg("parse state file failed, starting fresh")
		return state
	}
	for taskID, raw := range file.LastRun {
		if raw == nil {
			state.LastRun[taskID] = nil
			continue
		}
		ts, err := time.Parse(time.RFC3339, *raw)
		if err != nil {
			log.Warn().Str("task", taskID).Str("value", *raw).Msg("discarding malformed last_run timestamp")
			continue
		}
		state.LastRun[taskID] = &ts
	}
	state.FirmwareNoSupportedHardware = file.FirmwareNoSupportedHardware
	state.SmartctlNotFound = file.SmartctlNotFound
	state.NoSmartDevicesFound = file.NoSmartDevicesFound
	state.HasSataDevices = file.HasSataDevices
	state.HasNvmeDevices = file.HasNvmeDevices
	return state
}

// Save overwrites the state file atomically. Failures are logged, never
// propagated: a full disk must not roll back the operation that triggered
// the save.
func (s *StateStore) Save(state CapabilityState) {
	file := stateFile{
		LastRun:                     make(map[string]*string, len(state.LastRun)),
		FirmwareNoSupportedHardware: state.FirmwareNoSupportedHardware,
		SmartctlNotFound:            state.SmartctlNotFound,
		NoSmartDevicesFound:         state.NoSmartDevicesFound,
		HasSataDevices:              state.HasSataDevices,
		HasNvmeDevices:              state.HasNvmeDevices,
	}
	for taskID, ts := range state.LastRun {
		if ts == nil {
			file.LastRun[taskID] = nil
			continue
		}
		formatted := ts.Format(time.RFC3339)
		file.LastRun[taskID] = &formatted
	}
	data, err := json.Marshal(file)
	if err != nil {
		log.Error().Err(err).Msg("marshal state failed")
		return
	}
	if err := writeFileAtomic(s.path, data); err != nil {
		log.Error().Err(err).Str("path", s.path).Msg("save state file failed")
	}
}
