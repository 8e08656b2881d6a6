package maintagent

import (
	"context"
	"testing"

	pkgerrors "github.com/pkg/errors"
)

func TestScanStorageDevicesSetsFlags(t *testing.T) {
	env := newTestEnv(t)
	env.sata.devices = []string{"/dev/sda"}
	env.nvme.devices = nil
	m := env.manager(t)

	m.ScanStorageDevices(context.Background())
	if !m.HasSata() {
		t.Fatalf("sata flag should be set")
	}
	if m.HasNvme() {
		t.Fatalf("nvme flag should be false")
	}
}

func TestScanFailureIsolatedPerClass(t *testing.T) {
	env := newTestEnv(t)
	env.sata.err = pkgerrors.New("smartctl: not found")
	env.nvme.devices = []string{"/dev/nvme0n1"}
	m := env.manager(t)

	m.ScanStorageDevices(context.Background())
	if m.HasSata() {
		t.Fatalf("failed class should default to absent")
	}
	if !m.HasNvme() {
		t.Fatalf("one class failing must not block the other")
	}
}

func TestInitialScanRunsAtConstruction(t *testing.T) {
	env := newTestEnv(t)
	env.options.SkipInitialScan = false
	env.nvme.devices = []string{"/dev/nvme0n1"}
	m := env.manager(t)

	if env.sata.calls == 0 || env.nvme.calls == 0 {
		t.Fatalf("construction should probe both classes, got sata=%d nvme=%d", env.sata.calls, env.nvme.calls)
	}
	if !m.HasNvme() {
		t.Fatalf("nvme flag should be set by the initial scan")
	}
}
