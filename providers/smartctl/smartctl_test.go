package smartctl

import (
	"context"
	"testing"
	"time"

	maintagent "github.com/system-companion/maintagent"
)

type stubRunner struct {
	out maintagent.CommandOutput
	err error
}

func (s *stubRunner) Run(ctx context.Context, command string, elevated bool, timeout time.Duration) (maintagent.CommandOutput, error) {
	if elevated {
		return maintagent.CommandOutput{}, nil
	}
	return s.out, s.err
}

func TestParseScanOutput(t *testing.T) {
	output := `/dev/sda -d scsi # /dev/sda, SCSI device
/dev/sdb -d sat # /dev/sdb [SAT], ATA device
/dev/nvme0 -d nvme # /dev/nvme0, NVMe device
# comment line
`
	devices := parseScanOutput(output)
	if len(devices) != 2 {
		t.Fatalf("want 2 SATA devices, got %v", devices)
	}
	if devices[0] != "/dev/sda" || devices[1] != "/dev/sdb" {
		t.Fatalf("unexpected devices: %v", devices)
	}
}

func TestParseScanOutputEmpty(t *testing.T) {
	if devices := parseScanOutput(""); len(devices) != 0 {
		t.Fatalf("want no devices from empty output, got %v", devices)
	}
}

func TestListDevicesReportsToolFailure(t *testing.T) {
	provider := New(&stubRunner{out: maintagent.CommandOutput{ExitCode: 127, Stderr: "smartctl: command not found"}})
	if _, err := provider.ListDevices(context.Background()); err == nil {
		t.Fatalf("non-zero scan exit should surface as an error")
	}
}
