package nvme

import "testing"

func TestParseListOutput(t *testing.T) {
	output := `Node                  SN                   Model                Namespace Usage
--------------------- -------------------- -------------------- --------- -----
/dev/nvme0n1          S123456              Samsung SSD 980      1         256 GB
/dev/nvme1n1          S654321              WD Black SN850       1         1 TB
`
	devices := parseListOutput(output)
	if len(devices) != 2 {
		t.Fatalf("want 2 NVMe devices, got %v", devices)
	}
	if devices[0] != "/dev/nvme0n1" || devices[1] != "/dev/nvme1n1" {
		t.Fatalf("unexpected devices: %v", devices)
	}
}

func TestParseListOutputSkipsHeaderOnly(t *testing.T) {
	output := `Node                  SN                   Model
--------------------- -------------------- -----
`
	if devices := parseListOutput(output); len(devices) != 0 {
		t.Fatalf("header-only output should yield no devices, got %v", devices)
	}
}
