// Package nvme enumerates NVMe-class block devices by parsing the tabular
// output of `nvme list`.
package nvme

import (
	"context"
	"strings"
	"time"

	pkgerrors "github.com/pkg/errors"

	maintagent "github.com/system-companion/maintagent"
)

const listTimeout = 30 * time.Second

// Provider implements maintagent.DeviceProvider using the nvme CLI.
type Provider struct {
	runner maintagent.CommandRunner
}

// New creates a Provider backed by the given command runner.
func New(runner maintagent.CommandRunner) *Provider {
	return &Provider{runner: runner}
}

// ListDevices returns the listed NVMe device paths.
func (p *Provider) ListDevices(ctx context.Context) ([]string, error) {
	res, err := p.runner.Run(ctx, "nvme list", false, listTimeout)
	if err != nil {
		return nil, pkgerrors.Wrap(err, "nvme list failed")
	}
	if res.ExitCode != 0 {
		return nil, pkgerrors.Errorf("nvme list exited %d: %s", res.ExitCode, strings.TrimSpace(res.Stderr))
	}
	return parseListOutput(res.Stdout), nil
}

// parseListOutput skips the header and separator rows and keeps the
// leading field of lines naming a /dev/nvme device.
func parseListOutput(output string) []string {
	var devices []string
	for _, line := range strings.Split(strings.TrimSpace(output), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "Node") || strings.HasPrefix(line, "-") {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) > 0 && strings.HasPrefix(fields[0], "/dev/nvme") {
			devices = append(devices, fields[0])
		}
	}
	return devices
}
