// Package smartctl enumerates SATA-class block devices by parsing the
// output of `smartctl --scan`.
package smartctl

import (
	"context"
	"strings"
	"time"

	pkgerrors "github.com/pkg/errors"

	maintagent "github.com/system-companion/maintagent"
)

const scanTimeout = 30 * time.Second

// Provider implements maintagent.DeviceProvider using smartctl.
type Provider struct {
	runner maintagent.CommandRunner
}

// New creates a Provider backed by the given command runner.
func New(runner maintagent.CommandRunner) *Provider {
	return &Provider{runner: runner}
}

// ListDevices returns the scanned SATA device paths.
func (p *Provider) ListDevices(ctx context.Context) ([]string, error) {
	res, err := p.runner.Run(ctx, "smartctl --scan", false, scanTimeout)
	if err != nil {
		return nil, pkgerrors.Wrap(err, "smartctl scan failed")
	}
	if res.ExitCode != 0 {
		return nil, pkgerrors.Errorf("smartctl scan exited %d: %s", res.ExitCode, strings.TrimSpace(res.Stderr))
	}
	return parseScanOutput(res.Stdout), nil
}

// parseScanOutput keeps the leading field of lines naming a /dev/sd device.
func parseScanOutput(output string) []string {
	var devices []string
	for _, line := range strings.Split(strings.TrimSpace(output), "\n") {
		fields := strings.Fields(line)
		if len(fields) > 0 && strings.HasPrefix(fields[0], "/dev/sd") {
			devices = append(devices, fields[0])
		}
	}
	return devices
}
