package maintagent

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

// Command timeouts, by branch. A timed-out command is treated like a
// non-zero exit: the task fails and the error names the command.
const (
	commandTimeout       = 5 * time.Minute  // per individual command
	batchScriptTimeout   = 10 * time.Minute // elevated batch script
	deviceCommandTimeout = time.Minute      // per device diagnostic
	runScanTimeout       = 30 * time.Second // device enumeration inside Run
	probeTimeout         = 10 * time.Second // device enumeration in the scanner
)

// DeviceClass is a category of storage hardware requiring its own
// diagnostic tool and device-path convention.
type DeviceClass string

const (
	DeviceClassSATA DeviceClass = "sata"
	DeviceClassNVMe DeviceClass = "nvme"
)

// DeviceProvider lists block devices of one class.
type DeviceProvider interface {
	ListDevices(ctx context.Context) ([]string, error)
}

// outcome accumulates the result of one strategy execution.
type outcome struct {
	success bool
	output  string
	errText string
}

// ExecutionStrategy decides how a task's command list is turned into
// external invocations. The registry assigns one per task; the manager
// never branches on task ids.
type ExecutionStrategy interface {
	execute(ctx context.Context, m *Manager, task *MaintenanceTask) outcome
}

// FixedCommands runs each command individually, rewriting elevated
// commands to carry the elevation broker. A failing or timed-out command
// marks the task failed but later commands still run.
type FixedCommands struct{}

func (FixedCommands) execute(ctx context.Context, m *Manager, task *MaintenanceTask) outcome {
	o := outcome{success: true}
	for _, command := range task.Commands {
		run := command
		if task.RequiresSudo {
			// The runner prepends the broker itself, so drop any
			// embedded sudo prefix before handing the command over.
			run = strings.TrimPrefix(run, "sudo ")
		}
		res, err := m.runner.Run(ctx, run, task.RequiresSudo, commandTimeout)
		switch {
		case err != nil:
			o.success = false
			o.errText = err.Error()
			o.output += fmt.Sprintf("Command: %s\nError: %s\n", run, err.Error())
		case res.ExitCode != 0:
			o.success = false
			o.errText = fmt.Sprintf("command failed: %s", res.Stderr)
			o.output += fmt.Sprintf("Command: %s\nError: %s\n", run, res.Stderr)
		default:
			o.output += fmt.Sprintf("Command: %s\nOutput: %s\n", run, res.Stdout)
		}
	}
	return o
}

// BatchElevated concatenates all steps into one temporary script and runs
// it under a single elevated session, trading one credential prompt for
// per-step result granularity.
type BatchElevated struct{}

func (BatchElevated) execute(ctx context.Context, m *Manager, task *MaintenanceTask) outcome {
	ok, output, errText, setupErr := runBatchScript(ctx, m.runner, task.Commands)
	if setupErr != nil {
		return outcome{success: false, errText: setupErr.Error()}
	}
	return outcome{success: ok, output: output, errText: errText}
}

// PerDeviceDiagnostic enumerates the device class at execution time and
// runs one elevated diagnostic per discovered device. Zero discovered
// devices fails the task and records the class's capability flags.
type PerDeviceDiagnostic struct {
	Class DeviceClass
	// Command is a template with a %s placeholder for the device path,
	// e.g. "smartctl -a %s".
	Command string
}

func (s PerDeviceDiagnostic) execute(ctx context.Context, m *Manager, task *MaintenanceTask) outcome {
	devices, err := m.enumerateDevices(ctx, s.Class, runScanTimeout)
	if err != nil {
		return outcome{success: false, errText: err.Error()}
	}

	m.recordDevicePresenceLocked(s.Class, len(devices) > 0)
	if len(devices) == 0 {
		return outcome{success: false, errText: s.noDevicesMessage()}
	}

	o := outcome{success: true}
	for _, dev := range devices {
		command := fmt.Sprintf(s.Command, dev)
		log.Debug().Str("device", dev).Str("command", command).Msg("running device diagnostic")
		res, err := m.runner.Run(ctx, command, true, deviceCommandTimeout)
		if err != nil {
			o.success = false
			o.errText = err.Error()
			o.output += fmt.Sprintf("Device: %s\nError: %s\n", dev, err.Error())
			continue
		}
		o.output += fmt.Sprintf("Device: %s\n%s\n", dev, res.Stdout)
		if res.ExitCode != 0 {
			o.success = false
			o.errText = res.Stderr
		}
	}
	return o
}

func (s PerDeviceDiagnostic) noDevicesMessage() string {
	if s.Class == DeviceClassNVMe {
		return "No NVMe devices found for health check."
	}
	return "No supported disks found for SMART health check."
}
