package maintagent

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
	"time"

	pkgerrors "github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

// DefaultElevateCommand is the privilege broker used when none is configured.
// pkexec prompts through the desktop session, at most once per invocation.
const DefaultElevateCommand = "pkexec"

// CommandOutput carries the captured outcome of one external command.
type CommandOutput struct {
	ExitCode int
	Stdout   string
	Stderr   string
}

// CommandRunner executes a single command line, optionally elevated, bounded
// by a timeout. A non-zero exit is reported through ExitCode with a nil
// error; a non-nil error means the command could not run to completion
// (failed to start, or hit its deadline).
type CommandRunner interface {
	Run(ctx context.Context, command string, elevated bool, timeout time.Duration) (CommandOutput, error)
}

// shellRunner runs commands through `bash -c`, prefixing the configured
// elevation broker for elevated invocations.
type shellRunner struct {
	elevate string
}

// NewShellRunner returns the default CommandRunner. An empty elevate falls
// back to DefaultElevateCommand.
func NewShellRunner(elevate string) CommandRunner {
	if elevate == "" {
		elevate = DefaultElevateCommand
	}
	return &shellRunner{elevate: elevate}
}

func (r *shellRunner) Run(ctx context.Context, command string, elevated bool, timeout time.Duration) (CommandOutput, error) {
	if elevated {
		command = r.elevate + " " + command
	}
	runCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	log.Debug().Str("command", command).Dur("timeout", timeout).Msg("executing command")
	cmd := exec.CommandContext(runCtx, "bash", "-c", command)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	out := CommandOutput{Stdout: stdout.String(), Stderr: stderr.String()}
	if err == nil {
		return out, nil
	}
	if runCtx.Err() == context.DeadlineExceeded {
		return out, pkgerrors.Wrapf(context.DeadlineExceeded, "command timed out: %s", command)
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		out.ExitCode = exitErr.ExitCode()
		return out, nil
	}
	return out, pkgerrors.Wrapf(err, "command failed to start: %s", command)
}

// IsTimeout reports whether err came from a command exceeding its bound.
func IsTimeout(err error) bool {
	return errors.Is(err, context.DeadlineExceeded)
}
