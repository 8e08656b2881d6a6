package maintagent

import (
	"context"
	"fmt"
	"os"
	"strings"

	pkgerrors "github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

// buildBatchScript renders a bash script that runs the given commands in
// order, echoing progress around each step. Embedded sudo prefixes are
// stripped since the whole script runs under one elevated session.
func buildBatchScript(commands []string) string {
	var b strings.Builder
	b.WriteString("#!/bin/bash\n")
	b.WriteString("set -e\n")
	b.WriteString("echo 'Starting maintenance commands...'\n")
	for i, command := range commands {
		clean := strings.ReplaceAll(command, "sudo ", "")
		fmt.Fprintf(&b, "echo 'Executing command %d: %s'\n", i+1, clean)
		b.WriteString(clean + "\n")
		fmt.Fprintf(&b, "echo 'Command %d completed'\n", i+1)
	}
	b.WriteString("echo 'All commands completed successfully'\n")
	return b.String()
}

// runBatchScript writes the commands to a temporary script and executes it
// once under elevation, so the whole batch costs a single credential
// prompt. A non-nil setupErr means the elevated session could not be
// started at all, as opposed to the script exiting non-zero.
func runBatchScript(ctx context.Context, runner CommandRunner, commands []string) (ok bool, output, errText string, setupErr error) {
	script, err := os.CreateTemp("", "maintagent-batch-*.sh")
	if err != nil {
		return false, "", "", pkgerrors.Wrap(err, "create batch script failed")
	}
	path := script.Name()
	defer func() {
		if err := os.Remove(path); err != nil {
			log.Debug().Err(err).Str("script", path).Msg("remove batch script failed")
		}
	}()

	if _, err := script.WriteString(buildBatchScript(commands)); err != nil {
		script.Close()
		return false, "", "", pkgerrors.Wrap(err, "write batch script failed")
	}
	if err := script.Close(); err != nil {
		return false, "", "", pkgerrors.Wrap(err, "close batch script failed")
	}
	if err := os.Chmod(path, 0o755); err != nil {
		return false, "", "", pkgerrors.Wrap(err, "chmod batch script failed")
	}

	log.Info().Str("script", path).Int("commands", len(commands)).Msg("running elevated batch script")
	res, err := runner.Run(ctx, path, true, batchScriptTimeout)
	if err != nil {
		if IsTimeout(err) {
			return false, "", err.Error(), nil
		}
		return false, "", "", err
	}
	if res.ExitCode != 0 {
		return false, res.Stdout, res.Stderr, nil
	}
	return true, res.Stdout, "", nil
}
