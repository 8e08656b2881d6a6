package main

import (
	"context"

	"github.com/rs/zerolog/log"

	maintagent "github.com/system-companion/maintagent"
	"github.com/system-companion/maintagent/internal/config"
	"github.com/system-companion/maintagent/pkg/storage"
	"github.com/system-companion/maintagent/providers/nvme"
	"github.com/system-companion/maintagent/providers/smartctl"
)

// newManager wires the engine with the shell runner, both device
// providers, and the optional SQLite result mirror.
func newManager(ctx context.Context) *maintagent.Manager {
	runner := maintagent.NewShellRunner(config.String(maintagent.EnvElevateCommand, maintagent.DefaultElevateCommand))
	mirror, err := storage.OpenResultMirrorFromEnv()
	if err != nil {
		log.Warn().Err(err).Msg("result mirror unavailable, continuing without it")
		mirror = nil
	}
	return maintagent.New(ctx, maintagent.Options{
		Runner:       runner,
		SataProvider: smartctl.New(runner),
		NvmeProvider: nvme.New(runner),
		Mirror:       mirror,
	})
}
