package main

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/system-companion/maintagent/internal/env"
)

var rootCmd = &cobra.Command{
	Use:   "maintagent",
	Short: "System maintenance task orchestration engine",
	Long: `maintagent runs the System Companion maintenance catalog from the command
line: package updates, cache/log/temp cleanup, swap tuning, firmware updates
and disk/NVMe health checks, batching elevated commands into a single
privilege prompt and keeping durable per-task state and history.`,
}

func init() {
	output := zerolog.ConsoleWriter{Out: os.Stderr}
	log.Logger = zerolog.New(output).With().Timestamp().Logger()
	rootCmd.AddCommand(
		newTasksCmd(),
		newRunCmd(),
		newCleanupCmd(),
		newScanCmd(),
		newHistoryCmd(),
		newStatsCmd(),
		newScheduleCmd(),
		newUnscheduleCmd(),
	)
	_ = env.Ensure()
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.Fatal().Err(err).Msg("maintagent command failed")
	}
}
