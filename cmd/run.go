package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newRunCmd() *cobra.Command {
	var showOutput bool
	cmd := &cobra.Command{
		Use:   "run <task-id>",
		Short: "Run one maintenance task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m := newManager(cmd.Context())
			defer m.Close()
			result, err := m.Run(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if result.Success {
				fmt.Printf("%s succeeded in %.1fs\n", result.TaskID, result.Duration)
			} else {
				fmt.Printf("%s failed in %.1fs: %s\n", result.TaskID, result.Duration, result.Error)
			}
			if showOutput {
				fmt.Print(result.Output)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&showOutput, "output", false, "print captured command output")
	return cmd
}

func newCleanupCmd() *cobra.Command {
	var showInfo bool
	cmd := &cobra.Command{
		Use:   "cleanup",
		Short: "Run the automated cleanup sweep (one privilege prompt)",
		RunE: func(cmd *cobra.Command, args []string) error {
			m := newManager(cmd.Context())
			defer m.Close()

			if showInfo {
				info := m.GetSystemCleanupInfo(cmd.Context())
				fmt.Printf("package cache: %d bytes\n", info.PackageCacheSize)
				fmt.Printf("temp files:    %d bytes\n", info.TempFilesSize)
				fmt.Printf("log files:     %d bytes\n", info.LogFilesSize)
				fmt.Printf("browser cache: %d bytes\n", info.BrowserCacheSize)
				fmt.Printf("total:         %d bytes\n", info.TotalCleanupSize)
				return nil
			}

			results := m.RunAutomatedCleanup(cmd.Context())
			succeeded := 0
			for _, r := range results {
				if r.Success {
					succeeded++
				} else {
					fmt.Printf("%s failed: %s\n", r.TaskID, r.Error)
				}
			}
			fmt.Printf("cleanup finished: %d/%d tasks succeeded\n", succeeded, len(results))
			return nil
		},
	}
	cmd.Flags().BoolVar(&showInfo, "info", false, "show reclaimable sizes instead of running")
	return cmd
}
