package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

func newHistoryCmd() *cobra.Command {
	var limit int
	var clear bool
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show or clear the execution history",
		RunE: func(cmd *cobra.Command, args []string) error {
			m := newManager(cmd.Context())
			defer m.Close()
			if clear {
				m.ClearTaskHistory()
				fmt.Println("history cleared")
				return nil
			}
			for _, r := range m.GetTaskHistory(limit) {
				status := "ok"
				if !r.Success {
					status = "failed: " + r.Error
				}
				fmt.Printf("%s %-22s %.1fs %s\n",
					r.Timestamp.Format(time.RFC3339), r.TaskID, r.Duration, status)
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 50, "maximum entries to show")
	cmd.Flags().BoolVar(&clear, "clear", false, "clear history instead of showing it")
	return cmd
}

func newStatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show maintenance task statistics",
		RunE: func(cmd *cobra.Command, args []string) error {
			m := newManager(cmd.Context())
			defer m.Close()
			stats := m.GetTaskStatistics()
			fmt.Printf("tasks: %d total, %d completed, %d failed, %d pending\n",
				stats.TotalTasks, stats.CompletedTasks, stats.FailedTasks, stats.PendingTasks)
			fmt.Printf("success rate: %.0f%% (recent: %.0f%%)\n",
				stats.SuccessRate, stats.RecentSuccessRate)
			if stats.LastMaintenance != nil {
				fmt.Printf("last successful maintenance: %s\n",
					stats.LastMaintenance.Format(time.RFC3339))
			}
			return nil
		},
	}
}
