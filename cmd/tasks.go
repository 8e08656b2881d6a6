package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	maintagent "github.com/system-companion/maintagent"
)

func newTasksCmd() *cobra.Command {
	var category string
	var pendingOnly bool
	cmd := &cobra.Command{
		Use:   "tasks",
		Short: "List the maintenance task catalog",
		RunE: func(cmd *cobra.Command, args []string) error {
			m := newManager(cmd.Context())
			defer m.Close()

			var tasks []maintagent.MaintenanceTask
			switch {
			case pendingOnly:
				tasks = m.GetPendingTasks()
			case category != "":
				tasks = m.GetTasksByCategory(category)
			default:
				tasks = m.GetAllTasks()
			}

			for _, task := range tasks {
				lastRun := "never"
				if task.LastRun != nil {
					lastRun = task.LastRun.Format(time.RFC3339)
				}
				sudo := ""
				if task.RequiresSudo {
					sudo = " [sudo]"
				}
				fmt.Printf("%-22s %-20s %-8s %-12s last run: %s%s\n",
					task.ID, task.Category, task.Priority, task.EstimatedDuration, lastRun, sudo)
			}

			if m.IsSmartctlNotFound() {
				fmt.Println("warning: smartctl is not installed, disk health checks unavailable")
			}
			if m.HasNoSupportedFirmwareDevices() {
				fmt.Println("note: no firmware-updatable hardware detected on last check")
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&category, "category", "", "filter by category label")
	cmd.Flags().BoolVar(&pendingOnly, "pending", false, "only show pending tasks")
	return cmd
}

func newScanCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "scan",
		Short: "Rescan storage devices and print capability flags",
		RunE: func(cmd *cobra.Command, args []string) error {
			m := newManager(cmd.Context())
			defer m.Close()
			m.ScanStorageDevices(cmd.Context())
			fmt.Printf("sata devices: %v\n", m.HasSata())
			fmt.Printf("nvme devices: %v\n", m.HasNvme())
			fmt.Printf("smartctl missing: %v\n", m.IsSmartctlNotFound())
			fmt.Printf("no smart devices: %v\n", m.NoSmartDevices())
			fmt.Printf("no supported firmware hardware: %v\n", m.HasNoSupportedFirmwareDevices())
			return nil
		},
	}
}
