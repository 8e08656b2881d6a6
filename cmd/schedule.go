package main

import (
	"fmt"
	"time"

	pkgerrors "github.com/pkg/errors"
	"github.com/spf13/cobra"
)

func newScheduleCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "schedule <task-id> <rfc3339-time>",
		Short: "Record an advisory next-run time for a task",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			runAt, err := time.Parse(time.RFC3339, args[1])
			if err != nil {
				return pkgerrors.Wrapf(err, "parse run time %q", args[1])
			}
			m := newManager(cmd.Context())
			defer m.Close()
			if err := m.ScheduleTask(args[0], runAt); err != nil {
				return err
			}
			fmt.Printf("%s scheduled for %s (advisory only)\n", args[0], runAt.Format(time.RFC3339))
			return nil
		},
	}
}

func newUnscheduleCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "unschedule <task-id>",
		Short: "Clear a task's advisory next-run time",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m := newManager(cmd.Context())
			defer m.Close()
			if err := m.CancelScheduledTask(args[0]); err != nil {
				return err
			}
			fmt.Printf("%s schedule cleared\n", args[0])
			return nil
		},
	}
}
