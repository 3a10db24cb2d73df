package ui

import (
	"fmt"

	"github.com/spf13/cobra"
)

func (a *App) removeCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "rm [task-id]",
		Aliases: []string{"delete"},
		Short:   "Delete a task",
		Long: `Delete a task by its ID or a unique ID prefix. Deleted tasks disappear
from the chart but can be brought back with restore.

Example:
  ganttline rm 1a2b3c4d`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.ensureRepo(); err != nil {
				return err
			}

			ctx := cmd.Context()
			id, err := a.resolveTaskID(ctx, args[0])
			if err != nil {
				return err
			}
			if err := a.repo.DeleteTask(ctx, id); err != nil {
				return fmt.Errorf("deleting task: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Deleted task %s\n", shortID(id))
			return nil
		},
	}
}

func (a *App) restoreCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "restore [task-id]",
		Short: "Restore a deleted task",
		Long: `Restore a task removed with rm.

Example:
  ganttline restore 1a2b3c4d`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.ensureRepo(); err != nil {
				return err
			}

			ctx := cmd.Context()
			id, err := a.resolveTaskID(ctx, args[0])
			if err != nil {
				return err
			}
			if err := a.repo.RestoreTask(ctx, id); err != nil {
				return fmt.Errorf("restoring task: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Restored task %s\n", shortID(id))
			return nil
		},
	}
}
