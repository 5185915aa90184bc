package ui

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/rocinante/internal/task"
)

func (a *App) doneCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "done [task-id]",
		Short:   "Mark a task as done",
		Example: `  rocinante done 3f2a`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.setStatus(cmd, args[0], task.StatusDone)
		},
	}
}

func (a *App) statusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status [task-id] [status]",
		Short: "Set a task's status",
		Long: `Set a task's status. todo, in_progress and done are the usual values;
any other word is kept as is.`,
		Example: `  rocinante status 3f2a in_progress
  rocinante status 3f2a blocked`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.setStatus(cmd, args[0], task.Status(args[1]))
		},
	}
}

func (a *App) setStatus(cmd *cobra.Command, id string, status task.Status) error {
	if err := a.ensureRepo(); err != nil {
		return err
	}

	ctx := cliContext()
	if err := a.repo.SetTaskStatus(ctx, id, status); err != nil {
		return fmt.Errorf("setting status: %w", err)
	}
	t, err := a.repo.GetTask(ctx, id)
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Task %s is now %s: %s\n", t.ShortID(), t.Status, t.Title)
	return nil
}

func (a *App) removeCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "remove [task-id]",
		Aliases: []string{"rm"},
		Short:   "Delete a task",
		Example: `  rocinante remove 3f2a`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.ensureRepo(); err != nil {
				return err
			}

			ctx := cliContext()
			t, err := a.repo.GetTask(ctx, args[0])
			if err != nil {
				return err
			}
			if err := a.repo.DeleteTask(ctx, t.ID); err != nil {
				return fmt.Errorf("deleting task: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Deleted task %s: %s\n", t.ShortID(), t.Title)
			return nil
		},
	}
}
