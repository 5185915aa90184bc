package ui

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/rocinante/internal/calendar"
	"github.com/javiermolinar/rocinante/internal/task"
)

func (a *App) listCmd() *cobra.Command {
	var hideDone bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the tasks of a project",
		Long: `List every task of the current project.

Dated tasks come first in calendar order, then undated ones.`,
		Example: `  rocinante list
  rocinante list --project=work --hide-done`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cliContext()
			p, err := a.currentProject(ctx)
			if err != nil {
				return err
			}

			tasks, err := a.repo.ListTasksByProject(ctx, p.ID)
			if err != nil {
				return fmt.Errorf("listing tasks: %w", err)
			}

			out := cmd.OutOrStdout()
			pt := painter{plain: a.noColor}

			var dated, undated []*task.Task
			for _, t := range tasks {
				if hideDone && t.IsDone() {
					continue
				}
				if t.IsDated() {
					dated = append(dated, t)
				} else {
					undated = append(undated, t)
				}
			}

			if len(dated)+len(undated) == 0 {
				fmt.Fprintf(out, "No tasks in %s.\n", p.Name)
				return nil
			}

			if len(dated) > 0 {
				fmt.Fprintf(out, "=== %s: dated ===\n", pt.header(p.Name))
				for _, t := range calendar.Sort(dated) {
					PrintTaskRow(out, t, pt)
				}
			}
			if len(undated) > 0 {
				if len(dated) > 0 {
					fmt.Fprintln(out)
				}
				fmt.Fprintf(out, "=== %s: undated ===\n", pt.header(p.Name))
				for _, t := range undated {
					PrintTaskRow(out, t, pt)
				}
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&hideDone, "hide-done", false, "Hide done tasks")
	return cmd
}
