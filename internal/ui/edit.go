package ui

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/rocinante/internal/dateutil"
	"github.com/javiermolinar/rocinante/internal/task"
)

func (a *App) editCmd() *cobra.Command {
	var (
		title      string
		start      string
		due        string
		end        string
		priority   string
		clearDates bool
	)

	cmd := &cobra.Command{
		Use:   "edit [task-id]",
		Short: "Edit a task",
		Long: `Change a task's title, dates or priority. Only the given flags change.
The id may be shortened to any unique prefix.`,
		Example: `  rocinante edit 3f2a --due=next-monday
  rocinante edit 3f2a --clear-dates --start=2025-04-01 --end=2025-04-03
  rocinante edit 3f2a --priority=""`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.ensureRepo(); err != nil {
				return err
			}

			var u task.Update
			flags := cmd.Flags()
			today := dateutil.Today()

			if flags.Changed("title") {
				u.Title = &title
			}
			for _, f := range []struct {
				name  string
				value string
				dst   **dateutil.Date
			}{
				{"start", start, &u.Start},
				{"due", due, &u.Due},
				{"end", end, &u.End},
			} {
				if !flags.Changed(f.name) {
					continue
				}
				d, err := dateutil.ParseRelativeDate(f.value, today)
				if err != nil {
					return fmt.Errorf("%s date: %w", f.name, err)
				}
				*f.dst = &d
			}
			if flags.Changed("priority") {
				pr, err := task.ParsePriority(priority)
				if err != nil {
					return err
				}
				u.Priority = &pr
			}
			u.ClearDates = clearDates

			t, err := a.repo.UpdateTask(cliContext(), args[0], u)
			if err != nil {
				return fmt.Errorf("updating task: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Updated task %s: %s %s\n", t.ShortID(), t.Title, formatRange(t))
			return nil
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "New title")
	cmd.Flags().StringVar(&start, "start", "", "Start date")
	cmd.Flags().StringVar(&due, "due", "", "Due date")
	cmd.Flags().StringVar(&end, "end", "", "End date")
	cmd.Flags().StringVar(&priority, "priority", "", "Priority: high, medium, low or empty")
	cmd.Flags().BoolVar(&clearDates, "clear-dates", false, "Remove all dates before applying new ones")

	return cmd
}
