package ui

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/rocinante/internal/dateutil"
	"github.com/javiermolinar/rocinante/internal/task"
)

func (a *App) addCmd() *cobra.Command {
	var (
		start    string
		due      string
		end      string
		priority string
		status   string
	)

	cmd := &cobra.Command{
		Use:   "add [title]",
		Short: "Add a new task",
		Long: `Add a new task to the current project.

Dates accept YYYY-MM-DD or a relative form: today, tomorrow, yesterday,
next-week, a weekday name (monday) or next-<weekday> (next-friday).
A task shows on the calendar once it has a start or due date.`,
		Example: `  rocinante add "Write documentation" --due=friday --priority=high
  rocinante add "Conference" --start=2025-03-10 --end=2025-03-14
  rocinante add "Someday" --project=ideas`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cliContext()
			p, err := a.currentProject(ctx)
			if err != nil {
				return err
			}

			today := dateutil.Today()
			opts := task.NewOptions{Priority: priority, Status: status}
			if opts.Start, err = resolveDate(start, today); err != nil {
				return fmt.Errorf("start date: %w", err)
			}
			if opts.Due, err = resolveDate(due, today); err != nil {
				return fmt.Errorf("due date: %w", err)
			}
			if opts.End, err = resolveDate(end, today); err != nil {
				return fmt.Errorf("end date: %w", err)
			}

			t, err := task.New(args[0], p.ID, opts)
			if err != nil {
				return err
			}
			if err := a.repo.CreateTask(ctx, t); err != nil {
				return fmt.Errorf("creating task: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Created task %s: %s [%s] %s\n",
				t.ShortID(),
				t.Title,
				p.Name,
				formatRange(t),
			)
			return nil
		},
	}

	cmd.Flags().StringVar(&start, "start", "", "Start date")
	cmd.Flags().StringVar(&due, "due", "", "Due date")
	cmd.Flags().StringVar(&end, "end", "", "End date")
	cmd.Flags().StringVar(&priority, "priority", "", "Priority: high, medium or low")
	cmd.Flags().StringVar(&status, "status", "", "Status (default todo)")

	return cmd
}

// resolveDate turns a flag value into YYYY-MM-DD, expanding relative forms.
// Empty stays empty.
func resolveDate(s string, today dateutil.Date) (string, error) {
	if s == "" {
		return "", nil
	}
	d, err := dateutil.ParseRelativeDate(s, today)
	if err != nil {
		return "", err
	}
	return d.String(), nil
}
