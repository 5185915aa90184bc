package ui

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/rocinante/internal/calendar"
	"github.com/javiermolinar/rocinante/internal/dateutil"
)

func (a *App) dayCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "day [date]",
		Short: "Show the tasks of one day",
		Long: `List every task whose dates cover the day, most urgent first.

The date defaults to today and accepts the same relative forms as add.`,
		Example: `  rocinante day
  rocinante day tomorrow
  rocinante day 2025-03-12`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			date := dateutil.Today()
			if len(args) == 1 {
				d, err := dateutil.ParseRelativeDate(args[0], date)
				if err != nil {
					return err
				}
				date = d
			}

			ctx := cliContext()
			p, err := a.currentProject(ctx)
			if err != nil {
				return err
			}

			tasks, err := a.repo.ListTasksInRange(ctx, p.ID, date, date)
			if err != nil {
				return fmt.Errorf("listing tasks: %w", err)
			}

			RenderDay(cmd.OutOrStdout(), date, calendar.DayDetail(tasks, date), painter{plain: a.noColor})
			return nil
		},
	}
}
