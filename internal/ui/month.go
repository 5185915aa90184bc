package ui

import (
	"fmt"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"

	"github.com/javiermolinar/rocinante/internal/calendar"
	"github.com/javiermolinar/rocinante/internal/dateutil"
)

func (a *App) monthCmd() *cobra.Command {
	var (
		limit    int
		copyGrid bool
		width    int
	)

	cmd := &cobra.Command{
		Use:   "month [YYYY-MM]",
		Short: "Show the month calendar",
		Long: `Print the month grid of the current project.

Each day shows up to --limit lanes. Multi-day tasks draw as bars that stop
at the end of the week row; busier days end with "+N more".`,
		Example: `  rocinante month
  rocinante month 2025-03 --limit=5
  rocinante month --copy`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var arg string
			if len(args) == 1 {
				arg = args[0]
			}
			year, month, err := dateutil.ParseMonth(arg)
			if err != nil {
				return err
			}

			ctx := cliContext()
			p, err := a.currentProject(ctx)
			if err != nil {
				return err
			}

			first, last := dateutil.MonthBounds(year, month)
			tasks, err := a.repo.ListTasksInRange(ctx, p.ID, first, last)
			if err != nil {
				return fmt.Errorf("listing tasks: %w", err)
			}

			if !cmd.Flags().Changed("limit") {
				limit = a.config.Calendar.OverflowLimit
			}
			layout := calendar.Layout(tasks, year, month, calendar.Options{
				OverflowLimit: limit,
				WeekStart:     a.config.WeekStartDay(),
			})

			opts := MonthOpts{CellWidth: width, Today: dateutil.Today(), Plain: a.noColor}
			fmt.Fprint(cmd.OutOrStdout(), RenderMonth(layout, opts))

			if copyGrid {
				opts.Plain = true
				if err := clipboard.WriteAll(RenderMonth(layout, opts)); err != nil {
					return fmt.Errorf("copying to clipboard: %w", err)
				}
				fmt.Fprintln(cmd.OutOrStdout(), "\nCopied to clipboard.")
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", calendar.DefaultOverflowLimit, "Lanes per day before \"+N more\"")
	cmd.Flags().BoolVar(&copyGrid, "copy", false, "Copy the plain grid to the clipboard")
	cmd.Flags().IntVar(&width, "width", 0, "Day column width (default: fit terminal)")
	return cmd
}
