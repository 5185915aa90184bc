package ui

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/rocinante/internal/activity"
	"github.com/javiermolinar/rocinante/internal/dateutil"
)

func (a *App) activityCmd() *cobra.Command {
	var (
		page  int
		limit int
	)

	cmd := &cobra.Command{
		Use:   "activity",
		Short: "Show recent changes to a project",
		Long: `Print the project's activity feed, newest first, grouped by day.

When activity.base_url is configured the feed is read from that server,
otherwise from the local database.`,
		Example: `  rocinante activity
  rocinante activity --page=2 --limit=50`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !cmd.Flags().Changed("limit") {
				limit = a.config.Activity.PageSize
			}

			src, err := a.activitySource()
			if err != nil {
				return err
			}

			feed, err := src.Page(cliContext(), a.projectName(), page, limit)
			if err != nil {
				return fmt.Errorf("reading activity: %w", err)
			}

			RenderActivity(cmd.OutOrStdout(), feed, dateutil.Today(), painter{plain: a.noColor})
			return nil
		},
	}

	cmd.Flags().IntVar(&page, "page", 1, "Page number")
	cmd.Flags().IntVar(&limit, "limit", 20, "Entries per page (max 100)")
	return cmd
}

// activitySource picks the remote feed when configured, else the local store.
func (a *App) activitySource() (activity.Source, error) {
	if a.config.UsesRemoteActivity() {
		return activity.NewClient(
			a.config.Activity.BaseURL,
			a.config.ActivityTimeout(),
			activity.WithToken(a.config.Activity.Token),
		), nil
	}

	if _, err := a.currentProject(cliContext()); err != nil {
		return nil, err
	}
	return activity.NewStoreSource(a.repo), nil
}
