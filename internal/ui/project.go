package ui

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/rocinante/internal/task"
)

func (a *App) projectCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "project",
		Short: "Manage projects",
	}
	cmd.AddCommand(a.projectAddCmd())
	cmd.AddCommand(a.projectListCmd())
	return cmd
}

func (a *App) projectAddCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "add [name]",
		Short:   "Create a project",
		Example: `  rocinante project add work`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.ensureRepo(); err != nil {
				return err
			}

			p, err := task.NewProject(args[0])
			if err != nil {
				return err
			}
			if err := a.repo.CreateProject(cliContext(), p); err != nil {
				return fmt.Errorf("creating project: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Created project %s\n", p.Name)
			return nil
		},
	}
}

func (a *App) projectListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List projects",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.ensureRepo(); err != nil {
				return err
			}

			projects, err := a.repo.ListProjects(cliContext())
			if err != nil {
				return fmt.Errorf("listing projects: %w", err)
			}

			out := cmd.OutOrStdout()
			if len(projects) == 0 {
				fmt.Fprintln(out, "No projects yet.")
				return nil
			}

			current := a.projectName()
			for _, p := range projects {
				marker := " "
				if p.Name == current {
					marker = "*"
				}
				fmt.Fprintf(out, "%s %s\n", marker, p.Name)
			}
			return nil
		},
	}
}
