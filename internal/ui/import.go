package ui

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/rocinante/internal/db"
	"github.com/javiermolinar/rocinante/internal/task"
)

func (a *App) importCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import [database_path]",
		Short: "Import projects and tasks from another database",
		Long: `Import every project and task from another rocinante database into the
current one. Projects are matched by name; tasks that already exist are
skipped, so importing twice is harmless.`,
		Example: `  rocinante import /path/to/other.db`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.ensureRepo(); err != nil {
				return err
			}

			sourcePath, err := resolvePath(args[0])
			if err != nil {
				return err
			}
			destPath, err := resolvePath(a.config.Storage.DBPath)
			if err != nil {
				return err
			}

			if sourcePath == destPath {
				return fmt.Errorf("source database matches current database")
			}

			info, err := os.Stat(sourcePath)
			if err != nil {
				if os.IsNotExist(err) {
					return fmt.Errorf("source database does not exist: %s", sourcePath)
				}
				return fmt.Errorf("checking source database: %w", err)
			}
			if info.IsDir() {
				return fmt.Errorf("source database path is a directory: %s", sourcePath)
			}

			count, err := importTasks(cliContext(), a.repo, sourcePath)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Imported %d tasks from %s\n", count, sourcePath)
			return nil
		},
	}

	return cmd
}

func importTasks(ctx context.Context, dest task.Repository, sourcePath string) (int, error) {
	sourceRepo, err := db.New(sourcePath)
	if err != nil {
		return 0, fmt.Errorf("opening source database: %w", err)
	}
	defer func() { _ = sourceRepo.Close() }()

	projects, err := sourceRepo.ListProjects(ctx)
	if err != nil {
		return 0, fmt.Errorf("listing source projects: %w", err)
	}

	imported := 0
	for _, sourceProject := range projects {
		destProject, err := ensureProject(ctx, dest, sourceProject.Name)
		if err != nil {
			return imported, err
		}

		tasks, err := sourceRepo.ListTasksByProject(ctx, sourceProject.ID)
		if err != nil {
			return imported, fmt.Errorf("listing source tasks: %w", err)
		}

		for _, sourceTask := range tasks {
			existing, err := dest.GetTask(ctx, sourceTask.ID)
			switch {
			case err == nil && existing.ID == sourceTask.ID:
				continue
			case err != nil && !errors.Is(err, task.ErrTaskNotFound):
				return imported, fmt.Errorf("checking task %q: %w", sourceTask.Title, err)
			}

			newTask := *sourceTask
			newTask.ProjectID = destProject.ID
			if err := dest.CreateTask(ctx, &newTask); err != nil {
				return imported, fmt.Errorf("importing task %q: %w", sourceTask.Title, err)
			}
			imported++
		}
	}

	return imported, nil
}

// ensureProject returns the project named name, creating it if needed.
func ensureProject(ctx context.Context, repo task.Repository, name string) (*task.Project, error) {
	p, err := repo.GetProjectByName(ctx, name)
	if err == nil {
		return p, nil
	}
	if !errors.Is(err, task.ErrProjectNotFound) {
		return nil, err
	}

	p, err = task.NewProject(name)
	if err != nil {
		return nil, err
	}
	if err := repo.CreateProject(ctx, p); err != nil {
		return nil, fmt.Errorf("creating project %q: %w", name, err)
	}
	return p, nil
}

func resolvePath(path string) (string, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return "", fmt.Errorf("empty path")
	}

	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolving home directory: %w", err)
		}
		path = filepath.Join(home, path[2:])
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolving path: %w", err)
	}

	return absPath, nil
}
