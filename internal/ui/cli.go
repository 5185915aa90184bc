package ui

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/rocinante/internal/activity"
	"github.com/javiermolinar/rocinante/internal/config"
	"github.com/javiermolinar/rocinante/internal/db"
	"github.com/javiermolinar/rocinante/internal/task"
	"github.com/javiermolinar/rocinante/internal/tui"
)

var (
	// Version is set at build time
	Version = "dev"
	// Commit is set at build time
	Commit = "none"
)

// Repository is what the CLI needs from storage.
type Repository interface {
	task.Repository
	activity.Store
}

// App holds the CLI application state.
type App struct {
	repo    Repository
	config  *config.Config
	root    *cobra.Command
	debug   bool   // Enable debug logging
	project string // --project, defaults to config
	noColor bool
}

// NewApp creates a new CLI application with the given repository and config.
// A nil repo is opened lazily from the configured database path.
func NewApp(repo Repository, cfg *config.Config) *App {
	a := &App{repo: repo, config: cfg}

	a.root = &cobra.Command{
		Use:   "rocinante",
		Short: "A month calendar for your tasks",
		Long: `Rocinante lays out dated tasks on a month calendar.

Tasks with a start or due date are packed into lanes so multi-day work
reads as bars across the week. Run without arguments for the interactive
calendar, or use the subcommands below from scripts.`,
		SilenceUsage: true,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			if a.noColor {
				DisableColor()
			}
		},
		RunE: func(_ *cobra.Command, _ []string) error {
			return a.runTUI()
		},
	}

	// Add global flags
	a.root.PersistentFlags().BoolVar(&a.debug, "debug", false, "Enable debug logging (writes rocinante-debug.log)")
	a.root.PersistentFlags().StringVarP(&a.project, "project", "p", "", "Project name (default from config)")
	a.root.PersistentFlags().BoolVar(&a.noColor, "no-color", false, "Disable color output")

	a.root.AddCommand(a.versionCmd())
	a.root.AddCommand(a.configCmd())
	a.root.AddCommand(a.projectCmd())
	a.root.AddCommand(a.addCmd())
	a.root.AddCommand(a.editCmd())
	a.root.AddCommand(a.listCmd())
	a.root.AddCommand(a.doneCmd())
	a.root.AddCommand(a.statusCmd())
	a.root.AddCommand(a.removeCmd())
	a.root.AddCommand(a.monthCmd())
	a.root.AddCommand(a.dayCmd())
	a.root.AddCommand(a.activityCmd())
	a.root.AddCommand(a.importCmd())
	a.root.AddCommand(a.serveCmd())

	return a
}

func (a *App) versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "rocinante %s (commit: %s)\n", Version, Commit)
		},
	}
}

// Execute runs the CLI application.
func (a *App) Execute() error {
	return a.root.Execute()
}

// Close releases the repository if one was opened.
func (a *App) Close() error {
	if a.repo == nil {
		return nil
	}
	return a.repo.Close()
}

// runTUI starts the interactive calendar. Without an open repository the
// TUI checks for a first run itself and asks before creating files.
func (a *App) runTUI() error {
	return tui.RunWithDebug(a.repo, a.config, a.debug, tui.WithProject(a.projectName()))
}

// ensureRepo opens the configured database on first use.
func (a *App) ensureRepo() error {
	if a.repo != nil {
		return nil
	}

	path := a.config.Storage.DBPath
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating database directory: %w", err)
	}
	repo, err := db.New(path)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	a.repo = repo
	return nil
}

// projectName returns the --project flag or the configured default.
func (a *App) projectName() string {
	if a.project != "" {
		return a.project
	}
	return a.config.Project.Default
}

// currentProject resolves the selected project. The configured default
// project is created on first use; any other name must already exist.
func (a *App) currentProject(ctx context.Context) (*task.Project, error) {
	if err := a.ensureRepo(); err != nil {
		return nil, err
	}

	name := a.projectName()
	p, err := a.repo.GetProjectByName(ctx, name)
	if err == nil {
		return p, nil
	}
	if !errors.Is(err, task.ErrProjectNotFound) || name != a.config.Project.Default {
		return nil, err
	}

	p, err = task.NewProject(name)
	if err != nil {
		return nil, err
	}
	if err := a.repo.CreateProject(ctx, p); err != nil {
		return nil, fmt.Errorf("creating default project: %w", err)
	}
	return p, nil
}

// cliContext tags activity recorded by CLI commands.
func cliContext() context.Context {
	return activity.WithActor(context.Background(), "cli")
}
