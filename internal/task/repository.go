package task

import (
	"context"

	"github.com/javiermolinar/rocinante/internal/dateutil"
)

// Update describes an in-place edit of a task. Nil fields are left as is;
// ClearDates removes all three dates before applying the new ones.
type Update struct {
	Title      *string
	Start      *dateutil.Date
	Due        *dateutil.Date
	End        *dateutil.Date
	Priority   *Priority
	ClearDates bool
}

// Repository defines the storage interface for projects and tasks.
type Repository interface {
	// CreateProject adds a new project. Returns ErrProjectExists on a duplicate name.
	CreateProject(ctx context.Context, p *Project) error

	// GetProjectByName retrieves a project by its unique name.
	// Returns ErrProjectNotFound if no project has that name.
	GetProjectByName(ctx context.Context, name string) (*Project, error)

	// ListProjects returns all projects ordered by name.
	ListProjects(ctx context.Context) ([]*Project, error)

	// CreateTask adds a new task and records a "created" activity entry.
	CreateTask(ctx context.Context, t *Task) error

	// GetTask retrieves a task by ID or by unique ID prefix.
	// Returns ErrTaskNotFound if nothing matches.
	GetTask(ctx context.Context, id string) (*Task, error)

	// UpdateTask applies an Update and records an "updated" activity entry.
	UpdateTask(ctx context.Context, id string, u Update) (*Task, error)

	// SetTaskStatus changes the status and records a "status_changed" entry.
	SetTaskStatus(ctx context.Context, id string, status Status) error

	// DeleteTask removes a task and records a "deleted" entry.
	DeleteTask(ctx context.Context, id string) error

	// ListTasksByProject returns every task of a project, dated or not.
	ListTasksByProject(ctx context.Context, projectID string) ([]*Task, error)

	// ListTasksInRange returns the project's tasks whose effective range
	// intersects [from, to] (inclusive).
	ListTasksInRange(ctx context.Context, projectID string, from, to dateutil.Date) ([]*Task, error)

	// Close releases any resources held by the repository.
	Close() error
}
