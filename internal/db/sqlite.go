// Package db provides SQLite storage implementation.
package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/javiermolinar/rocinante/internal/activity"
	"github.com/javiermolinar/rocinante/internal/dateutil"
	"github.com/javiermolinar/rocinante/internal/task"
)

// SQLite implements task.Repository and activity.Store using SQLite.
type SQLite struct {
	db *sql.DB
}

var (
	_ task.Repository = (*SQLite)(nil)
	_ activity.Store  = (*SQLite)(nil)
)

// querier is satisfied by *sql.DB and *sql.Tx.
type querier interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// New creates a new SQLite repository and runs migrations.
func New(path string) (*SQLite, error) {
	dsn := path + "?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("connecting to database: %w", err)
	}

	if err := migrate(db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return &SQLite{db: db}, nil
}

// Close releases database resources.
func (s *SQLite) Close() error {
	return s.db.Close()
}

// CreateProject adds a new project.
func (s *SQLite) CreateProject(ctx context.Context, p *task.Project) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	var exists int
	err = tx.QueryRowContext(ctx, `SELECT 1 FROM projects WHERE name = ?`, p.Name).Scan(&exists)
	if err == nil {
		return fmt.Errorf("%w: %s", task.ErrProjectExists, p.Name)
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("checking project: %w", err)
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO projects (id, name, created_at) VALUES (?, ?, ?)`,
		p.ID, p.Name, formatTime(p.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("inserting project: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}

// GetProjectByName retrieves a project by its unique name.
func (s *SQLite) GetProjectByName(ctx context.Context, name string) (*task.Project, error) {
	var (
		p         task.Project
		createdAt string
	)
	err := s.db.QueryRowContext(ctx,
		`SELECT id, name, created_at FROM projects WHERE name = ?`, name,
	).Scan(&p.ID, &p.Name, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", task.ErrProjectNotFound, name)
	}
	if err != nil {
		return nil, fmt.Errorf("querying project: %w", err)
	}

	if p.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, fmt.Errorf("parsing created at: %w", err)
	}
	return &p, nil
}

// ListProjects returns all projects ordered by name.
func (s *SQLite) ListProjects(ctx context.Context) ([]*task.Project, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, name, created_at FROM projects ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("querying projects: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var projects []*task.Project
	for rows.Next() {
		var (
			p         task.Project
			createdAt string
		)
		if err := rows.Scan(&p.ID, &p.Name, &createdAt); err != nil {
			return nil, fmt.Errorf("scanning project: %w", err)
		}
		if p.CreatedAt, err = parseTime(createdAt); err != nil {
			return nil, fmt.Errorf("parsing created at: %w", err)
		}
		projects = append(projects, &p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating projects: %w", err)
	}
	return projects, nil
}

// CreateTask adds a new task and records a "created" activity entry.
func (s *SQLite) CreateTask(ctx context.Context, t *task.Task) error {
	if err := t.Validate(); err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	query := `
		INSERT INTO tasks (
			id, project_id, title, start_date, due_date, end_date,
			priority, status, created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err = tx.ExecContext(ctx, query,
		t.ID,
		t.ProjectID,
		t.Title,
		formatDate(t.Start),
		formatDate(t.Due),
		formatDate(t.End),
		string(t.Priority),
		string(t.Status),
		formatTime(t.CreatedAt),
		formatTime(t.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("inserting task: %w", err)
	}

	if err := recordActivity(ctx, tx, t, activity.ActionCreated, ""); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}

const taskColumns = `
	id, project_id, title, start_date, due_date, end_date,
	priority, status, created_at, updated_at
`

// GetTask retrieves a task by ID or by unique ID prefix.
func (s *SQLite) GetTask(ctx context.Context, id string) (*task.Task, error) {
	return getTask(ctx, s.db, id)
}

func getTask(ctx context.Context, q querier, id string) (*task.Task, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, task.ErrTaskNotFound
	}

	t, err := scanTask(q.QueryRowContext(ctx, `SELECT `+taskColumns+` FROM tasks WHERE id = ?`, id))
	if err == nil {
		return t, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}

	rows, err := q.QueryContext(ctx,
		`SELECT `+taskColumns+` FROM tasks WHERE substr(id, 1, length(?)) = ? LIMIT 2`, id, id)
	if err != nil {
		return nil, fmt.Errorf("querying task: %w", err)
	}
	matches, err := scanTasks(rows)
	if err != nil {
		return nil, err
	}

	switch len(matches) {
	case 0:
		return nil, fmt.Errorf("%w: %s", task.ErrTaskNotFound, id)
	case 1:
		return matches[0], nil
	default:
		return nil, fmt.Errorf("%w: %s", task.ErrAmbiguousTaskID, id)
	}
}

// UpdateTask applies an Update and records an "updated" activity entry.
func (s *SQLite) UpdateTask(ctx context.Context, id string, u task.Update) (*task.Task, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	t, err := getTask(ctx, tx, id)
	if err != nil {
		return nil, err
	}

	applyUpdate(t, u)
	if err := t.Validate(); err != nil {
		return nil, err
	}
	t.UpdatedAt = time.Now()

	query := `
		UPDATE tasks
		SET title = ?, start_date = ?, due_date = ?, end_date = ?, priority = ?, updated_at = ?
		WHERE id = ?
	`
	_, err = tx.ExecContext(ctx, query,
		t.Title,
		formatDate(t.Start),
		formatDate(t.Due),
		formatDate(t.End),
		string(t.Priority),
		formatTime(t.UpdatedAt),
		t.ID,
	)
	if err != nil {
		return nil, fmt.Errorf("updating task: %w", err)
	}

	if err := recordActivity(ctx, tx, t, activity.ActionUpdated, ""); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("committing transaction: %w", err)
	}
	return t, nil
}

func applyUpdate(t *task.Task, u task.Update) {
	if u.Title != nil {
		t.Title = strings.TrimSpace(*u.Title)
	}
	if u.ClearDates {
		t.Start, t.Due, t.End = nil, nil, nil
	}
	if u.Start != nil {
		d := *u.Start
		t.Start = &d
	}
	if u.Due != nil {
		d := *u.Due
		t.Due = &d
	}
	if u.End != nil {
		d := *u.End
		t.End = &d
	}
	if u.Priority != nil {
		t.Priority = *u.Priority
	}
}

// SetTaskStatus changes the status and records a "status_changed" entry.
func (s *SQLite) SetTaskStatus(ctx context.Context, id string, status task.Status) error {
	status = task.Status(strings.TrimSpace(string(status)))
	if status == "" {
		return errors.New("status cannot be empty")
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	t, err := getTask(ctx, tx, id)
	if err != nil {
		return err
	}

	t.Status = status
	t.UpdatedAt = time.Now()
	_, err = tx.ExecContext(ctx,
		`UPDATE tasks SET status = ?, updated_at = ? WHERE id = ?`,
		string(t.Status), formatTime(t.UpdatedAt), t.ID,
	)
	if err != nil {
		return fmt.Errorf("setting task status: %w", err)
	}

	if err := recordActivity(ctx, tx, t, activity.ActionStatusChanged, string(status)); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}

// DeleteTask removes a task and records a "deleted" entry.
// The entry outlives the task.
func (s *SQLite) DeleteTask(ctx context.Context, id string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	t, err := getTask(ctx, tx, id)
	if err != nil {
		return err
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM tasks WHERE id = ?`, t.ID); err != nil {
		return fmt.Errorf("deleting task: %w", err)
	}

	if err := recordActivity(ctx, tx, t, activity.ActionDeleted, ""); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}

// ListTasksByProject returns every task of a project, dated or not.
func (s *SQLite) ListTasksByProject(ctx context.Context, projectID string) ([]*task.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE project_id = ? ORDER BY created_at, id`

	rows, err := s.db.QueryContext(ctx, query, projectID)
	if err != nil {
		return nil, fmt.Errorf("querying tasks: %w", err)
	}
	return scanTasks(rows)
}

// ListTasksInRange returns the project's tasks whose effective range
// intersects [from, to]. The effective start is start then due; the
// effective end is end, then due, then start.
func (s *SQLite) ListTasksInRange(ctx context.Context, projectID string, from, to dateutil.Date) ([]*task.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks
		WHERE project_id = ?
		  AND COALESCE(start_date, due_date) IS NOT NULL
		  AND COALESCE(start_date, due_date) <= ?
		  AND COALESCE(end_date, due_date, start_date) >= ?
		ORDER BY COALESCE(start_date, due_date), title, id
	`

	rows, err := s.db.QueryContext(ctx, query, projectID, to.String(), from.String())
	if err != nil {
		return nil, fmt.Errorf("querying tasks: %w", err)
	}
	return scanTasks(rows)
}

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanTask(row rowScanner) (*task.Task, error) {
	var (
		t                  task.Task
		start, due, end    sql.NullString
		priority, status   string
		createdAt, updated string
	)

	err := row.Scan(
		&t.ID,
		&t.ProjectID,
		&t.Title,
		&start,
		&due,
		&end,
		&priority,
		&status,
		&createdAt,
		&updated,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scanning task: %w", err)
	}

	t.Priority = task.Priority(priority)
	t.Status = task.Status(status)

	if t.Start, err = parseDate(start); err != nil {
		return nil, fmt.Errorf("parsing start date of task %s: %w", t.ID, err)
	}
	if t.Due, err = parseDate(due); err != nil {
		return nil, fmt.Errorf("parsing due date of task %s: %w", t.ID, err)
	}
	if t.End, err = parseDate(end); err != nil {
		return nil, fmt.Errorf("parsing end date of task %s: %w", t.ID, err)
	}
	if t.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, fmt.Errorf("parsing created at: %w", err)
	}
	if t.UpdatedAt, err = parseTime(updated); err != nil {
		return nil, fmt.Errorf("parsing updated at: %w", err)
	}

	return &t, nil
}

func scanTasks(rows *sql.Rows) ([]*task.Task, error) {
	defer func() { _ = rows.Close() }()

	var tasks []*task.Task
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, t)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating tasks: %w", err)
	}
	return tasks, nil
}

// formatDate returns the column value for an optional date.
func formatDate(d *dateutil.Date) any {
	if d == nil {
		return nil
	}
	return d.String()
}

// parseDate parses an optional YYYY-MM-DD column. Anything else is an
// error so malformed rows never reach the calendar.
func parseDate(s sql.NullString) (*dateutil.Date, error) {
	if !s.Valid || s.String == "" {
		return nil, nil
	}
	d, err := dateutil.Parse(s.String)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

func parseTime(s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}, err
	}
	return t.Local(), nil
}
