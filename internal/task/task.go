// Package task defines the core domain types for rocinante.
package task

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/javiermolinar/rocinante/internal/dateutil"
)

// Validation errors.
var (
	ErrEmptyTitle       = errors.New("title cannot be empty")
	ErrEmptyProjectName = errors.New("project name cannot be empty")
	ErrInvalidPriority  = errors.New("priority must be 'high', 'medium', 'low' or empty")
	ErrEndBeforeStart   = errors.New("end date must be on or after start date")
)

// Domain errors.
var (
	ErrTaskNotFound    = errors.New("task not found")
	ErrAmbiguousTaskID = errors.New("task id prefix matches more than one task")
	ErrProjectNotFound = errors.New("project not found")
	ErrProjectExists   = errors.New("project already exists")
)

// Priority ranks a task for colour and day-detail ordering.
type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
	PriorityNone   Priority = ""
)

// Rank orders priorities: high first, absent last.
func (p Priority) Rank() int {
	switch p {
	case PriorityHigh:
		return 0
	case PriorityMedium:
		return 1
	case PriorityLow:
		return 2
	default:
		return 3
	}
}

// Valid returns true if the priority is a known value or absent.
func (p Priority) Valid() bool {
	switch p {
	case PriorityHigh, PriorityMedium, PriorityLow, PriorityNone:
		return true
	default:
		return false
	}
}

// ParsePriority parses a priority name case-insensitively.
func ParsePriority(s string) (Priority, error) {
	p := Priority(strings.ToLower(strings.TrimSpace(s)))
	if !p.Valid() {
		return "", ErrInvalidPriority
	}
	return p, nil
}

// Status is free-form; only StatusDone changes how a task is shown.
type Status string

const (
	StatusTodo       Status = "todo"
	StatusInProgress Status = "in_progress"
	StatusDone       Status = "done"
)

// Task is a unit of work with an optional date span.
type Task struct {
	ID        string
	ProjectID string
	Title     string
	Start     *dateutil.Date
	Due       *dateutil.Date
	End       *dateutil.Date
	Priority  Priority
	Status    Status
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewOptions carries the optional, unparsed fields of a new task.
type NewOptions struct {
	Start    string // YYYY-MM-DD
	Due      string // YYYY-MM-DD
	End      string // YYYY-MM-DD
	Priority string
	Status   string
}

// New creates a new Task with validation.
// Dates are optional but must be in YYYY-MM-DD format when present, and
// the effective end must not precede the effective start.
func New(title, projectID string, opts NewOptions) (*Task, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, ErrEmptyTitle
	}

	priority, err := ParsePriority(opts.Priority)
	if err != nil {
		return nil, err
	}

	start, err := dateutil.ParseOptional(opts.Start)
	if err != nil {
		return nil, fmt.Errorf("start date: %w", err)
	}
	due, err := dateutil.ParseOptional(opts.Due)
	if err != nil {
		return nil, fmt.Errorf("due date: %w", err)
	}
	end, err := dateutil.ParseOptional(opts.End)
	if err != nil {
		return nil, fmt.Errorf("end date: %w", err)
	}

	status := Status(strings.TrimSpace(opts.Status))
	if status == "" {
		status = StatusTodo
	}

	now := time.Now()
	t := &Task{
		ID:        uuid.NewString(),
		ProjectID: projectID,
		Title:     title,
		Start:     start,
		Due:       due,
		End:       end,
		Priority:  priority,
		Status:    status,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return t, nil
}

// Validate checks the invariants New enforces on an existing task.
func (t *Task) Validate() error {
	if strings.TrimSpace(t.Title) == "" {
		return ErrEmptyTitle
	}
	if !t.Priority.Valid() {
		return ErrInvalidPriority
	}
	if start, end, ok := t.EffectiveRange(); ok && end.Before(start) {
		return ErrEndBeforeStart
	}
	return nil
}

// EffectiveRange returns the date span used for calendar layout.
// Start falls back to the due date; end falls back to the due date and
// then to the start. ok is false when the task has neither start nor due.
func (t *Task) EffectiveRange() (start, end dateutil.Date, ok bool) {
	switch {
	case t.Start != nil:
		start = *t.Start
	case t.Due != nil:
		start = *t.Due
	default:
		return dateutil.Date{}, dateutil.Date{}, false
	}

	switch {
	case t.End != nil:
		end = *t.End
	case t.Due != nil:
		end = *t.Due
	default:
		end = start
	}
	return start, end, true
}

// SpanDays returns the inclusive number of days covered by the task, or 0
// for an undated task.
func (t *Task) SpanDays() int {
	start, end, ok := t.EffectiveRange()
	if !ok {
		return 0
	}
	return end.DaysSince(start) + 1
}

// Covers reports whether the task's effective range contains d.
func (t *Task) Covers(d dateutil.Date) bool {
	start, end, ok := t.EffectiveRange()
	return ok && d.Between(start, end)
}

// IsDated returns true if the task has a start or due date.
func (t *Task) IsDated() bool {
	return t.Start != nil || t.Due != nil
}

// IsDone returns true if the task has done status.
func (t *Task) IsDone() bool {
	return t.Status == StatusDone
}

// ShortID returns the first block of the task id for display.
func (t *Task) ShortID() string {
	if i := strings.IndexByte(t.ID, '-'); i > 0 {
		return t.ID[:i]
	}
	return t.ID
}

// Project groups tasks.
type Project struct {
	ID        string
	Name      string
	CreatedAt time.Time
}

// NewProject creates a project with a fresh id.
func NewProject(name string) (*Project, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyProjectName
	}
	return &Project{
		ID:        uuid.NewString(),
		Name:      name,
		CreatedAt: time.Now(),
	}, nil
}
