// Package commands provides TUI command constructors and message types.
package commands

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/javiermolinar/rocinante/internal/activity"
	"github.com/javiermolinar/rocinante/internal/dateutil"
	"github.com/javiermolinar/rocinante/internal/task"
)

// Actor tags activity recorded from the TUI.
const Actor = "tui"

// MonthLoadedMsg is sent when a month's tasks are loaded.
type MonthLoadedMsg struct {
	Project *task.Project
	Year    int
	Month   time.Month
	Tasks   []*task.Task
}

// ActivityLoadedMsg is sent when an activity page is loaded.
type ActivityLoadedMsg struct {
	Page int // Page that was requested
	Feed *activity.Feed
}

// TaskChangedMsg is sent after a mutation so the month can be reloaded.
type TaskChangedMsg struct {
	Task *task.Task
	Verb string // "created", "done", "reopened"
}

// CopiedMsg is sent after text was put on the clipboard.
type CopiedMsg struct {
	What string
}

// ErrMsg is sent when an error occurs.
type ErrMsg struct {
	Err error
}

// StatusMsgCmd is sent for temporary status messages.
type StatusMsgCmd struct {
	Msg string
}

// ClearStatusMsg is sent to clear the status message.
type ClearStatusMsg struct{}

func tuiContext() context.Context {
	return activity.WithActor(context.Background(), Actor)
}

// ResolveProject returns the project named name. When create is set a
// missing project is created.
func ResolveProject(ctx context.Context, repo task.Repository, name string, create bool) (*task.Project, error) {
	p, err := repo.GetProjectByName(ctx, name)
	if err == nil {
		return p, nil
	}
	if !create || !errors.Is(err, task.ErrProjectNotFound) {
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

// LoadMonth loads the tasks of project that touch the given month.
func LoadMonth(repo task.Repository, project string, createProject bool, year int, month time.Month) tea.Cmd {
	return func() tea.Msg {
		ctx := tuiContext()

		p, err := ResolveProject(ctx, repo, project, createProject)
		if err != nil {
			return ErrMsg{Err: err}
		}

		first, last := dateutil.MonthBounds(year, month)
		tasks, err := repo.ListTasksInRange(ctx, p.ID, first, last)
		if err != nil {
			return ErrMsg{Err: fmt.Errorf("loading %s %d: %w", month, year, err)}
		}

		return MonthLoadedMsg{Project: p, Year: year, Month: month, Tasks: tasks}
	}
}

// LoadActivity fetches one page of the project's activity feed.
func LoadActivity(src activity.Source, project string, page, limit int) tea.Cmd {
	return func() tea.Msg {
		feed, err := src.Page(tuiContext(), project, page, limit)
		if err != nil {
			return ErrMsg{Err: fmt.Errorf("loading activity: %w", err)}
		}
		return ActivityLoadedMsg{Page: page, Feed: feed}
	}
}

// CreateTask adds a task with the given title due on date.
func CreateTask(repo task.Repository, projectID, title string, date dateutil.Date, priority task.Priority) tea.Cmd {
	return func() tea.Msg {
		t, err := task.New(title, projectID, task.NewOptions{
			Due:      date.String(),
			Priority: string(priority),
		})
		if err != nil {
			return ErrMsg{Err: err}
		}
		if err := repo.CreateTask(tuiContext(), t); err != nil {
			return ErrMsg{Err: fmt.Errorf("creating task: %w", err)}
		}
		return TaskChangedMsg{Task: t, Verb: "created"}
	}
}

// ToggleDone marks a task done, or back to todo when it already is.
func ToggleDone(repo task.Repository, t *task.Task) tea.Cmd {
	return func() tea.Msg {
		status, verb := task.StatusDone, "done"
		if t.IsDone() {
			status, verb = task.StatusTodo, "reopened"
		}

		ctx := tuiContext()
		if err := repo.SetTaskStatus(ctx, t.ID, status); err != nil {
			return ErrMsg{Err: fmt.Errorf("setting status: %w", err)}
		}
		updated, err := repo.GetTask(ctx, t.ID)
		if err != nil {
			return ErrMsg{Err: err}
		}
		return TaskChangedMsg{Task: updated, Verb: verb}
	}
}

// clipboardWrite is swapped out in tests.
var clipboardWrite = clipboard.WriteAll

// Copy puts text on the system clipboard.
func Copy(text, what string) tea.Cmd {
	return func() tea.Msg {
		if err := clipboardWrite(text); err != nil {
			return ErrMsg{Err: fmt.Errorf("copying to clipboard: %w", err)}
		}
		return CopiedMsg{What: what}
	}
}
