package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/javiermolinar/rocinante/internal/activity"
	"github.com/javiermolinar/rocinante/internal/calendar"
	"github.com/javiermolinar/rocinante/internal/dateutil"
	"github.com/javiermolinar/rocinante/internal/db"
	"github.com/javiermolinar/rocinante/internal/logging"
	"github.com/javiermolinar/rocinante/internal/server"
	"github.com/javiermolinar/rocinante/internal/task"
)

// openRepo creates a fresh repository for each test with automatic cleanup.
func openRepo(t *testing.T, path string) *db.SQLite {
	t.Helper()
	if path == "" {
		path = filepath.Join(t.TempDir(), "test.db")
	}
	repo, err := db.New(path)
	if err != nil {
		t.Fatalf("failed to open repo: %v", err)
	}
	t.Cleanup(func() { _ = repo.Close() })
	return repo
}

// createProject stores a project or fails the test.
func createProject(t *testing.T, repo *db.SQLite, name string) *task.Project {
	t.Helper()
	p, err := task.NewProject(name)
	if err != nil {
		t.Fatalf("failed to create project: %v", err)
	}
	if err := repo.CreateProject(context.Background(), p); err != nil {
		t.Fatalf("failed to insert project: %v", err)
	}
	return p
}

// createTask is a helper to create and insert a task.
func createTask(t *testing.T, repo *db.SQLite, projectID, title string, opts task.NewOptions) *task.Task {
	t.Helper()
	tsk, err := task.New(title, projectID, opts)
	if err != nil {
		t.Fatalf("failed to create task: %v", err)
	}
	if err := repo.CreateTask(context.Background(), tsk); err != nil {
		t.Fatalf("failed to insert task: %v", err)
	}
	return tsk
}

// loadMonth reads a month from the store and lays it out.
func loadMonth(t *testing.T, repo *db.SQLite, projectID string, year int, month time.Month) *calendar.MonthLayout {
	t.Helper()
	from, to := dateutil.MonthBounds(year, month)
	tasks, err := repo.ListTasksInRange(context.Background(), projectID, from, to)
	if err != nil {
		t.Fatalf("failed to list tasks: %v", err)
	}
	return calendar.Layout(tasks, year, month, calendar.Options{OverflowLimit: 3, WeekStart: time.Monday})
}

func TestMonthLayoutFromStore(t *testing.T) {
	repo := openRepo(t, "")
	p := createProject(t, repo, "work")

	carried := createTask(t, repo, p.ID, "Migration", task.NewOptions{Start: "2025-02-26", End: "2025-03-03"})
	createTask(t, repo, p.ID, "Offsite", task.NewOptions{Start: "2025-03-01", End: "2025-03-02"})
	for _, title := range []string{"Alpha", "Bravo", "Charlie"} {
		createTask(t, repo, p.ID, title, task.NewOptions{Due: "2025-03-02"})
	}
	createTask(t, repo, p.ID, "April only", task.NewOptions{Due: "2025-04-01"})
	createTask(t, repo, p.ID, "Someday", task.NewOptions{})

	l := loadMonth(t, repo, p.ID, 2025, time.March)
	if len(l.Tasks) != 5 {
		t.Fatalf("expected 5 tasks in March, got %d", len(l.Tasks))
	}

	first := l.Tasks[0]
	if first.Task.ID != carried.ID {
		t.Fatalf("expected the earliest start first, got %s", first.Task.Title)
	}
	if first.Slot != 0 || first.StartDayIndex != 1 || first.IsStartThisMonth || first.SpanDays != 6 {
		t.Errorf("unexpected placement of carried task: %+v", first)
	}

	cell := l.Cell(2)
	if !cell.Overflow || cell.HiddenCount != 2 {
		t.Errorf("expected March 2 to hide 2 tasks, got overflow=%t hidden=%d", cell.Overflow, cell.HiddenCount)
	}
	all := make([]*task.Task, 0, len(l.Tasks))
	for _, pt := range l.Tasks {
		all = append(all, pt.Task)
	}
	if got := calendar.DayDetail(all, dateutil.NewDate(2025, time.March, 2)); len(got) != 5 {
		t.Errorf("expected the day detail to list all 5 tasks, got %d", len(got))
	}

	for _, pt := range l.Tasks {
		for day := pt.StartDayIndex; day <= pt.EndDayIndex; day++ {
			if at, ok := l.TaskAt(day, pt.Slot); !ok || at.Task.ID != pt.Task.ID {
				t.Errorf("%s: slot %d not marked on day %d", pt.Task.Title, pt.Slot, day)
			}
		}
	}
}

func TestLifecycleRecordsActivity(t *testing.T) {
	repo := openRepo(t, "")
	p := createProject(t, repo, "work")
	ctx := activity.WithActor(context.Background(), "cli")

	tsk, _ := task.New("Write report", p.ID, task.NewOptions{Due: "2025-03-12"})
	if err := repo.CreateTask(ctx, tsk); err != nil {
		t.Fatalf("CreateTask failed: %v", err)
	}

	title := "Write final report"
	if _, err := repo.UpdateTask(ctx, tsk.ID, task.Update{Title: &title}); err != nil {
		t.Fatalf("UpdateTask failed: %v", err)
	}
	if err := repo.SetTaskStatus(ctx, tsk.ID, task.StatusDone); err != nil {
		t.Fatalf("SetTaskStatus failed: %v", err)
	}
	if err := repo.DeleteTask(ctx, tsk.ID); err != nil {
		t.Fatalf("DeleteTask failed: %v", err)
	}

	feed, err := activity.NewStoreSource(repo).Page(context.Background(), "work", 1, 10)
	if err != nil {
		t.Fatalf("Page failed: %v", err)
	}

	want := []activity.Action{activity.ActionDeleted, activity.ActionStatusChanged, activity.ActionUpdated, activity.ActionCreated}
	if len(feed.Entries) != len(want) {
		t.Fatalf("expected %d entries, got %d", len(want), len(feed.Entries))
	}
	for i, e := range feed.Entries {
		if e.Action != want[i] {
			t.Errorf("entry %d: action = %s, want %s", i, e.Action, want[i])
		}
		if e.Actor != "cli" {
			t.Errorf("entry %d: actor = %q, want cli", i, e.Actor)
		}
	}
	if feed.Entries[1].Detail != string(task.StatusDone) {
		t.Errorf("expected status detail done, got %q", feed.Entries[1].Detail)
	}

	if _, err := repo.GetTask(context.Background(), tsk.ID); !errors.Is(err, task.ErrTaskNotFound) {
		t.Errorf("expected ErrTaskNotFound after delete, got %v", err)
	}
}

func TestRemoteActivityFeed(t *testing.T) {
	repo := openRepo(t, "")
	createProject(t, repo, "work")

	s := server.New(repo, nil, server.Options{OverflowLimit: 3, WeekStart: time.Monday}, logging.Discard())
	ts := httptest.NewServer(s.Routes())
	t.Cleanup(ts.Close)

	for _, title := range []string{"One", "Two", "Three"} {
		body, _ := json.Marshal(server.CreateTaskRequest{Title: title, Due: "2025-03-12"})
		resp, err := http.Post(ts.URL+"/api/projects/work/tasks", "application/json", bytes.NewReader(body))
		if err != nil {
			t.Fatalf("POST failed: %v", err)
		}
		_ = resp.Body.Close()
		if resp.StatusCode != http.StatusCreated {
			t.Fatalf("expected 201, got %d", resp.StatusCode)
		}
	}

	client := activity.NewClient(ts.URL, 5*time.Second)
	feed, err := client.Page(context.Background(), "work", 2, 2)
	if err != nil {
		t.Fatalf("Page failed: %v", err)
	}

	if feed.Pagination.Total != 3 || feed.Pagination.TotalPages != 2 || feed.Pagination.HasNext() {
		t.Errorf("unexpected pagination %+v", feed.Pagination)
	}
	if len(feed.Entries) != 1 || feed.Entries[0].Summary != "One" {
		t.Fatalf("expected the oldest entry on page 2, got %+v", feed.Entries)
	}
	if feed.Entries[0].Actor != "server" {
		t.Errorf("expected actor server, got %q", feed.Entries[0].Actor)
	}

	_, err = client.Page(context.Background(), "missing", 1, 2)
	var statusErr *activity.StatusError
	if !errors.As(err, &statusErr) || statusErr.Code != http.StatusNotFound {
		t.Errorf("expected a 404 StatusError for an unknown project, got %v", err)
	}
}

func TestDatesIgnoreTimezone(t *testing.T) {
	orig := time.Local
	t.Cleanup(func() { time.Local = orig })

	path := filepath.Join(t.TempDir(), "tz.db")

	time.Local = time.FixedZone("UTC-11", -11*60*60)
	repo := openRepo(t, path)
	p := createProject(t, repo, "work")
	tsk := createTask(t, repo, p.ID, "Month end", task.NewOptions{Due: "2025-03-31"})
	_ = repo.Close()

	time.Local = time.FixedZone("UTC+14", 14*60*60)
	repo = openRepo(t, path)

	got, err := repo.GetTask(context.Background(), tsk.ID)
	if err != nil {
		t.Fatalf("GetTask failed: %v", err)
	}
	if got.Due == nil || got.Due.String() != "2025-03-31" {
		t.Errorf("expected due 2025-03-31, got %v", got.Due)
	}

	l := loadMonth(t, repo, p.ID, 2025, time.March)
	if len(l.Tasks) != 1 || l.Tasks[0].StartDayIndex != 31 {
		t.Errorf("expected the task on March 31, got %+v", l.Tasks)
	}
	if april := loadMonth(t, repo, p.ID, 2025, time.April); len(april.Tasks) != 0 {
		t.Errorf("expected nothing in April, got %d tasks", len(april.Tasks))
	}
}
