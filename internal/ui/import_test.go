package ui

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/javiermolinar/rocinante/internal/db"
	"github.com/javiermolinar/rocinante/internal/task"
)

func TestImportTasks(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	sourcePath := filepath.Join(dir, "source.db")
	destPath := filepath.Join(dir, "dest.db")

	sourceRepo, err := db.New(sourcePath)
	if err != nil {
		t.Fatalf("creating source repo: %v", err)
	}

	work, _ := task.NewProject("work")
	home, _ := task.NewProject("home")
	for _, p := range []*task.Project{work, home} {
		if err := sourceRepo.CreateProject(ctx, p); err != nil {
			t.Fatalf("CreateProject failed: %v", err)
		}
	}

	ranged, err := task.New("Conference", work.ID, task.NewOptions{Start: "2025-03-10", End: "2025-03-14", Priority: "high"})
	if err != nil {
		t.Fatalf("task.New failed: %v", err)
	}
	undated, _ := task.New("Someday", home.ID, task.NewOptions{Status: "done"})
	for _, tsk := range []*task.Task{ranged, undated} {
		if err := sourceRepo.CreateTask(ctx, tsk); err != nil {
			t.Fatalf("CreateTask failed: %v", err)
		}
	}
	_ = sourceRepo.Close()

	destRepo, err := db.New(destPath)
	if err != nil {
		t.Fatalf("creating destination repo: %v", err)
	}
	defer func() { _ = destRepo.Close() }()

	// The destination already has a "work" project with another id.
	destWork, _ := task.NewProject("work")
	if err := destRepo.CreateProject(ctx, destWork); err != nil {
		t.Fatalf("CreateProject failed: %v", err)
	}

	count, err := importTasks(ctx, destRepo, sourcePath)
	if err != nil {
		t.Fatalf("importTasks failed: %v", err)
	}
	if count != 2 {
		t.Fatalf("expected 2 imported tasks, got %d", count)
	}

	got, err := destRepo.GetTask(ctx, ranged.ID)
	if err != nil {
		t.Fatalf("GetTask failed: %v", err)
	}
	if got.ProjectID != destWork.ID {
		t.Errorf("expected task to join existing project %s, got %s", destWork.ID, got.ProjectID)
	}
	if got.Start == nil || got.Start.String() != "2025-03-10" || got.End == nil || got.End.String() != "2025-03-14" {
		t.Errorf("expected dates to survive import, got start=%v end=%v", got.Start, got.End)
	}
	if got.Priority != task.PriorityHigh {
		t.Errorf("expected high priority, got %q", got.Priority)
	}

	importedHome, err := destRepo.GetProjectByName(ctx, "home")
	if err != nil {
		t.Fatalf("expected home project to be created: %v", err)
	}
	homeTasks, _ := destRepo.ListTasksByProject(ctx, importedHome.ID)
	if len(homeTasks) != 1 || !homeTasks[0].IsDone() {
		t.Errorf("expected one done task in home, got %d", len(homeTasks))
	}

	again, err := importTasks(ctx, destRepo, sourcePath)
	if err != nil {
		t.Fatalf("second import failed: %v", err)
	}
	if again != 0 {
		t.Errorf("expected second import to skip existing tasks, got %d", again)
	}
}

// lookupFailingRepo fails every task lookup with err.
type lookupFailingRepo struct {
	task.Repository
	err error
}

func (r lookupFailingRepo) GetTask(context.Context, string) (*task.Task, error) {
	return nil, r.err
}

func TestImportTasks_LookupErrors(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	sourcePath := filepath.Join(dir, "source.db")

	sourceRepo, err := db.New(sourcePath)
	if err != nil {
		t.Fatalf("creating source repo: %v", err)
	}
	work, _ := task.NewProject("work")
	if err := sourceRepo.CreateProject(ctx, work); err != nil {
		t.Fatalf("CreateProject failed: %v", err)
	}
	tsk, _ := task.New("Conference", work.ID, task.NewOptions{Due: "2025-03-10"})
	if err := sourceRepo.CreateTask(ctx, tsk); err != nil {
		t.Fatalf("CreateTask failed: %v", err)
	}
	_ = sourceRepo.Close()

	tests := []struct {
		name string
		err  error
	}{
		{"storage failure", errors.New("disk I/O error")},
		{"ambiguous id", task.ErrAmbiguousTaskID},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			destRepo, err := db.New(filepath.Join(t.TempDir(), "dest.db"))
			if err != nil {
				t.Fatalf("creating destination repo: %v", err)
			}
			defer func() { _ = destRepo.Close() }()

			count, err := importTasks(ctx, lookupFailingRepo{Repository: destRepo, err: tt.err}, sourcePath)
			if !errors.Is(err, tt.err) {
				t.Fatalf("expected %v, got %v", tt.err, err)
			}
			if count != 0 {
				t.Errorf("expected nothing imported, got %d", count)
			}

			p, err := destRepo.GetProjectByName(ctx, "work")
			if err != nil {
				t.Fatalf("GetProjectByName failed: %v", err)
			}
			tasks, _ := destRepo.ListTasksByProject(ctx, p.ID)
			if len(tasks) != 0 {
				t.Errorf("expected no task to be created, got %d", len(tasks))
			}
		})
	}
}

func TestResolvePath(t *testing.T) {
	if _, err := resolvePath("  "); err == nil {
		t.Error("expected error for empty path")
	}

	got, err := resolvePath("relative.db")
	if err != nil {
		t.Fatalf("resolvePath failed: %v", err)
	}
	if !filepath.IsAbs(got) {
		t.Errorf("expected absolute path, got %s", got)
	}
}
