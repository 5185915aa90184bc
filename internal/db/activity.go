package db

import (
	"context"
	"fmt"
	"time"

	"github.com/javiermolinar/rocinante/internal/activity"
	"github.com/javiermolinar/rocinante/internal/task"
)

// recordActivity writes an activity row inside the caller's transaction.
func recordActivity(ctx context.Context, q querier, t *task.Task, action activity.Action, detail string) error {
	query := `
		INSERT INTO activity (project_id, task_id, action, actor, summary, detail, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`
	_, err := q.ExecContext(ctx, query,
		t.ProjectID,
		t.ID,
		string(action),
		activity.ActorFrom(ctx),
		t.Title,
		detail,
		formatTime(time.Now()),
	)
	if err != nil {
		return fmt.Errorf("recording %s activity: %w", action, err)
	}
	return nil
}

// ListActivity returns one page of a project's activity, newest first,
// along with the total number of entries.
func (s *SQLite) ListActivity(ctx context.Context, projectID string, page, limit int) ([]activity.Entry, int, error) {
	page, limit = activity.NormalizePage(page, limit, activity.MaxLimit)

	var total int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM activity WHERE project_id = ?`, projectID,
	).Scan(&total)
	if err != nil {
		return nil, 0, fmt.Errorf("counting activity: %w", err)
	}

	query := `
		SELECT id, project_id, task_id, action, actor, summary, detail, created_at
		FROM activity
		WHERE project_id = ?
		ORDER BY id DESC
		LIMIT ? OFFSET ?
	`
	rows, err := s.db.QueryContext(ctx, query, projectID, limit, activity.Offset(page, limit))
	if err != nil {
		return nil, 0, fmt.Errorf("querying activity: %w", err)
	}
	defer func() { _ = rows.Close() }()

	entries := []activity.Entry{}
	for rows.Next() {
		var (
			e         activity.Entry
			action    string
			createdAt string
		)
		err := rows.Scan(&e.ID, &e.ProjectID, &e.TaskID, &action, &e.Actor, &e.Summary, &e.Detail, &createdAt)
		if err != nil {
			return nil, 0, fmt.Errorf("scanning activity: %w", err)
		}
		e.Action = activity.Action(action)
		if e.CreatedAt, err = parseTime(createdAt); err != nil {
			return nil, 0, fmt.Errorf("parsing created at: %w", err)
		}
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterating activity: %w", err)
	}
	return entries, total, nil
}
