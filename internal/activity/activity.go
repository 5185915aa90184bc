// Package activity models the project activity feed: the entries recorded
// for every task mutation, paginated reads from the local store or a remote
// server, and grouping for display.
package activity

import (
	"context"
	"time"
)

// Action names the kind of mutation an entry records.
type Action string

// Recorded actions.
const (
	ActionCreated       Action = "created"
	ActionUpdated       Action = "updated"
	ActionStatusChanged Action = "status_changed"
	ActionDeleted       Action = "deleted"
)

// DefaultActor is recorded when the context carries no actor.
const DefaultActor = "local"

// Entry is one line of a project's activity feed.
type Entry struct {
	ID        int64     `json:"id"`
	ProjectID string    `json:"project_id"`
	TaskID    string    `json:"task_id"`
	Action    Action    `json:"action"`
	Actor     string    `json:"actor"`
	Summary   string    `json:"summary"`
	Detail    string    `json:"detail,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// Pagination describes where a page sits in the full feed.
type Pagination struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	Total      int `json:"total"`
	TotalPages int `json:"total_pages"`
}

// NewPagination computes TotalPages from the total entry count.
func NewPagination(page, limit, total int) Pagination {
	pages := 0
	if limit > 0 {
		pages = (total + limit - 1) / limit
	}
	return Pagination{Page: page, Limit: limit, Total: total, TotalPages: pages}
}

// HasNext returns true if a later page exists.
func (p Pagination) HasNext() bool {
	return p.Page < p.TotalPages
}

// HasPrev returns true if an earlier page exists.
func (p Pagination) HasPrev() bool {
	return p.Page > 1
}

// Feed is one page of entries, newest first.
type Feed struct {
	Entries    []Entry    `json:"entries"`
	Pagination Pagination `json:"pagination"`
}

// NormalizePage clamps page to at least 1 and limit to [1, max].
// A non-positive limit falls back to max.
func NormalizePage(page, limit, max int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > max {
		limit = max
	}
	return page, limit
}

// Offset returns the row offset of a normalized page.
func Offset(page, limit int) int {
	return (page - 1) * limit
}

type actorKey struct{}

// WithActor tags ctx with the name recorded on activity entries.
func WithActor(ctx context.Context, actor string) context.Context {
	return context.WithValue(ctx, actorKey{}, actor)
}

// ActorFrom returns the actor stored in ctx, or DefaultActor.
func ActorFrom(ctx context.Context) string {
	if a, ok := ctx.Value(actorKey{}).(string); ok && a != "" {
		return a
	}
	return DefaultActor
}
