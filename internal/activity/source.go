package activity

import (
	"context"
	"fmt"

	"github.com/javiermolinar/rocinante/internal/task"
)

// MaxLimit is the largest page size any source serves.
const MaxLimit = 100

// Source returns pages of a project's activity feed.
// project is the project name.
type Source interface {
	Page(ctx context.Context, project string, page, limit int) (*Feed, error)
}

// Store is the persistence side of the feed.
type Store interface {
	GetProjectByName(ctx context.Context, name string) (*task.Project, error)
	ListActivity(ctx context.Context, projectID string, page, limit int) ([]Entry, int, error)
}

// StoreSource reads the feed from a local Store.
type StoreSource struct {
	store Store
}

// NewStoreSource creates a Source backed by store.
func NewStoreSource(store Store) *StoreSource {
	return &StoreSource{store: store}
}

// Page implements Source.
func (s *StoreSource) Page(ctx context.Context, project string, page, limit int) (*Feed, error) {
	page, limit = NormalizePage(page, limit, MaxLimit)

	p, err := s.store.GetProjectByName(ctx, project)
	if err != nil {
		return nil, err
	}

	entries, total, err := s.store.ListActivity(ctx, p.ID, page, limit)
	if err != nil {
		return nil, fmt.Errorf("listing activity: %w", err)
	}
	if entries == nil {
		entries = []Entry{}
	}

	return &Feed{
		Entries:    entries,
		Pagination: NewPagination(page, limit, total),
	}, nil
}
