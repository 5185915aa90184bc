package calendar

import (
	"cmp"
	"slices"

	"github.com/javiermolinar/rocinante/internal/dateutil"
	"github.com/javiermolinar/rocinante/internal/task"
)

// DayDetail returns the tasks whose effective range contains date, ordered
// by priority (high, medium, low, absent) and then title.
// It tests membership against the raw task list and does not depend on a
// month layout.
func DayDetail(tasks []*task.Task, date dateutil.Date) []*task.Task {
	var out []*task.Task
	for _, t := range tasks {
		if t != nil && t.Covers(date) {
			out = append(out, t)
		}
	}

	slices.SortStableFunc(out, func(a, b *task.Task) int {
		if c := cmp.Compare(a.Priority.Rank(), b.Priority.Rank()); c != 0 {
			return c
		}
		return cmp.Compare(a.Title, b.Title)
	})
	return out
}
