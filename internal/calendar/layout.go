// Package calendar lays out dated tasks on a month grid.
//
// Layout packs every task that intersects the displayed month into
// horizontal lanes ("slots") with a greedy first-fit pass, recording which
// lanes each day of the month has occupied. The result drives the month
// views: start tiles, spacers and "+N more" overflow affordances. The
// package is pure and holds no state between calls.
package calendar

import (
	"cmp"
	"slices"
	"time"

	"github.com/javiermolinar/rocinante/internal/dateutil"
	"github.com/javiermolinar/rocinante/internal/task"
)

// DefaultOverflowLimit is the number of lanes shown per day before the
// rest collapse into an overflow affordance.
const DefaultOverflowLimit = 3

// DaysPerWeek is the number of columns in the month grid.
const DaysPerWeek = 7

// Options configures a layout.
type Options struct {
	OverflowLimit int          // Lanes visible per day; values < 1 mean DefaultOverflowLimit
	WeekStart     time.Weekday // First column of the grid (Monday or Sunday)
}

func (o Options) overflowLimit() int {
	if o.OverflowLimit < 1 {
		return DefaultOverflowLimit
	}
	return o.OverflowLimit
}

// PositionedTask is a task placed in a lane of the month.
type PositionedTask struct {
	Task             *task.Task
	Slot             int           // Zero-based lane
	StartDayIndex    int           // First visible day of month (1-based, clamped)
	EndDayIndex      int           // Last visible day of month (1-based, clamped)
	IsStartThisMonth bool          // Unclamped start falls in the displayed month
	SpanDays         int           // Full inclusive length, not clamped
	Start            dateutil.Date // Normalized effective start
	End              dateutil.Date // Normalized effective end
}

// CoversDay reports whether the task's visible range includes day.
func (p PositionedTask) CoversDay(day int) bool {
	return day >= p.StartDayIndex && day <= p.EndDayIndex
}

// MonthLayout is the result of laying out one month.
type MonthLayout struct {
	Year          int
	Month         time.Month
	DaysInMonth   int
	OverflowLimit int
	WeekStart     time.Weekday

	// Tasks are in placement order (the sort order of Sort).
	Tasks []PositionedTask

	// Occupancy maps each day of the month to the lanes taken on it.
	Occupancy Occupancy
}

// span is a task with its normalized effective range.
type span struct {
	task  *task.Task
	start dateutil.Date
	end   dateutil.Date
}

func (s span) duration() int {
	return s.end.DaysSince(s.start)
}

// Layout positions tasks for the given month.
// Tasks without a start or due date, and tasks whose range does not touch
// the month, are left out.
func Layout(tasks []*task.Task, year int, month time.Month, opts Options) *MonthLayout {
	first, last := dateutil.MonthBounds(year, month)
	daysInMonth := last.Day

	l := &MonthLayout{
		Year:          year,
		Month:         month,
		DaysInMonth:   daysInMonth,
		OverflowLimit: opts.overflowLimit(),
		WeekStart:     opts.WeekStart,
		Occupancy:     make(Occupancy, daysInMonth),
	}

	for _, s := range sortSpans(normalize(tasks)) {
		if s.end.Before(first) || s.start.After(last) {
			continue
		}

		firstDay := max(1, s.start.DaysSince(first)+1)
		lastDay := min(daysInMonth, s.end.DaysSince(first)+1)

		slot := l.Occupancy.firstFree(firstDay, lastDay)
		l.Occupancy.mark(firstDay, lastDay, slot)

		l.Tasks = append(l.Tasks, PositionedTask{
			Task:             s.task,
			Slot:             slot,
			StartDayIndex:    firstDay,
			EndDayIndex:      lastDay,
			IsStartThisMonth: s.start.InMonth(year, month),
			SpanDays:         s.duration() + 1,
			Start:            s.start,
			End:              s.end,
		})
	}

	return l
}

// Sort returns the dated tasks in layout order: start ascending, longer
// spans first, then title, then id. Undated tasks are dropped.
func Sort(tasks []*task.Task) []*task.Task {
	spans := sortSpans(normalize(tasks))
	out := make([]*task.Task, len(spans))
	for i, s := range spans {
		out[i] = s.task
	}
	return out
}

func normalize(tasks []*task.Task) []span {
	spans := make([]span, 0, len(tasks))
	for _, t := range tasks {
		if t == nil {
			continue
		}
		start, end, ok := t.EffectiveRange()
		if !ok {
			continue
		}
		spans = append(spans, span{task: t, start: start, end: end})
	}
	return spans
}

func sortSpans(spans []span) []span {
	slices.SortStableFunc(spans, func(a, b span) int {
		if c := a.start.Compare(b.start); c != 0 {
			return c
		}
		if c := cmp.Compare(b.duration(), a.duration()); c != 0 {
			return c
		}
		if c := cmp.Compare(a.task.Title, b.task.Title); c != 0 {
			return c
		}
		return cmp.Compare(a.task.ID, b.task.ID)
	})
	return spans
}

// Date returns the date of a day of the laid out month.
func (l *MonthLayout) Date(day int) dateutil.Date {
	return dateutil.Date{Year: l.Year, Month: l.Month, Day: day}
}

// TaskAt returns the task holding slot on day, if any.
func (l *MonthLayout) TaskAt(day, slot int) (PositionedTask, bool) {
	if !l.Occupancy.Occupied(day, slot) {
		return PositionedTask{}, false
	}
	for _, p := range l.Tasks {
		if p.Slot == slot && p.CoversDay(day) {
			return p, true
		}
	}
	return PositionedTask{}, false
}

// StartingOn returns the tasks that draw a start tile on day, ordered by lane.
// Tasks carried over from an earlier month never start in this month.
func (l *MonthLayout) StartingOn(day int) []PositionedTask {
	var out []PositionedTask
	for _, p := range l.Tasks {
		if p.IsStartThisMonth && p.StartDayIndex == day {
			out = append(out, p)
		}
	}
	slices.SortFunc(out, func(a, b PositionedTask) int {
		return cmp.Compare(a.Slot, b.Slot)
	})
	return out
}

// Contains reports whether date belongs to the laid out month.
func (l *MonthLayout) Contains(date dateutil.Date) bool {
	return date.InMonth(l.Year, l.Month)
}
