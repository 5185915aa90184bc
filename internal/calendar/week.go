package calendar

import (
	"time"

	"github.com/javiermolinar/rocinante/internal/dateutil"
)

// GridDay is one column of a week row. Days outside the laid out month
// (leading and trailing padding) have Day == 0.
type GridDay struct {
	Date dateutil.Date
	Day  int
}

// InMonth reports whether the grid day belongs to the laid out month.
func (g GridDay) InMonth() bool {
	return g.Day > 0
}

// Week is one row of the month grid.
type Week struct {
	Start dateutil.Date
	Days  [DaysPerWeek]GridDay
}

// Weeks returns the rows of the month grid, padded with days of the
// adjacent months so every row has seven columns.
func (l *MonthLayout) Weeks() []Week {
	first, last := dateutil.MonthBounds(l.Year, l.Month)
	start := dateutil.StartOfWeek(first, l.WeekStart)

	var weeks []Week
	for rowStart := start; !rowStart.After(last); rowStart = rowStart.AddDays(DaysPerWeek) {
		w := Week{Start: rowStart}
		for i := range DaysPerWeek {
			d := rowStart.AddDays(i)
			w.Days[i] = GridDay{Date: d}
			if l.Contains(d) {
				w.Days[i].Day = d.Day
			}
		}
		weeks = append(weeks, w)
	}
	return weeks
}

// WeekOf returns the index of the grid row holding day.
func (l *MonthLayout) WeekOf(day int) int {
	first, _ := dateutil.MonthBounds(l.Year, l.Month)
	return (Column(first, l.WeekStart) + day - 1) / DaysPerWeek
}

// Column returns the grid column of d for weeks beginning on weekStart.
func Column(d dateutil.Date, weekStart time.Weekday) int {
	return (int(d.Weekday()) - int(weekStart) + DaysPerWeek) % DaysPerWeek
}

// WeekdayLabels returns the short column headers starting at weekStart.
func WeekdayLabels(weekStart time.Weekday) [DaysPerWeek]string {
	var labels [DaysPerWeek]string
	for i := range DaysPerWeek {
		labels[i] = time.Weekday((int(weekStart) + i) % DaysPerWeek).String()[:3]
	}
	return labels
}
