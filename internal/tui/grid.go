package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/javiermolinar/rocinante/internal/calendar"
	"github.com/javiermolinar/rocinante/internal/task"
)

const minCellWidth = 6

// cellWidth returns the day column width that fits width.
func cellWidth(width int) int {
	return max(minCellWidth, (width-(calendar.DaysPerWeek-1))/calendar.DaysPerWeek)
}

// renderGrid draws the weekday header and every week row of the month.
func (m Model) renderGrid(width int) string {
	w := cellWidth(width)
	sep := m.styles.SeparatorStyle.Render(" ")

	labels := calendar.WeekdayLabels(m.layout.WeekStart)
	cols := make([]string, 0, calendar.DaysPerWeek)
	for _, label := range labels {
		cols = append(cols, m.styles.WeekdayStyle.Width(w).Render(label))
	}

	rows := []string{strings.Join(cols, sep)}
	for _, week := range m.layout.Weeks() {
		rows = append(rows, m.renderWeek(week, w, sep)...)
	}
	return strings.Join(rows, "\n")
}

// renderWeek returns the day number line of a week followed by its lanes.
func (m Model) renderWeek(week calendar.Week, w int, sep string) []string {
	today := m.today()
	var cells [calendar.DaysPerWeek]*calendar.DayCell
	nums := make([]string, 0, calendar.DaysPerWeek)
	nLines := 1

	for col, gd := range week.Days {
		style := m.styles.DayNumStyle
		switch {
		case gd.Date == m.cursor:
			style = m.styles.CursorStyle
		case !gd.InMonth():
			style = m.styles.DayNumOtherStyle
		case gd.Date == today:
			style = m.styles.DayNumTodayStyle
		}
		nums = append(nums, style.Width(w).Render(fmt.Sprintf("%2d", gd.Date.Day)))

		if !gd.InMonth() {
			continue
		}
		cell := m.layout.Cell(gd.Day)
		cells[col] = &cell
		lines := len(cell.Lanes)
		if cell.Overflow {
			lines++
		}
		nLines = max(nLines, lines)
	}

	out := []string{strings.Join(nums, sep)}
	for line := range nLines {
		var segs []string
		for col := 0; col < calendar.DaysPerWeek; {
			seg, span := m.laneSegment(cells[col], line, w)
			segs = append(segs, seg)
			col += span
		}
		out = append(out, strings.Join(segs, sep))
	}
	return out
}

// laneSegment renders one line of a day cell and returns how many columns
// it consumed. Start tiles consume the columns of their bar.
func (m Model) laneSegment(c *calendar.DayCell, line, w int) (string, int) {
	blank := m.styles.EmptyCellStyle.Render(strings.Repeat(" ", w))
	if c == nil {
		return blank, 1
	}

	if line < len(c.Lanes) {
		lane := c.Lanes[line]
		switch lane.Kind {
		case calendar.LaneStart:
			span := max(1, lane.Width)
			width := span*w + span - 1
			t := lane.Task.Task
			return m.styles.Bar(t).Render(barLabel(t, width)), span
		case calendar.LaneSpacer:
			return m.styles.Continuation(lane.Task.Task).Render(strings.Repeat(" ", w)), 1
		default:
			return blank, 1
		}
	}

	if line == len(c.Lanes) && c.Overflow {
		more := ansi.Truncate(fmt.Sprintf("+%d more", c.HiddenCount), w, "…")
		return m.styles.OverflowStyle.Width(w).Render(more), 1
	}
	return blank, 1
}

// barLabel fits a task title into a bar of width columns.
func barLabel(t *task.Task, width int) string {
	label := " " + t.Title
	if t.IsDone() {
		label = " ✓" + label
	}
	label = ansi.Truncate(label, width, "…")
	if n := lipgloss.Width(label); n < width {
		label += strings.Repeat(" ", width-n)
	}
	return label
}
