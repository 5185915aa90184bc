package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/x/ansi"

	"github.com/javiermolinar/rocinante/internal/activity"
	"github.com/javiermolinar/rocinante/internal/calendar"
	"github.com/javiermolinar/rocinante/internal/dateutil"
	"github.com/javiermolinar/rocinante/internal/task"
)

const (
	minCellWidth = 8
	maxCellWidth = 24
)

// MonthOpts configures month grid printing.
type MonthOpts struct {
	CellWidth int           // Characters per day column (0 = fit terminal)
	Today     dateutil.Date // Highlighted day
	Plain     bool          // No colors
}

// CellWidthFor returns the day column width that fits a terminal.
func CellWidthFor(termWidth int) int {
	w := (termWidth - (calendar.DaysPerWeek - 1)) / calendar.DaysPerWeek
	return max(minCellWidth, min(maxCellWidth, w))
}

// RenderMonth draws the month grid: weekday header, then for every week a
// line of day numbers followed by the lanes of each day.
func RenderMonth(l *calendar.MonthLayout, opts MonthOpts) string {
	w := opts.CellWidth
	if w <= 0 {
		w = CellWidthFor(termWidth())
	}
	p := painter{plain: opts.Plain}
	total := calendar.DaysPerWeek*w + calendar.DaysPerWeek - 1

	var b strings.Builder
	title := fmt.Sprintf("%s %d", l.Month, l.Year)
	b.WriteString(p.header(center(title, total)))
	b.WriteString("\n")

	labels := calendar.WeekdayLabels(l.WeekStart)
	cols := make([]string, 0, calendar.DaysPerWeek)
	for _, label := range labels {
		cols = append(cols, p.muted(pad(label, w)))
	}
	b.WriteString(strings.Join(cols, " "))
	b.WriteString("\n")
	b.WriteString(p.muted(strings.Repeat("─", total)))
	b.WriteString("\n")

	for i, week := range l.Weeks() {
		if i > 0 {
			b.WriteString("\n")
		}
		renderWeek(&b, l, week, w, opts.Today, p)
	}
	return b.String()
}

func renderWeek(b *strings.Builder, l *calendar.MonthLayout, week calendar.Week, w int, today dateutil.Date, p painter) {
	var cells [calendar.DaysPerWeek]*calendar.DayCell
	nLines := 0
	nums := make([]string, 0, calendar.DaysPerWeek)

	for col, gd := range week.Days {
		num := pad(fmt.Sprintf("%2d", gd.Date.Day), w)
		switch {
		case !gd.InMonth():
			nums = append(nums, p.muted(num))
			continue
		case gd.Date == today:
			nums = append(nums, p.paint(colorToday, fmt.Sprintf("%2d", gd.Date.Day))+strings.Repeat(" ", w-2))
		default:
			nums = append(nums, p.header(num))
		}

		cell := l.Cell(gd.Day)
		cells[col] = &cell
		lines := len(cell.Lanes)
		if cell.Overflow {
			lines++
		}
		nLines = max(nLines, lines)
	}

	b.WriteString(strings.TrimRight(strings.Join(nums, " "), " "))
	b.WriteString("\n")

	for line := range nLines {
		var segs []string
		for col := 0; col < calendar.DaysPerWeek; {
			seg, span := laneSegment(cells[col], line, w, p)
			segs = append(segs, seg)
			col += span
		}
		b.WriteString(strings.TrimRight(strings.Join(segs, " "), " "))
		b.WriteString("\n")
	}
}

// laneSegment renders one line of a day cell and returns how many columns
// it consumed.
func laneSegment(c *calendar.DayCell, line, w int, p painter) (string, int) {
	blank := strings.Repeat(" ", w)
	if c == nil {
		return blank, 1
	}

	if line < len(c.Lanes) {
		lane := c.Lanes[line]
		if lane.Kind != calendar.LaneStart {
			return blank, 1
		}
		span := max(1, lane.Width)
		width := span*w + span - 1
		return p.task(lane.Task.Task, barLabel(lane.Task.Task, span > 1, width)), span
	}

	if line == len(c.Lanes) && c.Overflow {
		return p.paint(colorOverflow, pad(fmt.Sprintf("+%d more", c.HiddenCount), w)), 1
	}
	return blank, 1
}

// barLabel fits a task title into width columns. Multi-day bars are
// filled with a rule so their extent stays visible.
func barLabel(t *task.Task, multiDay bool, width int) string {
	label := t.Title
	if t.IsDone() {
		label = "✓ " + label
	}
	if ansi.StringWidth(label) >= width {
		return ansi.Truncate(label, width, "…")
	}
	if !multiDay {
		return pad(label, width)
	}
	fill := width - ansi.StringWidth(label) - 1
	return label + " " + strings.Repeat("─", fill)
}

// pad right-pads s with spaces to width, truncating when longer.
func pad(s string, width int) string {
	n := ansi.StringWidth(s)
	if n > width {
		return ansi.Truncate(s, width, "…")
	}
	return s + strings.Repeat(" ", width-n)
}

func center(s string, width int) string {
	n := ansi.StringWidth(s)
	if n >= width {
		return s
	}
	return strings.Repeat(" ", (width-n)/2) + s
}

// formatRange renders a task's effective range, e.g. "Mar 10 → Mar 14".
func formatRange(t *task.Task) string {
	start, end, ok := t.EffectiveRange()
	if !ok {
		return "undated"
	}
	if start == end {
		return start.Format("Mon Jan 2")
	}
	return start.Format("Jan 2") + " → " + end.Format("Jan 2")
}

func prioritySymbol(pr task.Priority) string {
	switch pr {
	case task.PriorityHigh:
		return "!!!"
	case task.PriorityMedium:
		return "!! "
	case task.PriorityLow:
		return "!  "
	default:
		return "   "
	}
}

func statusSymbol(s task.Status) string {
	switch s {
	case task.StatusDone:
		return "✓"
	case task.StatusInProgress:
		return "◐"
	case task.StatusTodo:
		return "○"
	default:
		return "·"
	}
}

// PrintTaskRow prints one task line: status, id, priority, title, range.
func PrintTaskRow(w io.Writer, t *task.Task, p painter) {
	status := string(t.Status)
	if t.Status == task.StatusTodo {
		status = ""
	}
	fmt.Fprintf(w, "  %s %s %s %s  %s %s\n",
		statusSymbol(t.Status),
		p.muted(fmt.Sprintf("%-8s", t.ShortID())),
		prioritySymbol(t.Priority),
		p.task(t, t.Title),
		p.muted(formatRange(t)),
		p.muted(status),
	)
}

// RenderDay prints the day detail list for date.
func RenderDay(w io.Writer, date dateutil.Date, tasks []*task.Task, p painter) {
	fmt.Fprintf(w, "%s\n", p.header(date.Format("Monday, January 2, 2006")))
	if len(tasks) == 0 {
		fmt.Fprintln(w, p.muted("  No tasks."))
		return
	}
	for _, t := range tasks {
		PrintTaskRow(w, t, p)
	}
}

// RenderActivity prints a feed page as a timeline grouped by day.
func RenderActivity(w io.Writer, feed *activity.Feed, today dateutil.Date, p painter) {
	if len(feed.Entries) == 0 {
		fmt.Fprintln(w, "No activity yet.")
		return
	}

	for i, g := range activity.Timeline(feed.Entries, today) {
		if i > 0 {
			fmt.Fprintln(w)
		}
		fmt.Fprintln(w, p.header(g.Label))
		for _, e := range g.Entries {
			fmt.Fprintf(w, "  %s  %s\n", p.muted(e.CreatedAt.Local().Format("15:04")), activity.Describe(e))
		}
	}

	pg := feed.Pagination
	fmt.Fprintf(w, "\n%s\n", p.muted(fmt.Sprintf("Page %d of %d (%d entries)", pg.Page, max(1, pg.TotalPages), pg.Total)))
}
