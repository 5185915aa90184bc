package calendar

import "github.com/javiermolinar/rocinante/internal/dateutil"

// LaneKind says what a lane of a day cell draws.
type LaneKind int

const (
	// LaneEmpty is an unoccupied lane kept as a blank spacer for alignment.
	LaneEmpty LaneKind = iota
	// LaneStart draws a task's start tile with its label.
	LaneStart
	// LaneCovered lies under a bar that started earlier in the same week row.
	LaneCovered
	// LaneSpacer is occupied by a task whose bar is not drawn here: a
	// continuation in a later week row or a task carried over from an
	// earlier month. It renders blank.
	LaneSpacer
)

// String returns a short name for the lane kind.
func (k LaneKind) String() string {
	switch k {
	case LaneStart:
		return "start"
	case LaneCovered:
		return "covered"
	case LaneSpacer:
		return "spacer"
	default:
		return "empty"
	}
}

// Lane is one visible row of a day cell.
type Lane struct {
	Slot  int
	Kind  LaneKind
	Task  *PositionedTask // nil for LaneEmpty
	Width int             // Columns spanned by a start tile, clamped to the week
}

// DayCell is the render decision for one day of the month.
type DayCell struct {
	Day         int
	Date        dateutil.Date
	Column      int // 0..6 within the week row
	MaxSlot     int // Highest occupied lane, -1 when free
	Occupied    int // Number of occupied lanes
	Lanes       []Lane
	Overflow    bool // Show the "+N more" affordance
	HiddenCount int  // N in "+N more"
}

// Cell computes what day (1..DaysInMonth) renders: the visible lanes,
// spacers below the highest lane, and the overflow affordance once a lane
// at or beyond the overflow limit is taken.
//
// HiddenCount is the number of occupied lanes at or beyond the limit. On a
// dense day this is Occupied - OverflowLimit. On a sparse day, where some
// visible lanes are spacers, it is larger than that difference: with limit 3
// and lanes {0, 3} taken the cell shows "+1 more", not "+-1".
func (l *MonthLayout) Cell(day int) DayCell {
	date := l.Date(day)
	cell := DayCell{
		Day:      day,
		Date:     date,
		Column:   Column(date, l.WeekStart),
		MaxSlot:  l.Occupancy.MaxSlot(day),
		Occupied: l.Occupancy.Count(day),
	}

	visible := cell.MaxSlot + 1
	if cell.MaxSlot >= l.OverflowLimit {
		visible = l.OverflowLimit
		cell.Overflow = true
		for _, slot := range l.Occupancy.Slots(day) {
			if slot >= l.OverflowLimit {
				cell.HiddenCount++
			}
		}
	}

	cell.Lanes = make([]Lane, 0, visible)
	for slot := 0; slot < visible; slot++ {
		cell.Lanes = append(cell.Lanes, l.lane(day, slot, cell.Column))
	}
	return cell
}

func (l *MonthLayout) lane(day, slot, column int) Lane {
	p, ok := l.TaskAt(day, slot)
	if !ok {
		return Lane{Slot: slot, Kind: LaneEmpty}
	}

	lane := Lane{Slot: slot, Task: &p}
	offset := day - p.StartDayIndex
	startColumn := column - offset
	switch {
	case p.IsStartThisMonth && offset == 0:
		lane.Kind = LaneStart
		lane.Width = BarWidth(p.SpanDays, column)
	case p.IsStartThisMonth && startColumn >= 0 && offset < BarWidth(p.SpanDays, startColumn):
		lane.Kind = LaneCovered
	default:
		lane.Kind = LaneSpacer
	}
	return lane
}

// Cells returns the cells for every day of the month.
func (l *MonthLayout) Cells() []DayCell {
	cells := make([]DayCell, 0, l.DaysInMonth)
	for day := 1; day <= l.DaysInMonth; day++ {
		cells = append(cells, l.Cell(day))
	}
	return cells
}

// BarWidth clamps a span to the columns left in the week row starting at
// column. Bars never wrap into the next row; later rows get no
// continuation label.
func BarWidth(spanDays, column int) int {
	return max(0, min(spanDays, DaysPerWeek-column))
}
