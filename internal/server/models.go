package server

import (
	"time"

	"github.com/javiermolinar/rocinante/internal/calendar"
	"github.com/javiermolinar/rocinante/internal/dateutil"
	"github.com/javiermolinar/rocinante/internal/task"
)

// CreateProjectRequest is the body of POST /api/projects.
type CreateProjectRequest struct {
	Name string `json:"name" validate:"required,max=100"`
}

// CreateTaskRequest is the body of POST /api/projects/{project}/tasks.
type CreateTaskRequest struct {
	Title    string `json:"title" validate:"required,max=500"`
	Start    string `json:"start,omitempty" validate:"omitempty,datetime=2006-01-02"`
	Due      string `json:"due,omitempty" validate:"omitempty,datetime=2006-01-02"`
	End      string `json:"end,omitempty" validate:"omitempty,datetime=2006-01-02"`
	Priority string `json:"priority,omitempty" validate:"omitempty,oneof=high medium low"`
	Status   string `json:"status,omitempty" validate:"omitempty,max=50"`
}

// SetStatusRequest is the body of PATCH .../tasks/{id}/status.
type SetStatusRequest struct {
	Status string `json:"status" validate:"required,max=50"`
}

// ProjectResponse is the JSON form of a project.
type ProjectResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// TaskResponse is the JSON form of a task. Dates are YYYY-MM-DD.
type TaskResponse struct {
	ID        string         `json:"id"`
	ProjectID string         `json:"project_id"`
	Title     string         `json:"title"`
	Start     *dateutil.Date `json:"start,omitempty"`
	Due       *dateutil.Date `json:"due,omitempty"`
	End       *dateutil.Date `json:"end,omitempty"`
	Priority  string         `json:"priority,omitempty"`
	Status    string         `json:"status"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
}

// PositionedTaskResponse is a task placed in a lane of the month grid.
type PositionedTaskResponse struct {
	Task             TaskResponse  `json:"task"`
	Slot             int           `json:"slot"`
	StartDayIndex    int           `json:"start_day_index"`
	EndDayIndex      int           `json:"end_day_index"`
	IsStartThisMonth bool          `json:"is_start_this_month"`
	SpanDays         int           `json:"span_days"`
	Start            dateutil.Date `json:"start"`
	End              dateutil.Date `json:"end"`
}

// LaneResponse is one visible lane of a day cell.
type LaneResponse struct {
	Slot   int    `json:"slot"`
	Kind   string `json:"kind"`
	TaskID string `json:"task_id,omitempty"`
	Title  string `json:"title,omitempty"`
	Width  int    `json:"width,omitempty"`
}

// DayCellResponse is one in-month day of a week row.
type DayCellResponse struct {
	Day         int            `json:"day"`
	Date        dateutil.Date  `json:"date"`
	Column      int            `json:"column"`
	Lanes       []LaneResponse `json:"lanes"`
	Overflow    bool           `json:"overflow"`
	HiddenCount int            `json:"hidden_count"`
}

// WeekResponse is one row of the grid. Padding days are null.
type WeekResponse struct {
	Start dateutil.Date      `json:"start"`
	Days  []*DayCellResponse `json:"days"`
}

// CalendarResponse is the month layout.
type CalendarResponse struct {
	Year          int                      `json:"year"`
	Month         int                      `json:"month"`
	DaysInMonth   int                      `json:"days_in_month"`
	OverflowLimit int                      `json:"overflow_limit"`
	WeekStart     string                   `json:"week_start"`
	Weekdays      []string                 `json:"weekdays"`
	Tasks         []PositionedTaskResponse `json:"tasks"`
	Occupancy     map[int][]int            `json:"occupancy"`
	Weeks         []WeekResponse           `json:"weeks"`
}

// DayResponse is the day detail list.
type DayResponse struct {
	Date  dateutil.Date  `json:"date"`
	Tasks []TaskResponse `json:"tasks"`
}

func projectToResponse(p *task.Project) ProjectResponse {
	return ProjectResponse{ID: p.ID, Name: p.Name, CreatedAt: p.CreatedAt}
}

func taskToResponse(t *task.Task) TaskResponse {
	return TaskResponse{
		ID:        t.ID,
		ProjectID: t.ProjectID,
		Title:     t.Title,
		Start:     t.Start,
		Due:       t.Due,
		End:       t.End,
		Priority:  string(t.Priority),
		Status:    string(t.Status),
		CreatedAt: t.CreatedAt,
		UpdatedAt: t.UpdatedAt,
	}
}

func tasksToResponse(tasks []*task.Task) []TaskResponse {
	out := make([]TaskResponse, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, taskToResponse(t))
	}
	return out
}

func calendarToResponse(l *calendar.MonthLayout) CalendarResponse {
	labels := calendar.WeekdayLabels(l.WeekStart)
	resp := CalendarResponse{
		Year:          l.Year,
		Month:         int(l.Month),
		DaysInMonth:   l.DaysInMonth,
		OverflowLimit: l.OverflowLimit,
		WeekStart:     l.WeekStart.String(),
		Weekdays:      labels[:],
		Tasks:         make([]PositionedTaskResponse, 0, len(l.Tasks)),
		Occupancy:     make(map[int][]int, len(l.Occupancy)),
	}

	for _, p := range l.Tasks {
		resp.Tasks = append(resp.Tasks, PositionedTaskResponse{
			Task:             taskToResponse(p.Task),
			Slot:             p.Slot,
			StartDayIndex:    p.StartDayIndex,
			EndDayIndex:      p.EndDayIndex,
			IsStartThisMonth: p.IsStartThisMonth,
			SpanDays:         p.SpanDays,
			Start:            p.Start,
			End:              p.End,
		})
	}
	for day := range l.Occupancy {
		resp.Occupancy[day] = l.Occupancy.Slots(day)
	}

	for _, w := range l.Weeks() {
		row := WeekResponse{Start: w.Start, Days: make([]*DayCellResponse, calendar.DaysPerWeek)}
		for i, gd := range w.Days {
			if !gd.InMonth() {
				continue
			}
			cell := dayCellToResponse(l.Cell(gd.Day))
			row.Days[i] = &cell
		}
		resp.Weeks = append(resp.Weeks, row)
	}
	return resp
}

func dayCellToResponse(c calendar.DayCell) DayCellResponse {
	resp := DayCellResponse{
		Day:         c.Day,
		Date:        c.Date,
		Column:      c.Column,
		Lanes:       make([]LaneResponse, 0, len(c.Lanes)),
		Overflow:    c.Overflow,
		HiddenCount: c.HiddenCount,
	}
	for _, lane := range c.Lanes {
		lr := LaneResponse{Slot: lane.Slot, Kind: lane.Kind.String(), Width: lane.Width}
		if lane.Task != nil {
			lr.TaskID = lane.Task.Task.ID
			if lane.Kind == calendar.LaneStart {
				lr.Title = lane.Task.Task.Title
			}
		}
		resp.Lanes = append(resp.Lanes, lr)
	}
	return resp
}
