package tui

import (
	"fmt"
	"strings"

	"github.com/javiermolinar/rocinante/internal/activity"
	"github.com/javiermolinar/rocinante/internal/dateutil"
	"github.com/javiermolinar/rocinante/internal/task"
	"github.com/javiermolinar/rocinante/internal/tui/view"
)

const modalContentWidth = 48

// renderModal renders the current modal.
func (m Model) renderModal() string {
	switch m.modalType {
	case ModalDay:
		return m.renderDayModal()
	case ModalActivity:
		return m.renderActivityModal()
	case ModalInit:
		return m.renderInitModal()
	default:
		return ""
	}
}

func (m Model) renderDayModal() string {
	styles := m.styles.modalStyles()
	tasks := m.dayTasks()

	dm := view.DayModel{
		Width:     modalContentWidth,
		EmptyText: "No tasks.",
	}
	for i, t := range tasks {
		dm.Rows = append(dm.Rows, view.DayRow{
			Status:   statusSymbol(t.Status),
			Title:    t.Title,
			Meta:     taskMeta(t),
			Selected: i == m.daySel && !m.adding,
			Done:     t.IsDone(),
		})
	}
	if m.adding {
		dm.Input = m.formTitle.View()
		dm.Priority = priorityName(priorityCycle[m.formPrio])
	}

	title := m.cursor.Format("Monday, January 2, 2006")
	body := view.RenderDayBody(dm, styles)
	return view.RenderModalFrame(title, body, view.DayDetailFooter(m.adding, styles), styles)
}

func (m Model) renderActivityModal() string {
	styles := m.styles.modalStyles()
	am := view.ActivityModel{Width: modalContentWidth, Loading: m.activityFeed == nil}

	hasPrev, hasNext := false, false
	if feed := m.activityFeed; feed != nil {
		for _, g := range activity.Timeline(feed.Entries, m.today()) {
			group := view.ActivityGroup{Label: g.Label}
			for _, e := range g.Entries {
				group.Lines = append(group.Lines, view.ActivityLine{
					Time: e.CreatedAt.Local().Format("15:04"),
					Text: activity.Describe(e),
				})
			}
			am.Groups = append(am.Groups, group)
		}
		pg := feed.Pagination
		am.PageLabel = fmt.Sprintf("Page %d of %d (%d entries)", pg.Page, max(1, pg.TotalPages), pg.Total)
		hasPrev, hasNext = pg.HasPrev(), pg.HasNext()
	}

	title := "Activity · " + m.projectName
	body := view.RenderActivityBody(am, styles)
	return view.RenderModalFrame(title, body, view.ActivityFooter(hasPrev, hasNext, styles), styles)
}

func (m Model) renderInitModal() string {
	styles := m.styles.modalStyles()
	body := view.RenderInitBody(view.InitModel{
		ConfigPath:    m.initState.ConfigPath,
		DBPath:        m.initState.DBPath,
		ConfigMissing: m.initState.ConfigMissing,
		DBMissing:     m.initState.DBMissing,
		Error:         m.initError,
	}, styles)
	return view.RenderModalFrame("Initialize Rocinante", body, view.InitFooter(styles), styles)
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

func priorityName(p task.Priority) string {
	if p == task.PriorityNone {
		return "none"
	}
	return string(p)
}

// taskMeta is the secondary line of a day row: range, priority, status.
func taskMeta(t *task.Task) string {
	var parts []string
	if start, end, ok := t.EffectiveRange(); ok && start != end {
		parts = append(parts, start.Format("Jan 2")+" → "+end.Format("Jan 2"))
	}
	if t.Priority != task.PriorityNone {
		parts = append(parts, string(t.Priority))
	}
	if t.Status != task.StatusTodo && t.Status != task.StatusDone {
		parts = append(parts, string(t.Status))
	}
	return strings.Join(parts, " · ")
}

// dayDetailText is the clipboard form of the day detail.
func dayDetailText(date dateutil.Date, tasks []*task.Task) string {
	var b strings.Builder
	b.WriteString(date.Format("Monday, January 2, 2006"))
	b.WriteString("\n")
	if len(tasks) == 0 {
		b.WriteString("No tasks.\n")
		return b.String()
	}
	for _, t := range tasks {
		check := " "
		if t.IsDone() {
			check = "x"
		}
		fmt.Fprintf(&b, "- [%s] %s", check, t.Title)
		if meta := taskMeta(t); meta != "" {
			fmt.Fprintf(&b, " (%s)", meta)
		}
		b.WriteString("\n")
	}
	return b.String()
}
