package tui

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/javiermolinar/rocinante/internal/tui/commands"
)

const (
	statusTTL = 3 * time.Second
	errorTTL  = 5 * time.Second
)

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyMsg(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case commands.MonthLoadedMsg:
		// Drop answers for a month the user already left.
		if msg.Year != m.year || msg.Month != m.month {
			return m, nil
		}
		m.project = msg.Project
		m.tasks = msg.Tasks
		m.layout = m.buildLayout()
		m.loading = false
		m.clampDaySelection()
		LogLayout(m.layout)
		return m, nil

	case commands.ActivityLoadedMsg:
		// Paging faster than the source answers can reorder responses.
		if m.modalType != ModalActivity || msg.Page != m.activityPage {
			return m, nil
		}
		m.activityFeed = msg.Feed
		return m, nil

	case commands.TaskChangedMsg:
		m.loading = true
		tick := m.setStatus(fmt.Sprintf("%s %q", msg.Verb, msg.Task.Title), statusTTL)
		return m, tea.Batch(m.loadMonth(), tick)

	case commands.CopiedMsg:
		tick := m.setStatus(fmt.Sprintf("Copied %s to clipboard", msg.What), statusTTL)
		return m, tick

	case commands.ErrMsg:
		LogError("command", msg.Err)
		m.err = msg.Err
		m.loading = false
		tick := m.setStatus(fmt.Sprintf("Error: %v", msg.Err), errorTTL)
		return m, tick

	case commands.StatusMsgCmd:
		tick := m.setStatus(msg.Msg, statusTTL)
		return m, tick

	case commands.ClearStatusMsg:
		if !m.now().Before(m.statusTime) {
			m.statusMsg = ""
			m.err = nil
		}
		return m, nil
	}

	return m, nil
}

// setStatus shows msg in the footer and schedules its removal.
func (m *Model) setStatus(msg string, ttl time.Duration) tea.Cmd {
	m.statusMsg = msg
	m.statusTime = m.now().Add(ttl)
	return tea.Tick(ttl, func(time.Time) tea.Msg {
		return commands.ClearStatusMsg{}
	})
}

func (m *Model) clampDaySelection() {
	n := len(m.dayTasks())
	if m.daySel >= n {
		m.daySel = max(0, n-1)
	}
}
