package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/javiermolinar/rocinante/internal/dateutil"
	"github.com/javiermolinar/rocinante/internal/tui/commands"
)

// keyMap holds the calendar key bindings; it doubles as the help.KeyMap.
type keyMap struct {
	Left      key.Binding
	Right     key.Binding
	Up        key.Binding
	Down      key.Binding
	PrevMonth key.Binding
	NextMonth key.Binding
	Today     key.Binding
	Open      key.Binding
	Activity  key.Binding
	Reload    key.Binding
	Help      key.Binding
	Quit      key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Left:      key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "prev day")),
		Right:     key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "next day")),
		Up:        key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "prev week")),
		Down:      key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "next week")),
		PrevMonth: key.NewBinding(key.WithKeys("[", "H"), key.WithHelp("[/H", "prev month")),
		NextMonth: key.NewBinding(key.WithKeys("]", "L"), key.WithHelp("]/L", "next month")),
		Today:     key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "today")),
		Open:      key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "day detail")),
		Activity:  key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "activity")),
		Reload:    key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reload")),
		Help:      key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:      key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Open, k.Activity, k.PrevMonth, k.NextMonth, k.Today, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Left, k.Right, k.Up, k.Down},
		{k.PrevMonth, k.NextMonth, k.Today},
		{k.Open, k.Activity, k.Reload},
		{k.Help, k.Quit},
	}
}

// handleKeyMsg handles keyboard input.
func (m Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	LogKeyPress(msg)

	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}
	if m.mode == ModeModal {
		return m.handleModalKeys(msg)
	}
	return m.handleNormalKeys(msg)
}

// handleNormalKeys handles keys on the month grid.
func (m Model) handleNormalKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Left):
		return m.moveCursor(m.cursor.AddDays(-1), "left")
	case key.Matches(msg, m.keys.Right):
		return m.moveCursor(m.cursor.AddDays(1), "right")
	case key.Matches(msg, m.keys.Up):
		return m.moveCursor(m.cursor.AddDays(-7), "up")
	case key.Matches(msg, m.keys.Down):
		return m.moveCursor(m.cursor.AddDays(7), "down")
	case key.Matches(msg, m.keys.PrevMonth):
		return m.moveCursor(m.cursor.ShiftMonths(-1), "prev month")
	case key.Matches(msg, m.keys.NextMonth):
		return m.moveCursor(m.cursor.ShiftMonths(1), "next month")
	case key.Matches(msg, m.keys.Today):
		return m.moveCursor(m.today(), "today")
	case key.Matches(msg, m.keys.Reload):
		m.loading = true
		return m, m.loadMonth()
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	case key.Matches(msg, m.keys.Open):
		m.daySel = 0
		m.openModal(ModalDay, "open day")
	case key.Matches(msg, m.keys.Activity):
		if m.repo == nil && !m.config.UsesRemoteActivity() && m.feed == nil {
			return m, nil
		}
		m.activityPage = 1
		m.activityFeed = nil
		m.openModal(ModalActivity, "open activity")
		return m, commands.LoadActivity(m.activitySource(), m.projectName, 1, m.config.Activity.PageSize)
	}
	return m, nil
}

// moveCursor selects d, loading its month when it is not the one shown.
func (m Model) moveCursor(d dateutil.Date, reason string) (tea.Model, tea.Cmd) {
	changed := d.Year != m.year || d.Month != m.month
	if changed {
		m.tasks = nil
	}
	m.setMonth(d)
	LogCursorMove(d, reason)

	if !changed || m.repo == nil {
		return m, nil
	}
	LogMonthChange(m.year, m.month, reason)
	m.loading = true
	return m, m.loadMonth()
}

func (m *Model) openModal(t ModalType, reason string) {
	LogModeChange(m.mode, ModeModal, reason)
	m.mode = ModeModal
	m.modalType = t
}

func (m *Model) closeModal(reason string) {
	LogModeChange(m.mode, ModeNormal, reason)
	m.mode = ModeNormal
	m.modalType = ModalNone
	m.adding = false
	m.formTitle.Blur()
}

// handleModalKeys handles keys while a modal is open.
func (m Model) handleModalKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.modalType {
	case ModalDay:
		if m.adding {
			return m.handleAddKeys(msg)
		}
		return m.handleDayKeys(msg)
	case ModalActivity:
		return m.handleActivityKeys(msg)
	case ModalInit:
		return m.handleInitKeys(msg)
	}
	return m, nil
}

func (m Model) handleDayKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	tasks := m.dayTasks()

	switch msg.String() {
	case "esc", "q", "enter":
		m.closeModal("close day")
	case "j", "down":
		if m.daySel < len(tasks)-1 {
			m.daySel++
		}
	case "k", "up":
		if m.daySel > 0 {
			m.daySel--
		}
	case "n":
		if m.project == nil {
			return m, nil
		}
		m.adding = true
		m.formPrio = 0
		m.formTitle.SetValue("")
		m.formTitle.Focus()
		return m, textinput.Blink
	case "x", " ":
		if m.daySel < len(tasks) {
			return m, commands.ToggleDone(m.repo, tasks[m.daySel])
		}
	case "y":
		return m, commands.Copy(dayDetailText(m.cursor, tasks), "day")
	}
	return m, nil
}

func (m Model) handleAddKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.adding = false
		m.formTitle.Blur()
		return m, nil
	case "tab":
		m.formPrio = (m.formPrio + 1) % len(priorityCycle)
		return m, nil
	case "enter":
		title := strings.TrimSpace(m.formTitle.Value())
		if title == "" {
			return m, nil
		}
		m.adding = false
		m.formTitle.Blur()
		return m, commands.CreateTask(m.repo, m.project.ID, title, m.cursor, priorityCycle[m.formPrio])
	}

	var cmd tea.Cmd
	m.formTitle, cmd = m.formTitle.Update(msg)
	return m, cmd
}

func (m Model) handleActivityKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "q", "a":
		m.closeModal("close activity")
	case "n":
		if m.activityFeed != nil && m.activityFeed.Pagination.HasNext() {
			m.activityPage++
			return m, commands.LoadActivity(m.activitySource(), m.projectName, m.activityPage, m.config.Activity.PageSize)
		}
	case "p":
		if m.activityPage > 1 {
			m.activityPage--
			return m, commands.LoadActivity(m.activitySource(), m.projectName, m.activityPage, m.config.Activity.PageSize)
		}
	}
	return m, nil
}

func (m Model) handleInitKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "q":
		return m, tea.Quit
	case "enter":
		updated, err := m.initializeStorage()
		if err != nil {
			LogError("initialize storage", err)
			m.initError = err.Error()
			return m, nil
		}
		m = updated
		m.initState.NeedsInit = false
		m.initError = ""
		m.closeModal("initialized")
		m.loading = true
		return m, tea.Batch(m.loadMonth(), statusCmd(fmt.Sprintf("Created %s", m.initState.DBPath)))
	}
	return m, nil
}

func statusCmd(msg string) tea.Cmd {
	return func() tea.Msg {
		return commands.StatusMsgCmd{Msg: msg}
	}
}
