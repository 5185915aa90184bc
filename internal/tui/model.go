// Package tui provides the terminal user interface for rocinante.
package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/javiermolinar/rocinante/internal/activity"
	"github.com/javiermolinar/rocinante/internal/calendar"
	"github.com/javiermolinar/rocinante/internal/config"
	"github.com/javiermolinar/rocinante/internal/dateutil"
	"github.com/javiermolinar/rocinante/internal/task"
	"github.com/javiermolinar/rocinante/internal/tui/commands"
	"github.com/javiermolinar/rocinante/internal/tui/theme"
)

// Repository is what the TUI needs from storage.
type Repository interface {
	task.Repository
	activity.Store
}

// Mode represents the current interaction mode.
type Mode int

const (
	ModeNormal Mode = iota
	ModeModal
)

// ModalType identifies the type of modal.
type ModalType int

const (
	ModalNone     ModalType = iota
	ModalDay                // Day detail with quick add
	ModalActivity           // Project activity timeline
	ModalInit               // First run setup
)

// priorityCycle is the order tab walks through in the add form.
var priorityCycle = []task.Priority{task.PriorityNone, task.PriorityHigh, task.PriorityMedium, task.PriorityLow}

// Model is the main TUI model.
type Model struct {
	// Dependencies
	repo        Repository
	config      *config.Config
	feed        activity.Source
	projectName string

	// Theme and styles
	theme  *theme.Theme
	styles *Styles

	// Month state
	project *task.Project
	year    int
	month   time.Month
	cursor  dateutil.Date
	tasks   []*task.Task
	layout  *calendar.MonthLayout
	loading bool

	mode      Mode
	modalType ModalType

	// Day modal
	daySel    int
	adding    bool
	formTitle textinput.Model
	formPrio  int // Index into priorityCycle

	// Activity modal
	activityPage int
	activityFeed *activity.Feed

	// Init modal
	initState InitState
	initError string

	overlay OverlayModel
	keys    keyMap
	help    help.Model

	width  int
	height int

	// Messages
	statusMsg  string    // Temporary status/error message
	statusTime time.Time // When to clear message
	err        error

	now func() time.Time
}

// ModelOption configures optional model behavior.
type ModelOption func(*Model)

// WithInitState sets the startup initialization state.
func WithInitState(state InitState) ModelOption {
	return func(m *Model) {
		m.initState = state
		if state.NeedsInit {
			m.mode = ModeModal
			m.modalType = ModalInit
		}
	}
}

// WithProject selects the project instead of the configured default.
func WithProject(name string) ModelOption {
	return func(m *Model) {
		if name != "" {
			m.projectName = name
		}
	}
}

// WithActivitySource reads the activity modal from src.
func WithActivitySource(src activity.Source) ModelOption {
	return func(m *Model) {
		m.feed = src
	}
}

// WithClock replaces time.Now, which decides "today".
func WithClock(now func() time.Time) ModelOption {
	return func(m *Model) {
		m.now = now
		m.setMonth(m.today())
	}
}

// New creates a new TUI model.
func New(repo Repository, cfg *config.Config, opts ...ModelOption) *Model {
	t, err := theme.Load(cfg.UI.Theme)
	if err != nil {
		t = theme.MustLoad(theme.DefaultName)
	}
	styles := NewStyles(t)

	formTitle := textinput.New()
	formTitle.Placeholder = "Task title"
	formTitle.CharLimit = 256
	formTitle.Width = 36
	formTitle.PlaceholderStyle = styles.ModalPlaceholderStyle
	formTitle.TextStyle = styles.ModalInputTextStyle
	formTitle.PromptStyle = styles.ModalInputTextStyle

	m := &Model{
		repo:        repo,
		config:      cfg,
		projectName: cfg.Project.Default,
		theme:       t,
		styles:      styles,
		mode:        ModeNormal,
		formTitle:   formTitle,
		overlay:     NewOverlayModel(),
		keys:        defaultKeyMap(),
		help:        help.New(),
		now:         time.Now,
	}
	m.help.Styles.ShortKey = styles.HelpStyle.Bold(true)
	m.help.Styles.ShortDesc = styles.HelpStyle
	m.help.Styles.FullKey = styles.HelpStyle.Bold(true)
	m.help.Styles.FullDesc = styles.HelpStyle
	m.setMonth(m.today())

	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	if m.initState.NeedsInit || m.repo == nil {
		return nil
	}
	return m.loadMonth()
}

func (m Model) today() dateutil.Date {
	return dateutil.FromTime(m.now())
}

// setMonth moves the cursor to d and shows d's month.
func (m *Model) setMonth(d dateutil.Date) {
	m.cursor = d
	m.year, m.month = d.Year, d.Month
	m.layout = m.buildLayout()
}

func (m Model) buildLayout() *calendar.MonthLayout {
	return calendar.Layout(m.tasks, m.year, m.month, calendar.Options{
		OverflowLimit: m.config.Calendar.OverflowLimit,
		WeekStart:     m.config.WeekStartDay(),
	})
}

func (m Model) loadMonth() tea.Cmd {
	create := m.projectName == m.config.Project.Default
	return commands.LoadMonth(m.repo, m.projectName, create, m.year, m.month)
}

// activitySource returns the configured feed, the remote server when one
// is set, else the local store.
func (m Model) activitySource() activity.Source {
	switch {
	case m.feed != nil:
		return m.feed
	case m.config.UsesRemoteActivity():
		return activity.NewClient(
			m.config.Activity.BaseURL,
			m.config.ActivityTimeout(),
			activity.WithToken(m.config.Activity.Token),
		)
	default:
		return activity.NewStoreSource(m.repo)
	}
}

// dayTasks returns the tasks of the cursor day in display order.
func (m Model) dayTasks() []*task.Task {
	return calendar.DayDetail(m.tasks, m.cursor)
}

// Run starts the TUI.
func Run(repo Repository, cfg *config.Config, opts ...ModelOption) error {
	return RunWithDebug(repo, cfg, false, opts...)
}

// RunWithDebug starts the TUI with optional debug logging.
func RunWithDebug(repo Repository, cfg *config.Config, debug bool, opts ...ModelOption) error {
	if err := InitDebugLogger(debug); err != nil {
		return err
	}
	defer CloseDebugLogger()

	initialRepo := repo
	var initState InitState

	if repo == nil {
		state, err := DetectInitState(cfg)
		if err != nil {
			return err
		}
		initState = state
		if !state.NeedsInit {
			repo, err = openRepo(state.DBPath)
			if err != nil {
				return err
			}
		}
	}

	model := New(repo, cfg, append([]ModelOption{WithInitState(initState)}, opts...)...)
	p := tea.NewProgram(*model, tea.WithAltScreen())
	finalModel, err := p.Run()
	if initialRepo == nil {
		if m, ok := finalModel.(Model); ok && m.repo != nil {
			_ = m.repo.Close()
		}
	}
	return err
}
