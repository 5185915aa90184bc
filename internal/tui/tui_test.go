package tui

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/javiermolinar/rocinante/internal/config"
	"github.com/javiermolinar/rocinante/internal/db"
	"github.com/javiermolinar/rocinante/internal/dateutil"
	"github.com/javiermolinar/rocinante/internal/task"
	"github.com/javiermolinar/rocinante/internal/tui/commands"
)

func TestMain(m *testing.M) {
	lipgloss.SetColorProfile(termenv.Ascii)
	os.Exit(m.Run())
}

// fixedNow is Wednesday, March 12, 2025.
func fixedNow() time.Time {
	return time.Date(2025, time.March, 12, 10, 0, 0, 0, time.Local)
}

func newTestModel(t *testing.T, repo Repository) Model {
	t.Helper()
	cfg := config.Default()
	cfg.Storage.DBPath = filepath.Join(t.TempDir(), "rocinante.db")
	m := New(repo, cfg, WithClock(fixedNow))
	m.width, m.height = 120, 48
	return *m
}

func newTestRepo(t *testing.T) *db.SQLite {
	t.Helper()
	repo, err := db.New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("creating repo: %v", err)
	}
	t.Cleanup(func() { _ = repo.Close() })
	return repo
}

func keyMsg(k string) tea.KeyMsg {
	switch k {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
	}
}

// press feeds keys to the model and returns the last command.
func press(t *testing.T, m Model, keys ...string) (Model, tea.Cmd) {
	t.Helper()
	var cmd tea.Cmd
	for _, k := range keys {
		var updated tea.Model
		updated, cmd = m.Update(keyMsg(k))
		m = updated.(Model)
	}
	return m, cmd
}

func send(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	updated, cmd := m.Update(msg)
	return updated.(Model), cmd
}

func mustTask(t *testing.T, title string, opts task.NewOptions) *task.Task {
	t.Helper()
	tsk, err := task.New(title, "p1", opts)
	if err != nil {
		t.Fatalf("task.New failed: %v", err)
	}
	return tsk
}

func loadMarch(t *testing.T, m Model, tasks ...*task.Task) Model {
	t.Helper()
	m, _ = send(t, m, commands.MonthLoadedMsg{
		Project: &task.Project{ID: "p1", Name: "inbox"},
		Year:    2025,
		Month:   time.March,
		Tasks:   tasks,
	})
	return m
}

func TestNew_StartsOnToday(t *testing.T) {
	m := newTestModel(t, nil)

	if m.cursor != dateutil.NewDate(2025, time.March, 12) {
		t.Errorf("expected cursor on today, got %s", m.cursor)
	}
	if m.year != 2025 || m.month != time.March {
		t.Errorf("expected March 2025, got %s %d", m.month, m.year)
	}
	if m.Init() != nil {
		t.Error("expected no initial command without a repository")
	}
}

func TestNew_UnknownThemeFallsBack(t *testing.T) {
	cfg := config.Default()
	cfg.UI.Theme = "nope"
	m := New(nil, cfg)
	if m.theme.Name != "mocha" {
		t.Errorf("expected mocha fallback, got %s", m.theme.Name)
	}
}

func TestNavigation(t *testing.T) {
	tests := []struct {
		name  string
		keys  []string
		want  dateutil.Date
		month time.Month
	}{
		{"right", []string{"l"}, dateutil.NewDate(2025, time.March, 13), time.March},
		{"left arrow", []string{"left"}, dateutil.NewDate(2025, time.March, 11), time.March},
		{"down a week", []string{"j"}, dateutil.NewDate(2025, time.March, 19), time.March},
		{"up a week", []string{"up"}, dateutil.NewDate(2025, time.March, 5), time.March},
		{"next month", []string{"]"}, dateutil.NewDate(2025, time.April, 12), time.April},
		{"prev month", []string{"H"}, dateutil.NewDate(2025, time.February, 12), time.February},
		{"off the month end", []string{"j", "j", "j"}, dateutil.NewDate(2025, time.April, 2), time.April},
		{"back to today", []string{"L", "L", "t"}, dateutil.NewDate(2025, time.March, 12), time.March},
		{"clamped to a shorter month", []string{"j", "j", "j", "h", "h", "]"}, dateutil.NewDate(2025, time.April, 30), time.April},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, _ := press(t, newTestModel(t, nil), tt.keys...)
			if m.cursor != tt.want {
				t.Errorf("cursor = %s, want %s", m.cursor, tt.want)
			}
			if m.month != tt.month {
				t.Errorf("month = %s, want %s", m.month, tt.month)
			}
		})
	}
}

func TestNavigation_MonthChangeClearsTasks(t *testing.T) {
	m := loadMarch(t, newTestModel(t, nil), mustTask(t, "Ship", task.NewOptions{Due: "2025-03-12"}))
	if len(m.tasks) != 1 {
		t.Fatalf("expected 1 task, got %d", len(m.tasks))
	}

	m, _ = press(t, m, "]")
	if len(m.tasks) != 0 || len(m.layout.Tasks) != 0 {
		t.Errorf("expected April to start empty, got %d tasks", len(m.tasks))
	}
}

func TestMonthLoaded_StaleMonthIgnored(t *testing.T) {
	m, _ := press(t, newTestModel(t, nil), "]")

	m = loadMarch(t, m, mustTask(t, "Ship", task.NewOptions{Due: "2025-03-12"}))
	if len(m.tasks) != 0 {
		t.Errorf("expected the March answer to be dropped while April is shown")
	}
}

func TestView_MonthGrid(t *testing.T) {
	m := loadMarch(t, newTestModel(t, nil),
		mustTask(t, "Conference", task.NewOptions{Start: "2025-03-04", End: "2025-03-06", Priority: "high"}),
		mustTask(t, "Alpha", task.NewOptions{Due: "2025-03-20"}),
		mustTask(t, "Bravo", task.NewOptions{Due: "2025-03-20"}),
		mustTask(t, "Charlie", task.NewOptions{Due: "2025-03-20"}),
		mustTask(t, "Delta", task.NewOptions{Due: "2025-03-20"}),
	)

	out := m.View()
	for _, want := range []string{"March 2025", "inbox", "Mon", "Sun", "Conference", "Alpha", "Charlie", "+1 more"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in view:\n%s", want, out)
		}
	}
	if strings.Contains(out, "Delta") {
		t.Errorf("expected Delta hidden behind the overflow:\n%s", out)
	}
}

func TestView_TooSmall(t *testing.T) {
	m := newTestModel(t, nil)
	m.width, m.height = 20, 10
	if !strings.Contains(m.View(), "Terminal too small") {
		t.Error("expected a too-small notice")
	}

	m.width, m.height = 0, 0
	if m.View() != "Loading calendar..." {
		t.Errorf("expected placeholder before the first resize, got %q", m.View())
	}
}

func TestHelpToggle(t *testing.T) {
	m := newTestModel(t, nil)
	short := m.View()

	m, _ = press(t, m, "?")
	if !m.help.ShowAll {
		t.Fatal("expected full help")
	}
	full := m.View()
	if !strings.Contains(full, "prev week") || strings.Contains(short, "prev week") {
		t.Error("expected full help to list the week bindings")
	}
}

func TestDayModal(t *testing.T) {
	m := loadMarch(t, newTestModel(t, nil),
		mustTask(t, "Ship", task.NewOptions{Due: "2025-03-12", Priority: "high"}),
		mustTask(t, "Review", task.NewOptions{Start: "2025-03-10", End: "2025-03-14"}),
	)

	m, _ = press(t, m, "enter")
	if m.mode != ModeModal || m.modalType != ModalDay {
		t.Fatalf("expected day modal, got mode %d modal %d", m.mode, m.modalType)
	}

	out := m.View()
	for _, want := range []string{"Wednesday, March 12, 2025", "Ship", "Review", "Mar 10 → Mar 14", "[y] Copy"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in day modal:\n%s", want, out)
		}
	}

	m, _ = press(t, m, "j", "j")
	if m.daySel != 1 {
		t.Errorf("expected selection clamped to the last task, got %d", m.daySel)
	}

	m, _ = press(t, m, "esc")
	if m.mode != ModeNormal || m.modalType != ModalNone {
		t.Error("expected esc to close the modal")
	}
	if m.View() != m.renderAppContent() {
		t.Error("expected the plain grid once the modal is closed")
	}
}

func TestDayDetailText(t *testing.T) {
	date := dateutil.NewDate(2025, time.March, 12)
	done := mustTask(t, "Ship", task.NewOptions{Due: "2025-03-12", Priority: "high", Status: "done"})
	ranged := mustTask(t, "Review", task.NewOptions{Start: "2025-03-10", End: "2025-03-14"})

	got := dayDetailText(date, []*task.Task{done, ranged})
	want := "Wednesday, March 12, 2025\n- [x] Ship (high)\n- [ ] Review (Mar 10 → Mar 14)\n"
	if got != want {
		t.Errorf("dayDetailText =\n%q\nwant\n%q", got, want)
	}

	if got := dayDetailText(date, nil); !strings.HasSuffix(got, "No tasks.\n") {
		t.Errorf("unexpected empty text %q", got)
	}
}

func TestDayModal_AddAndToggle(t *testing.T) {
	repo := newTestRepo(t)
	m := newTestModel(t, repo)

	m, _ = send(t, m, m.Init()())
	if m.project == nil || m.project.Name != "inbox" {
		t.Fatalf("expected the default project to be created, got %+v", m.project)
	}

	m, _ = press(t, m, "enter", "n", "S", "h", "i", "p", "tab", "tab")
	if !m.adding || m.formTitle.Value() != "Ship" {
		t.Fatalf("expected add form with title Ship, got adding=%t value=%q", m.adding, m.formTitle.Value())
	}
	if priorityCycle[m.formPrio] != task.PriorityMedium {
		t.Errorf("expected tab twice to select medium, got %q", priorityCycle[m.formPrio])
	}

	m, cmd := press(t, m, "enter")
	changed, ok := cmd().(commands.TaskChangedMsg)
	if !ok {
		t.Fatalf("expected TaskChangedMsg")
	}
	if changed.Task.Due.String() != "2025-03-12" || changed.Task.Priority != task.PriorityMedium {
		t.Errorf("unexpected created task %+v", changed.Task)
	}

	m, cmd = send(t, m, changed)
	m, _ = send(t, m, cmd().(tea.BatchMsg)[0]())
	if len(m.dayTasks()) != 1 {
		t.Fatalf("expected the new task after reload, got %d", len(m.dayTasks()))
	}

	_, cmd = press(t, m, "x")
	toggled, ok := cmd().(commands.TaskChangedMsg)
	if !ok || !toggled.Task.IsDone() {
		t.Fatalf("expected the task to be done, got %#v", toggled)
	}
}

func TestActivityModal(t *testing.T) {
	repo := newTestRepo(t)
	m := newTestModel(t, repo)
	m.config.Activity.PageSize = 2
	m, _ = send(t, m, m.Init()())

	for _, title := range []string{"One", "Two", "Three"} {
		tsk, _ := task.New(title, m.project.ID, task.NewOptions{})
		if err := repo.CreateTask(context.Background(), tsk); err != nil {
			t.Fatalf("CreateTask failed: %v", err)
		}
	}

	m, cmd := press(t, m, "a")
	if m.modalType != ModalActivity {
		t.Fatal("expected activity modal")
	}
	if !strings.Contains(m.View(), "Loading...") {
		t.Error("expected a loading state before the page arrives")
	}

	m, _ = send(t, m, cmd())
	out := m.View()
	for _, want := range []string{`created "Three"`, `created "Two"`, "Page 1 of 2", "[n] Older"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in activity modal:\n%s", want, out)
		}
	}

	m, cmd = press(t, m, "n")
	m, _ = send(t, m, cmd())
	if m.activityPage != 2 || !strings.Contains(m.View(), `created "One"`) {
		t.Errorf("expected page 2 with the oldest entry:\n%s", m.View())
	}

	m, cmd = press(t, m, "n")
	if cmd != nil {
		t.Error("expected no request past the last page")
	}

	m, _ = press(t, m, "esc")
	if m.modalType != ModalNone {
		t.Error("expected esc to close the activity modal")
	}
}

func TestActivityModal_OutOfOrderPages(t *testing.T) {
	repo := newTestRepo(t)
	m := newTestModel(t, repo)
	m.config.Activity.PageSize = 1
	m, _ = send(t, m, m.Init()())

	for _, title := range []string{"One", "Two", "Three"} {
		tsk, _ := task.New(title, m.project.ID, task.NewOptions{})
		if err := repo.CreateTask(context.Background(), tsk); err != nil {
			t.Fatalf("CreateTask failed: %v", err)
		}
	}

	m, cmd := press(t, m, "a")
	m, _ = send(t, m, cmd())

	m, second := press(t, m, "n")
	m, third := press(t, m, "n")
	if m.activityPage != 3 {
		t.Fatalf("expected page 3 to be requested, got %d", m.activityPage)
	}

	m, _ = send(t, m, third())
	m, _ = send(t, m, second())
	if m.activityFeed == nil || m.activityFeed.Pagination.Page != 3 {
		t.Fatalf("expected page 3 to stay shown, got %+v", m.activityFeed)
	}
	if !strings.Contains(m.View(), `created "One"`) || strings.Contains(m.View(), `created "Two"`) {
		t.Errorf("expected only the oldest entry:\n%s", m.View())
	}

	m, _ = press(t, m, "esc")
	m, _ = send(t, m, third())
	if m.activityFeed.Pagination.Page != 3 || m.modalType != ModalNone {
		t.Error("expected a late page to be ignored once the modal is closed")
	}
}

func TestInitModal(t *testing.T) {
	dir := t.TempDir()
	cfg := config.Default()
	cfg.Storage.DBPath = filepath.Join(dir, "data", "rocinante.db")

	state, err := detectInitStateAt(filepath.Join(dir, "config.toml"), cfg)
	if err != nil {
		t.Fatalf("detectInitStateAt failed: %v", err)
	}
	if !state.NeedsInit || !state.ConfigMissing || !state.DBMissing {
		t.Fatalf("expected both files missing, got %+v", state)
	}

	m := *New(nil, cfg, WithInitState(state), WithClock(fixedNow))
	m.width, m.height = 120, 40
	if m.modalType != ModalInit || !strings.Contains(m.View(), "Initialize Rocinante") {
		t.Fatal("expected init modal")
	}

	m, cmd := press(t, m, "enter")
	if m.repo == nil || m.modalType != ModalNone || cmd == nil {
		t.Fatal("expected storage to be initialized and the month to load")
	}
	t.Cleanup(func() { _ = m.repo.Close() })

	for _, path := range []string{state.ConfigPath, state.DBPath} {
		if _, err := os.Stat(path); err != nil {
			t.Errorf("expected %s to exist: %v", path, err)
		}
	}

	_, cmd = press(t, *New(nil, cfg, WithInitState(state)), "esc")
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("expected esc to quit from the init modal")
	}
}

func TestStatusMessages(t *testing.T) {
	now := fixedNow()
	m := newTestModel(t, nil)
	m.now = func() time.Time { return now }

	m, cmd := send(t, m, commands.ErrMsg{Err: os.ErrPermission})
	if cmd == nil || !strings.Contains(m.statusMsg, "permission denied") || m.err == nil {
		t.Fatalf("expected an error status, got %q", m.statusMsg)
	}

	m, _ = send(t, m, commands.ClearStatusMsg{})
	if m.statusMsg == "" {
		t.Error("expected the message to outlive an early clear")
	}

	now = now.Add(errorTTL)
	m, _ = send(t, m, commands.ClearStatusMsg{})
	if m.statusMsg != "" || m.err != nil {
		t.Errorf("expected the message to expire, got %q", m.statusMsg)
	}
}

func TestQuit(t *testing.T) {
	for _, k := range []string{"q", "ctrl+c"} {
		_, cmd := press(t, newTestModel(t, nil), k)
		if cmd == nil {
			t.Fatalf("%s: expected a command", k)
		}
		if _, ok := cmd().(tea.QuitMsg); !ok {
			t.Errorf("%s: expected tea.QuitMsg", k)
		}
	}
}
