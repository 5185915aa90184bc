package calendar

import (
	"math/rand/v2"
	"slices"
	"testing"
	"time"

	"github.com/javiermolinar/rocinante/internal/dateutil"
	"github.com/javiermolinar/rocinante/internal/task"
)

func withPriority(t *task.Task, p task.Priority) *task.Task {
	t.Priority = p
	return t
}

func titles(tasks []*task.Task) []string {
	out := make([]string, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, t.Title)
	}
	return out
}

func TestDayDetail_PriorityOrder(t *testing.T) {
	tasks := []*task.Task{
		withPriority(newTask("1", "low", "", "2024-03-12", ""), task.PriorityLow),
		withPriority(newTask("2", "high", "2024-03-10", "", "2024-03-14"), task.PriorityHigh),
		withPriority(newTask("3", "medium", "2024-03-12", "", ""), task.PriorityMedium),
	}

	got := titles(DayDetail(tasks, dateutil.NewDate(2024, time.March, 12)))
	want := []string{"high", "medium", "low"}
	if !slices.Equal(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestDayDetail_AbsentPriorityLastThenTitle(t *testing.T) {
	tasks := []*task.Task{
		newTask("1", "zeta", "", "2024-03-12", ""),
		newTask("2", "alpha", "", "2024-03-12", ""),
		withPriority(newTask("3", "omega", "", "2024-03-12", ""), task.PriorityLow),
		withPriority(newTask("4", "beta", "", "2024-03-12", ""), task.PriorityHigh),
		withPriority(newTask("5", "alpha", "", "2024-03-12", ""), task.PriorityHigh),
	}

	got := titles(DayDetail(tasks, dateutil.NewDate(2024, time.March, 12)))
	want := []string{"alpha", "beta", "omega", "alpha", "zeta"}
	if !slices.Equal(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestDayDetail_Membership(t *testing.T) {
	tasks := []*task.Task{
		newTask("span", "span", "2024-02-28", "", "2024-03-02"),
		newTask("before", "before", "", "2024-02-27", ""),
		newTask("undated", "undated", "", "", ""),
		newTask("edge", "edge", "", "2024-03-02", ""),
		nil,
	}

	got := titles(DayDetail(tasks, dateutil.NewDate(2024, time.March, 2)))
	want := []string{"edge", "span"}
	if !slices.Equal(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}

	if got := DayDetail(tasks, dateutil.NewDate(2024, time.March, 3)); len(got) != 0 {
		t.Errorf("expected empty detail, got %v", titles(got))
	}
}

func TestDayDetail_ContainsEveryPositionedTask(t *testing.T) {
	r := rand.New(rand.NewPCG(21, 42))
	for range 20 {
		tasks := randomTasks(r, 50)
		l := march(tasks...)

		for _, p := range l.Tasks {
			for day := p.StartDayIndex; day <= p.EndDayIndex; day++ {
				detail := DayDetail(tasks, l.Date(day))
				if !slices.Contains(detail, p.Task) {
					t.Fatalf("task %s missing from day %d detail", p.Task.ID, day)
				}
			}
		}
	}
}

func TestDayDetail_DoesNotMutateInput(t *testing.T) {
	tasks := []*task.Task{
		withPriority(newTask("1", "b", "", "2024-03-12", ""), task.PriorityLow),
		withPriority(newTask("2", "a", "", "2024-03-12", ""), task.PriorityHigh),
	}
	_ = DayDetail(tasks, dateutil.NewDate(2024, time.March, 12))
	if tasks[0].ID != "1" || tasks[1].ID != "2" {
		t.Error("expected input order to be preserved")
	}
}
