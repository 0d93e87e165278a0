package main

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/matryer/is"
	"github.com/td0m/taskboard/pkg/task"
)

var now = time.Date(2024, time.March, 1, 12, 0, 0, 0, time.UTC)

func testApp() *app {
	clock := func() time.Time { return now }
	store := task.NewStore(task.WithClock(clock))
	a := newApp(store, store.Subscribe(), nil)
	a.now = clock
	a.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	return a
}

func press(a *app, keys ...string) {
	for _, k := range keys {
		switch k {
		case "enter":
			a.Update(tea.KeyMsg{Type: tea.KeyEnter})
		case "esc":
			a.Update(tea.KeyMsg{Type: tea.KeyEsc})
		default:
			a.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)})
		}
	}
}

func typeText(a *app, s string) {
	for _, r := range s {
		a.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
}

func titles(ts []task.Task) []string {
	out := make([]string, len(ts))
	for i, t := range ts {
		out[i] = t.Title
	}
	return out
}

func TestApp_Lanes(t *testing.T) {
	is := is.New(t)
	a := testApp()

	is.Equal(len(a.visible()), 5)
	is.Equal(a.atCursor().ID, task.ID("1"))
	is.Equal(a.tabs.Info, "Total tasks: 6 | New: 5 | Ongoing: 1 | Done: 0")

	press(a, "j", "j")
	is.Equal(a.atCursor().ID, task.ID("3"))
	press(a, "G")
	is.Equal(a.atCursor().ID, task.ID("5"))
	press(a, "j")
	is.Equal(a.atCursor().ID, task.ID("5")) // stays on the last task

	press(a, "l")
	is.Equal(a.tabs.Lane(), task.Ongoing)
	is.Equal(a.atCursor().Title, "Questions")
	press(a, "l", "l")
	is.Equal(a.tabs.Lane(), task.Done)
	is.True(a.atCursor() == nil)

	is.True(strings.Contains(a.View(), "Questions"))
}

func TestApp_Create(t *testing.T) {
	is := is.New(t)
	a := testApp()

	press(a, "n")
	is.Equal(a.mode, modeCreate)
	typeText(a, "Write docs")
	press(a, "enter")
	is.Equal(a.mode, modeNormal)
	is.Equal(a.atCursor().Title, "Write docs")
	is.Equal(a.atCursor().Status, task.New)
	is.Equal(len(a.store.Tasks()), 7)

	// ongoing tasks are only created once they have a due date
	press(a, "l", "n")
	typeText(a, "Release")
	press(a, "enter")
	is.Equal(a.mode, modeDue)
	is.Equal(len(a.store.Tasks()), 7)
	press(a, "enter") // nothing typed yet
	is.Equal(a.mode, modeDue)
	typeText(a, "tomorrow")
	press(a, "enter")
	is.Equal(a.mode, modeNormal)

	created := a.atCursor()
	is.Equal(created.Title, "Release")
	is.Equal(created.Status, task.Ongoing)
	is.True(created.DueDate.After(now))
	is.Equal(*created.MovedToOngoingAt, now)
	is.Equal(*created.IsOverdue, false)
}

func TestApp_Move(t *testing.T) {
	is := is.New(t)
	a := testApp()

	// moving into ongoing asks for a due date first
	press(a, "L")
	is.Equal(a.mode, modeDue)
	typeText(a, "in 3 days")
	press(a, "enter")
	is.Equal(a.mode, modeNormal)

	moved, err := a.store.Get("1")
	is.NoErr(err)
	is.Equal(moved.Status, task.Ongoing)
	is.Equal(*moved.MovedToOngoingAt, now)
	is.Equal(*moved.IsOverdue, false)
	// moving re-sorts every lane, new tasks newest first
	is.Equal(titles(a.visible()), []string{"Shop Panel Test Cases", "Customer Support & Operations", "Sales Manager Panel", "Seller Panel Test Cases"})

	// esc abandons the move
	press(a, "L", "esc")
	is.Equal(a.mode, modeNormal)
	is.Equal(len(a.visible()), 4)

	press(a, "l", "L")
	done := a.store.ByStatus(task.Done)
	is.Equal(len(done), 1)
	is.Equal(*done[0].CompletedAt, now)
}

func TestApp_Edit(t *testing.T) {
	is := is.New(t)
	a := testApp()

	press(a, "e")
	is.Equal(a.input.Value(), "Admin Panel Test Cases")
	typeText(a, "!")
	press(a, "enter")
	is.Equal(a.atCursor().Title, "Admin Panel Test Cases!")

	press(a, "p")
	is.Equal(a.atCursor().Priority, task.Low)

	press(a, "d")
	typeText(a, "2024-02-01")
	press(a, "enter")
	is.True(a.atCursor().DueDate != nil)
	is.Equal(*a.atCursor().IsOverdue, true) // a past due date flags the task right away

	press(a, "d")
	for range "2024-02-01 00:00" {
		a.Update(tea.KeyMsg{Type: tea.KeyBackspace})
	}
	press(a, "enter")
	is.True(a.atCursor().DueDate == nil)
}

func TestApp_DuplicateDelete(t *testing.T) {
	is := is.New(t)
	a := testApp()

	press(a, "y")
	tasks := a.store.Tasks()
	is.Equal(len(tasks), 7)
	is.Equal(tasks[0].Title, "Admin Panel Test Cases (Copy)")

	press(a, "x")
	is.Equal(len(a.store.Tasks()), 6)

	press(a, "X")
	is.Equal(a.mode, modeConfirmClear)
	press(a, "n")
	is.Equal(len(a.store.Tasks()), 6)
	press(a, "X", "y")
	is.Equal(len(a.store.Tasks()), 0)
	is.True(a.atCursor() == nil)
	is.Equal(a.tabs.Info, "Total tasks: 0 | New: 0 | Ongoing: 0 | Done: 0")
}

func TestApp_Search(t *testing.T) {
	is := is.New(t)
	a := testApp()

	press(a, "/")
	typeText(a, "SHOP")
	is.Equal(titles(a.visible()), []string{"Shop Panel Test Cases"})
	press(a, "enter")
	is.Equal(a.mode, modeNormal)
	is.Equal(a.query, "SHOP")
	// the summary counts the whole board
	is.Equal(a.tabs.Info, "Total tasks: 6 | New: 5 | Ongoing: 1 | Done: 0")

	press(a, "esc")
	is.Equal(len(a.visible()), 5)
}

func TestApp_Overdue(t *testing.T) {
	is := is.New(t)
	a := testApp()
	a.store.SetLoading(true)
	is.True(strings.Contains(a.viewBanner(), "Loading"))

	a.Update(overdueMsg(a.store.CheckOverdue()))
	is.True(!a.store.Loading())
	is.True(strings.Contains(a.viewBanner(), `Task "Questions" is overdue`))

	press(a, "c")
	is.Equal(a.viewBanner(), "")

	// the same result keeps the banner dismissed
	a.Update(overdueMsg{"6"})
	is.Equal(a.viewBanner(), "")
	a.Update(overdueMsg{"6", "1"})
	is.True(strings.Contains(a.viewBanner(), "2 overdue tasks"))
}
