package ui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/matryer/is"
	"github.com/td0m/taskboard/pkg/task"
)

func TestTabs(t *testing.T) {
	is := is.New(t)
	tabs := NewTabs(task.Statuses)
	tabs.SetCounts(task.Seed())

	is.Equal(tabs.Summary(), "Total tasks: 6 | New: 5 | Ongoing: 1 | Done: 0")

	tabs.Set(5)
	is.Equal(tabs.Lane(), task.Done)
	tabs.Set(-1)
	is.Equal(tabs.Value(), 0)
	is.Equal(tabs.Lane(), task.New)

	tabs, _ = tabs.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("l")})
	is.Equal(tabs.Lane(), task.Ongoing)
	tabs, _ = tabs.Update(tea.KeyMsg{Type: tea.KeyRight})
	tabs, _ = tabs.Update(tea.KeyMsg{Type: tea.KeyRight})
	is.Equal(tabs.Lane(), task.Done) // stops at the last lane
	tabs, _ = tabs.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("h")})
	is.Equal(tabs.Lane(), task.Ongoing)

	tabs.Width = 80
	is.True(strings.Contains(tabs.View(), "Ongoing 1"))
}

func TestTruncate(t *testing.T) {
	is := is.New(t)
	is.Equal(Truncate("Questions", 20), "Questions")
	is.Equal(Truncate("Questions", 5), "Ques…")
	is.Equal(Truncate("Questions", 1), "…")
	is.Equal(Truncate("Questions", 0), "")
}

func TestCard(t *testing.T) {
	is := is.New(t)
	tasks := task.Seed()
	card := Card(tasks[0], 40, false, "")
	is.Equal(strings.Count(card, "\n"), CardHeight-1)
	is.True(strings.Contains(card, tasks[0].TaskNumber))
}
