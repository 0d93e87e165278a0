package dateinput

import (
	"strconv"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/td0m/taskboard/pkg/task/date"
)

var (
	indicator = lipgloss.NewStyle().Padding(0, 1).Bold(true)
	checkmark = indicator.Copy().
			Foreground(lipgloss.AdaptiveColor{Light: "#00ad3b", Dark: "#73F59F"}).
			Render("✓")

	cross = indicator.Copy().
		Foreground(lipgloss.AdaptiveColor{Light: "", Dark: "#FF5047"}).
		Render("✗")

	faded = lipgloss.AdaptiveColor{Light: "#666", Dark: "#999"}
)

// Model is a text input for due dates that shows whether what was typed
// so far parses, and when it resolves to
type Model struct {
	i     textinput.Model
	value *time.Time
	now   func() time.Time
}

func NewModel(now func() time.Time) Model {
	i := textinput.NewModel()
	i.Focus()
	i.CharLimit = 24
	i.Prompt = ""
	return Model{
		i:   i,
		now: now,
	}
}

// Init is the first function that will be called. It returns an optional
// initial command. To not perform an initial command return nil.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update is called when a message is received. Use it to inspect messages
// and, in response, update the model and/or send a command.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd
	switch msg := msg.(type) {
	case tea.KeyMsg:
		m.i, cmd = m.i.Update(msg)
		m.value = m.parse()
		return m, cmd
	}
	return m, nil
}

// View renders the program's UI, which is just a string. The view is
// rendered after every Update.
func (m Model) View() string {
	indicator := cross
	if m.Empty() {
		indicator = ""
	} else if m.value != nil {
		indicator = checkmark + " " + Format(*m.value, m.now())
	}
	return lipgloss.NewStyle().Foreground(faded).Render("due: ") + m.i.View() + indicator
}

// Value is the parsed due date, nil while the input does not parse
func (m Model) Value() *time.Time {
	return m.value
}

// Empty reports whether nothing was typed, which clears a due date
func (m Model) Empty() bool {
	return m.i.Value() == ""
}

func (m *Model) SetValue(t *time.Time) {
	m.value = t
	if t == nil {
		m.i.SetValue("")
		return
	}
	m.i.SetValue(t.Format("2006-01-02 15:04"))
}

func (m Model) parse() *time.Time {
	due, err := date.Due(m.i.Value(), m.now())
	if err != nil {
		return nil
	}
	return &due
}

// Format describes how far t is from now in a few characters
func Format(t time.Time, now time.Time) string {
	diff := date.StartOfDay(t).Sub(date.StartOfDay(now))
	switch days := int(diff.Hours()) / 24; {
	case days < 0:
		return "overdue"
	case days == 0:
		return "today"
	case days == 1:
		return "1 day"
	case days < 14:
		return strconv.Itoa(days) + " days"
	// max 1 month
	case days <= 31:
		return strconv.Itoa(days/7) + " weeks"
	// months
	default:
		postfix := ""
		months := days / 31
		if months > 1 {
			postfix = "s"
		}
		return strconv.Itoa(months) + " month" + postfix
	}
}
