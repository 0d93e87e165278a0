package ui

import (
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/td0m/taskboard/pkg/task"
)

var (
	tabContainer = lipgloss.NewStyle().Padding(1, 1)
	activeTab    = lipgloss.NewStyle().Bold(true).Underline(true)
	inactiveTab  = lipgloss.NewStyle().Foreground(Secondary)
	tabDivider   = lipgloss.NewStyle().Foreground(Faded)
)

// Tabs is the board header: one tab per lane with its task count, the
// focused lane highlighted
type Tabs struct {
	lanes  []task.Status
	counts map[task.Status]int
	i      int

	Width int
	Info  string
}

// NewTabs creates a new tabs ui bubbletea model
func NewTabs(lanes []task.Status) Tabs {
	return Tabs{lanes: lanes, counts: map[task.Status]int{}}
}

// Update switches the focused lane on h/l and the arrow keys
func (m Tabs) Update(msg tea.Msg) (Tabs, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "h", "left":
			m.Set(m.i - 1)
		case "l", "right":
			m.Set(m.i + 1)
		}
	}
	return m, nil
}

// View renders the program's UI, which is just a string. The view is
// rendered after every Update.
func (m Tabs) View() string {
	tabs := make([]string, len(m.lanes))
	for i, lane := range m.lanes {
		r := inactiveTab
		if i == m.i {
			r = activeTab.Copy().Foreground(LaneColor(lane))
		}
		tabs[i] = r.Render(lane.String() + " " + strconv.Itoa(m.counts[lane]))
	}
	w := lipgloss.Width
	left := strings.Join(tabs, tabDivider.Render(" | "))
	right := m.Info
	space := lipgloss.NewStyle().Width(max(m.Width-2-w(left)-w(right), 0)).Render("")
	return tabContainer.Render(lipgloss.JoinHorizontal(lipgloss.Center, left, space, right)) + "\n"
}

// Value is the index of the focused lane
func (m Tabs) Value() int {
	return m.i
}

func (m Tabs) Lane() task.Status {
	return m.lanes[m.i]
}

func (m *Tabs) Set(i int) {
	m.i = min(max(i, 0), len(m.lanes)-1)
}

// SetCounts recounts the lanes from the whole board
func (m *Tabs) SetCounts(tasks []task.Task) {
	m.counts = map[task.Status]int{}
	for _, t := range tasks {
		m.counts[t.Status]++
	}
}

// Summary is the one line board overview, e.g.
// "Total tasks: 6 | New: 5 | Ongoing: 1 | Done: 0"
func (m Tabs) Summary() string {
	total := 0
	parts := make([]string, 0, len(m.lanes)+1)
	for _, lane := range m.lanes {
		total += m.counts[lane]
		parts = append(parts, lane.String()+": "+strconv.Itoa(m.counts[lane]))
	}
	return strings.Join(append([]string{"Total tasks: " + strconv.Itoa(total)}, parts...), " | ")
}
