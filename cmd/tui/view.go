package main

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/td0m/taskboard/internal/ui"
	"github.com/td0m/taskboard/pkg/dateinput"
	"github.com/td0m/taskboard/pkg/task"
)

const help = "h/l lane ∙ j/k task ∙ n new ∙ e edit ∙ d due ∙ H/L move ∙ p priority ∙ y copy ∙ x delete ∙ X clear ∙ / search ∙ q quit"

// View renders the program's UI, which is just a string. The view is
// rendered after every Update.
func (m app) View() string {
	return m.tabs.View() + m.viewBanner() + "\n" + m.viewport.View() + "\n" + m.viewStatus()
}

func (m app) viewLanes() string {
	width := max(m.viewport.Width/len(task.Statuses), 12)
	cols := make([]string, len(task.Statuses))
	for i, lane := range task.Statuses {
		focused := i == m.tabs.Value()
		title := ui.LaneTitle.Copy().Foreground(ui.LaneColor(lane))
		if !focused {
			title = title.Copy().Faint(true)
		}
		s := title.Render(lane.String()+" ("+strconv.Itoa(len(m.lanes[lane]))+")") + "\n\n"
		if len(m.lanes[lane]) == 0 {
			s += ui.EmptyLaneHint.Render("no tasks") + "\n"
		}
		for j, t := range m.lanes[lane] {
			due := ""
			if t.DueDate != nil {
				due = dateinput.Format(*t.DueDate, m.now())
			}
			s += ui.Card(t, width, focused && j == m.cursors[i], due) + "\n"
		}
		cols[i] = lipgloss.NewStyle().Width(width).Render(s)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, cols...)
}

func (m app) viewBanner() string {
	switch {
	case m.store.Loading():
		return ui.Notice.Render("Loading…")
	case m.dismissed || len(m.overdue) == 0:
		return ""
	case len(m.overdue) == 1:
		title := string(m.overdue[0])
		if t, err := m.store.Get(m.overdue[0]); err == nil {
			title = t.Title
		}
		return ui.Banner.Render("Task \"" + title + "\" is overdue") + ui.Help.Render("c to dismiss")
	default:
		return ui.Banner.Render(strconv.Itoa(len(m.overdue))+" overdue tasks") + ui.Help.Render("c to dismiss")
	}
}

func (m app) viewStatus() string {
	switch m.mode {
	case modeCreate:
		return "new " + strings.ToLower(m.tabs.Lane().String()) + " task: " + m.input.View()
	case modeRename:
		return "title: " + m.input.View()
	case modeDue:
		prefix := ""
		if m.draft != nil || m.moving != "" {
			prefix = ui.Notice.Render("ongoing tasks need a due date")
		}
		return prefix + m.due.View()
	case modeSearch:
		return "/" + m.input.View()
	case modeConfirmClear:
		return ui.Banner.Render("Delete all "+strconv.Itoa(len(m.store.Tasks()))+" tasks?") + " y/n"
	}
	if m.query != "" {
		return ui.Help.Render("search: "+m.query+" (esc to clear)") + "\n" + ui.Help.Render(help)
	}
	return "\n" + ui.Help.Render(help)
}
