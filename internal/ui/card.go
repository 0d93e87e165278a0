package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/td0m/taskboard/pkg/task"
)

var (
	LaneTitle = lipgloss.NewStyle().Bold(true).Padding(0, 1)

	CardTitle     = lipgloss.NewStyle().Bold(true)
	CardDone      = CardTitle.Copy().Foreground(Secondary).Strikethrough(true)
	CardDetail    = lipgloss.NewStyle().Foreground(Secondary)
	CardDivider   = lipgloss.NewStyle().Foreground(Faded).Padding(0, 1).Render("∙")
	CardDue       = lipgloss.NewStyle().Foreground(Blue)
	CardOverdue   = lipgloss.NewStyle().Foreground(Red).Bold(true)
	CardPriority  = lipgloss.NewStyle().Bold(true)
	Banner        = lipgloss.NewStyle().Foreground(Red).Bold(true).Padding(0, 1)
	Notice        = lipgloss.NewStyle().Foreground(Yellow).Padding(0, 1)
	Help          = lipgloss.NewStyle().Foreground(Faded).Padding(0, 1)
	EmptyLaneHint = lipgloss.NewStyle().Foreground(Faded).Italic(true).Padding(0, 1)
)

// CardHeight is the number of lines a rendered card takes, spacing included
const CardHeight = 3

// Card renders a task as two lines of at most width cells.
// due is the already formatted due date, empty when there is none.
func Card(t task.Task, width int, selected bool, due string) string {
	title := CardTitle
	if t.Status == task.Done {
		title = CardDone
	}
	if selected {
		title = title.Copy().Background(Faded)
	}
	first := " " + title.Render(Truncate(t.Title, width-2))

	details := []string{
		CardPriority.Copy().Foreground(PriorityColor(t.Priority)).Render(strings.ToUpper(string(t.Priority))),
	}
	if t.TaskNumber != "" {
		details = append(details, CardDetail.Render(t.TaskNumber))
	}
	if due != "" {
		style := CardDue
		if t.Overdue() {
			style = CardOverdue
		}
		details = append(details, style.Render(due))
	}
	second := " " + strings.Join(details, CardDivider)
	if len(t.Tags) > 0 {
		// tags are left out on narrow lanes
		withTags := second + CardDivider + CardDetail.Render("#"+strings.Join(t.Tags, " #"))
		if lipgloss.Width(withTags) <= width {
			second = withTags
		}
	}
	return first + "\n" + second + "\n"
}

// Truncate shortens s to n runes, marking the cut with an ellipsis
func Truncate(s string, n int) string {
	r := []rune(s)
	if n <= 0 {
		return ""
	}
	if len(r) <= n {
		return s
	}
	if n == 1 {
		return "…"
	}
	return string(r[:n-1]) + "…"
}
