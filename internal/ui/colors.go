package ui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/td0m/taskboard/pkg/task"
)

const (
	Background = lipgloss.Color("#000")

	Primary   = lipgloss.Color("#fff")
	Secondary = lipgloss.Color("#888")
	Faded     = lipgloss.Color("#555")

	Blue   = lipgloss.Color("#4db7ff")
	Green  = lipgloss.Color("#00a352")
	Red    = lipgloss.Color("#c42912")
	Yellow = lipgloss.Color("#c4b810")
	Orange = lipgloss.Color("#c27510")
)

// LaneColor is the accent of a lane's header
func LaneColor(s task.Status) lipgloss.Color {
	switch s {
	case task.Ongoing:
		return Blue
	case task.Done:
		return Green
	}
	return Secondary
}

func PriorityColor(p task.Priority) lipgloss.Color {
	switch p {
	case task.High:
		return Red
	case task.Medium:
		return Orange
	}
	return Yellow
}
