package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/td0m/semana/pkg/task"
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

var categoryColors = map[string]lipgloss.Color{
	task.ColorPersonal: Red,
	task.ColorWork:     Blue,
	task.ColorStudy:    Yellow,
	task.ColorHealth:   Green,
}

// TaskColor resolves a task's color, which is either a hex value taken from
// a topic or one of the category names
func TaskColor(c string) lipgloss.Color {
	if strings.HasPrefix(c, "#") {
		return lipgloss.Color(c)
	}
	if col, ok := categoryColors[c]; ok {
		return col
	}
	return Secondary
}
