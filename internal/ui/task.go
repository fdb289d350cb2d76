package ui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/td0m/semana/pkg/task"
)

var (
	TaskIcon     = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	TaskTitle    = lipgloss.NewStyle().Bold(true)
	SubTaskTitle = lipgloss.NewStyle().Foreground(Secondary)

	TaskDivider = lipgloss.NewStyle().Foreground(Faded).Padding(0, 1).Render("∙")
	TaskTimer   = lipgloss.NewStyle().Foreground(Blue)

	LaneTitle = lipgloss.NewStyle().Foreground(Faded).Bold(true)
)

// Task renders one board entry, truncated to width
func Task(t task.Task, width int, selected bool, th Theme) string {
	icon := "▌"
	title := TaskTitle.Copy().Foreground(th.Text())
	switch {
	case t.IsTimeLog():
		icon = " "
		title = TaskTimer.Copy()
	case t.IsSticker():
		icon = "★"
		title = SubTaskTitle.Copy()
	}
	if t.IsCompleted {
		title = title.Copy().Strikethrough(true).Foreground(th.Muted())
	}
	if selected {
		title = title.Copy().Background(th.Accent).Foreground(th.Background)
	}

	text := t.Title
	if t.IsSticker() {
		text = "sticker"
	}
	if t.DurationMinutes > 0 && !t.IsTimeLog() {
		text += " " + task.FormatDurationShort(t.DurationMinutes)
	}
	if t.StartTime != "" {
		text = t.StartTime + " " + text
	}
	bar := lipgloss.NewStyle().Foreground(TaskColor(t.Color)).Render(icon)
	return bar + title.Render(Truncate(text, width-lipgloss.Width(bar)))
}

// Truncate cuts s to at most width cells, ending in an ellipsis
func Truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	if lipgloss.Width(s) <= width {
		return s
	}
	rs := []rune(s)
	for len(rs) > 0 && lipgloss.Width(string(rs))+1 > width {
		rs = rs[:len(rs)-1]
	}
	return string(rs) + "…"
}
