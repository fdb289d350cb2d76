package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/td0m/semana/pkg/stats"
	"github.com/td0m/semana/pkg/task"
)

const barRune = "█"

// BarLength scales minutes against the largest bucket into at most width cells.
// Any non-zero value gets at least one cell.
func BarLength(minutes, maxMinutes, width int) int {
	if minutes <= 0 || maxMinutes <= 0 || width <= 0 {
		return 0
	}
	n := minutes * width / maxMinutes
	return min(max(n, 1), width)
}

// Chart renders buckets as horizontal bars, the active bucket in the accent color
func Chart(buckets []stats.Bucket, width int, th Theme) string {
	labelWidth, top := 0, 0
	for _, b := range buckets {
		labelWidth = max(labelWidth, lipgloss.Width(b.Name))
		top = max(top, b.Minutes)
	}
	const valueWidth = 8
	barWidth := max(width-labelWidth-valueWidth-2, 1)

	label := lipgloss.NewStyle().Width(labelWidth + 1).Foreground(th.Muted())
	bar := lipgloss.NewStyle().Foreground(th.Surface)
	if th.Surface == th.Background {
		bar = bar.Copy().Foreground(th.Muted())
	}
	active := lipgloss.NewStyle().Foreground(th.Accent).Bold(true)
	value := lipgloss.NewStyle().Foreground(th.Text())

	lines := make([]string, len(buckets))
	for i, b := range buckets {
		style := bar
		if b.Active {
			style = active
		}
		n := BarLength(b.Minutes, top, barWidth)
		lines[i] = label.Render(b.Name) +
			style.Render(strings.Repeat(barRune, n)) +
			strings.Repeat(" ", barWidth-n+1) +
			value.Render(task.FormatDurationShort(b.Minutes))
	}
	return strings.Join(lines, "\n")
}
