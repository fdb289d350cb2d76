package task

import "fmt"

// FormatDuration renders minutes as "2h:05m"
func FormatDuration(minutes int) string {
	minutes = clampMinutes(minutes)
	return fmt.Sprintf("%dh:%02dm", minutes/60, minutes%60)
}

// FormatDurationShort renders minutes as "2h" or "2h 5m"
func FormatDurationShort(minutes int) string {
	minutes = clampMinutes(minutes)
	h, m := minutes/60, minutes%60
	if m == 0 {
		return fmt.Sprintf("%dh", h)
	}
	return fmt.Sprintf("%dh %dm", h, m)
}

// Sum totals the duration of tasks
func Sum(tasks []Task) int {
	total := 0
	for _, t := range tasks {
		total += t.DurationMinutes
	}
	return total
}
