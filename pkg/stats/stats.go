// Package stats aggregates task durations for the charts.
//
// Every view resolves a task's week with task.EffectiveWeek, so untagged
// tasks are counted in whatever week is current at the time of the call.
package stats

import (
	"strconv"
	"time"

	"github.com/td0m/semana/pkg/task"
	"github.com/td0m/semana/pkg/task/date"
)

// Bucket is one bar of a chart.
// Name is the axis label, Label the longer form shown on focus.
type Bucket struct {
	Name    string `json:"name"`
	Label   string `json:"label"`
	Minutes int    `json:"minutes"`
	Active  bool   `json:"active"`
}

// Daily sums the viewed week per day.
// Today is marked active when the viewed week is the current one.
func Daily(tasks []task.Task, viewed date.WeekID, now time.Time) []Bucket {
	current := date.WeekOf(now)
	today := date.DayOf(now)
	out := make([]Bucket, len(date.Days))
	for i, d := range date.Days {
		out[i] = Bucket{
			Name:   d.Short(3),
			Label:  string(d),
			Active: viewed == current && d == today,
		}
	}
	for _, t := range tasks {
		i := t.Day.Offset()
		if i < 0 || !task.InWeek(t, viewed, current) {
			continue
		}
		out[i].Minutes += t.DurationMinutes
	}
	return out
}

// Weekly sums the last four weeks up to the week of now, oldest first
func Weekly(tasks []task.Task, now time.Time) []Bucket {
	const weeks = 4
	current := date.WeekOf(now)
	monday := date.StartOfWeek(now)

	out := make([]Bucket, 0, weeks)
	index := map[date.WeekID]int{}
	for i := weeks - 1; i >= 0; i-- {
		start := monday.AddDate(0, 0, -7*i)
		end := start.AddDate(0, 0, 6)
		name := strconv.Itoa(start.Day()) + "-" + strconv.Itoa(end.Day())
		index[date.WeekOf(start)] = len(out)
		out = append(out, Bucket{
			Name:   name,
			Label:  name + " " + date.MonthShort(start.Month()),
			Active: i == 0,
		})
	}
	for _, t := range tasks {
		if i, ok := index[task.EffectiveWeek(t, current)]; ok {
			out[i].Minutes += t.DurationMinutes
		}
	}
	return out
}

// Monthly sums the last six calendar months up to the month of now, oldest
// first. Tasks are placed on the date of their day within their week.
func Monthly(tasks []task.Task, now time.Time) []Bucket {
	const months = 6
	type key struct {
		year  int
		month time.Month
	}

	out := make([]Bucket, 0, months)
	index := map[key]int{}
	for i := months - 1; i >= 0; i-- {
		first := time.Date(now.Year(), now.Month()-time.Month(i), 1, 0, 0, 0, 0, now.Location())
		index[key{first.Year(), first.Month()}] = len(out)
		out = append(out, Bucket{
			Name:   date.MonthShort(first.Month()),
			Label:  date.MonthName(first.Month()),
			Active: i == 0,
		})
	}
	for _, t := range tasks {
		d, ok := Resolve(t, now)
		if !ok {
			continue
		}
		if i, ok := index[key{d.Year(), d.Month()}]; ok {
			out[i].Minutes += t.DurationMinutes
		}
	}
	return out
}

// Resolve returns the calendar date a task falls on.
// Untagged tasks are placed in the week of now.
// It fails for unknown day names and malformed week ids.
func Resolve(t task.Task, now time.Time) (time.Time, bool) {
	offset := t.Day.Offset()
	if offset < 0 {
		return time.Time{}, false
	}
	monday := date.StartOfWeek(now)
	if t.WeekID != "" {
		var err error
		monday, err = t.WeekID.Monday(now.Location())
		if err != nil {
			return time.Time{}, false
		}
	}
	return monday.AddDate(0, 0, offset), true
}

func Total(bs []Bucket) int {
	total := 0
	for _, b := range bs {
		total += b.Minutes
	}
	return total
}

// Summary holds the counters shown on the home screen
type Summary struct {
	ThisWeek    int `json:"thisWeek"`
	LastWeek    int `json:"lastWeek"`
	TwoWeeksAgo int `json:"twoWeeksAgo"`
}

func Summarize(tasks []task.Task, now time.Time) Summary {
	w := Weekly(tasks, now)
	return Summary{
		ThisWeek:    w[3].Minutes,
		LastWeek:    w[2].Minutes,
		TwoWeeksAgo: w[1].Minutes,
	}
}
