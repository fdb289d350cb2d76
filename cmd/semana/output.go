package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/td0m/semana/pkg/planner"
	"github.com/td0m/semana/pkg/stats"
	"github.com/td0m/semana/pkg/syllabus"
	"github.com/td0m/semana/pkg/task"
)

// Formatter renders command results
type Formatter interface {
	FormatWeek(w Week) string
	FormatTask(t task.Task) string
	FormatStats(title string, bs []stats.Bucket, s stats.Summary) string
	FormatTopics(ts []TopicRow) string
	FormatMessage(msg string) string
}

type Week struct {
	ID      string    `json:"weekId"`
	Label   string    `json:"label"`
	Minutes int       `json:"minutes"`
	Days    []WeekDay `json:"days"`
}

type WeekDay struct {
	Day         string      `json:"day"`
	Date        string      `json:"date"`
	Today       bool        `json:"today"`
	Minutes     int         `json:"minutes"`
	Specific    []task.Task `json:"specific"`
	Legislation []task.Task `json:"legislation"`
	TimeLogs    []task.Task `json:"timeLogs"`
	Sticker     *task.Task  `json:"sticker,omitempty"`
}

func newWeek(p *planner.Planner) Week {
	w := Week{ID: p.ViewedWeek().String(), Label: p.RangeLabel(), Minutes: p.WeekMinutes()}
	for _, col := range p.Board() {
		w.Days = append(w.Days, WeekDay{
			Day:         string(col.Day),
			Date:        col.Date.Format("2006-01-02"),
			Today:       col.Today,
			Minutes:     col.Minutes(),
			Specific:    col.Specific,
			Legislation: col.Legislation,
			TimeLogs:    col.TimeLogs,
			Sticker:     col.Sticker,
		})
	}
	return w
}

type TopicRow struct {
	syllabus.Topic
	Number int    `json:"number"`
	Done   bool   `json:"done"`
	Note   string `json:"note,omitempty"`
}

func topicRows(p *planner.Planner, typ syllabus.Type) []TopicRow {
	topics := p.Partition(typ)
	out := make([]TopicRow, len(topics))
	for i, t := range topics {
		out[i] = TopicRow{Topic: t, Number: i + 1, Done: p.Done(t.ID), Note: p.Note(t.ID)}
	}
	return out
}

type HumanFormatter struct{}

func NewHumanFormatter() *HumanFormatter {
	return &HumanFormatter{}
}

func (f *HumanFormatter) FormatWeek(w Week) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%s  (%s)  total %s\n", w.Label, w.ID, task.FormatDuration(w.Minutes)))
	for _, d := range w.Days {
		marker := " "
		if d.Today {
			marker = "*"
		}
		sb.WriteString(fmt.Sprintf("\n%s %s %s  %s\n", marker, d.Day, d.Date, task.FormatDuration(d.Minutes)))
		for _, t := range d.Specific {
			sb.WriteString("    " + f.taskLine(t))
		}
		for _, t := range d.Legislation {
			sb.WriteString("    " + f.taskLine(t))
		}
		for _, t := range d.TimeLogs {
			sb.WriteString(fmt.Sprintf("    %s [%s]\n", t.Title, t.ID))
		}
		if d.Sticker != nil {
			sb.WriteString(fmt.Sprintf("    sticker %s [%s]\n", d.Sticker.Sticker, d.Sticker.ID))
		}
	}
	return sb.String()
}

func (f *HumanFormatter) taskLine(t task.Task) string {
	check := "[ ]"
	if t.IsCompleted {
		check = "[X]"
	}
	extra := ""
	if t.StartTime != "" {
		extra += " @" + t.StartTime
	}
	if t.TopicTitle != "" {
		extra += " (" + t.TopicTitle + ")"
	}
	return fmt.Sprintf("%s %s %s%s [%s]\n", check, t.Title, task.FormatDurationShort(t.DurationMinutes), extra, t.ID)
}

func (f *HumanFormatter) FormatTask(t task.Task) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("[%s] %s\n", t.ID, t.Title))
	sb.WriteString(fmt.Sprintf("  Day:      %s\n", t.Day))
	sb.WriteString(fmt.Sprintf("  Week:     %s\n", t.WeekID))
	sb.WriteString(fmt.Sprintf("  Duration: %s\n", task.FormatDuration(t.DurationMinutes)))
	if t.TopicTitle != "" {
		sb.WriteString(fmt.Sprintf("  Topic:    %s\n", t.TopicTitle))
	}
	if t.IsCompleted {
		sb.WriteString("  Done\n")
	}
	return sb.String()
}

func (f *HumanFormatter) FormatStats(title string, bs []stats.Bucket, s stats.Summary) string {
	var sb strings.Builder
	sb.WriteString(title + "\n")
	for _, b := range bs {
		marker := " "
		if b.Active {
			marker = "*"
		}
		sb.WriteString(fmt.Sprintf("%s %-10s %s\n", marker, b.Label, task.FormatDuration(b.Minutes)))
	}
	sb.WriteString(fmt.Sprintf("\nEsta semana:  %s\n", task.FormatDuration(s.ThisWeek)))
	sb.WriteString(fmt.Sprintf("Anterior:     %s\n", task.FormatDuration(s.LastWeek)))
	sb.WriteString(fmt.Sprintf("Hace 2 sem.:  %s\n", task.FormatDuration(s.TwoWeeksAgo)))
	return sb.String()
}

func (f *HumanFormatter) FormatTopics(ts []TopicRow) string {
	if len(ts) == 0 {
		return "No topics.\n"
	}
	var sb strings.Builder
	for _, t := range ts {
		check := "[ ]"
		if t.Done {
			check = "[X]"
		}
		sb.WriteString(fmt.Sprintf("%s %2d. %s [%d]\n", check, t.Number, t.Title, t.ID))
		if t.Note != "" {
			sb.WriteString("       " + strings.ReplaceAll(t.Note, "\n", "\n       ") + "\n")
		}
	}
	return sb.String()
}

func (f *HumanFormatter) FormatMessage(msg string) string {
	return msg + "\n"
}

type JSONFormatter struct{}

func NewJSONFormatter() *JSONFormatter {
	return &JSONFormatter{}
}

func (f *JSONFormatter) marshal(v interface{}) string {
	bs, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Sprintf(`{"error":%q}`+"\n", err.Error())
	}
	return string(bs) + "\n"
}

func (f *JSONFormatter) FormatWeek(w Week) string {
	return f.marshal(w)
}

func (f *JSONFormatter) FormatTask(t task.Task) string {
	return f.marshal(t)
}

func (f *JSONFormatter) FormatStats(title string, bs []stats.Bucket, s stats.Summary) string {
	return f.marshal(struct {
		View    string         `json:"view"`
		Buckets []stats.Bucket `json:"buckets"`
		Summary stats.Summary  `json:"summary"`
	}{title, bs, s})
}

func (f *JSONFormatter) FormatTopics(ts []TopicRow) string {
	return f.marshal(ts)
}

func (f *JSONFormatter) FormatMessage(msg string) string {
	return f.marshal(map[string]string{"message": msg})
}
