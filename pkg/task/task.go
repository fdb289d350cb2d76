package task

import (
	"strings"

	"github.com/google/uuid"
	"github.com/td0m/semana/pkg/task/date"
)

type ID string

func NewID() ID {
	return ID(uuid.NewString())
}

// category tags, anything else is expected to be a #hex topic color
const (
	ColorPersonal    = "personal"
	ColorWork        = "work"
	ColorStudy       = "study"
	ColorHealth      = "health"
	ColorTransparent = "transparent"
)

// TimeLogPrefix marks entries that only record elapsed time
const TimeLogPrefix = "⏱"

const DefaultSticker = "https://i.imgur.com/RQfOVj0.png"

type Task struct {
	ID              ID          `json:"id"`
	Title           string      `json:"title"`
	Description     string      `json:"description,omitempty"`
	Day             date.Day    `json:"day"`
	StartTime       string      `json:"startTime,omitempty"`
	DurationMinutes int         `json:"durationMinutes"`
	Color           string      `json:"color"`
	TopicTitle      string      `json:"topicTitle,omitempty"`
	IsCompleted     bool        `json:"isCompleted"`
	Sticker         string      `json:"sticker,omitempty"`
	WeekID          date.WeekID `json:"weekId,omitempty"`
}

func (t Task) IsTimeLog() bool {
	return strings.HasPrefix(t.Title, TimeLogPrefix)
}

func (t Task) IsSticker() bool {
	return t.Sticker != ""
}

// NeedsConfirmation reports whether removing t has to be confirmed first
func (t Task) NeedsConfirmation() bool {
	return !t.IsTimeLog()
}

// Draft holds everything a caller may set when creating a task.
// ID, IsCompleted and WeekID are always assigned by the store.
type Draft struct {
	Title           string
	Description     string
	Day             date.Day
	StartTime       string
	DurationMinutes int
	Color           string
	TopicTitle      string
	Sticker         string
}

func NewTimeLog(day date.Day, minutes int) Draft {
	return Draft{
		Title:           TimeLogPrefix + " " + FormatDuration(minutes),
		Day:             day,
		DurationMinutes: minutes,
		Color:           ColorWork,
	}
}

// NewSticker creates a sticker draft, url defaults to DefaultSticker
func NewSticker(day date.Day, url string) Draft {
	if url == "" {
		url = DefaultSticker
	}
	return Draft{
		Title:   "Sticker",
		Day:     day,
		Color:   ColorTransparent,
		Sticker: url,
	}
}

// Patch is a partial update, nil fields are left untouched
type Patch struct {
	Title           *string
	Description     *string
	Day             *date.Day
	StartTime       *string
	DurationMinutes *int
	Color           *string
	TopicTitle      *string
	IsCompleted     *bool
	Sticker         *string
}

func (p Patch) apply(t Task) Task {
	if p.Title != nil {
		t.Title = *p.Title
	}
	if p.Description != nil {
		t.Description = *p.Description
	}
	if p.Day != nil {
		t.Day = *p.Day
	}
	if p.StartTime != nil {
		t.StartTime = *p.StartTime
	}
	if p.DurationMinutes != nil {
		t.DurationMinutes = clampMinutes(*p.DurationMinutes)
	}
	if p.Color != nil {
		t.Color = *p.Color
	}
	if p.TopicTitle != nil {
		t.TopicTitle = *p.TopicTitle
	}
	if p.IsCompleted != nil {
		t.IsCompleted = *p.IsCompleted
	}
	if p.Sticker != nil {
		t.Sticker = *p.Sticker
	}
	return t
}

// EffectiveWeek is the week a task belongs to.
// Tasks saved before week tagging existed follow the real current week.
func EffectiveWeek(t Task, current date.WeekID) date.WeekID {
	if t.WeekID == "" {
		return current
	}
	return t.WeekID
}

func InWeek(t Task, viewed, current date.WeekID) bool {
	return EffectiveWeek(t, current) == viewed
}

func Matches(t Task, day date.Day, viewed, current date.WeekID) bool {
	return t.Day == day && InWeek(t, viewed, current)
}

func clampMinutes(m int) int {
	if m < 0 {
		return 0
	}
	return m
}
