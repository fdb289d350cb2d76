// Package planner is the application service: it loads every store from a
// persist.KV at startup and writes the affected key back after each change.
package planner

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"time"

	"go.uber.org/zap"

	"github.com/td0m/semana/pkg/clock"
	"github.com/td0m/semana/pkg/persist"
	"github.com/td0m/semana/pkg/plan"
	"github.com/td0m/semana/pkg/stats"
	"github.com/td0m/semana/pkg/syllabus"
	"github.com/td0m/semana/pkg/task"
	"github.com/td0m/semana/pkg/task/date"
)

const (
	DefaultTheme     = "classic"
	DefaultQuickLink = "https://www.google.com"
)

// Themes lists the valid theme ids
var Themes = []string{"tactical", "classic", "minimal", "cyber", "forest", "oceanic", "nebula", "sunset"}

var (
	ErrConfirmationRequired = errors.New("confirmation required")
	ErrUnknownTheme         = errors.New("unknown theme")
	ErrInvalidLink          = errors.New("link must be an http(s) URL")
	ErrInvalidPosition      = errors.New("position out of range")
)

type Settings struct {
	Theme        string `json:"theme"`
	ShowWeekends bool   `json:"showWeekends"`
	QuickLink    string `json:"quickLink"`
}

func DefaultSettings() Settings {
	return Settings{Theme: DefaultTheme, ShowWeekends: true, QuickLink: DefaultQuickLink}
}

type Options struct {
	Clock clock.Clock
	Log   *zap.Logger
	// NewTasks builds the empty task store the saved tasks are decoded into
	NewTasks func() task.StoreManager
}

type Planner struct {
	kv    persist.KV
	clock clock.Clock
	log   *zap.Logger

	tasks     task.StoreManager
	topics    *syllabus.Store
	completed *syllabus.Completion
	notes     *syllabus.Notes
	settings  Settings

	viewed time.Time
}

// Load reads all state from kv.
// Missing or unreadable keys fall back to their defaults, so Load never fails.
func Load(kv persist.KV, opts Options) *Planner {
	if opts.Clock == nil {
		opts.Clock = clock.Real{}
	}
	if opts.Log == nil {
		opts.Log = zap.NewNop()
	}
	if opts.NewTasks == nil {
		opts.NewTasks = func() task.StoreManager { return task.NewStore() }
	}
	p := &Planner{
		kv:       kv,
		clock:    opts.Clock,
		log:      opts.Log,
		settings: DefaultSettings(),
	}
	p.viewed = p.clock.Now()

	tasks := opts.NewTasks()
	if !p.load(persist.KeyTasks, tasks) {
		tasks = opts.NewTasks()
	}
	p.tasks = tasks

	topics := syllabus.NewStore(nil, p.clock.Now)
	if !p.load(persist.KeySyllabus, topics) {
		topics = syllabus.NewStore(syllabus.Defaults(), p.clock.Now)
	}
	p.topics = topics

	completed := syllabus.NewCompletion(nil)
	if !p.load(persist.KeyCompleted, completed) {
		completed = syllabus.NewCompletion(nil)
	}
	p.completed = completed

	notes := syllabus.NewNotes(nil)
	if !p.load(persist.KeyNotes, notes) {
		notes = syllabus.NewNotes(nil)
	}
	p.notes = notes

	var weekends bool
	if p.load(persist.KeyWeekends, &weekends) {
		p.settings.ShowWeekends = weekends
	}
	if theme, ok := p.loadString(persist.KeyTheme); ok {
		if validTheme(theme) {
			p.settings.Theme = theme
		} else {
			p.log.Warn("unknown theme, using default", zap.String("theme", theme))
		}
	}
	if link, ok := p.loadString(persist.KeyQuickLink); ok && link != "" {
		p.settings.QuickLink = link
	}

	p.log.Debug("state loaded",
		zap.Int("tasks", p.tasks.Len()),
		zap.Int("topics", p.topics.Len()),
		zap.String("theme", p.settings.Theme),
	)
	return p
}

// load reports whether key was present and decoded into v
func (p *Planner) load(key string, v interface{}) bool {
	ok, err := persist.LoadJSON(p.kv, key, v)
	if err != nil {
		p.log.Warn("unreadable state, using default", zap.String("key", key), zap.Error(err))
		return false
	}
	return ok
}

func (p *Planner) loadString(key string) (string, bool) {
	s, ok, err := persist.LoadString(p.kv, key)
	if err != nil {
		p.log.Warn("unreadable state, using default", zap.String("key", key), zap.Error(err))
		return "", false
	}
	return s, ok
}

func (p *Planner) save(key string, v interface{}) error {
	if err := persist.SaveJSON(p.kv, key, v); err != nil {
		p.log.Error("save failed", zap.String("key", key), zap.Error(err))
		return fmt.Errorf("save %s: %w", key, err)
	}
	return nil
}

func (p *Planner) saveString(key, s string) error {
	if err := persist.SaveString(p.kv, key, s); err != nil {
		p.log.Error("save failed", zap.String("key", key), zap.Error(err))
		return fmt.Errorf("save %s: %w", key, err)
	}
	return nil
}

func (p *Planner) Now() time.Time {
	return p.clock.Now()
}

func (p *Planner) Clock() clock.Clock {
	return p.clock
}

// Viewed is the date the board is showing
func (p *Planner) Viewed() time.Time {
	return p.viewed
}

func (p *Planner) ViewedWeek() date.WeekID {
	return date.WeekOf(p.viewed)
}

// CurrentWeek is computed on every call since legacy tasks follow real time
func (p *Planner) CurrentWeek() date.WeekID {
	return date.WeekOf(p.clock.Now())
}

func (p *Planner) ViewingCurrentWeek() bool {
	return p.ViewedWeek() == p.CurrentWeek()
}

func (p *Planner) ShiftWeek(n int) {
	p.viewed = date.ShiftWeeks(p.viewed, n)
}

func (p *Planner) GoToToday() {
	p.viewed = p.clock.Now()
}

func (p *Planner) GoTo(t time.Time) {
	p.viewed = t
}

func (p *Planner) RangeLabel() string {
	return date.RangeLabel(p.viewed)
}

// Tasks

func (p *Planner) Tasks() []task.Task {
	return p.tasks.All()
}

func (p *Planner) Task(id task.ID) (task.Task, bool) {
	return p.tasks.Get(id)
}

// AddTask creates a task in the viewed week.
// A task linked to a topic takes the topic's color unless it has its own.
func (p *Planner) AddTask(d task.Draft) (task.Task, error) {
	if !d.Day.Valid() {
		return task.Task{}, date.ErrUnknownDay
	}
	if d.Color == "" && d.TopicTitle != "" {
		if t, ok := p.topics.FindByTitle(d.TopicTitle); ok {
			d.Color = t.Color
		}
	}
	if d.Color == "" {
		d.Color = task.ColorWork
	}
	t := p.tasks.Add(d, p.ViewedWeek(), p.CurrentWeek())
	p.log.Debug("task added", zap.String("id", string(t.ID)), zap.String("week", t.WeekID.String()))
	return t, p.save(persist.KeyTasks, p.tasks)
}

func (p *Planner) AddTimeLog(day date.Day, minutes int) (task.Task, error) {
	return p.AddTask(task.NewTimeLog(day, minutes))
}

func (p *Planner) AddSticker(day date.Day, url string) (task.Task, error) {
	return p.AddTask(task.NewSticker(day, url))
}

// UpdateTask merges patch into the task, unknown ids do nothing
func (p *Planner) UpdateTask(id task.ID, patch task.Patch) (bool, error) {
	if patch.Day != nil && !patch.Day.Valid() {
		return false, date.ErrUnknownDay
	}
	if !p.tasks.Update(id, patch, p.CurrentWeek()) {
		return false, nil
	}
	return true, p.save(persist.KeyTasks, p.tasks)
}

// SetTimeLog changes the duration of a time log, keeping its title in sync
func (p *Planner) SetTimeLog(id task.ID, minutes int) (bool, error) {
	entry := task.NewTimeLog(date.Monday, minutes)
	return p.UpdateTask(id, task.Patch{Title: &entry.Title, DurationMinutes: &entry.DurationMinutes})
}

func (p *Planner) ToggleTask(id task.ID) (bool, error) {
	if !p.tasks.Toggle(id) {
		return false, nil
	}
	return true, p.save(persist.KeyTasks, p.tasks)
}

// RemoveTask deletes a task. Anything but a time log has to be confirmed.
func (p *Planner) RemoveTask(id task.ID, confirmed bool) (bool, error) {
	t, ok := p.tasks.Get(id)
	if !ok {
		return false, nil
	}
	if t.NeedsConfirmation() && !confirmed {
		return false, ErrConfirmationRequired
	}
	p.tasks.Remove(id)
	p.log.Debug("task removed", zap.String("id", string(id)))
	return true, p.save(persist.KeyTasks, p.tasks)
}

// ApplyPlan adds every task of the plan to the viewed week at once
func (p *Planner) ApplyPlan(pl *plan.Plan) ([]task.Task, error) {
	if pl == nil || len(pl.Tasks) == 0 {
		return nil, plan.ErrNoPlan
	}
	added := p.tasks.AddAll(pl.Drafts(), p.ViewedWeek(), p.CurrentWeek())
	p.log.Info("plan applied", zap.String("name", pl.Name), zap.Int("tasks", len(added)))
	return added, p.save(persist.KeyTasks, p.tasks)
}

// GeneratePlan asks gen for a plan and applies it.
// Nothing changes when generation fails.
func (p *Planner) GeneratePlan(ctx context.Context, gen plan.Generator, prompt string) (*plan.Plan, []task.Task, error) {
	pl, err := gen.Generate(ctx, prompt)
	if err != nil {
		if !errors.Is(err, plan.ErrNoPlan) {
			err = fmt.Errorf("%w: %v", plan.ErrNoPlan, err)
		}
		return nil, nil, err
	}
	added, err := p.ApplyPlan(pl)
	if err != nil {
		return nil, nil, err
	}
	return pl, added, nil
}

// Board

// Column is one day of the viewed week
type Column struct {
	task.Column
	Day   date.Day
	Date  time.Time
	Today bool
}

func (p *Planner) VisibleDays() []date.Day {
	if p.settings.ShowWeekends {
		return date.Days
	}
	return date.Weekdays
}

func (p *Planner) Board() []Column {
	viewed, current := p.ViewedWeek(), p.CurrentWeek()
	now := p.clock.Now()
	today := date.StartOfWeek(now).AddDate(0, 0, date.DayOf(now).Offset())
	days := p.VisibleDays()
	out := make([]Column, len(days))
	for i, d := range days {
		col := date.ColumnDate(d, p.viewed)
		out[i] = Column{
			Column: task.Partition(p.tasks.ForDay(d, viewed, current), p.topics.IsSpecific),
			Day:    d,
			Date:   col,
			Today:  col.Equal(today),
		}
	}
	return out
}

// WeekMinutes totals the viewed week
func (p *Planner) WeekMinutes() int {
	return task.Sum(p.tasks.InWeek(p.ViewedWeek(), p.CurrentWeek()))
}

// TimeLogs returns the time log entries of one day in the viewed week
func (p *Planner) TimeLogs(day date.Day) []task.Task {
	out := []task.Task{}
	for _, t := range p.tasks.ForDay(day, p.ViewedWeek(), p.CurrentWeek()) {
		if t.IsTimeLog() {
			out = append(out, t)
		}
	}
	return out
}

// Stats

func (p *Planner) Daily() []stats.Bucket {
	return stats.Daily(p.tasks.All(), p.ViewedWeek(), p.clock.Now())
}

func (p *Planner) Weekly() []stats.Bucket {
	return stats.Weekly(p.tasks.All(), p.clock.Now())
}

func (p *Planner) Monthly() []stats.Bucket {
	return stats.Monthly(p.tasks.All(), p.clock.Now())
}

func (p *Planner) Summary() stats.Summary {
	return stats.Summarize(p.tasks.All(), p.clock.Now())
}

// Settings

func (p *Planner) Settings() Settings {
	return p.settings
}

func validTheme(id string) bool {
	for _, t := range Themes {
		if t == id {
			return true
		}
	}
	return false
}

func (p *Planner) SetTheme(id string) error {
	if !validTheme(id) {
		return ErrUnknownTheme
	}
	p.settings.Theme = id
	return p.saveString(persist.KeyTheme, id)
}

// ToggleWeekends flips weekend visibility and returns the new value
func (p *Planner) ToggleWeekends() (bool, error) {
	p.settings.ShowWeekends = !p.settings.ShowWeekends
	return p.settings.ShowWeekends, p.save(persist.KeyWeekends, p.settings.ShowWeekends)
}

func (p *Planner) SetQuickLink(link string) error {
	u, err := url.Parse(link)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return ErrInvalidLink
	}
	p.settings.QuickLink = link
	return p.saveString(persist.KeyQuickLink, link)
}
