package task

import (
	"encoding/json"
	"errors"

	"github.com/td0m/semana/pkg/task/date"
)

type Serializable interface {
	MarshalJSON() ([]byte, error)
	UnmarshalJSON([]byte) error
}

type StoreManager interface {
	Serializable

	Add(d Draft, viewed, current date.WeekID) Task
	AddAll(ds []Draft, viewed, current date.WeekID) []Task
	Update(id ID, p Patch, current date.WeekID) bool
	Toggle(ID) bool
	Remove(ID) bool

	Get(ID) (Task, bool)
	All() []Task
	ForDay(day date.Day, viewed, current date.WeekID) []Task
	InWeek(viewed, current date.WeekID) []Task
	Len() int
}

var _ StoreManager = &Store{}

var ErrNotFound = errors.New("task not found")

// Store keeps tasks in insertion order.
// Every mutation builds a new slice and swaps it in, so a slice returned by
// All is never changed afterwards.
type Store struct {
	tasks []Task
	newID func() ID
}

func NewStore(tasks ...Task) *Store {
	s := &Store{newID: NewID}
	s.tasks = normalize(tasks)
	return s
}

func (s *Store) MarshalJSON() ([]byte, error) {
	if s.tasks == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(s.tasks)
}

func (s *Store) UnmarshalJSON(bs []byte) error {
	var out []Task
	if err := json.Unmarshal(bs, &out); err != nil {
		return err
	}
	s.tasks = normalize(out)
	return nil
}

func normalize(ts []Task) []Task {
	out := make([]Task, 0, len(ts))
	for _, t := range ts {
		t.DurationMinutes = clampMinutes(t.DurationMinutes)
		if t.ID == "" {
			t.ID = NewID()
		}
		out = append(out, t)
	}
	return out
}

func (s *Store) create(d Draft, viewed date.WeekID) Task {
	if s.newID == nil {
		s.newID = NewID
	}
	return Task{
		ID:              s.newID(),
		Title:           d.Title,
		Description:     d.Description,
		Day:             d.Day,
		StartTime:       d.StartTime,
		DurationMinutes: clampMinutes(d.DurationMinutes),
		Color:           d.Color,
		TopicTitle:      d.TopicTitle,
		Sticker:         d.Sticker,
		WeekID:          viewed,
	}
}

// Add stamps the draft with the viewed week.
// A sticker replaces any sticker already on the same day of that week.
func (s *Store) Add(d Draft, viewed, current date.WeekID) Task {
	return s.AddAll([]Draft{d}, viewed, current)[0]
}

// AddAll adds every draft in a single swap
func (s *Store) AddAll(ds []Draft, viewed, current date.WeekID) []Task {
	next := make([]Task, 0, len(s.tasks)+len(ds))
	next = append(next, s.tasks...)
	added := make([]Task, 0, len(ds))
	for _, d := range ds {
		if d.Sticker != "" {
			next = withoutSticker(next, d.Day, viewed, current)
		}
		t := s.create(d, viewed)
		next = append(next, t)
		added = append(added, t)
	}
	s.tasks = next
	return added
}

func withoutSticker(ts []Task, day date.Day, viewed, current date.WeekID) []Task {
	out := ts[:0:0]
	for _, t := range ts {
		if t.IsSticker() && Matches(t, day, viewed, current) {
			continue
		}
		out = append(out, t)
	}
	return out
}

func (s *Store) index(id ID) int {
	for i, t := range s.tasks {
		if t.ID == id {
			return i
		}
	}
	return -1
}

// Update merges p into the task, unknown ids are ignored.
// A sticker moved onto another day replaces the sticker already there.
func (s *Store) Update(id ID, p Patch, current date.WeekID) bool {
	i := s.index(id)
	if i < 0 {
		return false
	}
	prev := s.tasks[i]
	t := p.apply(prev)
	moved := t.IsSticker() && (!prev.IsSticker() || t.Day != prev.Day)
	week := EffectiveWeek(t, current)

	next := make([]Task, 0, len(s.tasks))
	for j, o := range s.tasks {
		switch {
		case j == i:
			next = append(next, t)
		case moved && o.IsSticker() && Matches(o, t.Day, week, current):
		default:
			next = append(next, o)
		}
	}
	s.tasks = next
	return true
}

func (s *Store) Toggle(id ID) bool {
	i := s.index(id)
	if i < 0 {
		return false
	}
	next := make([]Task, len(s.tasks))
	copy(next, s.tasks)
	next[i].IsCompleted = !next[i].IsCompleted
	s.tasks = next
	return true
}

func (s *Store) Remove(id ID) bool {
	i := s.index(id)
	if i < 0 {
		return false
	}
	next := make([]Task, 0, len(s.tasks)-1)
	next = append(next, s.tasks[:i]...)
	next = append(next, s.tasks[i+1:]...)
	s.tasks = next
	return true
}

func (s *Store) Get(id ID) (Task, bool) {
	i := s.index(id)
	if i < 0 {
		return Task{}, false
	}
	return s.tasks[i], true
}

func (s *Store) All() []Task {
	return s.tasks
}

func (s *Store) Len() int {
	return len(s.tasks)
}

func (s *Store) ForDay(day date.Day, viewed, current date.WeekID) []Task {
	out := []Task{}
	for _, t := range s.tasks {
		if Matches(t, day, viewed, current) {
			out = append(out, t)
		}
	}
	return out
}

func (s *Store) InWeek(viewed, current date.WeekID) []Task {
	out := []Task{}
	for _, t := range s.tasks {
		if InWeek(t, viewed, current) {
			out = append(out, t)
		}
	}
	return out
}
