package planner

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/td0m/semana/pkg/persist"
	"github.com/td0m/semana/pkg/syllabus"
)

func (p *Planner) Topics() []syllabus.Topic {
	return p.topics.All()
}

func (p *Planner) Topic(id syllabus.ID) (syllabus.Topic, bool) {
	return p.topics.Get(id)
}

func (p *Planner) Partition(typ syllabus.Type) []syllabus.Topic {
	return p.topics.Partition(typ)
}

// FindTopic looks a topic up by its exact title
func (p *Planner) FindTopic(title string) (syllabus.Topic, bool) {
	return p.topics.FindByTitle(title)
}

func (p *Planner) AddTopic(typ syllabus.Type) (syllabus.Topic, error) {
	t := p.topics.Add(typ)
	p.log.Debug("topic added", zap.Int64("id", int64(t.ID)))
	return t, p.save(persist.KeySyllabus, p.topics)
}

// RenameTopic changes a title. Tasks keep pointing at the old one.
func (p *Planner) RenameTopic(id syllabus.ID, title string) (bool, error) {
	if !p.topics.Rename(id, title) {
		return false, nil
	}
	return true, p.save(persist.KeySyllabus, p.topics)
}

func (p *Planner) RemoveTopic(id syllabus.ID, confirmed bool) (bool, error) {
	if _, ok := p.topics.Get(id); !ok {
		return false, nil
	}
	if !confirmed {
		return false, ErrConfirmationRequired
	}
	p.topics.Remove(id)
	return true, p.save(persist.KeySyllabus, p.topics)
}

func (p *Planner) ReorderTopics(from, to int) (bool, error) {
	if !p.topics.Reorder(from, to) {
		return false, nil
	}
	return true, p.save(persist.KeySyllabus, p.topics)
}

// MoveTopicTo moves id to the n-th place (from 1) of its partition.
// The move is a single reorder of the full list onto that topic's index.
func (p *Planner) MoveTopicTo(id syllabus.ID, n int) (bool, error) {
	t, ok := p.topics.Get(id)
	if !ok {
		return false, nil
	}
	part := p.topics.Partition(t.Type)
	if n < 1 || n > len(part) {
		return false, fmt.Errorf("%w: %d of %d", ErrInvalidPosition, n, len(part))
	}
	return p.ReorderTopics(p.topics.Index(id), p.topics.Index(part[n-1].ID))
}

// MoveTopic swaps the topic at index of the full list with its neighbour
func (p *Planner) MoveTopic(index int, dir syllabus.Direction) (bool, error) {
	if !p.topics.MoveAdjacent(index, dir) {
		return false, nil
	}
	return true, p.save(persist.KeySyllabus, p.topics)
}

// TopicIndex is the position of id in the full list
func (p *Planner) TopicIndex(id syllabus.ID) int {
	return p.topics.Index(id)
}

func (p *Planner) Done(id syllabus.ID) bool {
	return p.completed.Done(id)
}

// ToggleTopic flips completion and returns the new state
func (p *Planner) ToggleTopic(id syllabus.ID) (bool, error) {
	done := p.completed.Toggle(id)
	return done, p.save(persist.KeyCompleted, p.completed)
}

// Progress counts finished topics of a partition
func (p *Planner) Progress(typ syllabus.Type) (done, total int) {
	topics := p.topics.Partition(typ)
	return p.completed.Count(topics), len(topics)
}

func (p *Planner) Note(id syllabus.ID) string {
	return p.notes.Get(id)
}

func (p *Planner) SaveNote(id syllabus.ID, text string) error {
	p.notes.Set(id, text)
	return p.save(persist.KeyNotes, p.notes)
}

// OpenNote starts a debounced editor on the note of id
func (p *Planner) OpenNote(id syllabus.ID) *syllabus.NoteEditor {
	return syllabus.OpenNote(p.clock, id, p.notes.Get(id), p.SaveNote)
}
