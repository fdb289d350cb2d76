package syllabus

import (
	"time"

	"github.com/td0m/semana/pkg/clock"
	"github.com/td0m/semana/pkg/debounce"
)

// SaveDelay is how long the editor waits after the last edit before saving
const SaveDelay = time.Second

// NoteEditor edits one topic's note, saving once typing stops
type NoteEditor struct {
	topic ID
	text  string
	saved string
	save  func(ID, string) error
	d     *debounce.Debouncer

	// Err is the last error returned by save
	Err error
}

// OpenNote starts editing text, the topic's current note
func OpenNote(c clock.Clock, topic ID, text string, save func(ID, string) error) *NoteEditor {
	return &NoteEditor{
		topic: topic,
		text:  text,
		saved: text,
		save:  save,
		d:     debounce.New(c, SaveDelay),
	}
}

func (e *NoteEditor) Topic() ID {
	return e.topic
}

func (e *NoteEditor) Text() string {
	return e.text
}

func (e *NoteEditor) Dirty() bool {
	return e.text != e.saved
}

// Edit replaces the text and reschedules the save
func (e *NoteEditor) Edit(text string) {
	e.text = text
	if !e.Dirty() {
		e.d.Cancel()
		return
	}
	e.d.Schedule(func() { e.flush(text) })
}

func (e *NoteEditor) flush(text string) {
	if err := e.save(e.topic, text); err != nil {
		e.Err = err
		return
	}
	e.saved = text
}

// Close saves right away when there are unsaved changes
func (e *NoteEditor) Close() error {
	if !e.d.Flush() && e.Dirty() {
		e.flush(e.text)
	}
	return e.Err
}
