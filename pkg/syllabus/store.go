package syllabus

import (
	"encoding/json"
	"math/rand"
	"time"
)

type Direction int

const (
	Up   Direction = -1
	Down Direction = 1
)

// Store is the ordered topic list.
// Both partitions live in the same slice and keep their relative order.
type Store struct {
	topics []Topic
	now    func() time.Time
	color  func() string
}

func NewStore(topics []Topic, now func() time.Time) *Store {
	if now == nil {
		now = time.Now
	}
	return &Store{topics: normalize(topics), now: now, color: randomColor}
}

func randomColor() string {
	return Palette[rand.Intn(len(Palette))]
}

// topics saved before types existed are specific
func normalize(ts []Topic) []Topic {
	out := make([]Topic, len(ts))
	for i, t := range ts {
		if !t.Type.Valid() {
			t.Type = Specific
		}
		out[i] = t
	}
	return out
}

func (s *Store) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.All())
}

func (s *Store) UnmarshalJSON(bs []byte) error {
	var out []Topic
	if err := json.Unmarshal(bs, &out); err != nil {
		return err
	}
	s.topics = normalize(out)
	return nil
}

func (s *Store) All() []Topic {
	out := make([]Topic, len(s.topics))
	copy(out, s.topics)
	return out
}

func (s *Store) Len() int {
	return len(s.topics)
}

// nextID is time based but always above every id in use
func (s *Store) nextID() ID {
	now := time.Now
	if s.now != nil {
		now = s.now
	}
	id := ID(now().UnixMilli())
	for _, t := range s.topics {
		if t.ID >= id {
			id = t.ID + 1
		}
	}
	return id
}

// Add appends a topic with the default title and a random palette color
func (s *Store) Add(typ Type) Topic {
	if !typ.Valid() {
		typ = Specific
	}
	color := randomColor
	if s.color != nil {
		color = s.color
	}
	t := Topic{ID: s.nextID(), Title: DefaultTitle, Color: color(), Type: typ}
	next := make([]Topic, len(s.topics), len(s.topics)+1)
	copy(next, s.topics)
	s.topics = append(next, t)
	return t
}

func (s *Store) Index(id ID) int {
	for i, t := range s.topics {
		if t.ID == id {
			return i
		}
	}
	return -1
}

func (s *Store) Get(id ID) (Topic, bool) {
	i := s.Index(id)
	if i < 0 {
		return Topic{}, false
	}
	return s.topics[i], true
}

func (s *Store) Rename(id ID, title string) bool {
	i := s.Index(id)
	if i < 0 {
		return false
	}
	next := s.All()
	next[i].Title = title
	s.topics = next
	return true
}

func (s *Store) Remove(id ID) bool {
	i := s.Index(id)
	if i < 0 {
		return false
	}
	next := make([]Topic, 0, len(s.topics)-1)
	next = append(next, s.topics[:i]...)
	s.topics = append(next, s.topics[i+1:]...)
	return true
}

// Reorder moves the topic at from so it ends up at to
func (s *Store) Reorder(from, to int) bool {
	n := len(s.topics)
	if from == to || from < 0 || to < 0 || from >= n || to >= n {
		return false
	}
	next := s.All()
	moved := next[from]
	next = append(next[:from], next[from+1:]...)
	next = append(next[:to], append([]Topic{moved}, next[to:]...)...)
	s.topics = next
	return true
}

// MoveAdjacent swaps the topic at index with its neighbour.
// Moving the first topic up or the last one down does nothing.
func (s *Store) MoveAdjacent(index int, dir Direction) bool {
	other := index + int(dir)
	if index < 0 || index >= len(s.topics) || other < 0 || other >= len(s.topics) {
		return false
	}
	next := s.All()
	next[index], next[other] = next[other], next[index]
	s.topics = next
	return true
}

// Partition returns the topics of one type in list order.
// Display numbers start at 1 within the partition.
func (s *Store) Partition(typ Type) []Topic {
	out := []Topic{}
	for _, t := range s.topics {
		if t.Type == typ {
			out = append(out, t)
		}
	}
	return out
}

// FindByTitle matches the title exactly
func (s *Store) FindByTitle(title string) (Topic, bool) {
	for _, t := range s.topics {
		if t.Title == title {
			return t, true
		}
	}
	return Topic{}, false
}

// IsSpecific reports whether title names a specific topic.
// Unknown titles are not specific.
func (s *Store) IsSpecific(title string) bool {
	t, ok := s.FindByTitle(title)
	return ok && t.Type == Specific
}
