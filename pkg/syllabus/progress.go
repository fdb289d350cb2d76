package syllabus

import (
	"encoding/json"
	"strconv"
)

// Completion is the set of finished topics.
// It is stored as a list of ids in the order they were completed.
type Completion struct {
	ids []ID
}

func NewCompletion(ids []ID) *Completion {
	c := &Completion{}
	for _, id := range ids {
		if !c.Done(id) {
			c.ids = append(c.ids, id)
		}
	}
	return c
}

func (c *Completion) Done(id ID) bool {
	for _, done := range c.ids {
		if done == id {
			return true
		}
	}
	return false
}

// Toggle flips id and returns its new state
func (c *Completion) Toggle(id ID) bool {
	next := make([]ID, 0, len(c.ids)+1)
	for _, done := range c.ids {
		if done != id {
			next = append(next, done)
		}
	}
	done := len(next) == len(c.ids)
	if done {
		next = append(next, id)
	}
	c.ids = next
	return done
}

func (c *Completion) IDs() []ID {
	out := make([]ID, len(c.ids))
	copy(out, c.ids)
	return out
}

// Count returns how many of topics are done
func (c *Completion) Count(topics []Topic) int {
	n := 0
	for _, t := range topics {
		if c.Done(t.ID) {
			n++
		}
	}
	return n
}

func (c *Completion) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.IDs())
}

func (c *Completion) UnmarshalJSON(bs []byte) error {
	var ids []ID
	if err := json.Unmarshal(bs, &ids); err != nil {
		return err
	}
	*c = *NewCompletion(ids)
	return nil
}

// Notes maps topics to free text
type Notes struct {
	m map[ID]string
}

func NewNotes(m map[ID]string) *Notes {
	n := &Notes{m: map[ID]string{}}
	for id, s := range m {
		n.m[id] = s
	}
	return n
}

func (n *Notes) Get(id ID) string {
	return n.m[id]
}

// Set stores text for id, empty text removes the note
func (n *Notes) Set(id ID, text string) {
	next := make(map[ID]string, len(n.m)+1)
	for k, v := range n.m {
		next[k] = v
	}
	if text == "" {
		delete(next, id)
	} else {
		next[id] = text
	}
	n.m = next
}

func (n *Notes) Len() int {
	return len(n.m)
}

func (n *Notes) Map() map[ID]string {
	out := make(map[ID]string, len(n.m))
	for k, v := range n.m {
		out[k] = v
	}
	return out
}

// keys are decimal ids, the same shape a JSON object keyed by number has
func (n *Notes) MarshalJSON() ([]byte, error) {
	out := make(map[string]string, len(n.m))
	for id, s := range n.m {
		out[strconv.FormatInt(int64(id), 10)] = s
	}
	return json.Marshal(out)
}

func (n *Notes) UnmarshalJSON(bs []byte) error {
	var raw map[string]string
	if err := json.Unmarshal(bs, &raw); err != nil {
		return err
	}
	m := make(map[ID]string, len(raw))
	for k, v := range raw {
		id, err := strconv.ParseInt(k, 10, 64)
		if err != nil {
			return err
		}
		m[ID(id)] = v
	}
	n.m = m
	return nil
}
