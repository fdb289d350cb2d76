// Package plan turns a free text request into a week of task drafts.
package plan

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/td0m/semana/pkg/task"
	"github.com/td0m/semana/pkg/task/date"
)

// ErrNoPlan means the generator did not produce anything usable.
// Callers must leave existing tasks untouched when they see it.
var ErrNoPlan = errors.New("no plan produced")

type Category string

const (
	Work     Category = "work"
	Personal Category = "personal"
	Study    Category = "study"
	Health   Category = "health"
)

var Categories = []Category{Work, Personal, Study, Health}

func (c Category) Valid() bool {
	for _, v := range Categories {
		if c == v {
			return true
		}
	}
	return false
}

type Item struct {
	Title           string   `json:"title"`
	Description     string   `json:"description,omitempty"`
	Day             string   `json:"day"`
	StartTime       string   `json:"startTime"`
	DurationMinutes int      `json:"durationMinutes"`
	Category        Category `json:"category"`
}

type Plan struct {
	Name  string `json:"planName"`
	Tasks []Item `json:"tasks"`
}

type Generator interface {
	Generate(ctx context.Context, prompt string) (*Plan, error)
}

// GeneratorFunc adapts a function to Generator
type GeneratorFunc func(ctx context.Context, prompt string) (*Plan, error)

func (f GeneratorFunc) Generate(ctx context.Context, prompt string) (*Plan, error) {
	return f(ctx, prompt)
}

// Decode parses a model response, empty responses and plans are ErrNoPlan
func Decode(text string) (*Plan, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, ErrNoPlan
	}
	var p Plan
	if err := json.Unmarshal([]byte(text), &p); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNoPlan, err)
	}
	if len(p.Tasks) == 0 {
		return nil, ErrNoPlan
	}
	return &p, nil
}

// day matches the item's day against the canonical names, Monday otherwise
func (i Item) day() date.Day {
	if d, ok := date.Lookup(i.Day); ok {
		return d
	}
	return date.Monday
}

// Drafts converts the plan into task drafts
func (p Plan) Drafts() []task.Draft {
	out := make([]task.Draft, 0, len(p.Tasks))
	for _, i := range p.Tasks {
		c := i.Category
		if !c.Valid() {
			c = Work
		}
		out = append(out, task.Draft{
			Title:           i.Title,
			Description:     i.Description,
			Day:             i.day(),
			StartTime:       i.StartTime,
			DurationMinutes: i.DurationMinutes,
			Color:           string(c),
		})
	}
	return out
}
