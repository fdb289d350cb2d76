// Package dateinput is a single line input that reads loosely typed dates,
// used to jump the board to another week.
package dateinput

import (
	"math"
	"strconv"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/td0m/semana/pkg/task/date"
)

var (
	indicator = lipgloss.NewStyle().Padding(0, 1).Bold(true)
	checkmark = indicator.Copy().
			Foreground(lipgloss.AdaptiveColor{Light: "#00ad3b", Dark: "#73F59F"}).
			Render("✓")

	cross = indicator.Copy().
		Foreground(lipgloss.AdaptiveColor{Light: "", Dark: "#FF5047"}).
		Render("✗")

	faded = lipgloss.AdaptiveColor{Light: "#666", Dark: "#999"}
)

type Model struct {
	i     textinput.Model
	value *time.Time
	now   func() time.Time
}

// NewModel returns a focused input; now anchors relative dates
func NewModel(now func() time.Time) Model {
	if now == nil {
		now = time.Now
	}
	i := textinput.NewModel()
	i.Focus()
	i.CharLimit = 20
	i.Prompt = ""
	i.Placeholder = "hoy, viernes, +2s, 12 mar"
	return Model{
		i:   i,
		now: now,
	}
}

func (m *Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd
	switch msg := msg.(type) {
	case tea.KeyMsg:
		m.i, cmd = m.i.Update(msg)
		m.value = nil
		if t, ok := Parse(m.i.Value(), m.now()); ok {
			m.value = &t
		}
		return m, cmd
	}
	return m, nil
}

func (m *Model) View() string {
	indicator := cross
	if m.i.Value() == "" {
		indicator = ""
	} else if m.value != nil {
		indicator = checkmark + " " + date.RangeLabel(*m.value) + " (" + format(*m.value, m.now()) + ")"
	}
	return lipgloss.NewStyle().Foreground(faded).Render("ir a: ") + m.i.View() + indicator
}

func (m *Model) Value() *time.Time {
	return m.value
}

func (m *Model) SetValue(t *time.Time) {
	m.value = t
	if t == nil {
		m.i.SetValue("")
		return
	}
	m.i.SetValue(t.Format("02/01/2006"))
}

// format describes t relative to now in weeks
func format(t, now time.Time) string {
	days := math.Round(date.StartOfWeek(t).Sub(date.StartOfWeek(now)).Hours() / 24)
	weeks := int(days) / 7
	switch {
	case weeks == 0:
		return "esta semana"
	case weeks == 1:
		return "la próxima semana"
	case weeks == -1:
		return "la semana pasada"
	case weeks > 0:
		return "en " + strconv.Itoa(weeks) + " semanas"
	default:
		return "hace " + strconv.Itoa(-weeks) + " semanas"
	}
}
