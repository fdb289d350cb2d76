package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/td0m/semana/internal/ui"
	"github.com/td0m/semana/pkg/planner"
	"github.com/td0m/semana/pkg/syllabus"
	"github.com/td0m/semana/pkg/task"
)

const minColumnWidth = 14

func (m app) theme() ui.Theme {
	return ui.ThemeByID(m.p.Settings().Theme)
}

func (m *app) render() {
	th := m.theme()
	m.tabs.Accent = th.Accent
	m.tabs.Info = m.linkInfo()

	var content string
	switch m.tabs.Value() {
	case tabBoard:
		content = m.viewBoard(th)
	case tabStats:
		content = m.viewStats(th)
	case tabSyllabus:
		content = m.viewSyllabus(th)
	case tabThemes:
		content = m.viewThemes(th)
	}
	m.viewport.SetContent(content)
}

func (m app) View() string {
	return m.tabs.View() + m.viewport.View() + "\n" + m.statusline()
}

var (
	faded = lipgloss.NewStyle().Foreground(ui.Faded)
	help  = map[int]string{
		tabBoard:    "h/l día · j/k tarea · [/] semana · . hoy · g ir a · a añadir · t tiempo · s sticker · x hecho · d borrar · P plan IA",
		tabStats:    "1 diario · 2 semanal · 3 mensual · [/] semana",
		tabSyllabus: "f específico/legislación · x hecho · a añadir · i renombrar · K/J mover · m posición · enter notas · d borrar",
		tabThemes:   "j/k elegir · enter aplicar",
	}
)

func (m app) statusline() string {
	label := func(s string) string { return faded.Render(s + ": ") }
	switch m.mode {
	case modeAdd:
		return label("nueva tarea ("+string(m.day())+")") + m.input.View()
	case modeRename, modeTopicRename:
		return label("título") + m.input.View()
	case modeTopicMove:
		return label("mover a la posición") + m.input.View()
	case modeTimeLog:
		return label("tiempo ("+string(m.day())+")") + m.input.View()
	case modeSticker:
		return label("sticker") + m.input.View()
	case modePlan:
		return label("plan IA") + m.input.View()
	case modeLink:
		return label("enlace rápido") + m.input.View()
	case modeNote:
		state := "✓"
		if m.note != nil && m.note.Dirty() {
			state = "●"
		}
		return label("nota") + m.input.View() + " " + faded.Render(state)
	case modeJump:
		return m.jump.View()
	case modeConfirm:
		return lipgloss.NewStyle().Foreground(ui.Red).Bold(true).Render(m.question)
	case modePlanning:
		return faded.Render("Generando plan…")
	}
	if m.status != "" {
		return m.status
	}
	return faded.Render(ui.Truncate(help[m.tabs.Value()]+" · o enlace · tab vista · q salir", m.width))
}

// Board

func (m app) viewBoard(th ui.Theme) string {
	cols := m.p.Board()
	title := lipgloss.NewStyle().Bold(true).Foreground(th.Accent).Render(m.p.RangeLabel())
	total := faded.Render("  total " + task.FormatDuration(m.p.WeekMinutes()))
	if !m.p.ViewingCurrentWeek() {
		total += faded.Render("  · . volver a hoy")
	}

	w := minColumnWidth
	if len(cols) > 0 {
		w = max((m.width-2)/len(cols), minColumnWidth)
	}
	rendered := make([]string, len(cols))
	for i, col := range cols {
		rendered[i] = m.viewColumn(i, col, w, th)
	}
	return " " + title + total + "\n\n" + lipgloss.JoinHorizontal(lipgloss.Top, rendered...)
}

func (m app) viewColumn(i int, col planner.Column, w int, th ui.Theme) string {
	head := lipgloss.NewStyle().Bold(true).Foreground(th.Text())
	if col.Today {
		head = head.Copy().Foreground(th.Accent)
	}
	if i == m.col {
		head = head.Copy().Underline(true)
	}
	lines := []string{
		head.Render(ui.Truncate(col.Day.Short(3)+" "+strconv.Itoa(col.Date.Day()), w-1)),
		faded.Render(task.FormatDuration(col.Minutes())),
		"",
	}

	row := 0
	lane := func(title string, ts []task.Task) {
		if len(ts) == 0 {
			return
		}
		lines = append(lines, ui.LaneTitle.Render(ui.Truncate(title, w-1)))
		for _, t := range ts {
			selected := m.mode != modeJump && i == m.col && row == m.row
			lines = append(lines, ui.Task(t, w-1, selected, th))
			row++
		}
		lines = append(lines, "")
	}
	lane("TEMARIO", col.Specific)
	lane("LEGISLACIÓN", col.Legislation)
	lane("REGISTRO", col.TimeLogs)
	if col.Sticker != nil {
		lane("STICKER", []task.Task{*col.Sticker})
	}
	return lipgloss.NewStyle().Width(w).Render(strings.Join(lines, "\n"))
}

// Stats

var statsTitles = []string{"Diario", "Semanal (4 semanas)", "Mensual (6 meses)"}

func (m app) viewStats(th ui.Theme) string {
	bs := m.p.Daily()
	switch m.statsView {
	case statsWeekly:
		bs = m.p.Weekly()
	case statsMonthly:
		bs = m.p.Monthly()
	}
	tabs := make([]string, len(statsTitles))
	for i, t := range statsTitles {
		s := faded
		if i == m.statsView {
			s = lipgloss.NewStyle().Bold(true).Foreground(th.Accent)
		}
		tabs[i] = s.Render(t)
	}
	header := " " + strings.Join(tabs, faded.Render(" | "))
	if m.statsView == statsDaily {
		header += faded.Render("  " + m.p.RangeLabel())
	}

	s := m.p.Summary()
	summary := fmt.Sprintf("Esta semana %s · Anterior %s · Hace 2 semanas %s",
		task.FormatDuration(s.ThisWeek), task.FormatDuration(s.LastWeek), task.FormatDuration(s.TwoWeeksAgo))
	chart := lipgloss.NewStyle().Padding(0, 1).Render(ui.Chart(bs, max(m.width-4, 20), th))
	return header + "\n\n" + chart + "\n\n " + faded.Render(summary)
}

// Syllabus

func (m app) viewSyllabus(th ui.Theme) string {
	topics := m.p.Partition(m.partition)
	title := "TEMARIO ESPECÍFICO"
	if m.partition == syllabus.Legislation {
		title = "LEGISLACIÓN"
	}
	done, total := m.p.Progress(m.partition)
	lines := []string{
		" " + lipgloss.NewStyle().Bold(true).Foreground(th.Accent).Render(title) +
			faded.Render(fmt.Sprintf("  %d/%d completados", done, total)),
		"",
	}
	for i, t := range topics {
		check := "[ ]"
		style := lipgloss.NewStyle().Foreground(th.Text())
		if m.p.Done(t.ID) {
			check = "[X]"
			style = style.Copy().Strikethrough(true).Foreground(th.Muted())
		}
		if i == m.topic {
			style = style.Copy().Background(th.Accent).Foreground(th.Background)
		}
		note := ""
		if m.p.Note(t.ID) != "" {
			note = faded.Render(" ✎")
		}
		bar := lipgloss.NewStyle().Foreground(ui.TaskColor(t.Color)).Render("▌")
		number := faded.Render(fmt.Sprintf("%3d. ", i+1))
		lines = append(lines, " "+check+" "+bar+number+style.Render(ui.Truncate(t.Title, max(m.width-16, 10)))+note)
	}
	if len(topics) == 0 {
		lines = append(lines, faded.Render(" Sin temas, pulsa a para añadir uno"))
	}
	return strings.Join(lines, "\n")
}

// Themes

func (m app) viewThemes(th ui.Theme) string {
	lines := []string{" " + lipgloss.NewStyle().Bold(true).Foreground(th.Accent).Render("TEMAS VISUALES"), ""}
	for i, t := range ui.Themes {
		cursor := "  "
		if i == m.themeIdx {
			cursor = lipgloss.NewStyle().Foreground(th.Accent).Render("▸ ")
		}
		current := ""
		if t.ID == th.ID {
			current = lipgloss.NewStyle().Foreground(ui.Green).Render(" ✓")
		}
		name := lipgloss.NewStyle().Bold(true).Width(13).Render(t.Name)
		lines = append(lines, cursor+t.Swatch()+" "+name+faded.Render(t.Description)+current)
	}
	return strings.Join(lines, "\n")
}
