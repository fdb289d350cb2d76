package main

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"regexp"
	"runtime"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/td0m/semana/internal/ui"
	"github.com/td0m/semana/pkg/clock"
	"github.com/td0m/semana/pkg/dateinput"
	"github.com/td0m/semana/pkg/plan"
	"github.com/td0m/semana/pkg/planner"
	"github.com/td0m/semana/pkg/press"
	"github.com/td0m/semana/pkg/syllabus"
	"github.com/td0m/semana/pkg/task"
	"github.com/td0m/semana/pkg/task/date"
)

const planTimeout = 90 * time.Second

func (c *cli) runTUI(ctx context.Context) error {
	q := clock.NewQueue(c.clock)
	p, done, err := c.open(q)
	if err != nil {
		return err
	}
	defer done()

	a := newApp(ctx, p, q, c.log)
	a.newGenerator = func(ctx context.Context) (plan.Generator, error) {
		return plan.NewGemini(ctx, c.cfg.AI.APIKey, c.cfg.AI.Model, c.log)
	}

	prog := tea.NewProgram(a)
	prog.EnableMouseAllMotion()
	defer prog.DisableMouseAllMotion()
	prog.EnterAltScreen()
	defer prog.ExitAltScreen()

	if err := prog.Start(); err != nil {
		return err
	}
	return a.close()
}

const (
	headerHeight = 3
	footerHeight = 2
)

type mode int

const (
	modeNormal mode = iota
	modeAdd
	modeRename
	modeTimeLog
	modeSticker
	modeJump
	modePlan
	modePlanning
	modeLink
	modeNote
	modeTopicRename
	modeTopicMove
	modeConfirm
)

const (
	tabBoard = iota
	tabStats
	tabSyllabus
	tabThemes
)

const (
	statsDaily = iota
	statsWeekly
	statsMonthly
)

// timerMsg carries a timer callback into the event loop
type timerMsg func()

type planMsg struct {
	plan *plan.Plan
	err  error
}

type errMsg struct{ err error }

type app struct {
	ctx  context.Context
	mode mode

	p     *planner.Planner
	queue *clock.Queue
	log   *zap.Logger

	gen          plan.Generator
	newGenerator func(ctx context.Context) (plan.Generator, error)

	viewport viewport.Model
	input    textinput.Model
	jump     dateinput.Model
	tabs     ui.Tabs
	width    int

	// board cursor, row indexes the selectable entries of the column
	col, row int

	partition syllabus.Type
	topic     int
	themeIdx  int
	statsView int

	note *syllabus.NoteEditor

	link     *press.Detector
	pressing bool

	question string
	confirm  func() error

	status string
}

func newApp(ctx context.Context, p *planner.Planner, q *clock.Queue, log *zap.Logger) *app {
	i := textinput.NewModel()
	i.Focus()
	i.Prompt = ""
	i.Width = 40

	a := &app{
		ctx:       ctx,
		p:         p,
		queue:     q,
		log:       log,
		viewport:  viewport.Model{},
		input:     i,
		jump:      dateinput.NewModel(p.Now),
		tabs:      ui.NewTabs([]string{"Semana", "Estadísticas", "Temario", "Temas"}),
		partition: syllabus.Specific,
	}
	a.link = press.New(q, a.editLink)
	a.col = a.todayColumn()
	for i, th := range ui.Themes {
		if th.ID == p.Settings().Theme {
			a.themeIdx = i
		}
	}
	return a
}

func (m app) Init() tea.Cmd {
	return m.waitTimer()
}

func (m app) waitTimer() tea.Cmd {
	q := m.queue
	return func() tea.Msg {
		return timerMsg(<-q.C)
	}
}

// close saves a note still being edited
func (m *app) close() error {
	if m.note == nil {
		return nil
	}
	err := m.note.Close()
	m.note = nil
	return err
}

func (m *app) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.viewport.Width = msg.Width
		m.viewport.Height = msg.Height - headerHeight - footerHeight
		m.tabs.Width = msg.Width
		m.input.Width = max(msg.Width-20, 10)
	case timerMsg:
		msg()
		cmd = m.waitTimer()
	case planMsg:
		m.applyPlan(msg)
	case errMsg:
		m.fail(msg.err)
	case tea.MouseMsg:
		cmd = m.mouseUpdate(msg)
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC:
			return m, tea.Quit
		case tea.KeyEsc:
			m.cancel()
		default:
			cmd = m.keyUpdate(msg)
		}
	}
	m.render()
	return m, cmd
}

func (m *app) fail(err error) {
	if err == nil {
		return
	}
	m.log.Warn("action failed", zap.Error(err))
	m.status = "✗ " + err.Error()
}

func (m *app) cancel() {
	if m.mode == modeNote {
		m.fail(m.close())
	}
	m.mode = modeNormal
	m.confirm = nil
	m.input.SetValue("")
}

// handle keys differently based on the current mode
func (m *app) keyUpdate(msg tea.KeyMsg) tea.Cmd {
	var cmd tea.Cmd
	switch m.mode {
	case modePlanning:
		return nil
	case modeConfirm:
		if msg.String() == "y" || msg.String() == "s" {
			m.fail(m.confirm())
		}
		m.confirm = nil
		m.mode = modeNormal
	case modeJump:
		if msg.Type == tea.KeyEnter {
			if v := m.jump.Value(); v != nil {
				m.p.GoTo(*v)
				m.col = m.todayColumn()
			}
			m.mode = modeNormal
			return nil
		}
		m.jump, cmd = m.jump.Update(msg)
	case modeNote:
		if msg.Type == tea.KeyEnter {
			m.cancel()
			return nil
		}
		m.input, cmd = m.input.Update(msg)
		m.note.Edit(m.input.Value())
	case modeAdd, modeRename, modeTimeLog, modeSticker, modePlan, modeLink, modeTopicRename, modeTopicMove:
		if msg.Type == tea.KeyEnter {
			cmd = m.submit()
			m.input.SetValue("")
			return cmd
		}
		m.input, cmd = m.input.Update(msg)
	case modeNormal:
		m.status = ""
		switch msg.String() {
		case "q":
			return tea.Quit
		case "o":
			return openURL(m.p.Settings().QuickLink)
		case "O":
			m.editLink()
			return nil
		}
		if msg.Type == tea.KeyTab || msg.Type == tea.KeyShiftTab {
			m.tabs, cmd = m.tabs.Update(msg)
			m.viewport.YOffset = 0
			return cmd
		}
		switch m.tabs.Value() {
		case tabBoard:
			cmd = m.boardKeys(msg)
		case tabStats:
			m.statsKeys(msg)
		case tabSyllabus:
			m.syllabusKeys(msg)
		case tabThemes:
			m.themeKeys(msg)
		}
	}
	return cmd
}

func (m *app) startInput(md mode, value, placeholder string) {
	m.mode = md
	m.input.Placeholder = placeholder
	m.input.SetValue(value)
	m.input.SetCursor(len(value))
}

func (m *app) ask(question string, action func() error) {
	m.mode = modeConfirm
	m.question = question
	m.confirm = action
}

// submit finishes the input of the current mode
func (m *app) submit() tea.Cmd {
	value := strings.TrimSpace(m.input.Value())
	md := m.mode
	m.mode = modeNormal
	if value == "" && md != modeSticker {
		return nil
	}
	var err error
	switch md {
	case modeAdd:
		var d task.Draft
		if d, err = m.parseEntry(value); err == nil {
			_, err = m.p.AddTask(d)
		}
	case modeRename:
		if t, ok := m.selected(); ok {
			_, err = m.p.UpdateTask(t.ID, task.Patch{Title: &value})
		}
	case modeTimeLog:
		var minutes int
		if minutes, err = parseMinutes(value); err == nil {
			if t, ok := m.selected(); ok && t.IsTimeLog() {
				_, err = m.p.SetTimeLog(t.ID, minutes)
			} else {
				_, err = m.p.AddTimeLog(m.day(), minutes)
			}
		}
	case modeSticker:
		_, err = m.p.AddSticker(m.day(), value)
	case modeLink:
		err = m.p.SetQuickLink(value)
	case modeTopicRename:
		if t, ok := m.selectedTopic(); ok {
			_, err = m.p.RenameTopic(t.ID, value)
		}
	case modeTopicMove:
		if t, ok := m.selectedTopic(); ok {
			var n int
			if n, err = strconv.Atoi(value); err == nil {
				_, err = m.p.MoveTopicTo(t.ID, n)
				m.followTopic(t.ID)
			}
		}
	case modePlan:
		m.mode = modePlanning
		m.status = "Generando plan…"
		return m.generate(value)
	}
	m.fail(err)
	return nil
}

var (
	errNoMinutes = errors.New("invalid duration, try 90, 45m or 1h30")
	durationRe   = regexp.MustCompile(`^(?:(\d+)h)?(?:(\d+)m?)?$`)
	topicRe      = regexp.MustCompile(`^#(l?)(\d+)$`)
)

// parseMinutes reads 90, 45m, 2h or 1h30
func parseMinutes(s string) (int, error) {
	parts := durationRe.FindStringSubmatch(strings.TrimSpace(s))
	if parts == nil || (parts[1] == "" && parts[2] == "") {
		return 0, errNoMinutes
	}
	h, _ := strconv.Atoi(parts[1])
	m, _ := strconv.Atoi(parts[2])
	return h*60 + m, nil
}

// parseEntry reads "title [#n|#ln] [duration]" into a draft for the selected
// day. #n links the n-th specific topic, #ln the n-th legislation one.
func (m *app) parseEntry(s string) (task.Draft, error) {
	d := task.Draft{Day: m.day(), DurationMinutes: 60}
	fields := strings.Fields(s)
	title := fields[:0]
	for _, f := range fields {
		if parts := topicRe.FindStringSubmatch(f); parts != nil {
			typ := syllabus.Specific
			if parts[1] == "l" {
				typ = syllabus.Legislation
			}
			n, _ := strconv.Atoi(parts[2])
			topics := m.p.Partition(typ)
			if n < 1 || n > len(topics) {
				return d, fmt.Errorf("no topic %s", f)
			}
			d.TopicTitle = topics[n-1].Title
			continue
		}
		title = append(title, f)
	}
	if len(title) > 1 {
		if minutes, err := parseMinutes(title[len(title)-1]); err == nil {
			d.DurationMinutes = minutes
			title = title[:len(title)-1]
		}
	}
	d.Title = strings.Join(title, " ")
	if d.Title == "" {
		d.Title = d.TopicTitle
	}
	return d, nil
}

func (m *app) generate(prompt string) tea.Cmd {
	if m.gen == nil {
		gen, err := m.newGenerator(m.ctx)
		if err != nil {
			m.mode = modeNormal
			m.fail(err)
			return nil
		}
		m.gen = gen
	}
	gen, ctx := m.gen, m.ctx
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(ctx, planTimeout)
		defer cancel()
		p, err := gen.Generate(ctx, prompt)
		return planMsg{plan: p, err: err}
	}
}

func (m *app) applyPlan(msg planMsg) {
	m.mode = modeNormal
	if msg.err != nil {
		m.fail(msg.err)
		return
	}
	added, err := m.p.ApplyPlan(msg.plan)
	if err != nil {
		m.fail(err)
		return
	}
	m.status = fmt.Sprintf("✓ %s: %d tareas", msg.plan.Name, len(added))
}

func (m *app) editLink() {
	m.pressing = false
	m.startInput(modeLink, m.p.Settings().QuickLink, "https://…")
}

func openURL(url string) tea.Cmd {
	return func() tea.Msg {
		var cmd *exec.Cmd
		switch runtime.GOOS {
		case "darwin":
			cmd = exec.Command("open", url)
		case "windows":
			cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", url)
		default:
			cmd = exec.Command("xdg-open", url)
		}
		if err := cmd.Start(); err != nil {
			return errMsg{err}
		}
		return nil
	}
}

// linkInfo is the quick link label shown at the right of the tabs
func (m app) linkInfo() string {
	return "🔗 " + ui.Truncate(strings.TrimPrefix(strings.TrimPrefix(m.p.Settings().QuickLink, "https://"), "http://"), 30)
}

// onLink reports whether a mouse position falls on the quick link label
func (m app) onLink(x, y int) bool {
	right := m.width - 1
	return y == 1 && x < right && x >= right-lipgloss.Width(m.linkInfo())
}

// mouseUpdate tells a click on the quick link, which opens it, from a long
// press, which edits it
func (m *app) mouseUpdate(msg tea.MouseMsg) tea.Cmd {
	switch msg.Type {
	case tea.MouseLeft:
		// drags arrive as left presses too
		switch {
		case !m.onLink(msg.X, msg.Y):
			m.leaveLink()
		case m.mode == modeNormal && !m.pressing:
			m.pressing = true
			m.link.Press()
		}
	case tea.MouseMotion:
		if !m.onLink(msg.X, msg.Y) {
			m.leaveLink()
		}
	case tea.MouseRelease:
		if !m.pressing {
			return nil
		}
		m.pressing = false
		if m.link.Tap() {
			return openURL(m.p.Settings().QuickLink)
		}
	case tea.MouseWheelUp:
		m.viewport.YOffset = max(m.viewport.YOffset-1, 0)
	case tea.MouseWheelDown:
		m.viewport.YOffset++
	}
	return nil
}

// leaveLink drops a press that moved off the link, so it neither opens nor edits it
func (m *app) leaveLink() {
	if m.pressing {
		m.pressing = false
		m.link.Release()
	}
}

// Board

func (m app) todayColumn() int {
	for i, col := range m.p.Board() {
		if col.Today {
			return i
		}
	}
	return 0
}

// entries lists the selectable tasks of a column in display order
func entries(col planner.Column) []task.Task {
	out := append([]task.Task{}, col.Specific...)
	out = append(out, col.Legislation...)
	out = append(out, col.TimeLogs...)
	if col.Sticker != nil {
		out = append(out, *col.Sticker)
	}
	return out
}

func (m app) day() date.Day {
	days := m.p.VisibleDays()
	return days[clamp(m.col, 0, len(days)-1)]
}

func (m app) selected() (task.Task, bool) {
	cols := m.p.Board()
	if m.col >= len(cols) {
		return task.Task{}, false
	}
	es := entries(cols[m.col])
	if m.row < 0 || m.row >= len(es) {
		return task.Task{}, false
	}
	return es[m.row], true
}

func (m *app) setColumn(c int) {
	cols := m.p.Board()
	m.col = clamp(c, 0, len(cols)-1)
	m.row = clamp(m.row, 0, max(len(entries(cols[m.col]))-1, 0))
}

func (m *app) boardKeys(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "h", "left":
		m.setColumn(m.col - 1)
	case "l", "right":
		m.setColumn(m.col + 1)
	case "j", "down":
		m.row++
		m.setColumn(m.col)
	case "k", "up":
		m.row--
		m.setColumn(m.col)
	case "[", "H":
		m.p.ShiftWeek(-1)
		m.setColumn(m.col)
	case "]", "L":
		m.p.ShiftWeek(1)
		m.setColumn(m.col)
	case ".":
		m.p.GoToToday()
		m.setColumn(m.todayColumn())
	case "g":
		m.mode = modeJump
		m.jump = dateinput.NewModel(m.p.Now)
	case "a":
		m.startInput(modeAdd, "", "Título #tema 90m")
	case "i":
		if t, ok := m.selected(); ok && !t.IsSticker() && !t.IsTimeLog() {
			m.startInput(modeRename, t.Title, "")
		}
	case "t":
		value := ""
		if t, ok := m.selected(); ok && t.IsTimeLog() {
			value = strconv.Itoa(t.DurationMinutes)
		}
		m.startInput(modeTimeLog, value, "minutos: 90, 45m, 1h30")
	case "s":
		m.startInput(modeSticker, "", task.DefaultSticker)
	case " ", "x":
		if t, ok := m.selected(); ok {
			_, err := m.p.ToggleTask(t.ID)
			m.fail(err)
		}
	case "<", ">":
		if t, ok := m.selected(); ok {
			step := -1
			if msg.String() == ">" {
				step = 1
			}
			target := t.Day.Offset() + step
			if target >= 0 && target < len(date.Days) {
				d := date.Days[target]
				_, err := m.p.UpdateTask(t.ID, task.Patch{Day: &d})
				m.fail(err)
				m.setColumn(m.col + step)
			}
		}
	case "d", "delete":
		if t, ok := m.selected(); ok {
			m.removeTask(t)
		}
	case "w":
		_, err := m.p.ToggleWeekends()
		m.fail(err)
		m.setColumn(m.col)
	case "P":
		m.startInput(modePlan, "", "Describe tu semana: oposición, tema 3, 4h al día…")
	}
	return nil
}

func (m *app) removeTask(t task.Task) {
	_, err := m.p.RemoveTask(t.ID, false)
	if !errors.Is(err, planner.ErrConfirmationRequired) {
		m.fail(err)
		m.setColumn(m.col)
		return
	}
	title := t.Title
	if t.IsSticker() {
		title = "el sticker"
	}
	m.ask(fmt.Sprintf("¿Eliminar %q? (y/n)", title), func() error {
		_, err := m.p.RemoveTask(t.ID, true)
		m.setColumn(m.col)
		return err
	})
}

// Stats

func (m *app) statsKeys(msg tea.KeyMsg) {
	switch msg.String() {
	case "1":
		m.statsView = statsDaily
	case "2":
		m.statsView = statsWeekly
	case "3":
		m.statsView = statsMonthly
	case "h", "left":
		m.statsView = clamp(m.statsView-1, statsDaily, statsMonthly)
	case "l", "right":
		m.statsView = clamp(m.statsView+1, statsDaily, statsMonthly)
	case "[", "H":
		m.p.ShiftWeek(-1)
	case "]", "L":
		m.p.ShiftWeek(1)
	case ".":
		m.p.GoToToday()
	}
}

// Syllabus

func (m app) selectedTopic() (syllabus.Topic, bool) {
	topics := m.p.Partition(m.partition)
	if m.topic < 0 || m.topic >= len(topics) {
		return syllabus.Topic{}, false
	}
	return topics[m.topic], true
}

func (m *app) setTopic(i int) {
	m.topic = clamp(i, 0, max(len(m.p.Partition(m.partition))-1, 0))
	// keep the cursor on screen, the list starts below a two line header
	line := m.topic + 2
	if line >= m.viewport.YOffset+m.viewport.Height {
		m.viewport.YOffset = line - m.viewport.Height + 1
	}
	if line-2 <= m.viewport.YOffset {
		m.viewport.YOffset = max(line-2, 0)
	}
}

// followTopic moves the cursor to where id ended up
func (m *app) followTopic(id syllabus.ID) {
	for i, t := range m.p.Partition(m.partition) {
		if t.ID == id {
			m.setTopic(i)
			return
		}
	}
	m.setTopic(m.topic)
}

func (m *app) syllabusKeys(msg tea.KeyMsg) {
	switch msg.String() {
	case "j", "down":
		m.setTopic(m.topic + 1)
	case "k", "up":
		m.setTopic(m.topic - 1)
	case "g":
		m.setTopic(0)
	case "G":
		m.setTopic(len(m.p.Partition(m.partition)))
	case "f":
		if m.partition == syllabus.Specific {
			m.partition = syllabus.Legislation
		} else {
			m.partition = syllabus.Specific
		}
		m.setTopic(0)
	case " ", "x":
		if t, ok := m.selectedTopic(); ok {
			_, err := m.p.ToggleTopic(t.ID)
			m.fail(err)
		}
	case "a":
		t, err := m.p.AddTopic(m.partition)
		if err != nil {
			m.fail(err)
			return
		}
		m.followTopic(t.ID)
		m.startInput(modeTopicRename, t.Title, "")
	case "i":
		if t, ok := m.selectedTopic(); ok {
			m.startInput(modeTopicRename, t.Title, "")
		}
	case "K", "J":
		if t, ok := m.selectedTopic(); ok {
			dir := syllabus.Up
			if msg.String() == "J" {
				dir = syllabus.Down
			}
			_, err := m.p.MoveTopic(m.p.TopicIndex(t.ID), dir)
			m.fail(err)
			m.followTopic(t.ID)
		}
	case "m":
		if _, ok := m.selectedTopic(); ok {
			m.startInput(modeTopicMove, "", fmt.Sprintf("1-%d", len(m.p.Partition(m.partition))))
		}
	case "d", "delete":
		if t, ok := m.selectedTopic(); ok {
			m.ask(fmt.Sprintf("¿Eliminar el tema %q? (y/n)", t.Title), func() error {
				_, err := m.p.RemoveTopic(t.ID, true)
				m.setTopic(m.topic)
				return err
			})
		}
	case "enter":
		if t, ok := m.selectedTopic(); ok {
			m.note = m.p.OpenNote(t.ID)
			m.startInput(modeNote, m.note.Text(), "Notas del tema…")
		}
	}
}

// Themes

func (m *app) themeKeys(msg tea.KeyMsg) {
	switch msg.String() {
	case "j", "down":
		m.themeIdx = clamp(m.themeIdx+1, 0, len(ui.Themes)-1)
	case "k", "up":
		m.themeIdx = clamp(m.themeIdx-1, 0, len(ui.Themes)-1)
	case "enter", " ":
		m.fail(m.p.SetTheme(ui.Themes[m.themeIdx].ID))
	}
}

func clamp(v, low, high int) int {
	return min(high, max(low, v))
}
