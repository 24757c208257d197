// Package tui is the terminal front end of the task client. It drives an
// app.State: key presses and API responses become state events, and every
// network call runs as a tea.Cmd.
package tui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/TWRT/task-king/internal/app"
	"github.com/TWRT/task-king/internal/client"
	"github.com/TWRT/task-king/internal/models"
)

type focusArea int

const (
	focusTitle focusArea = iota
	focusDescription
	focusPriority
	focusList
	focusCount
)

type tasksFetchedMsg struct {
	token uint64
	tasks []models.Task
	err   error
}

type taskCreatedMsg struct{ err error }

type taskToggledMsg struct{ err error }

type taskDeletedMsg struct{ err error }

type noticeExpiredMsg struct{ seq uint64 }

type Model struct {
	ctx    context.Context
	api    client.TaskAPI
	state  *app.State
	logger *log.Logger

	focus       focusArea
	title       textinput.Model
	description textarea.Model
	cursor      int

	keys keyMap
	help help.Model

	width, height int
	noticeTTL     time.Duration
}

func NewModel(ctx context.Context, api client.TaskAPI, logger *log.Logger) *Model {
	ti := textinput.New()
	ti.Placeholder = "Task Title"
	ti.Prompt = ""
	ti.CharLimit = 200
	ti.Focus()

	ta := textarea.New()
	ta.Placeholder = "Description"
	ta.ShowLineNumbers = false
	ta.SetHeight(3)

	return &Model{
		ctx:         ctx,
		api:         api,
		state:       app.New(),
		logger:      logger,
		focus:       focusTitle,
		title:       ti,
		description: ta,
		keys:        defaultKeyMap(),
		help:        help.New(),
		width:       100,
		height:      30,
		noticeTTL:   app.NoticeTTL,
	}
}

// State exposes the application state the model drives.
func (m *Model) State() *app.State { return m.state }

func (m *Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.fetch())
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	prevNotice := m.state.NoticeSeq()
	cmd := m.update(msg)
	if seq := m.state.NoticeSeq(); seq != 0 && seq != prevNotice {
		cmd = tea.Batch(cmd, m.expireNotice(seq))
	}
	return m, cmd
}

func (m *Model) update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		return nil

	case tasksFetchedMsg:
		if msg.err != nil {
			if m.state.FetchFailed(msg.token, msg.err) {
				m.logger.Warn("fetch tasks", "err", msg.err)
			}
			return nil
		}
		if m.state.FetchCompleted(msg.token, msg.tasks) {
			m.clampCursor()
		}
		return nil

	case taskCreatedMsg:
		if msg.err != nil {
			m.logger.Warn("create task", "err", msg.err)
			m.state.CreateFailed(msg.err)
			return nil
		}
		m.state.CreateSucceeded()
		m.title.SetValue("")
		m.description.SetValue("")
		return m.fetch()

	case taskToggledMsg:
		if msg.err != nil {
			m.logger.Warn("update task", "err", msg.err)
			m.state.ToggleFailed(msg.err)
			return nil
		}
		return m.fetch()

	case taskDeletedMsg:
		if msg.err != nil {
			m.logger.Warn("delete task", "err", msg.err)
			m.state.DeleteFailed(msg.err)
			return nil
		}
		m.state.DeleteSucceeded()
		return m.fetch()

	case noticeExpiredMsg:
		m.state.ExpireNotice(msg.seq)
		return nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m.updateInputs(msg)
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.ForceQuit):
		return tea.Quit
	case key.Matches(msg, m.keys.Next):
		return m.setFocus((m.focus + 1) % focusCount)
	case key.Matches(msg, m.keys.Prev):
		return m.setFocus((m.focus + focusCount - 1) % focusCount)
	case key.Matches(msg, m.keys.Submit):
		return m.create()
	case key.Matches(msg, m.keys.Dismiss):
		m.state.DismissNotice()
		return nil
	}

	switch m.focus {
	case focusTitle:
		if msg.Type == tea.KeyEnter {
			return m.create()
		}
	case focusPriority:
		switch {
		case key.Matches(msg, m.keys.Left):
			m.shiftPriority(-1)
		case key.Matches(msg, m.keys.Right):
			m.shiftPriority(1)
		case msg.Type == tea.KeyEnter:
			return m.create()
		}
		return nil
	case focusList:
		return m.handleListKey(msg)
	}

	return m.updateInputs(msg)
}

func (m *Model) handleListKey(msg tea.KeyMsg) tea.Cmd {
	sorted := m.state.Sorted()
	switch {
	case key.Matches(msg, m.keys.Quit):
		return tea.Quit
	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(sorted)-1 {
			m.cursor++
		}
	case key.Matches(msg, m.keys.Refresh):
		return m.fetch()
	case key.Matches(msg, m.keys.Toggle):
		if m.cursor < len(sorted) {
			return m.toggle(sorted[m.cursor].ID)
		}
	case key.Matches(msg, m.keys.Delete):
		if m.cursor < len(sorted) {
			return m.delete(sorted[m.cursor].ID)
		}
	}
	return nil
}

// updateInputs forwards msg to the focused text field and copies its value
// into the draft form.
func (m *Model) updateInputs(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	switch m.focus {
	case focusTitle:
		m.title, cmd = m.title.Update(msg)
		m.state.SetTitle(m.title.Value())
	case focusDescription:
		m.description, cmd = m.description.Update(msg)
		m.state.SetDescription(m.description.Value())
	}
	return cmd
}

func (m *Model) setFocus(f focusArea) tea.Cmd {
	m.focus = f
	m.title.Blur()
	m.description.Blur()
	switch f {
	case focusTitle:
		return m.title.Focus()
	case focusDescription:
		return m.description.Focus()
	}
	return nil
}

func (m *Model) shiftPriority(delta int) {
	n := len(models.Priorities)
	i := 0
	for j, p := range models.Priorities {
		if p == m.state.Form.Priority {
			i = j
		}
	}
	m.state.SetPriority(models.Priorities[(i+delta+n)%n])
}

func (m *Model) clampCursor() {
	if n := len(m.state.Tasks); m.cursor >= n {
		m.cursor = max(n-1, 0)
	}
}

func (m *Model) fetch() tea.Cmd {
	token := m.state.BeginFetch()
	api, ctx := m.api, m.ctx
	return func() tea.Msg {
		tasks, err := api.GetTasks(ctx)
		return tasksFetchedMsg{token: token, tasks: tasks, err: err}
	}
}

func (m *Model) create() tea.Cmd {
	fields, ok := m.state.RequestCreate()
	if !ok {
		return nil
	}
	api, ctx := m.api, m.ctx
	return func() tea.Msg {
		_, err := api.CreateTask(ctx, fields)
		return taskCreatedMsg{err: err}
	}
}

func (m *Model) toggle(id string) tea.Cmd {
	fields, ok := m.state.RequestToggle(id)
	if !ok {
		return nil
	}
	api, ctx := m.api, m.ctx
	return func() tea.Msg {
		_, err := api.UpdateTask(ctx, id, fields)
		return taskToggledMsg{err: err}
	}
}

func (m *Model) delete(id string) tea.Cmd {
	api, ctx := m.api, m.ctx
	return func() tea.Msg {
		_, err := api.DeleteTask(ctx, id)
		return taskDeletedMsg{err: err}
	}
}

// expireNotice schedules the dismissal of notice seq. A newer notice bumps
// the seq, so the old tick is ignored when it fires.
func (m *Model) expireNotice(seq uint64) tea.Cmd {
	return tea.Tick(m.noticeTTL, func(time.Time) tea.Msg {
		return noticeExpiredMsg{seq: seq}
	})
}

// Run starts the terminal client and blocks until the user quits.
func Run(ctx context.Context, api client.TaskAPI, logger *log.Logger) error {
	p := tea.NewProgram(NewModel(ctx, api, logger), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	return err
}
