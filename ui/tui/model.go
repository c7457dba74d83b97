package tui

import (
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/drake/typewriter/render"
	"github.com/drake/typewriter/ui"
)

// maxLogLines is how many printed lines stay visible under the animation.
const maxLogLines = 6

// frameMsg replaces the rendered animation.
type frameMsg string

// statusMsg replaces the status line.
type statusMsg ui.Status

// printMsg appends a log line.
type printMsg string

// tickMsg flushes batched log lines.
type tickMsg time.Time

func doTick() tea.Cmd {
	return tea.Tick(16*time.Millisecond, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Model is the Bubble Tea model: the animation on top, recent messages,
// a command line and the status bar.
type Model struct {
	keys  keyMap
	help  help.Model
	input textinput.Model
	theme render.Theme

	frame   string
	status  ui.Status
	log     []string
	pending []string

	width    int
	height   int
	actions  chan<- ui.Action
	quitting bool
}

// NewModel creates a model that reports user requests on actions.
func NewModel(actions chan<- ui.Action) Model {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = "type text, or /help"
	ti.CharLimit = 0
	ti.Width = 80
	ti.Focus()

	return Model{
		keys:    defaultKeyMap(),
		help:    help.New(),
		input:   ti,
		theme:   render.DefaultTheme(),
		actions: actions,
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, doTick())
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.input.Width = max(msg.Width-len(m.input.Prompt)-1, 10)
		return m, nil

	case tickMsg:
		if len(m.pending) > 0 {
			m.appendLog(m.pending...)
			m.pending = nil
		}
		return m, doTick()

	case frameMsg:
		m.frame = string(msg)
		return m, nil

	case statusMsg:
		m.status = ui.Status(msg)
		return m, nil

	case printMsg:
		m.pending = append(m.pending, string(msg))
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		m.sendAction(ui.Action{Kind: ui.ActionQuit})
		return m, tea.Quit

	case key.Matches(msg, m.keys.Pause):
		m.sendAction(ui.Action{Kind: ui.ActionTogglePause})
		return m, nil

	case key.Matches(msg, m.keys.Restart):
		m.sendAction(ui.Action{Kind: ui.ActionRestart})
		return m, nil

	case key.Matches(msg, m.keys.Delete):
		m.sendAction(ui.Action{Kind: ui.ActionDelete})
		return m, nil

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil

	case key.Matches(msg, m.keys.Submit):
		line := m.input.Value()
		m.input.Reset()
		act, ok, err := ui.ParseCommand(line)
		if err != nil {
			m.appendLog(m.theme.Error.Render(err.Error()))
			return m, nil
		}
		if ok {
			if act.Kind == ui.ActionQuit {
				m.quitting = true
				m.sendAction(act)
				return m, tea.Quit
			}
			m.sendAction(act)
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// sendAction never blocks the Bubble Tea loop; a full channel drops the
// request.
func (m Model) sendAction(act ui.Action) {
	select {
	case m.actions <- act:
	default:
	}
}

func (m *Model) appendLog(lines ...string) {
	m.log = append(m.log, lines...)
	if over := len(m.log) - maxLogLines; over > 0 {
		m.log = append([]string(nil), m.log[over:]...)
	}
}

// View implements tea.Model.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	frame := m.theme.Frame
	if m.width > 0 {
		frame = frame.Width(m.width)
	}

	parts := []string{frame.Render(m.frame)}
	for _, line := range m.log {
		parts = append(parts, m.theme.Muted.Render(line))
	}
	parts = append(parts, m.input.View(), m.statusLine(), m.help.View(m.keys))

	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (m Model) statusLine() string {
	var state lipgloss.Style
	switch m.status.State {
	case ui.StateRunning:
		state = m.theme.StatusRunning
	case ui.StatePaused:
		state = m.theme.StatusPaused
	default:
		state = m.theme.StatusIdle
	}

	rest := strings.TrimPrefix(m.status.String(), m.status.State.String())
	return m.theme.StatusBar.Render(state.Render("● "+m.status.State.String()) + rest)
}
