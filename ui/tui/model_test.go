package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"

	"github.com/drake/typewriter/ui"
)

func update(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	return next.(Model)
}

func TestModelKeysEmitActions(t *testing.T) {
	tests := []struct {
		name string
		msg  tea.KeyMsg
		want ui.ActionKind
	}{
		{"pause", tea.KeyMsg{Type: tea.KeyCtrlP}, ui.ActionTogglePause},
		{"restart", tea.KeyMsg{Type: tea.KeyCtrlR}, ui.ActionRestart},
		{"delete", tea.KeyMsg{Type: tea.KeyCtrlD}, ui.ActionDelete},
		{"quit", tea.KeyMsg{Type: tea.KeyEsc}, ui.ActionQuit},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			actions := make(chan ui.Action, 1)
			update(t, NewModel(actions), tt.msg)

			select {
			case act := <-actions:
				if act.Kind != tt.want {
					t.Errorf("action = %v, want %v", act.Kind, tt.want)
				}
			default:
				t.Fatal("no action emitted")
			}
		})
	}
}

func TestModelSubmitsTypedLine(t *testing.T) {
	actions := make(chan ui.Action, 1)
	m := NewModel(actions)

	m = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("hi there")})
	m = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	select {
	case act := <-actions:
		if act.Kind != ui.ActionType || act.Text != "hi there" {
			t.Errorf("action = %+v", act)
		}
	default:
		t.Fatal("no action emitted")
	}
	if m.input.Value() != "" {
		t.Errorf("input not cleared: %q", m.input.Value())
	}
}

func TestModelReportsBadCommand(t *testing.T) {
	actions := make(chan ui.Action, 1)
	m := NewModel(actions)

	m = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("/bogus")})
	m = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	if len(actions) != 0 {
		t.Error("bad command should not emit an action")
	}
	if !strings.Contains(ansi.Strip(m.View()), ui.ErrUnknownCommand.Error()) {
		t.Error("error not shown")
	}
}

func TestModelView(t *testing.T) {
	m := NewModel(make(chan ui.Action, 1))
	m = update(t, m, tea.WindowSizeMsg{Width: 60, Height: 20})
	m = update(t, m, frameMsg("Hello|"))
	m = update(t, m, statusMsg(ui.Status{State: ui.StateRunning, Queued: 4}))
	m = update(t, m, printMsg("loaded init.lua"))

	view := ansi.Strip(m.View())
	for _, want := range []string{"Hello|", "running", "queued 4", "ctrl+p"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q:\n%s", want, view)
		}
	}
	if strings.Contains(view, "loaded init.lua") {
		t.Error("printed lines are batched until the next tick")
	}

	m = update(t, m, tickMsg{})
	if !strings.Contains(ansi.Strip(m.View()), "loaded init.lua") {
		t.Error("printed line missing after tick")
	}
}

func TestModelLogIsBounded(t *testing.T) {
	m := NewModel(make(chan ui.Action, 1))
	for i := 0; i < maxLogLines*2; i++ {
		m = update(t, m, printMsg("line"))
	}
	m = update(t, m, tickMsg{})
	if len(m.log) != maxLogLines {
		t.Errorf("log lines = %d, want %d", len(m.log), maxLogLines)
	}
}
