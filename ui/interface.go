package ui

import (
	"fmt"
	"strings"
)

// UI defines the contract for the terminal display layer.
type UI interface {
	Run() error
	Quit()
	Done() <-chan struct{}

	// Actions streams user requests to the session.
	Actions() <-chan Action

	// Render replaces the animation view with frame.
	Render(frame string)
	SetStatus(st Status)
	// Print appends a message line below the animation.
	Print(text string)
}

// ActionKind identifies a user request.
type ActionKind int

const (
	ActionTogglePause ActionKind = iota
	ActionRestart
	ActionQuit
	ActionType   // type Text
	ActionPaste  // paste Text
	ActionDelete // delete everything shown
	ActionLua    // run Text as Lua
)

// Action is a user request from the UI to the session.
type Action struct {
	Kind ActionKind
	Text string
}

// State is the coarse animation state shown in the status line.
type State int

const (
	StateIdle State = iota
	StateRunning
	StatePaused
)

func (s State) String() string {
	switch s {
	case StateRunning:
		return "running"
	case StatePaused:
		return "paused"
	default:
		return "idle"
	}
}

// Status summarises the animation for the status line.
type Status struct {
	State   State
	Queued  int
	Visible int
	Wraps   uint64
	Message string
}

func (s Status) String() string {
	parts := []string{
		s.State.String(),
		fmt.Sprintf("queued %d", s.Queued),
		fmt.Sprintf("visible %d", s.Visible),
	}
	if s.Wraps > 0 {
		parts = append(parts, fmt.Sprintf("loop %d", s.Wraps))
	}
	if s.Message != "" {
		parts = append(parts, s.Message)
	}
	return strings.Join(parts, " · ")
}
