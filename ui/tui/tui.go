// Package tui is the Bubble Tea front end.
package tui

import (
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/drake/typewriter/ui"
)

var _ ui.UI = (*BubbleTeaUI)(nil)

// BubbleTeaUI implements ui.UI using Bubble Tea.
// It bridges the session's calls with Bubble Tea's model/update/view loop.
type BubbleTeaUI struct {
	program *tea.Program
	opts    []tea.ProgramOption

	// Message queue drained by a single goroutine, so callers never block
	// on tea.Program.Send.
	msgQueue chan tea.Msg

	actions chan ui.Action

	done     chan struct{}
	doneOnce sync.Once
}

// NewBubbleTeaUI creates a new Bubble Tea-based UI. opts are passed to
// tea.NewProgram after the defaults.
func NewBubbleTeaUI(opts ...tea.ProgramOption) *BubbleTeaUI {
	return &BubbleTeaUI{
		opts:     opts,
		msgQueue: make(chan tea.Msg, 4096),
		actions:  make(chan ui.Action, 64),
		done:     make(chan struct{}),
	}
}

// send queues a message for delivery to the Bubble Tea program.
func (b *BubbleTeaUI) send(msg tea.Msg) {
	select {
	case <-b.done:
	case b.msgQueue <- msg:
	}
}

// Render replaces the animation view.
func (b *BubbleTeaUI) Render(frame string) {
	b.send(frameMsg(frame))
}

// SetStatus replaces the status bar.
func (b *BubbleTeaUI) SetStatus(st ui.Status) {
	b.send(statusMsg(st))
}

// Print appends a line under the animation.
func (b *BubbleTeaUI) Print(text string) {
	b.send(printMsg(text))
}

// Actions returns the channel of user requests.
func (b *BubbleTeaUI) Actions() <-chan ui.Action {
	return b.actions
}

// Run starts the TUI and blocks until exit.
func (b *BubbleTeaUI) Run() error {
	opts := append([]tea.ProgramOption{tea.WithAltScreen()}, b.opts...)
	b.program = tea.NewProgram(NewModel(b.actions), opts...)

	go func() {
		for {
			select {
			case <-b.done:
				return
			case msg := <-b.msgQueue:
				b.program.Send(msg)
			}
		}
	}()

	_, err := b.program.Run()

	b.doneOnce.Do(func() {
		close(b.done)
	})
	return err
}

// Done returns a channel that closes when the UI exits.
func (b *BubbleTeaUI) Done() <-chan struct{} {
	return b.done
}

// Quit signals the TUI to exit.
func (b *BubbleTeaUI) Quit() {
	if b.program != nil {
		b.program.Quit()
	}
	b.doneOnce.Do(func() {
		close(b.done)
	})
}
