package ui

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"sync"
)

const clearLine = "\r\033[K"

// ConsoleUI implements a line-based UI: the animation is redrawn in place
// on the last line and commands are read from input.
type ConsoleUI struct {
	in  io.Reader
	out io.Writer

	mu     sync.Mutex
	frame  string
	status Status

	actions  chan Action
	done     chan struct{}
	doneOnce sync.Once
}

// NewConsoleUI creates a console UI reading commands from in and drawing
// to out.
func NewConsoleUI(in io.Reader, out io.Writer) *ConsoleUI {
	return &ConsoleUI{
		in:      in,
		out:     out,
		actions: make(chan Action, 64),
		done:    make(chan struct{}),
	}
}

// Render redraws the animation line.
func (c *ConsoleUI) Render(frame string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.frame = strings.ReplaceAll(frame, "\n", " ")
	c.redraw()
}

// SetStatus records the status. The console shows it only in Print output
// when it carries a message.
func (c *ConsoleUI) SetStatus(st Status) {
	c.mu.Lock()
	defer c.mu.Unlock()
	prev := c.status.Message
	c.status = st
	if st.Message != "" && st.Message != prev {
		c.printLocked("[" + st.String() + "]")
	}
}

// Print writes a line above the animation.
func (c *ConsoleUI) Print(text string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.printLocked(text)
}

func (c *ConsoleUI) printLocked(text string) {
	fmt.Fprint(c.out, clearLine+text+"\n")
	c.redraw()
}

func (c *ConsoleUI) redraw() {
	fmt.Fprint(c.out, clearLine+c.frame)
}

// Actions returns the channel of parsed commands.
func (c *ConsoleUI) Actions() <-chan Action {
	return c.actions
}

// Run reads commands until input ends or Quit is called.
func (c *ConsoleUI) Run() error {
	scanner := bufio.NewScanner(c.in)
	scanDone := make(chan error, 1)

	go func() {
		for scanner.Scan() {
			act, ok, err := ParseCommand(scanner.Text())
			if err != nil {
				c.Print(err.Error())
				continue
			}
			if !ok {
				continue
			}
			select {
			case <-c.done:
				scanDone <- nil
				return
			case c.actions <- act:
			}
		}
		scanDone <- scanner.Err()
	}()

	select {
	case <-c.done:
		return nil
	case err := <-scanDone:
		c.Quit()
		return err
	}
}

// Done returns a channel that closes when the UI is done
func (c *ConsoleUI) Done() <-chan struct{} {
	return c.done
}

// Quit requests the console UI to exit.
func (c *ConsoleUI) Quit() {
	c.doneOnce.Do(func() {
		close(c.done)
		c.mu.Lock()
		fmt.Fprintln(c.out)
		c.mu.Unlock()
	})
}
