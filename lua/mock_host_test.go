package lua

import (
	"sync"
	"testing"
	"time"

	"github.com/drake/typewriter/dom"
	"github.com/drake/typewriter/timer"
	"github.com/drake/typewriter/typewriter"
)

// MockHost implements Host for testing. It owns a real typewriter driven
// by manual frames and a mock clock.
type MockHost struct {
	mu sync.Mutex

	// Captured calls
	PrintCalls      []string
	StatusCalls     []string
	QuitCalled      bool
	ReloadCalls     int
	CancelledTimers []int
	ScheduledTimers []struct {
		ID       int
		Duration time.Duration
		Repeat   bool
	}

	Clock  *timer.MockClock
	Frames *timer.ManualFrames
	tw     *typewriter.Typewriter

	nextTimerID int
}

func NewMockHost(t *testing.T) *MockHost {
	t.Helper()
	m := &MockHost{
		Clock:  timer.NewMockClock(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)),
		Frames: timer.NewManualFrames(),
	}

	_, root := dom.NewDocument()
	opts := typewriter.DefaultOptions()
	opts.Delay = 0
	opts.DeleteSpeed = 0
	opts.SkipAddStyles = true

	tw, err := typewriter.New(root, opts, frameHost{m})
	if err != nil {
		t.Fatal("Failed to create typewriter:", err)
	}
	m.tw = tw
	return m
}

// frameHost feeds the typewriter from the mock's clock and frames.
type frameHost struct{ m *MockHost }

func (h frameHost) Now() time.Time                 { return h.m.Clock.Now() }
func (h frameHost) RequestFrame(fn func()) func() { return h.m.Frames.Request(fn) }
func (h frameHost) RandomInt(min, max int) int     { return min }

// Drain ticks in 1ms steps until the typewriter goes idle.
func (m *MockHost) Drain(t *testing.T) {
	t.Helper()
	for i := 0; m.Frames.Pending(); i++ {
		if i > 100000 {
			t.Fatal("typewriter did not go idle")
		}
		m.Clock.Advance(time.Millisecond)
		m.Frames.Step()
	}
}

// Text returns what the typewriter currently shows.
func (m *MockHost) Text() string {
	return dom.Text(m.tw.Elements().Wrapper)
}

func (m *MockHost) Typewriter() *typewriter.Typewriter { return m.tw }

func (m *MockHost) Print(text string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.PrintCalls = append(m.PrintCalls, text)
}

func (m *MockHost) SetStatus(text string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.StatusCalls = append(m.StatusCalls, text)
}

func (m *MockHost) Quit() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.QuitCalled = true
}

func (m *MockHost) Reload() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ReloadCalls++
}

func (m *MockHost) TimerAfter(d time.Duration) int {
	return m.schedule(d, false)
}

func (m *MockHost) TimerEvery(d time.Duration) int {
	return m.schedule(d, true)
}

func (m *MockHost) schedule(d time.Duration, repeat bool) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextTimerID++
	m.ScheduledTimers = append(m.ScheduledTimers, struct {
		ID       int
		Duration time.Duration
		Repeat   bool
	}{m.nextTimerID, d, repeat})
	return m.nextTimerID
}

func (m *MockHost) TimerCancel(id int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CancelledTimers = append(m.CancelledTimers, id)
}

func (m *MockHost) TimerCancelAll() {}

// DrainPrints returns and clears captured prints.
func (m *MockHost) DrainPrints() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := m.PrintCalls
	m.PrintCalls = nil
	return out
}
