package typewriter

import (
	"testing"
	"time"

	"github.com/drake/typewriter/dom"
	"github.com/drake/typewriter/timer"
)

// MockHost drives the loop by hand: frames only run on Step and time only
// moves on Advance.
type MockHost struct {
	Clock  *timer.MockClock
	Frames *timer.ManualFrames

	// Random picks the value for RandomInt. Nil returns min.
	Random func(min, max int) int
	Draws  [][2]int
}

func NewMockHost() *MockHost {
	return &MockHost{
		Clock:  timer.NewMockClock(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)),
		Frames: timer.NewManualFrames(),
	}
}

func (h *MockHost) Now() time.Time { return h.Clock.Now() }

func (h *MockHost) RequestFrame(fn func()) func() { return h.Frames.Request(fn) }

func (h *MockHost) RandomInt(min, max int) int {
	h.Draws = append(h.Draws, [2]int{min, max})
	if h.Random != nil {
		return h.Random(min, max)
	}
	return min
}

// Tick advances the clock by d and runs the pending frame.
func (h *MockHost) Tick(d time.Duration) bool {
	h.Clock.Advance(d)
	return h.Frames.Step()
}

// Drain ticks in 1ms steps until no frame is pending.
func (h *MockHost) Drain(t *testing.T) {
	t.Helper()
	for i := 0; h.Frames.Pending(); i++ {
		if i > 100000 {
			t.Fatal("loop did not go idle")
		}
		h.Tick(time.Millisecond)
	}
}

// newTestTypewriter builds a typewriter with zero delays and no style
// injection. mutate may adjust the options first.
func newTestTypewriter(t *testing.T, mutate func(*Options)) (*Typewriter, *MockHost) {
	t.Helper()

	_, root := dom.NewDocument()
	opts := DefaultOptions()
	opts.Delay = 0
	opts.DeleteSpeed = 0
	opts.SkipAddStyles = true
	if mutate != nil {
		mutate(&opts)
	}

	host := NewMockHost()
	tw, err := New(root, opts, host)
	if err != nil {
		t.Fatal("Failed to create typewriter:", err)
	}
	return tw, host
}

func kinds(ops []Op) []Kind {
	out := make([]Kind, len(ops))
	for i, op := range ops {
		out[i] = op.Kind
	}
	return out
}
