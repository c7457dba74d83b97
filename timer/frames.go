package timer

import (
	"sync/atomic"
	"time"
)

// DefaultFrameInterval approximates one refresh of a 60Hz display.
const DefaultFrameInterval = 16 * time.Millisecond

// Frames requests "next refresh" callbacks for the owner loop.
// The callback is posted to out after one frame interval and the receiver
// runs it, so every callback executes on the goroutine that drains out.
type Frames struct {
	out      chan<- func()
	interval time.Duration
}

// NewFrames creates a frame source posting to out. A non-positive interval
// uses DefaultFrameInterval.
func NewFrames(out chan<- func(), interval time.Duration) *Frames {
	if interval <= 0 {
		interval = DefaultFrameInterval
	}
	return &Frames{out: out, interval: interval}
}

// Interval returns the frame interval.
func (f *Frames) Interval() time.Duration {
	return f.interval
}

// Request asks to run fn on the next frame. The returned cancel prevents fn
// from running if it has not run yet, even when the frame already fired and
// fn is waiting in the owner queue.
func (f *Frames) Request(fn func()) (cancel func()) {
	var cancelled atomic.Bool
	t := time.AfterFunc(f.interval, func() {
		if cancelled.Load() {
			return
		}
		f.out <- func() {
			if !cancelled.Load() {
				fn()
			}
		}
	})
	return func() {
		cancelled.Store(true)
		t.Stop()
	}
}
