package session

import (
	"math/rand/v2"
	"time"

	"github.com/drake/typewriter/lua"
	"github.com/drake/typewriter/timer"
	"github.com/drake/typewriter/typewriter"
)

// Compile-time interface checks
var (
	_ lua.Host        = (*Session)(nil)
	_ typewriter.Host = frameHost{}
)

// frameHost feeds the typewriter from the session's frame source.
// Frame callbacks arrive on the owner loop like every other job.
type frameHost struct {
	frames *timer.Frames
	clock  timer.Clock
}

func (h frameHost) Now() time.Time {
	return h.clock.Now()
}

func (h frameHost) RequestFrame(fn func()) (cancel func()) {
	return h.frames.Request(fn)
}

// RandomInt returns a uniform integer in [min, max].
func (h frameHost) RandomInt(min, max int) int {
	if max <= min {
		return min
	}
	return min + rand.IntN(max-min+1)
}

// --- lua.UIService ---

func (s *Session) Print(text string) {
	s.ui.Print(text)
}

// SetStatus sets the message shown in the status line.
func (s *Session) SetStatus(text string) {
	s.message = text
}

// --- lua.TimerService ---

// TimerAfter schedules a one-shot timer. Returns the timer ID.
func (s *Session) TimerAfter(d time.Duration) int {
	var id int
	id = s.timer.After(d, func() {
		s.engine.OnTimer(id, false)
	})
	return id
}

// TimerEvery schedules a repeating timer. Returns the timer ID.
func (s *Session) TimerEvery(d time.Duration) int {
	var id int
	id = s.timer.Every(d, func() {
		s.engine.OnTimer(id, true)
	})
	return id
}

// TimerCancel cancels a timer by ID.
func (s *Session) TimerCancel(id int) {
	s.timer.Cancel(id)
}

// TimerCancelAll cancels all timers.
func (s *Session) TimerCancelAll() {
	s.timer.CancelAll()
}

// --- lua.SystemService ---

func (s *Session) Quit() {
	s.shutdown()
}

// Reload rebuilds the VM and the animation on the next loop turn. Scripts
// call this from inside the VM it replaces, so it never runs inline.
func (s *Session) Reload() {
	s.post(s.reload)
}

// --- lua.AnimationService ---

// Typewriter returns the current animation, nil until boot builds one.
func (s *Session) Typewriter() *typewriter.Typewriter {
	return s.tw
}
