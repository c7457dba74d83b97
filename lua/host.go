package lua

import (
	"time"

	"github.com/drake/typewriter/typewriter"
)

// UIService handles local output.
type UIService interface {
	Print(text string)
	SetStatus(text string)
}

// TimerService handles scheduling. It owns timer IDs; the Engine owns the
// Lua callbacks and is woken through OnTimer.
type TimerService interface {
	TimerAfter(d time.Duration) int
	TimerEvery(d time.Duration) int
	TimerCancel(id int)
	TimerCancelAll()
}

// SystemService handles app lifecycle.
type SystemService interface {
	Quit()
	Reload()
}

// AnimationService exposes the typewriter scripts drive. It may return nil
// before the session has built one.
type AnimationService interface {
	Typewriter() *typewriter.Typewriter
}

// Host provides the bridge between Engine and the rest of the system.
type Host interface {
	UIService
	TimerService
	SystemService
	AnimationService
}
