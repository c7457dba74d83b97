package typewriter

import "time"

// Host supplies time, frame scheduling and randomness.
//
// RequestFrame must deliver fn on the goroutine that owns the Typewriter,
// never synchronously from within RequestFrame. Calling cancel before
// delivery must prevent fn from running.
type Host interface {
	Now() time.Time
	RequestFrame(fn func()) (cancel func())
	RandomInt(min, max int) int
}
