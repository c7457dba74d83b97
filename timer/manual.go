package timer

// ManualFrames is a frame source driven by hand. Tests call Step to run
// the currently requested callback.
type ManualFrames struct {
	pending  func()
	id       int
	requests int
	cancels  int
}

// NewManualFrames creates an empty manual frame source.
func NewManualFrames() *ManualFrames {
	return &ManualFrames{}
}

// Request records fn as the pending frame callback.
func (m *ManualFrames) Request(fn func()) (cancel func()) {
	m.requests++
	m.id++
	id := m.id
	m.pending = fn
	return func() {
		if m.id == id && m.pending != nil {
			m.pending = nil
			m.cancels++
		}
	}
}

// Pending reports whether a callback is waiting.
func (m *ManualFrames) Pending() bool {
	return m.pending != nil
}

// Requests returns how many frames were requested.
func (m *ManualFrames) Requests() int {
	return m.requests
}

// Cancels returns how many pending frames were cancelled.
func (m *ManualFrames) Cancels() int {
	return m.cancels
}

// Step runs the pending callback, if any. It reports whether one ran.
func (m *ManualFrames) Step() bool {
	fn := m.pending
	if fn == nil {
		return false
	}
	m.pending = nil
	fn()
	return true
}
