package timer

import (
	"sync"
	"time"
)

// Service runs one-shot and repeating callbacks on the owner loop.
// It owns ID generation, scheduling, the repeat logic and cancellation.
// Callbacks are never run on the timer goroutine: they are posted to out
// and the receiver executes them.
type Service struct {
	out    chan<- func()
	timers map[int]*entry
	nextID int
	mu     sync.Mutex
}

type entry struct {
	interval time.Duration // 0 = one-shot, >0 = repeating
	fn       func()
	stop     func() bool // time.Timer.Stop
}

// NewService creates a timer service that posts fired callbacks to out.
func NewService(out chan<- func()) *Service {
	return &Service{
		out:    out,
		timers: make(map[int]*entry),
	}
}

// After schedules fn to run once after d. Returns the timer ID.
func (s *Service) After(d time.Duration, fn func()) int {
	return s.schedule(d, 0, fn)
}

// Every schedules fn to run every d. Returns the timer ID.
func (s *Service) Every(d time.Duration, fn func()) int {
	return s.schedule(d, d, fn)
}

func (s *Service) schedule(d, interval time.Duration, fn func()) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextID++
	id := s.nextID

	t := time.AfterFunc(d, func() {
		s.fire(id)
	})

	s.timers[id] = &entry{
		interval: interval,
		fn:       fn,
		stop:     t.Stop,
	}

	return id
}

// fire posts the callback and reschedules if repeating.
// One-shot entries stay registered until the posted job runs, so a Cancel
// that lands between posting and running still wins.
func (s *Service) fire(id int) {
	s.mu.Lock()
	e, ok := s.timers[id]
	if !ok {
		s.mu.Unlock()
		return // Cancelled before firing
	}

	if e.interval > 0 {
		t := time.AfterFunc(e.interval, func() {
			s.fire(id)
		})
		e.stop = t.Stop
	}
	s.mu.Unlock()

	s.out <- func() {
		s.mu.Lock()
		cur, ok := s.timers[id]
		if !ok || cur != e {
			s.mu.Unlock()
			return
		}
		if e.interval == 0 {
			delete(s.timers, id)
		}
		s.mu.Unlock()
		e.fn()
	}
}

// Active reports whether id is still scheduled.
func (s *Service) Active(id int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.timers[id]
	return ok
}

// Len returns the number of scheduled timers.
func (s *Service) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.timers)
}

// Cancel stops a timer and removes it.
func (s *Service) Cancel(id int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if e, ok := s.timers[id]; ok {
		e.stop()
		delete(s.timers, id)
	}
}

// CancelAll stops all timers and clears the map.
func (s *Service) CancelAll() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, e := range s.timers {
		e.stop()
	}
	s.timers = make(map[int]*entry)
}
