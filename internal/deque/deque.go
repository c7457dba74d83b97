// Package deque provides a ring-buffer double-ended queue.
package deque

// Deque is a FIFO queue that also supports pushing to the front.
// It is index based, so items may be pushed or popped while a caller
// is in the middle of processing a value it just popped.
// The zero value is an empty, ready to use Deque.
type Deque[T any] struct {
	buf   []T
	head  int
	count int
}

// New creates a Deque with room for capacity items before growing.
func New[T any](capacity int) *Deque[T] {
	if capacity < 1 {
		capacity = 1
	}
	return &Deque[T]{buf: make([]T, capacity)}
}

// Len returns the number of queued items.
func (d *Deque[T]) Len() int {
	return d.count
}

// PushBack appends v to the end of the queue.
func (d *Deque[T]) PushBack(v T) {
	d.grow(1)
	d.buf[(d.head+d.count)%len(d.buf)] = v
	d.count++
}

// PushFront inserts v at the head of the queue.
func (d *Deque[T]) PushFront(v T) {
	d.grow(1)
	d.head = (d.head - 1 + len(d.buf)) % len(d.buf)
	d.buf[d.head] = v
	d.count++
}

// PushFrontAll inserts vs at the head of the queue, keeping their order:
// after the call vs[0] is at the front.
func (d *Deque[T]) PushFrontAll(vs ...T) {
	d.grow(len(vs))
	for i := len(vs) - 1; i >= 0; i-- {
		d.head = (d.head - 1 + len(d.buf)) % len(d.buf)
		d.buf[d.head] = vs[i]
		d.count++
	}
}

// Front returns the head item without removing it.
func (d *Deque[T]) Front() (T, bool) {
	var zero T
	if d.count == 0 {
		return zero, false
	}
	return d.buf[d.head], true
}

// PopFront removes and returns the head item.
func (d *Deque[T]) PopFront() (T, bool) {
	var zero T
	if d.count == 0 {
		return zero, false
	}
	v := d.buf[d.head]
	d.buf[d.head] = zero
	d.head = (d.head + 1) % len(d.buf)
	d.count--
	return v, true
}

// Items returns a copy of the queued items, front first.
func (d *Deque[T]) Items() []T {
	out := make([]T, d.count)
	for i := range out {
		out[i] = d.buf[(d.head+i)%len(d.buf)]
	}
	return out
}

// Reset replaces the contents with items, front first.
func (d *Deque[T]) Reset(items []T) {
	capacity := len(items)
	if capacity < 8 {
		capacity = 8
	}
	d.buf = make([]T, capacity)
	copy(d.buf, items)
	d.head = 0
	d.count = len(items)
}

// grow makes room for n more items.
func (d *Deque[T]) grow(n int) {
	if d.count+n <= len(d.buf) {
		return
	}
	size := len(d.buf) * 2
	if size < 8 {
		size = 8
	}
	for size < d.count+n {
		size *= 2
	}
	buf := make([]T, size)
	for i := 0; i < d.count; i++ {
		buf[i] = d.buf[(d.head+i)%len(d.buf)]
	}
	d.buf = buf
	d.head = 0
}
