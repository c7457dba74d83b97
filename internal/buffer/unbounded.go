// Package buffer decouples producers from the session's owner loop.
package buffer

// Unbounded creates a channel buffer that grows as needed.
// It returns a write-only channel to feed data in, and a read-only channel to read data out.
//
// initialCap: the starting size of the backing slice.
// hardLimit: the maximum number of items to buffer before dropping the oldest.
// onDrop: called with the running drop count each time an item is dropped; may be nil.
//
// Usage:
//
//	in, out := buffer.Unbounded[func()](256, 100000, nil)
//	in <- job
//	job := <-out
func Unbounded[T any](initialCap, hardLimit int, onDrop func(dropped int)) (chan<- T, <-chan T) {
	in := make(chan T, 10)
	out := make(chan T, 10)

	go func() {
		defer close(out)

		queue := make([]T, 0, initialCap)
		dropped := 0

		for {
			var next T
			var downstream chan T

			// Enable the out case only when there is something to send.
			if len(queue) > 0 {
				next = queue[0]
				downstream = out
			}

			select {
			case val, ok := <-in:
				if !ok {
					// Input closed: flush what is left, then exit.
					for _, item := range queue {
						out <- item
					}
					return
				}

				// Stalled consumer: drop the oldest item rather than grow forever.
				if hardLimit > 0 && len(queue) >= hardLimit {
					var zero T
					queue[0] = zero
					queue = queue[1:]
					dropped++
					if onDrop != nil {
						onDrop(dropped)
					}
				}
				queue = append(queue, val)

			case downstream <- next:
				var zero T
				queue[0] = zero
				queue = queue[1:]
			}
		}
	}()

	return in, out
}
