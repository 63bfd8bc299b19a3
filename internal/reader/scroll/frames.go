package scroll

import "time"

// FrameQueue is a Scheduler whose frames are run explicitly by the owner of
// the event loop, typically on every tick of a frame timer.
type FrameQueue struct {
	pending []func(now time.Time)
}

// RequestFrame implements Scheduler.
func (q *FrameQueue) RequestFrame(fn func(now time.Time)) {
	q.pending = append(q.pending, fn)
}

// Pending reports whether any frame is waiting to run.
func (q *FrameQueue) Pending() bool {
	return len(q.pending) > 0
}

// Run executes the frames queued before the call. Frames requested while
// running are deferred to the next Run. It returns how many frames ran.
func (q *FrameQueue) Run(now time.Time) int {
	frames := q.pending
	q.pending = nil
	for _, fn := range frames {
		fn(now)
	}
	return len(frames)
}
