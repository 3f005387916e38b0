// Package frame schedules repaint callbacks, the way a browser's
// animation-frame queue does.
//
// Nothing here owns a clock or a goroutine. The host decides when a frame
// happens and calls Queue.Flush; the terminal viewer does it from a
// tea.Tick, the replay exporter from a virtual clock.
package frame

import "time"

//go:generate mockgen -destination=frametest/scheduler.go -package=frametest . Scheduler

// DefaultInterval is the frame period used by hosts that tick in real time.
const DefaultInterval = 16 * time.Millisecond

// Handle identifies a requested callback. The zero Handle is never issued.
type Handle uint64

// Callback runs at most once, when the frame it was requested for fires.
type Callback func(now time.Time)

// Scheduler requests and cancels frame callbacks.
type Scheduler interface {
	// Request registers fn to run on the next frame.
	Request(fn Callback) Handle

	// Cancel drops a pending callback. Unknown or already-run handles
	// are ignored.
	Cancel(h Handle)
}

type entry struct {
	handle Handle
	fn     Callback
}

// Queue is a single-threaded Scheduler.
//
// Callbacks requested while a frame is being flushed run on the following
// frame, never on the current one.
type Queue struct {
	last    Handle
	entries []entry
	live    map[Handle]bool
}

var _ Scheduler = (*Queue)(nil)

func NewQueue() *Queue {
	return &Queue{live: make(map[Handle]bool)}
}

func (q *Queue) Request(fn Callback) Handle {
	q.last++
	h := q.last
	q.entries = append(q.entries, entry{handle: h, fn: fn})
	q.live[h] = true
	return h
}

func (q *Queue) Cancel(h Handle) {
	delete(q.live, h)
}

// Pending returns the number of callbacks waiting for the next frame.
func (q *Queue) Pending() int {
	return len(q.live)
}

// Flush runs the callbacks requested before this call and returns how many
// ran.
func (q *Queue) Flush(now time.Time) int {
	batch := q.entries
	q.entries = nil

	ran := 0
	for _, e := range batch {
		// Cancelled earlier, or by a callback that ran before it.
		if !q.live[e.handle] {
			continue
		}
		delete(q.live, e.handle)
		e.fn(now)
		ran++
	}
	return ran
}
