// Package reactive ties state writes to repaints.
//
// A State holds a value. Every write marks the state dirty and, unless a
// frame is already pending, requests exactly one frame from a
// frame.Scheduler. Several writes inside one frame interval therefore cost a
// single repaint, and that repaint sees the last value written.
package reactive

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/wandb/tschart/internal/frame"
)

type options struct {
	writes   prometheus.Counter
	requests prometheus.Counter
}

type Option func(*options)

// WithCounters counts writes and the frame requests they caused.
//
// The difference between the two is the number of coalesced writes.
func WithCounters(writes, requests prometheus.Counter) Option {
	return func(o *options) {
		o.writes = writes
		o.requests = requests
	}
}

// State is a value whose writes schedule a repaint.
//
// Not safe for concurrent use; like the scheduler it belongs to a single
// event loop.
type State[T any] struct {
	value   T
	sched   frame.Scheduler
	repaint frame.Callback

	// pending is the outstanding frame request, zero if none.
	pending frame.Handle
	closed  bool

	opts options
}

// New returns a State holding initial. Constructing a State does not
// schedule anything.
func New[T any](
	initial T,
	sched frame.Scheduler,
	repaint frame.Callback,
	opts ...Option,
) *State[T] {
	s := &State[T]{
		value:   initial,
		sched:   sched,
		repaint: repaint,
	}
	for _, opt := range opts {
		opt(&s.opts)
	}
	return s
}

// Get returns the current value. Reads have no side effects.
func (s *State[T]) Get() T {
	return s.value
}

// Set stores v and requests a repaint if none is pending.
func (s *State[T]) Set(v T) {
	s.value = v
	if s.opts.writes != nil {
		s.opts.writes.Inc()
	}

	if s.closed || s.pending != 0 {
		return
	}

	s.pending = s.sched.Request(s.fire)
	if s.opts.requests != nil {
		s.opts.requests.Inc()
	}
}

// Pending reports whether a repaint has been requested and not yet run.
func (s *State[T]) Pending() bool {
	return s.pending != 0
}

// Close cancels a pending repaint. Later writes are stored but never
// schedule. Close is idempotent.
func (s *State[T]) Close() {
	if s.pending != 0 {
		s.sched.Cancel(s.pending)
		s.pending = 0
	}
	s.closed = true
}

func (s *State[T]) fire(now time.Time) {
	s.pending = 0
	if s.closed {
		return
	}
	s.repaint(now)
}
