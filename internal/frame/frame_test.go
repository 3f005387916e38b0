package frame_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wandb/tschart/internal/frame"
)

func TestQueue_FlushRunsPendingOnce(t *testing.T) {
	q := frame.NewQueue()
	calls := 0
	q.Request(func(time.Time) { calls++ })
	q.Request(func(time.Time) { calls++ })
	require.Equal(t, 2, q.Pending())

	assert.Equal(t, 2, q.Flush(time.Now()))
	assert.Equal(t, 2, calls)
	assert.Equal(t, 0, q.Pending())

	assert.Equal(t, 0, q.Flush(time.Now()), "callbacks run at most once")
	assert.Equal(t, 2, calls)
}

func TestQueue_HandlesAreDistinct(t *testing.T) {
	q := frame.NewQueue()
	h1 := q.Request(func(time.Time) {})
	h2 := q.Request(func(time.Time) {})
	assert.NotZero(t, h1)
	assert.NotEqual(t, h1, h2)
}

func TestQueue_Cancel(t *testing.T) {
	q := frame.NewQueue()
	ran := false
	h := q.Request(func(time.Time) { ran = true })
	q.Cancel(h)

	assert.Equal(t, 0, q.Pending())
	assert.Equal(t, 0, q.Flush(time.Now()))
	assert.False(t, ran)

	// Cancelling twice, or after the frame, is harmless.
	q.Cancel(h)
	q.Cancel(frame.Handle(12345))
}

func TestQueue_CancelFromEarlierCallback(t *testing.T) {
	q := frame.NewQueue()
	var second frame.Handle
	ran := false
	q.Request(func(time.Time) { q.Cancel(second) })
	second = q.Request(func(time.Time) { ran = true })

	assert.Equal(t, 1, q.Flush(time.Now()))
	assert.False(t, ran)
}

func TestQueue_RequestDuringFlushWaitsForNextFrame(t *testing.T) {
	q := frame.NewQueue()
	var frames []int
	n := 0
	var tick frame.Callback
	tick = func(time.Time) {
		n++
		frames = append(frames, n)
		if n < 3 {
			q.Request(tick)
		}
	}
	q.Request(tick)

	assert.Equal(t, 1, q.Flush(time.Now()))
	assert.Equal(t, []int{1}, frames)
	assert.Equal(t, 1, q.Pending())

	q.Flush(time.Now())
	q.Flush(time.Now())
	assert.Equal(t, []int{1, 2, 3}, frames)
	assert.Equal(t, 0, q.Pending())
}

func TestQueue_PassesFrameTime(t *testing.T) {
	q := frame.NewQueue()
	at := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	var got time.Time
	q.Request(func(now time.Time) { got = now })
	q.Flush(at)
	assert.Equal(t, at, got)
}
