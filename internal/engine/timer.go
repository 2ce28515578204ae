package engine

import "time"

// Clock abstracts wall-clock reads so tests can drive time by hand.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the real wall clock.
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }

// Timer is a scheduled callback handle. Cancel is idempotent: canceling an
// already-fired or already-canceled timer is a no-op.
type Timer interface {
	Cancel()
}

// Scheduler schedules a one-shot callback on the engine loop.
type Scheduler interface {
	Schedule(d time.Duration, fn func()) Timer
}

// LoopScheduler posts fired callbacks into the loop so they run with the
// same run-to-completion discipline as every other handler.
type LoopScheduler struct {
	loop *Loop
}

// NewLoopScheduler builds a scheduler bound to the loop.
func NewLoopScheduler(loop *Loop) *LoopScheduler {
	return &LoopScheduler{loop: loop}
}

func (s *LoopScheduler) Schedule(d time.Duration, fn func()) Timer {
	t := time.AfterFunc(d, func() {
		s.loop.Post(fn)
	})
	return afterTimer{t: t}
}

type afterTimer struct {
	t *time.Timer
}

func (a afterTimer) Cancel() { a.t.Stop() }
