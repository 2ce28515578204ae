package engine

import (
	"time"

	"glucoface/internal/display"
	"glucoface/internal/models"
)

// fakeClock hands out a manually advanced instant.
type fakeClock struct {
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) advance(d time.Duration) { c.now = c.now.Add(d) }

// fakeTimer and fakeScheduler replace the loop scheduler with virtual time.
type fakeTimer struct {
	deadline time.Duration
	fn       func()
	canceled bool
	fired    bool
}

func (t *fakeTimer) Cancel() { t.canceled = true }

type fakeScheduler struct {
	now    time.Duration
	timers []*fakeTimer
}

func (s *fakeScheduler) Schedule(d time.Duration, fn func()) Timer {
	t := &fakeTimer{deadline: s.now + d, fn: fn}
	s.timers = append(s.timers, t)
	return t
}

// advance moves virtual time forward, firing due timers in deadline order.
// Self-rescheduling callbacks keep firing within the window.
func (s *fakeScheduler) advance(d time.Duration) {
	target := s.now + d
	for {
		next := s.nextDue(target)
		if next == nil {
			break
		}
		s.now = next.deadline
		next.fired = true
		next.fn()
	}
	s.now = target
}

func (s *fakeScheduler) nextDue(target time.Duration) *fakeTimer {
	var best *fakeTimer
	for _, t := range s.timers {
		if t.canceled || t.fired || t.deadline > target {
			continue
		}
		if best == nil || t.deadline < best.deadline {
			best = t
		}
	}
	return best
}

func (s *fakeScheduler) pendingCount() int {
	n := 0
	for _, t := range s.timers {
		if !t.canceled && !t.fired {
			n++
		}
	}
	return n
}

// fakeSurface records every toolkit call for assertions.
type fakeSurface struct {
	texts  map[display.Field]string
	hidden map[display.Layer]bool
	frames map[display.Layer][4]int
	dirty  map[display.Region]int
	trend  models.Trend
	revers bool
}

func newFakeSurface() *fakeSurface {
	return &fakeSurface{
		texts:  make(map[display.Field]string),
		hidden: make(map[display.Layer]bool),
		frames: make(map[display.Layer][4]int),
		dirty:  make(map[display.Region]int),
	}
}

func (s *fakeSurface) MarkDirty(region display.Region) { s.dirty[region]++ }

func (s *fakeSurface) SetText(field display.Field, text string) { s.texts[field] = text }

func (s *fakeSurface) SetHidden(layer display.Layer, hidden bool) { s.hidden[layer] = hidden }

func (s *fakeSurface) SetFrame(layer display.Layer, x, y, w, h int) {
	s.frames[layer] = [4]int{x, y, w, h}
}

func (s *fakeSurface) SetTrend(trend models.Trend) { s.trend = trend }

func (s *fakeSurface) SetReversed(reversed bool) { s.revers = reversed }

func (s *fakeSurface) MeasureText(text string) int { return len(text) * 24 }

// fakeVibrator records enqueued patterns.
type fakeVibrator struct {
	patterns [][]time.Duration
}

func (v *fakeVibrator) Enqueue(pattern []time.Duration) {
	v.patterns = append(v.patterns, pattern)
}

// fakeOutbox counts request sends.
type fakeOutbox struct {
	sends int
}

func (o *fakeOutbox) SendRequest() { o.sends++ }

func strPtr(s string) *string { return &s }
func intPtr(i int) *int       { return &i }
func u8Ptr(v uint8) *uint8    { return &v }
func boolPtr(b bool) *bool    { return &b }
