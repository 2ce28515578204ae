package engine

import "time"

// SyncState is the spinner state machine position.
type SyncState int

const (
	SyncIdle SyncState = iota
	SyncSpinning
)

func (s SyncState) String() string {
	if s == SyncSpinning {
		return "spinning"
	}
	return "idle"
}

// SpinnerFrames is the number of arc rotations per revolution; each frame
// rotates the 270-degree arc by 360/SpinnerFrames degrees.
const SpinnerFrames = 8

// SyncAnimator drives the rotating-arc indicator shown during outbound
// sends and inbound receipts. All methods must run on the engine loop.
type SyncAnimator struct {
	sched         Scheduler
	frameInterval time.Duration
	displayWindow time.Duration

	state      SyncState
	frame      int
	frameTimer Timer
	stopTimer  Timer

	onStart func() // hides the alert triangle immediately
	onFrame func() // marks the spinner region dirty
	onStop  func() // marks dirty and re-evaluates alert visibility
}

// NewSyncAnimator builds an idle animator.
func NewSyncAnimator(sched Scheduler, frameInterval, displayWindow time.Duration, onStart, onFrame, onStop func()) *SyncAnimator {
	return &SyncAnimator{
		sched:         sched,
		frameInterval: frameInterval,
		displayWindow: displayWindow,
		onStart:       onStart,
		onFrame:       onFrame,
		onStop:        onStop,
	}
}

// Request starts the spinner, or extends the display window if it is
// already running. A request never restarts a running animation: only the
// expiry timer is rescheduled, so the visible spin is continuous.
func (a *SyncAnimator) Request() {
	if a.stopTimer != nil {
		a.stopTimer.Cancel()
	}
	a.stopTimer = a.sched.Schedule(a.displayWindow, a.expire)

	a.onStart()

	if a.state == SyncSpinning {
		return
	}

	a.state = SyncSpinning
	a.frame = 0
	a.onFrame()
	a.frameTimer = a.sched.Schedule(a.frameInterval, a.tick)
}

func (a *SyncAnimator) tick() {
	if a.state != SyncSpinning {
		return
	}
	a.frame = (a.frame + 1) % SpinnerFrames
	a.onFrame()
	a.frameTimer = a.sched.Schedule(a.frameInterval, a.tick)
}

func (a *SyncAnimator) expire() {
	a.stopTimer = nil
	a.Stop()
}

// Stop returns the animator to idle and cancels both timers.
func (a *SyncAnimator) Stop() {
	if a.state == SyncIdle {
		return
	}

	a.state = SyncIdle

	if a.frameTimer != nil {
		a.frameTimer.Cancel()
		a.frameTimer = nil
	}
	if a.stopTimer != nil {
		a.stopTimer.Cancel()
		a.stopTimer = nil
	}

	a.onStop()
}

// Close cancels any pending timers without running callbacks.
func (a *SyncAnimator) Close() {
	a.state = SyncIdle
	if a.frameTimer != nil {
		a.frameTimer.Cancel()
		a.frameTimer = nil
	}
	if a.stopTimer != nil {
		a.stopTimer.Cancel()
		a.stopTimer = nil
	}
}

// State returns the machine position.
func (a *SyncAnimator) State() SyncState { return a.state }

// Frame returns the current frame counter.
func (a *SyncAnimator) Frame() int { return a.frame }

// ArcStartDegrees returns the rotation of the 270-degree arc for the
// current frame, leaving a fixed 90-degree gap.
func (a *SyncAnimator) ArcStartDegrees() int {
	return a.frame * (360 / SpinnerFrames)
}
