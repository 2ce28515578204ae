package engine

import "time"

// LoadingState is the startup state machine position.
type LoadingState int

const (
	// StateLoading shows the jumping-dots animation until the first push.
	StateLoading LoadingState = iota
	// StateActive means data has been shown; loading never re-enters.
	StateActive
	// StateConnectionError is terminal for the session: the connect
	// timeout fired before any push arrived. A process restart is the
	// only way back, a known limitation carried over from the original
	// design.
	StateConnectionError
)

func (s LoadingState) String() string {
	switch s {
	case StateActive:
		return "active"
	case StateConnectionError:
		return "connection_error"
	default:
		return "loading"
	}
}

// LoadingDots is the number of animated dots.
const LoadingDots = 3

// loadingFrames is the length of one jump cycle per dot.
const loadingFrames = 6

// Vertical offsets of the jump cycle: rise, peak, fall, then rest.
var jumpOffsets = [loadingFrames]int{-4, -7, -3, 0, 0, 0}

// LoadingAnimator owns the startup animation and the first-connect
// timeout. All methods must run on the engine loop.
type LoadingAnimator struct {
	sched         Scheduler
	frameInterval time.Duration
	timeout       time.Duration

	state        LoadingState
	frame        int
	frameTimer   Timer
	timeoutTimer Timer

	onFrame   func() // marks the loading region dirty
	onTimeout func() // shows the persistent connection-error message
	onReveal  func() // hides the animation and reveals the data layers
}

// NewLoadingAnimator builds an animator in StateLoading; call Start to
// begin the timers.
func NewLoadingAnimator(sched Scheduler, frameInterval, timeout time.Duration, onFrame, onTimeout, onReveal func()) *LoadingAnimator {
	return &LoadingAnimator{
		sched:         sched,
		frameInterval: frameInterval,
		timeout:       timeout,
		state:         StateLoading,
		onFrame:       onFrame,
		onTimeout:     onTimeout,
		onReveal:      onReveal,
	}
}

// Start arms the frame timer and the connect timeout.
func (a *LoadingAnimator) Start() {
	if a.state != StateLoading {
		return
	}
	a.frameTimer = a.sched.Schedule(a.frameInterval, a.tick)
	a.timeoutTimer = a.sched.Schedule(a.timeout, a.expire)
}

func (a *LoadingAnimator) tick() {
	if a.state != StateLoading {
		return
	}
	a.frame = (a.frame + 1) % loadingFrames
	a.onFrame()
	a.frameTimer = a.sched.Schedule(a.frameInterval, a.tick)
}

func (a *LoadingAnimator) expire() {
	a.timeoutTimer = nil
	if a.state != StateLoading {
		return
	}

	a.state = StateConnectionError
	if a.frameTimer != nil {
		a.frameTimer.Cancel()
		a.frameTimer = nil
	}
	a.onTimeout()
}

// DataReceived moves Loading to Active on the first push. Later calls are
// no-ops; ConnectionError is never left.
func (a *LoadingAnimator) DataReceived() {
	if a.state != StateLoading {
		return
	}

	a.state = StateActive
	if a.frameTimer != nil {
		a.frameTimer.Cancel()
		a.frameTimer = nil
	}
	if a.timeoutTimer != nil {
		a.timeoutTimer.Cancel()
		a.timeoutTimer = nil
	}
	a.onReveal()
}

// Close cancels any pending timers without running callbacks.
func (a *LoadingAnimator) Close() {
	if a.frameTimer != nil {
		a.frameTimer.Cancel()
		a.frameTimer = nil
	}
	if a.timeoutTimer != nil {
		a.timeoutTimer.Cancel()
		a.timeoutTimer = nil
	}
}

// State returns the machine position.
func (a *LoadingAnimator) State() LoadingState { return a.state }

// Frame returns the global frame counter.
func (a *LoadingAnimator) Frame() int { return a.frame }

// DotOffset returns the vertical offset of dot i at the current frame.
// Each dot lags the global counter by 2*i frames so the three dots jump in
// a staggered wave.
func (a *LoadingAnimator) DotOffset(i int) int {
	idx := (a.frame - i*2 + loadingFrames*LoadingDots) % loadingFrames
	return jumpOffsets[idx]
}
