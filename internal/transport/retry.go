package transport

import (
	"go.uber.org/zap"
)

// Sender starts an asynchronous outbound send. A non-nil error means the
// send could not even be started (no connection, buffer exhausted); the
// completion of a started send is reported separately via HandleResult.
type Sender interface {
	Send(payload []byte) error
}

// Hooks receive the terminal outcomes of a send episode.
type Hooks struct {
	// OnSent runs on any successful send completion.
	OnSent func()
	// OnGiveUp runs once the single permitted retry has also failed.
	OnGiveUp func()
}

// RetryTransport enforces the outbound discipline: exactly one immediate
// retry per failure episode, then give up. The bound is deliberate; an
// unbounded retry loop would storm the constrained link. Not safe for
// concurrent use; the caller serializes through the engine loop.
type RetryTransport struct {
	sender   Sender
	hooks    Hooks
	logger   *zap.Logger
	payload  []byte
	retrying bool
}

// NewRetryTransport builds the transport.
func NewRetryTransport(sender Sender, hooks Hooks, logger *zap.Logger) *RetryTransport {
	return &RetryTransport{sender: sender, hooks: hooks, logger: logger}
}

// Send starts a fresh send episode with a fresh retry budget, even when a
// prior episode's result got lost with its connection. A synchronous start
// failure counts as a failure and immediately consumes the retry.
func (t *RetryTransport) Send(payload []byte) {
	t.payload = payload
	t.retrying = false
	if err := t.sender.Send(payload); err != nil {
		t.HandleResult(err)
	}
}

// HandleResult consumes the asynchronous outcome of a send.
func (t *RetryTransport) HandleResult(err error) {
	if err == nil {
		// Reset so the next independent failure gets a fresh retry.
		t.retrying = false
		if t.hooks.OnSent != nil {
			t.hooks.OnSent()
		}
		return
	}

	if !t.retrying {
		t.logger.Info("outbound send failed, retrying once", zap.Error(err))
		t.retrying = true
		if retryErr := t.sender.Send(t.payload); retryErr != nil {
			// Could not even begin the retry.
			t.giveUp(retryErr)
		}
		return
	}

	t.giveUp(err)
}

func (t *RetryTransport) giveUp(err error) {
	t.logger.Error("outbound retry failed, giving up", zap.Error(err))
	t.retrying = false
	if t.hooks.OnGiveUp != nil {
		t.hooks.OnGiveUp()
	}
}
