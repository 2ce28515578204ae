package engine

import (
	"context"

	"go.uber.org/zap"
)

// Loop runs every handler to completion on one goroutine. Ticks, inbound
// pushes, timer callbacks and outbound results all funnel through Post, so
// no engine state ever needs locking.
type Loop struct {
	events chan func()
	closed chan struct{}
	logger *zap.Logger
}

// NewLoop builds an event loop with the given queue depth.
func NewLoop(buffer int, logger *zap.Logger) *Loop {
	if buffer <= 0 {
		buffer = 64
	}
	return &Loop{
		events: make(chan func(), buffer),
		closed: make(chan struct{}),
		logger: logger,
	}
}

// Run consumes handlers until ctx is canceled.
func (l *Loop) Run(ctx context.Context) error {
	defer close(l.closed)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case fn := <-l.events:
			fn()
		}
	}
}

// Post enqueues a handler. Handlers posted after shutdown are dropped.
func (l *Loop) Post(fn func()) {
	select {
	case <-l.closed:
		l.logger.Debug("event dropped, loop stopped")
	case l.events <- fn:
	}
}
