package app

import (
	"context"
	"testing"
	"time"

	"go.uber.org/zap"

	"glucoface/internal/config"
)

func TestRunStopsLoopBeforeReturning(t *testing.T) {
	cfg, err := config.Load()
	if err != nil {
		t.Fatal(err)
	}
	cfg.HTTP.Port = "0" // any free port

	a, err := New(cfg, zap.NewNop())
	if err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- a.Run(ctx) }()

	cancel()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after cancel")
	}

	// Once Run has returned the loop no longer executes handlers, so
	// teardown must run directly rather than be posted into a dead queue.
	executed := make(chan struct{})
	a.loop.Post(func() { close(executed) })
	select {
	case <-executed:
		t.Fatal("loop must be stopped once Run returns")
	case <-time.After(50 * time.Millisecond):
	}

	a.Close()
	a.Close()
}
