package app

import (
	"context"
	"time"

	"go.uber.org/zap"

	"glucoface/internal/chart"
	"glucoface/internal/config"
	"glucoface/internal/display"
	"glucoface/internal/engine"
	"glucoface/internal/httpapi"
	"glucoface/internal/protocol"
	"glucoface/internal/transport"
)

// App wires the engine, the companion transport and the diagnostics API.
type App struct {
	cfg      *config.Config
	loop     *engine.Loop
	eng      *engine.Engine
	server   *httpapi.Server
	logger   *zap.Logger
	loopDone chan struct{}
}

// requestOutbox sends the request-data marker through the retry transport.
type requestOutbox struct {
	retry *transport.RetryTransport
}

func (o requestOutbox) SendRequest() {
	o.retry.Send(protocol.EncodeRequest())
}

// pushBridge moves transport callbacks onto the engine loop.
type pushBridge struct {
	loop *engine.Loop
	eng  *engine.Engine
}

func (b *pushBridge) HandlePush(push *protocol.Push) {
	b.loop.Post(func() { b.eng.HandleInbound(push) })
}

func (b *pushBridge) HandleDropped(reason error) {
	b.loop.Post(func() { b.eng.HandleDropped(reason) })
}

// New constructs application components.
func New(cfg *config.Config, logger *zap.Logger) (*App, error) {
	loop := engine.NewLoop(64, logger)
	sched := engine.NewLoopScheduler(loop)
	surface := display.NewLogSurface(logger)
	vibes := display.NewLogVibrator(logger)
	tracker := transport.NewTracker()

	var eng *engine.Engine
	retry := transport.NewRetryTransport(tracker, transport.Hooks{
		OnSent:   func() { eng.RequestSent() },
		OnGiveUp: func() { eng.RequestGivenUp() },
	}, logger)

	eng = engine.New(engineOptions(cfg), engine.SystemClock{}, sched, surface, vibes, requestOutbox{retry: retry}, logger)

	bridge := &pushBridge{loop: loop, eng: eng}
	wsServer := transport.NewServer(tracker, bridge, func(err error) {
		loop.Post(func() { retry.HandleResult(err) })
	}, cfg.WriteTimeout(), logger)

	snapshot := func() engine.Snapshot {
		reply := make(chan engine.Snapshot, 1)
		loop.Post(func() { reply <- eng.Snapshot() })
		select {
		case snap := <-reply:
			return snap
		case <-time.After(2 * time.Second):
			return engine.Snapshot{}
		}
	}

	router := httpapi.NewRouter(snapshot, wsServer.HandleWS, logger)
	server := httpapi.NewServer(cfg.HTTPAddress(), router, logger)

	return &App{
		cfg:      cfg,
		loop:     loop,
		eng:      eng,
		server:   server,
		logger:   logger,
		loopDone: make(chan struct{}),
	}, nil
}

func engineOptions(cfg *config.Config) engine.Options {
	opts := engine.DefaultOptions()
	opts.Chart.Bounds = chart.Rect{X: 0, Y: 70, W: cfg.Display.Width, H: 74}
	opts.Chart.SupportsColor = cfg.Display.SupportsColor
	opts.SpinnerFrameInterval = cfg.SyncFrameInterval()
	opts.SyncDisplayWindow = cfg.SyncDisplayWindow()
	opts.LoadingFrameInterval = cfg.LoadingFrameInterval()
	opts.LoadingTimeout = cfg.LoadingTimeout()
	opts.RequestAfterMinutes = cfg.Timing.RequestAfterMinutes
	opts.TwentyFourHour = cfg.Display.TwentyFourHour
	return opts
}

// Run starts the event loop, the wake ticker and the HTTP server, and
// blocks until ctx is canceled. It does not return before the loop
// goroutine has stopped, so Close may touch engine state directly.
func (a *App) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	go func() {
		defer close(a.loopDone)
		_ = a.loop.Run(ctx)
	}()

	a.loop.Post(a.eng.Start)
	go a.runTicker(ctx)

	err := a.server.Run(ctx)
	cancel()
	<-a.loopDone
	return err
}

func (a *App) runTicker(ctx context.Context) {
	ticker := time.NewTicker(a.cfg.TickInterval())
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			a.loop.Post(a.eng.HandleTick)
		}
	}
}

// Close cancels the engine's timers. Call only after Run has returned;
// the loop is stopped by then, so nothing else touches engine state.
func (a *App) Close() {
	a.eng.Close()
}
