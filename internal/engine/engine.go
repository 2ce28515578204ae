// Package engine is the ingestion-and-presentation core of the watchface.
// It owns the data model built from companion pushes, extrapolates elapsed
// time between pushes on a once-per-minute tick, and derives every
// staleness, alert, sync and loading state the toolkit renders.
package engine

import (
	"strconv"
	"time"

	"go.uber.org/zap"

	"glucoface/internal/chart"
	"glucoface/internal/display"
	"glucoface/internal/models"
	"glucoface/internal/protocol"
)

// Layout constants for the 144x168 face, mirrored from the toolkit side.
const (
	readingRowY    = 24
	readingLeftX   = 4
	trendGap       = 3
	trendWidth     = 30
	deltaOffsetX   = 32
	setupText      = "Go to Glucoface >\nSettings to\nfinish setup."
	connectErrText = "Unable to connect"
)

// Options carries engine timing and display parameters.
type Options struct {
	Chart chart.Config

	SpinnerFrameInterval time.Duration
	SyncDisplayWindow    time.Duration
	LoadingFrameInterval time.Duration
	LoadingTimeout       time.Duration

	// RequestAfterMinutes suppresses tick-time data requests while the
	// extrapolated age is below this bound; the sensor only samples every
	// five minutes, so asking earlier is wasted traffic.
	RequestAfterMinutes int

	TwentyFourHour bool
}

// DefaultOptions returns the timings of the original face.
func DefaultOptions() Options {
	return Options{
		Chart: chart.Config{
			Bounds:     chart.Rect{X: 0, Y: 70, W: 144, H: 74},
			Margin:     4,
			DotSpacing: 6,
			DotRadius:  3,
		},
		SpinnerFrameInterval: 100 * time.Millisecond,
		SyncDisplayWindow:    400 * time.Millisecond,
		LoadingFrameInterval: 100 * time.Millisecond,
		LoadingTimeout:       15 * time.Second,
		RequestAfterMinutes:  4,
		TwentyFourHour:       true,
	}
}

// Outbox starts an outbound request-data send. Results arrive back through
// RequestSent / RequestGivenUp.
type Outbox interface {
	SendRequest()
}

// Engine is the single process-scoped instance owning all volatile state.
// Every method must run on the engine loop; nothing here is safe for
// concurrent use.
type Engine struct {
	opts    Options
	clock   Clock
	surface display.Surface
	alerts  *AlertController
	outbox  Outbox
	logger  *zap.Logger

	reading    models.Reading
	thresholds models.Thresholds
	reversed   bool
	needsSetup bool
	history    []models.ChartPoint

	// Time anchor: -1 lastMinutesAgo means no data ever received and
	// short-circuits all age-dependent computations.
	lastMinutesAgo int
	lastDataTime   time.Time

	outboxFailure bool

	batteryLevel    int
	batteryCharging bool

	sync    *SyncAnimator
	loading *LoadingAnimator
}

// New builds the engine with sentinel no-data state. Call Start on the
// loop to begin the loading animation and connect timeout.
func New(opts Options, clock Clock, sched Scheduler, surface display.Surface, vibes display.Vibrator, outbox Outbox, logger *zap.Logger) *Engine {
	e := &Engine{
		opts:           opts,
		clock:          clock,
		surface:        surface,
		alerts:         NewAlertController(vibes, logger),
		outbox:         outbox,
		logger:         logger,
		thresholds:     models.DefaultThresholds(),
		lastMinutesAgo: -1,
	}

	e.sync = NewSyncAnimator(sched, opts.SpinnerFrameInterval, opts.SyncDisplayWindow,
		func() { surface.SetHidden(display.LayerAlert, true) },
		func() { surface.MarkDirty(display.RegionSpinner) },
		func() {
			surface.MarkDirty(display.RegionSpinner)
			e.updateAlertVisibility()
		})

	e.loading = NewLoadingAnimator(sched, opts.LoadingFrameInterval, opts.LoadingTimeout,
		func() { surface.MarkDirty(display.RegionLoading) },
		func() {
			surface.SetHidden(display.LayerLoading, true)
			surface.SetText(display.FieldStatus, connectErrText)
			surface.SetHidden(display.LayerSetup, false)
			logger.Warn("no companion response before timeout")
		},
		func() {
			surface.SetHidden(display.LayerLoading, true)
			e.showDataLayers()
			e.updateTimeAgo()
		})

	return e
}

// Start puts the face into its initial loading state.
func (e *Engine) Start() {
	e.hideDataLayers()
	e.surface.SetHidden(display.LayerLoading, false)
	e.loading.Start()
	e.updateClock()
}

// Close cancels every pending timer so no callback fires into a torn-down
// engine. Idempotent.
func (e *Engine) Close() {
	e.sync.Close()
	e.loading.Close()
}

// HandleTick runs once per minute: refresh the clock and time-ago text,
// shift the chart, and request fresh data when the reading has aged enough.
func (e *Engine) HandleTick() {
	e.updateClock()
	e.updateTimeAgo()
	e.surface.MarkDirty(display.RegionChart)

	if age, ok := CurrentAge(e.lastMinutesAgo, e.lastDataTime, e.clock.Now()); ok && age < e.opts.RequestAfterMinutes {
		return
	}

	e.outbox.SendRequest()
	e.sync.Request()
}

// HandleInbound applies one companion push. Fields are independent; absent
// fields leave prior state untouched.
func (e *Engine) HandleInbound(push *protocol.Push) {
	// Communication is evidently working again.
	e.outboxFailure = false
	e.sync.Request()
	e.loading.DataReceived()

	now := e.clock.Now()

	if push.Value != nil {
		e.reading.ValueText = truncate(*push.Value, models.MaxValueTextLen)
		e.reading.ValueNumeric = nil
		if n, err := strconv.Atoi(e.reading.ValueText); err == nil {
			e.reading.ValueNumeric = &n
		}
		e.reading.ReceivedAt = now
		e.surface.SetText(display.FieldReading, e.reading.ValueText)
		e.layoutReadingRow()
	}

	if push.Delta != nil {
		e.reading.DeltaText = truncate(*push.Delta, models.MaxDeltaTextLen)
		e.surface.SetText(display.FieldDelta, e.reading.DeltaText)
	}

	if push.Trend != nil {
		e.reading.Trend = models.NormalizeTrend(*push.Trend)
		e.surface.SetTrend(e.reading.Trend)
	}

	if push.AgeMinutes != nil {
		e.lastMinutesAgo = *push.AgeMinutes
		e.lastDataTime = now
		e.updateTimeAgo()
	}

	if push.History != nil {
		e.history = protocol.ParseHistory(*push.History)
		e.surface.MarkDirty(display.RegionChart)
	}

	if push.Low != nil {
		e.thresholds.Low = *push.Low
		e.surface.MarkDirty(display.RegionChart)
	}
	if push.High != nil {
		e.thresholds.High = *push.High
		e.surface.MarkDirty(display.RegionChart)
	}

	if push.Battery != nil || push.Charging != nil {
		level, charging := e.batteryLevel, e.batteryCharging
		if push.Battery != nil {
			level = *push.Battery
		}
		if push.Charging != nil {
			charging = *push.Charging
		}
		e.HandleBattery(level, charging)
	}

	if push.Alert != nil {
		e.alerts.Handle(models.AlertCode(*push.Alert))
	}

	if push.Reversed != nil && *push.Reversed != e.reversed {
		e.reversed = *push.Reversed
		e.applyColors()
	}

	if push.NeedsSetup != nil {
		e.needsSetup = *push.NeedsSetup
		if e.needsSetup {
			e.hideDataLayers()
			e.surface.SetText(display.FieldStatus, setupText)
			e.surface.SetHidden(display.LayerSetup, false)
		} else {
			e.showDataLayers()
			e.surface.SetHidden(display.LayerSetup, true)
			e.updateTimeAgo()
		}
	}
}

// HandleDropped logs an inbound message the transport lost. The next tick
// requests fresh data anyway, so there is nothing else to do.
func (e *Engine) HandleDropped(reason error) {
	e.logger.Error("inbound message dropped", zap.Error(reason))
}

// RequestGivenUp latches the outbox failure after the single retry also
// failed and stops any running sync animation.
func (e *Engine) RequestGivenUp() {
	e.outboxFailure = true
	e.sync.Stop()
}

// RequestSent is called on any successful send completion.
func (e *Engine) RequestSent() {
	// Spinner auto-stops via its display window.
}

// HandleBattery records the watch battery feed.
func (e *Engine) HandleBattery(levelPercent int, charging bool) {
	e.batteryLevel = levelPercent
	e.batteryCharging = charging
	e.surface.MarkDirty(display.RegionBattery)
}

// ChartFrame computes the draw commands for the current repaint, with the
// elapsed time since receipt folded into every dot position.
func (e *Engine) ChartFrame() chart.Frame {
	elapsed := 0
	if !e.lastDataTime.IsZero() {
		elapsed = int(e.clock.Now().Sub(e.lastDataTime) / time.Minute)
	}
	cfg := e.opts.Chart
	return chart.Build(e.history, e.thresholds, elapsed, cfg)
}

// Sync exposes the spinner state machine for rendering.
func (e *Engine) Sync() *SyncAnimator { return e.sync }

// Loading exposes the startup state machine for rendering.
func (e *Engine) Loading() *LoadingAnimator { return e.loading }

// updateTimeAgo refreshes the time-ago text and the staleness-driven layer
// visibility. With no data ever received it leaves the prior UI alone.
func (e *Engine) updateTimeAgo() {
	now := e.clock.Now()
	age, ok := CurrentAge(e.lastMinutesAgo, e.lastDataTime, now)
	if !ok {
		return
	}

	stale := EvaluateStaleness(e.lastMinutesAgo, e.lastDataTime, now) == StalenessStale
	e.surface.SetHidden(display.LayerReading, stale)
	e.surface.SetHidden(display.LayerTrend, stale)
	e.surface.SetHidden(display.LayerDelta, stale || protocol.SuppressesDelta(e.reading.ValueText))
	e.surface.SetHidden(display.LayerNoData, !stale)

	e.surface.SetText(display.FieldTimeAgo, TimeAgoText(age))

	e.updateAlertVisibility()
}

// updateAlertVisibility applies the alert triangle gate: eligible by age
// and latched failure, but never while the spinner runs. The sync stop
// callback re-runs this the instant the animation ends.
func (e *Engine) updateAlertVisibility() {
	if e.sync.State() == SyncSpinning {
		return
	}
	eligible := AlertEligible(e.lastMinutesAgo, e.lastDataTime, e.clock.Now(), e.outboxFailure)
	e.surface.SetHidden(display.LayerAlert, !eligible)
}

// layoutReadingRow positions the trend arrow and delta after the measured
// width of the reading text. LOW/HIGH sentinels leave no room for the
// delta, so it is hidden outright.
func (e *Engine) layoutReadingRow() {
	e.surface.SetHidden(display.LayerDelta, protocol.SuppressesDelta(e.reading.ValueText))

	textWidth := e.surface.MeasureText(e.reading.ValueText)
	trendX := readingLeftX + textWidth + trendGap
	deltaX := trendX + deltaOffsetX

	e.surface.SetFrame(display.LayerTrend, trendX, readingRowY+13, trendWidth, trendWidth)
	e.surface.SetFrame(display.LayerDelta, deltaX, readingRowY+10, 38, 28)
}

func (e *Engine) updateClock() {
	now := e.clock.Now()
	layout := "3:04"
	if e.opts.TwentyFourHour {
		layout = "15:04"
	}
	e.surface.SetText(display.FieldClock, now.Format(layout)+"  "+now.Format("Mon 02"))
}

// applyColors propagates a polarity flip to the toolkit and repaints every
// owner-drawn region.
func (e *Engine) applyColors() {
	e.surface.SetReversed(e.reversed)
	e.surface.SetTrend(e.reading.Trend)
	e.surface.MarkDirty(display.RegionChart)
	e.surface.MarkDirty(display.RegionLoading)
	e.surface.MarkDirty(display.RegionBattery)
	e.surface.MarkDirty(display.RegionSpinner)
	e.surface.MarkDirty(display.RegionAlert)
}

func (e *Engine) showDataLayers() {
	// Reading, trend and delta visibility stays with the staleness check,
	// which prevents a flash of stale data here.
	e.surface.SetHidden(display.LayerTimeAgo, false)
	e.surface.SetHidden(display.LayerChart, false)
}

func (e *Engine) hideDataLayers() {
	e.surface.SetHidden(display.LayerReading, true)
	e.surface.SetHidden(display.LayerTrend, true)
	e.surface.SetHidden(display.LayerDelta, true)
	e.surface.SetHidden(display.LayerTimeAgo, true)
	e.surface.SetHidden(display.LayerChart, true)
	e.surface.SetHidden(display.LayerNoData, true)
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max]
}
