package engine

import (
	"time"

	"go.uber.org/zap"

	"glucoface/internal/display"
	"glucoface/internal/models"
)

// Vibration patterns in milliseconds, alternating pulse/pause starting
// with a pulse. Low-soon accelerates; high decelerates.
var (
	lowSoonPattern = millis(70, 300, 70, 200, 70, 120, 70, 80, 70)
	highPattern    = millis(90, 120, 90, 200, 90, 300, 90)
)

func millis(values ...int) []time.Duration {
	pattern := make([]time.Duration, len(values))
	for i, v := range values {
		pattern[i] = time.Duration(v) * time.Millisecond
	}
	return pattern
}

// AlertController maps inbound alert codes onto vibration patterns. The
// alert triangle's visibility is owned by the staleness/sync logic, not
// here; this is fire-and-forget signaling only.
type AlertController struct {
	vibes  display.Vibrator
	logger *zap.Logger
}

// NewAlertController builds the controller.
func NewAlertController(vibes display.Vibrator, logger *zap.Logger) *AlertController {
	return &AlertController{vibes: vibes, logger: logger}
}

// Handle dispatches one inbound alert code. Unknown codes do nothing.
func (c *AlertController) Handle(code models.AlertCode) {
	switch code {
	case models.AlertLowSoon:
		c.vibes.Enqueue(lowSoonPattern)
		c.logger.Info("low soon alert vibration triggered")
	case models.AlertHigh:
		c.vibes.Enqueue(highPattern)
		c.logger.Info("high alert vibration triggered")
	}
}
