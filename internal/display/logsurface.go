package display

import (
	"time"

	"go.uber.org/zap"

	"glucoface/internal/models"
)

// Approximate glyph width of the large reading font. The real toolkit
// measures the rendered text; this stand-in keeps layout proportional.
const readingGlyphWidth = 24

// LogSurface is a Surface that records every toolkit call through zap.
// It stands in for the real compositor when the engine runs headless.
type LogSurface struct {
	logger *zap.Logger
}

// NewLogSurface builds a logging surface.
func NewLogSurface(logger *zap.Logger) *LogSurface {
	return &LogSurface{logger: logger}
}

func (s *LogSurface) MarkDirty(region Region) {
	s.logger.Debug("surface dirty", zap.Int("region", int(region)))
}

func (s *LogSurface) SetText(field Field, text string) {
	s.logger.Debug("surface text", zap.Int("field", int(field)), zap.String("text", text))
}

func (s *LogSurface) SetHidden(layer Layer, hidden bool) {
	s.logger.Debug("surface visibility", zap.Int("layer", int(layer)), zap.Bool("hidden", hidden))
}

func (s *LogSurface) SetFrame(layer Layer, x, y, w, h int) {
	s.logger.Debug("surface frame",
		zap.Int("layer", int(layer)),
		zap.Int("x", x), zap.Int("y", y), zap.Int("w", w), zap.Int("h", h))
}

func (s *LogSurface) SetTrend(trend models.Trend) {
	s.logger.Debug("surface trend", zap.Uint8("trend", uint8(trend)))
}

func (s *LogSurface) SetReversed(reversed bool) {
	s.logger.Debug("surface reversed", zap.Bool("reversed", reversed))
}

func (s *LogSurface) MeasureText(text string) int {
	return len(text) * readingGlyphWidth
}

// LogVibrator logs vibration patterns instead of playing them.
type LogVibrator struct {
	logger *zap.Logger
}

// NewLogVibrator builds a logging vibrator.
func NewLogVibrator(logger *zap.Logger) *LogVibrator {
	return &LogVibrator{logger: logger}
}

func (v *LogVibrator) Enqueue(pattern []time.Duration) {
	v.logger.Info("vibration pattern", zap.Durations("pattern", pattern))
}
