package models

import "time"

// Trend is the direction-of-change classification for a glucose value.
type Trend uint8

const (
	TrendNone Trend = iota
	TrendDoubleUp
	TrendUp
	TrendUp45
	TrendFlat
	TrendDown45
	TrendDown
	TrendDoubleDown
)

// NormalizeTrend maps out-of-range wire codes to TrendNone.
func NormalizeTrend(code uint8) Trend {
	if code > uint8(TrendDoubleDown) {
		return TrendNone
	}
	return Trend(code)
}

// AlertCode identifies an inbound alert condition.
type AlertCode uint8

const (
	AlertNone AlertCode = iota
	AlertLowSoon
	AlertHigh
)

// Display text limits, matching the companion wire contract.
const (
	MaxValueTextLen = 7
	MaxDeltaTextLen = 11
)

// Reading is the latest CGM snapshot shown on the main row.
type Reading struct {
	ValueText    string
	ValueNumeric *int
	DeltaText    string
	Trend        Trend
	ReceivedAt   time.Time
}

// MaxChartPoints bounds the history to 120 minutes at 5-minute sampling.
const MaxChartPoints = 24

// ChartPoint is one historical sample: glucose value plus its age in
// minutes at the moment the push carrying it was received.
type ChartPoint struct {
	Value      int16
	MinutesAgo int16
}

// Thresholds are the low/high glucose bounds used for coloring and the
// dashed chart lines. Overwritten wholesale by pushes that carry them.
type Thresholds struct {
	Low  int
	High int
}

// DefaultThresholds returns the bounds used until the companion sends its own.
func DefaultThresholds() Thresholds {
	return Thresholds{Low: 70, High: 180}
}
