// Package display defines the contracts between the engine and the
// windowing toolkit. The toolkit owns windows, layers and fonts; the engine
// only pushes content, visibility and dirty-region notifications through
// these interfaces.
package display

import (
	"time"

	"glucoface/internal/models"
)

// Region identifies a repaintable area for dirty notifications.
type Region int

const (
	RegionChart Region = iota
	RegionSpinner
	RegionLoading
	RegionAlert
	RegionBattery
)

// Layer identifies a toolkit layer whose visibility the engine controls.
type Layer int

const (
	LayerReading Layer = iota
	LayerTrend
	LayerDelta
	LayerTimeAgo
	LayerChart
	LayerNoData
	LayerSetup
	LayerLoading
	LayerAlert
)

// Field identifies a text slot on the watchface.
type Field int

const (
	FieldClock Field = iota
	FieldReading
	FieldDelta
	FieldTimeAgo
	FieldStatus
)

// Surface is the windowing/compositing collaborator. Implementations must
// tolerate calls in any order and treat repeated visibility sets as no-ops.
type Surface interface {
	MarkDirty(region Region)
	SetText(field Field, text string)
	SetHidden(layer Layer, hidden bool)
	SetFrame(layer Layer, x, y, w, h int)
	SetTrend(trend models.Trend)
	SetReversed(reversed bool)

	// MeasureText returns the rendered width of text in the reading font,
	// used to position the trend arrow and delta after the reading.
	MeasureText(text string) int
}

// Vibrator plays an alternating pulse/pause pattern, starting with a pulse.
// Fire-and-forget: no result, no retry.
type Vibrator interface {
	Enqueue(pattern []time.Duration)
}
