// Package chart computes the pixel geometry of the scrolling glucose chart.
// It is a pure function of the model plus elapsed time, so the engine can
// recompute it on every redraw and the dots visibly scroll left between
// pushes without any fresh data.
package chart

import "glucoface/internal/models"

// Glucose range mapped onto the chart's vertical axis. Values outside the
// range are clamped to the edge before mapping, never drawn off-canvas.
const (
	ValueMin = 40
	ValueMax = 300
)

// FreshDotMinutes is the age under which the most recent dot keeps its
// full radius.
const FreshDotMinutes = 10

// Dash pattern for the threshold lines.
const (
	dashLength = 4
	gapLength  = 3
)

// ColorClass selects the dot/line color on color-capable displays.
type ColorClass int

const (
	ColorForeground ColorClass = iota // monochrome output
	ColorLow
	ColorInRange
	ColorHigh
)

// Rect is a target rectangle in screen coordinates.
type Rect struct {
	X, Y, W, H int
}

// Config carries the layout parameters of the chart area.
type Config struct {
	Bounds        Rect
	Margin        int
	DotSpacing    int // pixels between dots at 5-minute sampling
	DotRadius     int
	SupportsColor bool
}

// Dot is one draw command for a data point.
type Dot struct {
	X, Y   int
	Radius int
	Color  ColorClass
}

// Segment is one dash of a threshold line.
type Segment struct {
	X1, X2 int
}

// Line is a dashed horizontal threshold line.
type Line struct {
	Y        int
	Color    ColorClass
	Segments []Segment
}

// Frame is the full set of draw commands for one repaint.
type Frame struct {
	Dots     []Dot
	LowLine  Line
	HighLine Line
}

// Build converts history points, thresholds and the minutes elapsed since
// receipt into draw commands. An empty history produces an empty frame with
// no threshold lines.
func Build(points []models.ChartPoint, th models.Thresholds, elapsedMinutes int, cfg Config) Frame {
	if len(points) == 0 {
		return Frame{}
	}

	frame := Frame{
		LowLine:  buildLine(th.Low, lineColor(ColorLow, cfg), cfg),
		HighLine: buildLine(th.High, lineColor(ColorHigh, cfg), cfg),
	}

	innerLeft := cfg.Bounds.X + cfg.Margin
	rightEdge := cfg.Bounds.X + cfg.Bounds.W - cfg.Margin

	for i, p := range points {
		value := int(p.Value)
		original := value
		if value < ValueMin {
			value = ValueMin
		}
		if value > ValueMax {
			value = ValueMax
		}

		// X maps age, not array index; elapsed time shifts every dot left.
		totalMinutesAgo := int(p.MinutesAgo) + elapsedMinutes
		pixelOffset := totalMinutesAgo * cfg.DotSpacing / 5
		x := rightEdge - pixelOffset
		if x < innerLeft {
			continue // scrolled off
		}

		radius := cfg.DotRadius - 1
		if i == 0 && totalMinutesAgo < FreshDotMinutes {
			radius = cfg.DotRadius
		}

		frame.Dots = append(frame.Dots, Dot{
			X:      x,
			Y:      valueY(value, cfg),
			Radius: radius,
			Color:  dotColor(original, th, cfg),
		})
	}

	return frame
}

// valueY maps a clamped glucose value onto the inner chart height. Screen Y
// grows downward, so higher values map to smaller Y.
func valueY(value int, cfg Config) int {
	innerHeight := cfg.Bounds.H - cfg.Margin*2
	return cfg.Bounds.Y + cfg.Margin + innerHeight -
		(value-ValueMin)*innerHeight/(ValueMax-ValueMin)
}

// buildLine lays out the dash segments for one threshold. The threshold is
// not clamped: a value outside the glucose range maps off-canvas, which the
// caller's clipping handles.
func buildLine(threshold int, color ColorClass, cfg Config) Line {
	line := Line{Y: valueY(threshold, cfg), Color: color}

	innerLeft := cfg.Bounds.X + cfg.Margin
	innerRight := cfg.Bounds.X + cfg.Bounds.W - cfg.Margin
	for x := innerLeft; x < innerRight; x += dashLength + gapLength {
		end := x + dashLength - 1
		if end > innerRight {
			end = innerRight
		}
		line.Segments = append(line.Segments, Segment{X1: x, X2: end})
	}
	return line
}

func lineColor(color ColorClass, cfg Config) ColorClass {
	if !cfg.SupportsColor {
		return ColorForeground
	}
	return color
}

// dotColor classifies the original, pre-clamp value against the thresholds.
func dotColor(value int, th models.Thresholds, cfg Config) ColorClass {
	if !cfg.SupportsColor {
		return ColorForeground
	}
	switch {
	case value <= th.Low:
		return ColorLow
	case value >= th.High:
		return ColorHigh
	default:
		return ColorInRange
	}
}
