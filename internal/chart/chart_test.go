package chart

import (
	"testing"

	"glucoface/internal/models"
)

func testConfig(color bool) Config {
	return Config{
		Bounds:        Rect{X: 0, Y: 70, W: 144, H: 74},
		Margin:        4,
		DotSpacing:    6,
		DotRadius:     3,
		SupportsColor: color,
	}
}

func TestBuildEmptyHistoryDrawsNothing(t *testing.T) {
	frame := Build(nil, models.DefaultThresholds(), 0, testConfig(false))
	if len(frame.Dots) != 0 || len(frame.LowLine.Segments) != 0 || len(frame.HighLine.Segments) != 0 {
		t.Errorf("empty history must produce an empty frame: %+v", frame)
	}
}

func TestBuildVerticalMapping(t *testing.T) {
	cfg := testConfig(false)
	points := []models.ChartPoint{
		{Value: ValueMin, MinutesAgo: 0},
		{Value: ValueMax, MinutesAgo: 5},
	}

	frame := Build(points, models.DefaultThresholds(), 0, cfg)
	if len(frame.Dots) != 2 {
		t.Fatalf("expected 2 dots, got %d", len(frame.Dots))
	}

	innerHeight := cfg.Bounds.H - cfg.Margin*2
	bottom := cfg.Bounds.Y + cfg.Margin + innerHeight
	top := cfg.Bounds.Y + cfg.Margin
	if frame.Dots[0].Y != bottom {
		t.Errorf("minimum value must map to bottom edge: got %d, want %d", frame.Dots[0].Y, bottom)
	}
	if frame.Dots[1].Y != top {
		t.Errorf("maximum value must map to top edge: got %d, want %d", frame.Dots[1].Y, top)
	}
}

func TestBuildClampsOutOfRangeValues(t *testing.T) {
	cfg := testConfig(false)
	points := []models.ChartPoint{
		{Value: 20, MinutesAgo: 0},
		{Value: 400, MinutesAgo: 5},
	}

	frame := Build(points, models.DefaultThresholds(), 0, cfg)
	if frame.Dots[0].Y != valueY(ValueMin, cfg) {
		t.Errorf("low outlier must draw at the clamped edge")
	}
	if frame.Dots[1].Y != valueY(ValueMax, cfg) {
		t.Errorf("high outlier must draw at the clamped edge")
	}
}

func TestBuildHorizontalMappingAndScroll(t *testing.T) {
	cfg := testConfig(false)
	points := []models.ChartPoint{
		{Value: 150, MinutesAgo: 0},
		{Value: 140, MinutesAgo: 5},
		{Value: 130, MinutesAgo: 10},
	}

	frame := Build(points, models.DefaultThresholds(), 0, cfg)
	rightEdge := cfg.Bounds.X + cfg.Bounds.W - cfg.Margin
	wantX := []int{rightEdge, rightEdge - 6, rightEdge - 12}
	for i, want := range wantX {
		if frame.Dots[i].X != want {
			t.Errorf("dot %d x: got %d, want %d", i, frame.Dots[i].X, want)
		}
	}

	// 20 simulated minutes with no new push shift every dot left by
	// 20 * dotSpacing / 5 pixels.
	shifted := Build(points, models.DefaultThresholds(), 20, cfg)
	for i := range shifted.Dots {
		if shifted.Dots[i].X != frame.Dots[i].X-24 {
			t.Errorf("dot %d did not scroll: got %d, want %d", i, shifted.Dots[i].X, frame.Dots[i].X-24)
		}
	}
}

func TestBuildDropsDotsScrolledOffLeft(t *testing.T) {
	cfg := testConfig(false)
	points := []models.ChartPoint{
		{Value: 150, MinutesAgo: 0},
		{Value: 140, MinutesAgo: 120}, // offset 144px, past the inner left edge
	}

	frame := Build(points, models.DefaultThresholds(), 0, cfg)
	if len(frame.Dots) != 1 {
		t.Fatalf("expected off-canvas dot dropped, got %d dots", len(frame.Dots))
	}
}

func TestBuildFreshnessRadius(t *testing.T) {
	cfg := testConfig(false)
	points := []models.ChartPoint{
		{Value: 150, MinutesAgo: 0},
		{Value: 140, MinutesAgo: 5},
	}

	frame := Build(points, models.DefaultThresholds(), 0, cfg)
	if frame.Dots[0].Radius != cfg.DotRadius {
		t.Errorf("fresh most-recent dot must use full radius, got %d", frame.Dots[0].Radius)
	}
	if frame.Dots[1].Radius != cfg.DotRadius-1 {
		t.Errorf("older dot must be one pixel smaller, got %d", frame.Dots[1].Radius)
	}

	// Once the most recent point ages past 10 minutes it shrinks too.
	aged := Build(points, models.DefaultThresholds(), 10, cfg)
	if aged.Dots[0].Radius != cfg.DotRadius-1 {
		t.Errorf("aged most-recent dot must shrink, got %d", aged.Dots[0].Radius)
	}
}

func TestBuildColorClasses(t *testing.T) {
	th := models.DefaultThresholds()
	points := []models.ChartPoint{
		{Value: 70, MinutesAgo: 0},   // at low threshold
		{Value: 120, MinutesAgo: 5},  // in range
		{Value: 180, MinutesAgo: 10}, // at high threshold
		{Value: 20, MinutesAgo: 15},  // clamped, but colored by original value
	}

	frame := Build(points, th, 0, testConfig(true))
	want := []ColorClass{ColorLow, ColorInRange, ColorHigh, ColorLow}
	for i, w := range want {
		if frame.Dots[i].Color != w {
			t.Errorf("dot %d color: got %v, want %v", i, frame.Dots[i].Color, w)
		}
	}

	mono := Build(points, th, 0, testConfig(false))
	for i := range mono.Dots {
		if mono.Dots[i].Color != ColorForeground {
			t.Errorf("monochrome dot %d must use foreground color", i)
		}
	}
}

func TestBuildThresholdLines(t *testing.T) {
	cfg := testConfig(true)
	th := models.DefaultThresholds()
	points := []models.ChartPoint{{Value: 150, MinutesAgo: 0}}

	frame := Build(points, th, 0, cfg)

	if frame.LowLine.Y != valueY(th.Low, cfg) {
		t.Errorf("low line y: got %d, want %d", frame.LowLine.Y, valueY(th.Low, cfg))
	}
	if frame.HighLine.Y != valueY(th.High, cfg) {
		t.Errorf("high line y: got %d, want %d", frame.HighLine.Y, valueY(th.High, cfg))
	}
	if frame.LowLine.Color != ColorLow || frame.HighLine.Color != ColorHigh {
		t.Errorf("color output must color the threshold lines")
	}

	// 4px dashes with 3px gaps across the inner width.
	if len(frame.LowLine.Segments) == 0 {
		t.Fatal("expected dash segments")
	}
	first := frame.LowLine.Segments[0]
	if first.X1 != cfg.Bounds.X+cfg.Margin || first.X2 != first.X1+3 {
		t.Errorf("first dash misplaced: %+v", first)
	}
	innerRight := cfg.Bounds.X + cfg.Bounds.W - cfg.Margin
	for i, seg := range frame.LowLine.Segments {
		if seg.X2 > innerRight {
			t.Errorf("segment %d extends past inner right edge: %+v", i, seg)
		}
		if i > 0 && seg.X1 != frame.LowLine.Segments[i-1].X1+7 {
			t.Errorf("segment %d pitch wrong: %+v", i, seg)
		}
	}
}

func TestBuildUnclampedThresholdMapsOffCanvas(t *testing.T) {
	cfg := testConfig(false)
	th := models.Thresholds{Low: 10, High: 350}
	points := []models.ChartPoint{{Value: 150, MinutesAgo: 0}}

	frame := Build(points, th, 0, cfg)
	bottom := cfg.Bounds.Y + cfg.Bounds.H - cfg.Margin
	top := cfg.Bounds.Y + cfg.Margin
	if frame.LowLine.Y <= bottom {
		t.Errorf("threshold below range must map past the bottom, got %d", frame.LowLine.Y)
	}
	if frame.HighLine.Y >= top {
		t.Errorf("threshold above range must map past the top, got %d", frame.HighLine.Y)
	}
}
