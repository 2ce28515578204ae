package engine

// Snapshot is a point-in-time view of the engine for the diagnostics API.
// It must be taken on the engine loop.
type Snapshot struct {
	Reading       string `json:"reading"`
	ValueNumeric  *int   `json:"valueNumeric,omitempty"`
	Delta         string `json:"delta"`
	Trend         uint8  `json:"trend"`
	AgeMinutes    int    `json:"ageMinutes"`
	HasData       bool   `json:"hasData"`
	Staleness     string `json:"staleness"`
	Loading       string `json:"loading"`
	Sync          string `json:"sync"`
	OutboxFailure bool   `json:"outboxFailure"`
	Points        int    `json:"points"`
	LowThreshold  int    `json:"lowThreshold"`
	HighThreshold int    `json:"highThreshold"`
	Reversed      bool   `json:"reversed"`
	NeedsSetup    bool   `json:"needsSetup"`
	Battery       int    `json:"battery"`
	Charging      bool   `json:"charging"`
}

// Snapshot captures the current state.
func (e *Engine) Snapshot() Snapshot {
	now := e.clock.Now()
	age, ok := CurrentAge(e.lastMinutesAgo, e.lastDataTime, now)

	return Snapshot{
		Reading:       e.reading.ValueText,
		ValueNumeric:  e.reading.ValueNumeric,
		Delta:         e.reading.DeltaText,
		Trend:         uint8(e.reading.Trend),
		AgeMinutes:    age,
		HasData:       ok,
		Staleness:     EvaluateStaleness(e.lastMinutesAgo, e.lastDataTime, now).String(),
		Loading:       e.loading.State().String(),
		Sync:          e.sync.State().String(),
		OutboxFailure: e.outboxFailure,
		Points:        len(e.history),
		LowThreshold:  e.thresholds.Low,
		HighThreshold: e.thresholds.High,
		Reversed:      e.reversed,
		NeedsSetup:    e.needsSetup,
		Battery:       e.batteryLevel,
		Charging:      e.batteryCharging,
	}
}
