package engine

import (
	"fmt"
	"time"
)

// Staleness classifies the current reading by extrapolated age.
type Staleness int

const (
	// StalenessUnknown means no data was ever received; the caller keeps
	// its prior UI state.
	StalenessUnknown Staleness = iota
	StalenessFresh
	StalenessStale
)

func (s Staleness) String() string {
	switch s {
	case StalenessFresh:
		return "fresh"
	case StalenessStale:
		return "stale"
	default:
		return "unknown"
	}
}

const (
	// staleAfterMinutes hides the reading and shows the no-data indicator.
	staleAfterMinutes = 60
	// alertAfterMinutes is the age at which a latched outbox failure
	// becomes visible as the alert triangle.
	alertAfterMinutes = 15
	// longAgoMinutes switches the time-ago text to hours and minutes.
	longAgoMinutes = 90
)

// CurrentAge extrapolates the data age forward from the last push. The
// second result is false when no data was ever received (lastMinutesAgo is
// the -1 sentinel), which must short-circuit all age-dependent logic.
func CurrentAge(lastMinutesAgo int, lastDataTime, now time.Time) (int, bool) {
	if lastMinutesAgo < 0 || lastDataTime.IsZero() {
		return 0, false
	}
	elapsed := int(now.Sub(lastDataTime) / time.Minute)
	return lastMinutesAgo + elapsed, true
}

// EvaluateStaleness derives the staleness category from the time anchor.
func EvaluateStaleness(lastMinutesAgo int, lastDataTime, now time.Time) Staleness {
	age, ok := CurrentAge(lastMinutesAgo, lastDataTime, now)
	if !ok {
		return StalenessUnknown
	}
	if age >= staleAfterMinutes {
		return StalenessStale
	}
	return StalenessFresh
}

// AlertEligible reports whether the failure triangle may be shown. The
// caller additionally gates this on the sync spinner being idle.
func AlertEligible(lastMinutesAgo int, lastDataTime, now time.Time, outboxFailure bool) bool {
	age, ok := CurrentAge(lastMinutesAgo, lastDataTime, now)
	if !ok {
		age = 0
	}
	return age >= alertAfterMinutes && outboxFailure
}

// TimeAgoText renders the extrapolated age for the time-ago slot.
func TimeAgoText(ageMinutes int) string {
	switch {
	case ageMinutes == 0:
		return "now"
	case ageMinutes >= longAgoMinutes:
		return fmt.Sprintf("%dh %dm ago", ageMinutes/60, ageMinutes%60)
	default:
		return fmt.Sprintf("%dm ago", ageMinutes)
	}
}
