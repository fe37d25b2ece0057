package journey

import (
	"time"

	"github.com/jornada-app/backend/internal/domain"
)

// ActiveDuration returns the journey's net working time: wall-clock span
// minus total paused time. For a completed journey the span ends at EndedAt;
// for an active or paused journey it ends at now, making this usable as a
// live read-only projection.
//
// A negative result (clock skew between the recorded timestamps and now) is
// clamped to zero and reported through the second return value rather than
// as an error — this is a display value, not a safety-critical one.
func ActiveDuration(j domain.Journey, now time.Time) (time.Duration, bool) {
	eval := now
	if j.Status == domain.JourneyCompleted && j.EndedAt != nil {
		eval = *j.EndedAt
	}

	active := eval.Sub(j.StartedAt) - TotalPaused(j.Pauses, eval)
	if active < 0 {
		return 0, true
	}
	return active, false
}
