package journey

import (
	"time"

	"github.com/jornada-app/backend/internal/domain"
)

// OpenPause appends a new open interval to the pause ledger and returns the
// extended ledger. The input slice is not modified.
// Fails with ErrAlreadyPaused if an open interval already exists.
func OpenPause(pauses []domain.PauseInterval, at time.Time, odometer int64) ([]domain.PauseInterval, error) {
	if openIndex(pauses) >= 0 {
		return nil, ErrAlreadyPaused
	}
	out := make([]domain.PauseInterval, len(pauses), len(pauses)+1)
	copy(out, pauses)
	return append(out, domain.PauseInterval{PausedAt: at, PauseOdometer: odometer}), nil
}

// ClosePause closes the open interval at the given instant and returns the
// updated ledger. The input slice is not modified.
// Fails with ErrNoOpenPause if no interval is open, and with
// ErrNonMonotonicTime if at does not strictly follow the pause instant.
func ClosePause(pauses []domain.PauseInterval, at time.Time, odometer int64) ([]domain.PauseInterval, error) {
	i := openIndex(pauses)
	if i < 0 {
		return nil, ErrNoOpenPause
	}
	if !at.After(pauses[i].PausedAt) {
		return nil, ErrNonMonotonicTime
	}
	out := make([]domain.PauseInterval, len(pauses))
	copy(out, pauses)
	resumedAt := at
	out[i].ResumedAt = &resumedAt
	out[i].ResumeOdometer = &odometer
	return out, nil
}

// DropOpenPause discards an open interval without closing it, for cancelled
// journeys. Returns the ledger unchanged when no interval is open.
func DropOpenPause(pauses []domain.PauseInterval) []domain.PauseInterval {
	i := openIndex(pauses)
	if i < 0 {
		return pauses
	}
	out := make([]domain.PauseInterval, 0, len(pauses)-1)
	out = append(out, pauses[:i]...)
	return append(out, pauses[i+1:]...)
}

// TotalPaused sums the durations of all closed intervals, plus the span from
// an open interval's start to asOf. A completed journey must pass its end
// time as asOf so the trailing pause (if any) is measured to the finish
// instant and no further.
func TotalPaused(pauses []domain.PauseInterval, asOf time.Time) time.Duration {
	var total time.Duration
	for _, p := range pauses {
		if p.ResumedAt != nil {
			total += p.ResumedAt.Sub(p.PausedAt)
			continue
		}
		if asOf.After(p.PausedAt) {
			total += asOf.Sub(p.PausedAt)
		}
	}
	return total
}

// PausedDistance sums the kilometers driven during closed pause intervals.
// An open interval contributes nothing: its end reading is unknown.
func PausedDistance(pauses []domain.PauseInterval) int64 {
	var km int64
	for _, p := range pauses {
		if p.ResumeOdometer != nil {
			km += *p.ResumeOdometer - p.PauseOdometer
		}
	}
	return km
}

// openIndex returns the index of the open interval, or -1.
func openIndex(pauses []domain.PauseInterval) int {
	for i, p := range pauses {
		if p.Open() {
			return i
		}
	}
	return -1
}
