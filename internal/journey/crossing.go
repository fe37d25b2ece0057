package journey

import "time"

// Platform identifiers for the seeded ride platforms. The set is extensible:
// boundaries are plain data, and anything the config layer hands over is
// detected and attributed the same way.
const (
	PlatformUber = "uber"
	Platform99   = "app99"
)

// PlatformBoundary describes when a ride platform closes its internal
// accounting day: Hour is the local clock hour (0–23) at which the
// platform's earnings day rolls over.
type PlatformBoundary struct {
	Platform string
	Hour     int
}

// DefaultBoundaries returns the seeded platform set: 99 resets at local
// midnight, Uber at 04:00 local.
func DefaultBoundaries() []PlatformBoundary {
	return []PlatformBoundary{
		{Platform: Platform99, Hour: 0},
		{Platform: PlatformUber, Hour: 4},
	}
}

// Crossing reports whether a journey's time span crossed one platform's
// accounting-day boundary. Boundary is the instant of the first boundary
// occurrence after the journey started, regardless of whether it was crossed.
type Crossing struct {
	Platform string    `json:"platform"`
	Crossed  bool      `json:"crossed"`
	Boundary time.Time `json:"boundary"`
}

// DetectCrossings evaluates each platform boundary against the span
// [start, eval]. For boundary hour h the first occurrence of local h:00
// strictly after start is computed; the boundary is crossed iff eval is at
// or past that instant. A session that starts at or after h on a given local
// day therefore never crosses that day's boundary — it already passed before
// the session began.
//
// The result is stateless and consumed once, at finish time (or by the live
// status projection).
func DetectCrossings(start, eval time.Time, boundaries []PlatformBoundary) []Crossing {
	out := make([]Crossing, 0, len(boundaries))
	for _, b := range boundaries {
		next := nextBoundary(start, b.Hour)
		out = append(out, Crossing{
			Platform: b.Platform,
			Crossed:  !eval.Before(next),
			Boundary: next,
		})
	}
	return out
}

// nextBoundary returns the first instant of local hour:00 strictly after t,
// in t's location. time.Date normalizes day overflow, so this is DST-safe.
func nextBoundary(t time.Time, hour int) time.Time {
	b := time.Date(t.Year(), t.Month(), t.Day(), hour, 0, 0, 0, t.Location())
	if !b.After(t) {
		b = b.AddDate(0, 0, 1)
	}
	return b
}
