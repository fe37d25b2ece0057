package journey

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jornada-app/backend/internal/domain"
)

// Machine validates and applies journey lifecycle transitions. It is the only
// entry point collaborators use: persistence loads a snapshot, the machine
// produces the next one, persistence stores it.
//
// The machine holds no mutable state of its own — only the platform boundary
// table — so a single instance is safe to share.
type Machine struct {
	boundaries []PlatformBoundary
}

// NewMachine returns a Machine using the given platform boundary table.
// Pass DefaultBoundaries() unless config overrides them.
func NewMachine(boundaries []PlatformBoundary) *Machine {
	return &Machine{boundaries: boundaries}
}

// Boundaries returns the platform boundary table the machine evaluates.
func (m *Machine) Boundaries() []PlatformBoundary {
	return m.boundaries
}

// Start creates a new active journey for the vehicle. The ID is left zero:
// persistence assigns it on insert. Callers must have verified that no other
// journey for the scope is active or paused; the machine does not arbitrate
// across aggregates.
func (m *Machine) Start(vehicleID uuid.UUID, startOdometer int64, at time.Time) (domain.Journey, error) {
	if err := ValidateOdometer(0, startOdometer); err != nil {
		return domain.Journey{}, err
	}
	return domain.Journey{
		VehicleID:     vehicleID,
		Status:        domain.JourneyActive,
		StartOdometer: startOdometer,
		StartedAt:     at,
	}, nil
}

// Pause suspends an active journey at the given odometer reading and instant.
func (m *Machine) Pause(j domain.Journey, odometer int64, at time.Time) (domain.Journey, error) {
	if j.Status != domain.JourneyActive {
		return domain.Journey{}, transitionErr(j.Status, "pause")
	}
	if err := ValidateOdometer(j.LastOdometer(), odometer); err != nil {
		return domain.Journey{}, err
	}

	pauses, err := OpenPause(j.Pauses, at, odometer)
	if err != nil {
		return domain.Journey{}, err
	}

	j.Status = domain.JourneyPaused
	j.Pauses = pauses
	j.PausedOdometer = &odometer
	return j, nil
}

// Resume closes the open pause and returns the journey to active.
// The odometer is validated against the reading recorded at the pause, and
// the resume instant must strictly follow the pause instant.
func (m *Machine) Resume(j domain.Journey, odometer int64, at time.Time) (domain.Journey, error) {
	if j.Status != domain.JourneyPaused {
		return domain.Journey{}, transitionErr(j.Status, "resume")
	}

	previous := j.StartOdometer
	if j.PausedOdometer != nil {
		previous = *j.PausedOdometer
	}
	if err := ValidateOdometer(previous, odometer); err != nil {
		return domain.Journey{}, err
	}

	pauses, err := ClosePause(j.Pauses, at, odometer)
	if err != nil {
		return domain.Journey{}, err
	}

	j.Status = domain.JourneyActive
	j.Pauses = pauses
	j.PausedOdometer = nil
	return j, nil
}

// Finish completes an active or paused journey: it validates the final
// odometer, implicitly closes a trailing open pause at the finish instant,
// detects platform boundary crossings over the full span, attributes the
// reported earnings, and freezes the derived stats.
//
// The second return value reports clock skew: the computed active duration
// came out negative and was clamped to zero. That is a warning for the
// caller to log, not a failure — the journey still completes.
func (m *Machine) Finish(j domain.Journey, endOdometer int64, at time.Time, inputs []EarningsInput) (domain.Journey, bool, error) {
	if j.Status.Terminal() {
		return domain.Journey{}, false, transitionErr(j.Status, "finish")
	}
	if err := ValidateOdometer(j.LastOdometer(), endOdometer); err != nil {
		return domain.Journey{}, false, err
	}

	if j.Status == domain.JourneyPaused {
		// Policy: finishing while paused closes the open pause at the finish
		// point, so time and distance spent in that pause stay excluded.
		pauses, err := ClosePause(j.Pauses, at, endOdometer)
		if err != nil {
			return domain.Journey{}, false, err
		}
		j.Pauses = pauses
		j.PausedOdometer = nil
	}

	crossings := DetectCrossings(j.StartedAt, at, m.boundaries)
	earnings, err := Attribute(inputs, crossings)
	if err != nil {
		return domain.Journey{}, false, err
	}

	j.Status = domain.JourneyCompleted
	j.EndOdometer = &endOdometer
	j.EndedAt = &at
	j.Earnings = &earnings

	active, skew := ActiveDuration(j, at)
	j.ActiveSeconds = ptr(int64(active / time.Second))

	distance := endOdometer - j.StartOdometer - PausedDistance(j.Pauses)
	j.DistanceKm = &distance

	if secs := *j.ActiveSeconds; secs > 0 {
		j.RatePerHourCents = ptr(earnings.TotalCents * 3600 / secs)
	}
	if distance > 0 {
		j.RatePerKmCents = ptr(earnings.TotalCents / distance)
	}

	return j, skew, nil
}

// Cancel abandons an active or paused journey. Any open pause is discarded
// rather than closed, and no earnings or derived stats are computed.
func (m *Machine) Cancel(j domain.Journey) (domain.Journey, error) {
	if j.Status.Terminal() {
		return domain.Journey{}, transitionErr(j.Status, "cancel")
	}
	j.Status = domain.JourneyCancelled
	j.Pauses = DropOpenPause(j.Pauses)
	j.PausedOdometer = nil
	return j, nil
}

// Status is the live read-only projection of an open journey, computed for
// display before finish is called. It never mutates or persists anything.
type Status struct {
	Status         domain.JourneyStatus `json:"status"`
	ActiveDuration time.Duration        `json:"-"`
	ActiveSeconds  int64                `json:"active_seconds"`
	ClockSkew      bool                 `json:"clock_skew,omitempty"`
	Crossings      []Crossing           `json:"crossings"`
}

// Status computes the projection for the journey as of now.
func (m *Machine) Status(j domain.Journey, now time.Time) Status {
	eval := now
	if j.Status == domain.JourneyCompleted && j.EndedAt != nil {
		eval = *j.EndedAt
	}
	active, skew := ActiveDuration(j, now)
	return Status{
		Status:         j.Status,
		ActiveDuration: active,
		ActiveSeconds:  int64(active / time.Second),
		ClockSkew:      skew,
		Crossings:      DetectCrossings(j.StartedAt, eval, m.boundaries),
	}
}

func transitionErr(from domain.JourneyStatus, op string) error {
	return fmt.Errorf("%w: cannot %s a %s journey", ErrInvalidTransition, op, from)
}

func ptr[T any](v T) *T { return &v }
