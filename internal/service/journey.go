// Package service contains the business logic for the Jornada API.
// Services validate inputs, orchestrate engine transitions and repo calls,
// and enforce the rules that span aggregates (one open journey per vehicle).
// No SQL lives here — services depend on repo interfaces, not implementations.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/jornada-app/backend/internal/domain"
	"github.com/jornada-app/backend/internal/journey"
	"github.com/jornada-app/backend/internal/repo"
)

// ErrOpenJourneyExists is returned by Start when the vehicle already has an
// active or paused journey.
var ErrOpenJourneyExists = fmt.Errorf("%w: vehicle already has an open journey", domain.ErrConflict)

// EventPublisher emits journey lifecycle events to interested consumers
// (notifications, reporting). Implementations must be safe to call after a
// journey is committed; a publish failure is logged, never surfaced.
type EventPublisher interface {
	PublishJourneyCompleted(ctx context.Context, j domain.Journey) error
}

// JourneyService implements the command and projection API for journeys.
// It is the only caller of the journey engine: every command loads the
// current snapshot, applies a pure transition, and persists the result.
type JourneyService struct {
	journeys repo.JourneyRepo
	vehicles repo.VehicleRepo
	machine  *journey.Machine
	events   EventPublisher
	log      *slog.Logger
}

// NewJourneyService constructs a JourneyService. events may be nil when no
// broker is configured; completion events are then skipped.
func NewJourneyService(journeys repo.JourneyRepo, vehicles repo.VehicleRepo, machine *journey.Machine, events EventPublisher, log *slog.Logger) *JourneyService {
	if log == nil {
		log = slog.Default()
	}
	return &JourneyService{journeys: journeys, vehicles: vehicles, machine: machine, events: events, log: log}
}

// Start begins a new journey for the vehicle at the given odometer reading
// and instant. Fails with ErrOpenJourneyExists if the vehicle already has an
// active or paused journey, and with domain.ErrNotFound for an unknown vehicle.
func (s *JourneyService) Start(ctx context.Context, vehicleID uuid.UUID, startOdometer int64, at time.Time) (domain.Journey, error) {
	if _, err := s.vehicles.GetByID(ctx, vehicleID); err != nil {
		return domain.Journey{}, fmt.Errorf("service.JourneyService.Start: %w", err)
	}

	_, err := s.journeys.GetOpenByVehicle(ctx, vehicleID)
	switch {
	case err == nil:
		return domain.Journey{}, fmt.Errorf("service.JourneyService.Start: %w", ErrOpenJourneyExists)
	case !errors.Is(err, domain.ErrNotFound):
		return domain.Journey{}, fmt.Errorf("service.JourneyService.Start: %w", err)
	}

	j, err := s.machine.Start(vehicleID, startOdometer, at)
	if err != nil {
		return domain.Journey{}, err
	}

	// The partial unique index backstops this insert: if a concurrent Start
	// won the race since the lookup above, the insert fails instead of
	// producing a second open journey.
	created, err := s.journeys.Create(ctx, j)
	if err != nil {
		return domain.Journey{}, fmt.Errorf("service.JourneyService.Start: %w", err)
	}
	return created, nil
}

// Pause suspends the journey at the given reading and instant.
func (s *JourneyService) Pause(ctx context.Context, id uuid.UUID, odometer int64, at time.Time) (domain.Journey, error) {
	return s.transition(ctx, "Pause", id, func(j domain.Journey) (domain.Journey, error) {
		return s.machine.Pause(j, odometer, at)
	})
}

// Resume closes the open pause and returns the journey to active.
func (s *JourneyService) Resume(ctx context.Context, id uuid.UUID, odometer int64, at time.Time) (domain.Journey, error) {
	return s.transition(ctx, "Resume", id, func(j domain.Journey) (domain.Journey, error) {
		return s.machine.Resume(j, odometer, at)
	})
}

// Finish completes the journey, freezing earnings and derived stats, and
// publishes a completion event. A clock-skew warning from the engine is
// logged; it never blocks completion.
func (s *JourneyService) Finish(ctx context.Context, id uuid.UUID, endOdometer int64, at time.Time, inputs []journey.EarningsInput) (domain.Journey, error) {
	updated, err := s.transition(ctx, "Finish", id, func(j domain.Journey) (domain.Journey, error) {
		next, skew, err := s.machine.Finish(j, endOdometer, at, inputs)
		if skew {
			s.log.WarnContext(ctx, "clock skew while finishing journey",
				"journey_id", j.ID, "started_at", j.StartedAt, "ended_at", at)
		}
		return next, err
	})
	if err != nil {
		return domain.Journey{}, err
	}

	if s.events != nil {
		// Best effort: the journey is already committed, so a broker outage
		// must not fail the command.
		if err := s.events.PublishJourneyCompleted(ctx, updated); err != nil {
			s.log.ErrorContext(ctx, "failed to publish journey completion",
				"journey_id", updated.ID, "error", err)
		}
	}
	return updated, nil
}

// Cancel abandons the journey; no earnings are computed and any open pause is
// discarded.
func (s *JourneyService) Cancel(ctx context.Context, id uuid.UUID) (domain.Journey, error) {
	return s.transition(ctx, "Cancel", id, s.machine.Cancel)
}

// transition is the shared load → engine → persist sequence for every
// lifecycle command except Start. Engine errors pass through unwrapped so
// callers can match the typed journey errors directly.
func (s *JourneyService) transition(ctx context.Context, op string, id uuid.UUID, apply func(domain.Journey) (domain.Journey, error)) (domain.Journey, error) {
	current, err := s.journeys.GetByID(ctx, id)
	if err != nil {
		return domain.Journey{}, fmt.Errorf("service.JourneyService.%s: %w", op, err)
	}

	next, err := apply(current)
	if err != nil {
		return domain.Journey{}, err
	}

	updated, err := s.journeys.Update(ctx, next)
	if err != nil {
		return domain.Journey{}, fmt.Errorf("service.JourneyService.%s: %w", op, err)
	}
	return updated, nil
}

// GetByID returns a single journey by ID.
func (s *JourneyService) GetByID(ctx context.Context, id uuid.UUID) (domain.Journey, error) {
	j, err := s.journeys.GetByID(ctx, id)
	if err != nil {
		return domain.Journey{}, fmt.Errorf("service.JourneyService.GetByID: %w", err)
	}
	return j, nil
}

// ListPaged returns one page of journeys plus the total count.
// Always returns a non-nil slice so callers can safely range over it.
func (s *JourneyService) ListPaged(ctx context.Context, p domain.PaginationParams) ([]domain.Journey, int64, error) {
	journeys, total, err := s.journeys.ListPaged(ctx, p)
	if err != nil {
		return nil, 0, fmt.Errorf("service.JourneyService.ListPaged: %w", err)
	}
	if journeys == nil {
		journeys = []domain.Journey{}
	}
	return journeys, total, nil
}

// Status computes the live projection (active duration, boundary crossings)
// for a journey as of now. Read-only: nothing is persisted.
func (s *JourneyService) Status(ctx context.Context, id uuid.UUID, now time.Time) (journey.Status, error) {
	j, err := s.journeys.GetByID(ctx, id)
	if err != nil {
		return journey.Status{}, fmt.Errorf("service.JourneyService.Status: %w", err)
	}
	return s.machine.Status(j, now), nil
}

// DaySummary aggregates the completed journeys of now's local calendar day.
func (s *JourneyService) DaySummary(ctx context.Context, now time.Time) (domain.DaySummary, error) {
	from := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	to := from.AddDate(0, 0, 1)

	summary, err := s.journeys.SummaryForRange(ctx, from, to)
	if err != nil {
		return domain.DaySummary{}, fmt.Errorf("service.JourneyService.DaySummary: %w", err)
	}
	return summary, nil
}
