// Package handler implements the HTTP handlers for the Jornada API.
// All handlers are methods on Server. Methods are split into domain-specific
// files (health.go, journey.go, vehicle.go) but all share the same Server
// struct so they can access its dependencies.
package handler

import (
	"context"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/jornada-app/backend/internal/domain"
	"github.com/jornada-app/backend/internal/journey"
)

// JourneyServicer defines the business operations the journey handlers depend
// on. Defining the interface here (in the consumer package) follows the Go
// convention: "accept interfaces, return concrete types". It lets handler
// tests inject a mock without touching the database or service layer.
type JourneyServicer interface {
	Start(ctx context.Context, vehicleID uuid.UUID, startOdometer int64, at time.Time) (domain.Journey, error)
	Pause(ctx context.Context, id uuid.UUID, odometer int64, at time.Time) (domain.Journey, error)
	Resume(ctx context.Context, id uuid.UUID, odometer int64, at time.Time) (domain.Journey, error)
	Finish(ctx context.Context, id uuid.UUID, endOdometer int64, at time.Time, inputs []journey.EarningsInput) (domain.Journey, error)
	Cancel(ctx context.Context, id uuid.UUID) (domain.Journey, error)
	GetByID(ctx context.Context, id uuid.UUID) (domain.Journey, error)
	ListPaged(ctx context.Context, p domain.PaginationParams) ([]domain.Journey, int64, error)
	Status(ctx context.Context, id uuid.UUID, now time.Time) (journey.Status, error)
	DaySummary(ctx context.Context, now time.Time) (domain.DaySummary, error)
}

// VehicleServicer defines the business operations the vehicle handlers depend on.
type VehicleServicer interface {
	Create(ctx context.Context, v domain.Vehicle) (domain.Vehicle, error)
	GetByID(ctx context.Context, id uuid.UUID) (domain.Vehicle, error)
	List(ctx context.Context) ([]domain.Vehicle, error)
	Update(ctx context.Context, v domain.Vehicle) (domain.Vehicle, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// Server holds the dependencies shared by all handlers.
// now supplies the current time for commands without an explicit timestamp
// and for the live projections; injecting it keeps handlers deterministic
// under test. Pass nil to use time.Now.
type Server struct {
	journeys JourneyServicer
	vehicles VehicleServicer
	now      func() time.Time
}

// NewServer constructs the Server with all its dependencies.
func NewServer(journeys JourneyServicer, vehicles VehicleServicer, now func() time.Time) *Server {
	if now == nil {
		now = time.Now
	}
	return &Server{journeys: journeys, vehicles: vehicles, now: now}
}

// Routes returns the chi router for the full API surface.
// Cross-cutting middleware (logging, CORS, body limits) is wired by main.
func (s *Server) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/healthz", s.GetHealth)

	r.Route("/vehicles", func(r chi.Router) {
		r.Post("/", s.CreateVehicle)
		r.Get("/", s.ListVehicles)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", s.GetVehicle)
			r.Put("/", s.UpdateVehicle)
			r.Delete("/", s.DeleteVehicle)
		})
	})

	r.Route("/journeys", func(r chi.Router) {
		r.Get("/", s.ListJourneys)
		r.Get("/summary", s.GetDaySummary)
		r.Post("/start", s.StartJourney)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", s.GetJourney)
			r.Get("/status", s.GetJourneyStatus)
			r.Post("/pause", s.PauseJourney)
			r.Post("/resume", s.ResumeJourney)
			r.Post("/finish", s.FinishJourney)
			r.Post("/cancel", s.CancelJourney)
		})
	})

	return r
}
