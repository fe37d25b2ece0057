package handler

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/jornada-app/backend/internal/domain"
	"github.com/jornada-app/backend/internal/journey"
)

type startJourneyRequest struct {
	VehicleID     uuid.UUID  `json:"vehicle_id"`
	StartOdometer *int64     `json:"start_odometer"`
	StartedAt     *time.Time `json:"started_at"`
}

// readingRequest is the shared body shape for pause and resume.
type readingRequest struct {
	Odometer *int64     `json:"odometer"`
	At       *time.Time `json:"at"`
}

type finishJourneyRequest struct {
	EndOdometer *int64                  `json:"end_odometer"`
	EndedAt     *time.Time              `json:"ended_at"`
	Earnings    []journey.EarningsInput `json:"earnings"`
}

type journeyListResponse struct {
	Data       []domain.Journey `json:"data"`
	Pagination paginationMeta   `json:"pagination"`
}

type paginationMeta struct {
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
	Total int64 `json:"total"`
}

// StartJourney handles POST /journeys/start.
// started_at is optional and defaults to the server clock; clients that
// buffered the command offline send the instant it actually happened.
func (s *Server) StartJourney(w http.ResponseWriter, r *http.Request) {
	var req startJourneyRequest
	if err := decodeJSON(r, &req); err != nil {
		respondValidation(w, err.Error())
		return
	}
	if req.VehicleID == uuid.Nil {
		respondValidation(w, "vehicle_id is required")
		return
	}
	if req.StartOdometer == nil {
		respondValidation(w, "start_odometer is required")
		return
	}

	j, err := s.journeys.Start(r.Context(), req.VehicleID, *req.StartOdometer, s.at(req.StartedAt))
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, j)
}

// PauseJourney handles POST /journeys/{id}/pause.
func (s *Server) PauseJourney(w http.ResponseWriter, r *http.Request) {
	s.applyReading(w, r, s.journeys.Pause)
}

// ResumeJourney handles POST /journeys/{id}/resume.
func (s *Server) ResumeJourney(w http.ResponseWriter, r *http.Request) {
	s.applyReading(w, r, s.journeys.Resume)
}

// applyReading is the shared handler body for the two commands that carry an
// odometer reading plus an optional timestamp.
func (s *Server) applyReading(w http.ResponseWriter, r *http.Request, cmd func(ctx context.Context, id uuid.UUID, odometer int64, at time.Time) (domain.Journey, error)) {
	id, err := pathID(r)
	if err != nil {
		respondValidation(w, err.Error())
		return
	}

	var req readingRequest
	if err := decodeJSON(r, &req); err != nil {
		respondValidation(w, err.Error())
		return
	}
	if req.Odometer == nil {
		respondValidation(w, "odometer is required")
		return
	}

	j, err := cmd(r.Context(), id, *req.Odometer, s.at(req.At))
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, j)
}

// FinishJourney handles POST /journeys/{id}/finish.
func (s *Server) FinishJourney(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondValidation(w, err.Error())
		return
	}

	var req finishJourneyRequest
	if err := decodeJSON(r, &req); err != nil {
		respondValidation(w, err.Error())
		return
	}
	if req.EndOdometer == nil {
		respondValidation(w, "end_odometer is required")
		return
	}

	j, err := s.journeys.Finish(r.Context(), id, *req.EndOdometer, s.at(req.EndedAt), req.Earnings)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, j)
}

// CancelJourney handles POST /journeys/{id}/cancel. No body.
func (s *Server) CancelJourney(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondValidation(w, err.Error())
		return
	}

	j, err := s.journeys.Cancel(r.Context(), id)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, j)
}

// GetJourney handles GET /journeys/{id}.
func (s *Server) GetJourney(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondValidation(w, err.Error())
		return
	}

	j, err := s.journeys.GetByID(r.Context(), id)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, j)
}

// GetJourneyStatus handles GET /journeys/{id}/status: the live projection of
// active time and boundary crossings as of the server clock.
func (s *Server) GetJourneyStatus(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondValidation(w, err.Error())
		return
	}

	st, err := s.journeys.Status(r.Context(), id, s.now())
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, st)
}

// ListJourneys handles GET /journeys with optional page and limit query params.
func (s *Server) ListJourneys(w http.ResponseWriter, r *http.Request) {
	page, err := queryInt(r, "page")
	if err != nil {
		respondValidation(w, err.Error())
		return
	}
	limit, err := queryInt(r, "limit")
	if err != nil {
		respondValidation(w, err.Error())
		return
	}
	params := domain.NewPaginationParams(page, limit)

	journeys, total, err := s.journeys.ListPaged(r.Context(), params)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, journeyListResponse{
		Data:       journeys,
		Pagination: paginationMeta{Page: params.Page, Limit: params.Limit, Total: total},
	})
}

// GetDaySummary handles GET /journeys/summary: totals over the completed
// journeys of the current local day.
func (s *Server) GetDaySummary(w http.ResponseWriter, r *http.Request) {
	summary, err := s.journeys.DaySummary(r.Context(), s.now())
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, summary)
}

// at resolves an optional client-supplied timestamp against the server clock.
func (s *Server) at(t *time.Time) time.Time {
	if t != nil {
		return *t
	}
	return s.now()
}

// queryInt parses an optional integer query parameter, nil when absent.
func queryInt(r *http.Request, name string) (*int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return nil, fmt.Errorf("invalid %s: %q", name, raw)
	}
	return &v, nil
}
