package handler

import (
	"net/http"

	"github.com/jornada-app/backend/internal/domain"
)

type vehicleRequest struct {
	Model string `json:"model"`
	Plate string `json:"plate"`
}

// CreateVehicle handles POST /vehicles.
func (s *Server) CreateVehicle(w http.ResponseWriter, r *http.Request) {
	var req vehicleRequest
	if err := decodeJSON(r, &req); err != nil {
		respondValidation(w, err.Error())
		return
	}

	v, err := s.vehicles.Create(r.Context(), domain.Vehicle{Model: req.Model, Plate: req.Plate})
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, v)
}

// GetVehicle handles GET /vehicles/{id}.
func (s *Server) GetVehicle(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondValidation(w, err.Error())
		return
	}

	v, err := s.vehicles.GetByID(r.Context(), id)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, v)
}

// ListVehicles handles GET /vehicles.
func (s *Server) ListVehicles(w http.ResponseWriter, r *http.Request) {
	vehicles, err := s.vehicles.List(r.Context())
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"data": vehicles})
}

// UpdateVehicle handles PUT /vehicles/{id}.
func (s *Server) UpdateVehicle(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondValidation(w, err.Error())
		return
	}

	var req vehicleRequest
	if err := decodeJSON(r, &req); err != nil {
		respondValidation(w, err.Error())
		return
	}

	v, err := s.vehicles.Update(r.Context(), domain.Vehicle{ID: id, Model: req.Model, Plate: req.Plate})
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, v)
}

// DeleteVehicle handles DELETE /vehicles/{id}.
// Vehicles referenced by journeys cannot be deleted (409).
func (s *Server) DeleteVehicle(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondValidation(w, err.Error())
		return
	}

	if err := s.vehicles.Delete(r.Context(), id); err != nil {
		respondError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
