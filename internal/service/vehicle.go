package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/jornada-app/backend/internal/domain"
	"github.com/jornada-app/backend/internal/repo"
)

// VehicleService implements business logic for Vehicle operations.
type VehicleService struct {
	vehicles repo.VehicleRepo
}

// NewVehicleService constructs a VehicleService backed by the provided repo.
func NewVehicleService(vehicles repo.VehicleRepo) *VehicleService {
	return &VehicleService{vehicles: vehicles}
}

// Create validates and persists a new vehicle.
// Returns domain.ErrValidation for invalid input and domain.ErrConflict for a
// duplicate plate.
func (s *VehicleService) Create(ctx context.Context, v domain.Vehicle) (domain.Vehicle, error) {
	if err := validateVehicle(&v); err != nil {
		return domain.Vehicle{}, err
	}
	result, err := s.vehicles.Create(ctx, v)
	if err != nil {
		return domain.Vehicle{}, fmt.Errorf("service.VehicleService.Create: %w", err)
	}
	return result, nil
}

// GetByID returns a single vehicle by ID.
func (s *VehicleService) GetByID(ctx context.Context, id uuid.UUID) (domain.Vehicle, error) {
	result, err := s.vehicles.GetByID(ctx, id)
	if err != nil {
		return domain.Vehicle{}, fmt.Errorf("service.VehicleService.GetByID: %w", err)
	}
	return result, nil
}

// List returns all vehicles.
// Always returns a non-nil slice so callers can safely range over it.
func (s *VehicleService) List(ctx context.Context) ([]domain.Vehicle, error) {
	vehicles, err := s.vehicles.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("service.VehicleService.List: %w", err)
	}
	if vehicles == nil {
		return []domain.Vehicle{}, nil
	}
	return vehicles, nil
}

// Update validates and updates an existing vehicle.
func (s *VehicleService) Update(ctx context.Context, v domain.Vehicle) (domain.Vehicle, error) {
	if err := validateVehicle(&v); err != nil {
		return domain.Vehicle{}, err
	}
	result, err := s.vehicles.Update(ctx, v)
	if err != nil {
		return domain.Vehicle{}, fmt.Errorf("service.VehicleService.Update: %w", err)
	}
	return result, nil
}

// Delete removes a vehicle by ID. Vehicles with journey history cannot be
// deleted; the repo reports that as domain.ErrConflict.
func (s *VehicleService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.vehicles.Delete(ctx, id); err != nil {
		return fmt.Errorf("service.VehicleService.Delete: %w", err)
	}
	return nil
}

// validateVehicle enforces business rules common to Create and Update.
// The plate is normalized to uppercase with surrounding whitespace removed.
func validateVehicle(v *domain.Vehicle) error {
	if strings.TrimSpace(v.Model) == "" {
		return fmt.Errorf("%w: model is required", domain.ErrValidation)
	}
	v.Plate = strings.ToUpper(strings.TrimSpace(v.Plate))
	if v.Plate == "" {
		return fmt.Errorf("%w: plate is required", domain.ErrValidation)
	}
	return nil
}
