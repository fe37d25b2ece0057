package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/jornada-app/backend/internal/domain"
)

// VehicleRepo defines the persistence operations for Vehicles.
type VehicleRepo interface {
	// Create inserts a new vehicle. Returns domain.ErrConflict if the plate
	// is already registered.
	Create(ctx context.Context, v domain.Vehicle) (domain.Vehicle, error)

	// GetByID retrieves a single vehicle by its UUID primary key.
	// Returns domain.ErrNotFound if no vehicle with that ID exists.
	GetByID(ctx context.Context, id uuid.UUID) (domain.Vehicle, error)

	// List returns all vehicles ordered by model.
	List(ctx context.Context) ([]domain.Vehicle, error)

	// Update overwrites the mutable fields of a vehicle.
	// Returns domain.ErrNotFound if it does not exist.
	Update(ctx context.Context, v domain.Vehicle) (domain.Vehicle, error)

	// Delete removes a vehicle by ID. Returns domain.ErrNotFound if it does
	// not exist, and domain.ErrConflict if journeys reference it.
	Delete(ctx context.Context, id uuid.UUID) error
}

// pgVehicleRepo is the Postgres implementation of VehicleRepo.
type pgVehicleRepo struct {
	db db
}

// NewVehicleRepo constructs a VehicleRepo backed by the provided db connection.
func NewVehicleRepo(db db) VehicleRepo {
	return &pgVehicleRepo{db: db}
}

func (r *pgVehicleRepo) Create(ctx context.Context, v domain.Vehicle) (domain.Vehicle, error) {
	const q = `
		INSERT INTO vehicles (model, plate)
		VALUES (@model, @plate)
		RETURNING id, model, plate, created_at, updated_at`

	row := r.db.QueryRow(ctx, q, pgx.NamedArgs{"model": v.Model, "plate": v.Plate})
	result, err := scanVehicle(row)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.Vehicle{}, fmt.Errorf("repo.VehicleRepo.Create: plate already registered: %w", domain.ErrConflict)
		}
		return domain.Vehicle{}, fmt.Errorf("repo.VehicleRepo.Create: %w", err)
	}
	return result, nil
}

func (r *pgVehicleRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Vehicle, error) {
	const q = `SELECT id, model, plate, created_at, updated_at FROM vehicles WHERE id = @id`

	row := r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id})
	result, err := scanVehicle(row)
	if err != nil {
		return domain.Vehicle{}, fmt.Errorf("repo.VehicleRepo.GetByID: %w", err)
	}
	return result, nil
}

func (r *pgVehicleRepo) List(ctx context.Context) ([]domain.Vehicle, error) {
	const q = `SELECT id, model, plate, created_at, updated_at FROM vehicles ORDER BY model`

	rows, err := r.db.Query(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("repo.VehicleRepo.List: %w", err)
	}
	defer rows.Close()

	var vehicles []domain.Vehicle
	for rows.Next() {
		v, err := scanVehicle(rows)
		if err != nil {
			return nil, fmt.Errorf("repo.VehicleRepo.List: scan: %w", err)
		}
		vehicles = append(vehicles, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.VehicleRepo.List: rows: %w", err)
	}

	return vehicles, nil
}

func (r *pgVehicleRepo) Update(ctx context.Context, v domain.Vehicle) (domain.Vehicle, error) {
	const q = `
		UPDATE vehicles
		SET model      = @model,
		    plate      = @plate,
		    updated_at = now()
		WHERE id = @id
		RETURNING id, model, plate, created_at, updated_at`

	row := r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": v.ID, "model": v.Model, "plate": v.Plate})
	result, err := scanVehicle(row)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.Vehicle{}, fmt.Errorf("repo.VehicleRepo.Update: plate already registered: %w", domain.ErrConflict)
		}
		return domain.Vehicle{}, fmt.Errorf("repo.VehicleRepo.Update: %w", err)
	}
	return result, nil
}

func (r *pgVehicleRepo) Delete(ctx context.Context, id uuid.UUID) error {
	const q = `DELETE FROM vehicles WHERE id = @id`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"id": id})
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("repo.VehicleRepo.Delete: vehicle has journeys: %w", domain.ErrConflict)
		}
		return fmt.Errorf("repo.VehicleRepo.Delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.VehicleRepo.Delete: %w", domain.ErrNotFound)
	}
	return nil
}

// scanVehicle maps a single database row into a domain.Vehicle.
func scanVehicle(s scanner) (domain.Vehicle, error) {
	var (
		v  domain.Vehicle
		id pgtype.UUID
	)

	err := s.Scan(&id, &v.Model, &v.Plate, &v.CreatedAt, &v.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Vehicle{}, domain.ErrNotFound
		}
		return domain.Vehicle{}, err
	}

	v.ID = uuid.UUID(id.Bytes)
	return v, nil
}

// isUniqueViolation reports whether err is Postgres error 23505.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

// isForeignKeyViolation reports whether err is Postgres error 23503.
func isForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23503"
}
