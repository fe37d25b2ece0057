// Package repo contains all database access logic for the Jornada API.
// Each resource has its own file with an interface and a Postgres implementation.
// No business logic lives here — only SQL and type mapping.
package repo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/jornada-app/backend/internal/domain"
)

// db is the minimal interface satisfied by *pgxpool.Pool, pgx.Conn, and pgx.Tx.
// Accepting this interface instead of *pgxpool.Pool directly allows integration
// tests to pass a transaction that is rolled back after each test, giving free
// per-test isolation without any manual cleanup.
type db interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// JourneyRepo defines the persistence operations for Journeys.
// The whole aggregate — including pause intervals and the earnings summary —
// lives on a single row, so every state transition is one atomic write guarded
// by the version column.
type JourneyRepo interface {
	// Create inserts a new journey and returns the persisted record (with
	// DB-generated id, version, created_at, and updated_at populated).
	Create(ctx context.Context, j domain.Journey) (domain.Journey, error)

	// GetByID retrieves a single journey by its UUID primary key.
	// Returns domain.ErrNotFound if no journey with that ID exists.
	GetByID(ctx context.Context, id uuid.UUID) (domain.Journey, error)

	// GetOpenByVehicle returns the vehicle's active or paused journey.
	// Returns domain.ErrNotFound when the vehicle has no open journey.
	GetOpenByVehicle(ctx context.Context, vehicleID uuid.UUID) (domain.Journey, error)

	// ListPaged returns journeys ordered by started_at descending, plus the
	// total row count for pagination headers.
	ListPaged(ctx context.Context, p domain.PaginationParams) ([]domain.Journey, int64, error)

	// Update overwrites the journey snapshot, guarded by the version the
	// caller loaded. Returns domain.ErrConflict when the stored version no
	// longer matches (a concurrent writer won) or the row is gone.
	Update(ctx context.Context, j domain.Journey) (domain.Journey, error)

	// SummaryForRange aggregates completed journeys whose start falls in
	// [from, to). Used for the daily dashboard summary.
	SummaryForRange(ctx context.Context, from, to time.Time) (domain.DaySummary, error)
}

// pgJourneyRepo is the Postgres implementation of JourneyRepo.
type pgJourneyRepo struct {
	db db
}

// NewJourneyRepo constructs a JourneyRepo backed by the provided db connection.
// In production pass *pgxpool.Pool; in tests pass a pgx.Tx for rollback isolation.
func NewJourneyRepo(db db) JourneyRepo {
	return &pgJourneyRepo{db: db}
}

const journeyColumns = `
	id, vehicle_id, status, start_odometer, started_at,
	end_odometer, ended_at, paused_odometer, pauses, earnings,
	distance_km, active_seconds, total_cents,
	rate_per_hour_cents, rate_per_km_cents,
	version, created_at, updated_at`

// Create inserts a new journey row and returns the full persisted record.
func (r *pgJourneyRepo) Create(ctx context.Context, j domain.Journey) (domain.Journey, error) {
	const q = `
		INSERT INTO journeys (vehicle_id, status, start_odometer, started_at, pauses)
		VALUES (@vehicle_id, @status, @start_odometer, @started_at, @pauses)
		RETURNING` + journeyColumns

	args := pgx.NamedArgs{
		"vehicle_id":     j.VehicleID,
		"status":         j.Status,
		"start_odometer": j.StartOdometer,
		"started_at":     j.StartedAt,
		"pauses":         pauseList(j.Pauses),
	}

	row := r.db.QueryRow(ctx, q, args)
	result, err := scanJourney(row)
	if err != nil {
		return domain.Journey{}, fmt.Errorf("repo.JourneyRepo.Create: %w", err)
	}
	return result, nil
}

// GetByID retrieves a journey by primary key.
func (r *pgJourneyRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Journey, error) {
	const q = `SELECT` + journeyColumns + ` FROM journeys WHERE id = @id`

	row := r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id})
	result, err := scanJourney(row)
	if err != nil {
		return domain.Journey{}, fmt.Errorf("repo.JourneyRepo.GetByID: %w", err)
	}
	return result, nil
}

// GetOpenByVehicle returns the single active or paused journey for a vehicle.
// The partial unique index on (vehicle_id) WHERE status IN ('active','paused')
// guarantees at most one row can match.
func (r *pgJourneyRepo) GetOpenByVehicle(ctx context.Context, vehicleID uuid.UUID) (domain.Journey, error) {
	const q = `
		SELECT` + journeyColumns + `
		FROM journeys
		WHERE vehicle_id = @vehicle_id AND status IN ('active', 'paused')`

	row := r.db.QueryRow(ctx, q, pgx.NamedArgs{"vehicle_id": vehicleID})
	result, err := scanJourney(row)
	if err != nil {
		return domain.Journey{}, fmt.Errorf("repo.JourneyRepo.GetOpenByVehicle: %w", err)
	}
	return result, nil
}

// ListPaged returns one page of journeys, most recent first, plus the total count.
func (r *pgJourneyRepo) ListPaged(ctx context.Context, p domain.PaginationParams) ([]domain.Journey, int64, error) {
	const q = `
		SELECT` + journeyColumns + `
		FROM journeys
		ORDER BY started_at DESC
		LIMIT @limit OFFSET @offset`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"limit": p.Limit, "offset": p.Offset()})
	if err != nil {
		return nil, 0, fmt.Errorf("repo.JourneyRepo.ListPaged: %w", err)
	}
	defer rows.Close()

	var journeys []domain.Journey
	for rows.Next() {
		j, err := scanJourney(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("repo.JourneyRepo.ListPaged: scan: %w", err)
		}
		journeys = append(journeys, j)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("repo.JourneyRepo.ListPaged: rows: %w", err)
	}

	var total int64
	if err := r.db.QueryRow(ctx, `SELECT count(*) FROM journeys`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("repo.JourneyRepo.ListPaged: count: %w", err)
	}

	return journeys, total, nil
}

// Update overwrites the journey snapshot with a version check.
// version = version + 1 on success, so a concurrent writer holding the old
// snapshot gets domain.ErrConflict instead of silently clobbering this write.
func (r *pgJourneyRepo) Update(ctx context.Context, j domain.Journey) (domain.Journey, error) {
	const q = `
		UPDATE journeys
		SET status              = @status,
		    end_odometer        = @end_odometer,
		    ended_at            = @ended_at,
		    paused_odometer     = @paused_odometer,
		    pauses              = @pauses,
		    earnings            = @earnings,
		    distance_km         = @distance_km,
		    active_seconds      = @active_seconds,
		    total_cents         = @total_cents,
		    rate_per_hour_cents = @rate_per_hour_cents,
		    rate_per_km_cents   = @rate_per_km_cents,
		    version             = version + 1,
		    updated_at          = now()
		WHERE id = @id AND version = @version
		RETURNING` + journeyColumns

	var totalCents *int64
	if j.Earnings != nil {
		totalCents = &j.Earnings.TotalCents
	}

	args := pgx.NamedArgs{
		"id":                  j.ID,
		"version":             j.Version,
		"status":              j.Status,
		"end_odometer":        j.EndOdometer,
		"ended_at":            j.EndedAt,
		"paused_odometer":     j.PausedOdometer,
		"pauses":              pauseList(j.Pauses),
		"earnings":            j.Earnings,
		"distance_km":         j.DistanceKm,
		"active_seconds":      j.ActiveSeconds,
		"total_cents":         totalCents,
		"rate_per_hour_cents": j.RatePerHourCents,
		"rate_per_km_cents":   j.RatePerKmCents,
	}

	row := r.db.QueryRow(ctx, q, args)
	result, err := scanJourney(row)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			// Either the row is gone or the version moved on; callers always
			// loaded the journey first, so treat both as a stale write.
			return domain.Journey{}, fmt.Errorf("repo.JourneyRepo.Update: stale version: %w", domain.ErrConflict)
		}
		return domain.Journey{}, fmt.Errorf("repo.JourneyRepo.Update: %w", err)
	}
	return result, nil
}

// SummaryForRange aggregates completed journeys started within [from, to).
func (r *pgJourneyRepo) SummaryForRange(ctx context.Context, from, to time.Time) (domain.DaySummary, error) {
	const q = `
		SELECT count(*),
		       coalesce(sum(distance_km), 0),
		       coalesce(sum(active_seconds), 0),
		       coalesce(sum(total_cents), 0)
		FROM journeys
		WHERE status = 'completed' AND started_at >= @from AND started_at < @to`

	var s domain.DaySummary
	row := r.db.QueryRow(ctx, q, pgx.NamedArgs{"from": from, "to": to})
	if err := row.Scan(&s.Journeys, &s.DistanceKm, &s.ActiveSeconds, &s.TotalCents); err != nil {
		return domain.DaySummary{}, fmt.Errorf("repo.JourneyRepo.SummaryForRange: %w", err)
	}
	return s, nil
}

// pauseList never hands NULL to the jsonb pauses column: an empty ledger is
// stored as [] so scanning round-trips cleanly.
func pauseList(pauses []domain.PauseInterval) []domain.PauseInterval {
	if pauses == nil {
		return []domain.PauseInterval{}
	}
	return pauses
}

// scanner is satisfied by both pgx.Row and pgx.Rows, allowing scanJourney to
// be reused for both QueryRow and Query calls.
type scanner interface {
	Scan(dest ...any) error
}

// scanJourney maps a single database row into a domain.Journey.
// The pauses and earnings jsonb columns decode through pgx's JSON codec.
func scanJourney(s scanner) (domain.Journey, error) {
	var (
		j         domain.Journey
		id        pgtype.UUID
		vehicleID pgtype.UUID
	)

	err := s.Scan(
		&id, &vehicleID, &j.Status, &j.StartOdometer, &j.StartedAt,
		&j.EndOdometer, &j.EndedAt, &j.PausedOdometer, &j.Pauses, &j.Earnings,
		&j.DistanceKm, &j.ActiveSeconds, new(*int64),
		&j.RatePerHourCents, &j.RatePerKmCents,
		&j.Version, &j.CreatedAt, &j.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Journey{}, domain.ErrNotFound
		}
		return domain.Journey{}, err
	}

	j.ID = uuid.UUID(id.Bytes)
	j.VehicleID = uuid.UUID(vehicleID.Bytes)
	if len(j.Pauses) == 0 {
		j.Pauses = nil
	}
	return j, nil
}
