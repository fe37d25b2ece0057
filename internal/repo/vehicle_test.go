package repo_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jornada-app/backend/internal/domain"
	"github.com/jornada-app/backend/internal/repo"
)

// vehicleFixture returns a domain.Vehicle with sensible defaults.
// Callers can override individual fields after calling this function.
func vehicleFixture() domain.Vehicle {
	return domain.Vehicle{
		Model: "Renault Logan",
		Plate: "QXF5C67",
	}
}

func TestVehicleRepo_Create(t *testing.T) {
	r := repo.NewVehicleRepo(newTestTx(t))
	ctx := context.Background()

	input := vehicleFixture()
	got, err := r.Create(ctx, input)

	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, got.ID, "ID should be DB-generated UUID")
	assert.Equal(t, input.Model, got.Model)
	assert.Equal(t, input.Plate, got.Plate)
	assert.False(t, got.CreatedAt.IsZero(), "CreatedAt should be set by DB")
	assert.False(t, got.UpdatedAt.IsZero(), "UpdatedAt should be set by DB")
}

func TestVehicleRepo_Create_DuplicatePlate(t *testing.T) {
	r := repo.NewVehicleRepo(newTestTx(t))
	ctx := context.Background()

	_, err := r.Create(ctx, vehicleFixture())
	require.NoError(t, err)

	_, err = r.Create(ctx, vehicleFixture())

	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestVehicleRepo_GetByID(t *testing.T) {
	r := repo.NewVehicleRepo(newTestTx(t))
	ctx := context.Background()

	created, err := r.Create(ctx, vehicleFixture())
	require.NoError(t, err)

	got, err := r.GetByID(ctx, created.ID)

	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)
	assert.Equal(t, created.Plate, got.Plate)
}

func TestVehicleRepo_GetByID_NotFound(t *testing.T) {
	r := repo.NewVehicleRepo(newTestTx(t))

	_, err := r.GetByID(context.Background(), uuid.New())

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestVehicleRepo_List_OrderedByModel(t *testing.T) {
	r := repo.NewVehicleRepo(newTestTx(t))
	ctx := context.Background()

	v1 := vehicleFixture()
	v1.Model = "Onix"
	v1.Plate = "AAA1A11"
	_, err := r.Create(ctx, v1)
	require.NoError(t, err)

	v2 := vehicleFixture()
	v2.Model = "HB20"
	v2.Plate = "BBB2B22"
	_, err = r.Create(ctx, v2)
	require.NoError(t, err)

	got, err := r.List(ctx)

	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "HB20", got[0].Model)
	assert.Equal(t, "Onix", got[1].Model)
}

func TestVehicleRepo_Update(t *testing.T) {
	r := repo.NewVehicleRepo(newTestTx(t))
	ctx := context.Background()

	created, err := r.Create(ctx, vehicleFixture())
	require.NoError(t, err)

	created.Model = "Renault Logan 1.6"
	got, err := r.Update(ctx, created)

	require.NoError(t, err)
	assert.Equal(t, "Renault Logan 1.6", got.Model)
}

func TestVehicleRepo_Update_NotFound(t *testing.T) {
	r := repo.NewVehicleRepo(newTestTx(t))

	v := vehicleFixture()
	v.ID = uuid.New()
	_, err := r.Update(context.Background(), v)

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestVehicleRepo_Delete(t *testing.T) {
	r := repo.NewVehicleRepo(newTestTx(t))
	ctx := context.Background()

	created, err := r.Create(ctx, vehicleFixture())
	require.NoError(t, err)

	require.NoError(t, r.Delete(ctx, created.ID))

	_, err = r.GetByID(ctx, created.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestVehicleRepo_Delete_NotFound(t *testing.T) {
	r := repo.NewVehicleRepo(newTestTx(t))

	err := r.Delete(context.Background(), uuid.New())

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestVehicleRepo_Delete_WithJourneys(t *testing.T) {
	tx := newTestTx(t)
	vehicles := repo.NewVehicleRepo(tx)
	journeys := repo.NewJourneyRepo(tx)
	ctx := context.Background()

	v, err := vehicles.Create(ctx, vehicleFixture())
	require.NoError(t, err)

	_, err = journeys.Create(ctx, domain.Journey{
		VehicleID:     v.ID,
		Status:        domain.JourneyActive,
		StartOdometer: 50000,
		StartedAt:     time.Now().UTC(),
	})
	require.NoError(t, err)

	err = vehicles.Delete(ctx, v.ID)

	assert.ErrorIs(t, err, domain.ErrConflict)
}
