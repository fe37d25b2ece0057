package handler_test

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jornada-app/backend/internal/domain"
	"github.com/jornada-app/backend/internal/handler"
)

// mockVehicleServicer is a hand-written test double for handler.VehicleServicer.
type mockVehicleServicer struct {
	create  func(ctx context.Context, v domain.Vehicle) (domain.Vehicle, error)
	getByID func(ctx context.Context, id uuid.UUID) (domain.Vehicle, error)
	list    func(ctx context.Context) ([]domain.Vehicle, error)
	update  func(ctx context.Context, v domain.Vehicle) (domain.Vehicle, error)
	delete  func(ctx context.Context, id uuid.UUID) error
}

func (m *mockVehicleServicer) Create(ctx context.Context, v domain.Vehicle) (domain.Vehicle, error) {
	return m.create(ctx, v)
}
func (m *mockVehicleServicer) GetByID(ctx context.Context, id uuid.UUID) (domain.Vehicle, error) {
	return m.getByID(ctx, id)
}
func (m *mockVehicleServicer) List(ctx context.Context) ([]domain.Vehicle, error) {
	return m.list(ctx)
}
func (m *mockVehicleServicer) Update(ctx context.Context, v domain.Vehicle) (domain.Vehicle, error) {
	return m.update(ctx, v)
}
func (m *mockVehicleServicer) Delete(ctx context.Context, id uuid.UUID) error {
	return m.delete(ctx, id)
}

var _ handler.VehicleServicer = (*mockVehicleServicer)(nil)

// ---- create ----------------------------------------------------------------

func TestCreateVehicle_Created(t *testing.T) {
	srv := newTestServer(nil, &mockVehicleServicer{
		create: func(_ context.Context, v domain.Vehicle) (domain.Vehicle, error) {
			v.ID = uuid.New()
			return v, nil
		},
	})

	rec := doRequest(t, srv, http.MethodPost, "/vehicles", `{"model":"Renault Logan","plate":"QXF5C67"}`)

	require.Equal(t, http.StatusCreated, rec.Code)
	var v domain.Vehicle
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v))
	assert.NotEqual(t, uuid.Nil, v.ID)
	assert.Equal(t, "QXF5C67", v.Plate)
}

func TestCreateVehicle_DuplicatePlate(t *testing.T) {
	srv := newTestServer(nil, &mockVehicleServicer{
		create: func(_ context.Context, _ domain.Vehicle) (domain.Vehicle, error) {
			return domain.Vehicle{}, domain.ErrConflict
		},
	})

	rec := doRequest(t, srv, http.MethodPost, "/vehicles", `{"model":"Onix","plate":"ABC1D23"}`)

	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "conflict", errorCode(t, rec))
}

func TestCreateVehicle_ValidationError(t *testing.T) {
	srv := newTestServer(nil, &mockVehicleServicer{
		create: func(_ context.Context, _ domain.Vehicle) (domain.Vehicle, error) {
			return domain.Vehicle{}, domain.ErrValidation
		},
	})

	rec := doRequest(t, srv, http.MethodPost, "/vehicles", `{"model":"","plate":""}`)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

// ---- reads -----------------------------------------------------------------

func TestGetVehicle_NotFound(t *testing.T) {
	srv := newTestServer(nil, &mockVehicleServicer{
		getByID: func(_ context.Context, _ uuid.UUID) (domain.Vehicle, error) {
			return domain.Vehicle{}, domain.ErrNotFound
		},
	})

	rec := doRequest(t, srv, http.MethodGet, "/vehicles/"+uuid.NewString(), "")

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestListVehicles_OK(t *testing.T) {
	srv := newTestServer(nil, &mockVehicleServicer{
		list: func(_ context.Context) ([]domain.Vehicle, error) {
			return []domain.Vehicle{{ID: uuid.New(), Model: "Logan", Plate: "QXF5C67"}}, nil
		},
	})

	rec := doRequest(t, srv, http.MethodGet, "/vehicles", "")

	require.Equal(t, http.StatusOK, rec.Code)
	var body struct {
		Data []domain.Vehicle `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Len(t, body.Data, 1)
}

// ---- update / delete -------------------------------------------------------

func TestUpdateVehicle_UsesPathID(t *testing.T) {
	id := uuid.New()
	srv := newTestServer(nil, &mockVehicleServicer{
		update: func(_ context.Context, v domain.Vehicle) (domain.Vehicle, error) {
			assert.Equal(t, id, v.ID)
			return v, nil
		},
	})

	rec := doRequest(t, srv, http.MethodPut, "/vehicles/"+id.String(), `{"model":"Logan","plate":"QXF5C67"}`)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestDeleteVehicle_NoContent(t *testing.T) {
	srv := newTestServer(nil, &mockVehicleServicer{
		delete: func(_ context.Context, _ uuid.UUID) error { return nil },
	})

	rec := doRequest(t, srv, http.MethodDelete, "/vehicles/"+uuid.NewString(), "")

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, rec.Body.String())
}

func TestDeleteVehicle_WithJourneysConflicts(t *testing.T) {
	srv := newTestServer(nil, &mockVehicleServicer{
		delete: func(_ context.Context, _ uuid.UUID) error { return domain.ErrConflict },
	})

	rec := doRequest(t, srv, http.MethodDelete, "/vehicles/"+uuid.NewString(), "")

	assert.Equal(t, http.StatusConflict, rec.Code)
}
