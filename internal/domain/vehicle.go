package domain

import (
	"time"

	"github.com/google/uuid"
)

// Vehicle is a driver's registered car. Journeys reference vehicles by ID;
// deleting a vehicle with journey history is rejected at the database level.
type Vehicle struct {
	ID        uuid.UUID `json:"id"`
	Model     string    `json:"model"`
	Plate     string    `json:"plate"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
