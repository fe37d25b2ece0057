package domain

import "errors"

// ErrNotFound is returned by repo and service functions when the requested
// resource does not exist in the database.
// Handlers should map this to HTTP 404.
var ErrNotFound = errors.New("not found")

// ErrValidation is returned by service and engine functions when input fails
// business rule validation (e.g. odometer regression, negative amount).
// Handlers should map this to HTTP 422 Unprocessable Entity.
var ErrValidation = errors.New("validation error")

// ErrConflict is returned when an operation clashes with current state:
// an invalid lifecycle transition, a second open journey for the same
// vehicle, or a stale-version write.
// Handlers should map this to HTTP 409 Conflict.
var ErrConflict = errors.New("conflict")
