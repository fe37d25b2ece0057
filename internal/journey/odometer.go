package journey

import "fmt"

// ValidateOdometer checks a candidate odometer reading against the previous
// accepted reading. Readings are kilometers and must never decrease over the
// life of a journey.
//
// Returns ErrOdometerInvalid for a negative candidate and
// ErrOdometerRegression when candidate < previous. Non-numeric input never
// reaches this function: JSON decoding rejects it at the transport edge.
func ValidateOdometer(previous, candidate int64) error {
	if candidate < 0 {
		return fmt.Errorf("%w: got %d", ErrOdometerInvalid, candidate)
	}
	if candidate < previous {
		return fmt.Errorf("%w: got %d, previous was %d", ErrOdometerRegression, candidate, previous)
	}
	return nil
}
