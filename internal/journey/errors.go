// Package journey implements the work-session lifecycle engine: odometer
// validation, pause bookkeeping, elapsed-time arithmetic, accounting-day
// boundary detection, and earnings attribution.
//
// The package is pure: no I/O, no clock reads. Every time-dependent function
// takes its evaluation instant as a parameter, and every transition returns a
// new domain.Journey snapshot instead of mutating its input. Persistence and
// transport are the caller's problem.
package journey

import (
	"fmt"

	"github.com/jornada-app/backend/internal/domain"
)

// Engine errors wrap the domain sentinels so handlers can map them to HTTP
// statuses with errors.Is, while tests can still match the specific cause.
var (
	// ErrOdometerInvalid rejects readings that are not non-negative numbers.
	ErrOdometerInvalid = fmt.Errorf("%w: odometer reading must be a non-negative number", domain.ErrValidation)

	// ErrOdometerRegression rejects readings lower than the previous accepted one.
	ErrOdometerRegression = fmt.Errorf("%w: odometer reading is lower than the previous reading", domain.ErrValidation)

	// ErrAlreadyPaused rejects opening a pause while one is already open.
	ErrAlreadyPaused = fmt.Errorf("%w: journey already has an open pause", domain.ErrConflict)

	// ErrNoOpenPause rejects closing a pause when none is open.
	ErrNoOpenPause = fmt.Errorf("%w: journey has no open pause", domain.ErrConflict)

	// ErrNonMonotonicTime rejects a resume or finish instant that does not
	// strictly follow the open pause's start.
	ErrNonMonotonicTime = fmt.Errorf("%w: timestamp must be after the pause started", domain.ErrValidation)

	// ErrNegativeAmount rejects any negative earnings component.
	ErrNegativeAmount = fmt.Errorf("%w: earnings amounts must not be negative", domain.ErrValidation)

	// ErrUnexpectedSplit rejects a before/after earnings pair for a platform
	// whose accounting-day boundary was not crossed during the journey.
	ErrUnexpectedSplit = fmt.Errorf("%w: split earnings supplied but no day boundary was crossed", domain.ErrValidation)

	// ErrAmbiguousEarnings rejects an input carrying both a single amount and
	// a before/after pair for the same platform.
	ErrAmbiguousEarnings = fmt.Errorf("%w: provide either a single amount or a before/after pair, not both", domain.ErrValidation)

	// ErrDuplicatePlatform rejects two earnings inputs for the same platform.
	ErrDuplicatePlatform = fmt.Errorf("%w: duplicate earnings input for platform", domain.ErrValidation)

	// ErrInvalidTransition rejects a lifecycle command not allowed from the
	// journey's current status (e.g. pausing a completed journey).
	ErrInvalidTransition = fmt.Errorf("%w: invalid journey transition", domain.ErrConflict)
)
