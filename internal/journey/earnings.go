package journey

import (
	"fmt"

	"github.com/jornada-app/backend/internal/domain"
)

// EarningsInput is the per-platform amount a driver reports at finish time.
// Exactly one form must be used: a single AmountCents, or a BeforeCents /
// AfterCents pair when the platform's accounting-day boundary was crossed.
// A pair with one side omitted treats the missing side as zero.
type EarningsInput struct {
	Platform    string `json:"platform"`
	AmountCents *int64 `json:"amount_cents,omitempty"`
	BeforeCents *int64 `json:"before_cents,omitempty"`
	AfterCents  *int64 `json:"after_cents,omitempty"`
}

// split reports whether the input uses the before/after pair form.
func (in EarningsInput) split() bool {
	return in.BeforeCents != nil || in.AfterCents != nil
}

// Attribute reduces the per-platform earnings inputs to a frozen
// EarningsSummary, validating each input against the detected crossings.
//
// Rules:
//   - Any negative component fails with ErrNegativeAmount.
//   - Both forms on one input fail with ErrAmbiguousEarnings.
//   - The pair form is only accepted when the platform's boundary was
//     crossed; otherwise ErrUnexpectedSplit.
//   - A single amount for a platform that did cross is accepted and recorded
//     as {before: amount, after: 0}: drivers who earned nothing after the
//     boundary just fill one field.
//
// All arithmetic is integer minor units; TotalCents is exactly the sum of
// every component of every input.
func Attribute(inputs []EarningsInput, crossings []Crossing) (domain.EarningsSummary, error) {
	crossed := make(map[string]bool, len(crossings))
	for _, c := range crossings {
		crossed[c.Platform] = c.Crossed
	}

	var summary domain.EarningsSummary
	seen := make(map[string]bool, len(inputs))

	for _, in := range inputs {
		if seen[in.Platform] {
			return domain.EarningsSummary{}, fmt.Errorf("%w %q", ErrDuplicatePlatform, in.Platform)
		}
		seen[in.Platform] = true

		pe, err := attributeOne(in, crossed[in.Platform])
		if err != nil {
			return domain.EarningsSummary{}, err
		}
		summary.Platforms = append(summary.Platforms, pe)
		summary.TotalCents += pe.TotalCents()
	}

	return summary, nil
}

func attributeOne(in EarningsInput, crossed bool) (domain.PlatformEarnings, error) {
	if in.AmountCents != nil && in.split() {
		return domain.PlatformEarnings{}, fmt.Errorf("%w (platform %q)", ErrAmbiguousEarnings, in.Platform)
	}

	pe := domain.PlatformEarnings{Platform: in.Platform, Split: crossed}

	switch {
	case in.split():
		if !crossed {
			return domain.PlatformEarnings{}, fmt.Errorf("%w (platform %q)", ErrUnexpectedSplit, in.Platform)
		}
		pe.BeforeCents = cents(in.BeforeCents)
		pe.AfterCents = cents(in.AfterCents)
	case in.AmountCents != nil:
		pe.BeforeCents = *in.AmountCents
	}

	if pe.BeforeCents < 0 || pe.AfterCents < 0 {
		return domain.PlatformEarnings{}, fmt.Errorf("%w (platform %q)", ErrNegativeAmount, in.Platform)
	}
	return pe, nil
}

func cents(v *int64) int64 {
	if v == nil {
		return 0
	}
	return *v
}
