package journey_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jornada-app/backend/internal/journey"
)

func cents(v int64) *int64 { return &v }

func noCrossings() []journey.Crossing {
	return []journey.Crossing{
		{Platform: journey.Platform99, Crossed: false},
		{Platform: journey.PlatformUber, Crossed: false},
	}
}

func crossed(platforms ...string) []journey.Crossing {
	out := noCrossings()
	for i := range out {
		for _, p := range platforms {
			if out[i].Platform == p {
				out[i].Crossed = true
			}
		}
	}
	return out
}

// ---- totals ----------------------------------------------------------------

func TestAttribute_TotalIsSumOfAllComponents(t *testing.T) {
	// 99 split {before: 2000, after: 1500} plus Uber single 3000 → 6500.
	inputs := []journey.EarningsInput{
		{Platform: journey.Platform99, BeforeCents: cents(2000), AfterCents: cents(1500)},
		{Platform: journey.PlatformUber, AmountCents: cents(3000)},
	}

	summary, err := journey.Attribute(inputs, crossed(journey.Platform99))

	require.NoError(t, err)
	assert.Equal(t, int64(6500), summary.TotalCents)
	require.Len(t, summary.Platforms, 2)
	assert.Equal(t, int64(3500), summary.Platforms[0].TotalCents())
	assert.Equal(t, int64(3000), summary.Platforms[1].TotalCents())
}

func TestAttribute_NoInputsYieldsZeroTotal(t *testing.T) {
	summary, err := journey.Attribute(nil, noCrossings())

	require.NoError(t, err)
	assert.Zero(t, summary.TotalCents)
	assert.Empty(t, summary.Platforms)
}

// ---- split policy ----------------------------------------------------------

func TestAttribute_SplitWithoutCrossingIsRejected(t *testing.T) {
	inputs := []journey.EarningsInput{
		{Platform: journey.PlatformUber, BeforeCents: cents(1000), AfterCents: cents(500)},
	}

	_, err := journey.Attribute(inputs, noCrossings())

	assert.ErrorIs(t, err, journey.ErrUnexpectedSplit)
}

func TestAttribute_SingleAmountWithCrossingIsAcceptedAsBeforeBucket(t *testing.T) {
	// Lenient policy: a crossing happened but the driver reports one number —
	// it lands in the pre-boundary bucket with an implicit zero after.
	inputs := []journey.EarningsInput{
		{Platform: journey.Platform99, AmountCents: cents(4200)},
	}

	summary, err := journey.Attribute(inputs, crossed(journey.Platform99))

	require.NoError(t, err)
	require.Len(t, summary.Platforms, 1)
	pe := summary.Platforms[0]
	assert.True(t, pe.Split)
	assert.Equal(t, int64(4200), pe.BeforeCents)
	assert.Zero(t, pe.AfterCents)
}

func TestAttribute_SplitWithOneSideOmittedTreatsItAsZero(t *testing.T) {
	inputs := []journey.EarningsInput{
		{Platform: journey.Platform99, AfterCents: cents(700)},
	}

	summary, err := journey.Attribute(inputs, crossed(journey.Platform99))

	require.NoError(t, err)
	assert.Equal(t, int64(700), summary.TotalCents)
	assert.Zero(t, summary.Platforms[0].BeforeCents)
}

// ---- rejections ------------------------------------------------------------

func TestAttribute_NegativeAmountIsRejected(t *testing.T) {
	for name, inputs := range map[string][]journey.EarningsInput{
		"single": {{Platform: journey.PlatformUber, AmountCents: cents(-1)}},
		"before": {{Platform: journey.Platform99, BeforeCents: cents(-100), AfterCents: cents(500)}},
		"after":  {{Platform: journey.Platform99, BeforeCents: cents(100), AfterCents: cents(-500)}},
	} {
		t.Run(name, func(t *testing.T) {
			_, err := journey.Attribute(inputs, crossed(journey.Platform99))
			assert.ErrorIs(t, err, journey.ErrNegativeAmount)
		})
	}
}

func TestAttribute_BothFormsOnOneInputIsRejected(t *testing.T) {
	inputs := []journey.EarningsInput{
		{Platform: journey.Platform99, AmountCents: cents(100), BeforeCents: cents(50)},
	}

	_, err := journey.Attribute(inputs, crossed(journey.Platform99))

	assert.ErrorIs(t, err, journey.ErrAmbiguousEarnings)
}

func TestAttribute_DuplicatePlatformIsRejected(t *testing.T) {
	inputs := []journey.EarningsInput{
		{Platform: journey.PlatformUber, AmountCents: cents(100)},
		{Platform: journey.PlatformUber, AmountCents: cents(200)},
	}

	_, err := journey.Attribute(inputs, noCrossings())

	assert.ErrorIs(t, err, journey.ErrDuplicatePlatform)
}

func TestAttribute_UnknownPlatformIsTreatedAsNotCrossed(t *testing.T) {
	inputs := []journey.EarningsInput{
		{Platform: "indrive", AmountCents: cents(900)},
	}

	summary, err := journey.Attribute(inputs, noCrossings())

	require.NoError(t, err)
	assert.Equal(t, int64(900), summary.TotalCents)
	assert.False(t, summary.Platforms[0].Split)
}
