package journey_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/jornada-app/backend/internal/domain"
	"github.com/jornada-app/backend/internal/journey"
)

func TestActiveDuration_LiveJourneyUsesNow(t *testing.T) {
	j := domain.Journey{
		Status:    domain.JourneyActive,
		StartedAt: at(10, 0),
	}

	active, skew := journey.ActiveDuration(j, at(11, 30))

	assert.Equal(t, 90*time.Minute, active)
	assert.False(t, skew)
}

func TestActiveDuration_SubtractsPausedTime(t *testing.T) {
	resumed := at(11, 0)
	km := int64(100)
	j := domain.Journey{
		Status:    domain.JourneyActive,
		StartedAt: at(10, 0),
		Pauses: []domain.PauseInterval{
			{PausedAt: at(10, 30), PauseOdometer: km, ResumedAt: &resumed, ResumeOdometer: &km},
		},
	}

	active, skew := journey.ActiveDuration(j, at(12, 0))

	assert.Equal(t, 90*time.Minute, active)
	assert.False(t, skew)
}

func TestActiveDuration_OpenPauseCountsUpToNow(t *testing.T) {
	j := domain.Journey{
		Status:    domain.JourneyPaused,
		StartedAt: at(10, 0),
		Pauses: []domain.PauseInterval{
			{PausedAt: at(10, 30), PauseOdometer: 100},
		},
	}

	// Paused since 10:30; at 11:00 only the first 30 minutes were active.
	active, _ := journey.ActiveDuration(j, at(11, 0))

	assert.Equal(t, 30*time.Minute, active)
}

func TestActiveDuration_CompletedJourneyUsesEndTime(t *testing.T) {
	ended := at(12, 0)
	j := domain.Journey{
		Status:    domain.JourneyCompleted,
		StartedAt: at(10, 0),
		EndedAt:   &ended,
	}

	// "now" long after completion must not change the result.
	active, _ := journey.ActiveDuration(j, at(18, 0))

	assert.Equal(t, 2*time.Hour, active)
}

func TestActiveDuration_ClockSkewClampsToZero(t *testing.T) {
	j := domain.Journey{
		Status:    domain.JourneyActive,
		StartedAt: at(12, 0),
	}

	active, skew := journey.ActiveDuration(j, at(11, 0))

	assert.Zero(t, active)
	assert.True(t, skew)
}
