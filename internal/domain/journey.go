// Package domain contains the core data types for the Jornada API.
// This package has zero external dependencies beyond uuid and is imported by
// every other internal package (journey, repo, service, handler).
package domain

import (
	"time"

	"github.com/google/uuid"
)

// JourneyStatus is the lifecycle state of a Journey.
type JourneyStatus string

const (
	// JourneyActive means the driver is working and time is accruing.
	JourneyActive JourneyStatus = "active"
	// JourneyPaused means the driver has stopped temporarily; paused time is
	// excluded from the active duration.
	JourneyPaused JourneyStatus = "paused"
	// JourneyCompleted is terminal; earnings are frozen on completion.
	JourneyCompleted JourneyStatus = "completed"
	// JourneyCancelled is terminal; no earnings or derived stats are kept.
	JourneyCancelled JourneyStatus = "cancelled"
)

// Terminal reports whether the status permits no further transitions.
func (s JourneyStatus) Terminal() bool {
	return s == JourneyCompleted || s == JourneyCancelled
}

// Open reports whether the journey counts against the one-open-journey-per-
// vehicle rule.
func (s JourneyStatus) Open() bool {
	return s == JourneyActive || s == JourneyPaused
}

// PauseInterval records one span during which a journey was paused.
// ResumedAt and ResumeOdometer are nil while the pause is still open; a
// journey has at most one open interval, and only while status is paused.
type PauseInterval struct {
	PausedAt       time.Time  `json:"paused_at"`
	PauseOdometer  int64      `json:"pause_odometer"`
	ResumedAt      *time.Time `json:"resumed_at,omitempty"`
	ResumeOdometer *int64     `json:"resume_odometer,omitempty"`
}

// Open reports whether the interval has not been resumed yet.
func (p PauseInterval) Open() bool {
	return p.ResumedAt == nil
}

// PlatformEarnings is the finalized amount reported for one ride platform.
// When the journey crossed the platform's accounting-day boundary the amount
// is kept as a {before, after} pair and Split is true; otherwise the whole
// amount sits in BeforeCents.
type PlatformEarnings struct {
	Platform    string `json:"platform"`
	BeforeCents int64  `json:"before_cents"`
	AfterCents  int64  `json:"after_cents"`
	Split       bool   `json:"split"`
}

// TotalCents returns the platform's combined amount in minor currency units.
func (p PlatformEarnings) TotalCents() int64 {
	return p.BeforeCents + p.AfterCents
}

// EarningsSummary is the immutable earnings breakdown frozen when a journey
// completes. TotalCents is always the integer sum of every platform component.
type EarningsSummary struct {
	Platforms  []PlatformEarnings `json:"platforms"`
	TotalCents int64              `json:"total_cents"`
}

// Journey is the aggregate root for a single tracked work session.
// All transitions produce a new snapshot; nothing mutates a Journey in place.
type Journey struct {
	ID        uuid.UUID     `json:"id"`
	VehicleID uuid.UUID     `json:"vehicle_id"`
	Status    JourneyStatus `json:"status"`

	StartOdometer int64     `json:"start_odometer"`
	StartedAt     time.Time `json:"started_at"`

	// Set only when Status is completed.
	EndOdometer *int64     `json:"end_odometer,omitempty"`
	EndedAt     *time.Time `json:"ended_at,omitempty"`

	// PausedOdometer is the reading recorded at the most recent pause.
	// Present iff Status is paused; cleared on resume.
	PausedOdometer *int64 `json:"paused_odometer,omitempty"`

	Pauses []PauseInterval `json:"pauses,omitempty"`

	// Earnings is present iff Status is completed.
	Earnings *EarningsSummary `json:"earnings,omitempty"`

	// Derived stats, computed once at completion.
	// DistanceKm is net of kilometers driven while paused.
	DistanceKm       *int64 `json:"distance_km,omitempty"`
	ActiveSeconds    *int64 `json:"active_seconds,omitempty"`
	RatePerHourCents *int64 `json:"rate_per_hour_cents,omitempty"`
	RatePerKmCents   *int64 `json:"rate_per_km_cents,omitempty"`

	// Version supports optimistic concurrency: updates only apply when the
	// stored version matches, so two racing writers cannot both win.
	Version   int64     `json:"version"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// LastOdometer returns the most recent accepted odometer reading in
// chronological order: resume of the last closed pause, an open pause, or the
// start reading for a journey that has never paused.
func (j Journey) LastOdometer() int64 {
	last := j.StartOdometer
	for _, p := range j.Pauses {
		if p.PauseOdometer > last {
			last = p.PauseOdometer
		}
		if p.ResumeOdometer != nil && *p.ResumeOdometer > last {
			last = *p.ResumeOdometer
		}
	}
	if j.EndOdometer != nil && *j.EndOdometer > last {
		last = *j.EndOdometer
	}
	return last
}

// OpenPause returns the index of the open pause interval, or -1 if none.
func (j Journey) OpenPause() int {
	for i, p := range j.Pauses {
		if p.Open() {
			return i
		}
	}
	return -1
}

// DaySummary aggregates the completed journeys of a single local day for the
// dashboard view.
type DaySummary struct {
	Journeys      int   `json:"journeys"`
	DistanceKm    int64 `json:"distance_km"`
	ActiveSeconds int64 `json:"active_seconds"`
	TotalCents    int64 `json:"total_cents"`
}
