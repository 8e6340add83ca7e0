package models

import "time"

// UnknownShoe marks a run with no equipment assigned.
const UnknownShoe = "Unknown"

// ActivityRecord is one cleaned, typed run.
type ActivityRecord struct {
	Timestamp      time.Time `json:"timestamp"`
	DistanceKm     float64   `json:"distance_km"`
	PaceMinPerKm   float64   `json:"pace_min_per_km"`
	ElevationGainM float64   `json:"elevation_gain_m"`
	ShoeName       string    `json:"shoe_name"`
	Calories       *float64  `json:"calories,omitempty"`
}

// HasKnownShoe reports whether the run has equipment assigned.
func (r ActivityRecord) HasKnownShoe() bool {
	return r.ShoeName != UnknownShoe
}

// DateRange is a closed-open interval [Start, End).
type DateRange struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Contains reports whether t falls inside the range.
func (r DateRange) Contains(t time.Time) bool {
	return !t.Before(r.Start) && t.Before(r.End)
}

// IsZero reports whether neither bound is set.
func (r DateRange) IsZero() bool {
	return r.Start.IsZero() && r.End.IsZero()
}
