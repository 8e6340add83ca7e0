package models

import "time"

// MonthlyAggregate summarizes the runs of one calendar month.
type MonthlyAggregate struct {
	Month               string  `json:"month"` // YYYY-MM
	TotalDistanceKm     float64 `json:"total_distance_km"`
	AvgPaceMinPerKm     float64 `json:"avg_pace_min_per_km"`
	TotalElevationGainM float64 `json:"total_elevation_gain_m"`
	RunCount            int     `json:"run_count"`
}

// ShoeFastestPace is the best pace achieved with one shoe.
type ShoeFastestPace struct {
	ShoeName            string  `json:"shoe_name"`
	FastestPaceMinPerKm float64 `json:"fastest_pace_min_per_km"`
}

// ShoeUsage counts runs per shoe.
type ShoeUsage struct {
	ShoeName string  `json:"shoe_name"`
	RunCount int     `json:"run_count"`
	SharePct float64 `json:"share_pct"`
}

// RollingPace is one point of the smoothed pace series.
type RollingPace struct {
	Timestamp           time.Time `json:"timestamp"`
	PaceMinPerKm        float64   `json:"pace_min_per_km"`
	RollingPaceMinPerKm *float64  `json:"rolling_pace_min_per_km"`
}
