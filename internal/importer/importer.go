// Package importer turns Strava bulk-export files into activity documents.
package importer

import (
	"context"
	"math"

	"github.com/jengzang/running-records-go/internal/models"
)

// DocumentInserter stores documents and returns their ids.
type DocumentInserter interface {
	Insert(ctx context.Context, docs []models.Document) ([]string, error)
}

// Result summarizes one import run.
type Result struct {
	Imported int `json:"imported"`
	Skipped  int `json:"skipped"`
}

// Add accumulates r2 into r.
func (r *Result) Add(r2 Result) {
	r.Imported += r2.Imported
	r.Skipped += r2.Skipped
}

// Extra document fields written by the importers.
const (
	fieldElevationLow     = "elevation_low"
	fieldElevationHigh    = "elevation_high"
	fieldFilename         = "filename"
	fieldMaxSpeed         = "max_speed"
	fieldMaxHeartRate     = "max_heart_rate"
	fieldAverageHeartRate = "average_heart_rate"
	fieldTotalWork        = "total_work"
	fieldSplits           = "splits"
)

// PaceFromSpeed converts an average speed in m/s to min/km rounded to two
// decimals. A zero or invalid speed has no pace.
func PaceFromSpeed(mps float64) (float64, bool) {
	if math.IsNaN(mps) || math.IsInf(mps, 0) || mps <= 0 {
		return 0, false
	}
	return round2(60 / (mps * 3.6)), true
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
