// Package export serializes cleaned activity records to flat tables.
package export

import (
	"strconv"
	"time"

	"github.com/jengzang/running-records-go/internal/models"
)

// Columns is the fixed column order of every export format.
var Columns = []string{
	"timestamp",
	"distance_km",
	"pace_min_per_km",
	"elevation_gain_m",
	"shoe_name",
	"calories",
}

// Formats supported by Write.
const (
	FormatCSV     = "csv"
	FormatParquet = "parquet"
	FormatXLSX    = "xlsx"
)

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func formatTime(t time.Time) string {
	return t.Format(time.RFC3339)
}

// row renders one record as strings in Columns order.
func row(r models.ActivityRecord) []string {
	calories := ""
	if r.Calories != nil {
		calories = formatFloat(*r.Calories)
	}
	return []string{
		formatTime(r.Timestamp),
		formatFloat(r.DistanceKm),
		formatFloat(r.PaceMinPerKm),
		formatFloat(r.ElevationGainM),
		r.ShoeName,
		calories,
	}
}
