package stats

import (
	"sort"
	"time"

	"github.com/jengzang/running-records-go/internal/models"
)

// MonthLayout formats a month key.
const MonthLayout = "2006-01"

// MonthKey truncates t to its calendar month, e.g. "2024-03". Every monthly
// view partitions with this function.
func MonthKey(t time.Time) string {
	return t.Format(MonthLayout)
}

// Monthly groups records by month. Distance and elevation are summed; pace is
// the plain mean over runs, not weighted by distance. Only months that occur
// in records are returned, ordered by month key.
func Monthly(records []models.ActivityRecord) []models.MonthlyAggregate {
	type bucket struct {
		distance  []float64
		pace      []float64
		elevation []float64
	}

	buckets := make(map[string]*bucket)
	for _, r := range records {
		key := MonthKey(r.Timestamp)
		b, ok := buckets[key]
		if !ok {
			b = &bucket{}
			buckets[key] = b
		}
		b.distance = append(b.distance, r.DistanceKm)
		b.pace = append(b.pace, r.PaceMinPerKm)
		b.elevation = append(b.elevation, r.ElevationGainM)
	}

	out := make([]models.MonthlyAggregate, 0, len(buckets))
	for key, b := range buckets {
		out = append(out, models.MonthlyAggregate{
			Month:               key,
			TotalDistanceKm:     Sum(b.distance),
			AvgPaceMinPerKm:     Mean(b.pace),
			TotalElevationGainM: Sum(b.elevation),
			RunCount:            len(b.pace),
		})
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].Month < out[j].Month
	})
	return out
}
