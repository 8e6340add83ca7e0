package stats

import (
	"sort"

	"github.com/jengzang/running-records-go/internal/models"
)

// RollingWindow is the number of runs in the smoothed pace signal.
const RollingWindow = 3

// Summary bundles the derived tables of one record collection.
type Summary struct {
	Monthly     []models.MonthlyAggregate `json:"monthly"`
	FastestPace []models.ShoeFastestPace  `json:"fastest_pace"`
	ShoeUsage   []models.ShoeUsage        `json:"shoe_usage"`
}

// Aggregate computes every derived table. It holds no state between calls.
func Aggregate(records []models.ActivityRecord) Summary {
	return Summary{
		Monthly:     Monthly(records),
		FastestPace: ShoeFastestPaces(records),
		ShoeUsage:   ShoeUsage(records),
	}
}

// RollingPace orders records by timestamp and smooths pace over window runs.
// The first window-1 points carry no rolling value.
func RollingPace(records []models.ActivityRecord, window int) []models.RollingPace {
	ordered := make([]models.ActivityRecord, len(records))
	copy(ordered, records)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Timestamp.Before(ordered[j].Timestamp)
	})

	paces := make([]float64, len(ordered))
	for i, r := range ordered {
		paces[i] = r.PaceMinPerKm
	}
	smoothed := MovingAverage(paces, window)

	out := make([]models.RollingPace, len(ordered))
	for i, r := range ordered {
		out[i] = models.RollingPace{
			Timestamp:           r.Timestamp,
			PaceMinPerKm:        r.PaceMinPerKm,
			RollingPaceMinPerKm: smoothed[i],
		}
	}
	return out
}
