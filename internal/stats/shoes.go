package stats

import (
	"sort"

	"github.com/jengzang/running-records-go/internal/models"
)

// FastestPace maps a shoe to the fastest (lowest) pace run in it. It is the
// shoe-level side of the per-record join: look a record's shoe up here rather
// than copying the value onto every record.
type FastestPace map[string]float64

// PaceFor returns the fastest pace of the record's shoe.
func (f FastestPace) PaceFor(r models.ActivityRecord) (float64, bool) {
	v, ok := f[r.ShoeName]
	return v, ok
}

// FastestPaceByShoe computes the minimum pace per shoe, excluding Unknown.
func FastestPaceByShoe(records []models.ActivityRecord) FastestPace {
	paces := make(map[string][]float64)
	for _, r := range records {
		if !r.HasKnownShoe() {
			continue
		}
		paces[r.ShoeName] = append(paces[r.ShoeName], r.PaceMinPerKm)
	}

	out := make(FastestPace, len(paces))
	for shoe, values := range paces {
		out[shoe] = Min(values)
	}
	return out
}

// Table flattens the map into rows ordered by shoe name.
func (f FastestPace) Table() []models.ShoeFastestPace {
	out := make([]models.ShoeFastestPace, 0, len(f))
	for shoe, pace := range f {
		out = append(out, models.ShoeFastestPace{ShoeName: shoe, FastestPaceMinPerKm: pace})
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].ShoeName < out[j].ShoeName
	})
	return out
}

// ShoeFastestPaces is FastestPaceByShoe(records).Table().
func ShoeFastestPaces(records []models.ActivityRecord) []models.ShoeFastestPace {
	return FastestPaceByShoe(records).Table()
}

// ShoeUsage counts runs per shoe, excluding Unknown, most used first. SharePct
// is relative to the runs with a known shoe.
func ShoeUsage(records []models.ActivityRecord) []models.ShoeUsage {
	counts := make(map[string]int)
	total := 0
	for _, r := range records {
		if !r.HasKnownShoe() {
			continue
		}
		counts[r.ShoeName]++
		total++
	}

	out := make([]models.ShoeUsage, 0, len(counts))
	for shoe, n := range counts {
		out = append(out, models.ShoeUsage{
			ShoeName: shoe,
			RunCount: n,
			SharePct: float64(n) / float64(total) * 100,
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].RunCount != out[j].RunCount {
			return out[i].RunCount > out[j].RunCount
		}
		return out[i].ShoeName < out[j].ShoeName
	})
	return out
}
