package service

import (
	"context"
	"fmt"

	"github.com/jengzang/running-records-go/internal/models"
	"github.com/jengzang/running-records-go/internal/stats"
)

// ActivityLoader loads cleaned activity records for a date range.
type ActivityLoader interface {
	DefaultRange() models.DateRange
	LoadRange(ctx context.Context, rng models.DateRange) ([]models.ActivityRecord, error)
}

// Query selects the runs a dashboard view is computed over
type Query struct {
	Range          models.DateRange // zero selects the loader's default window
	Shoe           string           // empty selects every shoe
	ExcludeUnknown bool
}

// Dashboard is everything the front end draws for one query.
type Dashboard struct {
	Range       models.DateRange          `json:"range"`
	Activities  []models.ActivityRecord   `json:"activities"`
	Monthly     []models.MonthlyAggregate `json:"monthly"`
	FastestPace []models.ShoeFastestPace  `json:"fastest_pace"`
	ShoeUsage   []models.ShoeUsage        `json:"shoe_usage"`
	RollingPace []models.RollingPace      `json:"rolling_pace"`
}

// DashboardService handles business logic for the dashboard views
type DashboardService struct {
	loader ActivityLoader
}

// NewDashboardService creates a new dashboard service
func NewDashboardService(loader ActivityLoader) *DashboardService {
	return &DashboardService{loader: loader}
}

// Dashboard loads the range once and derives every view from it.
//
// The fastest-pace table is computed over the unfiltered load, so it always
// reports each shoe's overall best; a shoe selection only narrows it to that
// shoe's row. Every other view is computed over the filtered copy.
func (s *DashboardService) Dashboard(ctx context.Context, q Query) (*Dashboard, error) {
	rng, err := s.resolveRange(q.Range)
	if err != nil {
		return nil, err
	}

	all, err := s.loader.LoadRange(ctx, rng)
	if err != nil {
		return nil, err
	}

	fastest := stats.FastestPaceByShoe(all).Table()
	if q.Shoe != "" {
		fastest = selectShoe(fastest, q.Shoe)
	}

	filtered := Filter(all, q)
	return &Dashboard{
		Range:       rng,
		Activities:  filtered,
		Monthly:     stats.Monthly(filtered),
		FastestPace: fastest,
		ShoeUsage:   stats.ShoeUsage(filtered),
		RollingPace: stats.RollingPace(filtered, stats.RollingWindow),
	}, nil
}

// Activities returns the filtered cleaned records, e.g. for export.
func (s *DashboardService) Activities(ctx context.Context, q Query) ([]models.ActivityRecord, error) {
	rng, err := s.resolveRange(q.Range)
	if err != nil {
		return nil, err
	}

	all, err := s.loader.LoadRange(ctx, rng)
	if err != nil {
		return nil, err
	}
	return Filter(all, q), nil
}

func (s *DashboardService) resolveRange(rng models.DateRange) (models.DateRange, error) {
	def := s.loader.DefaultRange()
	if rng.Start.IsZero() {
		rng.Start = def.Start
	}
	if rng.End.IsZero() {
		rng.End = def.End
	}
	if !rng.Start.Before(rng.End) {
		return models.DateRange{}, fmt.Errorf("%w: start %s is not before end %s",
			ErrInvalidRange, rng.Start.Format("2006-01-02"), rng.End.Format("2006-01-02"))
	}
	return rng, nil
}

// Filter returns a new slice with the runs matching the query's shoe and
// Unknown settings. The input is never modified.
func Filter(records []models.ActivityRecord, q Query) []models.ActivityRecord {
	out := make([]models.ActivityRecord, 0, len(records))
	for _, r := range records {
		if q.Shoe != "" && r.ShoeName != q.Shoe {
			continue
		}
		if q.ExcludeUnknown && !r.HasKnownShoe() {
			continue
		}
		out = append(out, r)
	}
	return out
}

func selectShoe(rows []models.ShoeFastestPace, shoe string) []models.ShoeFastestPace {
	out := make([]models.ShoeFastestPace, 0, 1)
	for _, row := range rows {
		if row.ShoeName == shoe {
			out = append(out, row)
		}
	}
	return out
}
