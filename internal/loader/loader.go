// Package loader fetches raw activity documents and turns them into validated
// ActivityRecords. Validation is fail-closed: one bad record rejects the load.
package loader

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"sort"
	"time"

	"github.com/jengzang/running-records-go/internal/coerce"
	"github.com/jengzang/running-records-go/internal/config"
	"github.com/jengzang/running-records-go/internal/metrics"
	"github.com/jengzang/running-records-go/internal/models"
	"github.com/jengzang/running-records-go/internal/repository"
)

// Source is a date-bounded query over loosely-typed activity documents.
type Source interface {
	Find(ctx context.Context, rng models.DateRange, projection []string) ([]models.Document, error)
}

// Projection lists the raw fields the loader reads; everything else is dropped.
var Projection = []string{
	models.FieldTimestamp,
	models.FieldDistance,
	models.FieldAvgPace,
	models.FieldElevationGain,
	models.FieldShoes,
	models.FieldCalories,
}

// Loader loads and cleans activities from a Source.
type Loader struct {
	source Source
	rng    models.DateRange
	logger *slog.Logger
}

// New creates a loader whose default window is rng.
func New(source Source, rng models.DateRange, logger *slog.Logger) *Loader {
	if logger == nil {
		logger = slog.Default()
	}
	return &Loader{
		source: source,
		rng:    rng,
		logger: logger.With(slog.String("component", "loader")),
	}
}

// NewFromConfig binds a loader to the configured date window and to either
// the configured CSV file or the store collection.
func NewFromConfig(db *sql.DB, cfg *config.Config, logger *slog.Logger) (*Loader, error) {
	start, end, err := cfg.DateRange()
	if err != nil {
		return nil, err
	}
	rng := models.DateRange{Start: start, End: end}
	if cfg.SourceCSV != "" {
		return New(NewCSVSource(cfg.SourceCSV), rng, logger), nil
	}
	return New(repository.NewActivityRepository(db, cfg.CollectionName), rng, logger), nil
}

// DefaultRange returns the window used by Load.
func (l *Loader) DefaultRange() models.DateRange {
	return l.rng
}

// Load fetches and cleans the default window.
func (l *Loader) Load(ctx context.Context) ([]models.ActivityRecord, error) {
	return l.LoadRange(ctx, l.rng)
}

// LoadRange fetches and cleans activities in [rng.Start, rng.End). It returns
// ErrNoData for an empty result, an ErrInvalidSchema-wrapped error when any
// record fails validation, and a *SourceError when the query fails.
func (l *Loader) LoadRange(ctx context.Context, rng models.DateRange) ([]models.ActivityRecord, error) {
	start := time.Now()
	logger := l.logger.With(
		slog.Time("range_start", rng.Start),
		slog.Time("range_end", rng.End),
	)

	docs, err := l.source.Find(ctx, rng, Projection)
	if err != nil {
		metrics.ObserveLoad(metrics.OutcomeSourceUnavailable, 0, time.Since(start).Seconds())
		logger.Error("activity query failed", slog.Any("error", err))
		return nil, &SourceError{Err: err}
	}

	records, err := Clean(docs)
	switch {
	case errors.Is(err, ErrNoData):
		metrics.ObserveLoad(metrics.OutcomeNoData, 0, time.Since(start).Seconds())
		logger.Info("no activities in range")
		return nil, err
	case err != nil:
		metrics.ObserveLoad(metrics.OutcomeInvalidSchema, 0, time.Since(start).Seconds())
		logger.Warn("activity data rejected", slog.Int("documents", len(docs)), slog.Any("error", err))
		return nil, err
	}

	metrics.ObserveLoad(metrics.OutcomeOK, len(records), time.Since(start).Seconds())
	logger.Debug("activities loaded", slog.Int("records", len(records)))
	return records, nil
}

// Clean validates and types raw documents. It never returns a partial result.
func Clean(docs []models.Document) ([]models.ActivityRecord, error) {
	if len(docs) == 0 {
		return nil, ErrNoData
	}

	records := make([]models.ActivityRecord, 0, len(docs))
	for i, doc := range docs {
		rec, err := cleanDocument(i, doc)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}

	sort.SliceStable(records, func(i, j int) bool {
		return records[i].Timestamp.Before(records[j].Timestamp)
	})
	return records, nil
}

func cleanDocument(i int, doc models.Document) (models.ActivityRecord, error) {
	for _, field := range []string{models.FieldTimestamp, models.FieldDistance, models.FieldAvgPace} {
		if _, ok := doc[field]; !ok {
			return models.ActivityRecord{}, invalidRecord(i, field, "is missing")
		}
	}

	ts, ok := coerce.Time(doc[models.FieldTimestamp])
	if !ok {
		return models.ActivityRecord{}, invalidRecord(i, models.FieldTimestamp, "is null or not a date")
	}

	distance, ok := coerce.Float(doc[models.FieldDistance])
	if !ok {
		return models.ActivityRecord{}, invalidRecord(i, models.FieldDistance, "is null or not numeric")
	}
	if distance < 0 {
		return models.ActivityRecord{}, invalidRecord(i, models.FieldDistance, "is negative")
	}

	pace, ok := coerce.Float(doc[models.FieldAvgPace])
	if !ok {
		return models.ActivityRecord{}, invalidRecord(i, models.FieldAvgPace, "is null or not numeric")
	}
	if pace <= 0 {
		return models.ActivityRecord{}, invalidRecord(i, models.FieldAvgPace, "is not positive")
	}

	shoe, ok := coerce.String(doc[models.FieldShoes])
	if !ok {
		shoe = models.UnknownShoe
	}

	// Optional numeric fields: absent, malformed or negative values count as absent.
	elevation, ok := coerce.Float(doc[models.FieldElevationGain])
	if !ok || elevation < 0 {
		elevation = 0
	}
	var calories *float64
	if v, ok := coerce.Float(doc[models.FieldCalories]); ok && v >= 0 {
		calories = &v
	}

	return models.ActivityRecord{
		Timestamp:      ts,
		DistanceKm:     distance,
		PaceMinPerKm:   pace,
		ElevationGainM: elevation,
		ShoeName:       shoe,
		Calories:       calories,
	}, nil
}
