package importer

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/jengzang/running-records-go/internal/coerce"
	"github.com/jengzang/running-records-go/internal/models"
)

// RunActivityType is the Strava activity type kept by ImportStravaCSV.
const RunActivityType = "Run"

// Strava activities.csv column names.
const (
	colActivityType     = "Activity Type"
	colActivityDate     = "Activity Date"
	colDistance         = "Distance"
	colAverageSpeed     = "Average Speed"
	colElevationGain    = "Elevation Gain"
	colElevationLoss    = "Elevation Loss"
	colElevationLow     = "Elevation Low"
	colElevationHigh    = "Elevation High"
	colActivityGear     = "Activity Gear"
	colFilename         = "Filename"
	colMaxSpeed         = "Max Speed"
	colMaxHeartRate     = "Max Heart Rate"
	colAverageHeartRate = "Average Heart Rate"
	colTotalWork        = "Total Work"
	colCalories         = "Calories"
)

// optional numeric columns copied verbatim when present
var stravaNumericColumns = map[string]string{
	colElevationGain:    models.FieldElevationGain,
	colElevationLoss:    models.FieldElevationLoss,
	colElevationLow:     fieldElevationLow,
	colElevationHigh:    fieldElevationHigh,
	colMaxSpeed:         fieldMaxSpeed,
	colMaxHeartRate:     fieldMaxHeartRate,
	colAverageHeartRate: fieldAverageHeartRate,
	colTotalWork:        fieldTotalWork,
	colCalories:         models.FieldCalories,
}

// ImportStravaCSV reads a Strava activities.csv export and inserts one
// document per "Run" row. Rows that cannot be parsed are logged and skipped.
// Strava repeats some column names; the first occurrence wins.
func ImportStravaCSV(ctx context.Context, r io.Reader, store DocumentInserter, logger *slog.Logger) (Result, error) {
	if logger == nil {
		logger = slog.Default()
	}

	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return Result{}, fmt.Errorf("failed to read header: %w", err)
	}
	index := make(map[string]int, len(header))
	for i, name := range header {
		name = strings.TrimSpace(strings.TrimPrefix(name, "\ufeff"))
		if _, dup := index[name]; !dup {
			index[name] = i
		}
	}
	for _, required := range []string{colActivityType, colActivityDate, colDistance, colAverageSpeed} {
		if _, ok := index[required]; !ok {
			return Result{}, fmt.Errorf("missing column %q", required)
		}
	}

	var (
		result Result
		docs   []models.Document
		line   = 1
	)
	for {
		if err := ctx.Err(); err != nil {
			return result, err
		}
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		line++
		if err != nil {
			logger.Warn("skipping unreadable row", slog.Int("line", line), slog.String("error", err.Error()))
			result.Skipped++
			continue
		}

		cell := func(col string) string {
			i, ok := index[col]
			if !ok || i >= len(row) {
				return ""
			}
			return strings.TrimSpace(row[i])
		}
		if cell(colActivityType) != RunActivityType {
			continue
		}

		doc, err := stravaDocument(cell)
		if err != nil {
			logger.Warn("skipping row", slog.Int("line", line), slog.String("error", err.Error()))
			result.Skipped++
			continue
		}
		docs = append(docs, doc)
	}

	if len(docs) == 0 {
		return result, nil
	}
	ids, err := store.Insert(ctx, docs)
	if err != nil {
		return result, fmt.Errorf("failed to insert activities: %w", err)
	}
	result.Imported = len(ids)
	logger.Info("strava csv imported", slog.Int("imported", result.Imported), slog.Int("skipped", result.Skipped))
	return result, nil
}

func stravaDocument(cell func(string) string) (models.Document, error) {
	ts, ok := coerce.Time(cell(colActivityDate))
	if !ok {
		return nil, fmt.Errorf("invalid %s %q", colActivityDate, cell(colActivityDate))
	}
	distance, ok := coerce.Float(cell(colDistance))
	if !ok {
		return nil, fmt.Errorf("invalid %s %q", colDistance, cell(colDistance))
	}

	doc := models.Document{
		models.FieldActivityType: RunActivityType,
		models.FieldTimestamp:    ts.UTC(),
		models.FieldDistance:     round2(distance),
		models.FieldAvgPace:      nil,
		models.FieldShoes:        nil,
	}

	if speed, ok := coerce.Float(cell(colAverageSpeed)); ok {
		if pace, ok := PaceFromSpeed(speed); ok {
			doc[models.FieldAvgPace] = pace
		}
	}
	if gear, ok := coerce.String(cell(colActivityGear)); ok {
		doc[models.FieldShoes] = gear
	}
	if filename, ok := coerce.String(cell(colFilename)); ok {
		doc[fieldFilename] = filename
	}
	for col, field := range stravaNumericColumns {
		if v, ok := coerce.Float(cell(col)); ok {
			doc[field] = v
		}
	}
	return doc, nil
}
