package importer

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/jengzang/running-records-go/internal/models"
	"github.com/tormoder/fit"
)

// ErrNotRunning reports a FIT activity whose first session is not a run.
var ErrNotRunning = errors.New("activity is not a run")

// FITActivityType is stored as activity_type for FIT imports.
const FITActivityType = "running"

// DecodeFIT reads one FIT activity file into a document. Files whose first
// session is not a run return ErrNotRunning. A non-empty shoe is stored as
// the run's equipment.
func DecodeFIT(r io.Reader, shoe string) (models.Document, error) {
	decoded, err := fit.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("decode FIT file: %w", err)
	}
	activity, err := decoded.Activity()
	if err != nil {
		return nil, fmt.Errorf("activity FIT expected: %w", err)
	}
	if len(activity.Sessions) == 0 {
		return nil, fmt.Errorf("activity file has no session message")
	}
	return sessionDocument(activity.Sessions[0], activity.Laps, shoe)
}

func sessionDocument(session *fit.SessionMsg, laps []*fit.LapMsg, shoe string) (models.Document, error) {
	if session.Sport != fit.SportRunning {
		return nil, fmt.Errorf("%w: sport %v", ErrNotRunning, session.Sport)
	}
	start := session.StartTime
	if start.IsZero() || fit.IsBaseTime(start) {
		return nil, fmt.Errorf("session has no start time")
	}

	doc := models.Document{
		models.FieldActivityType:  FITActivityType,
		models.FieldTimestamp:     start.UTC(),
		models.FieldDistance:      round2(safePositive(session.GetTotalDistanceScaled()) / 1000),
		models.FieldAvgPace:       nil,
		models.FieldShoes:         nil,
		models.FieldElevationGain: float64(validUint16(session.TotalAscent)),
	}

	speed := safePositive(session.GetEnhancedAvgSpeedScaled())
	if speed == 0 {
		speed = safePositive(session.GetAvgSpeedScaled())
	}
	if pace, ok := PaceFromSpeed(speed); ok {
		doc[models.FieldAvgPace] = pace
	}
	if session.TotalCalories != math.MaxUint16 {
		doc[models.FieldCalories] = float64(session.TotalCalories)
	}
	if shoe = strings.TrimSpace(shoe); shoe != "" {
		doc[models.FieldShoes] = shoe
	}

	splits := make([]map[string]any, 0, len(laps))
	for _, lap := range laps {
		splits = append(splits, map[string]any{
			"distance": round2(safePositive(lap.GetTotalDistanceScaled()) / 1000),
			"time":     int(safePositive(lap.GetTotalElapsedTimeScaled())),
		})
	}
	doc[fieldSplits] = splits
	return doc, nil
}

// ImportFITDir decodes every .fit file under dir and inserts the runs in one
// batch. Non-running and undecodable files are logged and skipped.
func ImportFITDir(ctx context.Context, dir, shoe string, store DocumentInserter, logger *slog.Logger) (Result, error) {
	if logger == nil {
		logger = slog.Default()
	}

	var (
		result Result
		docs   []models.Document
	)
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if d.IsDir() || !strings.EqualFold(filepath.Ext(path), ".fit") {
			return nil
		}

		doc, err := decodeFITFile(path, shoe)
		if err != nil {
			level := slog.LevelWarn
			if errors.Is(err, ErrNotRunning) {
				level = slog.LevelDebug
			}
			logger.Log(ctx, level, "skipping FIT file", slog.String("path", path), slog.String("error", err.Error()))
			result.Skipped++
			return nil
		}
		doc[fieldFilename] = filepath.Base(path)
		docs = append(docs, doc)
		return nil
	})
	if err != nil {
		return result, fmt.Errorf("failed to walk %s: %w", dir, err)
	}

	if len(docs) == 0 {
		return result, nil
	}
	ids, err := store.Insert(ctx, docs)
	if err != nil {
		return result, fmt.Errorf("failed to insert activities: %w", err)
	}
	result.Imported = len(ids)
	logger.Info("fit files imported", slog.Int("imported", result.Imported), slog.Int("skipped", result.Skipped))
	return result, nil
}

func decodeFITFile(path, shoe string) (models.Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open FIT file: %w", err)
	}
	defer f.Close()
	return DecodeFIT(f, shoe)
}

func validUint16(v uint16) uint16 {
	if v == math.MaxUint16 {
		return 0
	}
	return v
}

func safePositive(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) || v <= 0 {
		return 0
	}
	return v
}

