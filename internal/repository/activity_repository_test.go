package repository

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/jengzang/running-records-go/internal/database"
	"github.com/jengzang/running-records-go/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRepository(t *testing.T, collection string) *ActivityRepository {
	t.Helper()
	ctx := context.Background()

	db, err := database.Open(ctx, database.Config{ConnectionURI: t.TempDir(), DatabaseName: "strava_data"})
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, database.Migrate(ctx, db))

	return NewActivityRepository(db, collection)
}

func TestFindAppliesClosedOpenRangeAndProjection(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepository(t, "activities")

	_, err := repo.Insert(ctx, []models.Document{
		{"timestamp": time.Date(2023, 12, 31, 23, 59, 59, 0, time.UTC), "distance": 5.0, "avg_pace": 6.0},
		{"timestamp": time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), "distance": 10.0, "avg_pace": 5.5, "shoes": "Nike Pegasus", "filename": "a.fit"},
		{"timestamp": time.Date(2024, 12, 31, 8, 0, 0, 0, time.UTC), "distance": 8.0, "avg_pace": 5.8},
		{"timestamp": time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), "distance": 3.0, "avg_pace": 6.1},
		{"distance": 1.0, "avg_pace": 7.0},
	})
	require.NoError(t, err)

	rng := models.DateRange{
		Start: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		End:   time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
	}
	docs, err := repo.Find(ctx, rng, []string{"timestamp", "distance", "avg_pace", "shoes"})
	require.NoError(t, err)
	require.Len(t, docs, 2)

	assert.Equal(t, json.Number("10"), docs[0]["distance"])
	assert.Equal(t, "Nike Pegasus", docs[0]["shoes"])
	assert.NotContains(t, docs[0], "filename")
	assert.NotContains(t, docs[0], DocumentIDField)
	assert.NotContains(t, docs[1], "shoes")
}

func TestFindIsScopedToCollection(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepository(t, "activities")
	other := NewActivityRepository(repo.db, "activities_Jan_2024")

	_, err := other.Insert(ctx, []models.Document{
		{"timestamp": "2024-01-10T07:00:00Z", "distance": 5.0, "avg_pace": 6.0},
	})
	require.NoError(t, err)

	rng := models.DateRange{Start: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), End: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)}
	docs, err := repo.Find(ctx, rng, nil)
	require.NoError(t, err)
	assert.Empty(t, docs)

	docs, err = other.Find(ctx, rng, nil)
	require.NoError(t, err)
	assert.Len(t, docs, 1)
}

func TestInsertKeepsGivenIDs(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepository(t, "activities")

	ids, err := repo.Insert(ctx, []models.Document{
		{DocumentIDField: "run-1", "timestamp": "2024-02-01T06:00:00Z"},
		{"timestamp": "2024-02-02T06:00:00Z"},
	})
	require.NoError(t, err)
	require.Len(t, ids, 2)
	assert.Equal(t, "run-1", ids[0])
	assert.Len(t, ids[1], 36)

	total, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
}
