package loader

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jengzang/running-records-go/internal/config"
	"github.com/jengzang/running-records-go/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadCSVFiltersRangeAndProjects(t *testing.T) {
	input := "timestamp,distance,avg_pace,shoes,filename\n" +
		"2023-12-31T10:00:00Z,4,6.0,Nike Pegasus,a.fit\n" +
		"2024-02-01T10:00:00Z,10,5.1,,b.fit\n" +
		"2025-01-01T00:00:00Z,3,6.2,Nike Pegasus,c.fit\n"

	docs, err := ReadCSV(context.Background(), strings.NewReader(input), ',', year2024, Projection)
	require.NoError(t, err)
	require.Len(t, docs, 1)

	assert.Equal(t, "10", docs[0][models.FieldDistance])
	assert.Nil(t, docs[0][models.FieldShoes])
	assert.NotContains(t, docs[0], "filename")
}

func TestReadCSVAcceptsExportColumns(t *testing.T) {
	input := "timestamp,distance_km,pace_min_per_km,elevation_gain_m,shoe_name,calories\n" +
		"2024-05-01T06:00:00Z,8.5,5.4,30,Hoka Clifton,\n"

	docs, err := ReadCSV(context.Background(), strings.NewReader(input), ',', year2024, Projection)
	require.NoError(t, err)

	records, err := Clean(docs)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, 8.5, records[0].DistanceKm)
	assert.Equal(t, 5.4, records[0].PaceMinPerKm)
	assert.Equal(t, 30.0, records[0].ElevationGainM)
	assert.Equal(t, "Hoka Clifton", records[0].ShoeName)
	assert.Nil(t, records[0].Calories)
}

func TestReadCSVKeepsUnparseableTimestamps(t *testing.T) {
	input := "timestamp,distance,avg_pace\nlast tuesday,5,6\n"

	docs, err := ReadCSV(context.Background(), strings.NewReader(input), ',', year2024, Projection)
	require.NoError(t, err)
	require.Len(t, docs, 1)

	_, err = Clean(docs)
	assert.ErrorIs(t, err, ErrInvalidSchema)
}

func TestCSVSourceThroughLoader(t *testing.T) {
	path := filepath.Join(t.TempDir(), "runs.csv")
	require.NoError(t, os.WriteFile(path, []byte("timestamp,distance,avg_pace\n"), 0o644))

	_, err := New(NewCSVSource(path), year2024, nil).Load(context.Background())
	assert.ErrorIs(t, err, ErrNoData)

	_, err = New(NewCSVSource(filepath.Join(t.TempDir(), "missing.csv")), year2024, nil).Load(context.Background())
	assert.True(t, IsSourceUnavailable(err))
}

func TestNewFromConfigUsesCSVSource(t *testing.T) {
	path := filepath.Join(t.TempDir(), "runs.csv")
	require.NoError(t, os.WriteFile(path, []byte(
		"timestamp,distance,avg_pace,shoes\n"+
			"2024-03-02T07:00:00Z,6,5.5,Pegasus\n"), 0o644))

	cfg := config.Default()
	cfg.SourceCSV = path

	l, err := NewFromConfig(nil, &cfg, nil)
	require.NoError(t, err)
	assert.Equal(t, year2024, l.DefaultRange())

	records, err := l.Load(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "Pegasus", records[0].ShoeName)
}
