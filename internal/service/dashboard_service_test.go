package service

import (
	"context"
	"testing"
	"time"

	"github.com/jengzang/running-records-go/internal/loader"
	"github.com/jengzang/running-records-go/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubLoader struct {
	def     models.DateRange
	records []models.ActivityRecord
	err     error
	gotRng  models.DateRange
}

func (s *stubLoader) DefaultRange() models.DateRange { return s.def }

func (s *stubLoader) LoadRange(_ context.Context, rng models.DateRange) ([]models.ActivityRecord, error) {
	s.gotRng = rng
	if s.err != nil {
		return nil, s.err
	}
	out := make([]models.ActivityRecord, len(s.records))
	copy(out, s.records)
	return out, nil
}

var year2024 = models.DateRange{
	Start: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	End:   time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
}

func rec(day int, km, pace float64, shoe string) models.ActivityRecord {
	return models.ActivityRecord{
		Timestamp:    time.Date(2024, time.Month(1+day/28), 1+day%28, 7, 0, 0, 0, time.UTC),
		DistanceKm:   km,
		PaceMinPerKm: pace,
		ShoeName:     shoe,
	}
}

func newStub() *stubLoader {
	return &stubLoader{def: year2024, records: []models.ActivityRecord{
		rec(0, 10, 5.2, "A"),
		rec(1, 5, 5.5, "A"),
		rec(30, 8, 6.0, "B"),
		rec(31, 3, 4.9, models.UnknownShoe),
	}}
}

func TestDashboardAllShoes(t *testing.T) {
	stub := newStub()
	d, err := NewDashboardService(stub).Dashboard(context.Background(), Query{})
	require.NoError(t, err)

	assert.Equal(t, year2024, stub.gotRng)
	assert.Len(t, d.Activities, 4)
	require.Len(t, d.Monthly, 2)
	assert.Equal(t, 15.0, d.Monthly[0].TotalDistanceKm)
	assert.Equal(t, 11.0, d.Monthly[1].TotalDistanceKm, "Unknown stays in monthly trends")
	assert.Equal(t, []models.ShoeFastestPace{
		{ShoeName: "A", FastestPaceMinPerKm: 5.2},
		{ShoeName: "B", FastestPaceMinPerKm: 6.0},
	}, d.FastestPace)
	assert.Len(t, d.ShoeUsage, 2)
	assert.Len(t, d.RollingPace, 4)
}

func TestDashboardShoeSelectionKeepsGlobalFastestPace(t *testing.T) {
	stub := newStub()
	d, err := NewDashboardService(stub).Dashboard(context.Background(), Query{Shoe: "A"})
	require.NoError(t, err)

	assert.Len(t, d.Activities, 2)
	require.Len(t, d.Monthly, 1)
	assert.Equal(t, []models.ShoeFastestPace{{ShoeName: "A", FastestPaceMinPerKm: 5.2}}, d.FastestPace)
	assert.Len(t, stub.records, 4, "source collection untouched")
}

func TestDashboardExcludeUnknown(t *testing.T) {
	d, err := NewDashboardService(newStub()).Dashboard(context.Background(), Query{ExcludeUnknown: true})
	require.NoError(t, err)

	assert.Len(t, d.Activities, 3)
	assert.Equal(t, 8.0, d.Monthly[1].TotalDistanceKm)
}

func TestDashboardPropagatesNoData(t *testing.T) {
	stub := newStub()
	stub.err = loader.ErrNoData

	_, err := NewDashboardService(stub).Dashboard(context.Background(), Query{})
	assert.ErrorIs(t, err, loader.ErrNoData)
}

func TestDashboardRejectsInvertedRange(t *testing.T) {
	q := Query{Range: models.DateRange{Start: year2024.End, End: year2024.Start}}
	_, err := NewDashboardService(newStub()).Dashboard(context.Background(), q)
	assert.ErrorIs(t, err, ErrInvalidRange)
}

func TestActivitiesPartialRangeUsesDefaults(t *testing.T) {
	stub := newStub()
	march := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

	_, err := NewDashboardService(stub).Activities(context.Background(), Query{Range: models.DateRange{Start: march}})
	require.NoError(t, err)
	assert.Equal(t, models.DateRange{Start: march, End: year2024.End}, stub.gotRng)
}

func TestFilterReturnsCopy(t *testing.T) {
	records := newStub().records
	out := Filter(records, Query{})
	require.Len(t, out, len(records))
	out[0].ShoeName = "changed"
	assert.Equal(t, "A", records[0].ShoeName)
}
