package importer

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/jengzang/running-records-go/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/tormoder/fit"
)

type mockInserter struct {
	mock.Mock
}

func (m *mockInserter) Insert(ctx context.Context, docs []models.Document) ([]string, error) {
	args := m.Called(ctx, docs)
	if ids, ok := args.Get(0).([]string); ok {
		return ids, args.Error(1)
	}
	return nil, args.Error(1)
}

// capture returns an inserter that records what it was given.
func capture(docs *[]models.Document) *mockInserter {
	m := &mockInserter{}
	m.On("Insert", mock.Anything, mock.Anything).Return(nil, nil).Run(func(args mock.Arguments) {
		*docs = args.Get(1).([]models.Document)
	})
	return m
}

func TestPaceFromSpeed(t *testing.T) {
	pace, ok := PaceFromSpeed(3.0)
	require.True(t, ok)
	assert.Equal(t, 5.56, pace)

	_, ok = PaceFromSpeed(0)
	assert.False(t, ok)
}

const stravaCSV = `Activity ID,Activity Date,Activity Name,Activity Type,Distance,Activity Gear,Filename,Average Speed,Elevation Gain,Calories,Distance
1,"Mar 1, 2024, 7:30:00 AM",Morning Run,Run,5.004,Pegasus 40,activities/1.fit.gz,3.0,42,380,5004.0
2,"Mar 2, 2024, 8:00:00 AM",Ride,Ride,30.1,,activities/2.fit.gz,7.5,120,700,30100.0
3,"Mar 3, 2024, 6:00:00 PM",Treadmill,Run,8.123,,,0,,,8123.0
4,not a date,Broken,Run,4.0,,,3.1,,,4000.0
`

func TestImportStravaCSV(t *testing.T) {
	var docs []models.Document
	store := &mockInserter{}
	store.On("Insert", mock.Anything, mock.Anything).Return([]string{"a", "b"}, nil).Run(func(args mock.Arguments) {
		docs = args.Get(1).([]models.Document)
	})

	result, err := ImportStravaCSV(context.Background(), strings.NewReader(stravaCSV), store, nil)
	require.NoError(t, err)
	assert.Equal(t, Result{Imported: 2, Skipped: 1}, result)
	require.Len(t, docs, 2)

	first := docs[0]
	assert.Equal(t, time.Date(2024, 3, 1, 7, 30, 0, 0, time.UTC), first[models.FieldTimestamp])
	assert.Equal(t, 5.0, first[models.FieldDistance], "first Distance column wins, rounded to 2 places")
	assert.Equal(t, 5.56, first[models.FieldAvgPace])
	assert.Equal(t, "Pegasus 40", first[models.FieldShoes])
	assert.Equal(t, 42.0, first[models.FieldElevationGain])
	assert.Equal(t, 380.0, first[models.FieldCalories])
	assert.Equal(t, "activities/1.fit.gz", first[fieldFilename])

	treadmill := docs[1]
	assert.Equal(t, 8.12, treadmill[models.FieldDistance])
	assert.Nil(t, treadmill[models.FieldAvgPace], "zero speed has no pace")
	assert.Nil(t, treadmill[models.FieldShoes])
	assert.NotContains(t, treadmill, models.FieldCalories)
	store.AssertExpectations(t)
}

func TestImportStravaCSVMissingColumn(t *testing.T) {
	store := &mockInserter{}
	_, err := ImportStravaCSV(context.Background(), strings.NewReader("Activity Type,Distance\nRun,5\n"), store, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Activity Date")
	store.AssertNotCalled(t, "Insert", mock.Anything, mock.Anything)
}

func TestImportStravaCSVInsertFailure(t *testing.T) {
	store := &mockInserter{}
	store.On("Insert", mock.Anything, mock.Anything).Return(nil, errors.New("disk full"))

	_, err := ImportStravaCSV(context.Background(), strings.NewReader(stravaCSV), store, nil)
	assert.ErrorContains(t, err, "disk full")
}

func runningSession() *fit.SessionMsg {
	s := fit.NewSessionMsg()
	s.Sport = fit.SportRunning
	s.StartTime = time.Date(2024, 5, 4, 6, 15, 0, 0, time.UTC)
	s.TotalDistance = 1_000_456 // centimetres
	s.EnhancedAvgSpeed = 3000   // mm/s
	s.TotalAscent = 87
	s.TotalCalories = 640
	return s
}

func TestSessionDocument(t *testing.T) {
	lap := fit.NewLapMsg()
	lap.TotalDistance = 100_000
	lap.TotalElapsedTime = 330_000

	doc, err := sessionDocument(runningSession(), []*fit.LapMsg{lap}, "Nike Pegasus")
	require.NoError(t, err)

	assert.Equal(t, FITActivityType, doc[models.FieldActivityType])
	assert.Equal(t, time.Date(2024, 5, 4, 6, 15, 0, 0, time.UTC), doc[models.FieldTimestamp])
	assert.Equal(t, 10.0, doc[models.FieldDistance])
	assert.Equal(t, 5.56, doc[models.FieldAvgPace])
	assert.Equal(t, 87.0, doc[models.FieldElevationGain])
	assert.Equal(t, 640.0, doc[models.FieldCalories])
	assert.Equal(t, "Nike Pegasus", doc[models.FieldShoes])
	assert.Equal(t, []map[string]any{{"distance": 1.0, "time": 330}}, doc[fieldSplits])
}

func TestSessionDocumentInvalidFields(t *testing.T) {
	s := runningSession()
	s.EnhancedAvgSpeed = fit.NewSessionMsg().EnhancedAvgSpeed
	s.TotalAscent = fit.NewSessionMsg().TotalAscent
	s.TotalCalories = fit.NewSessionMsg().TotalCalories

	doc, err := sessionDocument(s, nil, "")
	require.NoError(t, err)
	assert.Nil(t, doc[models.FieldAvgPace])
	assert.Nil(t, doc[models.FieldShoes])
	assert.Equal(t, 0.0, doc[models.FieldElevationGain])
	assert.NotContains(t, doc, models.FieldCalories)
}

func TestSessionDocumentRejectsOtherSports(t *testing.T) {
	s := runningSession()
	s.Sport = fit.SportCycling

	_, err := sessionDocument(s, nil, "")
	assert.ErrorIs(t, err, ErrNotRunning)
}

func TestImportFITDirSkipsUndecodableFiles(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, writeFile(dir, "broken.fit", "not a fit file"))
	require.NoError(t, writeFile(dir, "notes.txt", "ignored"))

	var docs []models.Document
	store := capture(&docs)

	result, err := ImportFITDir(context.Background(), dir, "", store, nil)
	require.NoError(t, err)
	assert.Equal(t, Result{Skipped: 1}, result)
	store.AssertNotCalled(t, "Insert", mock.Anything, mock.Anything)
}
