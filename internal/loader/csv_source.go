package loader

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/jengzang/running-records-go/internal/coerce"
	"github.com/jengzang/running-records-go/internal/models"
)

// exportColumnAliases maps the export column names onto raw document fields, so a
// file written by the CSV exporter can be loaded back.
var exportColumnAliases = map[string]string{
	"distance_km":      models.FieldDistance,
	"pace_min_per_km":  models.FieldAvgPace,
	"elevation_gain_m": models.FieldElevationGain,
	"shoe_name":        models.FieldShoes,
}

// CSVSource reads activity documents from a delimited file with a header row.
// Empty cells are null. Rows whose timestamp cannot be parsed are passed
// through so the loader rejects them instead of silently dropping them.
type CSVSource struct {
	Path  string
	Comma rune
}

// NewCSVSource creates a comma-delimited file source.
func NewCSVSource(path string) *CSVSource {
	return &CSVSource{Path: path, Comma: ','}
}

// Find reads the file and returns the rows inside rng.
func (s *CSVSource) Find(ctx context.Context, rng models.DateRange, projection []string) ([]models.Document, error) {
	f, err := os.Open(s.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", s.Path, err)
	}
	defer f.Close()

	return ReadCSV(ctx, f, s.Comma, rng, projection)
}

// ReadCSV parses documents from r; see CSVSource.
func ReadCSV(ctx context.Context, r io.Reader, comma rune, rng models.DateRange, projection []string) ([]models.Document, error) {
	reader := csv.NewReader(r)
	if comma != 0 {
		reader.Comma = comma
	}
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return []models.Document{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}
	for i, name := range header {
		name = strings.TrimSpace(strings.TrimPrefix(name, "\ufeff"))
		if alias, ok := exportColumnAliases[name]; ok {
			name = alias
		}
		header[i] = name
	}

	docs := make([]models.Document, 0)
	for line := 2; ; line++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read line %d: %w", line, err)
		}

		doc := make(models.Document, len(header))
		for i, name := range header {
			if i >= len(row) {
				break
			}
			if cell := strings.TrimSpace(row[i]); cell != "" {
				doc[name] = cell
			} else {
				doc[name] = nil
			}
		}

		if ts, ok := coerce.Time(doc[models.FieldTimestamp]); ok && !rng.Contains(ts) {
			continue
		}
		docs = append(docs, doc.Project(projection))
	}

	return docs, nil
}
