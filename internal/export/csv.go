package export

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/jengzang/running-records-go/internal/models"
)

// WriteCSV writes a header row followed by one row per record.
func WriteCSV(w io.Writer, records []models.ActivityRecord) error {
	writer := csv.NewWriter(w)

	if err := writer.Write(Columns); err != nil {
		return fmt.Errorf("failed to write headers: %w", err)
	}
	for i, r := range records {
		if err := writer.Write(row(r)); err != nil {
			return fmt.Errorf("failed to write record %d: %w", i, err)
		}
	}

	writer.Flush()
	return writer.Error()
}
