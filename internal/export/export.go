package export

import (
	"fmt"
	"io"
	"strings"

	"github.com/jengzang/running-records-go/internal/models"
)

// ContentType returns the MIME type and file extension of a format.
func ContentType(format string) (string, string, error) {
	switch strings.ToLower(format) {
	case FormatCSV:
		return "text/csv; charset=utf-8", "csv", nil
	case FormatParquet:
		return "application/vnd.apache.parquet", "parquet", nil
	case FormatXLSX:
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", "xlsx", nil
	default:
		return "", "", fmt.Errorf("unsupported format %q (expected csv|parquet|xlsx)", format)
	}
}

// Write encodes records in the named format.
func Write(w io.Writer, format string, records []models.ActivityRecord) error {
	switch strings.ToLower(format) {
	case FormatCSV:
		return WriteCSV(w, records)
	case FormatParquet:
		return WriteParquet(w, records)
	case FormatXLSX:
		return WriteXLSX(w, records)
	default:
		return fmt.Errorf("unsupported format %q (expected csv|parquet|xlsx)", format)
	}
}
