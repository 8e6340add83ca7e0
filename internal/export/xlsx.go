package export

import (
	"fmt"
	"io"

	"github.com/jengzang/running-records-go/internal/models"
	"github.com/xuri/excelize/v2"
)

// SheetName is the worksheet holding exported activities.
const SheetName = "activities"

// WriteXLSX writes records to a single-sheet workbook with a header row.
// Numbers are stored as numbers; absent calories leave the cell empty.
func WriteXLSX(w io.Writer, records []models.ActivityRecord) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return fmt.Errorf("failed to name sheet: %w", err)
	}

	for col, name := range Columns {
		if err := setCell(f, col+1, 1, name); err != nil {
			return err
		}
	}

	for i, r := range records {
		rowNum := i + 2
		values := []any{
			formatTime(r.Timestamp),
			r.DistanceKm,
			r.PaceMinPerKm,
			r.ElevationGainM,
			r.ShoeName,
		}
		if r.Calories != nil {
			values = append(values, *r.Calories)
		}
		for col, v := range values {
			if err := setCell(f, col+1, rowNum, v); err != nil {
				return err
			}
		}
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

func setCell(f *excelize.File, col, row int, value any) error {
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return err
	}
	if err := f.SetCellValue(SheetName, cell, value); err != nil {
		return fmt.Errorf("failed to set %s: %w", cell, err)
	}
	return nil
}
