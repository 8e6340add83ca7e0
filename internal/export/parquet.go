package export

import (
	"fmt"
	"io"

	"github.com/jengzang/running-records-go/internal/models"
	parquetbuffer "github.com/xitongsys/parquet-go-source/buffer"
	"github.com/xitongsys/parquet-go/parquet"
	"github.com/xitongsys/parquet-go/writer"
)

type activityParquetRow struct {
	Timestamp      string   `parquet:"name=timestamp, type=BYTE_ARRAY, convertedtype=UTF8"`
	DistanceKm     float64  `parquet:"name=distance_km, type=DOUBLE"`
	PaceMinPerKm   float64  `parquet:"name=pace_min_per_km, type=DOUBLE"`
	ElevationGainM float64  `parquet:"name=elevation_gain_m, type=DOUBLE"`
	ShoeName       string   `parquet:"name=shoe_name, type=BYTE_ARRAY, convertedtype=UTF8, encoding=PLAIN_DICTIONARY"`
	Calories       *float64 `parquet:"name=calories, type=DOUBLE, repetitiontype=OPTIONAL"`
}

// MarshalParquet encodes records as a SNAPPY-compressed Parquet file.
func MarshalParquet(records []models.ActivityRecord) ([]byte, error) {
	fw := parquetbuffer.NewBufferFile()
	pw, err := writer.NewParquetWriter(fw, new(activityParquetRow), 1)
	if err != nil {
		return nil, fmt.Errorf("failed to create parquet writer: %w", err)
	}
	pw.CompressionType = parquet.CompressionCodec_SNAPPY

	for i, r := range records {
		if err := pw.Write(activityParquetRow{
			Timestamp:      formatTime(r.Timestamp),
			DistanceKm:     r.DistanceKm,
			PaceMinPerKm:   r.PaceMinPerKm,
			ElevationGainM: r.ElevationGainM,
			ShoeName:       r.ShoeName,
			Calories:       r.Calories,
		}); err != nil {
			_ = pw.WriteStop()
			return nil, fmt.Errorf("failed to write record %d: %w", i, err)
		}
	}
	if err := pw.WriteStop(); err != nil {
		return nil, fmt.Errorf("failed to finish parquet file: %w", err)
	}
	if err := fw.Close(); err != nil {
		return nil, err
	}
	return append([]byte(nil), fw.Bytes()...), nil
}

// WriteParquet writes the Parquet encoding of records to w.
func WriteParquet(w io.Writer, records []models.ActivityRecord) error {
	data, err := MarshalParquet(records)
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}
