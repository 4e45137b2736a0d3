package audit

import (
	"bytes"
	"fmt"
	"time"

	"github.com/parquet-go/parquet-go"
)

type ParquetEncodeResult struct {
	Data        []byte
	RecordCount int64
	MinAskedAt  *time.Time
	MaxAskedAt  *time.Time
}

func EncodeRecordsToParquet(records []Record) (ParquetEncodeResult, error) {
	if len(records) == 0 {
		return ParquetEncodeResult{}, fmt.Errorf("records are required")
	}

	var minTime *time.Time
	var maxTime *time.Time
	for _, record := range records {
		if record.AskedAtUnixMs <= 0 {
			continue
		}
		askedAt := time.UnixMilli(record.AskedAtUnixMs).UTC()
		if minTime == nil || askedAt.Before(*minTime) {
			copy := askedAt
			minTime = &copy
		}
		if maxTime == nil || askedAt.After(*maxTime) {
			copy := askedAt
			maxTime = &copy
		}
	}

	buf := bytes.NewBuffer(nil)
	writer := parquet.NewGenericWriter[Record](buf)
	if _, err := writer.Write(records); err != nil {
		return ParquetEncodeResult{}, fmt.Errorf("write parquet rows: %w", err)
	}
	if err := writer.Close(); err != nil {
		return ParquetEncodeResult{}, fmt.Errorf("close parquet writer: %w", err)
	}

	return ParquetEncodeResult{
		Data:        buf.Bytes(),
		RecordCount: int64(len(records)),
		MinAskedAt:  minTime,
		MaxAskedAt:  maxTime,
	}, nil
}
