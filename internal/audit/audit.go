// Package audit collects a fixed-shape record per answered question and
// archives drained batches as Parquet objects.
package audit

import (
	"sync"
	"time"
)

type Record struct {
	AskedAtUnixMs  int64  `parquet:"asked_at_unix_ms"`
	Question       string `parquet:"question"`
	SQL            string `parquet:"sql"`
	Outcome        string `parquet:"outcome"`
	RowCount       int64  `parquet:"row_count"`
	DurationMicros int64  `parquet:"duration_micros"`
}

const (
	OutcomeOK              = "ok"
	OutcomeTranslateFailed = "translate_failed"
	OutcomeExecutionFailed = "execution_failed"
)

// Log buffers records in memory until the archiver drains them.
type Log struct {
	mu      sync.Mutex
	records []Record
}

func NewLog() *Log {
	return &Log{}
}

func (l *Log) Append(record Record) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if record.AskedAtUnixMs == 0 {
		record.AskedAtUnixMs = time.Now().UTC().UnixMilli()
	}
	l.records = append(l.records, record)
}

// Drain returns the buffered records and clears the buffer. Records are
// only removed here, so a failed archive loses at most one batch.
func (l *Log) Drain() []Record {
	l.mu.Lock()
	defer l.mu.Unlock()
	drained := l.records
	l.records = nil
	return drained
}

func (l *Log) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.records)
}
