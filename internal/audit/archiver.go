package audit

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/polisq/polisq/internal/storage"
)

type ArchiveResult struct {
	Key         string
	RecordCount int64
	Size        int64
}

// Archiver drains the log and uploads each batch as one Parquet object.
type Archiver struct {
	log      *Log
	store    storage.ObjectStore
	service  string
	logger   *slog.Logger
	sequence atomic.Int64
	now      func() time.Time
}

func NewArchiver(log *Log, store storage.ObjectStore, service string, logger *slog.Logger) *Archiver {
	if logger == nil {
		logger = slog.Default()
	}
	return &Archiver{log: log, store: store, service: service, logger: logger, now: func() time.Time { return time.Now().UTC() }}
}

// Archive uploads everything buffered so far. An empty buffer is not an
// error; the result reports zero records and no key.
func (a *Archiver) Archive(ctx context.Context) (ArchiveResult, error) {
	records := a.log.Drain()
	if len(records) == 0 {
		return ArchiveResult{}, nil
	}

	encoded, err := EncodeRecordsToParquet(records)
	if err != nil {
		return ArchiveResult{}, fmt.Errorf("encode audit batch: %w", err)
	}

	sequence := int(a.sequence.Add(1) - 1)
	key, err := storage.BuildArchivePath(a.service, a.now(), sequence)
	if err != nil {
		return ArchiveResult{}, fmt.Errorf("build archive key: %w", err)
	}

	info, err := a.store.Put(ctx, key, bytes.NewReader(encoded.Data), int64(len(encoded.Data)), storage.PutOptions{
		ContentType: "application/octet-stream",
	})
	if err != nil {
		return ArchiveResult{}, fmt.Errorf("upload audit batch: %w", err)
	}

	a.logger.InfoContext(ctx, "audit batch archived",
		slog.String("key", info.Key),
		slog.Int64("records", encoded.RecordCount),
		slog.Int64("bytes", info.Size),
	)
	return ArchiveResult{Key: info.Key, RecordCount: encoded.RecordCount, Size: info.Size}, nil
}
