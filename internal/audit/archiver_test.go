package audit

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/polisq/polisq/internal/storage"
)

type fakeStore struct {
	lastKey  string
	lastSize int64
	puts     int
}

func (f *fakeStore) Put(_ context.Context, key string, body io.Reader, size int64, _ storage.PutOptions) (storage.ObjectInfo, error) {
	f.lastKey = key
	f.lastSize = size
	f.puts++
	_, _ = io.Copy(io.Discard, body)
	return storage.ObjectInfo{Key: key, Size: size}, nil
}

func (f *fakeStore) Stat(_ context.Context, key string) (storage.ObjectInfo, error) {
	return storage.ObjectInfo{Key: key}, nil
}

func (f *fakeStore) Delete(_ context.Context, _ string) error {
	return nil
}

func newTestArchiver(log *Log, store storage.ObjectStore) *Archiver {
	archiver := NewArchiver(log, store, "polisq-api", slog.New(slog.NewTextHandler(io.Discard, nil)))
	archiver.now = func() time.Time { return time.Date(2026, time.March, 14, 9, 0, 0, 0, time.UTC) }
	return archiver
}

func TestArchiveUploadsDrainedBatch(t *testing.T) {
	log := NewLog()
	log.Append(Record{Question: "q1", SQL: "SELECT 1", Outcome: OutcomeOK, RowCount: 1})
	log.Append(Record{Question: "q2", Outcome: OutcomeExecutionFailed})

	store := &fakeStore{}
	result, err := newTestArchiver(log, store).Archive(context.Background())
	if err != nil {
		t.Fatalf("Archive() error = %v", err)
	}
	if result.RecordCount != 2 {
		t.Fatalf("RecordCount = %d", result.RecordCount)
	}
	if store.puts != 1 {
		t.Fatalf("puts = %d", store.puts)
	}
	if !strings.HasPrefix(result.Key, "polisq-api/date=2026-03-14/ask-audit-") {
		t.Fatalf("key = %q", result.Key)
	}
	if log.Len() != 0 {
		t.Fatal("log should be empty after archiving")
	}
}

func TestArchiveEmptyLogIsNoop(t *testing.T) {
	store := &fakeStore{}
	result, err := newTestArchiver(NewLog(), store).Archive(context.Background())
	if err != nil {
		t.Fatalf("Archive() error = %v", err)
	}
	if result.RecordCount != 0 || result.Key != "" {
		t.Fatalf("result = %+v", result)
	}
	if store.puts != 0 {
		t.Fatalf("puts = %d", store.puts)
	}
}

func TestArchiveSequenceAdvances(t *testing.T) {
	log := NewLog()
	store := &fakeStore{}
	archiver := newTestArchiver(log, store)

	log.Append(Record{Question: "q1", Outcome: OutcomeOK})
	first, err := archiver.Archive(context.Background())
	if err != nil {
		t.Fatalf("Archive() error = %v", err)
	}
	log.Append(Record{Question: "q2", Outcome: OutcomeOK})
	second, err := archiver.Archive(context.Background())
	if err != nil {
		t.Fatalf("Archive() error = %v", err)
	}
	if first.Key == second.Key {
		t.Fatalf("keys should differ: %q", first.Key)
	}
}
