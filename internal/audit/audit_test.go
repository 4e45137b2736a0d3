package audit

import (
	"testing"
	"time"
)

func TestLogDrainClearsBuffer(t *testing.T) {
	log := NewLog()
	log.Append(Record{Question: "how many claims", SQL: "SELECT COUNT(*) FROM claims", Outcome: OutcomeOK, RowCount: 1})
	log.Append(Record{Question: "gibberish", Outcome: OutcomeTranslateFailed})

	if log.Len() != 2 {
		t.Fatalf("Len() = %d", log.Len())
	}

	drained := log.Drain()
	if len(drained) != 2 {
		t.Fatalf("drained = %d", len(drained))
	}
	if log.Len() != 0 {
		t.Fatalf("Len() after drain = %d", log.Len())
	}
	if len(log.Drain()) != 0 {
		t.Fatal("second Drain() should be empty")
	}
}

func TestAppendStampsAskedAt(t *testing.T) {
	log := NewLog()
	log.Append(Record{Question: "q", Outcome: OutcomeOK})

	drained := log.Drain()
	if drained[0].AskedAtUnixMs == 0 {
		t.Fatal("AskedAtUnixMs should be stamped on append")
	}
	askedAt := time.UnixMilli(drained[0].AskedAtUnixMs)
	if time.Since(askedAt) > time.Minute {
		t.Fatalf("AskedAtUnixMs looks stale: %v", askedAt)
	}
}
