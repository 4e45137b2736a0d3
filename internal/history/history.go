// Package history keeps the append-only transcript of question/answer
// turns. It exists purely for re-display: neither the translator nor the
// executor ever reads it.
package history

import (
	"sync"
	"time"
)

type Turn struct {
	AskedAt  time.Time `json:"asked_at"`
	Question string    `json:"question"`
	SQL      string    `json:"sql,omitempty"`
	RowCount int       `json:"row_count"`
	Error    string    `json:"error,omitempty"`
}

type Transcript struct {
	mu    sync.Mutex
	turns []Turn
}

func NewTranscript() *Transcript {
	return &Transcript{}
}

func (t *Transcript) Append(turn Turn) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if turn.AskedAt.IsZero() {
		turn.AskedAt = time.Now().UTC()
	}
	t.turns = append(t.turns, turn)
}

func (t *Transcript) Turns() []Turn {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]Turn, len(t.turns))
	copy(out, t.turns)
	return out
}

func (t *Transcript) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.turns)
}
