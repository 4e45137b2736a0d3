package query

import (
	"context"
	"time"
)

// Result is a fully materialized result set: an ordered column list and
// ordered rows. Result-less statements (writes, DDL) produce zero columns
// and zero rows with RowsAffected set. A zero-row result with a populated
// column list is a valid outcome, distinct from an error.
type Result struct {
	Columns      []string
	Rows         [][]any
	RowsAffected int64
	Duration     time.Duration
}

type Engine interface {
	Execute(ctx context.Context, sqlText string) (Result, error)
}
