// Package sqldb executes single SQL statements against the shared store
// handle and materializes the full result before the connection goes back
// to the pool.
package sqldb

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/polisq/polisq/internal/query"
)

type Engine struct {
	db *sql.DB
}

func NewEngine(db *sql.DB) *Engine {
	return &Engine{db: db}
}

// Execute runs the statement verbatim. There is no allow-list and no
// statement-type restriction: a mutating statement executes with full
// effect against the shared store.
func (e *Engine) Execute(ctx context.Context, sqlText string) (query.Result, error) {
	if e.db == nil {
		return query.Result{}, fmt.Errorf("store handle is required")
	}
	sqlText = stripTrailingSemicolons(sqlText)
	if sqlText == "" {
		return query.Result{}, fmt.Errorf("sql is required")
	}

	start := time.Now()
	if !returnsRows(sqlText) {
		res, err := e.db.ExecContext(ctx, sqlText)
		if err != nil {
			return query.Result{}, fmt.Errorf("execute statement: %w", err)
		}
		affected, err := res.RowsAffected()
		if err != nil {
			affected = 0
		}
		return query.Result{
			Columns:      []string{},
			Rows:         [][]any{},
			RowsAffected: affected,
			Duration:     time.Since(start),
		}, nil
	}

	rows, err := e.db.QueryContext(ctx, sqlText)
	if err != nil {
		return query.Result{}, fmt.Errorf("execute query: %w", err)
	}
	defer func() { _ = rows.Close() }()

	columns, err := rows.Columns()
	if err != nil {
		return query.Result{}, fmt.Errorf("query columns: %w", err)
	}

	resultRows := make([][]any, 0)
	for rows.Next() {
		values := make([]any, len(columns))
		scanTargets := make([]any, len(columns))
		for i := range values {
			scanTargets[i] = &values[i]
		}
		if err := rows.Scan(scanTargets...); err != nil {
			return query.Result{}, fmt.Errorf("scan row: %w", err)
		}
		resultRows = append(resultRows, normalizeValues(values))
	}
	if err := rows.Err(); err != nil {
		return query.Result{}, fmt.Errorf("iterate rows: %w", err)
	}

	return query.Result{
		Columns:  columns,
		Rows:     resultRows,
		Duration: time.Since(start),
	}, nil
}

// returnsRows decides between the Query and Exec paths by leading keyword.
// Anything unrecognized goes through Exec and yields a zero-column result.
func returnsRows(sqlText string) bool {
	keyword := leadingKeyword(sqlText)
	switch keyword {
	case "select", "with", "show", "describe", "explain", "pragma", "values", "from":
		return true
	default:
		return false
	}
}

func leadingKeyword(sqlText string) string {
	trimmed := strings.TrimSpace(sqlText)
	for strings.HasPrefix(trimmed, "(") {
		trimmed = strings.TrimSpace(strings.TrimPrefix(trimmed, "("))
	}
	fields := strings.Fields(trimmed)
	if len(fields) == 0 {
		return ""
	}
	return strings.ToLower(fields[0])
}

func normalizeValues(values []any) []any {
	normalized := make([]any, len(values))
	for i, value := range values {
		switch typed := value.(type) {
		case []byte:
			normalized[i] = string(typed)
		default:
			normalized[i] = typed
		}
	}
	return normalized
}

func stripTrailingSemicolons(sqlText string) string {
	trimmed := strings.TrimSpace(sqlText)
	for strings.HasSuffix(trimmed, ";") {
		trimmed = strings.TrimSpace(strings.TrimSuffix(trimmed, ";"))
	}
	return trimmed
}
