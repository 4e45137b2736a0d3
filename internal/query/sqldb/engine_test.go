package sqldb

import (
	"context"
	"database/sql"
	"regexp"
	"strings"
	"testing"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	_ "github.com/marcboeker/go-duckdb/v2"
)

func newDuckDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("duckdb", "")
	if err != nil {
		t.Fatalf("open duckdb: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestExecuteEmptyResultKeepsColumnList(t *testing.T) {
	db := newDuckDB(t)
	ddl := `CREATE TABLE claims (
		claim_id INTEGER PRIMARY KEY,
		claim_number VARCHAR,
		amount_claimed DOUBLE,
		status VARCHAR
	)`
	if _, err := db.ExecContext(context.Background(), ddl); err != nil {
		t.Fatalf("create table: %v", err)
	}

	engine := NewEngine(db)
	result, err := engine.Execute(context.Background(), "SELECT * FROM claims WHERE 1=0")
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if len(result.Rows) != 0 {
		t.Fatalf("rows = %d, want 0", len(result.Rows))
	}
	if len(result.Columns) != 4 {
		t.Fatalf("columns = %v, want the claims column list", result.Columns)
	}
	if result.Columns[0] != "claim_id" {
		t.Fatalf("columns[0] = %q", result.Columns[0])
	}
}

func TestExecuteUnknownTableSurfacesError(t *testing.T) {
	engine := NewEngine(newDuckDB(t))
	_, err := engine.Execute(context.Background(), "SELECT * FROM nonexistent_table")
	if err == nil {
		t.Fatal("Execute() should fail for an unknown table")
	}
	if strings.TrimSpace(err.Error()) == "" {
		t.Fatal("error message should be non-empty")
	}
}

func TestExecuteMaterializesRows(t *testing.T) {
	db := newDuckDB(t)
	setup := []string{
		"CREATE TABLE policy_types (type_id INTEGER, name VARCHAR)",
		"INSERT INTO policy_types VALUES (1, 'Basic Health'), (2, 'Family Plan')",
	}
	for _, stmt := range setup {
		if _, err := db.ExecContext(context.Background(), stmt); err != nil {
			t.Fatalf("setup %q: %v", stmt, err)
		}
	}

	engine := NewEngine(db)
	result, err := engine.Execute(context.Background(), "SELECT name FROM policy_types ORDER BY type_id;")
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if len(result.Rows) != 2 {
		t.Fatalf("rows = %d", len(result.Rows))
	}
	if result.Rows[0][0] != "Basic Health" {
		t.Fatalf("rows[0][0] = %#v", result.Rows[0][0])
	}
}

func TestExecuteWriteYieldsZeroColumnResult(t *testing.T) {
	db := newDuckDB(t)
	if _, err := db.ExecContext(context.Background(), "CREATE TABLE prospects (prospect_id INTEGER, status VARCHAR)"); err != nil {
		t.Fatalf("create table: %v", err)
	}

	engine := NewEngine(db)
	result, err := engine.Execute(context.Background(), "INSERT INTO prospects VALUES (1, 'New')")
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if len(result.Columns) != 0 || len(result.Rows) != 0 {
		t.Fatalf("write result = %v/%v, want zero columns and rows", result.Columns, result.Rows)
	}
	if result.RowsAffected != 1 {
		t.Fatalf("RowsAffected = %d", result.RowsAffected)
	}
}

func TestExecuteRejectsEmptyStatement(t *testing.T) {
	engine := NewEngine(newDuckDB(t))
	if _, err := engine.Execute(context.Background(), " ;; "); err == nil {
		t.Fatal("Execute() should reject an empty statement")
	}
}

func TestExecutePassesStatementVerbatim(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New() error = %v", err)
	}
	defer func() { _ = db.Close() }()

	mock.ExpectQuery(regexp.QuoteMeta("SELECT status, COUNT(*) FROM policies GROUP BY status")).
		WillReturnRows(sqlmock.NewRows([]string{"status", "count"}).
			AddRow("Active", int64(40)).
			AddRow("Expired", int64(7)))

	engine := NewEngine(db)
	result, err := engine.Execute(context.Background(), "SELECT status, COUNT(*) FROM policies GROUP BY status;")
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if len(result.Rows) != 2 {
		t.Fatalf("rows = %d", len(result.Rows))
	}
	if result.Columns[1] != "count" {
		t.Fatalf("columns = %v", result.Columns)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet sqlmock expectations: %v", err)
	}
}

func TestReturnsRowsClassification(t *testing.T) {
	cases := map[string]bool{
		"SELECT 1":                        true,
		"  with c as (select 1) select *": true,
		"EXPLAIN SELECT 1":                true,
		"INSERT INTO t VALUES (1)":        false,
		"UPDATE t SET a = 1":              false,
		"DELETE FROM t":                   false,
		"DROP TABLE t":                    false,
		"CREATE TABLE t (a INTEGER)":      false,
	}
	for sqlText, want := range cases {
		if got := returnsRows(sqlText); got != want {
			t.Fatalf("returnsRows(%q) = %v, want %v", sqlText, got, want)
		}
	}
}
