package api

import (
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	_ "github.com/marcboeker/go-duckdb/v2"

	"github.com/polisq/polisq/internal/audit"
	"github.com/polisq/polisq/internal/history"
	"github.com/polisq/polisq/internal/migrations"
	"github.com/polisq/polisq/internal/query/sqldb"
	"github.com/polisq/polisq/internal/seed"
)

// Runs the full ask pipeline against a seeded in-memory store with a
// canned translation, exercising everything except the completion call.
func TestAskAgainstSeededStore(t *testing.T) {
	db, err := sql.Open("duckdb", "")
	if err != nil {
		t.Fatalf("open duckdb: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	runner := migrations.NewRunner()
	if _, err := runner.Up(context.Background(), db, 0); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	if _, err := seed.NewWithSeed(db, 11).Seed(context.Background(), 50); err != nil {
		t.Fatalf("seed: %v", err)
	}

	deps := Dependencies{
		Translator: stubTranslator{sql: "SELECT pt.name, COUNT(*) AS policy_count FROM policies p JOIN policy_types pt ON p.type_id = pt.type_id GROUP BY pt.name ORDER BY pt.name"},
		Engine:     sqldb.NewEngine(db),
		Transcript: history.NewTranscript(),
		AuditLog:   audit.NewLog(),
	}
	handler := NewHandler(testConfig(), deps)

	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/v1/ask", strings.NewReader(`{"question":"Show the number of policies by type"}`))
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rr.Code, rr.Body.String())
	}

	var response askResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &response); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if len(response.Columns) != 2 {
		t.Fatalf("columns = %v", response.Columns)
	}
	if response.RowCount == 0 {
		t.Fatal("expected at least one policy type group")
	}
	if response.RowCount > 4 {
		t.Fatalf("RowCount = %d, want at most the canonical policy types", response.RowCount)
	}
	knownTypes := map[string]bool{
		"Basic Health":   true,
		"Family Plan":    true,
		"Senior Care":    true,
		"Student Health": true,
	}
	for _, row := range response.Rows {
		name, ok := row[0].(string)
		if !ok || !knownTypes[name] {
			t.Fatalf("unexpected policy type group: %v", row[0])
		}
	}
}

// A reset wired against a real store rebuilds the schema and reloads
// fixtures in one call.
func TestResetAgainstSeededStore(t *testing.T) {
	db, err := sql.Open("duckdb", "")
	if err != nil {
		t.Fatalf("open duckdb: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	runner := migrations.NewRunner()
	if _, err := runner.Up(context.Background(), db, 0); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	if _, err := seed.NewWithSeed(db, 12).Seed(context.Background(), 30); err != nil {
		t.Fatalf("seed: %v", err)
	}
	if _, err := db.ExecContext(context.Background(), "DELETE FROM prospects"); err != nil {
		t.Fatalf("mutate store: %v", err)
	}

	deps := Dependencies{
		Reset: func(ctx context.Context) (seed.Summary, error) {
			if err := runner.Reset(ctx, db); err != nil {
				return seed.Summary{}, err
			}
			return seed.NewWithSeed(db, 12).Seed(ctx, 30)
		},
	}
	handler := NewHandler(testConfig(), deps)

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/v1/reset", nil))

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rr.Code, rr.Body.String())
	}

	var count int
	if err := db.QueryRowContext(context.Background(), "SELECT COUNT(*) FROM prospects").Scan(&count); err != nil {
		t.Fatalf("count prospects: %v", err)
	}
	if count != 20 {
		t.Fatalf("prospects after reset = %d, want 20", count)
	}
}
