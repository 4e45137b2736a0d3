package seed

import (
	"context"
	"database/sql"
	"testing"

	_ "github.com/marcboeker/go-duckdb/v2"

	"github.com/polisq/polisq/internal/migrations"
)

func newSeededStore(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("duckdb", "")
	if err != nil {
		t.Fatalf("open duckdb: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	if _, err := migrations.NewRunner().Up(context.Background(), db, 0); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func rowCount(t *testing.T, db *sql.DB, table string) int {
	t.Helper()
	var count int
	if err := db.QueryRowContext(context.Background(), "SELECT COUNT(*) FROM "+table).Scan(&count); err != nil {
		t.Fatalf("count %s: %v", table, err)
	}
	return count
}

func TestSeedPopulatesFixtureShape(t *testing.T) {
	db := newSeededStore(t)
	seeder := NewWithSeed(db, 1)

	summary, err := seeder.Seed(context.Background(), 50)
	if err != nil {
		t.Fatalf("Seed() error = %v", err)
	}

	if summary.PolicyTypes != 4 {
		t.Fatalf("PolicyTypes = %d, want 4", summary.PolicyTypes)
	}
	if summary.Agents != 5 {
		t.Fatalf("Agents = %d, want 5", summary.Agents)
	}
	if summary.Customers != 45 {
		t.Fatalf("Customers = %d, want 45", summary.Customers)
	}
	if summary.Addresses != 50 {
		t.Fatalf("Addresses = %d, want 50", summary.Addresses)
	}
	if summary.Prospects != 20 {
		t.Fatalf("Prospects = %d, want 20", summary.Prospects)
	}
	if summary.Policies < 45 || summary.Policies > 135 {
		t.Fatalf("Policies = %d, want 1-3 per customer", summary.Policies)
	}
	// Claims are probabilistic; zero-or-more is the guarantee.
	if summary.Claims < 0 {
		t.Fatalf("Claims = %d", summary.Claims)
	}

	if got := rowCount(t, db, "customers"); got != summary.Customers {
		t.Fatalf("customers rows = %d, summary = %d", got, summary.Customers)
	}
	if got := rowCount(t, db, "claims"); got != summary.Claims {
		t.Fatalf("claims rows = %d, summary = %d", got, summary.Claims)
	}
}

func TestSeedUsesAllowedStatusValues(t *testing.T) {
	db := newSeededStore(t)
	if _, err := NewWithSeed(db, 2).Seed(context.Background(), 30); err != nil {
		t.Fatalf("Seed() error = %v", err)
	}

	checks := []struct {
		query string
	}{
		{"SELECT COUNT(*) FROM policies WHERE status NOT IN ('Active', 'Expired', 'Cancelled')"},
		{"SELECT COUNT(*) FROM claims WHERE status NOT IN ('Pending', 'Approved', 'Denied', 'Paid')"},
		{"SELECT COUNT(*) FROM prospects WHERE status NOT IN ('New', 'Contacted', 'Converted', 'Not Interested')"},
	}
	for _, check := range checks {
		var count int
		if err := db.QueryRowContext(context.Background(), check.query).Scan(&count); err != nil {
			t.Fatalf("query %q: %v", check.query, err)
		}
		if count != 0 {
			t.Fatalf("%d rows outside the status enumeration for %q", count, check.query)
		}
	}
}

func TestSeedIsReproducibleForFixedSeed(t *testing.T) {
	first, err := NewWithSeed(newSeededStore(t), 7).Seed(context.Background(), 40)
	if err != nil {
		t.Fatalf("Seed() error = %v", err)
	}
	second, err := NewWithSeed(newSeededStore(t), 7).Seed(context.Background(), 40)
	if err != nil {
		t.Fatalf("Seed() error = %v", err)
	}
	if first != second {
		t.Fatalf("summaries differ: %+v vs %+v", first, second)
	}
}

func TestHasDataFlipsAfterSeed(t *testing.T) {
	db := newSeededStore(t)
	seeder := NewWithSeed(db, 3)

	loaded, err := seeder.HasData(context.Background())
	if err != nil {
		t.Fatalf("HasData() error = %v", err)
	}
	if loaded {
		t.Fatal("HasData() should be false before seeding")
	}

	if _, err := seeder.Seed(context.Background(), 20); err != nil {
		t.Fatalf("Seed() error = %v", err)
	}

	loaded, err = seeder.HasData(context.Background())
	if err != nil {
		t.Fatalf("HasData() error = %v", err)
	}
	if !loaded {
		t.Fatal("HasData() should be true after seeding")
	}
}

func TestSeedRejectsTinyRecordCount(t *testing.T) {
	if _, err := NewWithSeed(newSeededStore(t), 4).Seed(context.Background(), 3); err == nil {
		t.Fatal("Seed() should reject record counts below the agent pool size")
	}
}
