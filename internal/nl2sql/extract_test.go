package nl2sql

import "testing"

func TestExtractSQLBareStatementUnchanged(t *testing.T) {
	got := ExtractSQL("SELECT * FROM policies WHERE status = 'Active'")
	if got != "SELECT * FROM policies WHERE status = 'Active'" {
		t.Fatalf("ExtractSQL() = %q", got)
	}
}

func TestExtractSQLIsIdempotent(t *testing.T) {
	first := ExtractSQL("```sql\nSELECT 1\n```")
	if got := ExtractSQL(first); got != first {
		t.Fatalf("ExtractSQL(ExtractSQL(x)) = %q, want %q", got, first)
	}
}

func TestExtractSQLTaggedFence(t *testing.T) {
	got := ExtractSQL("```sql\nSELECT 1\n```")
	if got != "SELECT 1" {
		t.Fatalf("ExtractSQL() = %q", got)
	}
}

func TestExtractSQLTaggedFenceWithProse(t *testing.T) {
	got := ExtractSQL("Here is your query:\n```sql\nSELECT name FROM policy_types\n```\nHope that helps!")
	if got != "SELECT name FROM policy_types" {
		t.Fatalf("ExtractSQL() = %q", got)
	}
}

func TestExtractSQLUntaggedFence(t *testing.T) {
	got := ExtractSQL("```\nSELECT 1\n```")
	if got != "SELECT 1" {
		t.Fatalf("ExtractSQL() = %q", got)
	}
}

func TestExtractSQLUntaggedFenceStripsLeftoverTag(t *testing.T) {
	got := ExtractSQL("```\nsql\nSELECT claim_number FROM claims\n```")
	if got != "SELECT claim_number FROM claims" {
		t.Fatalf("ExtractSQL() = %q", got)
	}
}

func TestExtractSQLTrimsWhitespace(t *testing.T) {
	got := ExtractSQL("   \n\tSELECT 1\n  ")
	if got != "SELECT 1" {
		t.Fatalf("ExtractSQL() = %q", got)
	}
}

func TestExtractSQLMultilineStatement(t *testing.T) {
	got := ExtractSQL("```sql\nSELECT policy_types.name, COUNT(*) AS policy_count\nFROM policies\nJOIN policy_types ON policies.type_id = policy_types.type_id\nGROUP BY policy_types.name\n```")
	want := "SELECT policy_types.name, COUNT(*) AS policy_count\nFROM policies\nJOIN policy_types ON policies.type_id = policy_types.type_id\nGROUP BY policy_types.name"
	if got != want {
		t.Fatalf("ExtractSQL() = %q, want %q", got, want)
	}
}
