package schema

import (
	"strings"
	"testing"
)

func TestPromptTextContainsEveryTableName(t *testing.T) {
	text := PromptText()
	for _, name := range TableNames() {
		if !strings.Contains(text, name) {
			t.Fatalf("PromptText() missing table %q", name)
		}
	}
}

func TestPromptTextContainsEveryRelationship(t *testing.T) {
	text := PromptText()
	for _, rel := range Relationships() {
		want := rel.FromTable + "." + rel.FromColumn + " -> " + rel.ToTable + "." + rel.ToColumn
		if !strings.Contains(text, want) {
			t.Fatalf("PromptText() missing relationship %q", want)
		}
	}
}

func TestPromptTextIsStable(t *testing.T) {
	if PromptText() != PromptText() {
		t.Fatal("PromptText() should be byte-for-byte deterministic")
	}
}

func TestRelationshipsReferenceKnownTables(t *testing.T) {
	known := map[string]Table{}
	for _, table := range Tables() {
		known[table.Name] = table
	}
	for _, rel := range Relationships() {
		from, ok := known[rel.FromTable]
		if !ok {
			t.Fatalf("relationship references unknown table %q", rel.FromTable)
		}
		to, ok := known[rel.ToTable]
		if !ok {
			t.Fatalf("relationship references unknown table %q", rel.ToTable)
		}
		if !containsColumn(from.Columns, rel.FromColumn) {
			t.Fatalf("%s has no column %q", rel.FromTable, rel.FromColumn)
		}
		if !containsColumn(to.Columns, rel.ToColumn) {
			t.Fatalf("%s has no column %q", rel.ToTable, rel.ToColumn)
		}
	}
}

func containsColumn(columns []string, name string) bool {
	for _, column := range columns {
		if column == name {
			return true
		}
	}
	return false
}
