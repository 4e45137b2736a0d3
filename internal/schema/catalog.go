// Package schema holds the static catalog of the health-insurance store:
// the tables, their columns, and the foreign-key relationships between them.
// The rendered catalog text grounds every translation prompt, so it must
// stay consistent with the DDL in internal/migrations.
package schema

import (
	"fmt"
	"strings"
)

type Table struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Columns     []string `json:"columns"`
}

type Relationship struct {
	FromTable  string `json:"from_table"`
	FromColumn string `json:"from_column"`
	ToTable    string `json:"to_table"`
	ToColumn   string `json:"to_column"`
}

var tables = []Table{
	{
		Name:        "addresses",
		Description: "Contains address information",
		Columns:     []string{"address_id", "street_address", "city", "state", "zip_code", "country"},
	},
	{
		Name:        "customers",
		Description: "Contains customer information",
		Columns:     []string{"customer_id", "first_name", "last_name", "date_of_birth", "email", "phone", "ssn", "address_id"},
	},
	{
		Name:        "agents",
		Description: "Contains agent information",
		Columns:     []string{"agent_id", "first_name", "last_name", "email", "phone", "hire_date", "address_id"},
	},
	{
		Name:        "policy_types",
		Description: "Contains policy type information",
		Columns:     []string{"type_id", "name", "description", "base_premium", "coverage_limit"},
	},
	{
		Name:        "policies",
		Description: "Contains policy information; status is one of Active, Expired, Cancelled",
		Columns:     []string{"policy_id", "policy_number", "customer_id", "agent_id", "type_id", "start_date", "end_date", "premium", "status"},
	},
	{
		Name:        "claims",
		Description: "Contains claim information; status is one of Pending, Approved, Denied, Paid",
		Columns:     []string{"claim_id", "claim_number", "policy_id", "customer_id", "claim_date", "description", "amount_claimed", "amount_paid", "status"},
	},
	{
		Name:        "prospects",
		Description: "Contains prospect information; status is one of New, Contacted, Converted, Not Interested",
		Columns:     []string{"prospect_id", "first_name", "last_name", "email", "phone", "source", "status", "notes", "created_date"},
	},
}

var relationships = []Relationship{
	{FromTable: "customers", FromColumn: "address_id", ToTable: "addresses", ToColumn: "address_id"},
	{FromTable: "agents", FromColumn: "address_id", ToTable: "addresses", ToColumn: "address_id"},
	{FromTable: "policies", FromColumn: "customer_id", ToTable: "customers", ToColumn: "customer_id"},
	{FromTable: "policies", FromColumn: "agent_id", ToTable: "agents", ToColumn: "agent_id"},
	{FromTable: "policies", FromColumn: "type_id", ToTable: "policy_types", ToColumn: "type_id"},
	{FromTable: "claims", FromColumn: "policy_id", ToTable: "policies", ToColumn: "policy_id"},
	{FromTable: "claims", FromColumn: "customer_id", ToTable: "customers", ToColumn: "customer_id"},
}

func Tables() []Table {
	out := make([]Table, len(tables))
	copy(out, tables)
	return out
}

func Relationships() []Relationship {
	out := make([]Relationship, len(relationships))
	copy(out, relationships)
	return out
}

func TableNames() []string {
	names := make([]string, 0, len(tables))
	for _, table := range tables {
		names = append(names, table.Name)
	}
	return names
}

// PromptText renders the catalog for inclusion in a translation prompt.
// The rendering is deterministic: same input schema, same bytes.
func PromptText() string {
	var b strings.Builder
	b.WriteString("The database has the following tables:\n\n")
	for i, table := range tables {
		fmt.Fprintf(&b, "%d. %s: %s (%s)\n", i+1, table.Name, table.Description, strings.Join(table.Columns, ", "))
	}
	b.WriteString("\nRelationships:\n")
	for _, rel := range relationships {
		fmt.Fprintf(&b, "- %s.%s -> %s.%s\n", rel.FromTable, rel.FromColumn, rel.ToTable, rel.ToColumn)
	}
	return b.String()
}
