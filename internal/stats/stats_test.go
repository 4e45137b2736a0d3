package stats

import (
	"math"
	"testing"
)

func TestDescribeNumericColumns(t *testing.T) {
	columns := []string{"premium", "count"}
	rows := [][]any{
		{100.0, int64(1)},
		{200.0, int64(2)},
		{300.0, int64(3)},
		{400.0, int64(4)},
	}

	summaries, ok := Describe(columns, rows)
	if !ok {
		t.Fatal("Describe() should accept fully numeric results")
	}
	if len(summaries) != 2 {
		t.Fatalf("summaries = %d", len(summaries))
	}

	premium := summaries[0]
	if premium.Count != 4 {
		t.Fatalf("Count = %d", premium.Count)
	}
	if premium.Mean != 250.0 {
		t.Fatalf("Mean = %v", premium.Mean)
	}
	if premium.Min != 100.0 || premium.Max != 400.0 {
		t.Fatalf("Min/Max = %v/%v", premium.Min, premium.Max)
	}
	if premium.P25 != 175.0 || premium.P50 != 250.0 || premium.P75 != 325.0 {
		t.Fatalf("quartiles = %v/%v/%v", premium.P25, premium.P50, premium.P75)
	}
	wantStd := math.Sqrt((150.0*150.0 + 50.0*50.0 + 50.0*50.0 + 150.0*150.0) / 3.0)
	if math.Abs(premium.Std-wantStd) > 1e-9 {
		t.Fatalf("Std = %v, want %v", premium.Std, wantStd)
	}
}

func TestDescribeRejectsMixedColumns(t *testing.T) {
	if _, ok := Describe([]string{"name", "count"}, [][]any{{"Basic Health", int64(4)}}); ok {
		t.Fatal("Describe() should reject non-numeric cells")
	}
}

func TestDescribeRejectsEmptyResults(t *testing.T) {
	if _, ok := Describe([]string{"count"}, nil); ok {
		t.Fatal("Describe() should reject empty row sets")
	}
	if _, ok := Describe(nil, [][]any{{1}}); ok {
		t.Fatal("Describe() should reject empty column lists")
	}
}

func TestDescribeSkipsNulls(t *testing.T) {
	summaries, ok := Describe([]string{"amount"}, [][]any{{10.0}, {nil}, {30.0}})
	if !ok {
		t.Fatal("Describe() should tolerate nulls in numeric columns")
	}
	if summaries[0].Count != 2 {
		t.Fatalf("Count = %d, want nulls excluded", summaries[0].Count)
	}
	if summaries[0].Mean != 20.0 {
		t.Fatalf("Mean = %v", summaries[0].Mean)
	}
}

func TestDescribeSingleValue(t *testing.T) {
	summaries, ok := Describe([]string{"n"}, [][]any{{int64(7)}})
	if !ok {
		t.Fatal("Describe() should handle single-row results")
	}
	s := summaries[0]
	if s.Std != 0 {
		t.Fatalf("Std = %v, want 0 for a single sample", s.Std)
	}
	if s.P25 != 7 || s.P50 != 7 || s.P75 != 7 {
		t.Fatalf("quartiles = %v/%v/%v", s.P25, s.P50, s.P75)
	}
}
