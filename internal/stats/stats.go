// Package stats computes per-column summary statistics for fully numeric
// result sets: count, mean, sample standard deviation, min, quartiles, max.
package stats

import (
	"math"
	"sort"
)

type ColumnSummary struct {
	Column string  `json:"column"`
	Count  int     `json:"count"`
	Mean   float64 `json:"mean"`
	Std    float64 `json:"std"`
	Min    float64 `json:"min"`
	P25    float64 `json:"25%"`
	P50    float64 `json:"50%"`
	P75    float64 `json:"75%"`
	Max    float64 `json:"max"`
}

// Describe summarizes a materialized result set. It returns ok=false when
// the result has no rows or any column holds a non-numeric, non-null value;
// summaries are only shown for entirely numeric results.
func Describe(columns []string, rows [][]any) ([]ColumnSummary, bool) {
	if len(columns) == 0 || len(rows) == 0 {
		return nil, false
	}

	values := make([][]float64, len(columns))
	for _, row := range rows {
		if len(row) != len(columns) {
			return nil, false
		}
		for i, cell := range row {
			if cell == nil {
				continue
			}
			number, ok := asFloat(cell)
			if !ok {
				return nil, false
			}
			values[i] = append(values[i], number)
		}
	}

	summaries := make([]ColumnSummary, 0, len(columns))
	for i, column := range columns {
		summaries = append(summaries, summarize(column, values[i]))
	}
	return summaries, true
}

func summarize(column string, values []float64) ColumnSummary {
	summary := ColumnSummary{Column: column, Count: len(values)}
	if len(values) == 0 {
		return summary
	}

	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	sum := 0.0
	for _, v := range sorted {
		sum += v
	}
	mean := sum / float64(len(sorted))

	variance := 0.0
	if len(sorted) > 1 {
		for _, v := range sorted {
			variance += (v - mean) * (v - mean)
		}
		variance /= float64(len(sorted) - 1)
	}

	summary.Mean = mean
	summary.Std = math.Sqrt(variance)
	summary.Min = sorted[0]
	summary.Max = sorted[len(sorted)-1]
	summary.P25 = quantile(sorted, 0.25)
	summary.P50 = quantile(sorted, 0.50)
	summary.P75 = quantile(sorted, 0.75)
	return summary
}

// quantile uses linear interpolation between closest ranks, matching the
// convention of common dataframe libraries.
func quantile(sorted []float64, q float64) float64 {
	if len(sorted) == 1 {
		return sorted[0]
	}
	pos := q * float64(len(sorted)-1)
	lower := int(math.Floor(pos))
	upper := int(math.Ceil(pos))
	if lower == upper {
		return sorted[lower]
	}
	frac := pos - float64(lower)
	return sorted[lower] + frac*(sorted[upper]-sorted[lower])
}

func asFloat(value any) (float64, bool) {
	switch typed := value.(type) {
	case float64:
		return typed, true
	case float32:
		return float64(typed), true
	case int:
		return float64(typed), true
	case int8:
		return float64(typed), true
	case int16:
		return float64(typed), true
	case int32:
		return float64(typed), true
	case int64:
		return float64(typed), true
	case uint:
		return float64(typed), true
	case uint8:
		return float64(typed), true
	case uint16:
		return float64(typed), true
	case uint32:
		return float64(typed), true
	case uint64:
		return float64(typed), true
	default:
		return 0, false
	}
}
