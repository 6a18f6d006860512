// internal/metrics/summary.go
package metrics

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Summarize derives the headline KPIs from a table: the best-recall model,
// average precision, the lowest decision threshold, and the model count.
// Threshold is optional; HasThreshold reports whether MinThreshold is set.
func Summarize(t *Table) (Summary, error) {
	if t.Len() == 0 {
		return Summary{}, emptyError(t)
	}

	bestIdx, maxRecall, err := ArgMax(t, ColumnRecall)
	if err != nil {
		return Summary{}, err
	}
	meanPrecision, err := Mean(t, ColumnPrecision)
	if err != nil {
		return Summary{}, err
	}

	s := Summary{
		MaxRecall:     maxRecall,
		BestRecall:    t.Rows[bestIdx],
		MeanPrecision: meanPrecision,
		Count:         len(t.Rows),
	}
	if t.HasColumn(ColumnThreshold) {
		idx, minThreshold, err := ArgMin(t, ColumnThreshold)
		if err != nil {
			return Summary{}, err
		}
		s.MinThreshold = minThreshold
		s.LowestThreshold = t.Rows[idx]
		s.HasThreshold = true
	}
	return s, nil
}

// ArgMax returns the index and value of the largest entry in column.
// Ties resolve to the earliest row.
func ArgMax(t *Table, column string) (int, float64, error) {
	return argBest(t, column, func(candidate, best float64) bool { return candidate > best })
}

// ArgMin returns the index and value of the smallest entry in column.
// Ties resolve to the earliest row.
func ArgMin(t *Table, column string) (int, float64, error) {
	return argBest(t, column, func(candidate, best float64) bool { return candidate < best })
}

// Mean returns the arithmetic mean of column. The sum is accumulated in
// decimal so values read from CSV average without binary rounding drift.
func Mean(t *Table, column string) (float64, error) {
	if t.Len() == 0 {
		return 0, emptyError(t)
	}
	sum := decimal.Zero
	for i, row := range t.Rows {
		v, ok := row.Value(column)
		if !ok {
			return 0, missingValue(t, column, i)
		}
		sum = sum.Add(decimal.NewFromFloat(v))
	}
	mean, _ := sum.Div(decimal.NewFromInt(int64(len(t.Rows)))).Float64()
	return mean, nil
}

func argBest(t *Table, column string, better func(candidate, best float64) bool) (int, float64, error) {
	if t.Len() == 0 {
		return 0, 0, emptyError(t)
	}
	bestIdx := -1
	var best float64
	for i, row := range t.Rows {
		v, ok := row.Value(column)
		if !ok {
			return 0, 0, missingValue(t, column, i)
		}
		if bestIdx < 0 || better(v, best) {
			bestIdx, best = i, v
		}
	}
	return bestIdx, best, nil
}

func emptyError(t *Table) error {
	if t == nil {
		return &EmptyDatasetError{}
	}
	return &EmptyDatasetError{Path: t.Source}
}

func missingValue(t *Table, column string, row int) error {
	return &DataLoadError{Path: t.Source, Reason: fmt.Sprintf("row %d has no value for column %q", row+1, column)}
}
