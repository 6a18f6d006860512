// internal/metrics/reshape.go
package metrics

import "fmt"

// Melt reshapes the table into long form, one LongRow per (model, column)
// pair. Rows are emitted model by model, columns in the order given, so the
// result always has t.Len()*len(columns) entries.
func Melt(t *Table, columns []string) ([]LongRow, error) {
	for _, c := range columns {
		if !t.IsValueColumn(c) {
			return nil, fmt.Errorf("melt: %q is not a metric column of %s", c, t.Source)
		}
	}
	out := make([]LongRow, 0, t.Len()*len(columns))
	for _, row := range t.Rows {
		for _, c := range columns {
			out = append(out, LongRow{Model: row.Model, Metric: c, Value: row.Values[c]})
		}
	}
	return out, nil
}

// Scatter projects each model onto precision and recall, carrying F1 for
// marker sizing.
func Scatter(t *Table) ([]ScatterPoint, error) {
	for _, c := range []string{ColumnPrecision, ColumnRecall, ColumnF1} {
		if !t.HasColumn(c) {
			return nil, fmt.Errorf("scatter: %s has no %q column", t.Source, c)
		}
	}
	points := make([]ScatterPoint, 0, t.Len())
	for _, row := range t.Rows {
		points = append(points, ScatterPoint{
			Model:     row.Model,
			Precision: row.Values[ColumnPrecision],
			Recall:    row.Values[ColumnRecall],
			F1:        row.Values[ColumnF1],
		})
	}
	return points, nil
}
