// internal/metrics/types.go
package metrics

// Column names used by the classifier comparison exports.
const (
	ColumnModel     = "Model"
	ColumnPrecision = "Precision (Default)"
	ColumnRecall    = "Recall (Default)"
	ColumnAccuracy  = "Accuracy"
	ColumnF1        = "F1-Score (Default)"
	ColumnThreshold = "Threshold"
)

// ComparisonColumns are the columns required by the model comparison export.
var ComparisonColumns = []string{ColumnModel, ColumnPrecision, ColumnRecall, ColumnAccuracy}

// MetricColumns are the known metric columns. Their cells must be fractions in [0,1].
var MetricColumns = []string{ColumnPrecision, ColumnRecall, ColumnAccuracy, ColumnF1, ColumnThreshold}

// SummaryColumns are the columns required by the tuned model summary export.
var SummaryColumns = []string{ColumnModel, ColumnPrecision, ColumnRecall, ColumnAccuracy, ColumnF1, ColumnThreshold}

// Table is the in-memory form of a metrics CSV. It is read-only after Load.
type Table struct {
	// Source is the path the table was loaded from.
	Source string `json:"source"`
	// Columns preserves the header order of the input, including Model.
	Columns []string `json:"columns"`
	// TextColumns lists extra columns that are neither Model nor a known or
	// required metric. They are carried for display only.
	TextColumns []string `json:"textColumns,omitempty"`
	Rows        []Row    `json:"rows"`
}

// Row holds one model, its numeric metric values and any display-only text
// cells, both keyed by column name.
type Row struct {
	Model  string             `json:"model"`
	Values map[string]float64 `json:"values"`
	Text   map[string]string  `json:"text,omitempty" yaml:"text,omitempty"`
}

// Value returns the named metric and whether the row carries it.
func (r Row) Value(column string) (float64, bool) {
	v, ok := r.Values[column]
	return v, ok
}

// ValueColumns returns the numeric columns in header order.
func (t *Table) ValueColumns() []string {
	out := make([]string, 0, len(t.Columns))
	for _, c := range t.Columns {
		if t.IsValueColumn(c) {
			out = append(out, c)
		}
	}
	return out
}

// IsValueColumn reports whether column is a numeric column of the table.
func (t *Table) IsValueColumn(column string) bool {
	if column == ColumnModel || !t.HasColumn(column) {
		return false
	}
	return indexOf(t.TextColumns, column) < 0
}

// HasColumn reports whether the header contains the column.
func (t *Table) HasColumn(column string) bool {
	for _, c := range t.Columns {
		if c == column {
			return true
		}
	}
	return false
}

// Len returns the number of model rows.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.Rows)
}

// Summary carries the scalar KPIs derived from a table.
type Summary struct {
	MaxRecall     float64 `json:"max_recall" yaml:"max_recall"`
	BestRecall    Row     `json:"best_recall" yaml:"best_recall"`
	MeanPrecision float64 `json:"mean_precision" yaml:"mean_precision"`
	MinThreshold  float64 `json:"min_threshold,omitempty" yaml:"min_threshold,omitempty"`
	// LowestThreshold is the first row holding MinThreshold. Zero unless HasThreshold.
	LowestThreshold Row  `json:"lowest_threshold" yaml:"lowest_threshold,omitempty"`
	HasThreshold    bool `json:"has_threshold" yaml:"has_threshold"`
	Count           int  `json:"count" yaml:"count"`
}

// LongRow is one (model, metric, value) cell of a melted table.
type LongRow struct {
	Model  string  `json:"model"`
	Metric string  `json:"metric"`
	Value  float64 `json:"value"`
}

// ScatterPoint places one model on the precision/recall plane; F1 drives the marker size.
type ScatterPoint struct {
	Model     string  `json:"model"`
	Precision float64 `json:"precision"`
	Recall    float64 `json:"recall"`
	F1        float64 `json:"f1"`
}
