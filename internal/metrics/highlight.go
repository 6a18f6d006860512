// internal/metrics/highlight.go
package metrics

import "fmt"

// HighlightMode selects which extreme of a column a rule marks.
type HighlightMode string

const (
	HighlightMax HighlightMode = "max"
	HighlightMin HighlightMode = "min"
)

// HighlightRule colors the cells of Column holding its max or min value.
type HighlightRule struct {
	Column string        `json:"column"`
	Mode   HighlightMode `json:"mode"`
	Color  string        `json:"color"`
}

// Highlight returns a grid aligned with t.Rows and t.Columns where each cell
// holds the background color assigned by rules, or "" when unstyled. Every
// cell equal to the extreme is marked, so ties all light up. When two rules
// hit the same cell the earlier rule wins.
func Highlight(t *Table, rules []HighlightRule) ([][]string, error) {
	grid := make([][]string, t.Len())
	for i := range grid {
		grid[i] = make([]string, len(t.Columns))
	}
	if t.Len() == 0 {
		return grid, nil
	}

	for _, rule := range rules {
		col := indexOf(t.Columns, rule.Column)
		if col < 0 || !t.IsValueColumn(rule.Column) {
			return nil, fmt.Errorf("highlight: %q is not a metric column of %s", rule.Column, t.Source)
		}
		var (
			idx    int
			target float64
			err    error
		)
		switch rule.Mode {
		case HighlightMax:
			idx, target, err = ArgMax(t, rule.Column)
		case HighlightMin:
			idx, target, err = ArgMin(t, rule.Column)
		default:
			return nil, fmt.Errorf("highlight: unknown mode %q for %q", rule.Mode, rule.Column)
		}
		if err != nil {
			return nil, err
		}
		for i := idx; i < len(t.Rows); i++ {
			if t.Rows[i].Values[rule.Column] == target && grid[i][col] == "" {
				grid[i][col] = rule.Color
			}
		}
	}
	return grid, nil
}
