// internal/report/builder.go
package report

import (
	"fmt"
	"strconv"

	"github.com/mwiater/modelcompare/internal/metrics"
)

// Loader reads a metrics table. *metrics.Cache satisfies it.
type Loader interface {
	Load(path string, required []string) (*metrics.Table, error)
}

// LoaderFunc adapts a function to Loader.
type LoaderFunc func(path string, required []string) (*metrics.Table, error)

// Load calls f.
func (f LoaderFunc) Load(path string, required []string) (*metrics.Table, error) {
	return f(path, required)
}

// DirectLoader reads the file on every call.
var DirectLoader Loader = LoaderFunc(metrics.Load)

const (
	colorPrecision = "#EF553B"
	colorRecall    = "#636EFA"
	colorBubble    = "#00CC96"
	colorMax       = "lightgreen"
	colorMin       = "lightsalmon"
)

// Builder runs the load, summarize and visualize pipeline for a page.
type Builder struct {
	loader         Loader
	comparisonPath string
	summaryPath    string
}

// NewBuilder returns a Builder reading the comparison and summary CSVs through
// loader. A nil loader reads from disk on every build.
func NewBuilder(loader Loader, comparisonPath, summaryPath string) *Builder {
	if loader == nil {
		loader = DirectLoader
	}
	return &Builder{loader: loader, comparisonPath: comparisonPath, summaryPath: summaryPath}
}

// Path returns the CSV backing the page.
func (b *Builder) Path(id PageID) string {
	if id == PageSummary {
		return b.summaryPath
	}
	return b.comparisonPath
}

// Build loads the page's CSV and assembles the page. Load and empty-dataset
// errors are returned unchanged so callers can tell them apart.
func (b *Builder) Build(id PageID) (Page, error) {
	switch id {
	case PageComparison:
		table, err := b.loader.Load(b.comparisonPath, metrics.ComparisonColumns)
		if err != nil {
			return Page{}, err
		}
		return BuildComparisonPage(table)
	case PageSummary:
		table, err := b.loader.Load(b.summaryPath, metrics.SummaryColumns)
		if err != nil {
			return Page{}, err
		}
		return BuildSummaryPage(table)
	default:
		return Page{}, fmt.Errorf("unknown page %q", id)
	}
}

// BuildComparisonPage lays out the baseline comparison: three KPI tiles, a
// grouped precision/recall bar chart and the table with the best recall and
// accuracy highlighted.
func BuildComparisonPage(t *metrics.Table) (Page, error) {
	summary, err := metrics.Summarize(t)
	if err != nil {
		return Page{}, err
	}

	bar, err := groupedBar(t, "precisionRecallBar", "Precision vs. Recall per Model",
		[]string{metrics.ColumnPrecision, metrics.ColumnRecall},
		[]string{colorPrecision, colorRecall})
	if err != nil {
		return Page{}, err
	}

	rules := []metrics.HighlightRule{
		{Column: metrics.ColumnRecall, Mode: metrics.HighlightMax, Color: colorMax},
		{Column: metrics.ColumnAccuracy, Mode: metrics.HighlightMax, Color: colorMax},
	}
	table, err := styleTable(t, rules)
	if err != nil {
		return Page{}, err
	}

	return Page{
		ID:       PageComparison,
		Title:    "Credit Risk Modeling: Model Comparison",
		Subtitle: "Research Focus: Minimizing Financial Loss via High Recall",
		Source:   t.Source,
		Tiles: []Tile{
			{Label: "Highest Recall", Value: summary.BestRecall.Model, Delta: Percent(summary.MaxRecall)},
			{Label: "Avg. Precision", Value: Percent(summary.MeanPrecision)},
			{Label: "Total Models Tested", Value: strconv.Itoa(summary.Count)},
		},
		Charts:     []ChartSpec{bar},
		TableTitle: "Detailed Performance Metrics",
		Table:      table,
		Narrative:  comparisonNarrative,
		Warnings:   staleWarnings(comparisonNarrative, summary),
		Summary:    summary,
	}, nil
}

// BuildSummaryPage lays out the tuned-model summary: four KPI tiles, a
// precision/recall bubble chart sized by F1 and the table with column maxima
// and the lowest threshold highlighted.
func BuildSummaryPage(t *metrics.Table) (Page, error) {
	summary, err := metrics.Summarize(t)
	if err != nil {
		return Page{}, err
	}

	bubble, err := scatterBubble(t)
	if err != nil {
		return Page{}, err
	}

	var rules []metrics.HighlightRule
	for _, c := range t.ValueColumns() {
		if c == metrics.ColumnThreshold {
			continue
		}
		rules = append(rules, metrics.HighlightRule{Column: c, Mode: metrics.HighlightMax, Color: colorMax})
	}
	rules = append(rules, metrics.HighlightRule{Column: metrics.ColumnThreshold, Mode: metrics.HighlightMin, Color: colorMin})
	table, err := styleTable(t, rules)
	if err != nil {
		return Page{}, err
	}

	return Page{
		ID:       PageSummary,
		Title:    "Credit Risk Modeling: Tuned Model Summary",
		Subtitle: "Recall-first model selection with tuned decision thresholds",
		Source:   t.Source,
		Tiles: []Tile{
			{Label: "Highest Recall", Value: summary.BestRecall.Model, Delta: Percent(summary.MaxRecall)},
			{Label: "Avg. Precision", Value: Percent(summary.MeanPrecision)},
			{Label: "Lowest Threshold", Value: fmt.Sprintf("%.2f", summary.MinThreshold)},
			{Label: "Models Summarized", Value: strconv.Itoa(summary.Count)},
		},
		Charts:     []ChartSpec{bubble},
		TableTitle: "Tuned Model Metrics",
		Table:      table,
		Narrative:  summaryNarrative,
		Warnings:   staleWarnings(summaryNarrative, summary),
		Summary:    summary,
	}, nil
}

// Percent formats a fraction with two decimals, e.g. 0.7125 as "71.25%".
func Percent(v float64) string {
	return fmt.Sprintf("%.2f%%", v*100)
}

func groupedBar(t *metrics.Table, id, title string, columns, colors []string) (ChartSpec, error) {
	long, err := metrics.Melt(t, columns)
	if err != nil {
		return ChartSpec{}, err
	}

	spec := ChartSpec{ID: id, Type: "bar", Title: title, XLabel: "Model", YLabel: "Score"}
	series := make(map[string]int, len(columns))
	for i, c := range columns {
		series[c] = i
		spec.Datasets = append(spec.Datasets, ChartDataset{Label: c, Color: colors[i%len(colors)]})
	}
	for _, row := range long {
		if n := len(spec.Labels); n == 0 || spec.Labels[n-1] != row.Model {
			spec.Labels = append(spec.Labels, row.Model)
		}
		ds := &spec.Datasets[series[row.Metric]]
		ds.Data = append(ds.Data, row.Value)
	}
	return spec, nil
}

func scatterBubble(t *metrics.Table) (ChartSpec, error) {
	points, err := metrics.Scatter(t)
	if err != nil {
		return ChartSpec{}, err
	}
	spec := ChartSpec{
		ID:     "precisionRecallScatter",
		Type:   "bubble",
		Title:  "Precision vs. Recall (bubble size = F1-Score)",
		XLabel: metrics.ColumnRecall,
		YLabel: metrics.ColumnPrecision,
	}
	for _, p := range points {
		spec.Datasets = append(spec.Datasets, ChartDataset{
			Label: p.Model,
			Color: colorBubble,
			Points: []ChartPoint{{
				Label: p.Model,
				X:     p.Recall,
				Y:     p.Precision,
				R:     bubbleRadius(p.F1),
				Size:  p.F1,
			}},
		})
	}
	return spec, nil
}

// bubbleRadius maps an F1 score in [0,1] to a radius between 4 and 24 pixels.
func bubbleRadius(f1 float64) float64 {
	return 4 + 20*f1
}

func styleTable(t *metrics.Table, rules []metrics.HighlightRule) (StyledTable, error) {
	grid, err := metrics.Highlight(t, rules)
	if err != nil {
		return StyledTable{}, err
	}
	out := StyledTable{Columns: append([]string(nil), t.Columns...)}
	for i, row := range t.Rows {
		cells := make([]Cell, len(t.Columns))
		for j, c := range t.Columns {
			if c == metrics.ColumnModel {
				cells[j] = Cell{Text: row.Model}
				continue
			}
			if !t.IsValueColumn(c) {
				cells[j] = Cell{Text: row.Text[c]}
				continue
			}
			cells[j] = Cell{Text: fmt.Sprintf("%.4f", row.Values[c]), Background: grid[i][j], Numeric: true}
		}
		out.Rows = append(out.Rows, cells)
	}
	seen := make(map[metrics.HighlightMode]bool)
	for _, r := range rules {
		if seen[r.Mode] {
			continue
		}
		seen[r.Mode] = true
		text := "Highest value in column"
		if r.Mode == metrics.HighlightMin {
			text = "Lowest " + r.Column
		}
		out.Legend = append(out.Legend, LegendKey{Color: r.Color, Text: text})
	}
	return out, nil
}
