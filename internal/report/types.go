// internal/report/types.go
// Package report turns metrics tables into page models and renders them as HTML.
package report

import (
	"fmt"
	"strings"

	"github.com/mwiater/modelcompare/internal/metrics"
)

// PageID names one of the report pages.
type PageID string

const (
	// PageComparison compares baseline classifiers on precision and recall.
	PageComparison PageID = "comparison"
	// PageSummary shows the tuned models with their decision thresholds.
	PageSummary PageID = "summary"
)

// Pages lists the report pages in navigation order.
var Pages = []PageID{PageComparison, PageSummary}

// ParsePageID resolves a page name, case-insensitively.
func ParsePageID(name string) (PageID, error) {
	id := PageID(strings.ToLower(strings.TrimSpace(name)))
	for _, p := range Pages {
		if p == id {
			return p, nil
		}
	}
	return "", fmt.Errorf("unknown page %q (want one of %s)", name, strings.Join(pageNames(), ", "))
}

// Label returns the navigation label of the page.
func (p PageID) Label() string {
	switch p {
	case PageComparison:
		return "Model Comparison"
	case PageSummary:
		return "Model Summary"
	default:
		return string(p)
	}
}

func pageNames() []string {
	out := make([]string, len(Pages))
	for i, p := range Pages {
		out[i] = string(p)
	}
	return out
}

// Tile is a single KPI shown at the top of a page.
type Tile struct {
	Label string `json:"label"`
	Value string `json:"value"`
	Delta string `json:"delta,omitempty"`
}

// ChartSpec is a renderer-agnostic chart description. The HTML page hands it
// to Chart.js; the terminal viewer draws bars from it.
type ChartSpec struct {
	ID       string         `json:"id"`
	Type     string         `json:"type"`
	Title    string         `json:"title"`
	XLabel   string         `json:"xLabel,omitempty"`
	YLabel   string         `json:"yLabel,omitempty"`
	Labels   []string       `json:"labels,omitempty"`
	Datasets []ChartDataset `json:"datasets"`
}

// ChartDataset is one series. Bar charts use Data aligned with Labels;
// bubble charts use Points.
type ChartDataset struct {
	Label  string       `json:"label"`
	Color  string       `json:"color"`
	Data   []float64    `json:"data,omitempty"`
	Points []ChartPoint `json:"points,omitempty"`
}

// ChartPoint is one bubble: X and Y position, R radius in pixels, Size the
// raw value R was derived from.
type ChartPoint struct {
	Label string  `json:"label"`
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	R     float64 `json:"r"`
	Size  float64 `json:"size"`
}

// StyledTable is the metrics table with formatted text and highlight colors.
type StyledTable struct {
	Columns []string    `json:"columns"`
	Rows    [][]Cell    `json:"rows"`
	Legend  []LegendKey `json:"legend,omitempty"`
}

// Cell is a formatted table cell. Background is empty when the cell is unstyled.
type Cell struct {
	Text       string `json:"text"`
	Background string `json:"background,omitempty"`
	Numeric    bool   `json:"numeric,omitempty"`
}

// LegendKey explains one highlight color.
type LegendKey struct {
	Color string `json:"color"`
	Text  string `json:"text"`
}

// NarrativeBlock is hardcoded commentary shown beside the data.
type NarrativeBlock struct {
	Kind  string `json:"kind"`
	Title string `json:"title"`
	Body  string `json:"body"`
	// ClaimsBestRecall names the model the text presents as the recall leader.
	// Build compares it with the data and warns when they disagree.
	ClaimsBestRecall string `json:"-"`
	// ClaimsLowestThreshold names the model the text says runs at the lowest
	// decision threshold. Only checked when the table has a Threshold column.
	ClaimsLowestThreshold string `json:"-"`
}

// Page is everything needed to draw one report page.
type Page struct {
	ID         PageID           `json:"id"`
	Title      string           `json:"title"`
	Subtitle   string           `json:"subtitle"`
	Source     string           `json:"source"`
	Tiles      []Tile           `json:"tiles"`
	Charts     []ChartSpec      `json:"charts"`
	TableTitle string           `json:"tableTitle"`
	Table      StyledTable      `json:"table"`
	Narrative  []NarrativeBlock `json:"narrative"`
	Warnings   []string         `json:"warnings,omitempty"`
	Summary    metrics.Summary  `json:"summary"`
}
