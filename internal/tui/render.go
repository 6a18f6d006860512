// internal/tui/render.go
// Package tui draws report pages in the terminal, either as a one-shot
// printout or inside the interactive two-page viewer.
package tui

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/mwiater/modelcompare/internal/report"
	"github.com/mwiater/modelcompare/internal/util"
)

// maxLabelRunes caps model names in terminal charts.
const maxLabelRunes = 28

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#F1F5F9")).Background(lipgloss.Color("#334155")).Padding(0, 1)
	subtitleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#64748B")).Italic(true)
	tileStyle     = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("#64748B")).Padding(0, 2).MarginRight(1)
	tileLabel     = lipgloss.NewStyle().Foreground(lipgloss.Color("#64748B"))
	tileValue     = lipgloss.NewStyle().Bold(true)
	tileDelta     = lipgloss.NewStyle().Foreground(lipgloss.Color("#10B981"))
	warningStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("0")).Background(lipgloss.Color("229")).Padding(0, 1)
	infoStyle     = lipgloss.NewStyle().Border(lipgloss.NormalBorder(), false, false, false, true).BorderForeground(lipgloss.Color("#636EFA")).PaddingLeft(1)
	successStyle  = infoStyle.BorderForeground(lipgloss.Color("#10B981"))
	headerCell    = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	bodyCell      = lipgloss.NewStyle().Padding(0, 1)
)

// highlightColors maps the CSS color names used by the HTML table to hex.
var highlightColors = map[string]string{
	"lightgreen":  "#90EE90",
	"lightsalmon": "#FFA07A",
}

// RenderPage draws a full page: heading, warnings, tiles, charts, table and narrative.
func RenderPage(page report.Page, width int) string {
	if width <= 0 {
		width = 100
	}
	var sections []string
	sections = append(sections, titleStyle.Render(page.Title), subtitleStyle.Render(page.Subtitle))
	for _, w := range page.Warnings {
		sections = append(sections, warningStyle.Width(width).Render("! "+w))
	}
	sections = append(sections, RenderTiles(page.Tiles))
	for _, chart := range page.Charts {
		sections = append(sections, RenderChart(chart, width))
	}
	sections = append(sections, lipgloss.NewStyle().Bold(true).Render(page.TableTitle), RenderTable(page.Table))
	for _, n := range page.Narrative {
		style := infoStyle
		if n.Kind == "success" {
			style = successStyle
		}
		sections = append(sections, style.Width(width-2).Render(lipgloss.NewStyle().Bold(true).Render(n.Title+": ")+n.Body))
	}
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// RenderTiles lays the KPI tiles side by side.
func RenderTiles(tiles []report.Tile) string {
	boxes := make([]string, 0, len(tiles))
	for _, t := range tiles {
		lines := []string{tileLabel.Render(t.Label), tileValue.Render(t.Value)}
		if t.Delta != "" {
			lines = append(lines, tileDelta.Render("↑ "+t.Delta))
		}
		boxes = append(boxes, tileStyle.Render(lipgloss.JoinVertical(lipgloss.Left, lines...)))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, boxes...)
}

// RenderTable draws the styled metrics table, carrying highlight colors over
// as cell backgrounds.
func RenderTable(st report.StyledTable) string {
	rows := make([][]string, len(st.Rows))
	for i, r := range st.Rows {
		rows[i] = make([]string, len(r))
		for j, c := range r {
			rows[i][j] = c.Text
		}
	}
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers(st.Columns...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerCell
			}
			if row < 0 || row >= len(st.Rows) || col >= len(st.Rows[row]) {
				return bodyCell
			}
			cell := st.Rows[row][col]
			style := bodyCell
			if cell.Numeric {
				style = style.Align(lipgloss.Right)
			}
			if hex, ok := highlightColors[cell.Background]; ok {
				style = style.Background(lipgloss.Color(hex)).Foreground(lipgloss.Color("0"))
			}
			return style
		})

	var legend []string
	for _, l := range st.Legend {
		swatch := "  "
		if hex, ok := highlightColors[l.Color]; ok {
			swatch = lipgloss.NewStyle().Background(lipgloss.Color(hex)).Render("  ")
		}
		legend = append(legend, swatch+" "+l.Text)
	}
	if len(legend) == 0 {
		return t.Render()
	}
	return lipgloss.JoinVertical(lipgloss.Left, t.Render(), subtitleStyle.Render(strings.Join(legend, "   ")))
}

// RenderChart draws a bar spec as horizontal bars per model and a bubble spec
// as a ranked list of points.
func RenderChart(spec report.ChartSpec, width int) string {
	lines := []string{lipgloss.NewStyle().Bold(true).Render(spec.Title)}
	switch spec.Type {
	case "bar":
		labelWidth := 0
		for _, l := range spec.Labels {
			labelWidth = max(labelWidth, lipgloss.Width(util.TruncateRunes(l, maxLabelRunes)))
		}
		barWidth := max(10, width-labelWidth-32)
		for i, label := range spec.Labels {
			for j, ds := range spec.Datasets {
				if i >= len(ds.Data) {
					continue
				}
				name := ""
				if j == 0 {
					name = util.TruncateRunes(label, maxLabelRunes)
				}
				bar := lipgloss.NewStyle().Foreground(lipgloss.Color(ds.Color)).Render(strings.Repeat("█", barLength(ds.Data[i], barWidth)))
				lines = append(lines, fmt.Sprintf("%-*s %-22s %s %.3f", labelWidth, name, ds.Label, bar, ds.Data[i]))
			}
		}
	case "bubble":
		for _, ds := range spec.Datasets {
			for _, p := range ds.Points {
				marker := lipgloss.NewStyle().Foreground(lipgloss.Color(ds.Color)).Render(strings.Repeat("●", max(1, int(math.Round(p.Size*5)))))
				lines = append(lines, fmt.Sprintf("%-*s recall %.3f  precision %.3f  F1 %.3f %s", maxLabelRunes, util.TruncateRunes(p.Label, maxLabelRunes), p.X, p.Y, p.Size, marker))
			}
		}
	default:
		lines = append(lines, subtitleStyle.Render("(chart type "+spec.Type+" has no terminal rendering)"))
	}
	return strings.Join(lines, "\n")
}

func barLength(v float64, width int) int {
	n := int(math.Round(v * float64(width)))
	return min(max(n, 0), width)
}
