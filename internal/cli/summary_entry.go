package modelcompare

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/k0kubun/pp"
	"github.com/mwiater/modelcompare/internal/appconfig"
	"github.com/mwiater/modelcompare/internal/metrics"
	"github.com/mwiater/modelcompare/internal/report"
	"github.com/mwiater/modelcompare/internal/tui"
	"go.yaml.in/yaml/v3"
)

// summaryDocument is the machine-readable form of a page summary.
type summaryDocument struct {
	Page     report.PageID   `json:"page" yaml:"page"`
	Source   string          `json:"source" yaml:"source"`
	Summary  metrics.Summary `json:"summary" yaml:"summary"`
	Warnings []string        `json:"warnings,omitempty" yaml:"warnings,omitempty"`
}

func runSummary(out io.Writer, cfg *appconfig.Config, opts summaryOptions) error {
	id, err := report.ParsePageID(opts.page)
	if err != nil {
		return err
	}
	builder, _ := newBuilder(cfg)
	page, err := builder.Build(id)
	if err != nil {
		return err
	}

	doc := summaryDocument{Page: page.ID, Source: page.Source, Summary: page.Summary, Warnings: page.Warnings}
	switch strings.ToLower(opts.format) {
	case "json":
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(doc)
	case "yaml", "yml":
		enc := yaml.NewEncoder(out)
		enc.SetIndent(2)
		if err := enc.Encode(doc); err != nil {
			return err
		}
		return enc.Close()
	case "text", "":
	default:
		return fmt.Errorf("unknown format %q (want text, json or yaml)", opts.format)
	}

	headline := color.New(color.FgGreen, color.Bold)
	warn := color.New(color.FgYellow)
	headline.Fprintf(out, "%s\n", page.Title)
	fmt.Fprintf(out, "Best recall: %s (%s) from %d models in %s\n",
		page.Summary.BestRecall.Model, report.Percent(page.Summary.MaxRecall), page.Summary.Count, page.Source)
	for _, w := range page.Warnings {
		warn.Fprintf(out, "warning: %s\n", w)
	}
	fmt.Fprintln(out, tui.RenderTiles(page.Tiles))
	fmt.Fprintln(out, tui.RenderTable(page.Table))

	if cfg.Debug {
		pp.ColoringEnabled = false
		pp.Fprintln(out, page.Summary)
	}
	return nil
}
