package modelcompare

import (
	"errors"
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/mwiater/modelcompare/internal/appconfig"
	"github.com/mwiater/modelcompare/internal/logging"
	"github.com/mwiater/modelcompare/internal/metrics"
	"github.com/mwiater/modelcompare/internal/report"
)

var (
	passLabel = color.New(color.FgGreen).SprintFunc()
	failLabel = color.New(color.FgRed).SprintFunc()
	warnLabel = color.New(color.FgYellow).SprintFunc()
)

func runValidate(out io.Writer, cfg *appconfig.Config) error {
	builder := report.NewBuilder(nil, cfg.ComparisonCSV, cfg.SummaryCSV)
	failed := 0
	for _, id := range report.Pages {
		page, err := builder.Build(id)
		if err != nil {
			failed++
			logging.LogError("validate page", err)
			fmt.Fprintf(out, "%s %-16s %s: %s\n", failLabel("FAIL"), id.Label(), builder.Path(id), describeFailure(err))
			continue
		}
		fmt.Fprintf(out, "%s %-16s %s: %d models, best recall %s (%s)\n",
			passLabel("PASS"), id.Label(), page.Source, page.Summary.Count,
			page.Summary.BestRecall.Model, report.Percent(page.Summary.MaxRecall))
		for _, w := range page.Warnings {
			fmt.Fprintf(out, "%s %s\n", warnLabel("WARN"), w)
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d report inputs failed validation", failed, len(report.Pages))
	}
	return nil
}

func describeFailure(err error) string {
	var emptyErr *metrics.EmptyDatasetError
	if errors.As(err, &emptyErr) {
		return "no data rows"
	}
	return err.Error()
}
