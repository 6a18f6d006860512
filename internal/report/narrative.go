// internal/report/narrative.go
package report

import (
	"fmt"

	"github.com/mwiater/modelcompare/internal/metrics"
)

// The commentary below was written against a specific training run. It does
// not follow the CSV, so every model a block names is checked against the
// loaded data by staleWarnings.

var comparisonNarrative = []NarrativeBlock{
	{
		Kind:  "info",
		Title: "Error Analysis Insight",
		Body: "While XGBoost may have higher accuracy, the Balanced Random Forest is superior " +
			"for risk mitigation due to its significantly higher Recall.",
		ClaimsBestRecall: "Balanced Random Forest",
	},
}

var summaryNarrative = []NarrativeBlock{
	{
		Kind:  "info",
		Title: "Why recall leads",
		Body: "A missed defaulter costs the lender the outstanding balance, while a false alarm costs " +
			"a manual review. Ranking by recall keeps the expensive error rare.",
	},
	{
		Kind:  "success",
		Title: "Threshold tuning",
		Body: "Lowering the decision threshold below 0.5 trades precision for recall. The tuned " +
			"Balanced Random Forest catches the most defaults at the lowest cutoff.",
		ClaimsBestRecall:      "Balanced Random Forest",
		ClaimsLowestThreshold: "Balanced Random Forest",
	},
}

func staleWarnings(blocks []NarrativeBlock, summary metrics.Summary) []string {
	var warnings []string
	for _, b := range blocks {
		if b.ClaimsBestRecall != "" && b.ClaimsBestRecall != summary.BestRecall.Model {
			warnings = append(warnings, fmt.Sprintf(
				"%q names %s as the highest-recall model, but the loaded data ranks %s first; the commentary may be stale.",
				b.Title, b.ClaimsBestRecall, summary.BestRecall.Model))
		}
		if b.ClaimsLowestThreshold != "" && summary.HasThreshold && b.ClaimsLowestThreshold != summary.LowestThreshold.Model {
			warnings = append(warnings, fmt.Sprintf(
				"%q names %s as the model with the lowest threshold, but the loaded data has %s lowest at %.2f; the commentary may be stale.",
				b.Title, b.ClaimsLowestThreshold, summary.LowestThreshold.Model, summary.MinThreshold))
		}
	}
	return warnings
}
