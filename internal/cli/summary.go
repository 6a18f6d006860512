// internal/cli/summary.go
package modelcompare

import (
	"github.com/spf13/cobra"
)

type summaryOptions struct {
	page   string
	format string
}

var summaryOpts summaryOptions

// summaryCmd prints a page's KPIs and highlighted table in the terminal.
var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Print report KPIs and the highlighted metrics table",
	Long: `Run the report pipeline for one page and print the KPI tiles and styled
table to the terminal, or emit the derived summary as JSON or YAML.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSummary(cmd.OutOrStdout(), GetConfig(), summaryOpts)
	},
}

func init() {
	summaryCmd.Flags().StringVarP(&summaryOpts.page, "page", "p", "comparison", "page to summarize (comparison|summary)")
	summaryCmd.Flags().StringVarP(&summaryOpts.format, "format", "f", "text", "output format (text|json|yaml)")
	rootCmd.AddCommand(summaryCmd)
}
