// internal/cli/validate.go
package modelcompare

import (
	"github.com/spf13/cobra"
)

// validateCmd checks that every report input loads and summarizes.
var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check the CSV inputs without rendering",
	Long: `Load each page's CSV with its required columns, derive the summary and
report every problem found. Exits non-zero when any input fails.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runValidate(cmd.OutOrStdout(), GetConfig())
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
