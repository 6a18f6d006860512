// internal/cli/browse.go
package modelcompare

import (
	"github.com/mwiater/modelcompare/internal/tui"
	"github.com/spf13/cobra"
)

// browseCmd opens the two-page report in the terminal.
var browseCmd = &cobra.Command{
	Use:   "browse",
	Short: "Browse the report interactively in the terminal",
	Long:  `Open a full-screen terminal viewer. Tab switches pages, r reloads the CSV inputs, q quits.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		builder, _ := newBuilder(GetConfig())
		return tui.Run(cmd.Context(), builder)
	},
}

func init() {
	rootCmd.AddCommand(browseCmd)
}
