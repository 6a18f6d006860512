// internal/cli/show_config.go
package modelcompare

import (
	"github.com/mwiater/modelcompare/internal/appconfig"
	"github.com/spf13/cobra"
)

// showConfigCmd prints the merged configuration.
var showConfigCmd = &cobra.Command{
	Use:   "config",
	Short: "Show config settings",
	Long:  `Show config settings ensuring that the JSON config is loaded properly and overridden by env and flags accordingly.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg := GetConfig()
		appconfig.ShowConfig(cmd.OutOrStdout(), cfg.ConfigPath, *cfg)
	},
}

func init() {
	showCmd.AddCommand(showConfigCmd)
}
