// internal/cli/serve.go
package modelcompare

import (
	"os/signal"
	"syscall"

	"github.com/mwiater/modelcompare/internal/server"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// serveCmd serves both report pages, rebuilding them on every request.
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the interactive report over HTTP",
	Long: `Start an HTTP server exposing /comparison and /summary. Each request reloads
the CSV inputs (memoized by modification time when caching is enabled), so
refreshing the browser picks up new exports.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := GetConfig()
		builder, cache := newBuilder(cfg)
		srv := server.New(builder, server.Options{Cache: cache})

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		cmd.Printf("Serving report on http://%s/\n", cfg.ListenAddr)
		return srv.ListenAndServe(ctx, cfg.ListenAddr)
	},
}

func init() {
	serveCmd.Flags().String("listen", "", "listen address, host:port (overrides listenAddr)")
	_ = viper.BindPFlag("listenAddr", serveCmd.Flags().Lookup("listen"))
	rootCmd.AddCommand(serveCmd)
}
