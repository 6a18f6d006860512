// internal/cli/root.go
package modelcompare

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/mwiater/modelcompare/internal/appconfig"
	"github.com/mwiater/modelcompare/internal/logging"
	"github.com/mwiater/modelcompare/internal/metrics"
	"github.com/mwiater/modelcompare/internal/report"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile       string
	currentConfig *appconfig.Config
)

var rootCmd = &cobra.Command{
	Use:   "modelcompare",
	Short: "modelcompare — credit-default classifier comparison report",
	Long: `modelcompare reads precomputed classifier metrics (precision, recall,
accuracy, F1 and decision threshold per model) from CSV exports and presents
them as a two-page report: in the browser, as static HTML, or in the terminal.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// 1) Load config (file or defaults)
		loaded, err := ensureConfigLoaded()
		if err != nil {
			return err
		}

		// 2) If user did NOT set a flag, copy the config value into the flag so
		//    both pflags and viper reflect the same, final value.
		if f := cmd.Flags().Lookup("debug"); f != nil && !f.Changed {
			_ = cmd.Flags().Set("debug", strconv.FormatBool(viper.GetBool("debug")))
		}

		// 3) Materialize the fully merged configuration into currentConfig
		//    (flags > env > config > defaults).
		var cfg appconfig.Config
		if err := viper.Unmarshal(&cfg); err != nil {
			return fmt.Errorf("unmarshal config: %w", err)
		}
		cfg.ApplyDefaults()
		if loaded {
			cfg.ConfigPath = viper.ConfigFileUsed()
		}
		if err := appconfig.Validate(cfg); err != nil {
			return err
		}
		currentConfig = &cfg

		return logging.Init(logging.Options{
			Level:  cfg.EffectiveLogLevel(),
			Format: cfg.LogFormat,
			Path:   cfg.LogFile,
			Quiet:  quietCommands[cmd.Name()],
		})
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logging.Close()
	},
}

// quietCommands own stdout, so logs go to the log file only.
var quietCommands = map[string]bool{
	"browse":   true,
	"summary":  true,
	"config":   true,
	"validate": true,
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", appconfig.DefaultConfigPath, "config file (e.g., config/config.json)")

	rootCmd.PersistentFlags().Bool("debug", false, "enable debug logging")
	rootCmd.PersistentFlags().String("comparison-csv", appconfig.DefaultComparisonCSV, "model comparison CSV (page 1)")
	rootCmd.PersistentFlags().String("summary-csv", appconfig.DefaultSummaryCSV, "tuned model summary CSV (page 2)")

	// Bind flags to Viper keys (flags override config)
	_ = viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	_ = viper.BindPFlag("comparisonCSV", rootCmd.PersistentFlags().Lookup("comparison-csv"))
	_ = viper.BindPFlag("summaryCSV", rootCmd.PersistentFlags().Lookup("summary-csv"))
}

func initConfig() {
	// A missing .env is the normal case.
	_ = godotenv.Load()

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	}
	viper.SetEnvPrefix(appconfig.EnvPrefix)
	viper.AutomaticEnv()
}

// ensureConfigLoaded reads the config and sets safe defaults. It reports
// whether a config file was actually read.
func ensureConfigLoaded() (bool, error) {
	d := appconfig.Defaults()
	viper.SetDefault("comparisonCSV", d.ComparisonCSV)
	viper.SetDefault("summaryCSV", d.SummaryCSV)
	viper.SetDefault("listenAddr", d.ListenAddr)
	viper.SetDefault("outputDir", d.OutputDir)
	viper.SetDefault("cache", d.Cache)
	viper.SetDefault("debug", false)
	viper.SetDefault("logLevel", d.LogLevel)
	viper.SetDefault("logFormat", d.LogFormat)
	viper.SetDefault("logFile", "")

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return false, nil
		}
		if os.IsNotExist(err) {
			// SetConfigFile bypasses the search path, so a missing explicit
			// file surfaces as a plain not-exist error.
			return false, nil
		}
		return false, fmt.Errorf("failed to load config: %w", err)
	}
	return true, nil
}

// GetConfig returns the loaded application configuration.
func GetConfig() *appconfig.Config {
	return currentConfig
}

// newBuilder wires the report pipeline for cfg, loading through a cache when enabled.
func newBuilder(cfg *appconfig.Config) (*report.Builder, *metrics.Cache) {
	if !cfg.Cache {
		return report.NewBuilder(nil, cfg.ComparisonCSV, cfg.SummaryCSV), nil
	}
	cache := metrics.NewCache()
	return report.NewBuilder(cache, cfg.ComparisonCSV, cfg.SummaryCSV), cache
}
