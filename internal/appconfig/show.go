package appconfig

import (
	"fmt"
	"io"
)

// ShowConfig prints the current configuration summary.
func ShowConfig(out io.Writer, file string, cfg Config) {
	if file == "" {
		fmt.Fprintln(out, "No config file loaded (using defaults).")
	} else {
		fmt.Fprintf(out, "Config file: %s\n\n", file)
	}

	fmt.Fprintln(out, "Current configuration:")
	fmt.Fprintf(out, "  Comparison CSV:  %s\n", cfg.ComparisonCSV)
	fmt.Fprintf(out, "  Summary CSV:     %s\n", cfg.SummaryCSV)
	fmt.Fprintf(out, "  Listen Address:  %s\n", cfg.ListenAddr)
	fmt.Fprintf(out, "  Output Dir:      %s\n", cfg.OutputDir)
	fmt.Fprintf(out, "  Cache:           %v\n", cfg.Cache)
	fmt.Fprintf(out, "  Debug:           %v\n", cfg.Debug)
	fmt.Fprintf(out, "  Log Level:       %s\n", cfg.EffectiveLogLevel())
	fmt.Fprintf(out, "  Log Format:      %s\n", cfg.LogFormat)
	if cfg.LogFile != "" {
		fmt.Fprintf(out, "  Log File:        %s\n", cfg.LogFile)
	}
}
