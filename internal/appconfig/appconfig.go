// internal/appconfig/appconfig.go
// Package appconfig manages loading and interpreting application configuration.
package appconfig

import (
	"errors"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

const (
	// DefaultConfigPath is the default path to the application's configuration file.
	DefaultConfigPath = "config/config.json"
	// DefaultComparisonCSV is the baseline model comparison export.
	DefaultComparisonCSV = "model_comparison_results.csv"
	// DefaultSummaryCSV is the tuned model summary export.
	DefaultSummaryCSV = "model_summary.csv"
	// DefaultListenAddr is where the report server listens.
	DefaultListenAddr = "127.0.0.1:8501"
	// DefaultOutputDir receives statically rendered pages.
	DefaultOutputDir = "reports"
	// EnvPrefix prefixes environment overrides, e.g. MODELCOMPARE_LISTENADDR.
	EnvPrefix = "MODELCOMPARE"
)

// Config represents the top-level application configuration.
type Config struct {
	ComparisonCSV string `json:"comparisonCSV"`
	SummaryCSV    string `json:"summaryCSV"`
	ListenAddr    string `json:"listenAddr"`
	OutputDir     string `json:"outputDir"`
	Cache         bool   `json:"cache"`
	Debug         bool   `json:"debug"`
	LogLevel      string `json:"logLevel,omitempty"`
	LogFormat     string `json:"logFormat,omitempty"`
	LogFile       string `json:"logFile,omitempty"`
	ConfigPath    string `json:"-"`
}

// Defaults returns the configuration used when no file or flag says otherwise.
func Defaults() Config {
	return Config{
		ComparisonCSV: DefaultComparisonCSV,
		SummaryCSV:    DefaultSummaryCSV,
		ListenAddr:    DefaultListenAddr,
		OutputDir:     DefaultOutputDir,
		Cache:         true,
		LogLevel:      "info",
		LogFormat:     "console",
	}
}

// ApplyDefaults fills blank string fields from Defaults.
func (c *Config) ApplyDefaults() {
	d := Defaults()
	if strings.TrimSpace(c.ComparisonCSV) == "" {
		c.ComparisonCSV = d.ComparisonCSV
	}
	if strings.TrimSpace(c.SummaryCSV) == "" {
		c.SummaryCSV = d.SummaryCSV
	}
	if strings.TrimSpace(c.ListenAddr) == "" {
		c.ListenAddr = d.ListenAddr
	}
	if strings.TrimSpace(c.OutputDir) == "" {
		c.OutputDir = d.OutputDir
	}
	if strings.TrimSpace(c.LogLevel) == "" {
		c.LogLevel = d.LogLevel
	}
	if strings.TrimSpace(c.LogFormat) == "" {
		c.LogFormat = d.LogFormat
	}
}

// EffectiveLogLevel returns the configured level, forced to debug when Debug is set.
func (c Config) EffectiveLogLevel() string {
	if c.Debug {
		return "debug"
	}
	return c.LogLevel
}

// configSchema constrains values that would otherwise fail late, at render or listen time.
var configSchema = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"comparisonCSV": map[string]any{"type": "string", "minLength": 1, "pattern": `\.csv$`},
		"summaryCSV":    map[string]any{"type": "string", "minLength": 1, "pattern": `\.csv$`},
		"listenAddr":    map[string]any{"type": "string", "pattern": `^[^\s]*:[0-9]{1,5}$`},
		"outputDir":     map[string]any{"type": "string", "minLength": 1},
		"cache":         map[string]any{"type": "boolean"},
		"debug":         map[string]any{"type": "boolean"},
		"logLevel":      map[string]any{"enum": []any{"debug", "info", "warn", "error"}},
		"logFormat":     map[string]any{"enum": []any{"console", "json"}},
		"logFile":       map[string]any{"type": "string"},
	},
	"required": []any{"comparisonCSV", "summaryCSV", "listenAddr", "outputDir"},
}

// Validate checks cfg against the configuration schema and reports every violation.
func Validate(cfg Config) error {
	result, err := gojsonschema.Validate(gojsonschema.NewGoLoader(configSchema), gojsonschema.NewGoLoader(cfg))
	if err != nil {
		return fmt.Errorf("validate config: %w", err)
	}
	if result.Valid() {
		return nil
	}
	var b strings.Builder
	for i, desc := range result.Errors() {
		if i > 0 {
			b.WriteString("; ")
		}
		b.WriteString(desc.String())
	}
	return errors.New("invalid configuration: " + b.String())
}
