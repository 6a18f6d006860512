// internal/cli/render.go
package modelcompare

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/mwiater/modelcompare/internal/report"
	"github.com/mwiater/modelcompare/internal/util"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// renderCmd writes both report pages as standalone HTML files.
var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Render the report as static HTML files",
	Long: `Build every report page and write <output-dir>/comparison.html and
<output-dir>/summary.html. Nothing is written unless every page builds.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := GetConfig()
		builder, _ := newBuilder(cfg)
		written, err := renderStatic(builder, cfg.OutputDir, time.Now())
		if err != nil {
			return err
		}
		for _, path := range written {
			cmd.Printf("Report written to %s\n", path)
		}
		return nil
	},
}

func init() {
	renderCmd.Flags().String("output-dir", "", "directory for the HTML files (overrides outputDir)")
	_ = viper.BindPFlag("outputDir", renderCmd.Flags().Lookup("output-dir"))
	rootCmd.AddCommand(renderCmd)
}

// renderStatic builds all pages in memory first so a failing page leaves no
// partial report behind.
func renderStatic(builder *report.Builder, dir string, now time.Time) ([]string, error) {
	opts := report.RenderOptions{LinkPattern: "%s.html", GeneratedAt: now}
	rendered := make(map[report.PageID]string, len(report.Pages))
	for _, id := range report.Pages {
		page, err := builder.Build(id)
		if err != nil {
			return nil, fmt.Errorf("build %s page: %w", id, err)
		}
		html, err := report.RenderString(page, opts)
		if err != nil {
			return nil, err
		}
		rendered[id] = html
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("unable to create output directory %s: %w", dir, err)
	}
	written := make([]string, 0, len(report.Pages))
	for _, id := range report.Pages {
		path := filepath.Join(dir, string(id)+".html")
		if err := util.WriteFile(path, []byte(rendered[id])); err != nil {
			return nil, fmt.Errorf("unable to write HTML report %s: %w", path, err)
		}
		written = append(written, path)
	}
	return written, nil
}
