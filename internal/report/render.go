// internal/report/render.go
package report

import (
	"bytes"
	"encoding/json"
	"fmt"
	"html/template"
	"io"
	"time"
)

// NavLink is one entry of the page switcher.
type NavLink struct {
	Label  string
	Href   string
	Active bool
}

// RenderOptions controls links and timestamps in rendered pages.
type RenderOptions struct {
	// LinkPattern is a fmt pattern receiving the page id, e.g. "/%s" when
	// served or "%s.html" for static files.
	LinkPattern string
	GeneratedAt time.Time
}

type pageView struct {
	Page        Page
	Nav         []NavLink
	ChartsJSON  template.JS
	GeneratedAt string
}

type errorView struct {
	Title   string
	Message string
	Nav     []NavLink
}

// Navigation returns the page switcher links with active marking the current page.
func Navigation(active PageID, pattern string) []NavLink {
	if pattern == "" {
		pattern = "/%s"
	}
	links := make([]NavLink, 0, len(Pages))
	for _, p := range Pages {
		links = append(links, NavLink{Label: p.Label(), Href: fmt.Sprintf(pattern, p), Active: p == active})
	}
	return links
}

// Render writes page as a standalone HTML document. Chart specs are embedded as
// JSON and drawn client-side by Chart.js.
func Render(w io.Writer, page Page, opts RenderOptions) error {
	payload, err := json.Marshal(page.Charts)
	if err != nil {
		return fmt.Errorf("encode chart specs: %w", err)
	}
	generated := opts.GeneratedAt
	if generated.IsZero() {
		generated = time.Now()
	}
	view := pageView{
		Page:        page,
		Nav:         Navigation(page.ID, opts.LinkPattern),
		ChartsJSON:  template.JS(payload),
		GeneratedAt: generated.UTC().Format(time.RFC3339),
	}

	var buf bytes.Buffer
	if err := pageTemplate.Execute(&buf, view); err != nil {
		return fmt.Errorf("render page %s: %w", page.ID, err)
	}
	_, err = buf.WriteTo(w)
	return err
}

// RenderString renders page to a string.
func RenderString(page Page, opts RenderOptions) (string, error) {
	var buf bytes.Buffer
	if err := Render(&buf, page, opts); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// RenderFailure writes the generic notice shown when a page cannot be built.
// The underlying error is logged by the caller, not shown to the reader.
func RenderFailure(w io.Writer, active PageID, opts RenderOptions) error {
	return errorTemplate.Execute(w, errorView{
		Title:   active.Label(),
		Message: "This report could not be generated from the current metrics file. Check the server log for details.",
		Nav:     Navigation(active, opts.LinkPattern),
	})
}

var (
	pageTemplate  = template.Must(template.New("page").Parse(layoutHTML + pageHTML))
	errorTemplate = template.Must(template.New("failure").Parse(layoutHTML + failureHTML))
)

const layoutHTML = `{{ define "head" }}<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="UTF-8">
  <meta name="viewport" content="width=device-width, initial-scale=1">
  <title>{{ . }}</title>
  <link rel="stylesheet" href="https://cdn.jsdelivr.net/npm/bootstrap@5.3.3/dist/css/bootstrap.min.css">
  <script src="https://kit.fontawesome.com/517f4f7a2b.js" crossorigin="anonymous"></script>
  <style>
    :root {
      --primary: #334155;
      --secondary: #64748B;
      --light: #F1F5F9;
      --background: #FFFFFF;
      --text: #0F172A;
      --border: #E2E8F0;
    }
    body { background-color: var(--light); color: var(--text); }
    .navbar-dark { background-color: var(--primary) !important; }
    .kpi-card { border: 1px solid var(--border); background: var(--background); border-radius: 12px; padding: 1rem 1.25rem; }
    .kpi-label { color: var(--secondary); font-size: 0.9rem; }
    .kpi-value { font-size: 1.6rem; font-weight: 700; }
    .kpi-delta { color: #10B981; font-weight: 600; }
    .chart-card { background: var(--background); border-radius: 16px; padding: 1.5rem; border: 1px solid var(--border); }
    .chart-canvas { position: relative; height: 420px; }
    .legend-swatch { display: inline-block; width: 14px; height: 14px; border-radius: 3px; margin-right: 0.35rem; vertical-align: middle; }
    td.numeric { text-align: right; font-variant-numeric: tabular-nums; }
  </style>
</head>
{{ end }}
{{ define "nav" }}
  <nav class="navbar navbar-dark bg-dark">
    <div class="container-fluid">
      <span class="navbar-brand mb-0 h1">Credit Risk Error Analysis</span>
      <ul class="nav nav-pills">
        {{ range . }}<li class="nav-item"><a class="nav-link{{ if .Active }} active{{ else }} text-light{{ end }}" href="{{ .Href }}">{{ .Label }}</a></li>{{ end }}
      </ul>
    </div>
  </nav>
{{ end }}`

const pageHTML = `{{ template "head" .Page.Title }}
<body>
  {{ template "nav" .Nav }}
  <main class="container-fluid my-4">
    <h1 class="h3">{{ .Page.Title }}</h1>
    <p class="text-muted">{{ .Page.Subtitle }}</p>

    {{ range .Page.Warnings }}
    <div class="alert alert-warning" role="alert"><i class="fa-duotone fa-regular fa-triangle-exclamation" aria-hidden="true"></i> {{ . }}</div>
    {{ end }}

    <section class="row g-3" id="kpis">
      {{ range .Page.Tiles }}
      <div class="col">
        <div class="kpi-card">
          <div class="kpi-label">{{ .Label }}</div>
          <div class="kpi-value">{{ .Value }}</div>
          {{ if .Delta }}<div class="kpi-delta">{{ .Delta }}</div>{{ end }}
        </div>
      </div>
      {{ end }}
    </section>

    {{ range .Page.Charts }}
    <section class="mt-4">
      <div class="chart-card">
        <h2 class="h5">{{ .Title }}</h2>
        <div class="chart-canvas"><canvas id="{{ .ID }}" role="img" aria-label="{{ .Title }}"></canvas></div>
      </div>
    </section>
    {{ end }}

    <section class="mt-4">
      <div class="card shadow-sm">
        <div class="card-header bg-white"><h2 class="h5 mb-0">{{ .Page.TableTitle }}</h2></div>
        <div class="card-body">
          <div class="table-responsive">
            <table class="table table-bordered table-sm" id="metricsTable">
              <thead class="table-light"><tr>{{ range .Page.Table.Columns }}<th>{{ . }}</th>{{ end }}</tr></thead>
              <tbody>
                {{ range .Page.Table.Rows }}<tr>{{ range . }}<td{{ if .Numeric }} class="numeric"{{ end }}{{ if .Background }} style="background-color: {{ .Background }}"{{ end }}>{{ .Text }}</td>{{ end }}</tr>
                {{ end }}
              </tbody>
            </table>
          </div>
          <div class="small text-muted">
            {{ range .Page.Table.Legend }}<span class="me-3"><span class="legend-swatch" style="background: {{ .Color }}"></span>{{ .Text }}</span>{{ end }}
            <span>Source: {{ .Page.Source }}</span>
          </div>
        </div>
      </div>
    </section>

    {{ range .Page.Narrative }}
    <section class="mt-4">
      <div class="alert {{ if eq .Kind "success" }}alert-success{{ else }}alert-info{{ end }}">
        <i class="fa-duotone fa-regular fa-lightbulb" aria-hidden="true"></i>
        <strong>{{ .Title }}:</strong> {{ .Body }}
      </div>
    </section>
    {{ end }}

    <footer class="text-muted small mt-4">Generated: {{ .GeneratedAt }}</footer>
  </main>

  <script src="https://cdn.jsdelivr.net/npm/chart.js@4.4.1/dist/chart.umd.min.js"></script>
  <script>
    const chartSpecs = {{ .ChartsJSON }};
    for (const spec of chartSpecs) {
      const canvas = document.getElementById(spec.id);
      if (!canvas) { continue; }
      const bubble = spec.type === 'bubble';
      const datasets = spec.datasets.map(ds => ({
        label: ds.label,
        data: bubble ? ds.points.map(p => ({ x: p.x, y: p.y, r: p.r, size: p.size })) : ds.data,
        backgroundColor: bubble ? ds.color + '99' : ds.color,
        borderColor: ds.color,
      }));
      new Chart(canvas, {
        type: spec.type,
        data: bubble ? { datasets } : { labels: spec.labels, datasets },
        options: {
          maintainAspectRatio: false,
          plugins: {
            title: { display: true, text: spec.title },
            tooltip: bubble ? {
              callbacks: {
                label: ctx => ctx.dataset.label + ': recall ' + ctx.raw.x.toFixed(3) + ', precision ' + ctx.raw.y.toFixed(3) + ', F1 ' + ctx.raw.size.toFixed(3),
              },
            } : {},
          },
          scales: {
            x: { title: { display: !!spec.xLabel, text: spec.xLabel } },
            y: { title: { display: !!spec.yLabel, text: spec.yLabel }, beginAtZero: true, suggestedMax: 1 },
          },
        },
      });
    }
  </script>
</body>
</html>`

const failureHTML = `{{ template "head" .Title }}
<body>
  {{ template "nav" .Nav }}
  <main class="container my-5">
    <div class="alert alert-danger" role="alert">
      <h1 class="h4">{{ .Title }} is unavailable</h1>
      <p class="mb-0">{{ .Message }}</p>
    </div>
  </main>
</body>
</html>`
