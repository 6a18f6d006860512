// internal/server/instruments.go
package server

import (
	"github.com/mwiater/modelcompare/internal/metrics"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

type instruments struct {
	renders        *prometheus.CounterVec
	renderDuration *prometheus.HistogramVec
	modelsLoaded   *prometheus.GaugeVec
}

func newInstruments(reg prometheus.Registerer, cache *metrics.Cache) *instruments {
	in := &instruments{
		renders: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "modelcompare_page_renders_total",
				Help: "Page renders by page and outcome",
			},
			[]string{"page", "status"},
		),
		renderDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "modelcompare_page_render_duration_seconds",
				Help:    "Time spent loading, summarizing and rendering a page",
				Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
			},
			[]string{"page"},
		),
		modelsLoaded: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "modelcompare_models_loaded",
				Help: "Number of model rows in the last successful load per page",
			},
			[]string{"page"},
		),
	}
	reg.MustRegister(in.renders, in.renderDuration, in.modelsLoaded)
	reg.MustRegister(collectors.NewGoCollector())

	if cache != nil {
		reg.MustRegister(
			prometheus.NewCounterFunc(prometheus.CounterOpts{
				Name: "modelcompare_cache_hits_total",
				Help: "Metrics table loads served from cache",
			}, func() float64 {
				hits, _ := cache.Stats()
				return float64(hits)
			}),
			prometheus.NewCounterFunc(prometheus.CounterOpts{
				Name: "modelcompare_cache_misses_total",
				Help: "Metrics table loads that parsed the CSV",
			}, func() float64 {
				_, misses := cache.Stats()
				return float64(misses)
			}),
		)
	}
	return in
}
