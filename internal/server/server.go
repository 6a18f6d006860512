// internal/server/server.go
// Package server serves the report pages over HTTP. Every request reruns the
// load, summarize and render pipeline, so edits to the CSV files show up on refresh.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/mwiater/modelcompare/internal/logging"
	"github.com/mwiater/modelcompare/internal/metrics"
	"github.com/mwiater/modelcompare/internal/report"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// Options configures a Server.
type Options struct {
	// Cache is exposed through cache hit/miss counters when set. The builder
	// should already load through it.
	Cache *metrics.Cache
	// Registry receives the server's collectors. Nil creates a private registry.
	Registry *prometheus.Registry
}

// Server routes report pages, the page JSON API, health and metrics.
type Server struct {
	builder *report.Builder
	engine  *gin.Engine
	metrics *instruments
}

// New builds the gin engine for builder.
func New(builder *report.Builder, opts Options) *Server {
	reg := opts.Registry
	if reg == nil {
		reg = prometheus.NewRegistry()
	}

	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.Use(gin.Recovery(), accessLog())

	s := &Server{
		builder: builder,
		engine:  engine,
		metrics: newInstruments(reg, opts.Cache),
	}

	engine.GET("/", func(c *gin.Context) {
		c.Redirect(http.StatusFound, "/"+string(report.Pages[0]))
	})
	for _, id := range report.Pages {
		engine.GET("/"+string(id), s.handlePage(id))
	}
	engine.GET("/api/pages/:page", s.handlePageJSON)
	engine.GET("/healthz", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})
	engine.GET("/metrics", gin.WrapH(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})))

	return s
}

// Handler exposes the routes, for tests and embedding.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logging.LogEvent("[SERVER] listening on http://%s", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		logging.LogEvent("[SERVER] shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

func (s *Server) handlePage(id report.PageID) gin.HandlerFunc {
	return func(c *gin.Context) {
		page, ok := s.build(c, id)
		if !ok {
			c.Status(http.StatusInternalServerError)
			c.Header("Content-Type", "text/html; charset=utf-8")
			if err := report.RenderFailure(c.Writer, id, report.RenderOptions{}); err != nil {
				logging.LogError("render failure page", err)
			}
			return
		}
		html, err := report.RenderString(page, report.RenderOptions{})
		if err != nil {
			logging.LogError("render page", err, zap.String("page", string(id)))
			c.String(http.StatusInternalServerError, "page rendering failed")
			return
		}
		c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(html))
	}
}

func (s *Server) handlePageJSON(c *gin.Context) {
	id, err := report.ParsePageID(c.Param("page"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	page, ok := s.build(c, id)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "page could not be built", "kind": c.GetString("failureKind")})
		return
	}
	c.JSON(http.StatusOK, page)
}

// build runs the pipeline for id, recording metrics and logging failures.
// On failure it stores the error kind on the context and returns false.
func (s *Server) build(c *gin.Context, id report.PageID) (report.Page, bool) {
	start := time.Now()
	page, err := s.builder.Build(id)
	s.metrics.renderDuration.WithLabelValues(string(id)).Observe(time.Since(start).Seconds())
	if err != nil {
		kind := failureKind(err)
		s.metrics.renders.WithLabelValues(string(id), kind).Inc()
		c.Set("failureKind", kind)
		logging.LogError("build page", err,
			zap.String("page", string(id)),
			zap.String("source", s.builder.Path(id)),
			zap.String("kind", kind))
		return report.Page{}, false
	}
	s.metrics.renders.WithLabelValues(string(id), "ok").Inc()
	s.metrics.modelsLoaded.WithLabelValues(string(id)).Set(float64(page.Summary.Count))
	return page, true
}

func failureKind(err error) string {
	var loadErr *metrics.DataLoadError
	var emptyErr *metrics.EmptyDatasetError
	switch {
	case errors.As(err, &emptyErr):
		return "empty_dataset"
	case errors.As(err, &loadErr):
		return "data_load"
	default:
		return "internal"
	}
}

func accessLog() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logging.Structured().Info("request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
			zap.String("client", c.ClientIP()),
		)
	}
}
