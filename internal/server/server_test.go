package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/mwiater/modelcompare/internal/metrics"
	"github.com/mwiater/modelcompare/internal/report"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const comparisonCSV = `Model,Precision (Default),Recall (Default),Accuracy
Logistic Regression,0.38,0.62,0.74
Balanced Random Forest,0.41,0.71,0.76
XGBoost,0.63,0.36,0.82
`

const summaryCSV = `Model,Precision (Default),Recall (Default),Accuracy,F1-Score (Default),Threshold
Balanced Random Forest,0.39,0.78,0.73,0.52,0.25
Tuned XGBoost,0.44,0.61,0.78,0.51,0.35
`

func newTestServer(t *testing.T, comparison, summary string) (*Server, *metrics.Cache) {
	t.Helper()
	dir := t.TempDir()
	cmpPath := filepath.Join(dir, "model_comparison_results.csv")
	sumPath := filepath.Join(dir, "model_summary.csv")
	require.NoError(t, os.WriteFile(cmpPath, []byte(comparison), 0o644))
	require.NoError(t, os.WriteFile(sumPath, []byte(summary), 0o644))

	cache := metrics.NewCache()
	return New(report.NewBuilder(cache, cmpPath, sumPath), Options{Cache: cache}), cache
}

func get(t *testing.T, h http.Handler, path string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func TestRootRedirectsToFirstPage(t *testing.T) {
	srv, _ := newTestServer(t, comparisonCSV, summaryCSV)
	rec := get(t, srv.Handler(), "/")
	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/comparison", rec.Header().Get("Location"))
}

func TestPagesRender(t *testing.T) {
	srv, cache := newTestServer(t, comparisonCSV, summaryCSV)

	rec := get(t, srv.Handler(), "/comparison")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Credit Risk Modeling: Model Comparison")
	assert.Contains(t, rec.Body.String(), `href="/summary"`)

	rec = get(t, srv.Handler(), "/summary")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Lowest Threshold")

	rec = get(t, srv.Handler(), "/comparison")
	require.Equal(t, http.StatusOK, rec.Code)
	hits, misses := cache.Stats()
	assert.Equal(t, 1, hits)
	assert.Equal(t, 2, misses)
}

func TestPageJSON(t *testing.T) {
	srv, _ := newTestServer(t, comparisonCSV, summaryCSV)
	rec := get(t, srv.Handler(), "/api/pages/summary")
	require.Equal(t, http.StatusOK, rec.Code)

	var page report.Page
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &page))
	assert.Equal(t, report.PageSummary, page.ID)
	assert.Equal(t, "Balanced Random Forest", page.Summary.BestRecall.Model)
	assert.Equal(t, 2, page.Summary.Count)
	assert.Len(t, page.Tiles, 4)

	rec = get(t, srv.Handler(), "/api/pages/overview")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestBrokenDataRendersFailure(t *testing.T) {
	srv, _ := newTestServer(t, "Model,Accuracy\nA,0.5\n", "Model,Precision (Default),Recall (Default),Accuracy,F1-Score (Default),Threshold\n")

	rec := get(t, srv.Handler(), "/comparison")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "Model Comparison is unavailable")
	assert.NotContains(t, rec.Body.String(), "missing required columns")

	rec = get(t, srv.Handler(), "/api/pages/summary")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "empty_dataset", body["kind"])

	rec = get(t, srv.Handler(), "/api/pages/comparison")
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "data_load", body["kind"])
}

func TestHealthAndMetrics(t *testing.T) {
	srv, _ := newTestServer(t, comparisonCSV, summaryCSV)

	rec := get(t, srv.Handler(), "/healthz")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", rec.Body.String())

	get(t, srv.Handler(), "/comparison")
	rec = get(t, srv.Handler(), "/metrics")
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, `modelcompare_page_renders_total{page="comparison",status="ok"} 1`)
	assert.Contains(t, body, `modelcompare_models_loaded{page="comparison"} 3`)
	assert.Contains(t, body, "modelcompare_cache_misses_total 1")
}
