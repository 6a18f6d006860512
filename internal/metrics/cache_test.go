package metrics

import (
	"errors"
	"os"
	"testing"
	"time"
)

func TestCacheReusesUnchangedFile(t *testing.T) {
	path := writeCSV(t, summaryCSV)
	cache := NewCache()

	first, err := cache.Load(path, SummaryColumns)
	if err != nil {
		t.Fatalf("first load: %v", err)
	}
	second, err := cache.Load(path, SummaryColumns)
	if err != nil {
		t.Fatalf("second load: %v", err)
	}
	if first != second {
		t.Fatal("expected cached table to be reused")
	}
	if hits, misses := cache.Stats(); hits != 1 || misses != 1 {
		t.Fatalf("expected 1 hit and 1 miss, got %d/%d", hits, misses)
	}
}

func TestCacheReloadsChangedFile(t *testing.T) {
	path := writeCSV(t, summaryCSV)
	cache := NewCache()
	if _, err := cache.Load(path, SummaryColumns); err != nil {
		t.Fatalf("first load: %v", err)
	}

	updated := summaryCSV + "Naive Bayes,0.30,0.80,0.60,0.44,0.20\n"
	if err := os.WriteFile(path, []byte(updated), 0o644); err != nil {
		t.Fatalf("rewrite: %v", err)
	}
	later := time.Now().Add(2 * time.Second)
	if err := os.Chtimes(path, later, later); err != nil {
		t.Fatalf("chtimes: %v", err)
	}

	table, err := cache.Load(path, SummaryColumns)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if table.Len() != 4 {
		t.Fatalf("expected reloaded table with 4 rows, got %d", table.Len())
	}
}

func TestCacheDoesNotKeepFailures(t *testing.T) {
	path := writeCSV(t, "Model,Precision (Default),Recall (Default),Accuracy\n")
	cache := NewCache()
	_, err := cache.Load(path, ComparisonColumns)
	var emptyErr *EmptyDatasetError
	if !errors.As(err, &emptyErr) {
		t.Fatalf("expected EmptyDatasetError, got %v", err)
	}
	if _, err := cache.Load(path+".missing", ComparisonColumns); err == nil {
		t.Fatal("expected stat error for missing file")
	}
}

func TestNilCacheLoadsDirectly(t *testing.T) {
	path := writeCSV(t, summaryCSV)
	var cache *Cache
	table, err := cache.Load(path, SummaryColumns)
	if err != nil || table.Len() != 3 {
		t.Fatalf("nil cache load: %v %v", table, err)
	}
}
