package metrics

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const summaryCSV = `Model,Precision (Default),Recall (Default),Accuracy,F1-Score (Default),Threshold
Logistic Regression,0.38,0.62,0.74,0.47,0.35
Balanced Random Forest,0.41,0.71,0.76,0.52,0.40
XGBoost,0.63,0.36,0.82,0.46,0.50
`

func writeCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "metrics.csv")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write csv: %v", err)
	}
	return path
}

func TestLoadValidFile(t *testing.T) {
	path := writeCSV(t, summaryCSV)

	table, err := Load(path, SummaryColumns)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if len(table.Columns) != 6 {
		t.Fatalf("expected 6 columns, got %d", len(table.Columns))
	}
	if table.Len() != 3 {
		t.Fatalf("expected 3 rows, got %d", table.Len())
	}
	if table.Rows[1].Model != "Balanced Random Forest" {
		t.Fatalf("row order not preserved: %+v", table.Rows)
	}
	if v, ok := table.Rows[2].Value(ColumnAccuracy); !ok || v != 0.82 {
		t.Fatalf("unexpected accuracy for XGBoost: %v %v", v, ok)
	}
	if table.Source != path {
		t.Fatalf("expected source %s, got %s", path, table.Source)
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.csv"), ComparisonColumns)
	var loadErr *DataLoadError
	if !errors.As(err, &loadErr) {
		t.Fatalf("expected DataLoadError, got %v", err)
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected wrapped ErrNotExist, got %v", err)
	}
}

func TestLoadMissingRequiredColumn(t *testing.T) {
	path := writeCSV(t, "Model,Precision (Default),Accuracy\nA,0.5,0.5\n")
	_, err := Load(path, ComparisonColumns)
	var loadErr *DataLoadError
	if !errors.As(err, &loadErr) {
		t.Fatalf("expected DataLoadError, got %v", err)
	}
	if !strings.Contains(loadErr.Reason, ColumnRecall) {
		t.Fatalf("expected missing recall in reason, got %q", loadErr.Reason)
	}
}

func TestLoadHeaderOnly(t *testing.T) {
	path := writeCSV(t, "Model,Precision (Default),Recall (Default),Accuracy\n")
	_, err := Load(path, ComparisonColumns)
	var emptyErr *EmptyDatasetError
	if !errors.As(err, &emptyErr) {
		t.Fatalf("expected EmptyDatasetError, got %v", err)
	}
}

func TestLoadMalformedInputs(t *testing.T) {
	header := "Model,Precision (Default),Recall (Default),Accuracy\n"
	cases := map[string]string{
		"empty file":      "",
		"ragged row":      header + "A,0.1,0.2\n",
		"not a number":    header + "A,0.1,high,0.3\n",
		"out of range":    header + "A,0.1,1.2,0.3\n",
		"duplicate model": header + "A,0.1,0.2,0.3\nA,0.2,0.3,0.4\n",
		"empty model":     header + ",0.1,0.2,0.3\n",
		"duplicate col":   "Model,Accuracy,Accuracy\nA,0.1,0.2\n",
		"empty col name":  "Model,,Accuracy\nA,0.1,0.2\n",
	}
	for name, content := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Parse(strings.NewReader(content), name, nil)
			var loadErr *DataLoadError
			if !errors.As(err, &loadErr) {
				t.Fatalf("expected DataLoadError, got %v", err)
			}
		})
	}
}

func TestParseTrimsHeaderAndBOM(t *testing.T) {
	content := "\ufeffModel , Precision (Default),Recall (Default),Accuracy\nA,0.1,0.2,0.3\n"
	table, err := Parse(strings.NewReader(content), "bom.csv", ComparisonColumns)
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	if table.Columns[0] != ColumnModel || table.Columns[1] != ColumnPrecision {
		t.Fatalf("header not normalized: %q", table.Columns)
	}
}

func TestValueColumns(t *testing.T) {
	table, err := Parse(strings.NewReader(summaryCSV), "s.csv", SummaryColumns)
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	got := table.ValueColumns()
	if len(got) != 5 || got[0] != ColumnPrecision || got[4] != ColumnThreshold {
		t.Fatalf("unexpected value columns: %q", got)
	}
}

func TestParseKeepsExtraColumnsAsText(t *testing.T) {
	content := "Model,Precision (Default),Recall (Default),Accuracy,Support,Notes\n" +
		"A,0.4,0.6,0.7,1200,baseline\n" +
		"B,0.5,0.5,0.8,980,tuned\n"
	table, err := Parse(strings.NewReader(content), "extra.csv", ComparisonColumns)
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	if len(table.Columns) != 6 {
		t.Fatalf("expected 6 columns, got %q", table.Columns)
	}
	if got := table.ValueColumns(); len(got) != 3 || got[2] != ColumnAccuracy {
		t.Fatalf("extra columns must not be numeric: %q", got)
	}
	if table.Rows[0].Text["Support"] != "1200" || table.Rows[1].Text["Notes"] != "tuned" {
		t.Fatalf("unexpected text cells: %+v", table.Rows)
	}
	if _, ok := table.Rows[0].Value("Support"); ok {
		t.Fatal("Support should not be parsed as a metric")
	}
	if _, err := Melt(table, []string{"Support"}); err == nil {
		t.Fatal("expected Melt to reject a text column")
	}
}

func TestParseRequiredExtraColumnMustBeNumeric(t *testing.T) {
	content := "Model,Recall (Default),Support\nA,0.6,1200\n"
	_, err := Parse(strings.NewReader(content), "extra.csv", []string{ColumnRecall, "Support"})
	var loadErr *DataLoadError
	if !errors.As(err, &loadErr) {
		t.Fatalf("expected DataLoadError for out-of-range required column, got %v", err)
	}
}
