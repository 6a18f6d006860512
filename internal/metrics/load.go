// internal/metrics/load.go
package metrics

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/mwiater/modelcompare/internal/logging"
)

// Load reads a metrics CSV from path. The header must contain every column in
// required; Model is always required. A header-only file yields an
// EmptyDatasetError, every other failure a DataLoadError.
func Load(path string, required []string) (*Table, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, &DataLoadError{Path: path, Reason: "open", Err: err}
	}
	defer file.Close()

	table, err := Parse(file, path, required)
	if err != nil {
		return nil, err
	}
	logging.LogEvent("[METRICS] Loaded %d models from %s", table.Len(), path)
	return table, nil
}

// Parse decodes CSV content from r. source only labels errors and the result.
func Parse(r io.Reader, source string, required []string) (*Table, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, &DataLoadError{Path: source, Reason: "missing header"}
		}
		return nil, &DataLoadError{Path: source, Reason: "malformed header", Err: err}
	}

	columns, err := normalizeHeader(header)
	if err != nil {
		return nil, &DataLoadError{Path: source, Reason: err.Error()}
	}
	if missing := missingColumns(columns, required); len(missing) > 0 {
		return nil, &DataLoadError{Path: source, Reason: fmt.Sprintf("missing required columns %s", strings.Join(missing, ", "))}
	}

	modelIdx := indexOf(columns, ColumnModel)
	table := &Table{Source: source, Columns: columns, TextColumns: textColumns(columns, required)}
	seen := make(map[string]int)

	for line := 2; ; line++ {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, &DataLoadError{Path: source, Reason: "malformed row", Err: err}
		}

		row, err := parseRow(table, modelIdx, record)
		if err != nil {
			return nil, &DataLoadError{Path: source, Reason: fmt.Sprintf("line %d", line), Err: err}
		}
		if prev, dup := seen[row.Model]; dup {
			return nil, &DataLoadError{Path: source, Reason: fmt.Sprintf("line %d: duplicate model %q (first seen on line %d)", line, row.Model, prev)}
		}
		seen[row.Model] = line
		table.Rows = append(table.Rows, row)
	}

	if len(table.Rows) == 0 {
		return nil, &EmptyDatasetError{Path: source}
	}
	return table, nil
}

func normalizeHeader(header []string) ([]string, error) {
	columns := make([]string, len(header))
	seen := make(map[string]struct{}, len(header))
	for i, name := range header {
		if i == 0 {
			name = strings.TrimPrefix(name, "\ufeff")
		}
		name = strings.TrimSpace(name)
		if name == "" {
			return nil, fmt.Errorf("column %d has an empty name", i+1)
		}
		if _, dup := seen[name]; dup {
			return nil, fmt.Errorf("duplicate column %q", name)
		}
		seen[name] = struct{}{}
		columns[i] = name
	}
	return columns, nil
}

func missingColumns(columns, required []string) []string {
	var missing []string
	if indexOf(columns, ColumnModel) < 0 {
		missing = append(missing, ColumnModel)
	}
	for _, name := range required {
		if name == ColumnModel {
			continue
		}
		if indexOf(columns, name) < 0 {
			missing = append(missing, name)
		}
	}
	return missing
}

// textColumns returns the header columns kept as display text: everything
// except Model, the known metrics and the required columns.
func textColumns(columns, required []string) []string {
	var out []string
	for _, name := range columns {
		if name == ColumnModel || indexOf(MetricColumns, name) >= 0 || indexOf(required, name) >= 0 {
			continue
		}
		out = append(out, name)
	}
	return out
}

func parseRow(t *Table, modelIdx int, record []string) (Row, error) {
	model := strings.TrimSpace(record[modelIdx])
	if model == "" {
		return Row{}, errors.New("empty model name")
	}
	row := Row{Model: model, Values: make(map[string]float64, len(t.Columns)-1)}
	for i, name := range t.Columns {
		if i == modelIdx {
			continue
		}
		raw := strings.TrimSpace(record[i])
		if indexOf(t.TextColumns, name) >= 0 {
			if row.Text == nil {
				row.Text = make(map[string]string, len(t.TextColumns))
			}
			row.Text[name] = raw
			continue
		}
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return Row{}, fmt.Errorf("column %q: %q is not a number", name, raw)
		}
		if math.IsNaN(v) || v < 0 || v > 1 {
			return Row{}, fmt.Errorf("column %q: %v is outside [0,1]", name, v)
		}
		row.Values[name] = v
	}
	return row, nil
}

func indexOf(columns []string, name string) int {
	for i, c := range columns {
		if c == name {
			return i
		}
	}
	return -1
}
