package metrics

import "fmt"

// DataLoadError reports a metrics file that is missing, unreadable, malformed,
// or lacks required columns.
type DataLoadError struct {
	Path   string
	Reason string
	Err    error
}

func (e *DataLoadError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("load metrics %s: %s: %v", e.Path, e.Reason, e.Err)
	}
	return fmt.Sprintf("load metrics %s: %s", e.Path, e.Reason)
}

func (e *DataLoadError) Unwrap() error { return e.Err }

// EmptyDatasetError reports a table without data rows.
type EmptyDatasetError struct {
	Path string
}

func (e *EmptyDatasetError) Error() string {
	if e.Path == "" {
		return "metrics table has no rows"
	}
	return fmt.Sprintf("metrics file %s has no data rows", e.Path)
}
