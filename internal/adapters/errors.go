package adapters

import (
	"fmt"
	"strings"
)

// FormatError reports a payload whose shape does not match the adapter's
// source. The whole batch is rejected before any persistence.
type FormatError struct {
	Source  string
	Missing []string
	Reason  string
}

func (e *FormatError) Error() string {
	if len(e.Missing) > 0 {
		return fmt.Sprintf("invalid %s payload: missing required columns: %s",
			e.Source, strings.Join(e.Missing, ", "))
	}
	return fmt.Sprintf("invalid %s payload: %s", e.Source, e.Reason)
}

// RowError reports a single malformed row. The row is dropped and counted;
// the rest of the batch continues.
type RowError struct {
	Row int
	Err error
}

func (e RowError) Error() string {
	return fmt.Sprintf("row %d: %v", e.Row, e.Err)
}

func (e RowError) Unwrap() error {
	return e.Err
}

// UnsupportedSourceError reports a registry lookup for an unknown source id.
// It carries the registered ids so the caller's error message stays
// actionable.
type UnsupportedSourceError struct {
	Source    string
	Available []string
}

func (e *UnsupportedSourceError) Error() string {
	return fmt.Sprintf("unsupported source %q, available sources: %s",
		e.Source, strings.Join(e.Available, ", "))
}
