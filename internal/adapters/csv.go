package adapters

import (
	"errors"
	"strings"
)

// errEmptyRow marks rows with no usable values at all.
var errEmptyRow = errors.New("empty row")

// getter returns the trimmed cell value for a column name
// (case-insensitive), or "" if the column is absent.
type getter func(column string) string

// rowMapper maps one decoded row onto a RawRecord using the source's
// column layout. Returning an error drops the row as a RowError.
type rowMapper func(get getter) (RawRecord, error)

// CSVAdapter parses tabular upload payloads (CSV or XLSX) for one source.
// Concrete sources are just a column layout plus a rowMapper.
type CSVAdapter struct {
	source       string
	expected     []string
	required     []string
	sampleHeader []string
	sampleRow    []string
	mapRow       rowMapper
}

func (a *CSVAdapter) SourceName() string {
	return a.source
}

func (a *CSVAdapter) ExpectedFields() []string {
	return append([]string(nil), a.expected...)
}

func (a *CSVAdapter) SampleFormat() (header, row []string) {
	return append([]string(nil), a.sampleHeader...), append([]string(nil), a.sampleRow...)
}

// ValidateFormat checks that every required column is present, matching
// header names case-insensitively.
func (a *CSVAdapter) ValidateFormat(payload []byte) error {
	t, err := decodePayload(payload)
	if err != nil {
		return &FormatError{Source: a.source, Reason: err.Error()}
	}

	idx := t.headerIndex()
	var missing []string
	for _, col := range a.required {
		if _, ok := idx[strings.ToLower(col)]; !ok {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return &FormatError{Source: a.source, Missing: missing}
	}
	return nil
}

// Parse reads the whole payload into raw records. Rows the decoder or the
// mapper rejects become RowErrors; the rest of the batch continues.
func (a *CSVAdapter) Parse(payload []byte) ([]RawRecord, []RowError) {
	t, err := decodePayload(payload)
	if err != nil {
		return nil, []RowError{{Row: 1, Err: err}}
	}

	idx := t.headerIndex()
	records := make([]RawRecord, 0, len(t.rows))
	rowErrs := append([]RowError(nil), t.rowErrs...)

	for i, row := range t.rows {
		get := func(column string) string {
			pos, ok := idx[strings.ToLower(column)]
			if !ok || pos >= len(row) {
				return ""
			}
			return strings.TrimSpace(row[pos])
		}

		rec, mapErr := a.mapRow(get)
		if mapErr != nil {
			if errors.Is(mapErr, errEmptyRow) {
				continue // blank padding rows are not errors
			}
			rowErrs = append(rowErrs, RowError{Row: i + 2, Err: mapErr})
			continue
		}
		records = append(records, rec)
	}

	return records, rowErrs
}

// rowIsEmpty reports whether none of the columns carry a value.
func rowIsEmpty(get getter, columns []string) bool {
	for _, col := range columns {
		if get(col) != "" {
			return false
		}
	}
	return true
}
