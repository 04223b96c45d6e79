package adapters

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"
)

// xlsxMagic is the ZIP local-file-header signature; .xlsx payloads are ZIP
// containers, so this is enough to tell them apart from CSV text.
var xlsxMagic = []byte{0x50, 0x4b, 0x03, 0x04}

// table is a decoded upload payload: one header row plus data rows.
// Row numbers reported in errors are 1-based and count the header.
type table struct {
	header  []string
	rows    [][]string
	rowErrs []RowError
}

// headerIndex maps lowercased, trimmed column names to their position.
func (t *table) headerIndex() map[string]int {
	idx := make(map[string]int, len(t.header))
	for i, col := range t.header {
		idx[strings.ToLower(strings.TrimSpace(col))] = i
	}
	return idx
}

// decodePayload reads a CSV or XLSX payload into a table. XLSX payloads are
// detected by the ZIP magic so uploads can be Excel exports of the same
// sources.
func decodePayload(payload []byte) (*table, error) {
	if bytes.HasPrefix(payload, xlsxMagic) {
		return decodeXLSX(payload)
	}
	return decodeCSV(payload)
}

func decodeCSV(payload []byte) (*table, error) {
	reader := csv.NewReader(bytes.NewReader(payload))
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	t := &table{header: header}
	rowNum := 1
	for {
		rowNum++
		row, readErr := reader.Read()
		if errors.Is(readErr, io.EOF) {
			break
		}
		if readErr != nil {
			// Malformed row: record and keep reading.
			t.rowErrs = append(t.rowErrs, RowError{Row: rowNum, Err: readErr})
			continue
		}
		t.rows = append(t.rows, row)
	}

	return t, nil
}

func decodeXLSX(payload []byte) (*table, error) {
	f, err := excelize.OpenReader(bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("open xlsx: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, errors.New("xlsx has no sheets")
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("read sheet %s: %w", sheets[0], err)
	}
	if len(rows) == 0 {
		return nil, errors.New("xlsx sheet is empty")
	}

	t := &table{header: rows[0]}
	for _, row := range rows[1:] {
		// Excel drops trailing empty cells; pad so column lookups line up.
		for len(row) < len(t.header) {
			row = append(row, "")
		}
		t.rows = append(t.rows, row)
	}

	return t, nil
}
