// Command gensample generates example import files for every built-in
// source, in both CSV and Excel form.
// Usage: go run cmd/gensample/main.go
package main

import (
	"encoding/csv"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/jonesrussell/gotools/internal/adapters"
)

const outputDir = "samples"

func main() {
	registry := adapters.NewDefaultRegistry()

	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		log.Fatal(err)
	}

	for _, source := range []string{
		adapters.TAAFTSource,
		adapters.ProductHuntSource,
		adapters.HexofySource,
	} {
		adapter, err := registry.Resolve(source)
		if err != nil {
			log.Fatal(err)
		}

		header, row := adapter.SampleFormat()
		base := filepath.Join(outputDir, fileStem(source))

		if err := writeCSV(base+".csv", header, row); err != nil {
			log.Fatal(err)
		}
		if err := writeXLSX(base+".xlsx", header, row); err != nil {
			log.Fatal(err)
		}

		log.Printf("Created %s.csv and %s.xlsx", base, base)
	}
}

func fileStem(source string) string {
	return strings.ReplaceAll(source, ".", "_")
}

func writeCSV(path string, header, row []string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		return err
	}
	if err := w.Write(row); err != nil {
		return err
	}
	w.Flush()
	return w.Error()
}

func writeXLSX(path string, header, row []string) error {
	f := excelize.NewFile()

	const sheet = "Sheet1"
	for i, value := range header {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, value); err != nil {
			return err
		}
	}
	for i, value := range row {
		cell, err := excelize.CoordinatesToCellName(i+1, 2)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, value); err != nil {
			return err
		}
	}

	return f.SaveAs(path)
}
