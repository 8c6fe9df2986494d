package dataset

import (
	"bytes"
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"

	"github.com/jszwec/csvutil"
	"github.com/rotisserie/eris"

	"github.com/intit/supplier-enrich/internal/model"
)

// utf8BOM is prepended on write and stripped on read; the upstream
// spreadsheet tooling produces and expects BOM-prefixed files.
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// FromCSV reads a supplier template CSV into records. Unknown columns are
// ignored; columns absent from the file leave their fields empty. Every
// record starts with enrichmentStatus Success so only an actual failure
// flips it.
func FromCSV(path string) ([]model.Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrap(err, "dataset: read csv")
	}
	data = bytes.TrimPrefix(data, utf8BOM)

	var records []model.Record
	if err := csvutil.Unmarshal(data, &records); err != nil {
		return nil, eris.Wrap(err, "dataset: decode csv")
	}

	for i := range records {
		records[i].EnrichmentStatus = model.StatusSuccess
	}
	return records, nil
}

// ToCSV writes records to a CSV file with the fixed template headers.
func ToCSV(path string, records []model.Record) error {
	data, err := csvutil.Marshal(records)
	if err != nil {
		return eris.Wrap(err, "dataset: encode csv")
	}

	out := make([]byte, 0, len(utf8BOM)+len(data))
	out = append(out, utf8BOM...)
	out = append(out, data...)

	if err := os.WriteFile(path, out, 0o644); err != nil {
		return eris.Wrap(err, "dataset: write csv")
	}
	return nil
}

// JSONPath returns the working-file path for an input CSV.
func JSONPath(csvPath string) string {
	return strings.TrimSuffix(csvPath, filepath.Ext(csvPath)) + ".json"
}

// EnhancedCSVPath returns the output path convention for an input CSV.
func EnhancedCSVPath(csvPath string) string {
	return strings.TrimSuffix(csvPath, filepath.Ext(csvPath)) + " - Enhanced.csv"
}

// CountCSVRows counts non-empty data rows in a CSV file, skipping the
// header.
func CountCSVRows(path string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, eris.Wrap(err, "dataset: open csv")
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1

	count := 0
	first := true
	for {
		row, err := reader.Read()
		if err != nil {
			break
		}
		if first {
			first = false
			continue
		}
		for _, field := range row {
			if strings.TrimSpace(field) != "" {
				count++
				break
			}
		}
	}
	return count, nil
}
