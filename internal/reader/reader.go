// Package reader decodes transaction sources into the loosely typed rows
// the normalizer consumes. Readers do no validation or coercion beyond the
// container format itself; column mapping and cleaning belong to normalize.
package reader

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"

	"github.com/spendlens/spendlens/internal/normalize"
)

// CSV reads delimited text with a header row. Header cells become row keys
// as-is; the normalizer owns case folding. Fully empty lines are skipped and
// short records leave the trailing columns absent.
func CSV(r io.Reader) ([]normalize.RawRow, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err == io.EOF {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read csv header: %w", err)
	}

	var rows []normalize.RawRow
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read csv record: %w", err)
		}

		if empty(record) {
			continue
		}

		row := make(normalize.RawRow, len(header))
		for i, key := range header {
			if i >= len(record) {
				break
			}
			row[key] = record[i]
		}
		rows = append(rows, row)
	}

	return rows, nil
}

// JSON reads an array of flat objects, the manual-entry path. Values decode
// to string, float64, bool, or nil; nested objects and arrays are rejected
// because the normalizer only understands scalars.
func JSON(r io.Reader) ([]normalize.RawRow, error) {
	var raw []map[string]any
	dec := json.NewDecoder(r)
	if err := dec.Decode(&raw); err != nil {
		return nil, fmt.Errorf("decode json rows: %w", err)
	}

	rows := make([]normalize.RawRow, 0, len(raw))
	for i, obj := range raw {
		for key, value := range obj {
			switch value.(type) {
			case string, float64, bool, nil:
			default:
				return nil, fmt.Errorf("row %d: field %q is not a scalar", i, key)
			}
		}
		rows = append(rows, normalize.RawRow(obj))
	}

	return rows, nil
}

func empty(record []string) bool {
	for _, cell := range record {
		if cell != "" {
			return false
		}
	}
	return true
}
