package etl

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/sen-dwh/aid-etl/internal/pipeline"
)

// ReadXLSX reads raw records from an operator workbook. The first
// sheet is the data sheet; the first row is the header. Headers are
// matched by normalized name, so "KIT A", "kit_a" and "Kit A" are
// interchangeable and unknown columns are ignored.
func ReadXLSX(path string) ([]pipeline.RawRecord, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	if sheet == "" {
		return nil, fmt.Errorf("workbook %s has no sheets", path)
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %s: %w", sheet, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("sheet %s is empty", sheet)
	}

	setters := make([]func(*pipeline.RawRecord, string), len(rows[0]))
	known := 0
	for i, header := range rows[0] {
		if set, ok := columnSetters[normalizeColumn(header)]; ok {
			setters[i] = set
			known++
		}
	}
	if known == 0 {
		return nil, fmt.Errorf("sheet %s has no recognized columns", sheet)
	}

	records := make([]pipeline.RawRecord, 0, len(rows)-1)
	for _, row := range rows[1:] {
		var rec pipeline.RawRecord
		empty := true
		for i, cell := range row {
			if i >= len(setters) || setters[i] == nil {
				continue
			}
			if cell != "" {
				empty = false
			}
			setters[i](&rec, cell)
		}
		if empty {
			continue
		}
		records = append(records, rec)
	}

	fmt.Printf("Read %d records from %s (sheet %s)\n", len(records), path, sheet)
	return records, nil
}
