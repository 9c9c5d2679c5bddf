package io

import (
	"fmt"

	"github.com/brian-c-moore/fixtures-fixtures/internal/logging"
	"github.com/xuri/excelize/v2"
)

// pickSheet returns sheet when it exists, otherwise the active sheet with the
// first sheet as a fallback.
func pickSheet(f *excelize.File, sheet, path string) (string, error) {
	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return "", fmt.Errorf("XLSX file '%s' contains no sheets", path)
	}
	if sheet != "" {
		for _, name := range sheets {
			if name == sheet {
				return name, nil
			}
		}
		return "", fmt.Errorf("sheet '%s' not found in '%s' (available: %v)", sheet, path, sheets)
	}
	if name := f.GetSheetName(f.GetActiveSheetIndex()); name != "" {
		return name, nil
	}
	return sheets[0], nil
}

// XLSXRows returns the rows of sheet as displayed by Excel. An empty sheet
// name selects the active sheet. Trailing empty cells are not included.
func XLSXRows(path, sheet string) ([][]string, error) {
	logging.Logf(logging.Debug, "XLSX reading file: %s (Sheet: '%s')", path, sheet)
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open XLSX file '%s': %w", path, err)
	}
	defer func() {
		if err := f.Close(); err != nil {
			logging.Logf(logging.Error, "failed to close XLSX file '%s': %v", path, err)
		}
	}()

	target, err := pickSheet(f, sheet, path)
	if err != nil {
		return nil, err
	}
	rows, err := f.GetRows(target)
	if err != nil {
		return nil, fmt.Errorf("failed to get rows from sheet '%s' in '%s': %w", target, path, err)
	}
	logging.Logf(logging.Debug, "XLSX sheet '%s' of %s has %d rows", target, path, len(rows))
	return rows, nil
}

// XLSXRecordReader reads header-keyed records from one sheet of a workbook.
type XLSXRecordReader struct {
	Sheet string
}

// Read implements RecordReader. Short rows are padded with empty strings;
// cells beyond the header are an error.
func (xr *XLSXRecordReader) Read(path string) ([]Record, error) {
	rows, err := XLSXRows(path, xr.Sheet)
	if err != nil {
		return nil, err
	}
	records := make([]Record, 0)
	if len(rows) == 0 {
		return records, nil
	}

	header := rows[0]
	if err := checkHeader(path, header); err != nil {
		return nil, err
	}
	for i, row := range rows[1:] {
		if len(row) > len(header) {
			return nil, dataErr(path, i, "row has %d cells but the header has %d", len(row), len(header))
		}
		rec := newRecord(len(header))
		for col, name := range header {
			value := ""
			if col < len(row) {
				value = row[col]
			}
			rec.set(name, value)
		}
		records = append(records, rec)
	}
	logging.Logf(logging.Debug, "XLSXRecordReader loaded %d records from %s", len(records), path)
	return records, nil
}
