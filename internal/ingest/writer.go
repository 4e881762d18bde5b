package ingest

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

// excelTimeFormat is the built-in "h:mm:ss" number format.
const excelTimeFormat = 21

// WriteXLSX writes header and rows to a single-sheet workbook. Columns named in timeColumns
// are styled as clock times; their values should be fractions of a day.
func WriteXLSX(w io.Writer, sheet string, header []string, rows [][]interface{}, timeColumns ...string) error {
	wb := excelize.NewFile()
	defer func() { _ = wb.Close() }()

	if sheet == "" {
		sheet = "Sheet1"
	}
	if err := wb.SetSheetName(wb.GetSheetName(0), sheet); err != nil {
		return fmt.Errorf("%w: %w", ErrWriteFailed, err)
	}

	headerCells := make([]interface{}, len(header))
	for i, h := range header {
		headerCells[i] = h
	}
	if err := wb.SetSheetRow(sheet, "A1", &headerCells); err != nil {
		return fmt.Errorf("%w: %w", ErrWriteFailed, err)
	}

	for i := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrWriteFailed, err)
		}
		if err := wb.SetSheetRow(sheet, cell, &rows[i]); err != nil {
			return fmt.Errorf("%w: %w", ErrWriteFailed, err)
		}
	}

	if len(timeColumns) > 0 {
		style, err := wb.NewStyle(&excelize.Style{NumFmt: excelTimeFormat})
		if err != nil {
			return fmt.Errorf("%w: %w", ErrWriteFailed, err)
		}
		for i, h := range header {
			if !contains(timeColumns, h) {
				continue
			}
			col, err := excelize.ColumnNumberToName(i + 1)
			if err != nil {
				return fmt.Errorf("%w: %w", ErrWriteFailed, err)
			}
			if err := wb.SetColStyle(sheet, col, style); err != nil {
				return fmt.Errorf("%w: %w", ErrWriteFailed, err)
			}
		}
	}

	if err := wb.Write(w); err != nil {
		return fmt.Errorf("%w: %w", ErrWriteFailed, err)
	}
	return nil
}

// WriteCSV writes header and rows as CSV, formatting each cell with %v.
func WriteCSV(w io.Writer, header []string, rows [][]interface{}) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("%w: %w", ErrWriteFailed, err)
	}
	rec := make([]string, len(header))
	for _, row := range rows {
		for i := range rec {
			rec[i] = ""
			if i < len(row) {
				rec[i] = fmt.Sprintf("%v", row[i])
			}
		}
		if err := cw.Write(rec); err != nil {
			return fmt.Errorf("%w: %w", ErrWriteFailed, err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("%w: %w", ErrWriteFailed, err)
	}
	return nil
}
