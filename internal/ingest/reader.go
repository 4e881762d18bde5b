package ingest

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/sanspareilsmyn/turbinelens/internal/analysis"
)

// ReadFile loads a table from path, choosing the reader by extension.
// sheet selects the worksheet of a workbook; empty means the first sheet.
func ReadFile(path, sheet string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrOpenFailed, err)
	}
	defer f.Close()

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".xlsx", ".xlsm":
		return ReadXLSX(f, sheet)
	case ".csv":
		return ReadCSV(f)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFile, ext)
	}
}

// ReadXLSX reads one worksheet of a workbook. Cells are read raw, so time cells arrive as
// serial numbers rather than display strings.
func ReadXLSX(r io.Reader, sheet string) (*Table, error) {
	wb, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrOpenFailed, err)
	}
	defer func() { _ = wb.Close() }()

	sheets := wb.GetSheetList()
	if sheet == "" {
		if len(sheets) == 0 {
			return nil, fmt.Errorf("%w: %w", ErrInputFormat, ErrEmptyTable)
		}
		sheet = sheets[0]
	} else if !contains(sheets, sheet) {
		return nil, fmt.Errorf("%w: %q", ErrSheetNotFound, sheet)
	}

	rows, err := wb.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrOpenFailed, err)
	}
	if len(rows) == 0 {
		return newTable(rows, nil)
	}
	return newTable(rows, serialTimeCells(wb, sheet, rows[0]))
}

// serialTimeCells turns numeric cells of the time column into float64 day serials, which is how
// workbooks store clock values. Text cells stay strings, so "1030" typed as text is still rejected.
func serialTimeCells(wb *excelize.File, sheet string, header []string) cellFunc {
	timeCol := -1
	for i, h := range header {
		if strings.TrimSpace(h) == analysis.ColumnTime {
			timeCol = i
		}
	}

	return func(r, c int, raw string) interface{} {
		if c != timeCol {
			return raw
		}
		cell, err := excelize.CoordinatesToCellName(c+1, r+1)
		if err != nil {
			return raw
		}
		typ, err := wb.GetCellType(sheet, cell)
		if err != nil {
			return raw
		}
		switch typ {
		case excelize.CellTypeSharedString, excelize.CellTypeInlineString, excelize.CellTypeFormula:
			return raw
		}
		f, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
		if err != nil {
			return raw
		}
		return f
	}
}

// ReadCSV reads a comma-separated table with a header row.
func ReadCSV(r io.Reader) (*Table, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInputFormat, err)
	}
	return newTable(records, nil)
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
