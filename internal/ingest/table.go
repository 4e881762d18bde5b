// Package ingest reads turbine logs from spreadsheet or CSV files and converts them to samples.
package ingest

import (
	"fmt"
	"strings"

	"github.com/sanspareilsmyn/turbinelens/internal/analysis"
	"github.com/sanspareilsmyn/turbinelens/internal/record"
)

const snippetLength = 40

// Table is a header plus rows keyed by that header.
type Table struct {
	Header []string
	Rows   []record.Row
}

// cellFunc converts the raw text at records[r][c] to the value stored in the row.
type cellFunc func(r, c int, raw string) interface{}

// newTable builds a Table from raw string records, the first being the header.
// Short rows are padded with empty cells and blank rows are skipped. A nil convert keeps every
// cell as text.
func newTable(records [][]string, convert cellFunc) (*Table, error) {
	if len(records) == 0 {
		return nil, fmt.Errorf("%w: %w", ErrInputFormat, ErrEmptyTable)
	}

	header := make([]string, len(records[0]))
	for i, h := range records[0] {
		header[i] = strings.TrimSpace(h)
	}

	t := &Table{Header: header, Rows: make([]record.Row, 0, len(records)-1)}
	for r := 1; r < len(records); r++ {
		rec := records[r]
		if isBlank(rec) {
			continue
		}
		row := make(record.Row, len(header))
		for i, col := range header {
			if col == "" {
				continue
			}
			switch {
			case i < len(rec) && convert != nil:
				row[col] = convert(r, i, rec[i])
			case i < len(rec):
				row[col] = rec[i]
			default:
				row[col] = ""
			}
		}
		t.Rows = append(t.Rows, row)
	}
	return t, nil
}

func isBlank(rec []string) bool {
	for _, c := range rec {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

// MissingColumns returns the required columns absent from the header.
func (t *Table) MissingColumns() []string {
	present := make(map[string]struct{}, len(t.Header))
	for _, h := range t.Header {
		present[h] = struct{}{}
	}
	var missing []string
	for _, col := range analysis.RequiredColumns {
		if _, ok := present[col]; !ok {
			missing = append(missing, col)
		}
	}
	return missing
}

// Samples converts every row to an analysis.Sample. The first bad cell aborts the conversion;
// no partial result is returned.
func (t *Table) Samples() ([]analysis.Sample, error) {
	if missing := t.MissingColumns(); len(missing) > 0 {
		return nil, fmt.Errorf("%w: %w: %s", ErrInputFormat, ErrMissingColumn, strings.Join(missing, ", "))
	}

	samples := make([]analysis.Sample, 0, len(t.Rows))
	for i, row := range t.Rows {
		s, err := toSample(row, i+2)
		if err != nil {
			return nil, err
		}
		samples = append(samples, s)
	}
	return samples, nil
}

func toSample(row record.Row, rowNum int) (analysis.Sample, error) {
	var s analysis.Sample

	floats := []struct {
		col string
		dst *float64
	}{
		{analysis.ColumnDCVoltage, &s.DCVoltage},
		{analysis.ColumnDCCurrent, &s.DCCurrent},
		{analysis.ColumnEuv, &s.Euv},
		{analysis.ColumnEvw, &s.Evw},
		{analysis.ColumnEwu, &s.Ewu},
		{analysis.ColumnIu, &s.Iu},
		{analysis.ColumnIv, &s.Iv},
		{analysis.ColumnIw, &s.Iw},
		{analysis.ColumnWindSpeed, &s.WindSpeed},
	}
	for _, f := range floats {
		v, err := row.GetFloat64(f.col)
		if err != nil {
			return s, cellError(row, f.col, rowNum, err)
		}
		*f.dst = v
	}
	if s.WindSpeed < 0 {
		return s, cellError(row, analysis.ColumnWindSpeed, rowNum, ErrNegativeWindSpeed)
	}

	code, err := row.GetInt(analysis.ColumnStatusCode)
	if err != nil {
		return s, cellError(row, analysis.ColumnStatusCode, rowNum, err)
	}
	s.StatusCode = code

	tod, err := row.GetTimeOfDay(analysis.ColumnTime)
	if err != nil {
		return s, cellError(row, analysis.ColumnTime, rowNum, err)
	}
	s.Time = tod

	return s, nil
}

func cellError(row record.Row, col string, rowNum int, err error) error {
	return &DataFormatError{
		Field: col,
		Row:   rowNum,
		Value: row.GetFieldSnippet(col, snippetLength),
		Err:   err,
	}
}
