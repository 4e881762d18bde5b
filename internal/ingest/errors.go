package ingest

import (
	"errors"
	"fmt"
)

var (
	ErrInputFormat       = errors.New("input format error")
	ErrMissingColumn     = errors.New("required column missing")
	ErrNegativeWindSpeed = errors.New("wind speed is negative")
	ErrUnsupportedFile   = errors.New("unsupported file type")
	ErrEmptyTable        = errors.New("table has no header row")
	ErrSheetNotFound     = errors.New("sheet not found")
	ErrOpenFailed        = errors.New("failed to open input")
	ErrWriteFailed       = errors.New("failed to write table")
)

// DataFormatError reports a cell that could not be converted to its column's type.
// Row is the 1-based spreadsheet row, header included.
type DataFormatError struct {
	Field string
	Row   int
	Value string
	Err   error
}

func (e *DataFormatError) Error() string {
	return fmt.Sprintf("%v: column %q row %d value %q: %v", ErrInputFormat, e.Field, e.Row, e.Value, e.Err)
}

func (e *DataFormatError) Unwrap() []error {
	return []error{ErrInputFormat, e.Err}
}
