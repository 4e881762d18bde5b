package analysis

import (
	"errors"
	"fmt"
)

var ErrDataFormat = errors.New("data format error")

// DataFormatError names the field and sample that could not be interpreted.
type DataFormatError struct {
	Field string
	Index int
	Err   error
}

func (e *DataFormatError) Error() string {
	return fmt.Sprintf("%v: field %q at sample %d: %v", ErrDataFormat, e.Field, e.Index, e.Err)
}

func (e *DataFormatError) Unwrap() []error {
	return []error{ErrDataFormat, e.Err}
}
