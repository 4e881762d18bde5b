package record

import "errors"

var (
	ErrMissingField    = errors.New("field is missing")
	ErrNullField       = errors.New("field is empty")
	ErrNotNumeric      = errors.New("value is not numeric")
	ErrNotInteger      = errors.New("value is not an integer")
	ErrUnparseableTime = errors.New("value is not a recognised time of day")
	ErrTimeOutOfRange  = errors.New("time of day out of range")
)
