// Package record holds a single raw table row and the typed conversions applied at ingestion.
package record

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Row represents one table row keyed by column header.
// Cell values are whatever the reader produced: string, float64, int64 or time.Time.
type Row map[string]interface{}

// HasNonNull checks if a column exists and holds a non-blank value.
func (r Row) HasNonNull(col string) bool {
	val, exists := r[col]
	if !exists || val == nil {
		return false
	}
	if s, ok := val.(string); ok {
		return strings.TrimSpace(s) != ""
	}
	return true
}

// GetFloat64 converts a cell to a finite float64.
// Numeric strings are accepted since CSV and formatted spreadsheet cells arrive as text.
func (r Row) GetFloat64(col string) (float64, error) {
	val, err := r.lookup(col)
	if err != nil {
		return 0, err
	}

	var f float64
	switch v := val.(type) {
	case float64:
		f = v
	case float32:
		f = float64(v)
	case int:
		return float64(v), nil
	case int64:
		return float64(v), nil
	case string:
		parsed, perr := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if perr != nil {
			return 0, fmt.Errorf("%w: %q", ErrNotNumeric, v)
		}
		f = parsed
	default:
		return 0, fmt.Errorf("%w: %T", ErrNotNumeric, val)
	}

	// ParseFloat accepts "NaN" and "Inf"; neither is a reading.
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("%w: %v", ErrNotNumeric, f)
	}
	return f, nil
}

// GetInt converts a cell to int. Floats are accepted only when integral ("5" and "5.0" both work).
func (r Row) GetInt(col string) (int, error) {
	val, err := r.lookup(col)
	if err != nil {
		return 0, err
	}

	switch v := val.(type) {
	case int:
		return v, nil
	case int64:
		return int(v), nil
	case string:
		s := strings.TrimSpace(v)
		if i, perr := strconv.Atoi(s); perr == nil {
			return i, nil
		}
		f, perr := strconv.ParseFloat(s, 64)
		if perr != nil {
			return 0, fmt.Errorf("%w: %q", ErrNotInteger, v)
		}
		return integral(f)
	case float64:
		return integral(v)
	}
	return 0, fmt.Errorf("%w: %T", ErrNotInteger, val)
}

// GetTimeOfDay normalizes a cell to a TimeOfDay.
func (r Row) GetTimeOfDay(col string) (TimeOfDay, error) {
	val, err := r.lookup(col)
	if err != nil {
		return 0, err
	}
	return ParseTimeOfDay(val)
}

// GetFieldSnippet returns a string snippet of a cell, useful for logging and error messages.
func (r Row) GetFieldSnippet(col string, maxLength int) string {
	value, exists := r[col]
	if !exists {
		return "<missing>"
	}

	strValue := fmt.Sprintf("%v", value)
	if maxLength <= 0 {
		return "..."
	}
	if len(strValue) > maxLength {
		return strValue[:maxLength] + "..."
	}
	return strValue
}

func (r Row) lookup(col string) (interface{}, error) {
	val, exists := r[col]
	if !exists {
		return nil, ErrMissingField
	}
	if !r.HasNonNull(col) {
		return nil, ErrNullField
	}
	return val, nil
}

func integral(f float64) (int, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) {
		return 0, fmt.Errorf("%w: %v", ErrNotInteger, f)
	}
	return int(f), nil
}
