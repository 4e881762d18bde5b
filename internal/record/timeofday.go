package record

import (
	"fmt"
	"math"
	"strings"
	"time"
)

const day = 24 * time.Hour

// TimeOfDay is a wall-clock time expressed as the offset since midnight, in [0, 24h).
// Every timestamp representation accepted at ingestion collapses to this type.
type TimeOfDay time.Duration

// NewTimeOfDay builds a TimeOfDay from clock components.
func NewTimeOfDay(hour, min, sec, nsec int) TimeOfDay {
	d := time.Duration(hour)*time.Hour +
		time.Duration(min)*time.Minute +
		time.Duration(sec)*time.Second +
		time.Duration(nsec)
	return TimeOfDay(d)
}

// FromTime extracts the clock portion of t in t's location.
func FromTime(t time.Time) TimeOfDay {
	return NewTimeOfDay(t.Hour(), t.Minute(), t.Second(), t.Nanosecond())
}

// Duration returns the offset since midnight.
func (t TimeOfDay) Duration() time.Duration { return time.Duration(t) }

// On places t on the calendar date of ref, in ref's location.
func (t TimeOfDay) On(ref time.Time) time.Time {
	y, m, d := ref.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, ref.Location()).Add(time.Duration(t))
}

// String renders HH:MM:SS, dropping sub-second precision.
func (t TimeOfDay) String() string {
	d := time.Duration(t)
	h := d / time.Hour
	d -= h * time.Hour
	m := d / time.Minute
	d -= m * time.Minute
	s := d / time.Second
	return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
}

var clockLayouts = []string{
	"15:04:05",
	"15:04:05.999999999",
	"15:04",
}

var dateTimeLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02 15:04",
	"01/02/2006 15:04:05",
}

// ParseTimeOfDay normalizes a raw cell into a TimeOfDay. Accepted inputs are clock strings
// ("HH:MM:SS"), datetime strings, time.Time values, TimeOfDay values and spreadsheet serial numbers
// (whole days plus a fraction of a day, the fraction being the clock time). Serials must arrive as
// numbers: numeric text such as "1030" is not a time and is rejected.
func ParseTimeOfDay(val interface{}) (TimeOfDay, error) {
	switch v := val.(type) {
	case TimeOfDay:
		return checkRange(v)
	case time.Time:
		return FromTime(v), nil
	case float64:
		return fromSerial(v)
	case int64:
		return fromSerial(float64(v))
	case int:
		return fromSerial(float64(v))
	case string:
		return parseString(v)
	case nil:
		return 0, ErrNullField
	}
	return 0, fmt.Errorf("%w: unsupported type %T", ErrUnparseableTime, val)
}

func parseString(raw string) (TimeOfDay, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0, ErrNullField
	}

	for _, layout := range clockLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return FromTime(t), nil
		}
	}
	for _, layout := range dateTimeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return FromTime(t), nil
		}
	}

	return 0, fmt.Errorf("%w: %q", ErrUnparseableTime, raw)
}

func fromSerial(serial float64) (TimeOfDay, error) {
	if math.IsNaN(serial) || math.IsInf(serial, 0) || serial < 0 {
		return 0, fmt.Errorf("%w: serial %v", ErrTimeOutOfRange, serial)
	}
	frac := serial - math.Floor(serial)
	// Serials carry float noise, so snap to the millisecond.
	ms := math.Round(frac * float64(day/time.Millisecond))
	d := time.Duration(ms) * time.Millisecond
	if d >= day {
		d -= day
	}
	return TimeOfDay(d), nil
}

func checkRange(t TimeOfDay) (TimeOfDay, error) {
	if t < 0 || time.Duration(t) >= day {
		return 0, fmt.Errorf("%w: %v", ErrTimeOutOfRange, time.Duration(t))
	}
	return t, nil
}
