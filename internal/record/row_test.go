package record

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetFloat64(t *testing.T) {
	row := Row{
		"a": 1.5,
		"b": " 2.25 ",
		"c": int64(3),
		"d": "abc",
		"e": "",
		"f": nil,
	}

	v, err := row.GetFloat64("a")
	require.NoError(t, err)
	assert.Equal(t, 1.5, v)

	v, err = row.GetFloat64("b")
	require.NoError(t, err)
	assert.Equal(t, 2.25, v)

	v, err = row.GetFloat64("c")
	require.NoError(t, err)
	assert.Equal(t, 3.0, v)

	_, err = row.GetFloat64("d")
	assert.ErrorIs(t, err, ErrNotNumeric)

	_, err = row.GetFloat64("e")
	assert.ErrorIs(t, err, ErrNullField)

	_, err = row.GetFloat64("f")
	assert.ErrorIs(t, err, ErrNullField)

	_, err = row.GetFloat64("missing")
	assert.ErrorIs(t, err, ErrMissingField)
}

func TestGetFloat64RejectsNonFinite(t *testing.T) {
	row := Row{
		"nan":      "NaN",
		"inf":      "Inf",
		"neginf":   "-Infinity",
		"nanValue": math.NaN(),
		"infValue": math.Inf(1),
	}
	for col := range row {
		_, err := row.GetFloat64(col)
		assert.ErrorIs(t, err, ErrNotNumeric, col)
	}
}

func TestGetInt(t *testing.T) {
	row := Row{"a": "16", "b": "5.0", "c": 3.0, "d": 3.5, "e": "x"}

	for col, want := range map[string]int{"a": 16, "b": 5, "c": 3} {
		got, err := row.GetInt(col)
		require.NoError(t, err, col)
		assert.Equal(t, want, got, col)
	}

	_, err := row.GetInt("d")
	assert.ErrorIs(t, err, ErrNotInteger)
	_, err = row.GetInt("e")
	assert.ErrorIs(t, err, ErrNotInteger)
}

func TestGetFieldSnippet(t *testing.T) {
	row := Row{"long": "0123456789"}
	assert.Equal(t, "<missing>", row.GetFieldSnippet("nope", 5))
	assert.Equal(t, "01234...", row.GetFieldSnippet("long", 5))
	assert.Equal(t, "0123456789", row.GetFieldSnippet("long", 20))
	assert.Equal(t, "...", row.GetFieldSnippet("long", 0))
}

func TestParseTimeOfDay(t *testing.T) {
	want := NewTimeOfDay(10, 15, 30, 0)

	tests := []struct {
		name string
		in   interface{}
		want TimeOfDay
	}{
		{"clock string", "10:15:30", want},
		{"clock string padded", " 10:15:30 ", want},
		{"fractional seconds", "10:15:30.5", NewTimeOfDay(10, 15, 30, 500_000_000)},
		{"datetime string", "2024-03-01 10:15:30", want},
		{"rfc3339", "2024-03-01T10:15:30Z", want},
		{"time value", time.Date(2023, 7, 4, 10, 15, 30, 0, time.UTC), want},
		{"time of day", want, want},
		{"serial fraction", (10*3600.0 + 15*60 + 30) / 86400, want},
		{"serial with date", 45000 + (10*3600.0+15*60+30)/86400, want},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseTimeOfDay(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseTimeOfDayRejectsGarbage(t *testing.T) {
	for _, in := range []interface{}{"noon", "25:00:00", -1.0, true, TimeOfDay(25 * time.Hour), math.NaN()} {
		_, err := ParseTimeOfDay(in)
		assert.Error(t, err, "%v", in)
	}

	_, err := ParseTimeOfDay("")
	assert.ErrorIs(t, err, ErrNullField)
}

func TestParseTimeOfDayRejectsNumericText(t *testing.T) {
	for _, in := range []string{"1030", "12", "0.5", "45000.25"} {
		_, err := ParseTimeOfDay(in)
		assert.ErrorIs(t, err, ErrUnparseableTime, in)
	}
}

func TestTimeOfDayString(t *testing.T) {
	assert.Equal(t, "00:00:00", TimeOfDay(0).String())
	assert.Equal(t, "23:59:59", NewTimeOfDay(23, 59, 59, 999_000_000).String())
	assert.Equal(t, "07:05:09", NewTimeOfDay(7, 5, 9, 0).String())
}

func TestTimeOfDayOn(t *testing.T) {
	ref := time.Date(2000, 1, 1, 17, 0, 0, 0, time.UTC)
	got := NewTimeOfDay(10, 0, 29, 0).On(ref)
	assert.Equal(t, time.Date(2000, 1, 1, 10, 0, 29, 0, time.UTC), got)
}
