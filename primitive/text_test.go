package primitive

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTextualBool(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"yes", true}, {"YES", true}, {" on ", true}, {"true", true}, {"y", true}, {"1", true},
		{"no", false}, {"Off", false}, {"false", false}, {"n", false}, {"0", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseTextualBool(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := ParseTextualBool("maybe")
	assert.ErrorContains(t, err, `"maybe" is not a textual boolean`)
}

func TestNumericBool(t *testing.T) {
	b, err := ParseNumericBool("1")
	require.NoError(t, err)
	assert.True(t, b)

	_, err = ParseNumericBool("yes")
	assert.Error(t, err)

	s, _ := FormatNumericBool(false)
	assert.Equal(t, "0", s)
}

func TestDates(t *testing.T) {
	ts, err := ParseDatetime("2025-02-11T17:30:05.25+01:00")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 2, 11, 16, 30, 5, 250_000_000, time.UTC), ts.UTC())

	s, _ := FormatDatetime(ts)
	assert.Equal(t, "2025-02-11T17:30:05.25+01:00", s)

	d, err := ParseDate("2025-02-11")
	require.NoError(t, err)
	s, _ = FormatDate(d)
	assert.Equal(t, "2025-02-11", s)

	_, err = ParseDate("11/02/2025")
	assert.Error(t, err)
}

func TestParseRFC822(t *testing.T) {
	want := time.Date(2025, 2, 11, 9, 0, 0, 0, time.UTC)

	for _, in := range []string{
		"Tue, 11 Feb 2025 09:00:00 +0000",
		"Tue, 11 Feb 2025 09:00:00 UTC",
		"Tue, 11 Feb 2025 09:00 +0000",
		"11 Feb 25 09:00 +0000",
	} {
		t.Run(in, func(t *testing.T) {
			got, err := ParseRFC822(in)
			require.NoError(t, err)
			assert.True(t, want.Equal(got), "got %s", got)
		})
	}

	_, err := ParseRFC822("2025-02-11")
	assert.Error(t, err)

	s, _ := FormatRFC822(want)
	assert.Equal(t, "Tue, 11 Feb 2025 09:00:00 +0000", s)
}

func TestTimestamp(t *testing.T) {
	ts, err := ParseTimestamp("1739264400")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 2, 11, 9, 0, 0, 0, time.UTC), ts)

	s, _ := FormatTimestamp(ts.Add(999 * time.Millisecond))
	assert.Equal(t, "1739264400", s)
}

func TestDurations(t *testing.T) {
	d, err := ParseDuration("2h45m")
	require.NoError(t, err)
	assert.Equal(t, 165*time.Minute, d)

	s, _ := FormatDuration(d)
	assert.Equal(t, "2h45m0s", s)

	d, err = ParseNanoseconds("1500")
	require.NoError(t, err)
	assert.Equal(t, 1500*time.Nanosecond, d)

	d, err = ParseSeconds("1.5")
	require.NoError(t, err)
	assert.Equal(t, 1500*time.Millisecond, d)

	s, _ = FormatSeconds(90 * time.Second)
	assert.Equal(t, "90", s)

	s, _ = FormatSeconds(250 * time.Millisecond)
	assert.Equal(t, "0.25", s)

	_, err = ParseSeconds("1e300")
	assert.ErrorContains(t, err, "out of range")

	_, err = ParseSeconds("NaN")
	assert.Error(t, err)
}
