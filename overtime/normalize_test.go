package overtime_test

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"otconsole/overtime"
)

func TestParseDay(t *testing.T) {
	day, err := overtime.ParseDay("2025-06-03", plant)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 6, 3, 0, 0, 0, 0, plant), day)

	day, err = overtime.ParseDay("2025-06-03T17:00:00.000Z", plant)
	require.NoError(t, err)
	assert.Equal(t, 3, day.Day(), "time component is dropped, not converted")

	_, err = overtime.ParseDay("", plant)
	assert.True(t, errors.Is(err, overtime.ErrMissing))

	_, err = overtime.ParseDay("03/06/2025", plant)
	assert.True(t, errors.Is(err, overtime.ErrBadFormat))
}

func TestParseClock(t *testing.T) {
	day := time.Date(2025, 6, 3, 0, 0, 0, 0, plant)

	tests := []struct {
		in   string
		want time.Time
	}{
		{"06:30", time.Date(2025, 6, 3, 6, 30, 0, 0, plant)},
		{"6:30", time.Date(2025, 6, 3, 6, 30, 0, 0, plant)},
		{"17:15:20", time.Date(2025, 6, 3, 17, 15, 20, 0, plant)},
		{"2025-06-04T01:00", time.Date(2025, 6, 4, 1, 0, 0, 0, plant)},
		{"2025-06-04T01:00:30", time.Date(2025, 6, 4, 1, 0, 30, 0, plant)},
		{"2025-06-03T23:30:00Z", time.Date(2025, 6, 4, 6, 30, 0, 0, plant)},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := overtime.ParseClock(day, tt.in, plant)
			require.NoError(t, err)
			assert.True(t, tt.want.Equal(got), "want %s, got %s", tt.want, got)
			assert.Equal(t, plant, got.Location())
		})
	}

	_, err := overtime.ParseClock(day, "", plant)
	assert.True(t, errors.Is(err, overtime.ErrMissing))

	_, err = overtime.ParseClock(day, "noon", plant)
	assert.True(t, errors.Is(err, overtime.ErrBadFormat))
}

func TestNormalize(t *testing.T) {
	day := time.Date(2025, 6, 3, 0, 0, 0, 0, plant)
	in := time.Date(2025, 6, 3, 22, 0, 0, 0, plant)

	span := overtime.Normalize(day, in, time.Date(2025, 6, 3, 23, 0, 0, 0, plant))
	assert.Equal(t, time.Hour, span.Duration(), "later clock-out is kept")

	span = overtime.Normalize(day, in, time.Date(2025, 6, 3, 6, 0, 0, 0, plant))
	assert.Equal(t, time.Date(2025, 6, 4, 6, 0, 0, 0, plant), span.Out)
	assert.Equal(t, 8*time.Hour, span.Duration())

	span = overtime.Normalize(day, in, in)
	assert.Equal(t, 24*time.Hour, span.Duration(), "equal times roll over")
}

func TestSpan_NightShift(t *testing.T) {
	day := time.Date(2025, 6, 3, 0, 0, 0, 0, plant)
	in := time.Date(2025, 6, 3, 13, 0, 0, 0, plant)

	assert.False(t, overtime.Normalize(day, in, time.Date(2025, 6, 3, 21, 15, 0, 0, plant)).NightShift())
	assert.True(t, overtime.Normalize(day, in, time.Date(2025, 6, 3, 21, 15, 1, 0, plant)).NightShift())
}

func TestRoundQuarter(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want string
	}{
		{0, "0"},
		{-time.Hour, "0"},
		{66 * time.Minute, "1"},
		{67*time.Minute + 48*time.Second, "1.25"},
		{67*time.Minute + 30*time.Second, "1.25"},
		{7*time.Minute + 29*time.Second, "0"},
		{7*time.Minute + 30*time.Second, "0.25"},
		{105 * time.Minute, "1.75"},
		{24 * time.Hour, "24"},
		{100 * 365 * 24 * time.Hour, "876000"},
		{1<<63 - 1, "2562047.75"},
	}
	for _, tt := range tests {
		t.Run(tt.d.String(), func(t *testing.T) {
			assertHours(t, tt.want, overtime.RoundQuarter(tt.d))
		})
	}
}

func TestParseShift(t *testing.T) {
	tests := []struct {
		in      string
		want    overtime.Shift
		wantErr bool
	}{
		{"", overtime.ShiftA, false},
		{"A", overtime.ShiftA, false},
		{" b ", overtime.ShiftB, false},
		{"C", "", true},
	}
	for _, tt := range tests {
		got, err := overtime.ParseShift(tt.in)
		if tt.wantErr {
			assert.True(t, errors.Is(err, overtime.ErrUnknownShift), "input %q", tt.in)
			continue
		}
		require.NoError(t, err, "input %q", tt.in)
		assert.Equal(t, tt.want, got)
	}
}

func TestShift_End(t *testing.T) {
	day := time.Date(2025, 6, 3, 0, 0, 0, 0, plant)

	assert.Equal(t, time.Date(2025, 6, 3, 15, 30, 0, 0, plant), overtime.ShiftA.End(day))
	assert.Equal(t, time.Date(2025, 6, 3, 17, 30, 0, 0, plant), overtime.ShiftB.End(day))
	assert.False(t, overtime.Shift("Z").Valid())
}

func TestDateSet(t *testing.T) {
	set := overtime.NewDateSet("2025-12-25", "2025-01-01T00:00:00Z", "not-a-date", "")

	assert.Equal(t, 2, set.Len())
	assert.Equal(t, []string{"2025-01-01", "2025-12-25"}, set.Dates())
	assert.True(t, set.Contains(time.Date(2025, 12, 25, 9, 0, 0, 0, plant)))
	assert.False(t, set.Contains(time.Date(2025, 12, 26, 0, 0, 0, 0, plant)))
	assert.False(t, set.Contains(time.Time{}))

	var unloaded overtime.DateSet
	assert.False(t, unloaded.Contains(time.Date(2025, 12, 25, 0, 0, 0, 0, plant)))
	assert.Equal(t, 0, unloaded.Len())
}
