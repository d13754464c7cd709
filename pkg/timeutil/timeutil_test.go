package timeutil

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatDate(t *testing.T) {
	assert.Equal(t, "Apr 08, 2025", FormatDate("2025-04-08"))
	assert.Equal(t, "Dec 31, 2024", FormatDate("2024-12-31"))
}

func TestFormatDateSoftFailure(t *testing.T) {
	assert.Equal(t, "not-a-date", FormatDate("not-a-date"))
	assert.Equal(t, "April 8", FormatDate("April 8"))
	assert.Equal(t, "", FormatDate(""))
}

func TestFormatTime(t *testing.T) {
	cases := map[string]string{
		"14:00": "2:00 PM",
		"0:30":  "12:30 AM",
		"00:05": "12:05 AM",
		"9:00":  "9:00 AM",
		"12:00": "12:00 PM",
		"23:59": "11:59 PM",
		"24:00": "12:00 AM",
	}
	for input, want := range cases {
		assert.Equal(t, want, FormatTime(input), "input %q", input)
	}
}

func TestFormatTimePassthrough(t *testing.T) {
	assert.Equal(t, "9:00 AM", FormatTime("9:00 AM"))
	assert.Equal(t, "11:45 PM", FormatTime("11:45 PM"))
	assert.Equal(t, "soon", FormatTime("soon"))
	assert.Equal(t, "25:00", FormatTime("25:00"))
}

func TestFormatTimeRoundTrip(t *testing.T) {
	for h := 0; h <= 23; h++ {
		for _, m := range []int{0, 1, 30, 59} {
			raw := fmt.Sprintf("%d:%02d", h, m)
			formatted := FormatTime(raw)

			gotHour, gotMinute, ok := ParseClock(trimPeriod(t, formatted))
			require.True(t, ok, "formatted %q", formatted)

			wantHour := h % 12
			if wantHour == 0 {
				wantHour = 12
			}
			assert.Equal(t, wantHour, gotHour, "raw %q formatted %q", raw, formatted)
			assert.Equal(t, m, gotMinute)
		}
	}
}

func trimPeriod(t *testing.T, formatted string) string {
	t.Helper()
	require.Greater(t, len(formatted), 3)
	return formatted[:len(formatted)-3]
}

func TestCalculateDuration(t *testing.T) {
	assert.InDelta(t, 4, CalculateDuration("9:00", "13:00"), 1e-9)
	assert.InDelta(t, 2.5, CalculateDuration("9:30", "12:00"), 1e-9)
	assert.InDelta(t, 4, CalculateDuration("9:00 AM", "1:00 PM"), 1e-9)
	assert.InDelta(t, 0.5, CalculateDuration("11:30 PM", "24:00"), 1e-9)
	assert.InDelta(t, 12.5, CalculateDuration("12:00 AM", "12:30 PM"), 1e-9)
}

func TestCalculateDurationInvertedRange(t *testing.T) {
	assert.InDelta(t, -4, CalculateDuration("13:00", "9:00"), 1e-9)
}

func TestParseClock(t *testing.T) {
	h, m, ok := ParseClock("07:45")
	require.True(t, ok)
	assert.Equal(t, 7, h)
	assert.Equal(t, 45, m)

	_, _, ok = ParseClock("7")
	assert.False(t, ok)
	_, _, ok = ParseClock("7:xx")
	assert.False(t, ok)
	_, _, ok = ParseClock("-1:00")
	assert.False(t, ok)
}
