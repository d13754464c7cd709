// Package timeutil converts the wall-clock strings shift records carry into
// display values. Malformed input is returned unchanged rather than surfaced
// as an error: the callers are read-mostly views that prefer showing the raw
// value over failing.
package timeutil

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

const dateLayout = "2006-01-02"

// FormatDate renders an ISO YYYY-MM-DD date as "Apr 08, 2025". Anything that
// does not parse comes back unchanged.
func FormatDate(raw string) string {
	if !strings.Contains(raw, "-") {
		return raw
	}
	parsed, err := time.Parse(dateLayout, raw)
	if err != nil {
		return raw
	}
	return parsed.Format("Jan 02, 2006")
}

// FormatTime renders a 24-hour "H:MM" or "HH:MM" string as 12-hour clock with
// no leading zero on the hour, e.g. "2:00 PM". Strings already carrying an
// AM/PM marker are returned as-is, as is anything that fails to parse.
func FormatTime(raw string) string {
	upper := strings.ToUpper(raw)
	if strings.Contains(upper, "AM") || strings.Contains(upper, "PM") {
		return raw
	}

	hour, minute, ok := ParseClock(raw)
	if !ok {
		return raw
	}

	period := "AM"
	if hour >= 12 && hour < 24 {
		period = "PM"
	}
	display := hour % 12
	if display == 0 {
		display = 12
	}
	return fmt.Sprintf("%d:%02d %s", display, minute, period)
}

// CalculateDuration returns end minus start in fractional hours. Both
// arguments may be 24-hour or 12-hour strings. Inverted ranges produce a
// negative value; cross-midnight shifts are not modeled.
func CalculateDuration(start, end string) float64 {
	return clockHours(end) - clockHours(start)
}

// ParseClock splits a 24-hour "H:MM" string into its parts. ok is false when
// the string is not a plausible wall-clock value.
func ParseClock(raw string) (hour, minute int, ok bool) {
	parts := strings.SplitN(strings.TrimSpace(raw), ":", 2)
	if len(parts) != 2 {
		return 0, 0, false
	}
	h, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return 0, 0, false
	}
	m, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return 0, 0, false
	}
	if h < 0 || h > 24 || m < 0 || m > 59 {
		return 0, 0, false
	}
	return h, m, true
}

// clockHours normalises either time format into fractional hours since
// midnight. Unparseable input counts as zero, mirroring the soft-fail policy
// of the formatters.
func clockHours(raw string) float64 {
	upper := strings.ToUpper(strings.TrimSpace(raw))

	period := ""
	for _, p := range []string{"AM", "PM"} {
		if strings.HasSuffix(upper, p) {
			period = p
			upper = strings.TrimSpace(strings.TrimSuffix(upper, p))
			break
		}
	}

	hour, minute, ok := ParseClock(upper)
	if !ok {
		return 0
	}

	switch period {
	case "AM":
		if hour == 12 {
			hour = 0
		}
	case "PM":
		if hour != 12 {
			hour += 12
		}
	}

	return float64(hour) + float64(minute)/60
}
