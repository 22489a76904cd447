package schedule

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// DayLayout is the canonical Year-Month-Day form used for snapshot keys.
const DayLayout = "2006-01-02"

var monthAbbrev = map[string]time.Month{
	"JAN": time.January, "FEB": time.February, "MAR": time.March,
	"APR": time.April, "MAY": time.May, "JUN": time.June,
	"JUL": time.July, "AUG": time.August, "SEP": time.September,
	"OCT": time.October, "NOV": time.November, "DEC": time.December,
}

var dateLayouts = []string{
	"2006-01-02",
	"02/01/2006",
	"02-01-2006",
	"2 Jan 2006",
	"02 Jan 2006",
}

// ParseFlightDate normalizes the heterogeneous date spellings feeds use
// (02JAN2026, 02 Jan 2026, 2026-01-02, 02/01/2026) to a UTC midnight date.
// Empty or unparseable input is an error - a bad date never defaults to
// "matches everything".
func ParseFlightDate(raw string) (time.Time, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return time.Time{}, fmt.Errorf("empty flight date")
	}

	// Compact day-month-year form first: 02JAN2026 / 2JAN2026.
	if d, ok := parseCompactDate(s); ok {
		return d, nil
	}

	for _, layout := range dateLayouts {
		if d, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			return time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, time.UTC), nil
		}
	}

	return time.Time{}, fmt.Errorf("unrecognized flight date %q", raw)
}

func parseCompactDate(s string) (time.Time, bool) {
	upper := strings.ToUpper(s)
	if len(upper) < 6 || len(upper) > 9 {
		return time.Time{}, false
	}

	i := 0
	for i < len(upper) && upper[i] >= '0' && upper[i] <= '9' {
		i++
	}
	if i == 0 || i > 2 || len(upper) < i+7 {
		return time.Time{}, false
	}

	day, err := strconv.Atoi(upper[:i])
	if err != nil {
		return time.Time{}, false
	}
	month, ok := monthAbbrev[upper[i:i+3]]
	if !ok {
		return time.Time{}, false
	}
	year, err := strconv.Atoi(upper[i+3:])
	if err != nil || year < 1000 {
		return time.Time{}, false
	}

	d := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	if d.Day() != day || d.Month() != month {
		return time.Time{}, false
	}
	return d, true
}

// ParseHoursOfDay interprets an STD/STA or wall-clock value as fractional
// hours of day in [0, 24). Accepted forms: HH:MM, HH:MM:SS, compact HHMM,
// and fractional-day numerics in [0, 1) as spreadsheet exports emit them.
func ParseHoursOfDay(raw string) (float64, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0, fmt.Errorf("empty time of day")
	}

	if strings.Contains(s, ":") {
		parts := strings.Split(s, ":")
		if len(parts) < 2 || len(parts) > 3 {
			return 0, fmt.Errorf("unrecognized time of day %q", raw)
		}
		h, err := strconv.Atoi(parts[0])
		if err != nil {
			return 0, fmt.Errorf("unrecognized time of day %q", raw)
		}
		m, err := strconv.Atoi(parts[1])
		if err != nil {
			return 0, fmt.Errorf("unrecognized time of day %q", raw)
		}
		sec := 0
		if len(parts) == 3 {
			sec, err = strconv.Atoi(parts[2])
			if err != nil {
				return 0, fmt.Errorf("unrecognized time of day %q", raw)
			}
		}
		if h < 0 || h > 23 || m < 0 || m > 59 || sec < 0 || sec > 59 {
			return 0, fmt.Errorf("time of day out of range %q", raw)
		}
		return float64(h) + float64(m)/60 + float64(sec)/3600, nil
	}

	// Compact HHMM.
	if len(s) == 4 && isDigits(s) {
		h, _ := strconv.Atoi(s[:2])
		m, _ := strconv.Atoi(s[2:])
		if h > 23 || m > 59 {
			return 0, fmt.Errorf("time of day out of range %q", raw)
		}
		return float64(h) + float64(m)/60, nil
	}

	// Fractional day numeric.
	if v, err := strconv.ParseFloat(s, 64); err == nil {
		if v < 0 || v >= 1 {
			return 0, fmt.Errorf("fractional day out of range %q", raw)
		}
		return v * 24, nil
	}

	return 0, fmt.Errorf("unrecognized time of day %q", raw)
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// HoursOfClock converts a wall-clock instant to fractional hours of day.
func HoursOfClock(t time.Time) float64 {
	return float64(t.Hour()) + float64(t.Minute())/60 + float64(t.Second())/3600
}

// Midnight truncates an instant to its UTC calendar date.
func Midnight(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}
