// Package timeutil consolidates the date/time parsing and display formatting
// used around attendance records, so the session controller never touches
// locale or display concerns itself.
package timeutil

import (
	"fmt"
	"math"
	"time"
)

const (
	DateLayout  = "2006-01-02"
	ClockLayout = "15:04:05"
)

// CombineDateClock turns a calendar date ("2006-01-02") and a time-of-day
// ("15:04" or "15:04:05") into a single instant in the local timezone.
func CombineDateClock(date, clock string) (time.Time, error) {
	day, err := time.ParseInLocation(DateLayout, date, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", date, err)
	}

	tod, err := time.Parse(ClockLayout, clock)
	if err != nil {
		tod, err = time.Parse("15:04", clock)
		if err != nil {
			return time.Time{}, fmt.Errorf("invalid time of day %q: %w", clock, err)
		}
	}

	return time.Date(day.Year(), day.Month(), day.Day(),
		tod.Hour(), tod.Minute(), tod.Second(), 0, time.Local), nil
}

// Format12Hour renders an instant as a 12-hour display string, e.g. "9:03 AM".
func Format12Hour(t time.Time) string {
	return t.Format("3:04 PM")
}

// FormatClock renders a stored "15:04[:05]" time-of-day as a 12-hour display
// string. Returns "" for an empty input so callers can show a placeholder.
func FormatClock(clock string) string {
	if clock == "" {
		return ""
	}
	tod, err := time.Parse(ClockLayout, clock)
	if err != nil {
		tod, err = time.Parse("15:04", clock)
		if err != nil {
			return clock
		}
	}
	return Format12Hour(tod)
}

// RoundHours rounds a decimal-hours value to two decimal places.
func RoundHours(hours float64) float64 {
	return math.Round(hours*100) / 100
}

// HoursBetween returns the elapsed time between two instants in decimal
// hours, rounded to two decimal places. Negative spans clamp to zero.
func HoursBetween(from, to time.Time) float64 {
	if to.Before(from) {
		return 0
	}
	return RoundHours(to.Sub(from).Hours())
}
