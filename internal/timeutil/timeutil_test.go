package timeutil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCombineDateClock(t *testing.T) {
	got, err := CombineDateClock("2024-03-01", "09:03:00")
	require.NoError(t, err)

	assert.Equal(t, 2024, got.Year())
	assert.Equal(t, time.March, got.Month())
	assert.Equal(t, 1, got.Day())
	assert.Equal(t, 9, got.Hour())
	assert.Equal(t, 3, got.Minute())
	assert.Equal(t, 0, got.Second())
}

func TestCombineDateClock_MinutePrecision(t *testing.T) {
	got, err := CombineDateClock("2024-03-01", "17:30")
	require.NoError(t, err)

	assert.Equal(t, 17, got.Hour())
	assert.Equal(t, 30, got.Minute())
}

func TestCombineDateClock_Invalid(t *testing.T) {
	_, err := CombineDateClock("03/01/2024", "09:00:00")
	assert.Error(t, err)

	_, err = CombineDateClock("2024-03-01", "9 o'clock")
	assert.Error(t, err)
}

func TestFormatClock(t *testing.T) {
	assert.Equal(t, "9:03 AM", FormatClock("09:03:00"))
	assert.Equal(t, "5:45 PM", FormatClock("17:45:12"))
	assert.Equal(t, "12:00 PM", FormatClock("12:00"))
	assert.Equal(t, "12:15 AM", FormatClock("00:15"))
	assert.Equal(t, "", FormatClock(""))
}

func TestRoundHours(t *testing.T) {
	assert.Equal(t, 2.5, RoundHours(2.4999999))
	assert.Equal(t, 8.5, RoundHours(8.504))
	assert.Equal(t, 0.0, RoundHours(0))
}

func TestHoursBetween(t *testing.T) {
	start := time.Date(2024, 3, 1, 9, 0, 0, 0, time.Local)
	end := time.Date(2024, 3, 1, 11, 30, 0, 0, time.Local)

	assert.Equal(t, 2.5, HoursBetween(start, end))
	assert.Equal(t, 0.0, HoursBetween(end, start))
}
