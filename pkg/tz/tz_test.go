package tz

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatEventDate(t *testing.T) {
	// 06:30 UTC is 08:30 in Paris during summer time.
	d := time.Date(2026, 7, 14, 6, 30, 0, 0, time.UTC)
	assert.Equal(t, "14/07/2026 à 08:30", FormatEventDate(d))
	assert.Empty(t, FormatEventDate(time.Time{}))
}

func TestParseDay(t *testing.T) {
	d, err := ParseDay("2026-01-15")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 1, 14, 23, 0, 0, 0, time.UTC), d.UTC())

	_, err = ParseDay("15/01/2026")
	assert.Error(t, err)
}

func TestEndOfDay(t *testing.T) {
	d := time.Date(2026, 1, 15, 10, 0, 0, 0, Paris)
	end := EndOfDay(d)
	assert.Equal(t, 15, end.Day())
	assert.True(t, end.Add(time.Nanosecond).Equal(time.Date(2026, 1, 16, 0, 0, 0, 0, Paris)))
}
