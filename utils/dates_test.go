package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCombineDateTime(t *testing.T) {
	date := time.Date(2025, 3, 10, 23, 59, 59, 0, time.UTC)

	combined, err := CombineDateTime(date, "14:30")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 3, 10, 14, 30, 0, 0, time.UTC), combined)
}

func TestCombineDateTimeInvalid(t *testing.T) {
	date := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)

	for _, clock := range []string{"", "25:00", "9am", "14-30"} {
		_, err := CombineDateTime(date, clock)
		assert.Error(t, err, "expected error for %q", clock)
	}
}

func TestDaysBetween(t *testing.T) {
	start := time.Date(2025, 3, 10, 22, 0, 0, 0, time.UTC)
	end := time.Date(2025, 3, 12, 1, 0, 0, 0, time.UTC)

	assert.Equal(t, 2, DaysBetween(start, end))
	assert.Equal(t, 0, DaysBetween(start, start))
}
