package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReminderTimeOptionsOrder(t *testing.T) {
	options := ReminderTimeOptions()
	require.Len(t, options, 6)

	codes := make([]string, len(options))
	for i, option := range options {
		codes[i] = option.Code
	}
	assert.Equal(t, []string{"24h", "12h", "6h", "2h", "1h", "30m"}, codes)

	// Returned slice is a copy; mutating it must not affect the catalog.
	options[0].Code = "mutated"
	assert.Equal(t, "24h", ReminderTimeOptions()[0].Code)
}

func TestLookupReminderTime(t *testing.T) {
	option, ok := LookupReminderTime("30m")
	require.True(t, ok)
	assert.Equal(t, 0.5, option.Hours)
	assert.Equal(t, 30*time.Minute, option.LeadTime())

	option, ok = LookupReminderTime("24h")
	require.True(t, ok)
	assert.Equal(t, 24*time.Hour, option.LeadTime())

	_, ok = LookupReminderTime("48h")
	assert.False(t, ok)
}
