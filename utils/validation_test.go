package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidatePhone(t *testing.T) {
	valid := []string{"+15550100", "+44 20 7946 0958", "9876543210", "(555) 010-0199"}
	for _, phone := range valid {
		assert.True(t, ValidatePhone(phone), "expected %q to be valid", phone)
	}

	invalid := []string{"", "abc", "0123", "+"}
	for _, phone := range invalid {
		assert.False(t, ValidatePhone(phone), "expected %q to be invalid", phone)
	}
}

func TestValidateTimeOfDay(t *testing.T) {
	valid := []string{"00:00", "09:30", "14:05", "23:59"}
	for _, clock := range valid {
		assert.True(t, ValidateTimeOfDay(clock), "expected %q to be valid", clock)
	}

	invalid := []string{"", "24:00", "9:30", "14:60", "noon", "14:5"}
	for _, clock := range invalid {
		assert.False(t, ValidateTimeOfDay(clock), "expected %q to be invalid", clock)
	}
}
