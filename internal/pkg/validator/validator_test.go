package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsValidClock(t *testing.T) {
	tests := []struct {
		input   string
		minutes int
		valid   bool
	}{
		{"08:00", 480, true},
		{"08:10", 490, true},
		{"00:00", 0, true},
		{"23:59", 1439, true},
		{"24:00", 0, false},
		{"8:00", 0, false},
		{"08:60", 0, false},
		{"0800", 0, false},
		{"", 0, false},
	}

	for _, tt := range tests {
		minutes, ok := IsValidClock(tt.input)
		assert.Equal(t, tt.valid, ok, "input %q", tt.input)
		if tt.valid {
			assert.Equal(t, tt.minutes, minutes, "input %q", tt.input)
		}
	}
}

func TestIsValidDate(t *testing.T) {
	date, ok := IsValidDate("2026-02-14")
	assert.True(t, ok)
	assert.Equal(t, 2026, date.Year())

	_, ok = IsValidDate("14-02-2026")
	assert.False(t, ok)
}

func TestValidationErrorsToMap(t *testing.T) {
	errs := ValidationErrors{
		{Field: "date", Message: "is required"},
		{Field: "reason", Message: "is required"},
	}

	assert.Equal(t, "date: is required; reason: is required", errs.Error())
	assert.Equal(t, map[string]string{"date": "is required", "reason": "is required"}, errs.ToMap())
}
