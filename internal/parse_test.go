package internal

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseHourMinute(t *testing.T) {
	tests := []struct {
		name        string
		input       string
		hour        int
		minute      int
		expectError bool
	}{
		{name: "morning", input: "09:30", hour: 9, minute: 30},
		{name: "midnight", input: "00:00", hour: 0, minute: 0},
		{name: "past midnight", input: "26:15", hour: 26, minute: 15},
		{name: "single digit hour", input: "9:30", expectError: true},
		{name: "missing colon", input: "0930", expectError: true},
		{name: "signed", input: "+9:30", expectError: true},
		{name: "letters", input: "ab:cd", expectError: true},
		{name: "empty", input: "", expectError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hour, minute, err := ParseHourMinute(tt.input)
			if tt.expectError {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.hour, hour)
			assert.Equal(t, tt.minute, minute)
		})
	}
}

func TestParseDuration(t *testing.T) {
	assert.Equal(t, 14*24*time.Hour, ParseDuration("336h"))
	assert.Panics(t, func() { ParseDuration("fortnight") })
}

func TestNextId(t *testing.T) {
	first := NextId()
	second := NextId()
	assert.Greater(t, second, first)
}

func namedFunc() {}

func TestGetFunctionName(t *testing.T) {
	assert.Contains(t, GetFunctionName(namedFunc), "namedFunc")
	assert.Equal(t, "<nil>", GetFunctionName(nil))
	assert.Equal(t, "int", GetFunctionName(3))
}

func TestPtr(t *testing.T) {
	p := Ptr(42)
	require.NotNil(t, p)
	assert.Equal(t, 42, *p)
}
