package openinghours

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTime(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		hour    int
		minute  int
		wantErr bool
	}{
		{name: "morning", input: "09:30", hour: 9, minute: 30},
		{name: "midnight", input: "00:00", hour: 0, minute: 0},
		{name: "end of day", input: "24:00", hour: 24, minute: 0},
		{name: "next day", input: "26:15", hour: 26, minute: 15},
		{name: "last extended hour", input: "47:59", hour: 47, minute: 59},
		{name: "hour too large", input: "48:00", wantErr: true},
		{name: "minute too large", input: "10:60", wantErr: true},
		{name: "single digit hour", input: "9:00", wantErr: true},
		{name: "no separator", input: "0900", wantErr: true},
		{name: "letters", input: "ab:cd", wantErr: true},
		{name: "empty", input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseTime(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidTimeString)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.hour, got.Hour())
			assert.Equal(t, tt.minute, got.Minute())
			assert.Equal(t, tt.input, got.String())
		})
	}
}

func TestTime_Compare(t *testing.T) {
	a := MustParseTime("09:00")
	b := MustParseTime("25:00")

	assert.True(t, a.Before(b))
	assert.True(t, b.After(a))
	assert.True(t, a.Equal(MustParseTime("09:00")))
	assert.Equal(t, 0, a.Compare(a))
	assert.Equal(t, 1500, b.Minutes())
	assert.True(t, b.IsNextDay())
	assert.False(t, a.IsNextDay())
}

func TestTime_On(t *testing.T) {
	date := time.Date(2024, 3, 4, 15, 45, 0, 0, time.UTC)

	assert.Equal(t, time.Date(2024, 3, 4, 9, 30, 0, 0, time.UTC), MustParseTime("09:30").On(date))
	assert.Equal(t, time.Date(2024, 3, 5, 2, 0, 0, 0, time.UTC), MustParseTime("26:00").On(date))
}

func TestTimeFromStdTime(t *testing.T) {
	got := TimeFromStdTime(time.Date(2024, 3, 4, 15, 45, 59, 0, time.UTC))
	assert.Equal(t, "15:45", got.String())
}
