package openinghours

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	tests := []struct {
		input     string
		expected  Date
		recurring bool
		wantErr   bool
	}{
		{input: "2024-12-25", expected: Date{Year: 2024, Month: time.December, Day: 25}},
		{input: "12-25", expected: Date{Month: time.December, Day: 25}, recurring: true},
		{input: "02-29", expected: Date{Month: time.February, Day: 29}, recurring: true},
		{input: "2024-02-29", expected: Date{Year: 2024, Month: time.February, Day: 29}},
		{input: "2023-02-29", wantErr: true},
		{input: "13-01", wantErr: true},
		{input: "2-3", wantErr: true},
		{input: "2024/12/25", wantErr: true},
		{input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			date, err := ParseDate(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidDate)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, date)
			assert.Equal(t, tt.recurring, date.IsRecurring())
			assert.Equal(t, tt.input, date.String())
		})
	}
}

func TestDate_Compare(t *testing.T) {
	a := Date{Year: 2024, Month: time.March, Day: 1}
	b := Date{Year: 2024, Month: time.February, Day: 28}

	assert.Equal(t, 1, a.Compare(b))
	assert.Equal(t, -1, b.Compare(a))
	assert.Equal(t, 0, a.Compare(a))
	assert.Equal(t, -1, a.MonthDay().Compare(b), "recurring dates sort first")
}

func TestNewDateRange(t *testing.T) {
	tests := []struct {
		name       string
		start, end string
		wantErr    bool
	}{
		{name: "exact", start: "2024-08-01", end: "2024-08-15"},
		{name: "single day", start: "2024-08-01", end: "2024-08-01"},
		{name: "recurring", start: "07-01", end: "07-31"},
		{name: "recurring wrapping the year", start: "12-24", end: "01-02"},
		{name: "exact reversed", start: "2024-08-15", end: "2024-08-01", wantErr: true},
		{name: "mixed", start: "2024-08-01", end: "08-15", wantErr: true},
		{name: "invalid bound", start: "2024-08-01", end: "2024-08-32", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewDateRange(tt.start, tt.end)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidDate)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestClosingPeriod_IsInRange(t *testing.T) {
	at := func(y int, m time.Month, d, hour int) time.Time {
		return time.Date(y, m, d, hour, 30, 0, 0, time.UTC)
	}

	tests := []struct {
		name       string
		start, end string
		at         time.Time
		expected   bool
	}{
		{name: "first day", start: "2024-08-01", end: "2024-08-15", at: at(2024, 8, 1, 0), expected: true},
		{name: "last day, late", start: "2024-08-01", end: "2024-08-15", at: at(2024, 8, 15, 23), expected: true},
		{name: "day after", start: "2024-08-01", end: "2024-08-15", at: at(2024, 8, 16, 0), expected: false},
		{name: "other year", start: "2024-08-01", end: "2024-08-15", at: at(2025, 8, 5, 12), expected: false},
		{name: "recurring", start: "08-01", end: "08-15", at: at(2031, 8, 5, 12), expected: true},
		{name: "recurring outside", start: "08-01", end: "08-15", at: at(2031, 9, 5, 12), expected: false},
		{name: "wrap, december", start: "12-24", end: "01-02", at: at(2024, 12, 30, 12), expected: true},
		{name: "wrap, january", start: "12-24", end: "01-02", at: at(2025, 1, 2, 12), expected: true},
		{name: "wrap, outside", start: "12-24", end: "01-02", at: at(2025, 1, 3, 12), expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			period, err := NewClosingPeriod(tt.start, tt.end)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, period.IsInRange(tt.at))
		})
	}
}
