package openinghours

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuilder_Build(t *testing.T) {
	hours, err := NewBuilder().
		DayName("monday", "09:00-12:00").
		Day(Monday, "13:00-17:00").
		DayData(Monday, "long day").
		Exception("12-25").
		ExceptionData("12-25", "christmas").
		Build()
	require.NoError(t, err)

	monday := hours.ForDay(Monday)
	assert.Equal(t, "09:00-12:00,13:00-17:00", monday.String(), "ranges accumulate")
	assert.Equal(t, "long day", monday.Data())

	christmas := hours.ForDate(time.Date(2030, 12, 25, 10, 0, 0, 0, time.UTC))
	assert.True(t, christmas.IsEmpty())
	assert.Equal(t, "christmas", christmas.Data())
}

func TestBuilder_AccumulatesErrors(t *testing.T) {
	_, err := NewBuilder().
		DayName("funday", "09:00-12:00").
		Day(Tuesday, "09:00-12:00", "11:00-13:00").
		Day(Wednesday, "25:00-24:00").
		Exception("2024-02-30").
		ClosingPeriod("2024-08-15", "2024-08-01").
		Timezone("Nowhere/Special").
		Filter(nil).
		Build()
	require.Error(t, err)

	assert.ErrorIs(t, err, ErrInvalidDayName)
	assert.ErrorIs(t, err, ErrOverlappingTimeRanges)
	assert.ErrorIs(t, err, ErrInvalidTimeRange)
	assert.ErrorIs(t, err, ErrInvalidDate)
	assert.ErrorIs(t, err, ErrInvalidTimezone)
	assert.ErrorIs(t, err, ErrInvalidFilter)
}

func TestBuilder_MergeOverlapping(t *testing.T) {
	hours, err := NewBuilder().
		Day(Monday, "09:00-12:00", "11:00-13:00", "13:00-14:00").
		Exception("2024-03-05", "10:00-11:00", "10:30-12:00").
		MergeOverlapping().
		Build()
	require.NoError(t, err)

	assert.Equal(t, "09:00-13:00,13:00-14:00", hours.ForDay(Monday).String())
	assert.Equal(t, "10:00-12:00", hours.ForDate(at(5, 0, 0)).String())
}

func TestBuilder_Location(t *testing.T) {
	loc := time.FixedZone("UTC+2", 2*60*60)
	hours, err := NewBuilder().Location(loc).Build()
	require.NoError(t, err)

	assert.Equal(t, loc, hours.Timezone())
}
