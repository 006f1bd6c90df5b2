package openinghours

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExceptions_Match(t *testing.T) {
	exceptions, err := ParseExceptions(map[string][]string{
		"12-25":      {},
		"2024-12-25": {"10:00-12:00"},
		"01-01":      {"12:00-16:00"},
	})
	require.NoError(t, err)

	h, ok := exceptions.Match(time.Date(2024, 12, 25, 9, 0, 0, 0, time.UTC))
	require.True(t, ok)
	assert.Equal(t, "10:00-12:00", h.String(), "exact date beats recurring")

	h, ok = exceptions.Match(time.Date(2025, 12, 25, 9, 0, 0, 0, time.UTC))
	require.True(t, ok)
	assert.True(t, h.IsEmpty())

	_, ok = exceptions.Match(time.Date(2025, 12, 26, 9, 0, 0, 0, time.UTC))
	assert.False(t, ok)

	dates := exceptions.Dates()
	require.Len(t, dates, 3)
	assert.Equal(t, "01-01", dates[0].String())
	assert.Equal(t, "12-25", dates[1].String())
	assert.Equal(t, "2024-12-25", dates[2].String())
}

func TestParseExceptions_Invalid(t *testing.T) {
	_, err := ParseExceptions(map[string][]string{"12-32": {}})
	assert.ErrorIs(t, err, ErrInvalidDate)

	_, err = ParseExceptions(map[string][]string{"12-24": {"09:00-12:00", "11:00-13:00"}})
	assert.ErrorIs(t, err, ErrOverlappingTimeRanges)
}

func TestFilterChain_FirstMatchWins(t *testing.T) {
	chain := filterChain{
		FilterFunc(func(date time.Time) (OpeningHoursForDay, bool) {
			return OpeningHoursForDay{}, false
		}),
		FilterFunc(func(date time.Time) (OpeningHoursForDay, bool) {
			return MustOpeningHoursForDay("10:00-11:00"), true
		}),
		FilterFunc(func(date time.Time) (OpeningHoursForDay, bool) {
			return MustOpeningHoursForDay("12:00-13:00"), true
		}),
	}

	h, ok := chain.Match(time.Now())
	require.True(t, ok)
	assert.Equal(t, "10:00-11:00", h.String())

	_, ok = filterChain{}.Match(time.Now())
	assert.False(t, ok)
}

func TestCronFilter(t *testing.T) {
	// first of the month
	f, err := CronFilter("1 * *", "10:00-12:00")
	require.NoError(t, err)

	h, ok := f.Match(time.Date(2024, 5, 1, 15, 0, 0, 0, time.UTC))
	require.True(t, ok)
	assert.Equal(t, "10:00-12:00", h.String())

	_, ok = f.Match(time.Date(2024, 5, 2, 15, 0, 0, 0, time.UTC))
	assert.False(t, ok)

	_, err = CronFilter("not a cron", "10:00-12:00")
	assert.ErrorIs(t, err, ErrInvalidFilter)

	_, err = CronFilter("1 * *", "12:00-10:00")
	assert.ErrorIs(t, err, ErrInvalidFilter)
}

func TestSunFilter(t *testing.T) {
	nyc, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)

	date := time.Date(2024, 6, 21, 0, 0, 0, 0, nyc)
	h, ok := SunFilter(40.7128, -74.0060).Match(date)
	require.True(t, ok)
	require.Equal(t, 1, h.Len())

	r := h.Ranges()[0]
	assert.Equal(t, 5, r.Start().Hour(), "summer sunrise in New York is shortly after 05:00")
	assert.Equal(t, 20, r.End().Hour(), "summer sunset in New York is shortly after 20:00")

	widened, ok := SunFilter(40.7128, -74.0060, time.Hour).Match(date)
	require.True(t, ok)
	assert.Equal(t, r.Start().Minutes()-60, widened.Ranges()[0].Start().Minutes())
	assert.Equal(t, r.End().Minutes()+60, widened.Ranges()[0].End().Minutes())

	// polar night
	_, ok = SunFilter(89.5, 0).Match(time.Date(2024, 12, 21, 0, 0, 0, 0, time.UTC))
	assert.False(t, ok)
}
