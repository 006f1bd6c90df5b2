package scheduling

import (
	"time"

	"github.com/nathan-osman/go-sunrise"
)

// SunTimes returns the sunrise and sunset on the calendar date of date, at
// the given coordinates, expressed in date's location. ok is false when the
// sun does not rise or set that day.
func SunTimes(latitude, longitude float64, date time.Time) (rise, set time.Time, ok bool) {
	rise, set = sunrise.SunriseSunset(latitude, longitude, date.Year(), date.Month(), date.Day())

	// In the case that the sun does not rise or set on the given day, report no times
	if rise.IsZero() || set.IsZero() {
		return time.Time{}, time.Time{}, false
	}

	loc := date.Location()
	return rise.In(loc), set.In(loc), true
}
