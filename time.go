package openinghours

import (
	"fmt"
	"time"

	"github.com/Xevion/go-openinghours/internal"
)

// maxHour bounds the extended-hour encoding: a range may run until just
// before midnight of the day after the one it belongs to.
const maxHour = 47

const minutesPerDay = 24 * 60

// Time is a wall clock time within a day. Hours of 24 and above mean the time
// falls after midnight but still belongs to the day the range started on, so
// "18:00-26:00" runs until 02:00 the next morning.
type Time struct {
	hour   int
	minute int
}

// NewTime returns the Time for hour and minute, with hour in [0, 47] and
// minute in [0, 59].
func NewTime(hour, minute int) (Time, error) {
	if hour < 0 || hour > maxHour {
		return Time{}, fmt.Errorf("%w: hour %d must be between 0 and %d", ErrInvalidTimeString, hour, maxHour)
	}
	if minute < 0 || minute > 59 {
		return Time{}, fmt.Errorf("%w: minute %d must be between 0 and 59", ErrInvalidTimeString, minute)
	}
	return Time{hour: hour, minute: minute}, nil
}

// ParseTime parses a "HH:MM" string such as "09:30" or "25:00".
func ParseTime(s string) (Time, error) {
	hour, minute, err := internal.ParseHourMinute(s)
	if err != nil {
		return Time{}, fmt.Errorf("%w: %w", ErrInvalidTimeString, err)
	}
	return NewTime(hour, minute)
}

// MustParseTime is like ParseTime but panics on invalid input.
func MustParseTime(s string) Time {
	t, err := ParseTime(s)
	if err != nil {
		panic(err)
	}
	return t
}

// TimeFromStdTime returns the wall clock hour and minute of t. Seconds are
// dropped.
func TimeFromStdTime(t time.Time) Time {
	return Time{hour: t.Hour(), minute: t.Minute()}
}

func timeFromMinutes(minutes int) Time {
	return Time{hour: minutes / 60, minute: minutes % 60}
}

func (t Time) Hour() int {
	return t.hour
}

func (t Time) Minute() int {
	return t.minute
}

// Minutes returns the number of minutes since the start of the day.
func (t Time) Minutes() int {
	return t.hour*60 + t.minute
}

// Compare returns -1, 0 or +1 depending on whether t is before, equal to or
// after other.
func (t Time) Compare(other Time) int {
	switch a, b := t.Minutes(), other.Minutes(); {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

func (t Time) Before(other Time) bool {
	return t.Compare(other) < 0
}

func (t Time) After(other Time) bool {
	return t.Compare(other) > 0
}

func (t Time) Equal(other Time) bool {
	return t.Compare(other) == 0
}

// IsNextDay reports whether the time is encoded past midnight (hour >= 24).
func (t Time) IsNextDay() bool {
	return t.hour >= 24
}

// On returns the instant at this time on the calendar date of date, in
// date's location. Hours past 23 land on the following dates.
func (t Time) On(date time.Time) time.Time {
	y, m, d := date.Date()
	return time.Date(y, m, d, t.hour, t.minute, 0, 0, date.Location())
}

// String returns the time as "HH:MM".
func (t Time) String() string {
	return fmt.Sprintf("%02d:%02d", t.hour, t.minute)
}
