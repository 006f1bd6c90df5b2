package openinghours

import (
	"fmt"
	"strings"
	"time"
)

// Day is a day of the week, numbered by ISO 8601 (Monday = 1, Sunday = 7).
type Day int

const (
	Monday Day = iota + 1
	Tuesday
	Wednesday
	Thursday
	Friday
	Saturday
	Sunday
)

var dayNames = [...]string{
	Monday:    "monday",
	Tuesday:   "tuesday",
	Wednesday: "wednesday",
	Thursday:  "thursday",
	Friday:    "friday",
	Saturday:  "saturday",
	Sunday:    "sunday",
}

// Days returns the days of the week, Monday first.
func Days() []Day {
	return []Day{Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday}
}

// ParseDay returns the Day named s, ignoring case.
func ParseDay(s string) (Day, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for _, d := range Days() {
		if dayNames[d] == name {
			return d, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidDayName, s)
}

// IsValidDay reports whether s names a day of the week.
func IsValidDay(s string) bool {
	_, err := ParseDay(s)
	return err == nil
}

// DayFromISO returns the day with ISO number n (1 to 7).
func DayFromISO(n int) (Day, error) {
	d := Day(n)
	if !d.Valid() {
		return 0, fmt.Errorf("%w: ISO day number %d", ErrInvalidDayName, n)
	}
	return d, nil
}

// DayOf returns the day of the week t falls on, in t's location.
func DayOf(t time.Time) Day {
	if t.Weekday() == time.Sunday {
		return Sunday
	}
	return Day(t.Weekday())
}

func (d Day) Valid() bool {
	return d >= Monday && d <= Sunday
}

// ISO returns the ISO 8601 day number.
func (d Day) ISO() int {
	return int(d)
}

// Weekday returns the equivalent time.Weekday.
func (d Day) Weekday() time.Weekday {
	return time.Weekday(int(d) % 7)
}

// Name returns the capitalized English name, e.g. "Monday".
func (d Day) Name() string {
	s := d.String()
	return strings.ToUpper(s[:1]) + s[1:]
}

// String returns the lowercase English name, e.g. "monday".
func (d Day) String() string {
	if !d.Valid() {
		return fmt.Sprintf("Day(%d)", int(d))
	}
	return dayNames[d]
}
