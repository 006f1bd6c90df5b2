package openinghours

import (
	"fmt"
	"maps"
	"slices"
	"time"

	"github.com/Xevion/go-openinghours/internal"
	"github.com/Xevion/go-openinghours/internal/scheduling"
)

// Override supplies the schedule for a date when it has something to say
// about it. The resolution engine consults closing periods, filters, exact
// exceptions and recurring exceptions, in that order, before falling back to
// the regular week.
type Override interface {
	Match(date time.Time) (OpeningHoursForDay, bool)
}

// Exceptions maps dates to the schedule that replaces the regular one. Keys
// with a zero Year recur every year.
type Exceptions map[Date]OpeningHoursForDay

// ParseExceptions parses the keys ("YYYY-MM-DD" or "MM-DD") and hours of a
// string keyed exception table.
func ParseExceptions(definitions map[string][]string) (Exceptions, error) {
	exceptions := make(Exceptions, len(definitions))
	for key, defs := range definitions {
		date, err := ParseDate(key)
		if err != nil {
			return nil, err
		}
		hours, err := OpeningHoursForDayFromStrings(defs)
		if err != nil {
			return nil, fmt.Errorf("exception %s: %w", key, err)
		}
		exceptions[date] = hours
	}
	return exceptions, nil
}

// Match looks up the exact date first, then the recurring month-day.
func (e Exceptions) Match(date time.Time) (OpeningHoursForDay, bool) {
	if h, ok := e.exact(date); ok {
		return h, true
	}
	return e.recurring(date)
}

func (e Exceptions) exact(date time.Time) (OpeningHoursForDay, bool) {
	h, ok := e[DateOf(date)]
	return h, ok
}

func (e Exceptions) recurring(date time.Time) (OpeningHoursForDay, bool) {
	h, ok := e[DateOf(date).MonthDay()]
	return h, ok
}

// Dates returns the keys in chronological order, recurring dates first.
func (e Exceptions) Dates() []Date {
	return slices.SortedFunc(maps.Keys(e), Date.Compare)
}

// Filter is a dynamically evaluated override, consulted before exceptions.
// Filters must be pure functions of the date.
type Filter interface {
	Override
}

// FilterFunc adapts an ordinary function to a Filter.
type FilterFunc func(date time.Time) (OpeningHoursForDay, bool)

func (f FilterFunc) Match(date time.Time) (OpeningHoursForDay, bool) {
	return f(date)
}

func (f FilterFunc) String() string {
	return fmt.Sprintf("FilterFunc{ %s }", internal.GetFunctionName(f))
}

// filterChain evaluates filters in registration order; the first match wins.
type filterChain []Filter

func (c filterChain) Match(date time.Time) (OpeningHoursForDay, bool) {
	for _, f := range c {
		if h, ok := f.Match(date); ok {
			return h, true
		}
	}
	return OpeningHoursForDay{}, false
}

// CronDateFilter applies fixed hours to every date matching a cron style
// day-of-month / month / day-of-week expression.
type CronDateFilter struct {
	matcher *scheduling.DateMatcher
	hours   OpeningHoursForDay
}

// CronFilter returns a filter applying hours to dates matching expression,
// e.g. "1 * *" for the first of every month or "* 12 0" for the Sundays of
// December. As in cron, a day of month and a day of week that are both
// restricted match either way: "1 * 1" is the first and every Monday.
func CronFilter(expression string, hours ...string) (*CronDateFilter, error) {
	matcher, err := scheduling.NewDateMatcher(expression)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidFilter, err)
	}
	h, err := OpeningHoursForDayFromStrings(hours)
	if err != nil {
		return nil, fmt.Errorf("%w: cron %q: %w", ErrInvalidFilter, expression, err)
	}
	return &CronDateFilter{matcher: matcher, hours: h}, nil
}

func (f *CronDateFilter) Match(date time.Time) (OpeningHoursForDay, bool) {
	if !f.matcher.Matches(date) {
		return OpeningHoursForDay{}, false
	}
	return f.hours, true
}

func (f *CronDateFilter) String() string {
	return fmt.Sprintf("CronFilter{ %q: %s }", f.matcher.Expression(), f.hours)
}

// SunDateFilter opens from sunrise to sunset.
type SunDateFilter struct {
	latitude  float64
	longitude float64
	offset    time.Duration
}

// SunFilter returns a filter opening at sunrise and closing at sunset at the
// given coordinates. The optional offset widens (positive) or narrows
// (negative) both ends; only the first offset is considered. Dates where the
// sun does not rise or set are left to the rest of the chain.
func SunFilter(latitude, longitude float64, offset ...time.Duration) *SunDateFilter {
	f := &SunDateFilter{latitude: latitude, longitude: longitude}
	if len(offset) > 0 {
		f.offset = offset[0]
	}
	return f
}

func (f *SunDateFilter) Match(date time.Time) (OpeningHoursForDay, bool) {
	rise, set, ok := scheduling.SunTimes(f.latitude, f.longitude, date)
	if !ok {
		return OpeningHoursForDay{}, false
	}

	midnight := Time{}.On(date)
	start := int(rise.Add(-f.offset).Sub(midnight) / time.Minute)
	end := int(set.Add(f.offset).Sub(midnight) / time.Minute)
	if start < 0 {
		start = 0
	}
	if end > (maxHour+1)*60-1 {
		end = (maxHour+1)*60 - 1
	}
	if start >= end {
		return OpeningHoursForDay{}, false
	}

	r := TimeRange{start: timeFromMinutes(start), end: timeFromMinutes(end)}
	return OpeningHoursForDay{ranges: []TimeRange{r}}, true
}

func (f *SunDateFilter) String() string {
	return fmt.Sprintf("SunFilter{ %f,%f offset %s }", f.latitude, f.longitude, f.offset)
}
