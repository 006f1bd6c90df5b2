// Package openinghours resolves a weekly schedule with exceptions into answers
// to "is it open at T?", "when does it next open or close?" and "what are the
// hours on date D?". Ranges may run past midnight ("18:00-26:00") while still
// belonging to the day they started on.
package openinghours

import (
	"fmt"
	"maps"
	"slices"
	"sync/atomic"
	"time"

	"github.com/dromara/carbon/v2"
)

// Week holds the regular schedule of each day. Missing days are closed.
type Week map[Day]OpeningHoursForDay

// OpeningHours resolves dates and instants against a regular week, closing
// periods, filters and exceptions. Queries are safe for concurrent use.
type OpeningHours struct {
	week           [7]OpeningHoursForDay
	closingPeriods []ClosingPeriod
	exceptions     Exceptions
	filters        filterChain
	location       atomic.Pointer[time.Location]
	data           any
}

// New assembles an OpeningHours from already validated parts. loc may be nil,
// in which case instants are interpreted in their own location.
func New(week Week, closingPeriods []ClosingPeriod, exceptions Exceptions, filters []Filter, loc *time.Location) *OpeningHours {
	o := &OpeningHours{
		closingPeriods: slices.Clone(closingPeriods),
		exceptions:     maps.Clone(exceptions),
		filters:        slices.Clone(filters),
	}
	if o.exceptions == nil {
		o.exceptions = Exceptions{}
	}
	for day, hours := range week {
		if day.Valid() {
			o.week[day-1] = hours
		}
	}
	if loc != nil {
		o.location.Store(loc)
	}
	return o
}

// SetTimezone changes the zone instants are converted to before resolution.
func (o *OpeningHours) SetTimezone(name string) error {
	loc, err := time.LoadLocation(name)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidTimezone, err)
	}
	o.location.Store(loc)
	return nil
}

// Timezone returns the configured zone, or nil when none is set.
func (o *OpeningHours) Timezone() *time.Location {
	return o.location.Load()
}

func (o *OpeningHours) applyTimezone(t time.Time) time.Time {
	if loc := o.location.Load(); loc != nil {
		return t.In(loc)
	}
	return t
}

// Data returns the metadata attached at the root of the configuration.
func (o *OpeningHours) Data() any {
	return o.data
}

// ForDay returns the regular schedule of day, ignoring exceptions.
func (o *OpeningHours) ForDay(day Day) OpeningHoursForDay {
	if !day.Valid() {
		return OpeningHoursForDay{}
	}
	return o.week[day-1]
}

// ForDayName is ForDay for a case-insensitive day name.
func (o *OpeningHours) ForDayName(name string) (OpeningHoursForDay, error) {
	day, err := ParseDay(name)
	if err != nil {
		return OpeningHoursForDay{}, err
	}
	return o.ForDay(day), nil
}

// ForRegularWeek returns the regular schedule of every day.
func (o *OpeningHours) ForRegularWeek() Week {
	week := make(Week, 7)
	for _, day := range Days() {
		week[day] = o.ForDay(day)
	}
	return week
}

// ForDate returns the effective schedule of t's calendar date (after timezone
// conversion). The first rule that applies wins:
//
//  1. a closing period covering the date closes it all day
//  2. the first matching filter
//  3. an exception for the exact date
//  4. an exception for the same month and day
//  5. the regular schedule of the weekday
func (o *OpeningHours) ForDate(t time.Time) OpeningHoursForDay {
	t = o.applyTimezone(t)

	for _, period := range o.closingPeriods {
		if period.IsInRange(t) {
			return OpeningHoursForDay{}
		}
	}

	if h, ok := o.filters.Match(t); ok {
		return h
	}

	if h, ok := o.exceptions.Match(t); ok {
		return h
	}

	return o.ForDay(DayOf(t))
}

// IsOpenOn reports whether the regular schedule of day has any hours.
func (o *OpeningHours) IsOpenOn(day Day) bool {
	return !o.ForDay(day).IsEmpty()
}

func (o *OpeningHours) IsClosedOn(day Day) bool {
	return !o.IsOpenOn(day)
}

// IsOpenAt reports whether t falls inside the effective hours of its date, or
// inside a range of the previous date that runs past midnight.
func (o *OpeningHours) IsOpenAt(t time.Time) bool {
	t = o.applyTimezone(t)
	return o.timelineFor(t).contains(minuteOfDay(t))
}

func (o *OpeningHours) IsClosedAt(t time.Time) bool {
	return !o.IsOpenAt(t)
}

// IsOpen reports whether it is open right now.
func (o *OpeningHours) IsOpen() bool {
	return o.IsOpenAt(time.Now())
}

func (o *OpeningHours) IsClosed() bool {
	return !o.IsOpen()
}

// ForWeek returns the effective schedule of each day of the current week.
func (o *OpeningHours) ForWeek() Week {
	return o.ForWeekOf(time.Now())
}

// ForWeekOf returns the effective schedule of each day of the Monday to
// Sunday week containing t.
func (o *OpeningHours) ForWeekOf(t time.Time) Week {
	t = o.applyTimezone(t)
	monday := carbon.CreateFromStdTime(t).SubDays(DayOf(t).ISO() - 1).StartOfDay().StdTime()

	week := make(Week, 7)
	for i, day := range Days() {
		week[day] = o.ForDate(carbon.CreateFromStdTime(monday).AddDays(i).StdTime())
	}
	return week
}

// DayGroup is a set of days sharing the same regular schedule.
type DayGroup struct {
	Days  []Day
	Hours OpeningHoursForDay
}

// ForWeekCombined groups the days of the regular week by identical schedule,
// in order of each schedule's first day.
func (o *OpeningHours) ForWeekCombined() []DayGroup {
	var groups []DayGroup

next:
	for _, day := range Days() {
		hours := o.ForDay(day)
		for i := range groups {
			if groups[i].Hours.Equal(hours) {
				groups[i].Days = append(groups[i].Days, day)
				continue next
			}
		}
		groups = append(groups, DayGroup{Days: []Day{day}, Hours: hours})
	}

	return groups
}

// RegularClosingDays returns the days without regular hours.
func (o *OpeningHours) RegularClosingDays() []Day {
	var days []Day
	for _, day := range Days() {
		if o.IsClosedOn(day) {
			days = append(days, day)
		}
	}
	return days
}

// RegularClosingDaysISO is RegularClosingDays as ISO day numbers.
func (o *OpeningHours) RegularClosingDaysISO() []int {
	days := o.RegularClosingDays()
	iso := make([]int, len(days))
	for i, day := range days {
		iso[i] = day.ISO()
	}
	return iso
}

// ExceptionalClosingDates returns the exact dates closed by an exception, in
// chronological order. Recurring exceptions are not expanded.
func (o *OpeningHours) ExceptionalClosingDates() []time.Time {
	loc := o.location.Load()
	if loc == nil {
		loc = time.Local
	}

	var dates []time.Time
	for _, date := range o.exceptions.Dates() {
		if !date.IsRecurring() && o.exceptions[date].IsEmpty() {
			dates = append(dates, date.In(0, loc))
		}
	}
	return dates
}

// ClosingPeriods returns the configured closing periods.
func (o *OpeningHours) ClosingPeriods() []ClosingPeriod {
	return slices.Clone(o.closingPeriods)
}

// Exceptions returns the configured exceptions.
func (o *OpeningHours) Exceptions() Exceptions {
	return maps.Clone(o.exceptions)
}

// Filters returns the filters in evaluation order.
func (o *OpeningHours) Filters() []Filter {
	return slices.Clone(o.filters)
}
