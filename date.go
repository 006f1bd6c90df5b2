package openinghours

import (
	"fmt"
	"time"

	"github.com/dromara/carbon/v2"
)

// Date is a calendar date without a time of day. A zero Year makes it a
// recurring date that matches the same month and day every year.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

const (
	exactDateLayout     = "2006-01-02"
	recurringDateLayout = "01-02"
)

// ParseDate parses either an exact "YYYY-MM-DD" date or a recurring "MM-DD"
// date. The string must be a real calendar date in canonical form, so
// "2023-02-29" and "2-3" are rejected.
func ParseDate(s string) (Date, error) {
	if t, err := time.Parse(recurringDateLayout, s); err == nil && t.Format(recurringDateLayout) == s {
		return Date{Month: t.Month(), Day: t.Day()}, nil
	}
	if t, err := time.Parse(exactDateLayout, s); err == nil && t.Format(exactDateLayout) == s {
		return DateOf(t), nil
	}
	return Date{}, fmt.Errorf("%w: %q must be YYYY-MM-DD or MM-DD", ErrInvalidDate, s)
}

// DateOf returns the calendar date of t in t's location.
func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return Date{Year: y, Month: m, Day: d}
}

// IsRecurring reports whether the date repeats every year.
func (d Date) IsRecurring() bool {
	return d.Year == 0
}

// MonthDay returns the recurring form of the date.
func (d Date) MonthDay() Date {
	return Date{Month: d.Month, Day: d.Day}
}

// In returns midnight of the date in loc. Recurring dates are placed in the
// given year.
func (d Date) In(year int, loc *time.Location) time.Time {
	if !d.IsRecurring() {
		year = d.Year
	}
	return time.Date(year, d.Month, d.Day, 0, 0, 0, 0, loc)
}

// Compare orders dates chronologically; recurring dates sort by month and
// day only.
func (d Date) Compare(other Date) int {
	a := d.Year*10000 + int(d.Month)*100 + d.Day
	b := other.Year*10000 + int(other.Month)*100 + other.Day
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

// String returns "YYYY-MM-DD", or "MM-DD" for recurring dates.
func (d Date) String() string {
	if d.IsRecurring() {
		return fmt.Sprintf("%02d-%02d", int(d.Month), d.Day)
	}
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, int(d.Month), d.Day)
}

// DateRange is an inclusive range of calendar dates.
type DateRange struct {
	Start Date
	End   Date
}

// NewDateRange parses both bounds. They must both be exact or both be
// recurring, and an exact range may not end before it starts. A recurring
// range may wrap the end of the year, e.g. "12-24" to "01-02".
func NewDateRange(start, end string) (DateRange, error) {
	s, err := ParseDate(start)
	if err != nil {
		return DateRange{}, err
	}
	e, err := ParseDate(end)
	if err != nil {
		return DateRange{}, err
	}

	if s.IsRecurring() != e.IsRecurring() {
		return DateRange{}, fmt.Errorf("%w: %s to %s mixes recurring and exact dates", ErrInvalidDate, s, e)
	}
	if !s.IsRecurring() && e.Compare(s) < 0 {
		return DateRange{}, fmt.Errorf("%w: %s ends before it starts on %s", ErrInvalidDate, e, s)
	}

	return DateRange{Start: s, End: e}, nil
}

// Contains reports whether the calendar date of t lies within the range,
// bounds included.
func (r DateRange) Contains(t time.Time) bool {
	date := DateOf(t)

	if !r.Start.IsRecurring() {
		return r.Start.Compare(date) <= 0 && date.Compare(r.End) <= 0
	}

	md := date.MonthDay()
	if r.Start.Compare(r.End) <= 0 {
		return r.Start.Compare(md) <= 0 && md.Compare(r.End) <= 0
	}
	// wraps the end of the year
	return r.Start.Compare(md) <= 0 || md.Compare(r.End) <= 0
}

func (r DateRange) String() string {
	return r.Start.String() + " - " + r.End.String()
}

// ClosingPeriod forces the schedule closed on every date of its range,
// whatever the regular hours or exceptions say.
type ClosingPeriod struct {
	Range DateRange
}

// NewClosingPeriod returns the closing period from start to end inclusive.
func NewClosingPeriod(start, end string) (ClosingPeriod, error) {
	r, err := NewDateRange(start, end)
	if err != nil {
		return ClosingPeriod{}, err
	}
	return ClosingPeriod{Range: r}, nil
}

// IsInRange truncates t to midnight and reports whether that date falls in
// the period.
func (p ClosingPeriod) IsInRange(t time.Time) bool {
	midnight := carbon.CreateFromStdTime(t).StartOfDay().StdTime()
	return p.Range.Contains(midnight)
}

func (p ClosingPeriod) String() string {
	return p.Range.String()
}
