package openinghours

import (
	"errors"
	"fmt"
	"log/slog"
	"time"
)

// Builder assembles an OpeningHours step by step, collecting every
// configuration error so they can be reported together:
//
//	hours, err := NewBuilder().
//		Day(Monday, "09:00-12:00", "13:00-18:00").
//		Exception("12-25").
//		ClosingPeriod("2024-08-01", "2024-08-15").
//		Timezone("Europe/Brussels").
//		Build()
type Builder struct {
	errors []error

	days           map[Day][]string
	dayData        map[Day]any
	closingPeriods []ClosingPeriod
	exceptionKeys  []string
	exceptions     map[string][]string
	exceptionData  map[string]any
	filters        []Filter
	location       *time.Location
	data           any
	merge          bool
}

// NewBuilder returns an empty builder: closed every day, no exceptions.
func NewBuilder() *Builder {
	return &Builder{
		days:          make(map[Day][]string),
		dayData:       make(map[Day]any),
		exceptions:    make(map[string][]string),
		exceptionData: make(map[string]any),
	}
}

// Day sets the regular hours of day as "HH:MM-HH:MM" ranges. Calling it again
// for the same day adds to its ranges.
func (b *Builder) Day(day Day, ranges ...string) *Builder {
	if !day.Valid() {
		b.errors = append(b.errors, fmt.Errorf("%w: %s", ErrInvalidDayName, day))
		return b
	}
	b.days[day] = append(b.days[day], ranges...)
	return b
}

// DayName is Day for a case-insensitive day name such as "Monday".
func (b *Builder) DayName(name string, ranges ...string) *Builder {
	day, err := ParseDay(name)
	if err != nil {
		b.errors = append(b.errors, err)
		return b
	}
	return b.Day(day, ranges...)
}

// DayData attaches metadata to the regular schedule of day.
func (b *Builder) DayData(day Day, data any) *Builder {
	b.dayData[day] = data
	return b
}

// ClosingPeriod closes every date from start to end inclusive. Both are
// "YYYY-MM-DD", or both "MM-DD" to close the period every year.
func (b *Builder) ClosingPeriod(start, end string) *Builder {
	period, err := NewClosingPeriod(start, end)
	if err != nil {
		b.errors = append(b.errors, fmt.Errorf("closing period %s: %w", start, err))
		return b
	}
	b.closingPeriods = append(b.closingPeriods, period)
	return b
}

// Exception replaces the hours of the date ("YYYY-MM-DD", or "MM-DD" for
// every year). No ranges means closed all day.
func (b *Builder) Exception(date string, ranges ...string) *Builder {
	if _, err := ParseDate(date); err != nil {
		b.errors = append(b.errors, err)
		return b
	}
	if _, ok := b.exceptions[date]; !ok {
		b.exceptionKeys = append(b.exceptionKeys, date)
	}
	b.exceptions[date] = append(b.exceptions[date], ranges...)
	return b
}

// ExceptionData attaches metadata to the exception for date.
func (b *Builder) ExceptionData(date string, data any) *Builder {
	b.exceptionData[date] = data
	return b
}

// Filter appends filters to the chain. They are consulted in the order added,
// before any exception.
func (b *Builder) Filter(filters ...Filter) *Builder {
	for _, f := range filters {
		if f == nil {
			b.errors = append(b.errors, fmt.Errorf("%w: nil filter", ErrInvalidFilter))
			continue
		}
		b.filters = append(b.filters, f)
	}
	return b
}

// Timezone converts every queried instant to the named zone first.
func (b *Builder) Timezone(name string) *Builder {
	loc, err := time.LoadLocation(name)
	if err != nil {
		b.errors = append(b.errors, fmt.Errorf("%w: %w", ErrInvalidTimezone, err))
		return b
	}
	b.location = loc
	return b
}

// Location is Timezone for an already loaded location.
func (b *Builder) Location(loc *time.Location) *Builder {
	b.location = loc
	return b
}

// Data attaches metadata to the whole schedule.
func (b *Builder) Data(data any) *Builder {
	b.data = data
	return b
}

// MergeOverlapping coalesces overlapping ranges of each day and exception
// instead of rejecting them.
func (b *Builder) MergeOverlapping() *Builder {
	b.merge = true
	return b
}

func (b *Builder) hours(definitions []string, data any) (OpeningHoursForDay, error) {
	if b.merge {
		merged, err := MergeOverlappingRangeStrings(definitions)
		if err != nil {
			return OpeningHoursForDay{}, err
		}
		definitions = merged
	}
	h, err := OpeningHoursForDayFromStrings(definitions)
	if err != nil {
		return OpeningHoursForDay{}, err
	}
	return h.WithData(data), nil
}

// Build returns the OpeningHours, or every error met while configuring it,
// joined.
func (b *Builder) Build() (*OpeningHours, error) {
	errs := b.errors

	week := make(Week, len(b.days))
	for _, day := range Days() {
		h, err := b.hours(b.days[day], b.dayData[day])
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", day, err))
			continue
		}
		week[day] = h
	}

	exceptions := make(Exceptions, len(b.exceptions))
	for _, key := range b.exceptionKeys {
		h, err := b.hours(b.exceptions[key], b.exceptionData[key])
		if err != nil {
			errs = append(errs, fmt.Errorf("exception %s: %w", key, err))
			continue
		}
		// keys were validated when added
		date, _ := ParseDate(key)
		exceptions[date] = h
	}

	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}

	o := New(week, b.closingPeriods, exceptions, b.filters, b.location)
	o.data = b.data

	slog.Debug("Built opening hours",
		"closing_periods", len(b.closingPeriods),
		"exceptions", len(exceptions),
		"filters", len(b.filters),
	)
	return o, nil
}
