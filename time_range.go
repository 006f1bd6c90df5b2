package openinghours

import (
	"fmt"
	"strings"
)

// TimeRange is a span of availability within a day, from start (inclusive)
// to end (exclusive).
type TimeRange struct {
	start Time
	end   Time
}

// NewTimeRange returns the range from start to end. start must be strictly
// before end.
func NewTimeRange(start, end Time) (TimeRange, error) {
	if !start.Before(end) {
		return TimeRange{}, fmt.Errorf("%w: start %s must be before end %s", ErrInvalidTimeRange, start, end)
	}
	return TimeRange{start: start, end: end}, nil
}

// ParseTimeRange parses a "HH:MM-HH:MM" string such as "09:00-17:30".
func ParseTimeRange(s string) (TimeRange, error) {
	startStr, endStr, ok := strings.Cut(s, "-")
	if !ok {
		return TimeRange{}, fmt.Errorf("%w: %q must be HH:MM-HH:MM", ErrInvalidTimeRange, s)
	}

	start, err := ParseTime(startStr)
	if err != nil {
		return TimeRange{}, fmt.Errorf("range %q: %w", s, err)
	}
	end, err := ParseTime(endStr)
	if err != nil {
		return TimeRange{}, fmt.Errorf("range %q: %w", s, err)
	}

	return NewTimeRange(start, end)
}

// MustParseTimeRange is like ParseTimeRange but panics on invalid input.
func MustParseTimeRange(s string) TimeRange {
	r, err := ParseTimeRange(s)
	if err != nil {
		panic(err)
	}
	return r
}

// TimeRangeFromList returns the smallest range covering every given range.
func TimeRangeFromList(r TimeRange, others ...TimeRange) TimeRange {
	result := r
	for _, other := range others {
		if other.start.Before(result.start) {
			result.start = other.start
		}
		if other.end.After(result.end) {
			result.end = other.end
		}
	}
	return result
}

func (r TimeRange) Start() Time {
	return r.start
}

func (r TimeRange) End() Time {
	return r.end
}

// Contains reports whether t falls inside the range: start <= t < end.
func (r TimeRange) Contains(t Time) bool {
	return !t.Before(r.start) && t.Before(r.end)
}

// Overlaps reports whether the two ranges share any time. Ranges that merely
// touch (one ends when the other starts) do not overlap.
func (r TimeRange) Overlaps(other TimeRange) bool {
	return r.start.Before(other.end) && other.start.Before(r.end)
}

// Equal compares the canonical string forms.
func (r TimeRange) Equal(other TimeRange) bool {
	return r.String() == other.String()
}

// String returns the range as "HH:MM-HH:MM".
func (r TimeRange) String() string {
	return r.start.String() + "-" + r.end.String()
}
