package openinghours

import (
	"fmt"
	"slices"
	"strings"
)

// OpeningHoursForDay is the schedule of a single day: non-overlapping ranges
// ordered by start time. An empty schedule means closed all day.
type OpeningHoursForDay struct {
	ranges []TimeRange
	data   any
}

// NewOpeningHoursForDay sorts the ranges and checks that none of them
// overlap.
func NewOpeningHoursForDay(ranges ...TimeRange) (OpeningHoursForDay, error) {
	sorted := slices.Clone(ranges)
	slices.SortStableFunc(sorted, func(a, b TimeRange) int {
		return a.start.Compare(b.start)
	})

	for i := 1; i < len(sorted); i++ {
		if sorted[i-1].Overlaps(sorted[i]) {
			return OpeningHoursForDay{}, fmt.Errorf("%w: %s and %s", ErrOverlappingTimeRanges, sorted[i-1], sorted[i])
		}
	}

	return OpeningHoursForDay{ranges: sorted}, nil
}

// OpeningHoursForDayFromStrings parses each "HH:MM-HH:MM" definition.
func OpeningHoursForDayFromStrings(definitions []string) (OpeningHoursForDay, error) {
	ranges := make([]TimeRange, 0, len(definitions))
	for _, def := range definitions {
		r, err := ParseTimeRange(def)
		if err != nil {
			return OpeningHoursForDay{}, err
		}
		ranges = append(ranges, r)
	}
	return NewOpeningHoursForDay(ranges...)
}

// MustOpeningHoursForDay is like OpeningHoursForDayFromStrings but panics on
// invalid input. Handy for filters and tests.
func MustOpeningHoursForDay(definitions ...string) OpeningHoursForDay {
	h, err := OpeningHoursForDayFromStrings(definitions)
	if err != nil {
		panic(err)
	}
	return h
}

// WithData returns a copy of the schedule carrying the given metadata.
func (h OpeningHoursForDay) WithData(data any) OpeningHoursForDay {
	h.data = data
	return h
}

// Data returns the metadata attached to the schedule, if any.
func (h OpeningHoursForDay) Data() any {
	return h.data
}

// Ranges returns a copy of the ranges, ordered by start.
func (h OpeningHoursForDay) Ranges() []TimeRange {
	return slices.Clone(h.ranges)
}

func (h OpeningHoursForDay) Len() int {
	return len(h.ranges)
}

func (h OpeningHoursForDay) IsEmpty() bool {
	return len(h.ranges) == 0
}

// IsOpenAt reports whether any range contains t.
func (h OpeningHoursForDay) IsOpenAt(t Time) bool {
	for _, r := range h.ranges {
		if r.Contains(t) {
			return true
		}
	}
	return false
}

// NextOpen returns the first range start strictly after t. The result may be
// encoded past 24:00. ok is false when the day has no later opening.
func (h OpeningHoursForDay) NextOpen(t Time) (Time, bool) {
	for _, r := range h.ranges {
		if r.start.After(t) {
			return r.start, true
		}
	}
	return Time{}, false
}

// NextClose returns the first range end strictly after t.
func (h OpeningHoursForDay) NextClose(t Time) (Time, bool) {
	for _, r := range h.ranges {
		if r.end.After(t) {
			return r.end, true
		}
	}
	return Time{}, false
}

// Equal compares the ranges structurally. Metadata is ignored.
func (h OpeningHoursForDay) Equal(other OpeningHoursForDay) bool {
	return h.String() == other.String()
}

// String joins the ranges with commas, e.g. "09:00-12:00,13:00-17:00".
func (h OpeningHoursForDay) String() string {
	parts := make([]string, len(h.ranges))
	for i, r := range h.ranges {
		parts[i] = r.String()
	}
	return strings.Join(parts, ",")
}
