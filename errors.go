package openinghours

import "errors"

// Errors returned while building an OpeningHours. They are wrapped with
// details about the offending value, so match them with errors.Is.
var (
	ErrInvalidDayName        = errors.New("invalid day name")
	ErrInvalidDate           = errors.New("invalid date")
	ErrInvalidTimeString     = errors.New("invalid time string")
	ErrInvalidTimeRange      = errors.New("invalid time range")
	ErrOverlappingTimeRanges = errors.New("overlapping time ranges")
	ErrInvalidTimezone       = errors.New("invalid timezone")
	ErrInvalidFilter         = errors.New("invalid filter")
)

// ErrNoTransition is returned by the bounded searches when the schedule does
// not open (or close) within the requested horizon.
var ErrNoTransition = errors.New("no transition within horizon")
