package types

// DurationString represents a duration, such as "2s" or "24h".
// See https://pkg.go.dev/time#ParseDuration for all valid time units.
type DurationString string

// TimeRangeString is a range of 24-hr format times "HH:MM-HH:MM" such as
// "09:00-17:30". Hours past 23 continue past midnight, e.g. "18:00-26:00".
type TimeRangeString string

// DateString is an exact date "YYYY-MM-DD", or a "MM-DD" date recurring
// every year.
type DateString string

// Item represents a priority queue item with a value and priority.
type Item struct {
	Value    interface{}
	Priority float64
}
