package internal

import (
	"fmt"
	"log/slog"
	"strconv"
	"time"
)

// ParseHourMinute parses a "HH:MM" string into its hour and minute.
// Hours past 23 are accepted so that ranges can run past midnight; bounding
// them is up to the caller.
func ParseHourMinute(s string) (hour, minute int, err error) {
	if len(s) != 5 || s[2] != ':' || !isDigits(s[:2]) || !isDigits(s[3:]) {
		return 0, 0, fmt.Errorf("time string %q must be HH:MM", s)
	}

	// both halves are two ASCII digits, so Atoi cannot fail
	hour, _ = strconv.Atoi(s[:2])
	minute, _ = strconv.Atoi(s[3:])
	return hour, minute, nil
}

func isDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return s != ""
}

func ParseDuration(s string) time.Duration {
	d, err := time.ParseDuration(s)
	if err != nil {
		parsingErr := fmt.Errorf("couldn't parse string duration: \"%s\" see https://pkg.go.dev/time#ParseDuration for valid time units: %w", s, err)
		slog.Error(parsingErr.Error())
		panic(parsingErr)
	}
	return d
}
