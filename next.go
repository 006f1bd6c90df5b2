package openinghours

import (
	"fmt"
	"slices"
	"time"

	"github.com/dromara/carbon/v2"
)

// span is an open interval in minutes relative to midnight of one calendar
// date. Spans carried over from the previous date start below zero.
type span struct {
	start int
	end   int
}

// timeline is the open state over one calendar date: the date's effective
// ranges plus whatever part of the previous date's ranges runs past midnight.
// Spans are sorted and merged, touching ones included, so every span edge is
// a real transition between open and closed.
type timeline []span

func (o *OpeningHours) timelineFor(t time.Time) timeline {
	day := startOfDay(t)
	previous := carbon.CreateFromStdTime(day).SubDay().StartOfDay().StdTime()

	var spans []span
	for _, r := range o.ForDate(previous).ranges {
		if end := r.end.Minutes() - minutesPerDay; end >= 0 {
			spans = append(spans, span{start: r.start.Minutes() - minutesPerDay, end: end})
		}
	}
	for _, r := range o.ForDate(day).ranges {
		spans = append(spans, span{start: r.start.Minutes(), end: r.end.Minutes()})
	}

	slices.SortFunc(spans, func(a, b span) int {
		return a.start - b.start
	})

	var merged timeline
	for _, s := range spans {
		if n := len(merged); n > 0 && s.start <= merged[n-1].end {
			merged[n-1].end = max(merged[n-1].end, s.end)
			continue
		}
		merged = append(merged, s)
	}
	return merged
}

func (tl timeline) contains(minute int) bool {
	for _, s := range tl {
		if s.start <= minute && minute < s.end {
			return true
		}
	}
	return false
}

// next returns the first opening (or closing) edge on this date after the
// given minute, or at it when inclusive. Edges at 24:00 and later belong to
// the following date and are never returned.
func (tl timeline) next(opening bool, after int, inclusive bool) (int, bool) {
	for _, s := range tl {
		edge := s.end
		if opening {
			edge = s.start
		}
		if edge < 0 || edge >= minutesPerDay {
			continue
		}
		if edge > after || (inclusive && edge == after) {
			return edge, true
		}
	}
	return 0, false
}

// NextOpen returns the first instant strictly after t at which the schedule
// opens. If t is inside opening hours, that is the start of the next range,
// not the current one.
//
// The search walks forward one day at a time without bound: the caller must
// not pass a schedule that never opens (or is open around the clock), or the
// call never returns. Use NextOpenWithin for untrusted schedules.
func (o *OpeningHours) NextOpen(t time.Time) time.Time {
	next, _ := o.nextTransition(t, true, 0)
	return next
}

// NextClose returns the first instant strictly after t at which the schedule
// closes. Like NextOpen, it searches without bound.
func (o *OpeningHours) NextClose(t time.Time) time.Time {
	next, _ := o.nextTransition(t, false, 0)
	return next
}

// NextOpenWithin is NextOpen limited to horizon after t. It returns
// ErrNoTransition when the schedule does not open in that window, and for a
// horizon of zero or less.
func (o *OpeningHours) NextOpenWithin(t time.Time, horizon time.Duration) (time.Time, error) {
	if horizon <= 0 {
		return time.Time{}, fmt.Errorf("%w: non-positive horizon %s", ErrNoTransition, horizon)
	}
	return o.nextTransition(t, true, horizon)
}

// NextCloseWithin is NextClose limited to horizon after t.
func (o *OpeningHours) NextCloseWithin(t time.Time, horizon time.Duration) (time.Time, error) {
	if horizon <= 0 {
		return time.Time{}, fmt.Errorf("%w: non-positive horizon %s", ErrNoTransition, horizon)
	}
	return o.nextTransition(t, false, horizon)
}

// nextTransition searches day by day for the next opening or closing edge.
// A horizon of zero means no limit; only NextOpen and NextClose pass it.
func (o *OpeningHours) nextTransition(t time.Time, opening bool, horizon time.Duration) (time.Time, error) {
	t = o.applyTimezone(t)
	bounded := horizon > 0

	day := startOfDay(t)
	after := minuteOfDay(t)
	inclusive := false

	for {
		if bounded && day.Sub(t) > horizon {
			return time.Time{}, fmt.Errorf("%w: %s after %s", ErrNoTransition, horizon, t)
		}

		if edge, ok := o.timelineFor(day).next(opening, after, inclusive); ok {
			next := timeFromMinutes(edge).On(day)
			if bounded && next.Sub(t) > horizon {
				return time.Time{}, fmt.Errorf("%w: %s after %s", ErrNoTransition, horizon, t)
			}
			return next, nil
		}

		// later days are searched from midnight, which itself counts as a
		// transition when the previous day closed at 24:00
		day = carbon.CreateFromStdTime(day).AddDay().StartOfDay().StdTime()
		after = 0
		inclusive = true
	}
}

func startOfDay(t time.Time) time.Time {
	return carbon.CreateFromStdTime(t).StartOfDay().StdTime()
}

func minuteOfDay(t time.Time) int {
	return t.Hour()*60 + t.Minute()
}
