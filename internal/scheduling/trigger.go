package scheduling

import (
	"time"
)

type Trigger interface {
	// NextTime calculates the next occurrence of this trigger after the given time
	NextTime(now time.Time) *time.Time
}

// TransitionSource reports the next instant a schedule opens or closes,
// searching no further than horizon past t.
type TransitionSource interface {
	NextOpenWithin(t time.Time, horizon time.Duration) (time.Time, error)
	NextCloseWithin(t time.Time, horizon time.Duration) (time.Time, error)
}

// TransitionTrigger fires whenever its source opens (or closes).
type TransitionTrigger struct {
	source  TransitionSource
	opening bool
	horizon time.Duration
}

// NewOpenTrigger returns a trigger firing each time source opens.
func NewOpenTrigger(source TransitionSource, horizon time.Duration) *TransitionTrigger {
	return &TransitionTrigger{source: source, opening: true, horizon: horizon}
}

// NewCloseTrigger returns a trigger firing each time source closes.
func NewCloseTrigger(source TransitionSource, horizon time.Duration) *TransitionTrigger {
	return &TransitionTrigger{source: source, opening: false, horizon: horizon}
}

// Opening reports whether the trigger fires on openings rather than closings.
func (t *TransitionTrigger) Opening() bool {
	return t.opening
}

// NextTime returns the next transition after now, or nil when there is none
// inside the horizon.
func (t *TransitionTrigger) NextTime(now time.Time) *time.Time {
	var (
		next time.Time
		err  error
	)
	if t.opening {
		next, err = t.source.NextOpenWithin(now, t.horizon)
	} else {
		next, err = t.source.NextCloseWithin(now, t.horizon)
	}
	if err != nil {
		return nil
	}
	return &next
}

// CompositeTrigger combines multiple triggers, firing at the earliest of them.
type CompositeTrigger struct {
	triggers []Trigger
}

// NewCompositeTrigger combines one or more triggers.
func NewCompositeTrigger(trigger Trigger, additional ...Trigger) *CompositeTrigger {
	return &CompositeTrigger{triggers: append([]Trigger{trigger}, additional...)}
}

// Next returns the trigger that fires first after now, along with its time.
// Both are nil if none of the triggers fire again.
func (c *CompositeTrigger) Next(now time.Time) (Trigger, *time.Time) {
	var (
		bestTrigger Trigger
		best        *time.Time
	)

	for _, trigger := range c.triggers {
		potential := trigger.NextTime(now)
		if potential != nil && (best == nil || potential.Before(*best)) {
			best = potential
			bestTrigger = trigger
		}
	}

	return bestTrigger, best
}
