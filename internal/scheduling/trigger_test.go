package scheduling

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errNoTransition = errors.New("no transition")

// fixedSource opens at 09:00 and closes at 17:00 every day.
type fixedSource struct{}

func (fixedSource) next(t time.Time, hour int, horizon time.Duration) (time.Time, error) {
	next := time.Date(t.Year(), t.Month(), t.Day(), hour, 0, 0, 0, t.Location())
	if !next.After(t) {
		next = next.AddDate(0, 0, 1)
	}
	if next.Sub(t) > horizon {
		return time.Time{}, errNoTransition
	}
	return next, nil
}

func (s fixedSource) NextOpenWithin(t time.Time, horizon time.Duration) (time.Time, error) {
	return s.next(t, 9, horizon)
}

func (s fixedSource) NextCloseWithin(t time.Time, horizon time.Duration) (time.Time, error) {
	return s.next(t, 17, horizon)
}

func TestTransitionTrigger_NextTime(t *testing.T) {
	now := time.Date(2025, 8, 2, 10, 0, 0, 0, time.UTC)

	open := NewOpenTrigger(fixedSource{}, 48*time.Hour)
	closing := NewCloseTrigger(fixedSource{}, 48*time.Hour)

	next := open.NextTime(now)
	require.NotNil(t, next)
	assert.Equal(t, time.Date(2025, 8, 3, 9, 0, 0, 0, time.UTC), *next)
	assert.True(t, open.Opening())

	next = closing.NextTime(now)
	require.NotNil(t, next)
	assert.Equal(t, time.Date(2025, 8, 2, 17, 0, 0, 0, time.UTC), *next)
	assert.False(t, closing.Opening())
}

func TestTransitionTrigger_Horizon(t *testing.T) {
	now := time.Date(2025, 8, 2, 10, 0, 0, 0, time.UTC)
	open := NewOpenTrigger(fixedSource{}, time.Hour)

	assert.Nil(t, open.NextTime(now))
}

func TestCompositeTrigger_Next(t *testing.T) {
	open := NewOpenTrigger(fixedSource{}, 48*time.Hour)
	closing := NewCloseTrigger(fixedSource{}, 48*time.Hour)
	composite := NewCompositeTrigger(open, closing)

	tests := []struct {
		name        string
		now         time.Time
		expected    time.Time
		wantOpening bool
	}{
		{
			name:        "during opening hours",
			now:         time.Date(2025, 8, 2, 10, 0, 0, 0, time.UTC),
			expected:    time.Date(2025, 8, 2, 17, 0, 0, 0, time.UTC),
			wantOpening: false,
		},
		{
			name:        "before opening",
			now:         time.Date(2025, 8, 2, 7, 0, 0, 0, time.UTC),
			expected:    time.Date(2025, 8, 2, 9, 0, 0, 0, time.UTC),
			wantOpening: true,
		},
		{
			name:        "after closing",
			now:         time.Date(2025, 8, 2, 18, 0, 0, 0, time.UTC),
			expected:    time.Date(2025, 8, 3, 9, 0, 0, 0, time.UTC),
			wantOpening: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			trigger, next := composite.Next(tt.now)
			require.NotNil(t, next)
			assert.Equal(t, tt.expected, *next)
			require.IsType(t, &TransitionTrigger{}, trigger)
			assert.Equal(t, tt.wantOpening, trigger.(*TransitionTrigger).Opening())
		})
	}
}

func TestCompositeTrigger_NoneFire(t *testing.T) {
	composite := NewCompositeTrigger(
		NewOpenTrigger(fixedSource{}, time.Minute),
		NewCloseTrigger(fixedSource{}, time.Minute),
	)

	trigger, next := composite.Next(time.Date(2025, 8, 2, 10, 0, 0, 0, time.UTC))
	assert.Nil(t, trigger)
	assert.Nil(t, next)
}
