package openinghours

import (
	"context"
	"sort"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	nanos atomic.Int64
}

func (c *fakeClock) Set(t time.Time) {
	c.nanos.Store(t.UnixNano())
}

func (c *fakeClock) Now() time.Time {
	return time.Unix(0, c.nanos.Load()).UTC()
}

func everyDay(t *testing.T, ranges ...string) *OpeningHours {
	t.Helper()
	b := NewBuilder()
	for _, day := range Days() {
		b.Day(day, ranges...)
	}
	hours, err := b.Build()
	require.NoError(t, err)
	return hours
}

func TestWatcher_FiresDueTransitions(t *testing.T) {
	clock := &fakeClock{}
	clock.Set(at(4, 8, 0))

	w := NewWatcher(WithClock(clock.Now))
	transitions := make(chan Transition, 10)
	err := w.Register("bakery", everyDay(t, "09:00-17:00"), func(tr Transition) {
		transitions <- tr
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"bakery"}, w.Venues())
	assert.Equal(t, 1, w.Len())

	// both of Monday's transitions are overdue once the watcher starts
	clock.Set(at(4, 18, 0))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		w.Start(ctx)
		close(done)
	}()

	var got []Transition
	for len(got) < 2 {
		select {
		case tr := <-transitions:
			got = append(got, tr)
		case <-time.After(5 * time.Second):
			t.Fatal("timed out waiting for transitions")
		}
	}
	sort.Slice(got, func(i, j int) bool { return got[i].At.Before(got[j].At) })

	assert.Equal(t, "bakery", got[0].Venue)
	assert.True(t, got[0].Open)
	assertTime(t, at(4, 9, 0), got[0].At)
	assert.False(t, got[1].Open)
	assertTime(t, at(4, 17, 0), got[1].At)
	assert.NotEqual(t, got[0].Id, got[1].Id)

	cancel()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("watcher did not stop")
	}

	select {
	case tr := <-transitions:
		t.Fatalf("unexpected transition %s", tr)
	default:
	}
}

func TestWatcher_Register(t *testing.T) {
	clock := &fakeClock{}
	clock.Set(at(4, 8, 0))
	w := NewWatcher(WithClock(clock.Now), WithHorizon("48h"))
	defer w.Close()

	require.NoError(t, w.Register("bakery", everyDay(t, "09:00-17:00")))
	assert.Error(t, w.Register("bakery", everyDay(t, "09:00-17:00")), "names are unique")

	closed, err := NewBuilder().Build()
	require.NoError(t, err)
	assert.ErrorIs(t, w.Register("closed", closed), ErrNoTransition)

	assert.Equal(t, []string{"bakery"}, w.Venues())
}

func TestWatcher_ZeroHorizon(t *testing.T) {
	clock := &fakeClock{}
	clock.Set(at(4, 8, 0))
	w := NewWatcher(WithClock(clock.Now), WithHorizon("0s"))
	defer w.Close()

	closed, err := NewBuilder().Build()
	require.NoError(t, err)
	assert.ErrorIs(t, w.Register("closed", closed), ErrNoTransition)
	assert.ErrorIs(t, w.Register("bakery", everyDay(t, "09:00-17:00")), ErrNoTransition)
	assert.Zero(t, w.Len())
}

func TestWatcher_StopsWithEmptyQueue(t *testing.T) {
	w := NewWatcher()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		w.Start(ctx)
		close(done)
	}()

	cancel()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("watcher did not stop")
	}
}

func TestTransition_String(t *testing.T) {
	tr := Transition{Venue: "bakery", Open: true, At: at(4, 9, 0)}
	assert.Equal(t, "bakery opens at 2024-03-04T09:00:00Z", tr.String())

	tr.Open = false
	assert.Equal(t, "bakery closes at 2024-03-04T09:00:00Z", tr.String())
}
