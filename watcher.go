package openinghours

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/Workiva/go-datastructures/queue"

	"github.com/Xevion/go-openinghours/internal"
	"github.com/Xevion/go-openinghours/internal/scheduling"
	"github.com/Xevion/go-openinghours/types"
)

// DefaultHorizon is how far ahead the watcher looks for a venue's next
// transition before giving up on it.
const DefaultHorizon types.DurationString = "8784h"

// Transition is a change of a watched venue between open and closed.
type Transition struct {
	Id    int64
	Venue string
	// Open is the state the venue is in from At onwards.
	Open bool
	At   time.Time
}

func (t Transition) String() string {
	state := "closes"
	if t.Open {
		state = "opens"
	}
	return fmt.Sprintf("%s %s at %s", t.Venue, state, t.At.Format(time.RFC3339))
}

// TransitionCallback is invoked, in its own goroutine, for every transition.
type TransitionCallback func(Transition)

// Watcher waits for the opening and closing times of registered venues and
// notifies callbacks as they happen.
type Watcher struct {
	horizon time.Duration
	now     func() time.Time

	mu     sync.Mutex
	venues map[string]*watchedVenue

	queue *queue.PriorityQueue
	wake  chan struct{}
}

type watchedVenue struct {
	name      string
	hours     *OpeningHours
	trigger   *scheduling.CompositeTrigger
	callbacks []TransitionCallback
}

// pending is the next transition of a venue, as stored in the queue.
type pending struct {
	venue   *watchedVenue
	opening bool
	at      time.Time
}

type queueItem types.Item

func (i queueItem) Compare(other queue.Item) int {
	if i.Priority > other.(queueItem).Priority {
		return 1
	} else if i.Priority == other.(queueItem).Priority {
		return 0
	}
	return -1
}

// WatcherOption configures a Watcher.
type WatcherOption func(*Watcher)

// WithHorizon limits how far ahead the next transition is searched for.
// Venues that do not change state within the horizon stop being watched.
// It panics if horizon does not parse.
func WithHorizon(horizon types.DurationString) WatcherOption {
	return func(w *Watcher) {
		w.horizon = internal.ParseDuration(string(horizon))
	}
}

// WithClock replaces time.Now as the watcher's source of the current time.
func WithClock(now func() time.Time) WatcherOption {
	return func(w *Watcher) {
		w.now = now
	}
}

func NewWatcher(opts ...WatcherOption) *Watcher {
	w := &Watcher{
		horizon: internal.ParseDuration(string(DefaultHorizon)),
		now:     time.Now,
		venues:  make(map[string]*watchedVenue),
		queue:   queue.NewPriorityQueue(100, false),
		wake:    make(chan struct{}, 1),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Register starts watching hours under name. Callbacks run for every
// transition of this venue.
func (w *Watcher) Register(name string, hours *OpeningHours, callbacks ...TransitionCallback) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if _, ok := w.venues[name]; ok {
		return fmt.Errorf("venue %q is already registered", name)
	}

	v := &watchedVenue{
		name:  name,
		hours: hours,
		trigger: scheduling.NewCompositeTrigger(
			scheduling.NewOpenTrigger(hours, w.horizon),
			scheduling.NewCloseTrigger(hours, w.horizon),
		),
		callbacks: callbacks,
	}

	p, ok := v.next(w.now())
	if !ok {
		return fmt.Errorf("venue %q: %w", name, ErrNoTransition)
	}

	w.venues[name] = v
	if err := w.put(p); err != nil {
		return err
	}

	select {
	case w.wake <- struct{}{}:
	default:
	}
	return nil
}

// Venues returns the names of the watched venues.
func (w *Watcher) Venues() []string {
	w.mu.Lock()
	defer w.mu.Unlock()

	names := make([]string, 0, len(w.venues))
	for name := range w.venues {
		names = append(names, name)
	}
	return names
}

// Len returns the number of queued transitions.
func (w *Watcher) Len() int {
	return w.queue.Len()
}

func (v *watchedVenue) next(after time.Time) (*pending, bool) {
	trigger, at := v.trigger.Next(after)
	if at == nil {
		return nil, false
	}
	return &pending{
		venue:   v,
		opening: trigger.(*scheduling.TransitionTrigger).Opening(),
		at:      *at,
	}, true
}

func (w *Watcher) put(p *pending) error {
	return w.queue.Put(queueItem{
		Value:    p,
		Priority: float64(p.at.UnixNano()),
	})
}

// pop removes and returns the next transition from the priority queue,
// blocking while the queue is empty.
func (w *Watcher) pop() (*pending, error) {
	items, err := w.queue.Get(1)
	if err != nil {
		return nil, err
	}
	return items[0].(queueItem).Value.(*pending), nil
}

// requeue computes the venue's transition after p and puts it in the queue.
func (w *Watcher) requeue(p *pending) {
	next, ok := p.venue.next(p.at)
	if !ok {
		slog.Warn("No further transitions within horizon, no longer watching venue",
			"venue", p.venue.name, "horizon", w.horizon)

		w.mu.Lock()
		delete(w.venues, p.venue.name)
		w.mu.Unlock()
		return
	}

	if err := w.put(next); err != nil {
		slog.Warn("Failed to requeue transition", "venue", p.venue.name, "error", err)
	}
}

func (w *Watcher) fire(p *pending) {
	t := Transition{
		Id:    internal.NextId(),
		Venue: p.venue.name,
		Open:  p.opening,
		At:    p.at,
	}
	slog.Info("Transition", "venue", t.Venue, "open", t.Open, "at", t.At)

	for _, cb := range p.venue.callbacks {
		go cb(t)
	}
}

// Start runs the watcher until ctx is cancelled or Close is called.
// Transitions that are already due when they are popped fire immediately.
func (w *Watcher) Start(ctx context.Context) {
	slog.Info("Starting watcher", "venues", len(w.Venues()))

	stop := context.AfterFunc(ctx, w.Close)
	defer stop()

	for {
		select {
		case <-ctx.Done():
			slog.Info("Watcher shutting down")
			return
		default:
		}

		p, err := w.pop()
		if err != nil {
			if !errors.Is(err, queue.ErrDisposed) {
				slog.Error("Failed to read transition queue", "error", err)
			}
			slog.Info("Watcher shutting down")
			return
		}

		if p.at.After(w.now()) {
			slog.Debug("Next transition", "venue", p.venue.name, "open", p.opening, "at", p.at)

			timer := time.NewTimer(p.at.Sub(w.now()))
			select {
			case <-timer.C:
				// Time elapsed, continue
			case <-w.wake:
				// A venue was registered; it may be due before p
				timer.Stop()
				if err := w.put(p); err != nil {
					return
				}
				continue
			case <-ctx.Done():
				timer.Stop()
				slog.Info("Watcher shutting down")
				return
			}
		}

		w.fire(p)
		w.requeue(p)
	}
}

// Close stops the watcher. Registered venues are dropped.
func (w *Watcher) Close() {
	w.queue.Dispose()
}
