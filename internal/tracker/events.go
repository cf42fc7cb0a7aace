package tracker

import "sync"

// EventKind identifies one of the three session event kinds the
// monitor emits for a tracked game process.
type EventKind int

const (
	// SessionStarted marks the launch of a tracked game process.
	SessionStarted EventKind = iota
	// TimeUpdate is the 1 Hz heartbeat carrying cumulative elapsed
	// seconds; advisory only, never persisted directly.
	TimeUpdate
	// SessionEnded marks process exit and closes the session.
	SessionEnded
)

// Event is one session lifecycle event. Fields beyond Kind and
// GameID are populated per kind: start carries InstanceID and
// StartTime, heartbeats carry TotalMinutes/TotalSeconds, end
// carries all timing fields.
type Event struct {
	Kind       EventKind
	GameID     uint
	InstanceID string

	StartTime int64 // unix seconds
	EndTime   int64 // unix seconds

	TotalMinutes int64
	TotalSeconds int64
}

// CancelFunc tears down a subscription or attachment. Safe to
// call more than once.
type CancelFunc func()

type subscriber struct {
	ch   chan Event
	done chan struct{}
}

// Subscription is one attachment to the bus covering all three
// event kinds. Cancel is the single composite teardown; it is safe
// to call more than once.
type Subscription struct {
	// C delivers events in publish order.
	C <-chan Event

	done   chan struct{}
	cancel func()
}

// Done is closed once the subscription is torn down.
func (s *Subscription) Done() <-chan struct{} {
	return s.done
}

// Cancel detaches the subscription from the bus.
func (s *Subscription) Cancel() {
	s.cancel()
}

// Bus fans session events out to subscribers. Events from one
// emitter reach each subscriber in emit order; within one game
// that order is the causal start → updates → end sequence.
type Bus struct {
	mu     sync.Mutex
	nextID int
	subs   map[int]*subscriber
}

// NewBus creates an event bus.
func NewBus() *Bus {
	return &Bus{subs: make(map[int]*subscriber)}
}

// Subscribe attaches a new subscriber covering all event kinds.
func (b *Bus) Subscribe() *Subscription {
	b.mu.Lock()
	defer b.mu.Unlock()

	id := b.nextID
	b.nextID++

	sub := &subscriber{
		ch:   make(chan Event, 64),
		done: make(chan struct{}),
	}
	b.subs[id] = sub

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			b.mu.Lock()
			delete(b.subs, id)
			b.mu.Unlock()
			close(sub.done)
		})
	}

	return &Subscription{C: sub.ch, done: sub.done, cancel: cancel}
}

// Publish delivers an event to every subscriber. Delivery blocks
// on a full subscriber buffer so ordering is preserved end to end;
// a cancelled subscriber is skipped.
func (b *Bus) Publish(ev Event) {
	b.mu.Lock()
	subs := make([]*subscriber, 0, len(b.subs))
	for _, sub := range b.subs {
		subs = append(subs, sub)
	}
	b.mu.Unlock()

	for _, sub := range subs {
		select {
		case sub.ch <- ev:
		case <-sub.done:
		}
	}
}
