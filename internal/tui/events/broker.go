package events

import "sync"

// DefaultBufferSize is deep enough to hold a burst of progress updates
// between two UI frames.
const DefaultBufferSize = 64

// subscription is one channel and the event types it asked for. An empty
// type set means every type.
type subscription struct {
	ch    chan Event
	types map[EventType]struct{}
}

func (s *subscription) wants(t EventType) bool {
	if len(s.types) == 0 {
		return true
	}
	_, ok := s.types[t]
	return ok
}

// Broker fans events out from render workers to UI subscribers.
type Broker struct {
	mu         sync.Mutex
	subs       []*subscription
	bufferSize int
	dropped    int
}

func NewBroker() *Broker {
	return &Broker{bufferSize: DefaultBufferSize}
}

// Subscribe returns a channel receiving the given event types, or every
// event when none are given.
func (b *Broker) Subscribe(eventTypes ...EventType) <-chan Event {
	sub := &subscription{
		ch:    make(chan Event, b.bufferSize),
		types: make(map[EventType]struct{}, len(eventTypes)),
	}
	for _, t := range eventTypes {
		sub.types[t] = struct{}{}
	}

	b.mu.Lock()
	b.subs = append(b.subs, sub)
	b.mu.Unlock()
	return sub.ch
}

// Unsubscribe drops event types from a subscription. The channel is closed
// once nothing is left, or straight away when no types are given.
func (b *Broker) Unsubscribe(ch <-chan Event, eventTypes ...EventType) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for i, sub := range b.subs {
		if sub.ch != ch {
			continue
		}
		for _, t := range eventTypes {
			delete(sub.types, t)
		}
		if len(eventTypes) == 0 || len(sub.types) == 0 {
			close(sub.ch)
			b.subs = append(b.subs[:i], b.subs[i+1:]...)
		}
		return
	}
}

// Publish sends an event to every interested subscriber. It never blocks:
// render workers call it from progress callbacks. Events for a full
// subscriber are counted and skipped.
func (b *Broker) Publish(event Event) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for _, sub := range b.subs {
		if !sub.wants(event.Type) {
			continue
		}
		select {
		case sub.ch <- event:
		default:
			b.dropped++
		}
	}
}

// Dropped returns how many events were skipped because a subscriber was full.
func (b *Broker) Dropped() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.dropped
}

// Clear closes every subscription.
func (b *Broker) Clear() {
	b.mu.Lock()
	defer b.mu.Unlock()

	for _, sub := range b.subs {
		close(sub.ch)
	}
	b.subs = nil
}
