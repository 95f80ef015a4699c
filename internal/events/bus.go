// Package events provides the in-process change-notification bus.
//
// Every mutating operation on a collection or the request ledger
// publishes a named change event here; views (and the SSE endpoint)
// subscribe to refresh themselves. Delivery is best-effort and
// in-process only, never durable.
package events

import "sync"

// Topic names a change channel.
type Topic string

const (
	TopicCartChanged     Topic = "cartChanged"
	TopicWishlistChanged Topic = "wishlistChanged"
	TopicRequestsChanged Topic = "requestsChanged"
)

// Event is a single change notification scoped to one user.
type Event struct {
	Topic  Topic  `json:"topic"`
	UserID string `json:"userId"`
}

// Publisher is the write side of the bus, implemented by *Bus.
type Publisher interface {
	Publish(ev Event)
}

// Bus fans events out to subscribers. A slow subscriber whose buffer is
// full loses events rather than blocking publishers.
type Bus struct {
	mu   sync.Mutex
	next int
	subs map[int]chan Event
}

// NewBus creates an empty bus.
func NewBus() *Bus {
	return &Bus{subs: make(map[int]chan Event)}
}

// Subscribe registers a subscriber with the given buffer size and
// returns its channel plus an unsubscribe func. Unsubscribe closes the
// channel; it is safe to call more than once.
func (b *Bus) Subscribe(buf int) (<-chan Event, func()) {
	if buf <= 0 {
		buf = 16
	}
	ch := make(chan Event, buf)

	b.mu.Lock()
	id := b.next
	b.next++
	b.subs[id] = ch
	b.mu.Unlock()

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			b.mu.Lock()
			delete(b.subs, id)
			b.mu.Unlock()
			close(ch)
		})
	}
	return ch, cancel
}

// Publish delivers the event to every current subscriber without blocking.
func (b *Bus) Publish(ev Event) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, ch := range b.subs {
		select {
		case ch <- ev:
		default: // subscriber buffer full, drop
		}
	}
}
