// Package notify provides a process-wide configuration-change broadcast:
// the configuration owner publishes a Change, subscribed observers
// re-initialize their dependent state. Subscriptions are explicit and
// carry an unsubscribe function tied to the observer's active period.
package notify

import "sync"

// Change describes what part of the configuration changed.
type Change struct {
	// Key names the changed setting group, e.g. "view" or "detector".
	Key string
}

// Broadcaster fans a Change out to all current subscribers. Publish never
// blocks: a subscriber whose buffer is full misses that change and picks up
// the state on its next read, which is acceptable because observers re-read
// the full configuration on every notification.
type Broadcaster struct {
	mu   sync.Mutex
	subs map[int]chan Change
	next int
}

// NewBroadcaster creates an empty broadcaster.
func NewBroadcaster() *Broadcaster {
	return &Broadcaster{subs: make(map[int]chan Change)}
}

// Subscribe registers an observer. The returned channel delivers changes
// until the returned unsubscribe function is called, after which the channel
// is closed.
func (b *Broadcaster) Subscribe() (<-chan Change, func()) {
	b.mu.Lock()
	defer b.mu.Unlock()

	id := b.next
	b.next++
	ch := make(chan Change, 4)
	b.subs[id] = ch

	unsubscribe := func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		if sub, ok := b.subs[id]; ok {
			delete(b.subs, id)
			close(sub)
		}
	}
	return ch, unsubscribe
}

// Publish delivers a change to every subscriber without blocking.
func (b *Broadcaster) Publish(change Change) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for _, ch := range b.subs {
		select {
		case ch <- change:
		default:
			// Subscriber buffer full; it will re-read state on its next wake.
		}
	}
}

// SubscriberCount returns the number of active subscriptions.
func (b *Broadcaster) SubscriberCount() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.subs)
}
