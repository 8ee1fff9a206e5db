// Package updates tells interested parties when ticket state changed out
// from under them. Subscribers get notified with the IDs that moved and
// re-fetch whatever they display; nothing here is required for
// correctness, only for keeping views fresh without manual refresh.
//
// Two feeds exist: a fixed-interval poller and a Redis pub/sub channel.
// Both push into the same Broadcaster, so subscribers do not care which
// transport the deployment runs.
package updates

import (
	"sync"
	"time"

	"github.com/mesadeayuda/helpdesk/internal/domain"
)

// Change describes one ticket that moved since the previous notification.
type Change struct {
	TicketID    string              `json:"ticket_id"`
	Status      domain.TicketStatus `json:"status"`
	LastUpdated time.Time           `json:"last_updated"`
}

// ChangeSet is what subscribers receive: the tickets that changed and
// when the set was observed.
type ChangeSet struct {
	Changes    []Change  `json:"changes"`
	ObservedAt time.Time `json:"observed_at"`
}

// Callback receives change notifications. Callbacks run on the feed's
// goroutine and should hand work off quickly.
type Callback func(ChangeSet)

// Broadcaster fans change notifications out to subscribers.
type Broadcaster struct {
	mu     sync.Mutex
	nextID int
	subs   map[int]Callback
}

// NewBroadcaster creates an empty broadcaster.
func NewBroadcaster() *Broadcaster {
	return &Broadcaster{subs: make(map[int]Callback)}
}

// Subscribe registers a callback and returns the function that removes
// it. Unsubscribing twice is harmless.
func (b *Broadcaster) Subscribe(fn Callback) (unsubscribe func()) {
	b.mu.Lock()
	id := b.nextID
	b.nextID++
	b.subs[id] = fn
	b.mu.Unlock()

	return func() {
		b.mu.Lock()
		delete(b.subs, id)
		b.mu.Unlock()
	}
}

// Notify delivers a non-empty change set to every subscriber.
func (b *Broadcaster) Notify(set ChangeSet) {
	if len(set.Changes) == 0 {
		return
	}
	b.mu.Lock()
	callbacks := make([]Callback, 0, len(b.subs))
	for _, fn := range b.subs {
		callbacks = append(callbacks, fn)
	}
	b.mu.Unlock()

	for _, fn := range callbacks {
		fn(set)
	}
}
