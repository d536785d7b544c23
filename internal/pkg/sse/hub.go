package sse

import (
	"sync"
)

const subscriberBuffer = 10

// Event is one server-sent event. RoomID scopes it to the accounts allowed to
// view that room; a nil RoomID reaches everyone.
type Event struct {
	AccountID string
	Event     string
	RoomID    *int
	Data      interface{}
}

// RoomFilter reports whether a subscriber may see events about a room.
type RoomFilter func(roomID int) bool

type subscription struct {
	ch      chan Event
	canView RoomFilter
}

func (s *subscription) accepts(event Event) bool {
	return event.RoomID == nil || s.canView == nil || s.canView(*event.RoomID)
}

// deliver never blocks: a slow stream loses events rather than stalling writers.
func (s *subscription) deliver(event Event) bool {
	if !s.accepts(event) {
		return false
	}
	select {
	case s.ch <- event:
		return true
	default:
		return false
	}
}

// Hub fans studio events out to open event streams, keyed by account.
type Hub struct {
	mu   sync.RWMutex
	subs map[string]map[*subscription]struct{}
}

func NewHub() *Hub {
	return &Hub{
		subs: make(map[string]map[*subscription]struct{}),
	}
}

// Subscribe opens a stream for an account. canView may be nil for an unscoped
// stream. The returned cleanup closes the channel and is safe to call twice.
func (h *Hub) Subscribe(accountID string, canView RoomFilter) (<-chan Event, func()) {
	sub := &subscription{
		ch:      make(chan Event, subscriberBuffer),
		canView: canView,
	}

	h.mu.Lock()
	if h.subs[accountID] == nil {
		h.subs[accountID] = make(map[*subscription]struct{})
	}
	h.subs[accountID][sub] = struct{}{}
	h.mu.Unlock()

	var once sync.Once
	cleanup := func() {
		once.Do(func() {
			h.mu.Lock()
			defer h.mu.Unlock()
			delete(h.subs[accountID], sub)
			if len(h.subs[accountID]) == 0 {
				delete(h.subs, accountID)
			}
			close(sub.ch)
		})
	}
	return sub.ch, cleanup
}

// Publish sends an event to every stream of one account and returns how many received it.
func (h *Hub) Publish(accountID string, event Event) int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	event.AccountID = accountID
	delivered := 0
	for sub := range h.subs[accountID] {
		if sub.deliver(event) {
			delivered++
		}
	}
	return delivered
}

// Broadcast sends an event to every stream allowed to see it and returns how many received it.
func (h *Hub) Broadcast(event Event) int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	delivered := 0
	for accountID, subs := range h.subs {
		event.AccountID = accountID
		for sub := range subs {
			if sub.deliver(event) {
				delivered++
			}
		}
	}
	return delivered
}

func (h *Hub) SubscriberCount(accountID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs[accountID])
}

// Subscribers counts open streams across all accounts.
func (h *Hub) Subscribers() int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	total := 0
	for _, subs := range h.subs {
		total += len(subs)
	}
	return total
}
