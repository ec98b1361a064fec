// Package search carries the dashboard's global search term between the
// component that sets it and the components that react to it.
package search

import (
	"sort"
	"sync"
)

// Handler receives each published search term.
type Handler func(query string)

// Bus is a synchronous broadcast channel for the global search term.
// Publish delivers to every current subscriber in subscription order before
// returning; subscribers must not block.
type Bus struct {
	mu       sync.Mutex
	nextID   int
	handlers map[int]Handler
	last     string
	hasLast  bool
}

// NewBus returns an empty bus.
func NewBus() *Bus {
	return &Bus{handlers: map[int]Handler{}}
}

// Subscribe registers a handler and returns a function that removes it.
// The handler is immediately invoked with the most recently published term,
// if any, so late subscribers do not miss the current state.
func (b *Bus) Subscribe(h Handler) (unsubscribe func()) {
	b.mu.Lock()
	id := b.nextID
	b.nextID++
	b.handlers[id] = h
	replay := b.hasLast
	last := b.last
	b.mu.Unlock()

	if replay {
		h(last)
	}
	return func() {
		b.mu.Lock()
		delete(b.handlers, id)
		b.mu.Unlock()
	}
}

// Publish broadcasts a search term to all subscribers.
func (b *Bus) Publish(query string) {
	b.mu.Lock()
	b.last = query
	b.hasLast = true
	ids := make([]int, 0, len(b.handlers))
	for id := range b.handlers {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	handlers := make([]Handler, 0, len(ids))
	for _, id := range ids {
		handlers = append(handlers, b.handlers[id])
	}
	b.mu.Unlock()

	for _, h := range handlers {
		h(query)
	}
}

// Current returns the most recently published term.
func (b *Bus) Current() (string, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.last, b.hasLast
}
