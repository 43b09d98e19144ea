package broadcast

import (
	"context"
	"sync"

	"okdelivery/internal/core/ports"
)

// Event is the envelope delivered to in-process subscribers. Exactly one of
// StatusChanged or LocationUpdated is set.
type Event struct {
	StatusChanged   *ports.StatusChangedEvent
	LocationUpdated *ports.LocationUpdatedEvent
}

// InProcessBus is a same-process pub/sub sink. Subscribers receive events on
// buffered channels; a subscriber that cannot keep up has events dropped
// rather than blocking the publisher.
type InProcessBus struct {
	mu          sync.RWMutex
	subscribers map[int]chan Event
	nextID      int
}

// NewInProcessBus creates an empty bus.
func NewInProcessBus() *InProcessBus {
	return &InProcessBus{
		subscribers: make(map[int]chan Event),
	}
}

// Subscribe registers a new subscriber and returns its event channel together
// with an unsubscribe function. Unsubscribing closes the channel.
func (b *InProcessBus) Subscribe(buffer int) (<-chan Event, func()) {
	if buffer < 1 {
		buffer = 1
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	id := b.nextID
	b.nextID++

	ch := make(chan Event, buffer)
	b.subscribers[id] = ch

	unsubscribe := func() {
		b.mu.Lock()
		defer b.mu.Unlock()

		if sub, ok := b.subscribers[id]; ok {
			delete(b.subscribers, id)
			close(sub)
		}
	}

	return ch, unsubscribe
}

func (b *InProcessBus) Name() string {
	return "inprocess"
}

func (b *InProcessBus) StatusChanged(_ context.Context, event ports.StatusChangedEvent) error {
	b.publish(Event{StatusChanged: &event})
	return nil
}

func (b *InProcessBus) LocationUpdated(_ context.Context, event ports.LocationUpdatedEvent) error {
	b.publish(Event{LocationUpdated: &event})
	return nil
}

func (b *InProcessBus) publish(event Event) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	for _, ch := range b.subscribers {
		select {
		case ch <- event:
		default:
			// subscriber buffer full, drop for this subscriber
		}
	}
}
