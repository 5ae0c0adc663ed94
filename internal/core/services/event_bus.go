package services

import (
	"sync"
	"time"

	"github.com/tableside/backoffice/internal/core/domain"
	portssvc "github.com/tableside/backoffice/internal/core/ports/services"
)

// eventBus fans change events out to subscribers. Mutators publish without
// blocking; a subscriber whose buffer is full misses events and is expected
// to re-read the store anyway.
type eventBus struct {
	mu     sync.Mutex
	nextID int
	subs   map[int]chan domain.ChangeEvent
}

// NewEventBus creates an empty change event bus.
func NewEventBus() portssvc.EventBusSvc {
	return &eventBus{subs: make(map[int]chan domain.ChangeEvent)}
}

func (b *eventBus) Publish(event domain.ChangeEvent) {
	if event.At.IsZero() {
		event.At = time.Now().UTC()
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, ch := range b.subs {
		select {
		case ch <- event:
		default:
			// Drop rather than block the mutation path.
		}
	}
}

func (b *eventBus) Subscribe(buffer int) (<-chan domain.ChangeEvent, func()) {
	if buffer < 1 {
		buffer = 1
	}
	ch := make(chan domain.ChangeEvent, buffer)

	b.mu.Lock()
	id := b.nextID
	b.nextID++
	b.subs[id] = ch
	b.mu.Unlock()

	cancel := func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		if _, ok := b.subs[id]; ok {
			delete(b.subs, id)
			close(ch)
		}
	}
	return ch, cancel
}
