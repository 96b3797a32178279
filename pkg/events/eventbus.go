package events

import (
	"context"
	"sync"

	"github.com/finchmedia/finch/pkg/interfaces"
)

// InMemoryEventBus is an in-process implementation of EventBus. It is the
// default bus in tests and local development; production wires the NATS
// publisher instead.
type InMemoryEventBus struct {
	handlers map[string][]interfaces.EventHandler
	mu       sync.RWMutex
	logger   interfaces.Logger

	publishedMu sync.Mutex
	published   []interfaces.Event
}

// NewInMemoryEventBus creates a new in-memory event bus.
func NewInMemoryEventBus(logger interfaces.Logger) *InMemoryEventBus {
	return &InMemoryEventBus{
		handlers: make(map[string][]interfaces.EventHandler),
		logger:   logger,
	}
}

// Publish publishes an event to all subscribers.
func (eb *InMemoryEventBus) Publish(ctx context.Context, event interfaces.Event) error {
	eb.publishedMu.Lock()
	eb.published = append(eb.published, event)
	eb.publishedMu.Unlock()

	eb.mu.RLock()
	handlers := eb.handlers[event.EventType()]
	eb.mu.RUnlock()

	for _, handler := range handlers {
		if err := handler.Handle(ctx, event); err != nil {
			eb.logger.Error("Event handler failed",
				interfaces.String("event_type", event.EventType()),
				interfaces.String("handler", handler.EventType()),
				interfaces.Error(err))
			// Continue processing other handlers
		}
	}

	return nil
}

// Subscribe registers a handler for a specific event type.
func (eb *InMemoryEventBus) Subscribe(eventType string, handler interfaces.EventHandler) error {
	eb.mu.Lock()
	defer eb.mu.Unlock()

	eb.handlers[eventType] = append(eb.handlers[eventType], handler)
	return nil
}

// Published returns every event published so far, in order. Test helper.
func (eb *InMemoryEventBus) Published() []interfaces.Event {
	eb.publishedMu.Lock()
	defer eb.publishedMu.Unlock()

	out := make([]interfaces.Event, len(eb.published))
	copy(out, eb.published)
	return out
}
