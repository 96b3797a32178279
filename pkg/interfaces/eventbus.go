package interfaces

import "context"

// Event represents an event emitted by an aggregate.
type Event interface {
	// EventType returns the type of the event
	EventType() string

	// AggregateID returns the ID of the aggregate that produced the event
	AggregateID() string

	// OccurredAt returns the unix timestamp of when the event occurred
	OccurredAt() int64
}

// EventHandler handles events of a specific type.
type EventHandler interface {
	// Handle processes an event
	Handle(ctx context.Context, event Event) error

	// EventType returns the type of events this handler processes
	EventType() string
}

// EventBus publishes aggregate events to interested consumers. The
// orchestration layer publishes drained events exactly once per
// successful persist, never before.
type EventBus interface {
	// Publish publishes an event to all subscribers
	Publish(ctx context.Context, event Event) error

	// Subscribe registers a handler for a specific event type
	Subscribe(eventType string, handler EventHandler) error
}
