package messaging

import "context"

// Publisher defines an interface for publishing events to a message broker.
// Delivery is at-least-once; the broker client handles its own retries.
type Publisher interface {
	PublishEvent(ctx context.Context, topic string, key string, event any) error
}
