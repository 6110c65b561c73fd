package contracts

import "context"

// EventPublisher pushes domain events onto the durable broker queue for
// downstream consumers (analytics, audit trail).
type EventPublisher interface {
	Publish(ctx context.Context, eventName string, payload interface{}) error
}
