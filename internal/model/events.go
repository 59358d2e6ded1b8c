package model

import (
	"context"
	"time"
)

// EventType names a lifecycle event.
type EventType string

const (
	EventContractSigned   EventType = "contract.signed"
	EventContractApproved EventType = "contract.approved"
	EventOrderPaid        EventType = "order.paid"
)

// Event is a lifecycle notification. Key selects the partition.
type Event struct {
	Type       EventType
	Key        string
	OccurredAt time.Time
	Payload    any
}

// EventPublisher emits lifecycle events.
type EventPublisher interface {
	Publish(ctx context.Context, event Event) error
}
