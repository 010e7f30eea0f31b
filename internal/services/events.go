package services

import (
	"log"
	"time"

	"swiftstock/internal/models"
)

// EventPublisher publishes inventory change events.
type EventPublisher interface {
	PublishInventoryEvent(event models.InventoryEvent) error
}

// notifier publishes events when a publisher is configured. Failures are
// logged and never affect the write that caused them.
type notifier struct {
	publisher EventPublisher
}

func (n notifier) notify(entity, action string, id int64, name string) {
	if n.publisher == nil {
		return
	}
	event := models.InventoryEvent{
		Entity:     entity,
		Action:     action,
		ID:         id,
		Name:       name,
		OccurredAt: time.Now().UTC(),
	}
	if err := n.publisher.PublishInventoryEvent(event); err != nil {
		log.Printf("Warning: Failed to publish %s event for %s %d: %v", event.RoutingKey(), entity, id, err)
	}
}
