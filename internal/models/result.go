package models

import "time"

// Result is the outcome of a write shown to the user.
// Err keeps the cause of a failure for callers that classify it.
type Result struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Err     error  `json:"-"`
}

// InventoryEvent describes a change to an inventory record.
type InventoryEvent struct {
	Entity     string    `json:"entity"` // "category", "supplier" or "product"
	Action     string    `json:"action"` // "created", "updated" or "deleted"
	ID         int64     `json:"id"`
	Name       string    `json:"name,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

// RoutingKey returns the key an event is published under, e.g. "product.created".
func (e InventoryEvent) RoutingKey() string {
	return e.Entity + "." + e.Action
}
