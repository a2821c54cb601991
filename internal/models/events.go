package models

import "time"

// Event types
const (
	EventTypeOrderPlaced        = "ORDER_PLACED"
	EventTypeOrderStatusChanged = "ORDER_STATUS_CHANGED"
)

// BaseEvent contains common fields for all events
type BaseEvent struct {
	EventID   string    `json:"event_id"`
	EventType string    `json:"event_type"`
	Timestamp time.Time `json:"timestamp"`
}

// OrderPlacedEvent is published when a checkout completes
type OrderPlacedEvent struct {
	BaseEvent
	SessionID string     `json:"session_id"`
	OrderID   string     `json:"order_id"`
	Email     string     `json:"email"`
	Total     float64    `json:"total"`
	Items     []CartLine `json:"items"`
}

// OrderStatusChangedEvent is published when an order status advances
type OrderStatusChangedEvent struct {
	BaseEvent
	SessionID string `json:"session_id"`
	OrderID   string `json:"order_id"`
	OldStatus string `json:"old_status"`
	NewStatus string `json:"new_status"`
}
