package domain

import (
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"github.com/light-bringer/fulfillment-service/internal/pkg/outbox"
)

// DomainEvent is the base interface for all domain events.
type DomainEvent = outbox.DomainEvent

// OrderCreatedEvent is emitted when an order is placed.
type OrderCreatedEvent struct {
	OrderID     int64           `json:"order_id"`
	OrderNumber string          `json:"order_number"`
	UserID      int64           `json:"user_id"`
	Status      OrderStatus     `json:"status"`
	Total       decimal.Decimal `json:"total"`
	CreatedAt   time.Time       `json:"created_at"`
}

func (e *OrderCreatedEvent) EventType() string   { return "order.created" }
func (e *OrderCreatedEvent) AggregateID() string { return strconv.FormatInt(e.OrderID, 10) }

// OrderStatusChangedEvent is emitted when the status moves.
type OrderStatusChangedEvent struct {
	OrderID   int64       `json:"order_id"`
	From      OrderStatus `json:"from"`
	To        OrderStatus `json:"to"`
	ChangedAt time.Time   `json:"changed_at"`
}

func (e *OrderStatusChangedEvent) EventType() string   { return "order.status_changed" }
func (e *OrderStatusChangedEvent) AggregateID() string { return strconv.FormatInt(e.OrderID, 10) }

// OrderDeletedEvent is emitted when an order is removed.
type OrderDeletedEvent struct {
	OrderID   int64     `json:"order_id"`
	DeletedAt time.Time `json:"deleted_at"`
}

func (e *OrderDeletedEvent) EventType() string   { return "order.deleted" }
func (e *OrderDeletedEvent) AggregateID() string { return strconv.FormatInt(e.OrderID, 10) }
