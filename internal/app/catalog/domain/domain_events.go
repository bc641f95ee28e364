package domain

import (
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"github.com/light-bringer/fulfillment-service/internal/pkg/outbox"
)

// DomainEvent is the base interface for all domain events.
type DomainEvent = outbox.DomainEvent

// ProductCreatedEvent is emitted when a product is created.
type ProductCreatedEvent struct {
	ProductID int64           `json:"product_id"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	Stock     int64           `json:"stock"`
	Category  string          `json:"category"`
	CreatedAt time.Time       `json:"created_at"`
}

func (e *ProductCreatedEvent) EventType() string   { return "product.created" }
func (e *ProductCreatedEvent) AggregateID() string { return strconv.FormatInt(e.ProductID, 10) }

// ProductUpdatedEvent is emitted once per update, listing the changed fields.
type ProductUpdatedEvent struct {
	ProductID     int64     `json:"product_id"`
	ChangedFields []string  `json:"changed_fields"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func (e *ProductUpdatedEvent) EventType() string   { return "product.updated" }
func (e *ProductUpdatedEvent) AggregateID() string { return strconv.FormatInt(e.ProductID, 10) }

// ProductDeletedEvent is emitted when a product is removed.
type ProductDeletedEvent struct {
	ProductID int64     `json:"product_id"`
	DeletedAt time.Time `json:"deleted_at"`
}

func (e *ProductDeletedEvent) EventType() string   { return "product.deleted" }
func (e *ProductDeletedEvent) AggregateID() string { return strconv.FormatInt(e.ProductID, 10) }
