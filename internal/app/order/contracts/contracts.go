package contracts

import (
	"context"

	"cloud.google.com/go/spanner"

	"github.com/light-bringer/fulfillment-service/internal/app/order/domain"
)

// OrderDTO is the admin view of an order. Date is formatted YYYY-MM-DD.
type OrderDTO struct {
	ID           int64   `json:"id"`
	OrderNumber  string  `json:"orderNumber"`
	UserID       int64   `json:"userId"`
	CustomerName string  `json:"customerName"`
	Email        string  `json:"email"`
	Status       string  `json:"status"`
	Total        float64 `json:"total"`
	Date         string  `json:"date"`
}

// OrderRepository defines the interface for order persistence.
// Repositories return mutations, they don't apply them (Golden Mutation Pattern).
type OrderRepository interface {
	InsertMut(order *domain.Order) *spanner.Mutation
	UpdateStatusMut(order *domain.Order) *spanner.Mutation
	DeleteMut(orderID int64) *spanner.Mutation
	GetByID(ctx context.Context, orderID int64) (*domain.Order, error)
}

// ReadModel defines the order queries.
type ReadModel interface {
	GetOrder(ctx context.Context, orderID int64) (*OrderDTO, error)

	// ListOrders returns orders newest first.
	ListOrders(ctx context.Context) ([]*OrderDTO, error)
}
