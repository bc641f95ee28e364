package list_orders

import (
	"context"

	"github.com/light-bringer/fulfillment-service/internal/app/order/contracts"
)

// Query handles the list orders query use case.
type Query struct {
	readModel contracts.ReadModel
}

// NewQuery creates a new list orders query.
func NewQuery(readModel contracts.ReadModel) *Query {
	return &Query{readModel: readModel}
}

// Execute retrieves every order, newest first.
func (q *Query) Execute(ctx context.Context) ([]*contracts.OrderDTO, error) {
	return q.readModel.ListOrders(ctx)
}
