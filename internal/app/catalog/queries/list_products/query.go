package list_products

import (
	"context"

	"github.com/light-bringer/fulfillment-service/internal/app/catalog/contracts"
	"github.com/light-bringer/fulfillment-service/internal/app/catalog/domain"
)

// PageSize is the fixed admin page size.
const PageSize int64 = 100

// Request contains the requested page; values below 1 mean page 1.
type Request struct {
	Page int64
}

// Query handles the admin product listing.
type Query struct {
	readModel contracts.ReadModel
}

// NewQuery creates a new list products query.
func NewQuery(readModel contracts.ReadModel) *Query {
	return &Query{
		readModel: readModel,
	}
}

// Execute retrieves one id-ordered page of products.
func (q *Query) Execute(ctx context.Context, req *Request) (*contracts.ProductList, error) {
	page := max(req.Page, 1)
	if !domain.PageInRange(page, PageSize) {
		return nil, domain.PageOutOfRange()
	}
	return q.readModel.ListProducts(ctx, page, PageSize)
}
