package get_testimonial

import (
	"context"

	"github.com/light-bringer/fulfillment-service/internal/app/testimonial/contracts"
	"github.com/light-bringer/fulfillment-service/internal/app/testimonial/domain"
)

// Request contains the testimonial ID to retrieve.
type Request struct {
	ID int64
}

// Query handles the get testimonial query.
type Query struct {
	repo contracts.Repository
}

// NewQuery creates a new get testimonial query.
func NewQuery(repo contracts.Repository) *Query {
	return &Query{repo: repo}
}

// Execute retrieves a testimonial by ID.
func (q *Query) Execute(ctx context.Context, req *Request) (*domain.Testimonial, error) {
	return q.repo.GetByID(ctx, req.ID)
}
