package list_testimonials

import (
	"context"

	"github.com/light-bringer/fulfillment-service/internal/app/testimonial/contracts"
	"github.com/light-bringer/fulfillment-service/internal/app/testimonial/domain"
)

// Query handles the list testimonials query.
type Query struct {
	repo contracts.Repository
}

// NewQuery creates a new list testimonials query.
func NewQuery(repo contracts.Repository) *Query {
	return &Query{repo: repo}
}

// Execute returns every testimonial, newest first.
func (q *Query) Execute(ctx context.Context) ([]*domain.Testimonial, error) {
	return q.repo.List(ctx)
}
