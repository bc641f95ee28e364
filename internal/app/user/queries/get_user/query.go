package get_user

import (
	"context"

	"github.com/light-bringer/fulfillment-service/internal/app/user/contracts"
	"github.com/light-bringer/fulfillment-service/internal/app/user/domain"
)

// Request contains the user ID to retrieve.
type Request struct {
	ID int64
}

// Query handles the get user query.
type Query struct {
	repo contracts.Repository
}

// NewQuery creates a new get user query.
func NewQuery(repo contracts.Repository) *Query {
	return &Query{repo: repo}
}

// Execute retrieves a user by ID.
func (q *Query) Execute(ctx context.Context, req *Request) (*domain.User, error) {
	return q.repo.GetByID(ctx, req.ID)
}
