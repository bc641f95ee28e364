package list_users

import (
	"context"

	"github.com/light-bringer/fulfillment-service/internal/app/user/contracts"
	"github.com/light-bringer/fulfillment-service/internal/app/user/domain"
)

// Query handles the list users query.
type Query struct {
	repo contracts.Repository
}

// NewQuery creates a new list users query.
func NewQuery(repo contracts.Repository) *Query {
	return &Query{repo: repo}
}

// Execute returns every user ordered by id.
func (q *Query) Execute(ctx context.Context) ([]*domain.User, error) {
	return q.repo.List(ctx)
}
