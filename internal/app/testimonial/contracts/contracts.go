package contracts

import (
	"context"

	"cloud.google.com/go/spanner"

	"github.com/light-bringer/fulfillment-service/internal/app/testimonial/domain"
)

// Repository defines testimonial persistence and queries.
type Repository interface {
	InsertMut(t *domain.Testimonial) *spanner.Mutation
	UpdateMut(t *domain.Testimonial) *spanner.Mutation
	DeleteMut(id int64) *spanner.Mutation
	GetByID(ctx context.Context, id int64) (*domain.Testimonial, error)

	// List returns testimonials newest first.
	List(ctx context.Context) ([]*domain.Testimonial, error)
}
