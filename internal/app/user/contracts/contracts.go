package contracts

import (
	"context"

	"cloud.google.com/go/spanner"

	"github.com/light-bringer/fulfillment-service/internal/app/user/domain"
)

// Repository defines user persistence and queries.
type Repository interface {
	InsertMut(u *domain.User) *spanner.Mutation
	// UpdateMut writes the named columns of u. Returns nil when columns is empty.
	UpdateMut(u *domain.User, columns []string) *spanner.Mutation
	DeleteMut(id int64) *spanner.Mutation
	GetByID(ctx context.Context, id int64) (*domain.User, error)

	// FindIDByEmail looks the address up through the unique email index.
	// found is false when no user has it.
	FindIDByEmail(ctx context.Context, email string) (id int64, found bool, err error)

	// List returns users ordered by id.
	List(ctx context.Context) ([]*domain.User, error)
}
