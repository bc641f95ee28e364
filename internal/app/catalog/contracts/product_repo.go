package contracts

import (
	"context"

	"cloud.google.com/go/spanner"

	"github.com/light-bringer/fulfillment-service/internal/app/catalog/domain"
)

// ProductRepository defines the interface for product persistence.
// Repositories return mutations, they don't apply them (Golden Mutation Pattern).
type ProductRepository interface {
	// InsertMut creates a mutation for inserting a new product
	InsertMut(product *domain.Product) *spanner.Mutation

	// UpdateMut creates a mutation for updating a product (only dirty fields).
	// Returns nil when nothing changed.
	UpdateMut(product *domain.Product) *spanner.Mutation

	// DeleteMut creates a mutation that removes the product row
	DeleteMut(productID int64) *spanner.Mutation

	// GetByID retrieves a product by ID, reconstructing the domain aggregate
	GetByID(ctx context.Context, productID int64) (*domain.Product, error)
}
