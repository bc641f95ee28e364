package contracts

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/light-bringer/fulfillment-service/internal/app/catalog/domain"
)

// ProductDTO is the admin view of an inventory row.
type ProductDTO struct {
	ID        int64           `json:"id"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	Stock     int64           `json:"stock"`
	Category  string          `json:"category"`
	Image     string          `json:"image"`
	CreatedAt time.Time       `json:"createdAt"`
	UpdatedAt time.Time       `json:"updatedAt"`
}

// Pagination describes one page of an admin listing.
type Pagination struct {
	Total int64 `json:"total"`
	Pages int64 `json:"pages"`
	Page  int64 `json:"page"`
	Limit int64 `json:"limit"`
}

// ProductList is a page of admin products.
type ProductList struct {
	Data       []*ProductDTO `json:"data"`
	Pagination Pagination    `json:"pagination"`
}

// ReadModel defines the catalog queries.
// Read models bypass the domain layer and return storage rows; callers normalize.
type ReadModel interface {
	// ListCatalog returns the rows of the requested page and the total number
	// of rows matching the filter. Both are read from the same snapshot.
	ListCatalog(ctx context.Context, filter domain.Filter) ([]domain.Row, int64, error)

	// ListShowcase returns up to n newest rows that carry an image.
	ListShowcase(ctx context.Context, n int64) ([]domain.Row, error)

	// GetProduct retrieves one product for the admin surface.
	GetProduct(ctx context.Context, id int64) (*ProductDTO, error)

	// ListProducts returns an id-ordered admin page.
	ListProducts(ctx context.Context, page, limit int64) (*ProductList, error)
}
