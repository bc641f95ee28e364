package repo

import (
	"context"
	"fmt"

	"cloud.google.com/go/spanner"
	"google.golang.org/grpc/codes"

	"github.com/light-bringer/fulfillment-service/internal/app/catalog/contracts"
	"github.com/light-bringer/fulfillment-service/internal/app/catalog/domain"
	"github.com/light-bringer/fulfillment-service/internal/models/m_inventory"
)

// ProductRepo implements ProductRepository for Spanner.
type ProductRepo struct {
	client *spanner.Client
	model  *m_inventory.Model
}

// NewProductRepo creates a new ProductRepo.
func NewProductRepo(client *spanner.Client) contracts.ProductRepository {
	return &ProductRepo{
		client: client,
		model:  m_inventory.NewModel(),
	}
}

// InsertMut creates a mutation for inserting a new product.
// The admin name is stored as both handle and title.
func (r *ProductRepo) InsertMut(product *domain.Product) *spanner.Mutation {
	return r.model.InsertMut(domainToData(product))
}

// UpdateMut creates a mutation for updating a product (only dirty fields).
func (r *ProductRepo) UpdateMut(product *domain.Product) *spanner.Mutation {
	changes := product.Changes()
	if !changes.HasChanges() {
		return nil
	}

	updates := make(map[string]interface{})

	if changes.Dirty(domain.FieldName) {
		updates[m_inventory.Title] = nullString(product.Name())
		updates[m_inventory.Handle] = nullString(product.Name())
	}

	if changes.Dirty(domain.FieldPrice) {
		updates[m_inventory.VariantPrice] = nullString(product.Price().String())
	}

	if changes.Dirty(domain.FieldStock) {
		updates[m_inventory.Quantity] = spanner.NullInt64{Int64: product.Stock(), Valid: true}
	}

	if changes.Dirty(domain.FieldCategory) {
		updates[m_inventory.ProductType] = nullString(product.Category())
	}

	if changes.Dirty(domain.FieldImage) {
		updates[m_inventory.ImageSrc] = nullString(product.Image())
	}

	// Increment version for optimistic locking
	updates[m_inventory.Version] = product.Version() + 1

	return r.model.UpdateMut(product.ID(), updates)
}

// DeleteMut creates a mutation that removes the product row.
func (r *ProductRepo) DeleteMut(productID int64) *spanner.Mutation {
	return r.model.DeleteMut(productID)
}

// GetByID retrieves a product by ID, reconstructing the domain aggregate.
func (r *ProductRepo) GetByID(ctx context.Context, productID int64) (*domain.Product, error) {
	row, err := r.client.Single().ReadRow(ctx, m_inventory.TableName, spanner.Key{productID}, []string{
		m_inventory.ID,
		m_inventory.Handle,
		m_inventory.Title,
		m_inventory.ProductType,
		m_inventory.VariantPrice,
		m_inventory.ImageSrc,
		m_inventory.Quantity,
		m_inventory.Version,
		m_inventory.CreatedAt,
		m_inventory.UpdatedAt,
	})
	if err != nil {
		if spanner.ErrCode(err) == codes.NotFound {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("failed to read product: %w", err)
	}

	var data m_inventory.Data
	if err := row.ToStruct(&data); err != nil {
		return nil, fmt.Errorf("failed to parse product: %w", err)
	}

	return domain.ReconstructProduct(
		data.ID,
		domain.NormalizeAdmin(dataToRow(&data)),
		data.Version,
		data.CreatedAt,
		data.UpdatedAt,
	), nil
}

// domainToData converts a domain Product to database Data.
func domainToData(product *domain.Product) *m_inventory.Data {
	return &m_inventory.Data{
		ID:           product.ID(),
		Handle:       nullString(product.Name()),
		Title:        nullString(product.Name()),
		ProductType:  nullString(product.Category()),
		VariantPrice: nullString(product.Price().String()),
		ImageSrc:     nullString(product.Image()),
		Quantity:     spanner.NullInt64{Int64: product.Stock(), Valid: true},
		Version:      product.Version(),
		CreatedAt:    product.CreatedAt(),
		UpdatedAt:    product.UpdatedAt(),
	}
}
