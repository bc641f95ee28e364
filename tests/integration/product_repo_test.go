//go:build integration

package integration

import (
	"context"
	"strconv"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/light-bringer/fulfillment-service/internal/app/catalog/domain"
	"github.com/light-bringer/fulfillment-service/internal/app/catalog/repo"
	"github.com/light-bringer/fulfillment-service/internal/app/catalog/usecases/create_product"
	"github.com/light-bringer/fulfillment-service/internal/app/catalog/usecases/delete_product"
	"github.com/light-bringer/fulfillment-service/internal/app/catalog/usecases/update_product"
	"github.com/light-bringer/fulfillment-service/internal/models/m_inventory"
	"github.com/light-bringer/fulfillment-service/internal/pkg/committer"
	"github.com/light-bringer/fulfillment-service/internal/pkg/idgen"
	"github.com/light-bringer/fulfillment-service/internal/pkg/outbox"
	"github.com/light-bringer/fulfillment-service/tests/testutil"
)

func TestProductLifecycle(t *testing.T) {
	client, cleanup := testutil.SetupSpannerTest(t)
	defer cleanup()

	ctx := context.Background()
	products := repo.NewProductRepo(client)
	outboxRepo := outbox.NewRepo()
	comm := committer.NewCommitter(client)
	clk := testutil.NewMockClock()

	create := create_product.NewInteractor(products, outboxRepo, comm, idgen.NewSequence(100), clk)
	update := update_product.NewInteractor(products, outboxRepo, comm, clk)
	del := delete_product.NewInteractor(products, outboxRepo, comm, clk)

	// Create
	created, err := create.Execute(ctx, &create_product.Request{
		Name:     "Pallet Jack",
		Price:    decimal.RequireFromString("249.99"),
		Stock:    3,
		Category: "Warehouse",
	})
	require.NoError(t, err)
	id := created.ID()
	testutil.AssertRowCount(t, client, m_inventory.TableName, 1)
	testutil.AssertOutboxEvent(t, client, "product.created", strconv.FormatInt(id, 10))

	// The created row is visible to the catalog, normalized
	rows, total, err := repo.NewReadModel(client).ListCatalog(ctx, domain.DefaultFilter())
	require.NoError(t, err)
	require.Equal(t, int64(1), total)
	item := domain.NormalizeItem(rows[0])
	assert.Equal(t, "Pallet Jack", item.Name)
	assert.Equal(t, 249.99, item.Price)
	assert.Equal(t, "Warehouse", item.Category)
	assert.Equal(t, domain.PlaceholderImage, item.Image)

	// Update
	_, err = update.Execute(ctx, &update_product.Request{
		ProductID: id,
		ProductInput: domain.ProductInput{
			Name:     "Pallet Jack XL",
			Price:    decimal.RequireFromString("299"),
			Stock:    1,
			Category: "Warehouse",
		},
	})
	require.NoError(t, err)

	loaded, err := products.GetByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Pallet Jack XL", loaded.Name())
	assert.True(t, decimal.RequireFromString("299").Equal(loaded.Price()))
	assert.Equal(t, int64(1), loaded.Version())

	// Delete
	require.NoError(t, del.Execute(ctx, &delete_product.Request{ProductID: id}))
	_, err = products.GetByID(ctx, id)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	testutil.AssertOutboxEvent(t, client, "product.deleted", strconv.FormatInt(id, 10))
}

func TestProductUpdate_Missing(t *testing.T) {
	client, cleanup := testutil.SetupSpannerTest(t)
	defer cleanup()

	update := update_product.NewInteractor(repo.NewProductRepo(client), outbox.NewRepo(), committer.NewCommitter(client), testutil.NewMockClock())
	_, err := update.Execute(context.Background(), &update_product.Request{
		ProductID:    999,
		ProductInput: domain.ProductInput{Name: "Ghost"},
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
