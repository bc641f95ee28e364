package update_product

import (
	"context"
	"errors"
	"fmt"

	"cloud.google.com/go/spanner"

	"github.com/light-bringer/fulfillment-service/internal/app/catalog/contracts"
	"github.com/light-bringer/fulfillment-service/internal/app/catalog/domain"
	"github.com/light-bringer/fulfillment-service/internal/models/m_inventory"
	"github.com/light-bringer/fulfillment-service/internal/pkg/clock"
	"github.com/light-bringer/fulfillment-service/internal/pkg/committer"
	"github.com/light-bringer/fulfillment-service/internal/pkg/outbox"
)

// Request contains the full replacement of the admin-editable fields.
type Request struct {
	ProductID int64
	domain.ProductInput
}

// Interactor handles the update product use case.
type Interactor struct {
	repo       contracts.ProductRepository
	outboxRepo outbox.Repository
	committer  committer.Applier
	clock      clock.Clock
}

// NewInteractor creates a new update product interactor.
func NewInteractor(
	repo contracts.ProductRepository,
	outboxRepo outbox.Repository,
	committer committer.Applier,
	clock clock.Clock,
) *Interactor {
	return &Interactor{
		repo:       repo,
		outboxRepo: outboxRepo,
		committer:  committer,
		clock:      clock,
	}
}

// Execute updates a product with an optimistic version check.
func (i *Interactor) Execute(ctx context.Context, req *Request) (*domain.Product, error) {
	// 1. Load aggregate
	product, err := i.repo.GetByID(ctx, req.ProductID)
	if err != nil {
		return nil, err
	}

	// Clear events on function exit to prevent duplicates on retry
	defer product.ClearEvents()

	// 2. Call domain method
	if err := product.Update(req.ProductInput, i.clock.Now()); err != nil {
		return nil, err
	}

	// 3. Create commit plan
	plan := committer.NewPlan()

	// 4. Add repository mutation (only if changes exist)
	if mut := i.repo.UpdateMut(product); mut != nil {
		plan.Add(mut)
	}

	// 5. Add outbox events
	muts, err := i.outboxRepo.Mutations(product.DomainEvents())
	if err != nil {
		return nil, err
	}
	plan.AddMultiple(muts)

	// 6. Apply plan
	if plan.IsEmpty() {
		return product, nil // No changes
	}

	err = i.committer.ApplyWithVersionCheck(ctx, m_inventory.TableName, spanner.Key{product.ID()}, product.Version(), plan)
	switch {
	case errors.Is(err, committer.ErrRowNotFound):
		return nil, domain.ErrNotFound
	case errors.Is(err, committer.ErrOptimisticLockConflict):
		return nil, fmt.Errorf("%w: %w", domain.ErrConflict, err)
	case err != nil:
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return product, nil
}
