package delete_product

import (
	"context"
	"fmt"

	"github.com/light-bringer/fulfillment-service/internal/app/catalog/contracts"
	"github.com/light-bringer/fulfillment-service/internal/pkg/clock"
	"github.com/light-bringer/fulfillment-service/internal/pkg/committer"
	"github.com/light-bringer/fulfillment-service/internal/pkg/outbox"
)

// Request contains the product to delete.
type Request struct {
	ProductID int64
}

// Interactor handles the delete product use case.
type Interactor struct {
	repo       contracts.ProductRepository
	outboxRepo outbox.Repository
	committer  committer.Applier
	clock      clock.Clock
}

// NewInteractor creates a new delete product interactor.
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

// Execute removes a product. Missing products return domain.ErrNotFound.
func (i *Interactor) Execute(ctx context.Context, req *Request) error {
	// 1. Load aggregate
	product, err := i.repo.GetByID(ctx, req.ProductID)
	if err != nil {
		return err
	}
	defer product.ClearEvents()

	// 2. Record deletion
	product.MarkDeleted(i.clock.Now())

	// 3. Build plan: row delete + outbox events
	plan := committer.NewPlan()
	plan.Add(i.repo.DeleteMut(product.ID()))

	muts, err := i.outboxRepo.Mutations(product.DomainEvents())
	if err != nil {
		return err
	}
	plan.AddMultiple(muts)

	// 4. Apply plan
	if err := i.committer.Apply(ctx, plan); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}
