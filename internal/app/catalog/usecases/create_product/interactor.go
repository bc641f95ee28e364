package create_product

import (
	"context"
	"fmt"

	"github.com/light-bringer/fulfillment-service/internal/app/catalog/contracts"
	"github.com/light-bringer/fulfillment-service/internal/app/catalog/domain"
	"github.com/light-bringer/fulfillment-service/internal/pkg/clock"
	"github.com/light-bringer/fulfillment-service/internal/pkg/committer"
	"github.com/light-bringer/fulfillment-service/internal/pkg/idgen"
	"github.com/light-bringer/fulfillment-service/internal/pkg/outbox"
)

// Request contains the data needed to create a product.
type Request = domain.ProductInput

// Interactor handles the create product use case.
type Interactor struct {
	repo       contracts.ProductRepository
	outboxRepo outbox.Repository
	committer  committer.Applier
	ids        idgen.Generator
	clock      clock.Clock
}

// NewInteractor creates a new create product interactor.
func NewInteractor(
	repo contracts.ProductRepository,
	outboxRepo outbox.Repository,
	committer committer.Applier,
	ids idgen.Generator,
	clock clock.Clock,
) *Interactor {
	return &Interactor{
		repo:       repo,
		outboxRepo: outboxRepo,
		committer:  committer,
		ids:        ids,
		clock:      clock,
	}
}

// Execute creates a new product following the Golden Mutation Pattern.
func (i *Interactor) Execute(ctx context.Context, req *Request) (*domain.Product, error) {
	// 1. Create domain aggregate (validates input)
	product, err := domain.NewProduct(i.ids.NextID(), *req, i.clock.Now())
	if err != nil {
		return nil, err
	}
	defer product.ClearEvents()

	// 2. Create commit plan
	plan := committer.NewPlan()

	// 3. Add repository mutation
	plan.Add(i.repo.InsertMut(product))

	// 4. Add outbox events
	muts, err := i.outboxRepo.Mutations(product.DomainEvents())
	if err != nil {
		return nil, err
	}
	plan.AddMultiple(muts)

	// 5. Apply plan (usecase applies, not handler)
	if err := i.committer.Apply(ctx, plan); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return product, nil
}
