package create_order

import (
	"context"
	"fmt"

	"github.com/light-bringer/fulfillment-service/internal/app/order/contracts"
	"github.com/light-bringer/fulfillment-service/internal/app/order/domain"
	"github.com/light-bringer/fulfillment-service/internal/pkg/clock"
	"github.com/light-bringer/fulfillment-service/internal/pkg/committer"
	"github.com/light-bringer/fulfillment-service/internal/pkg/idgen"
	"github.com/light-bringer/fulfillment-service/internal/pkg/outbox"
)

// Request contains the data needed to place an order.
type Request = domain.OrderInput

// Interactor handles the create order use case.
type Interactor struct {
	repo       contracts.OrderRepository
	outboxRepo outbox.Repository
	committer  committer.Applier
	ids        idgen.Generator
	clock      clock.Clock
}

// NewInteractor creates a new create order interactor.
func NewInteractor(
	repo contracts.OrderRepository,
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

// Execute places an order and records order.created in the outbox.
func (i *Interactor) Execute(ctx context.Context, req *Request) (*domain.Order, error) {
	// 1. Create domain aggregate (validates input)
	order, err := domain.NewOrder(i.ids.NextID(), *req, i.clock.Now())
	if err != nil {
		return nil, err
	}
	defer order.ClearEvents()

	// 2. Build plan: order insert + outbox events
	plan := committer.NewPlan()
	plan.Add(i.repo.InsertMut(order))

	muts, err := i.outboxRepo.Mutations(order.DomainEvents())
	if err != nil {
		return nil, err
	}
	plan.AddMultiple(muts)

	// 3. Apply plan
	if err := i.committer.Apply(ctx, plan); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return order, nil
}
