package update_order_status

import (
	"context"
	"fmt"

	"github.com/light-bringer/fulfillment-service/internal/app/order/contracts"
	"github.com/light-bringer/fulfillment-service/internal/app/order/domain"
	"github.com/light-bringer/fulfillment-service/internal/pkg/clock"
	"github.com/light-bringer/fulfillment-service/internal/pkg/committer"
	"github.com/light-bringer/fulfillment-service/internal/pkg/outbox"
)

// Request contains the new status of an order.
type Request struct {
	OrderID int64
	Status  string
}

// Interactor handles the update order status use case.
type Interactor struct {
	repo       contracts.OrderRepository
	outboxRepo outbox.Repository
	committer  committer.Applier
	clock      clock.Clock
}

// NewInteractor creates a new update order status interactor.
func NewInteractor(
	repo contracts.OrderRepository,
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

// Execute changes the status. Setting the current status again is a no-op.
func (i *Interactor) Execute(ctx context.Context, req *Request) (*domain.Order, error) {
	// 1. Validate before touching storage
	if _, err := domain.ParseOrderStatus(req.Status); err != nil {
		return nil, err
	}

	// 2. Load aggregate
	order, err := i.repo.GetByID(ctx, req.OrderID)
	if err != nil {
		return nil, err
	}
	defer order.ClearEvents()

	// 3. Call domain method
	changed, err := order.ChangeStatus(req.Status, i.clock.Now())
	if err != nil {
		return nil, err
	}
	if !changed {
		return order, nil
	}

	// 4. Build and apply plan
	plan := committer.NewPlan()
	plan.Add(i.repo.UpdateStatusMut(order))

	muts, err := i.outboxRepo.Mutations(order.DomainEvents())
	if err != nil {
		return nil, err
	}
	plan.AddMultiple(muts)

	if err := i.committer.Apply(ctx, plan); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return order, nil
}
