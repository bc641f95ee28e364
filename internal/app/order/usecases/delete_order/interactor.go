package delete_order

import (
	"context"
	"fmt"

	"github.com/light-bringer/fulfillment-service/internal/app/order/contracts"
	"github.com/light-bringer/fulfillment-service/internal/pkg/clock"
	"github.com/light-bringer/fulfillment-service/internal/pkg/committer"
	"github.com/light-bringer/fulfillment-service/internal/pkg/outbox"
)

// Request contains the order to delete.
type Request struct {
	OrderID int64
}

// Interactor handles the delete order use case.
type Interactor struct {
	repo       contracts.OrderRepository
	outboxRepo outbox.Repository
	committer  committer.Applier
	clock      clock.Clock
}

// NewInteractor creates a new delete order interactor.
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

// Execute removes an order. Missing orders return domain.ErrNotFound.
func (i *Interactor) Execute(ctx context.Context, req *Request) error {
	order, err := i.repo.GetByID(ctx, req.OrderID)
	if err != nil {
		return err
	}
	defer order.ClearEvents()

	order.MarkDeleted(i.clock.Now())

	plan := committer.NewPlan()
	plan.Add(i.repo.DeleteMut(order.ID()))

	muts, err := i.outboxRepo.Mutations(order.DomainEvents())
	if err != nil {
		return err
	}
	plan.AddMultiple(muts)

	if err := i.committer.Apply(ctx, plan); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}
