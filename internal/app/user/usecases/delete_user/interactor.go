package delete_user

import (
	"context"
	"fmt"

	"github.com/light-bringer/fulfillment-service/internal/app/user/contracts"
	"github.com/light-bringer/fulfillment-service/internal/pkg/committer"
)

// Request contains the user to delete.
type Request struct {
	ID int64
}

// Interactor handles the delete user use case.
type Interactor struct {
	repo      contracts.Repository
	committer committer.Applier
}

// NewInteractor creates a new delete user interactor.
func NewInteractor(repo contracts.Repository, committer committer.Applier) *Interactor {
	return &Interactor{repo: repo, committer: committer}
}

// Execute removes a user. Missing users return domain.ErrNotFound.
func (i *Interactor) Execute(ctx context.Context, req *Request) error {
	if _, err := i.repo.GetByID(ctx, req.ID); err != nil {
		return err
	}

	plan := committer.NewPlan()
	plan.Add(i.repo.DeleteMut(req.ID))
	if err := i.committer.Apply(ctx, plan); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}
