package update_testimonial

import (
	"context"
	"fmt"

	"github.com/light-bringer/fulfillment-service/internal/app/testimonial/contracts"
	"github.com/light-bringer/fulfillment-service/internal/app/testimonial/domain"
	"github.com/light-bringer/fulfillment-service/internal/pkg/committer"
)

// Request carries the testimonial ID and the fields to replace.
type Request struct {
	ID int64
	domain.Patch
}

// Interactor handles the update testimonial use case.
type Interactor struct {
	repo      contracts.Repository
	committer committer.Applier
}

// NewInteractor creates a new update testimonial interactor.
func NewInteractor(repo contracts.Repository, committer committer.Applier) *Interactor {
	return &Interactor{repo: repo, committer: committer}
}

// Execute applies the patch and writes the testimonial back.
func (i *Interactor) Execute(ctx context.Context, req *Request) (*domain.Testimonial, error) {
	// 1. Load
	t, err := i.repo.GetByID(ctx, req.ID)
	if err != nil {
		return nil, err
	}

	// 2. Apply and validate
	if err := t.Apply(req.Patch); err != nil {
		return nil, err
	}

	// 3. Commit
	plan := committer.NewPlan()
	plan.Add(i.repo.UpdateMut(t))
	if err := i.committer.Apply(ctx, plan); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return t, nil
}
