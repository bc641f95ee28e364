package update_user

import (
	"context"
	"fmt"
	"slices"

	"cloud.google.com/go/spanner"
	"google.golang.org/grpc/codes"

	"github.com/light-bringer/fulfillment-service/internal/app/user/contracts"
	"github.com/light-bringer/fulfillment-service/internal/app/user/domain"
	"github.com/light-bringer/fulfillment-service/internal/pkg/clock"
	"github.com/light-bringer/fulfillment-service/internal/pkg/committer"
)

// Request carries the user ID and the fields to replace.
type Request struct {
	ID int64
	domain.Patch
}

// Interactor handles the update user use case.
type Interactor struct {
	repo       contracts.Repository
	committer  committer.Applier
	clock      clock.Clock
	bcryptCost int
}

// NewInteractor creates a new update user interactor.
func NewInteractor(repo contracts.Repository, committer committer.Applier, clock clock.Clock, bcryptCost int) *Interactor {
	return &Interactor{repo: repo, committer: committer, clock: clock, bcryptCost: bcryptCost}
}

// Execute applies the patch. Changing the email to one held by another user
// returns domain.ErrEmailTaken.
func (i *Interactor) Execute(ctx context.Context, req *Request) (*domain.User, error) {
	// 1. Load
	u, err := i.repo.GetByID(ctx, req.ID)
	if err != nil {
		return nil, err
	}

	// 2. Apply and validate
	changed, err := u.Apply(req.Patch, i.bcryptCost, i.clock.Now())
	if err != nil {
		return nil, err
	}
	if len(changed) == 0 {
		return u, nil
	}

	// 3. Email uniqueness
	if slices.Contains(changed, "email") {
		if owner, found, err := i.repo.FindIDByEmail(ctx, u.Email); err != nil {
			return nil, err
		} else if found && owner != u.ID {
			return nil, domain.ErrEmailTaken
		}
	}

	// 4. Commit
	plan := committer.NewPlan()
	plan.Add(i.repo.UpdateMut(u, changed))
	if err := i.committer.Apply(ctx, plan); err != nil {
		if spanner.ErrCode(err) == codes.AlreadyExists {
			return nil, domain.ErrEmailTaken
		}
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return u, nil
}
