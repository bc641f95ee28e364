package create_user

import (
	"context"
	"fmt"

	"cloud.google.com/go/spanner"
	"google.golang.org/grpc/codes"

	"github.com/light-bringer/fulfillment-service/internal/app/user/contracts"
	"github.com/light-bringer/fulfillment-service/internal/app/user/domain"
	"github.com/light-bringer/fulfillment-service/internal/pkg/clock"
	"github.com/light-bringer/fulfillment-service/internal/pkg/committer"
	"github.com/light-bringer/fulfillment-service/internal/pkg/idgen"
)

// Request contains the data needed to create a user.
type Request struct {
	Name     string
	Email    string
	Role     string
	Password string
}

// Interactor handles the create user use case.
type Interactor struct {
	repo       contracts.Repository
	committer  committer.Applier
	ids        idgen.Generator
	clock      clock.Clock
	bcryptCost int
}

// NewInteractor creates a new create user interactor.
func NewInteractor(
	repo contracts.Repository,
	committer committer.Applier,
	ids idgen.Generator,
	clock clock.Clock,
	bcryptCost int,
) *Interactor {
	return &Interactor{
		repo:       repo,
		committer:  committer,
		ids:        ids,
		clock:      clock,
		bcryptCost: bcryptCost,
	}
}

// Execute validates, hashes the password and stores the user.
func (i *Interactor) Execute(ctx context.Context, req *Request) (*domain.User, error) {
	// 1. Build aggregate (validates and hashes)
	u, err := domain.NewUser(i.ids.NextID(), req.Name, req.Email, req.Role, req.Password, i.bcryptCost, i.clock.Now())
	if err != nil {
		return nil, err
	}

	// 2. Reject duplicate email early; the unique index still guards races
	if _, found, err := i.repo.FindIDByEmail(ctx, u.Email); err != nil {
		return nil, err
	} else if found {
		return nil, domain.ErrEmailTaken
	}

	// 3. Commit
	plan := committer.NewPlan()
	plan.Add(i.repo.InsertMut(u))
	if err := i.committer.Apply(ctx, plan); err != nil {
		if spanner.ErrCode(err) == codes.AlreadyExists {
			return nil, domain.ErrEmailTaken
		}
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return u, nil
}
