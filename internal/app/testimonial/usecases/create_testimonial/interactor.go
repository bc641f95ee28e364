package create_testimonial

import (
	"context"
	"fmt"

	"github.com/light-bringer/fulfillment-service/internal/app/testimonial/contracts"
	"github.com/light-bringer/fulfillment-service/internal/app/testimonial/domain"
	"github.com/light-bringer/fulfillment-service/internal/pkg/committer"
	"github.com/light-bringer/fulfillment-service/internal/pkg/idgen"
)

// Request contains the data needed to create a testimonial.
type Request struct {
	Name        string
	Role        string
	Testimonial string
	Rating      int64 // 0 means the default rating
	VideoURL    string
}

// Interactor handles the create testimonial use case.
type Interactor struct {
	repo      contracts.Repository
	committer committer.Applier
	ids       idgen.Generator
}

// NewInteractor creates a new create testimonial interactor.
func NewInteractor(repo contracts.Repository, committer committer.Applier, ids idgen.Generator) *Interactor {
	return &Interactor{repo: repo, committer: committer, ids: ids}
}

// Execute validates and stores a testimonial.
func (i *Interactor) Execute(ctx context.Context, req *Request) (*domain.Testimonial, error) {
	t, err := domain.New(i.ids.NextID(), req.Name, req.Role, req.Testimonial, req.Rating, req.VideoURL)
	if err != nil {
		return nil, err
	}

	plan := committer.NewPlan()
	plan.Add(i.repo.InsertMut(t))
	if err := i.committer.Apply(ctx, plan); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return t, nil
}
