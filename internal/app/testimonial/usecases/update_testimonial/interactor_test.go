package update_testimonial

import (
	"context"
	"testing"

	"cloud.google.com/go/spanner"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/light-bringer/fulfillment-service/internal/app/testimonial/contracts"
	"github.com/light-bringer/fulfillment-service/internal/app/testimonial/domain"
	"github.com/light-bringer/fulfillment-service/internal/app/testimonial/repo"
	"github.com/light-bringer/fulfillment-service/internal/pkg/committer/committertest"
)

type fakeRepo struct {
	contracts.Repository
	stored map[int64]domain.Testimonial
}

func (f *fakeRepo) GetByID(_ context.Context, id int64) (*domain.Testimonial, error) {
	t, ok := f.stored[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &t, nil
}

func newFake() *fakeRepo {
	return &fakeRepo{
		Repository: repo.NewTestimonialRepo((*spanner.Client)(nil)),
		stored: map[int64]domain.Testimonial{
			1: {ID: 1, Name: "Grace", Role: "Ops lead", Testimonial: "Great.", Rating: 5},
		},
	}
}

func TestExecute(t *testing.T) {
	rec := &committertest.Recorder{}
	interactor := NewInteractor(newFake(), rec)

	role := "Head of logistics"
	updated, err := interactor.Execute(context.Background(), &Request{ID: 1, Patch: domain.Patch{Role: &role}})
	require.NoError(t, err)
	assert.Equal(t, role, updated.Role)
	assert.Len(t, rec.Plans(), 1)

	zero := int64(0)
	_, err = interactor.Execute(context.Background(), &Request{ID: 1, Patch: domain.Patch{Rating: &zero}})
	assert.ErrorIs(t, err, domain.ErrInvalidRating)

	_, err = interactor.Execute(context.Background(), &Request{ID: 2})
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Len(t, rec.Plans(), 1)
}
