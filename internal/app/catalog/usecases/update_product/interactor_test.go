package update_product

import (
	"context"
	"testing"
	"time"

	"cloud.google.com/go/spanner"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/light-bringer/fulfillment-service/internal/app/catalog/domain"
	"github.com/light-bringer/fulfillment-service/internal/models/m_inventory"
	"github.com/light-bringer/fulfillment-service/internal/pkg/clock"
	"github.com/light-bringer/fulfillment-service/internal/pkg/committer"
	"github.com/light-bringer/fulfillment-service/internal/pkg/committer/committertest"
	"github.com/light-bringer/fulfillment-service/internal/pkg/outbox"
)

// fakeRepo serves one stored product and builds real mutations.
type fakeRepo struct {
	stored *domain.Product
	model  *m_inventory.Model
}

func (f *fakeRepo) InsertMut(*domain.Product) *spanner.Mutation { return nil }

func (f *fakeRepo) UpdateMut(p *domain.Product) *spanner.Mutation {
	if !p.Changes().HasChanges() {
		return nil
	}
	return f.model.UpdateMut(p.ID(), map[string]interface{}{m_inventory.Version: p.Version() + 1})
}

func (f *fakeRepo) DeleteMut(id int64) *spanner.Mutation { return f.model.DeleteMut(id) }

func (f *fakeRepo) GetByID(_ context.Context, id int64) (*domain.Product, error) {
	if f.stored == nil || f.stored.ID() != id {
		return nil, domain.ErrNotFound
	}
	return f.stored, nil
}

func input() domain.ProductInput {
	return domain.ProductInput{
		Name:     "Crate",
		Price:    decimal.RequireFromString("12.00"),
		Stock:    4,
		Category: "Storage",
		Image:    "/crate.png",
	}
}

func setup(rec *committertest.Recorder) *Interactor {
	created := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
	repo := &fakeRepo{
		stored: domain.ReconstructProduct(5, input(), 3, created, created),
		model:  m_inventory.NewModel(),
	}
	return NewInteractor(repo, outbox.NewRepo(), rec, clock.NewMockClock(created.Add(time.Hour)))
}

func TestExecute_UpdatesWithVersionCheck(t *testing.T) {
	rec := &committertest.Recorder{}
	interactor := setup(rec)

	in := input()
	in.Stock = 10
	product, err := interactor.Execute(context.Background(), &Request{ProductID: 5, ProductInput: in})
	require.NoError(t, err)
	assert.Equal(t, int64(10), product.Stock())

	checks := rec.Checks()
	require.Len(t, checks, 1)
	assert.Equal(t, committertest.VersionCheck{Table: m_inventory.TableName, Key: spanner.Key{int64(5)}, ExpectedVersion: 3}, checks[0])
	assert.Equal(t, 2, rec.Last().Count())
}

func TestExecute_NoChangesSkipsCommit(t *testing.T) {
	rec := &committertest.Recorder{}
	interactor := setup(rec)

	_, err := interactor.Execute(context.Background(), &Request{ProductID: 5, ProductInput: input()})
	require.NoError(t, err)
	assert.Empty(t, rec.Plans())
}

func TestExecute_Errors(t *testing.T) {
	t.Run("not found", func(t *testing.T) {
		_, err := setup(&committertest.Recorder{}).Execute(context.Background(), &Request{ProductID: 6, ProductInput: input()})
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("invalid input", func(t *testing.T) {
		in := input()
		in.Stock = -1
		_, err := setup(&committertest.Recorder{}).Execute(context.Background(), &Request{ProductID: 5, ProductInput: in})
		assert.ErrorIs(t, err, domain.ErrInvalidStock)
	})

	t.Run("version conflict", func(t *testing.T) {
		rec := &committertest.Recorder{Err: committer.ErrOptimisticLockConflict}
		in := input()
		in.Name = "Big Crate"
		_, err := setup(rec).Execute(context.Background(), &Request{ProductID: 5, ProductInput: in})
		assert.ErrorIs(t, err, domain.ErrConflict)
	})

	t.Run("deleted between read and commit", func(t *testing.T) {
		rec := &committertest.Recorder{Err: committer.ErrRowNotFound}
		in := input()
		in.Name = "Big Crate"
		_, err := setup(rec).Execute(context.Background(), &Request{ProductID: 5, ProductInput: in})
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}
