package create_product

import (
	"context"
	"errors"
	"testing"
	"time"

	"cloud.google.com/go/spanner"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/light-bringer/fulfillment-service/internal/app/catalog/domain"
	"github.com/light-bringer/fulfillment-service/internal/app/catalog/repo"
	"github.com/light-bringer/fulfillment-service/internal/pkg/clock"
	"github.com/light-bringer/fulfillment-service/internal/pkg/committer/committertest"
	"github.com/light-bringer/fulfillment-service/internal/pkg/idgen"
	"github.com/light-bringer/fulfillment-service/internal/pkg/outbox"
)

func newInteractor(rec *committertest.Recorder) *Interactor {
	return NewInteractor(
		repo.NewProductRepo((*spanner.Client)(nil)),
		outbox.NewRepo(),
		rec,
		idgen.NewSequence(1000),
		clock.NewMockClock(time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)),
	)
}

func TestExecute_CreatesProductAndEvent(t *testing.T) {
	rec := &committertest.Recorder{}
	interactor := newInteractor(rec)

	product, err := interactor.Execute(context.Background(), &Request{
		Name:     "Pallet Jack",
		Price:    decimal.RequireFromString("349.99"),
		Stock:    2,
		Category: "Warehouse",
	})
	require.NoError(t, err)

	assert.Equal(t, int64(1000), product.ID())
	assert.Equal(t, "Pallet Jack", product.Name())

	plan := rec.Last()
	require.NotNil(t, plan)
	assert.Equal(t, 2, plan.Count(), "inventory insert plus product.created outbox event")
}

func TestExecute_ValidationErrors(t *testing.T) {
	rec := &committertest.Recorder{}
	interactor := newInteractor(rec)

	_, err := interactor.Execute(context.Background(), &Request{Name: "", Price: decimal.NewFromInt(1)})
	assert.ErrorIs(t, err, domain.ErrEmptyName)

	_, err = interactor.Execute(context.Background(), &Request{Name: "Crate", Price: decimal.NewFromInt(-1)})
	assert.ErrorIs(t, err, domain.ErrInvalidPrice)

	assert.Empty(t, rec.Plans())
}

func TestExecute_CommitFailure(t *testing.T) {
	boom := errors.New("aborted")
	rec := &committertest.Recorder{Err: boom}
	interactor := newInteractor(rec)

	_, err := interactor.Execute(context.Background(), &Request{Name: "Crate", Price: decimal.NewFromInt(5)})
	assert.ErrorIs(t, err, boom)
}
