package update_order_status

import (
	"context"
	"testing"
	"time"

	"cloud.google.com/go/spanner"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/light-bringer/fulfillment-service/internal/app/order/domain"
	"github.com/light-bringer/fulfillment-service/internal/app/order/repo"
	"github.com/light-bringer/fulfillment-service/internal/pkg/clock"
	"github.com/light-bringer/fulfillment-service/internal/pkg/committer/committertest"
	"github.com/light-bringer/fulfillment-service/internal/pkg/outbox"
)

// fakeRepo serves stored orders and delegates mutation building to the Spanner repo.
type fakeRepo struct {
	*repo.OrderRepo
	orders map[int64]*domain.Order
}

func (f *fakeRepo) GetByID(_ context.Context, id int64) (*domain.Order, error) {
	o, ok := f.orders[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return o, nil
}

func setup(rec *committertest.Recorder) *Interactor {
	now := time.Date(2026, 4, 2, 8, 0, 0, 0, time.UTC)
	fake := &fakeRepo{
		OrderRepo: repo.NewOrderRepo((*spanner.Client)(nil)),
		orders: map[int64]*domain.Order{
			1: domain.ReconstructOrder(1, "ORD-1", 5, "Ada", "ada@example.com", domain.StatusPending, decimal.NewFromInt(10), now, now),
		},
	}
	return NewInteractor(fake, outbox.NewRepo(), rec, clock.NewMockClock(now.Add(time.Hour)))
}

func TestExecute(t *testing.T) {
	t.Run("changes status", func(t *testing.T) {
		rec := &committertest.Recorder{}
		order, err := setup(rec).Execute(context.Background(), &Request{OrderID: 1, Status: "processing"})
		require.NoError(t, err)
		assert.Equal(t, domain.StatusProcessing, order.Status())
		require.NotNil(t, rec.Last())
		assert.Equal(t, 2, rec.Last().Count())
	})

	t.Run("same status is a no-op", func(t *testing.T) {
		rec := &committertest.Recorder{}
		_, err := setup(rec).Execute(context.Background(), &Request{OrderID: 1, Status: "PENDING"})
		require.NoError(t, err)
		assert.Empty(t, rec.Plans())
	})

	t.Run("invalid status rejected before lookup", func(t *testing.T) {
		rec := &committertest.Recorder{}
		_, err := setup(rec).Execute(context.Background(), &Request{OrderID: 99, Status: "LOST"})
		assert.ErrorIs(t, err, domain.ErrInvalidStatus)
	})

	t.Run("missing order", func(t *testing.T) {
		_, err := setup(&committertest.Recorder{}).Execute(context.Background(), &Request{OrderID: 99, Status: "SHIPPED"})
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}
