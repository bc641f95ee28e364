//go:build integration

package integration

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/light-bringer/fulfillment-service/internal/app/events/queries/list_events"
	eventsrepo "github.com/light-bringer/fulfillment-service/internal/app/events/repo"
	"github.com/light-bringer/fulfillment-service/internal/models/m_otp"
	"github.com/light-bringer/fulfillment-service/internal/models/m_outbox"
	"github.com/light-bringer/fulfillment-service/internal/pkg/committer"
	"github.com/light-bringer/fulfillment-service/internal/pkg/outbox"
	"github.com/light-bringer/fulfillment-service/internal/scheduler"
	"github.com/light-bringer/fulfillment-service/tests/testutil"
)

func TestOTPPurge_DeletesOnlyExpired(t *testing.T) {
	client, cleanup := testutil.SetupSpannerTest(t)
	defer cleanup()

	now := time.Now().UTC()
	testutil.CreateTestOTP(t, client, "old@example.com", now.Add(-time.Minute))
	testutil.CreateTestOTP(t, client, "older@example.com", now.Add(-time.Hour))
	testutil.CreateTestOTP(t, client, "fresh@example.com", now.Add(time.Hour))

	job := scheduler.NewOTPPurge(committer.NewCommitter(client), testutil.NewFixedClock(now), zap.NewNop())
	require.NoError(t, job.Run(context.Background()))

	testutil.AssertRowCount(t, client, m_otp.TableName, 1)
}

func TestOutboxRetention_Purge(t *testing.T) {
	client, cleanup := testutil.SetupSpannerTest(t)
	defer cleanup()

	now := time.Now().UTC()
	testutil.CreateTestOutboxEvent(t, client, "order.created", "1", m_outbox.StatusCompleted, now.Add(-48*time.Hour))
	testutil.CreateTestOutboxEvent(t, client, "order.created", "2", m_outbox.StatusCompleted, now.Add(-time.Hour))
	testutil.CreateTestOutboxEvent(t, client, "order.created", "3", m_outbox.StatusFailed, now.Add(-48*time.Hour))
	testutil.CreateTestOutboxEvent(t, client, "order.created", "4", m_outbox.StatusPending, time.Time{})

	retention := outbox.NewRetention(committer.NewCommitter(client), testutil.NewFixedClock(now), zap.NewNop(), 24*time.Hour, 72*time.Hour)
	deleted, err := retention.Purge(context.Background())
	require.NoError(t, err)

	assert.Equal(t, int64(1), deleted)
	testutil.AssertRowCount(t, client, m_outbox.TableName, 3)
}

type flakyPublisher struct {
	fail map[string]bool
}

func (p *flakyPublisher) Publish(_ context.Context, event *m_outbox.Data) error {
	if p.fail[event.AggregateID] {
		return errors.New("broker unavailable")
	}
	return nil
}

func TestOutboxRelay_MarksEvents(t *testing.T) {
	client, cleanup := testutil.SetupSpannerTest(t)
	defer cleanup()

	for _, id := range []string{"1", "2", "3"} {
		testutil.CreateTestOutboxEvent(t, client, "product.updated", id, m_outbox.StatusPending, time.Time{})
	}

	relay := outbox.NewRelay(outbox.NewSpannerStore(client), &flakyPublisher{fail: map[string]bool{"2": true}},
		testutil.NewMockClock(), zap.NewNop(), 10)
	published, err := relay.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 2, published)
	assert.Equal(t, int64(2), testutil.CountOutboxEvents(t, client, m_outbox.StatusCompleted))
	assert.Equal(t, int64(1), testutil.CountOutboxEvents(t, client, m_outbox.StatusFailed))
	assert.Zero(t, testutil.CountOutboxEvents(t, client, m_outbox.StatusPending))

	// The feed reports the failure
	status := m_outbox.StatusFailed
	events, total, err := eventsrepo.NewEventsReadModel(client).ListEvents(context.Background(), &list_events.Request{
		Status: &status,
		Limit:  list_events.DefaultLimit,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, events, 1)
	assert.Equal(t, "2", events[0].AggregateID)
	assert.Equal(t, "broker unavailable", events[0].ErrorMessage.StringVal)
}
