package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"
	"time"

	"cloud.google.com/go/spanner"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/light-bringer/fulfillment-service/internal/app/events/queries/list_events"
	"github.com/light-bringer/fulfillment-service/internal/models/m_outbox"
)

type fakeEvents struct {
	events []*m_outbox.Data
	last   *list_events.Request
	err    error
}

func (f *fakeEvents) ListEvents(_ context.Context, req *list_events.Request) ([]*m_outbox.Data, int64, error) {
	f.last = req
	if f.err != nil {
		return nil, 0, f.err
	}
	return f.events, int64(len(f.events)), nil
}

func TestEvents_List(t *testing.T) {
	created := time.Date(2026, 5, 1, 8, 30, 0, 0, time.UTC)
	fake := &fakeEvents{events: []*m_outbox.Data{{
		EventID:     "evt-1",
		EventType:   "order.created",
		AggregateID: "42",
		Payload:     spanner.NullJSON{Value: map[string]interface{}{"status": "PENDING"}, Valid: true},
		Status:      "completed",
		CreatedAt:   created,
		ProcessedAt: spanner.NullTime{Time: created.Add(time.Second), Valid: true},
	}}}
	router := NewRouter(Handlers{Events: NewEventsHandler(list_events.NewQuery(fake), zap.NewNop())}, zap.NewNop(), nil)

	resp := send(t, router, http.MethodGet, "/api/v1/events?event_type=order.created&limit=5000", "")
	require.Equal(t, http.StatusOK, resp.Code)

	require.NotNil(t, fake.last.EventType)
	assert.Equal(t, "order.created", *fake.last.EventType)
	assert.Nil(t, fake.last.AggregateID)
	assert.Equal(t, list_events.MaxLimit, fake.last.Limit)

	var body ListEventsResponse
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
	assert.Equal(t, int64(1), body.TotalCount)
	require.Len(t, body.Events, 1)
	assert.JSONEq(t, `{"status":"PENDING"}`, string(body.Events[0].Payload))
	assert.Equal(t, "2026-05-01T08:30:00Z", body.Events[0].CreatedAt)
	require.NotNil(t, body.Events[0].ProcessedAt)
}

func TestEvents_StorageFailure(t *testing.T) {
	fake := &fakeEvents{err: errors.New("spanner unavailable")}
	router := NewRouter(Handlers{Events: NewEventsHandler(list_events.NewQuery(fake), zap.NewNop())}, zap.NewNop(), nil)

	resp := send(t, router, http.MethodGet, "/api/v1/events", "")
	assert.Equal(t, http.StatusInternalServerError, resp.Code)
	assert.JSONEq(t, `{"error":"internal server error"}`, resp.Body.String())
	assert.Equal(t, list_events.DefaultLimit, fake.last.Limit)
}
