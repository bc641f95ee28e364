package repo

import (
	"context"
	"fmt"

	"cloud.google.com/go/spanner"
	"google.golang.org/api/iterator"

	"github.com/light-bringer/fulfillment-service/internal/app/events/queries/list_events"
	"github.com/light-bringer/fulfillment-service/internal/models/m_outbox"
	"github.com/light-bringer/fulfillment-service/internal/pkg/query"
)

// EventsReadModel implements the EventsReadModel interface for Spanner.
type EventsReadModel struct {
	client *spanner.Client
}

// NewEventsReadModel creates a new EventsReadModel.
func NewEventsReadModel(client *spanner.Client) *EventsReadModel {
	return &EventsReadModel{
		client: client,
	}
}

// EventStatements builds the page query and its count for a request.
func EventStatements(req *list_events.Request) (list, count spanner.Statement) {
	q := query.From(m_outbox.TableName).Select(m_outbox.AllColumns...)

	if req.EventType != nil {
		q = q.Where(query.Eq(m_outbox.EventType, *req.EventType))
	}
	if req.AggregateID != nil {
		q = q.Where(query.Eq(m_outbox.AggregateID, *req.AggregateID))
	}
	if req.Status != nil {
		q = q.Where(query.Eq(m_outbox.Status, *req.Status))
	}

	count = q.Count().Build()
	list = q.OrderBy(m_outbox.CreatedAt, query.Desc).Limit(req.Limit).Build()
	return list, count
}

// ListEvents retrieves events from the outbox_events table with filtering.
func (r *EventsReadModel) ListEvents(ctx context.Context, req *list_events.Request) ([]*m_outbox.Data, int64, error) {
	list, count := EventStatements(req)

	txn := r.client.ReadOnlyTransaction()
	defer txn.Close()

	iter := txn.Query(ctx, list)
	defer iter.Stop()

	events := make([]*m_outbox.Data, 0, req.Limit)
	for {
		row, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, 0, fmt.Errorf("failed to iterate events: %w", err)
		}

		var event m_outbox.Data
		if err := row.ToStruct(&event); err != nil {
			return nil, 0, fmt.Errorf("failed to scan event: %w", err)
		}
		events = append(events, &event)
	}

	countIter := txn.Query(ctx, count)
	defer countIter.Stop()

	row, err := countIter.Next()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count events: %w", err)
	}
	var total int64
	if err := row.Column(0, &total); err != nil {
		return nil, 0, fmt.Errorf("failed to parse event count: %w", err)
	}

	return events, total, nil
}
