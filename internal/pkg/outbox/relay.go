package outbox

import (
	"context"
	"fmt"

	"cloud.google.com/go/spanner"
	"go.uber.org/zap"
	"google.golang.org/api/iterator"

	"github.com/light-bringer/fulfillment-service/internal/models/m_outbox"
	"github.com/light-bringer/fulfillment-service/internal/pkg/clock"
	"github.com/light-bringer/fulfillment-service/internal/pkg/query"
)

// Publisher delivers one event to downstream consumers.
type Publisher interface {
	Publish(ctx context.Context, event *m_outbox.Data) error
}

// Store reads pending events and applies status changes.
type Store interface {
	Pending(ctx context.Context, limit int64) ([]*m_outbox.Data, error)
	Apply(ctx context.Context, muts []*spanner.Mutation) error
}

// Relay moves pending events to completed (or failed) after publishing them.
type Relay struct {
	store     Store
	publisher Publisher
	model     *m_outbox.Model
	clock     clock.Clock
	logger    *zap.Logger
	batchSize int64
}

// NewRelay creates a relay that handles up to batchSize events per run.
func NewRelay(store Store, publisher Publisher, clk clock.Clock, logger *zap.Logger, batchSize int64) *Relay {
	if batchSize <= 0 {
		batchSize = 100
	}
	return &Relay{
		store:     store,
		publisher: publisher,
		model:     m_outbox.NewModel(),
		clock:     clk,
		logger:    logger,
		batchSize: batchSize,
	}
}

// Run publishes one batch and returns how many events were published successfully.
func (r *Relay) Run(ctx context.Context) (int, error) {
	events, err := r.store.Pending(ctx, r.batchSize)
	if err != nil {
		return 0, err
	}
	if len(events) == 0 {
		return 0, nil
	}

	now := r.clock.Now()
	muts := make([]*spanner.Mutation, 0, len(events))
	published := 0
	for _, event := range events {
		if err := r.publisher.Publish(ctx, event); err != nil {
			r.logger.Warn("failed to publish outbox event",
				zap.String("event_id", event.EventID),
				zap.String("event_type", event.EventType),
				zap.Error(err),
			)
			muts = append(muts, r.model.MarkProcessedMut(event.EventID, m_outbox.StatusFailed, now, err.Error()))
			continue
		}
		published++
		muts = append(muts, r.model.MarkProcessedMut(event.EventID, m_outbox.StatusCompleted, now, ""))
	}

	if err := r.store.Apply(ctx, muts); err != nil {
		return 0, fmt.Errorf("failed to mark outbox events: %w", err)
	}
	return published, nil
}

// SpannerStore implements Store on a Spanner client.
type SpannerStore struct {
	client *spanner.Client
}

// NewSpannerStore creates a SpannerStore.
func NewSpannerStore(client *spanner.Client) *SpannerStore {
	return &SpannerStore{client: client}
}

// Pending returns the oldest pending events.
func (s *SpannerStore) Pending(ctx context.Context, limit int64) ([]*m_outbox.Data, error) {
	stmt := query.From(m_outbox.TableName).
		Select(m_outbox.AllColumns...).
		Where(query.Eq(m_outbox.Status, m_outbox.StatusPending)).
		OrderBy(m_outbox.CreatedAt, query.Asc).
		Limit(limit).
		Build()

	iter := s.client.Single().Query(ctx, stmt)
	defer iter.Stop()

	var events []*m_outbox.Data
	for {
		row, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to iterate pending events: %w", err)
		}
		var data m_outbox.Data
		if err := row.ToStruct(&data); err != nil {
			return nil, fmt.Errorf("failed to parse event: %w", err)
		}
		events = append(events, &data)
	}
	return events, nil
}

// Apply writes the mutations atomically.
func (s *SpannerStore) Apply(ctx context.Context, muts []*spanner.Mutation) error {
	_, err := s.client.Apply(ctx, muts)
	return err
}

// LogPublisher writes events to the service log. It stands in for a broker.
type LogPublisher struct {
	logger *zap.Logger
}

// NewLogPublisher creates a LogPublisher.
func NewLogPublisher(logger *zap.Logger) *LogPublisher {
	return &LogPublisher{logger: logger}
}

// Publish logs the event.
func (p *LogPublisher) Publish(_ context.Context, event *m_outbox.Data) error {
	p.logger.Info("outbox event",
		zap.String("event_id", event.EventID),
		zap.String("event_type", event.EventType),
		zap.String("aggregate_id", event.AggregateID),
	)
	return nil
}
