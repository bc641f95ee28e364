package testutil

import (
	"context"
	"testing"
	"time"

	"cloud.google.com/go/spanner"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/light-bringer/fulfillment-service/internal/models/m_inventory"
	"github.com/light-bringer/fulfillment-service/internal/models/m_otp"
	"github.com/light-bringer/fulfillment-service/internal/models/m_outbox"
)

// InventoryRow builds a feed row with a title, a text price and an image.
// Use the returned value to set further columns before inserting.
func InventoryRow(id int64, title, price string) *m_inventory.Data {
	return &m_inventory.Data{
		ID:           id,
		Handle:       spanner.NullString{StringVal: uuid.NewString(), Valid: true},
		Title:        spanner.NullString{StringVal: title, Valid: title != ""},
		VariantPrice: spanner.NullString{StringVal: price, Valid: price != ""},
		ImageSrc:     spanner.NullString{StringVal: "/img/" + uuid.NewString() + ".png", Valid: true},
		Quantity:     spanner.NullInt64{Int64: 10, Valid: true},
	}
}

// InsertInventory writes rows directly, bypassing the admin usecases.
func InsertInventory(t *testing.T, client *spanner.Client, rows ...*m_inventory.Data) {
	t.Helper()

	model := m_inventory.NewModel()
	muts := make([]*spanner.Mutation, 0, len(rows))
	for _, r := range rows {
		muts = append(muts, model.InsertMut(r))
	}
	_, err := client.Apply(context.Background(), muts)
	require.NoError(t, err, "failed to insert inventory rows")
}

// CreateTestOTP inserts a one-time password expiring at expiresAt.
func CreateTestOTP(t *testing.T, client *spanner.Client, email string, expiresAt time.Time) string {
	t.Helper()

	id := uuid.NewString()
	mut := m_otp.NewModel().InsertMut(&m_otp.Data{
		ID:        id,
		Email:     email,
		Code:      "123456",
		ExpiresAt: expiresAt,
	})
	_, err := client.Apply(context.Background(), []*spanner.Mutation{mut})
	require.NoError(t, err, "failed to create test otp")

	return id
}

// CreateTestOutboxEvent inserts an event in the given status. Terminal
// statuses get processedAt as their processing time.
func CreateTestOutboxEvent(t *testing.T, client *spanner.Client, eventType, aggregateID, status string, processedAt time.Time) string {
	t.Helper()

	eventID := uuid.NewString()
	data := &m_outbox.Data{
		EventID:     eventID,
		EventType:   eventType,
		AggregateID: aggregateID,
		Payload:     spanner.NullJSON{Value: map[string]string{"test": "data"}, Valid: true},
		Status:      status,
	}
	if status == m_outbox.StatusCompleted || status == m_outbox.StatusFailed {
		data.ProcessedAt = spanner.NullTime{Time: processedAt, Valid: true}
	}

	_, err := client.Apply(context.Background(), []*spanner.Mutation{m_outbox.NewModel().InsertMut(data)})
	require.NoError(t, err, "failed to create test outbox event")

	return eventID
}

// AssertOutboxEvent verifies an outbox event exists with the given type and aggregate.
func AssertOutboxEvent(t *testing.T, client *spanner.Client, eventType, aggregateID string) {
	t.Helper()

	stmt := spanner.Statement{
		SQL: "SELECT COUNT(*) FROM outbox_events WHERE event_type = @eventType AND aggregate_id = @aggregateID",
		Params: map[string]interface{}{
			"eventType":   eventType,
			"aggregateID": aggregateID,
		},
	}
	require.Positive(t, queryCount(t, client, stmt), "outbox event %s not found for %s", eventType, aggregateID)
}

// CountOutboxEvents returns the number of events in status.
func CountOutboxEvents(t *testing.T, client *spanner.Client, status string) int64 {
	t.Helper()

	return queryCount(t, client, spanner.Statement{
		SQL:    "SELECT COUNT(*) FROM outbox_events WHERE status = @status",
		Params: map[string]interface{}{"status": status},
	})
}
