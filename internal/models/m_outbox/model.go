package m_outbox

import (
	"time"

	"cloud.google.com/go/spanner"
)

// Model provides a facade for type-safe operations on the outbox_events table.
type Model struct{}

// NewModel creates a new Model instance.
func NewModel() *Model {
	return &Model{}
}

// InsertMut creates a Spanner mutation for inserting an outbox event.
// created_at is always the commit timestamp.
func (m *Model) InsertMut(data *Data) *spanner.Mutation {
	return spanner.Insert(
		TableName,
		AllColumns,
		[]interface{}{
			data.EventID,
			data.EventType,
			data.AggregateID,
			data.Payload,
			data.Status,
			spanner.CommitTimestamp,
			data.ProcessedAt,
			data.RetryCount,
			data.ErrorMessage,
		},
	)
}

// MarkProcessedMut moves an event to a terminal status.
// errMsg is stored only for StatusFailed.
func (m *Model) MarkProcessedMut(eventID, status string, processedAt time.Time, errMsg string) *spanner.Mutation {
	message := spanner.NullString{}
	if status == StatusFailed && errMsg != "" {
		message = spanner.NullString{StringVal: errMsg, Valid: true}
	}
	return spanner.Update(
		TableName,
		[]string{EventID, Status, ProcessedAt, ErrorMessage},
		[]interface{}{eventID, status, processedAt, message},
	)
}
