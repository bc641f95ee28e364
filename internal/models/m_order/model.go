package m_order

import (
	"cloud.google.com/go/spanner"
)

// Model provides a facade for type-safe operations on the orders table.
type Model struct{}

// NewModel creates a new Model instance.
func NewModel() *Model {
	return &Model{}
}

// InsertMut creates a Spanner mutation for inserting an order.
func (m *Model) InsertMut(data *Data) *spanner.Mutation {
	return spanner.Insert(
		TableName,
		AllColumns,
		[]interface{}{
			data.ID,
			data.OrderNumber,
			data.UserID,
			data.CustomerName,
			data.Email,
			data.Status,
			&data.Total,
			spanner.CommitTimestamp,
			spanner.CommitTimestamp,
		},
	)
}

// UpdateStatusMut creates a Spanner mutation that changes only the status.
func (m *Model) UpdateStatusMut(id int64, status string) *spanner.Mutation {
	return spanner.Update(
		TableName,
		[]string{ID, Status, UpdatedAt},
		[]interface{}{id, status, spanner.CommitTimestamp},
	)
}

// DeleteMut creates a Spanner mutation for deleting an order.
func (m *Model) DeleteMut(id int64) *spanner.Mutation {
	return spanner.Delete(TableName, spanner.Key{id})
}
