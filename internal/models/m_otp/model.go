package m_otp

import (
	"cloud.google.com/go/spanner"
)

// Model provides a facade for type-safe operations on the otps table.
type Model struct{}

// NewModel creates a new Model instance.
func NewModel() *Model {
	return &Model{}
}

// InsertMut creates a Spanner mutation for inserting a one-time password.
func (m *Model) InsertMut(data *Data) *spanner.Mutation {
	return spanner.Insert(
		TableName,
		[]string{ID, Email, Code, ExpiresAt, CreatedAt},
		[]interface{}{data.ID, data.Email, data.Code, data.ExpiresAt, spanner.CommitTimestamp},
	)
}
