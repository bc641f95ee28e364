package m_testimonial

import (
	"cloud.google.com/go/spanner"
)

// Model provides a facade for type-safe operations on the testimonials table.
type Model struct{}

// NewModel creates a new Model instance.
func NewModel() *Model {
	return &Model{}
}

// InsertMut creates a Spanner mutation for inserting a testimonial.
func (m *Model) InsertMut(data *Data) *spanner.Mutation {
	return spanner.Insert(
		TableName,
		AllColumns,
		[]interface{}{
			data.ID,
			data.Name,
			data.Role,
			data.Testimonial,
			data.Rating,
			data.VideoURL,
			spanner.CommitTimestamp,
		},
	)
}

// UpdateMut rewrites every mutable column of a testimonial.
func (m *Model) UpdateMut(data *Data) *spanner.Mutation {
	return spanner.Update(
		TableName,
		[]string{ID, Name, Role, Testimonial, Rating, VideoURL},
		[]interface{}{data.ID, data.Name, data.Role, data.Testimonial, data.Rating, data.VideoURL},
	)
}

// DeleteMut creates a Spanner mutation for deleting a testimonial.
func (m *Model) DeleteMut(id int64) *spanner.Mutation {
	return spanner.Delete(TableName, spanner.Key{id})
}
