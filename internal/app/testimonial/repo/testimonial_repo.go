package repo

import (
	"context"
	"fmt"

	"cloud.google.com/go/spanner"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"

	"github.com/light-bringer/fulfillment-service/internal/app/testimonial/contracts"
	"github.com/light-bringer/fulfillment-service/internal/app/testimonial/domain"
	"github.com/light-bringer/fulfillment-service/internal/models/m_testimonial"
	"github.com/light-bringer/fulfillment-service/internal/pkg/query"
)

// TestimonialRepo implements Repository for Spanner.
type TestimonialRepo struct {
	client *spanner.Client
	model  *m_testimonial.Model
}

// NewTestimonialRepo creates a new TestimonialRepo.
func NewTestimonialRepo(client *spanner.Client) contracts.Repository {
	return &TestimonialRepo{
		client: client,
		model:  m_testimonial.NewModel(),
	}
}

// InsertMut creates a mutation for inserting a testimonial.
func (r *TestimonialRepo) InsertMut(t *domain.Testimonial) *spanner.Mutation {
	return r.model.InsertMut(toData(t))
}

// UpdateMut creates a mutation rewriting every mutable column.
func (r *TestimonialRepo) UpdateMut(t *domain.Testimonial) *spanner.Mutation {
	return r.model.UpdateMut(toData(t))
}

// DeleteMut creates a mutation for deleting a testimonial.
func (r *TestimonialRepo) DeleteMut(id int64) *spanner.Mutation {
	return r.model.DeleteMut(id)
}

// GetByID retrieves one testimonial.
func (r *TestimonialRepo) GetByID(ctx context.Context, id int64) (*domain.Testimonial, error) {
	row, err := r.client.Single().ReadRow(ctx, m_testimonial.TableName, spanner.Key{id}, m_testimonial.AllColumns)
	if err != nil {
		if spanner.ErrCode(err) == codes.NotFound {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("failed to read testimonial: %w", err)
	}

	var data m_testimonial.Data
	if err := row.ToStruct(&data); err != nil {
		return nil, fmt.Errorf("failed to parse testimonial: %w", err)
	}
	return fromData(&data), nil
}

// List returns testimonials newest first.
func (r *TestimonialRepo) List(ctx context.Context) ([]*domain.Testimonial, error) {
	stmt := query.From(m_testimonial.TableName).
		Select(m_testimonial.AllColumns...).
		OrderBy(m_testimonial.CreatedAt, query.Desc).
		Build()

	iter := r.client.Single().Query(ctx, stmt)
	defer iter.Stop()

	out := make([]*domain.Testimonial, 0)
	for {
		row, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to iterate testimonials: %w", err)
		}

		var data m_testimonial.Data
		if err := row.ToStruct(&data); err != nil {
			return nil, fmt.Errorf("failed to parse testimonial: %w", err)
		}
		out = append(out, fromData(&data))
	}
	return out, nil
}

func toData(t *domain.Testimonial) *m_testimonial.Data {
	return &m_testimonial.Data{
		ID:          t.ID,
		Name:        t.Name,
		Role:        t.Role,
		Testimonial: t.Testimonial,
		Rating:      t.Rating,
		VideoURL:    spanner.NullString{StringVal: t.VideoURL, Valid: t.VideoURL != ""},
	}
}

func fromData(data *m_testimonial.Data) *domain.Testimonial {
	return &domain.Testimonial{
		ID:          data.ID,
		Name:        data.Name,
		Role:        data.Role,
		Testimonial: data.Testimonial,
		Rating:      data.Rating,
		VideoURL:    data.VideoURL.StringVal,
	}
}
