package repo

import (
	"context"
	"fmt"

	"cloud.google.com/go/spanner"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"

	"github.com/light-bringer/fulfillment-service/internal/app/user/contracts"
	"github.com/light-bringer/fulfillment-service/internal/app/user/domain"
	"github.com/light-bringer/fulfillment-service/internal/models/m_user"
	"github.com/light-bringer/fulfillment-service/internal/pkg/query"
)

// UserRepo implements Repository for Spanner.
type UserRepo struct {
	client *spanner.Client
	model  *m_user.Model
}

// NewUserRepo creates a new UserRepo.
func NewUserRepo(client *spanner.Client) contracts.Repository {
	return &UserRepo{
		client: client,
		model:  m_user.NewModel(),
	}
}

// InsertMut creates a mutation for inserting a user.
func (r *UserRepo) InsertMut(u *domain.User) *spanner.Mutation {
	return r.model.InsertMut(&m_user.Data{
		ID:           u.ID,
		Name:         u.Name,
		Email:        u.Email,
		Role:         u.Role,
		PasswordHash: u.PasswordHash,
	})
}

// UpdateMut writes the named columns of u.
func (r *UserRepo) UpdateMut(u *domain.User, columns []string) *spanner.Mutation {
	updates := make(map[string]interface{}, len(columns))
	for _, col := range columns {
		switch col {
		case m_user.Name:
			updates[col] = u.Name
		case m_user.Email:
			updates[col] = u.Email
		case m_user.Role:
			updates[col] = u.Role
		case m_user.PasswordHash:
			updates[col] = u.PasswordHash
		}
	}
	return r.model.UpdateMut(u.ID, updates)
}

// DeleteMut creates a mutation for deleting a user.
func (r *UserRepo) DeleteMut(id int64) *spanner.Mutation {
	return r.model.DeleteMut(id)
}

// GetByID retrieves one user.
func (r *UserRepo) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	row, err := r.client.Single().ReadRow(ctx, m_user.TableName, spanner.Key{id}, m_user.AllColumns)
	if err != nil {
		if spanner.ErrCode(err) == codes.NotFound {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("failed to read user: %w", err)
	}

	var data m_user.Data
	if err := row.ToStruct(&data); err != nil {
		return nil, fmt.Errorf("failed to parse user: %w", err)
	}
	return fromData(&data), nil
}

// FindIDByEmail looks the address up through the unique email index.
func (r *UserRepo) FindIDByEmail(ctx context.Context, email string) (int64, bool, error) {
	row, err := r.client.Single().ReadRowUsingIndex(ctx, m_user.TableName, m_user.EmailIndex, spanner.Key{email}, []string{m_user.ID})
	if err != nil {
		if spanner.ErrCode(err) == codes.NotFound {
			return 0, false, nil
		}
		return 0, false, fmt.Errorf("failed to look up email: %w", err)
	}

	var id int64
	if err := row.Column(0, &id); err != nil {
		return 0, false, fmt.Errorf("failed to parse user id: %w", err)
	}
	return id, true, nil
}

// List returns users ordered by id.
func (r *UserRepo) List(ctx context.Context) ([]*domain.User, error) {
	stmt := query.From(m_user.TableName).
		Select(m_user.AllColumns...).
		OrderBy(m_user.ID, query.Asc).
		Build()

	iter := r.client.Single().Query(ctx, stmt)
	defer iter.Stop()

	users := make([]*domain.User, 0)
	for {
		row, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to iterate users: %w", err)
		}

		var data m_user.Data
		if err := row.ToStruct(&data); err != nil {
			return nil, fmt.Errorf("failed to parse user: %w", err)
		}
		users = append(users, fromData(&data))
	}
	return users, nil
}

func fromData(data *m_user.Data) *domain.User {
	return &domain.User{
		ID:           data.ID,
		Name:         data.Name,
		Email:        data.Email,
		Role:         data.Role,
		PasswordHash: data.PasswordHash,
		CreatedAt:    data.CreatedAt,
		UpdatedAt:    data.UpdatedAt,
	}
}
