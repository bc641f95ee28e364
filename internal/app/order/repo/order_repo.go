package repo

import (
	"context"
	"fmt"

	"cloud.google.com/go/spanner"
	"github.com/shopspring/decimal"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"

	"github.com/light-bringer/fulfillment-service/internal/app/order/contracts"
	"github.com/light-bringer/fulfillment-service/internal/app/order/domain"
	"github.com/light-bringer/fulfillment-service/internal/models/m_order"
	"github.com/light-bringer/fulfillment-service/internal/pkg/query"
)

// numericScale is the fractional precision of a Spanner NUMERIC.
const numericScale = 9

// OrderRepo implements OrderRepository and ReadModel for Spanner.
type OrderRepo struct {
	client *spanner.Client
	model  *m_order.Model
}

var (
	_ contracts.OrderRepository = (*OrderRepo)(nil)
	_ contracts.ReadModel       = (*OrderRepo)(nil)
)

// NewOrderRepo creates a new OrderRepo.
func NewOrderRepo(client *spanner.Client) *OrderRepo {
	return &OrderRepo{
		client: client,
		model:  m_order.NewModel(),
	}
}

// InsertMut creates a mutation for inserting a new order.
func (r *OrderRepo) InsertMut(order *domain.Order) *spanner.Mutation {
	data := &m_order.Data{
		ID:           order.ID(),
		OrderNumber:  order.Number(),
		UserID:       order.UserID(),
		CustomerName: order.CustomerName(),
		Email:        order.Email(),
		Status:       order.Status().String(),
		Total:        *order.Total().Rat(),
	}
	return r.model.InsertMut(data)
}

// UpdateStatusMut creates a mutation that writes only the status.
func (r *OrderRepo) UpdateStatusMut(order *domain.Order) *spanner.Mutation {
	return r.model.UpdateStatusMut(order.ID(), order.Status().String())
}

// DeleteMut creates a mutation for deleting an order.
func (r *OrderRepo) DeleteMut(orderID int64) *spanner.Mutation {
	return r.model.DeleteMut(orderID)
}

// GetByID retrieves an order, reconstructing the domain aggregate.
func (r *OrderRepo) GetByID(ctx context.Context, orderID int64) (*domain.Order, error) {
	data, err := r.read(ctx, orderID)
	if err != nil {
		return nil, err
	}
	return dataToDomain(data), nil
}

// GetOrder retrieves an order DTO by ID.
func (r *OrderRepo) GetOrder(ctx context.Context, orderID int64) (*contracts.OrderDTO, error) {
	data, err := r.read(ctx, orderID)
	if err != nil {
		return nil, err
	}
	return ToDTO(dataToDomain(data)), nil
}

// ListOrders returns every order, newest first.
func (r *OrderRepo) ListOrders(ctx context.Context) ([]*contracts.OrderDTO, error) {
	stmt := query.From(m_order.TableName).
		Select(m_order.AllColumns...).
		OrderBy(m_order.CreatedAt, query.Desc).
		ThenBy(m_order.ID, query.Desc).
		Build()

	iter := r.client.Single().Query(ctx, stmt)
	defer iter.Stop()

	orders := make([]*contracts.OrderDTO, 0)
	for {
		row, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to iterate orders: %w", err)
		}

		var data m_order.Data
		if err := row.ToStruct(&data); err != nil {
			return nil, fmt.Errorf("failed to parse order: %w", err)
		}
		orders = append(orders, ToDTO(dataToDomain(&data)))
	}
	return orders, nil
}

func (r *OrderRepo) read(ctx context.Context, orderID int64) (*m_order.Data, error) {
	row, err := r.client.Single().ReadRow(ctx, m_order.TableName, spanner.Key{orderID}, m_order.AllColumns)
	if err != nil {
		if spanner.ErrCode(err) == codes.NotFound {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("failed to read order: %w", err)
	}

	var data m_order.Data
	if err := row.ToStruct(&data); err != nil {
		return nil, fmt.Errorf("failed to parse order: %w", err)
	}
	return &data, nil
}

// ToDTO maps an order to its admin view.
func ToDTO(o *domain.Order) *contracts.OrderDTO {
	return &contracts.OrderDTO{
		ID:           o.ID(),
		OrderNumber:  o.Number(),
		UserID:       o.UserID(),
		CustomerName: o.CustomerName(),
		Email:        o.Email(),
		Status:       o.Status().String(),
		Total:        o.Total().InexactFloat64(),
		Date:         o.CreatedAt().UTC().Format("2006-01-02"),
	}
}

func dataToDomain(data *m_order.Data) *domain.Order {
	return domain.ReconstructOrder(
		data.ID,
		data.OrderNumber,
		data.UserID,
		data.CustomerName,
		data.Email,
		domain.OrderStatus(data.Status),
		decimal.NewFromBigRat(&data.Total, numericScale),
		data.CreatedAt,
		data.UpdatedAt,
	)
}
