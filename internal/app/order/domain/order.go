package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// OrderNumber formats the human-facing order number for a creation time.
func OrderNumber(t time.Time) string {
	return fmt.Sprintf("ORD-%d", t.UnixMilli())
}

// Order is the aggregate root for a customer order.
type Order struct {
	id           int64
	number       string
	userID       int64
	customerName string
	email        string
	status       OrderStatus
	total        decimal.Decimal
	createdAt    time.Time
	updatedAt    time.Time

	events []DomainEvent
}

// OrderInput carries the fields an administrator supplies on creation.
type OrderInput struct {
	UserID       int64
	CustomerName string
	Email        string
	Status       string
	Total        decimal.Decimal
}

// NewOrder validates input and creates an order numbered after now.
func NewOrder(id int64, in OrderInput, now time.Time) (*Order, error) {
	name := strings.TrimSpace(in.CustomerName)
	email := strings.TrimSpace(in.Email)
	switch {
	case name == "":
		return nil, &FieldError{Field: "customerName"}
	case email == "":
		return nil, &FieldError{Field: "email"}
	case strings.TrimSpace(in.Status) == "":
		return nil, &FieldError{Field: "status"}
	case in.UserID == 0:
		return nil, &FieldError{Field: "userId"}
	}

	status, err := ParseOrderStatus(in.Status)
	if err != nil {
		return nil, err
	}
	if in.Total.IsNegative() {
		return nil, ErrInvalidTotal
	}

	o := &Order{
		id:           id,
		number:       OrderNumber(now),
		userID:       in.UserID,
		customerName: name,
		email:        email,
		status:       status,
		total:        in.Total,
		createdAt:    now,
		updatedAt:    now,
	}
	o.events = append(o.events, &OrderCreatedEvent{
		OrderID:     o.id,
		OrderNumber: o.number,
		UserID:      o.userID,
		Status:      o.status,
		Total:       o.total,
		CreatedAt:   now,
	})
	return o, nil
}

// ReconstructOrder reconstitutes an Order from storage.
func ReconstructOrder(id int64, number string, userID int64, customerName, email string, status OrderStatus, total decimal.Decimal, createdAt, updatedAt time.Time) *Order {
	return &Order{
		id:           id,
		number:       number,
		userID:       userID,
		customerName: customerName,
		email:        email,
		status:       status,
		total:        total,
		createdAt:    createdAt,
		updatedAt:    updatedAt,
	}
}

// Getters
func (o *Order) ID() int64                   { return o.id }
func (o *Order) Number() string              { return o.number }
func (o *Order) UserID() int64               { return o.userID }
func (o *Order) CustomerName() string        { return o.customerName }
func (o *Order) Email() string               { return o.email }
func (o *Order) Status() OrderStatus         { return o.status }
func (o *Order) Total() decimal.Decimal      { return o.total }
func (o *Order) CreatedAt() time.Time        { return o.createdAt }
func (o *Order) UpdatedAt() time.Time        { return o.updatedAt }
func (o *Order) DomainEvents() []DomainEvent { return o.events }

// ChangeStatus moves the order to a new status. It reports whether the
// status actually changed.
func (o *Order) ChangeStatus(raw string, now time.Time) (bool, error) {
	status, err := ParseOrderStatus(raw)
	if err != nil {
		return false, err
	}
	if status == o.status {
		return false, nil
	}

	o.events = append(o.events, &OrderStatusChangedEvent{
		OrderID:   o.id,
		From:      o.status,
		To:        status,
		ChangedAt: now,
	})
	o.status = status
	o.updatedAt = now
	return true, nil
}

// MarkDeleted records the deletion event.
func (o *Order) MarkDeleted(now time.Time) {
	o.events = append(o.events, &OrderDeletedEvent{OrderID: o.id, DeletedAt: now})
}

// ClearEvents clears all recorded domain events.
func (o *Order) ClearEvents() {
	o.events = nil
}
