package domain

import "strings"

// OrderStatus is the lifecycle state of an order. Every validation site
// uses ParseOrderStatus so the set of accepted values lives here only.
type OrderStatus string

const (
	StatusPending    OrderStatus = "PENDING"
	StatusProcessing OrderStatus = "PROCESSING"
	StatusShipped    OrderStatus = "SHIPPED"
	StatusDelivered  OrderStatus = "DELIVERED"
	StatusCancelled  OrderStatus = "CANCELLED"
	StatusRefunded   OrderStatus = "REFUNDED"
	StatusOnHold     OrderStatus = "ON_HOLD"
)

// AllStatuses lists the accepted statuses in lifecycle order.
var AllStatuses = []OrderStatus{
	StatusPending,
	StatusProcessing,
	StatusShipped,
	StatusDelivered,
	StatusCancelled,
	StatusRefunded,
	StatusOnHold,
}

// ParseOrderStatus accepts any casing and surrounding whitespace.
func ParseOrderStatus(s string) (OrderStatus, error) {
	candidate := OrderStatus(strings.ToUpper(strings.TrimSpace(s)))
	for _, status := range AllStatuses {
		if candidate == status {
			return status, nil
		}
	}
	return "", ErrInvalidStatus
}

func (s OrderStatus) String() string {
	return string(s)
}
