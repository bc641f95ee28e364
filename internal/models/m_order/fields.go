package m_order

// Field name constants for the orders table.
const (
	TableName = "orders"

	ID           = "id"
	OrderNumber  = "order_number"
	UserID       = "user_id"
	CustomerName = "customer_name"
	Email        = "email"
	Status       = "status"
	Total        = "total"
	CreatedAt    = "created_at"
	UpdatedAt    = "updated_at"
)

// AllColumns lists every column in table order.
var AllColumns = []string{ID, OrderNumber, UserID, CustomerName, Email, Status, Total, CreatedAt, UpdatedAt}
