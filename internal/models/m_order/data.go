package m_order

import (
	"math/big"
	"time"
)

// Data represents the database model for the orders table.
type Data struct {
	ID           int64     `spanner:"id"`
	OrderNumber  string    `spanner:"order_number"`
	UserID       int64     `spanner:"user_id"`
	CustomerName string    `spanner:"customer_name"`
	Email        string    `spanner:"email"`
	Status       string    `spanner:"status"`
	Total        big.Rat   `spanner:"total"` // NUMERIC
	CreatedAt    time.Time `spanner:"created_at"`
	UpdatedAt    time.Time `spanner:"updated_at"`
}
