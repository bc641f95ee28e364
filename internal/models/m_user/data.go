package m_user

import "time"

// Data represents the database model for the users table.
type Data struct {
	ID           int64     `spanner:"id"`
	Name         string    `spanner:"name"`
	Email        string    `spanner:"email"`
	Role         string    `spanner:"role"`
	PasswordHash string    `spanner:"password_hash"`
	CreatedAt    time.Time `spanner:"created_at"`
	UpdatedAt    time.Time `spanner:"updated_at"`
}
