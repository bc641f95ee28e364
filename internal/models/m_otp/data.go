package m_otp

import "time"

// Data represents the database model for the otps table.
type Data struct {
	ID        string    `spanner:"id"`
	Email     string    `spanner:"email"`
	Code      string    `spanner:"code"`
	ExpiresAt time.Time `spanner:"expires_at"`
	CreatedAt time.Time `spanner:"created_at"`
}
