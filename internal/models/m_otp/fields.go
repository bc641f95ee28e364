package m_otp

// Field name constants for the otps table.
const (
	TableName = "otps"

	ID        = "id"
	Email     = "email"
	Code      = "code"
	ExpiresAt = "expires_at"
	CreatedAt = "created_at"
)
