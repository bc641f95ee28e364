package m_user

// Field name constants for the users table.
const (
	TableName = "users"

	// EmailIndex is the unique secondary index on email.
	EmailIndex = "idx_users_email"

	ID           = "id"
	Name         = "name"
	Email        = "email"
	Role         = "role"
	PasswordHash = "password_hash"
	CreatedAt    = "created_at"
	UpdatedAt    = "updated_at"
)

// AllColumns lists every column in table order.
var AllColumns = []string{ID, Name, Email, Role, PasswordHash, CreatedAt, UpdatedAt}
