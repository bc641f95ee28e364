package domain

import (
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
)

// MinPasswordLength is the shortest accepted password.
const MinPasswordLength = 8

// Domain errors as sentinel values
var (
	ErrNotFound      = errors.New("user not found")
	ErrMissingField  = errors.New("missing required field")
	ErrInvalidEmail  = errors.New("invalid email address")
	ErrWeakPassword  = fmt.Errorf("password must be at least %d characters", MinPasswordLength)
	ErrEmailTaken    = errors.New("email already registered")
	ErrInvalidID     = errors.New("invalid user id")
	errPasswordEmpty = errors.New("password cannot be empty")
)

// User is an administrator or customer account. The password hash never
// leaves the domain and storage layers.
type User struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	Role         string    `json:"role"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// Patch carries optional replacements; nil fields are left unchanged.
type Patch struct {
	Name     *string
	Email    *string
	Role     *string
	Password *string
}

// NormalizeEmail trims and lowercases an address and checks its syntax.
func NormalizeEmail(s string) (string, error) {
	email := strings.ToLower(strings.TrimSpace(s))
	if email == "" {
		return "", fmt.Errorf("%w: email", ErrMissingField)
	}
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return "", ErrInvalidEmail
	}
	return email, nil
}

// HashPassword validates and hashes a password with bcrypt.
func HashPassword(password string, cost int) (string, error) {
	if password == "" {
		return "", fmt.Errorf("%w: password", ErrMissingField)
	}
	if len(password) < MinPasswordLength {
		return "", ErrWeakPassword
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}

// CheckPassword reports whether password matches the stored hash.
func (u *User) CheckPassword(password string) bool {
	if password == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) == nil
}

// NewUser validates every field and hashes the password.
func NewUser(id int64, name, email, role, password string, cost int, now time.Time) (*User, error) {
	name, role = strings.TrimSpace(name), strings.TrimSpace(role)
	if name == "" {
		return nil, fmt.Errorf("%w: name", ErrMissingField)
	}
	normalized, err := NormalizeEmail(email)
	if err != nil {
		return nil, err
	}
	if role == "" {
		return nil, fmt.Errorf("%w: role", ErrMissingField)
	}
	hash, err := HashPassword(password, cost)
	if err != nil {
		return nil, err
	}

	return &User{
		ID:           id,
		Name:         name,
		Email:        normalized,
		Role:         role,
		PasswordHash: hash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}, nil
}

// Apply copies the set fields of p and returns the changed column names.
// On error u is unchanged.
func (u *User) Apply(p Patch, cost int, now time.Time) ([]string, error) {
	next := *u
	var changed []string

	if p.Name != nil {
		name := strings.TrimSpace(*p.Name)
		if name == "" {
			return nil, fmt.Errorf("%w: name", ErrMissingField)
		}
		if name != next.Name {
			next.Name = name
			changed = append(changed, "name")
		}
	}
	if p.Email != nil {
		email, err := NormalizeEmail(*p.Email)
		if err != nil {
			return nil, err
		}
		if email != next.Email {
			next.Email = email
			changed = append(changed, "email")
		}
	}
	if p.Role != nil {
		role := strings.TrimSpace(*p.Role)
		if role == "" {
			return nil, fmt.Errorf("%w: role", ErrMissingField)
		}
		if role != next.Role {
			next.Role = role
			changed = append(changed, "role")
		}
	}
	if p.Password != nil {
		hash, err := HashPassword(*p.Password, cost)
		if err != nil {
			return nil, err
		}
		next.PasswordHash = hash
		changed = append(changed, "password_hash")
	}

	if len(changed) > 0 {
		next.UpdatedAt = now
	}
	*u = next
	return changed, nil
}
