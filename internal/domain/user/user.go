// Package user defines the account domain model for authentication and authorization.
package user

import (
	"fmt"
	"net/mail"
	"time"

	"github.com/shelfspace/shelfspace/internal/domain"
)

// Role represents the authorization level of an account.
type Role string

const (
	// RoleAdmin owns and configures exactly one store tenant.
	RoleAdmin Role = "admin"
	// RoleCustomer browses storefronts; anchored to the tenant it signed up against.
	RoleCustomer Role = "customer"
)

// ValidRoles is the set of all valid account roles.
var ValidRoles = map[Role]bool{
	RoleAdmin:    true,
	RoleCustomer: true,
}

// User represents a registered account bound to a single tenant.
type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"` // never serialized
	Role         Role      `json:"role"`
	TenantID     string    `json:"tenantId"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// RegisterRequest is the input for registering a new account.
type RegisterRequest struct {
	Name      string `json:"name"`
	Email     string `json:"email"`
	Password  string `json:"password"` //nolint:gosec // request field, not a hardcoded secret
	Role      Role   `json:"role"`
	StoreName string `json:"storeName,omitempty"` // admin only; falls back to "<name>'s Bookstore"
}

// Validate checks that the RegisterRequest has all required fields.
func (r *RegisterRequest) Validate() error {
	if r.Name == "" {
		return fmt.Errorf("name is required: %w", domain.ErrValidation)
	}
	if r.Email == "" {
		return fmt.Errorf("email is required: %w", domain.ErrValidation)
	}
	if _, err := mail.ParseAddress(r.Email); err != nil {
		return fmt.Errorf("invalid email format: %w", domain.ErrValidation)
	}
	if r.Password == "" {
		return fmt.Errorf("password is required: %w", domain.ErrValidation)
	}
	if len(r.Password) < 8 {
		return fmt.Errorf("password must be at least 8 characters: %w", domain.ErrValidation)
	}
	if !ValidRoles[r.Role] {
		return fmt.Errorf("invalid role: must be admin or customer: %w", domain.ErrValidation)
	}
	return nil
}

// LoginRequest is the input for account authentication.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"` //nolint:gosec // request field, not a hardcoded secret
}

// Validate checks that the LoginRequest has all required fields.
func (r *LoginRequest) Validate() error {
	if r.Email == "" {
		return fmt.Errorf("email is required: %w", domain.ErrValidation)
	}
	if r.Password == "" {
		return fmt.Errorf("password is required: %w", domain.ErrValidation)
	}
	return nil
}

// UpdateProfileRequest is the input for an account updating its own profile.
// The target account is always the caller; it is never taken from the body.
type UpdateProfileRequest struct {
	Name     string `json:"name,omitempty"`
	Email    string `json:"email,omitempty"`
	Password string `json:"password,omitempty"` //nolint:gosec // request field, not a hardcoded secret
}

// Validate rejects malformed optional fields.
func (r *UpdateProfileRequest) Validate() error {
	if r.Email != "" {
		if _, err := mail.ParseAddress(r.Email); err != nil {
			return fmt.Errorf("invalid email format: %w", domain.ErrValidation)
		}
	}
	if r.Password != "" && len(r.Password) < 8 {
		return fmt.Errorf("password must be at least 8 characters: %w", domain.ErrValidation)
	}
	return nil
}

// SessionClaims is the decoded payload of a session credential.
type SessionClaims struct {
	UserID   string
	TenantID string
	Role     Role
}
