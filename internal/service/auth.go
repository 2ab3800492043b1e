// Package service implements the use cases behind the HTTP handlers.
package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/shelfspace/shelfspace/internal/config"
	"github.com/shelfspace/shelfspace/internal/domain"
	"github.com/shelfspace/shelfspace/internal/domain/tenant"
	"github.com/shelfspace/shelfspace/internal/domain/user"
	"github.com/shelfspace/shelfspace/internal/port/database"
)

// ErrInvalidCredentials is returned on any login failure so responses never
// reveal whether the email is registered.
var ErrInvalidCredentials = fmt.Errorf("invalid email or password: %w", domain.ErrUnauthorized)

// AuthService handles registration, login, profile updates and session tokens.
type AuthService struct {
	store  database.Store
	cfg    *config.Auth
	secret []byte
}

// NewAuthService creates a new authentication service.
func NewAuthService(store database.Store, cfg *config.Auth) *AuthService {
	return &AuthService{
		store:  store,
		cfg:    cfg,
		secret: []byte(cfg.SessionSecret),
	}
}

// Session is the result of a successful register, login or profile update.
type Session struct {
	User   *user.User     `json:"user"`
	Tenant *tenant.Tenant `json:"tenant"`
}

// CheckEmail reports whether an account with the given email exists.
func (s *AuthService) CheckEmail(ctx context.Context, email string) (bool, error) {
	_, err := s.store.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("check email: %w", err)
	}
	return true, nil
}

// Register creates an account and its tenant. Admins get a fresh store named
// after StoreName (or "<name>'s Bookstore" when omitted); customers are
// attached to the shared store, creating it on first use.
func (s *AuthService) Register(ctx context.Context, req *user.RegisterRequest) (*Session, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	// Probe the email before creating any tenant, otherwise a duplicate
	// registration would strand an orphan store that holds its slug and
	// name forever. The unique index on users.email remains the backstop
	// for the concurrent-registration race.
	if _, err := s.store.GetUserByEmail(ctx, req.Email); err == nil {
		return nil, fmt.Errorf("email already registered: %w", domain.ErrConflict)
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("check email: %w", err)
	}

	var t *tenant.Tenant
	var err error
	if req.Role == user.RoleAdmin {
		storeName := req.StoreName
		if storeName == "" {
			storeName = req.Name + "'s Bookstore"
		}
		nt := tenant.New(storeName)
		nt.ID = uuid.NewString()
		t = &nt
		if err := s.store.CreateTenant(ctx, t); err != nil {
			return nil, fmt.Errorf("create tenant: %w", err)
		}
	} else {
		t, err = s.sharedTenant(ctx)
		if err != nil {
			return nil, err
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.cfg.BcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	u := &user.User{
		ID:           uuid.NewString(),
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: string(hash),
		Role:         req.Role,
		TenantID:     t.ID,
	}
	if err := s.store.CreateUser(ctx, u); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}

	return &Session{User: u, Tenant: t}, nil
}

// sharedTenant returns the shared storefront tenant, creating it if needed.
// A concurrent first registration can race the create; the slug unique index
// rejects the loser, which then re-reads the winner's row.
func (s *AuthService) sharedTenant(ctx context.Context) (*tenant.Tenant, error) {
	t, err := s.store.GetTenantByName(ctx, tenant.SharedStoreName)
	if err == nil {
		return t, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("lookup shared tenant: %w", err)
	}

	nt := tenant.New(tenant.SharedStoreName)
	nt.ID = uuid.NewString()
	t = &nt
	err = s.store.CreateTenant(ctx, t)
	if err == nil {
		return t, nil
	}
	if errors.Is(err, domain.ErrConflict) {
		return s.store.GetTenantByName(ctx, tenant.SharedStoreName)
	}
	return nil, fmt.Errorf("create shared tenant: %w", err)
}

// Login verifies credentials and returns the user with their tenant. Every
// failure path returns ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, req *user.LoginRequest) (*Session, error) {
	u, err := s.store.GetUserByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("get user: %w", err)
	}

	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.Password)) != nil {
		return nil, ErrInvalidCredentials
	}

	t, err := s.store.GetTenant(ctx, u.TenantID)
	if err != nil {
		return nil, fmt.Errorf("get tenant: %w", err)
	}

	return &Session{User: u, Tenant: t}, nil
}

// UpdateProfile changes the user's name, email and optionally password.
// Empty fields keep their current value.
func (s *AuthService) UpdateProfile(ctx context.Context, userID string, req *user.UpdateProfileRequest) (*Session, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	u, err := s.store.GetUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}

	if req.Name != "" {
		u.Name = req.Name
	}
	if req.Email != "" {
		u.Email = req.Email
	}
	if req.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.cfg.BcryptCost)
		if err != nil {
			return nil, fmt.Errorf("hash password: %w", err)
		}
		u.PasswordHash = string(hash)
	}

	if err := s.store.UpdateUser(ctx, u); err != nil {
		return nil, fmt.Errorf("update user: %w", err)
	}

	t, err := s.store.GetTenant(ctx, u.TenantID)
	if err != nil {
		return nil, fmt.Errorf("get tenant: %w", err)
	}

	return &Session{User: u, Tenant: t}, nil
}

// AdminResetPassword sets a new password for the account with the given
// email. Operator tooling only; it bypasses the old-password check.
func (s *AuthService) AdminResetPassword(ctx context.Context, email, newPassword string) error {
	if len(newPassword) < 8 {
		return fmt.Errorf("password must be at least 8 characters: %w", domain.ErrValidation)
	}

	u, err := s.store.GetUserByEmail(ctx, email)
	if err != nil {
		return fmt.Errorf("get user: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), s.cfg.BcryptCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	u.PasswordHash = string(hash)

	if err := s.store.UpdateUser(ctx, u); err != nil {
		return fmt.Errorf("update user: %w", err)
	}
	return nil
}

// ListUsers returns all accounts of the given tenant. Operator tooling only.
func (s *AuthService) ListUsers(ctx context.Context, tenantID string) ([]user.User, error) {
	users, err := s.store.ListUsers(ctx, tenantID)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}

// sessionClaims is the JWT payload of a session token.
type sessionClaims struct {
	TenantID string    `json:"tenantId"`
	Role     user.Role `json:"role"`
	jwt.RegisteredClaims
}

// IssueSession signs a session token for the user, valid for the configured TTL.
func (s *AuthService) IssueSession(u *user.User) (string, error) {
	now := time.Now()
	claims := sessionClaims{
		TenantID: u.TenantID,
		Role:     u.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   u.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.cfg.SessionTTL)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign session token: %w", err)
	}
	return signed, nil
}

// VerifySession checks the token signature and expiry and returns its claims.
func (s *AuthService) VerifySession(token string) (*user.SessionClaims, error) {
	var claims sessionClaims
	_, err := jwt.ParseWithClaims(token, &claims, func(*jwt.Token) (any, error) {
		return s.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, fmt.Errorf("parse session token: %w", err)
	}

	return &user.SessionClaims{
		UserID:   claims.Subject,
		TenantID: claims.TenantID,
		Role:     claims.Role,
	}, nil
}
