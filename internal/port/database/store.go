// Package database defines the database store port (interface).
package database

import (
	"context"

	"github.com/shelfspace/shelfspace/internal/domain/book"
	"github.com/shelfspace/shelfspace/internal/domain/tenant"
	"github.com/shelfspace/shelfspace/internal/domain/user"
)

// Store is the port interface for database operations. Tenant-scoped
// methods take the tenant ID explicitly; callers pass the one resolved by
// the session gate, never a client-supplied value.
type Store interface {
	// Users
	CreateUser(ctx context.Context, u *user.User) error
	GetUser(ctx context.Context, id string) (*user.User, error)
	GetUserByEmail(ctx context.Context, email string) (*user.User, error)
	UpdateUser(ctx context.Context, u *user.User) error
	ListUsers(ctx context.Context, tenantID string) ([]user.User, error)

	// Tenants
	CreateTenant(ctx context.Context, t *tenant.Tenant) error
	GetTenant(ctx context.Context, id string) (*tenant.Tenant, error)
	GetTenantBySlug(ctx context.Context, slug string) (*tenant.Tenant, error)
	GetTenantByName(ctx context.Context, storeName string) (*tenant.Tenant, error)
	ListTenants(ctx context.Context) ([]tenant.Tenant, error)
	UpdateTenant(ctx context.Context, t *tenant.Tenant) error

	// Books
	CreateBook(ctx context.Context, b *book.Book) error
	GetBook(ctx context.Context, id string) (*book.Book, error)
	ListBooks(ctx context.Context, tenantID string, limit, offset int) ([]book.Book, error)
	ListAllBooks(ctx context.Context, tenantID string) ([]book.Book, error)
	CountBooks(ctx context.Context, tenantID string) (int, error)
	// UpdateBookOwned applies the update only when the stored book belongs
	// to tenantID; it is a single conditional statement so the ownership
	// check and the write cannot interleave.
	UpdateBookOwned(ctx context.Context, tenantID string, b *book.Book) error
	// DeleteBookOwned deletes the book only when it belongs to tenantID.
	DeleteBookOwned(ctx context.Context, tenantID, id string) error
}
