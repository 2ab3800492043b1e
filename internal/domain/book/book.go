// Package book defines the catalog domain model. Every book is owned by
// exactly one tenant and is only reachable through that tenant's scope.
package book

import (
	"fmt"
	"time"

	"github.com/shelfspace/shelfspace/internal/domain"
)

// DefaultCoverURL is used when a book is created without a cover image.
const DefaultCoverURL = "/assets/book-cover.jpg"

// PageSize is the fixed page size of the tenant catalog listing.
const PageSize = 5

// Book represents a catalog item owned by a tenant.
type Book struct {
	ID            string    `json:"id"`
	TenantID      string    `json:"tenantId"`
	Title         string    `json:"title"`
	Author        string    `json:"author"`
	Price         float64   `json:"price"`
	CoverImageURL string    `json:"coverImageUrl"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// CreateRequest is the input for adding a book to the caller's catalog.
// Any tenant value a client might supply is ignored; ownership is assigned
// from the authenticated tenant context.
type CreateRequest struct {
	Title         string  `json:"title"`
	Author        string  `json:"author"`
	Price         float64 `json:"price"`
	CoverImageURL string  `json:"coverImageUrl,omitempty"`
}

// Validate checks that the CreateRequest has all required fields.
func (r *CreateRequest) Validate() error {
	if r.Title == "" {
		return fmt.Errorf("title is required: %w", domain.ErrValidation)
	}
	if r.Author == "" {
		return fmt.Errorf("author is required: %w", domain.ErrValidation)
	}
	if r.Price <= 0 {
		return fmt.Errorf("price must be positive: %w", domain.ErrValidation)
	}
	return nil
}

// UpdateRequest holds the fields that can be changed on an existing book.
// Absent fields keep their stored values.
type UpdateRequest struct {
	Title         string   `json:"title,omitempty"`
	Author        string   `json:"author,omitempty"`
	Price         *float64 `json:"price,omitempty"`
	CoverImageURL string   `json:"coverImageUrl,omitempty"`
}

// Validate rejects malformed optional fields.
func (r *UpdateRequest) Validate() error {
	if r.Price != nil && *r.Price <= 0 {
		return fmt.Errorf("price must be positive: %w", domain.ErrValidation)
	}
	return nil
}

// Page is one page of a tenant's catalog listing.
type Page struct {
	Books []Book `json:"books"`
	Page  int    `json:"page"`
	Pages int    `json:"pages"`
}
