package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"

	"github.com/google/uuid"

	"github.com/shelfspace/shelfspace/internal/domain"
	"github.com/shelfspace/shelfspace/internal/domain/book"
	"github.com/shelfspace/shelfspace/internal/port/database"
)

// BookService manages each store's catalog. Every method is scoped to the
// tenant resolved by the session gate; book IDs supplied by clients are
// never trusted to carry tenant identity.
type BookService struct {
	store  database.Store
	public *PublicService
	log    *slog.Logger
}

// NewBookService creates a new catalog service. public may be nil in tests
// that do not exercise storefront caching.
func NewBookService(store database.Store, public *PublicService, log *slog.Logger) *BookService {
	return &BookService{store: store, public: public, log: log}
}

// List returns one page of the tenant's books, newest first, along with the
// total page count.
func (s *BookService) List(ctx context.Context, tenantID string, page int) (*book.Page, error) {
	if page < 1 {
		page = 1
	}

	count, err := s.store.CountBooks(ctx, tenantID)
	if err != nil {
		return nil, fmt.Errorf("count books: %w", err)
	}

	books, err := s.store.ListBooks(ctx, tenantID, book.PageSize, (page-1)*book.PageSize)
	if err != nil {
		return nil, fmt.Errorf("list books: %w", err)
	}
	if books == nil {
		books = []book.Book{}
	}

	return &book.Page{
		Books: books,
		Page:  page,
		Pages: int(math.Ceil(float64(count) / float64(book.PageSize))),
	}, nil
}

// Create adds a book to the tenant's catalog.
func (s *BookService) Create(ctx context.Context, tenantID string, req *book.CreateRequest) (*book.Book, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	coverURL := req.CoverImageURL
	if coverURL == "" {
		coverURL = book.DefaultCoverURL
	}

	b := &book.Book{
		ID:            uuid.NewString(),
		TenantID:      tenantID,
		Title:         req.Title,
		Author:        req.Author,
		Price:         req.Price,
		CoverImageURL: coverURL,
	}
	if err := s.store.CreateBook(ctx, b); err != nil {
		return nil, fmt.Errorf("create book: %w", err)
	}

	s.invalidateStorefront(ctx, tenantID)
	return b, nil
}

// Update modifies a book the tenant owns. A book owned by another tenant
// yields ErrForbidden; a book that does not exist yields ErrNotFound.
func (s *BookService) Update(ctx context.Context, tenantID, id string, req *book.UpdateRequest) (*book.Book, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	b, err := s.store.GetBook(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get book: %w", err)
	}
	if b.TenantID != tenantID {
		return nil, fmt.Errorf("book %s: %w", id, domain.ErrForbidden)
	}

	if req.Title != "" {
		b.Title = req.Title
	}
	if req.Author != "" {
		b.Author = req.Author
	}
	if req.Price != nil {
		b.Price = *req.Price
	}
	if req.CoverImageURL != "" {
		b.CoverImageURL = req.CoverImageURL
	}

	// The ownership check above can go stale under concurrency, so the
	// write itself is conditional on the tenant still owning the row.
	if err := s.store.UpdateBookOwned(ctx, tenantID, b); err != nil {
		return nil, s.ownedMutationErr(ctx, id, err)
	}

	s.invalidateStorefront(ctx, tenantID)
	return b, nil
}

// Delete removes a book the tenant owns, with the same error semantics as
// Update.
func (s *BookService) Delete(ctx context.Context, tenantID, id string) error {
	if err := s.store.DeleteBookOwned(ctx, tenantID, id); err != nil {
		return s.ownedMutationErr(ctx, id, err)
	}

	s.invalidateStorefront(ctx, tenantID)
	return nil
}

// ownedMutationErr decides between ErrForbidden and ErrNotFound when a
// conditional mutation touched zero rows: if the book still exists it
// belongs to someone else.
func (s *BookService) ownedMutationErr(ctx context.Context, id string, err error) error {
	if !errors.Is(err, domain.ErrNotFound) {
		return err
	}
	if _, probeErr := s.store.GetBook(ctx, id); probeErr == nil {
		return fmt.Errorf("book %s: %w", id, domain.ErrForbidden)
	}
	return err
}

func (s *BookService) invalidateStorefront(ctx context.Context, tenantID string) {
	if s.public == nil {
		return
	}
	if err := s.public.InvalidateTenant(ctx, tenantID); err != nil {
		s.log.Warn("storefront cache invalidation failed", "tenant_id", tenantID, "error", err)
	}
}
