package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/shelfspace/shelfspace/internal/domain/book"
)

const bookColumns = `id, tenant_id, title, author, price, cover_image_url, created_at, updated_at`

func scanBook(row scannable) (*book.Book, error) {
	var b book.Book
	err := row.Scan(&b.ID, &b.TenantID, &b.Title, &b.Author, &b.Price, &b.CoverImageURL, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (s *Store) CreateBook(ctx context.Context, b *book.Book) error {
	now := time.Now().UTC()
	b.CreatedAt = now
	b.UpdatedAt = now

	_, err := s.pool.Exec(ctx, `
		INSERT INTO books (id, tenant_id, title, author, price, cover_image_url, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		b.ID, b.TenantID, b.Title, b.Author, b.Price, b.CoverImageURL, b.CreatedAt, b.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("create book: %w", err)
	}
	return nil
}

func (s *Store) GetBook(ctx context.Context, id string) (*book.Book, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT `+bookColumns+` FROM books WHERE id = $1`, id)

	b, err := scanBook(row)
	if err != nil {
		return nil, notFoundWrap(err, "get book %s", id)
	}
	return b, nil
}

func (s *Store) ListBooks(ctx context.Context, tenantID string, limit, offset int) ([]book.Book, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT `+bookColumns+` FROM books
		WHERE tenant_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3`,
		tenantID, limit, offset,
	)
	if err != nil {
		return nil, fmt.Errorf("list books: %w", err)
	}
	defer rows.Close()
	return collectBooks(rows)
}

func (s *Store) ListAllBooks(ctx context.Context, tenantID string) ([]book.Book, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT `+bookColumns+` FROM books
		WHERE tenant_id = $1
		ORDER BY created_at DESC`,
		tenantID,
	)
	if err != nil {
		return nil, fmt.Errorf("list all books: %w", err)
	}
	defer rows.Close()
	return collectBooks(rows)
}

func collectBooks(rows pgx.Rows) ([]book.Book, error) {
	var books []book.Book
	for rows.Next() {
		b, err := scanBook(rows)
		if err != nil {
			return nil, fmt.Errorf("scan book: %w", err)
		}
		books = append(books, *b)
	}
	return books, rows.Err()
}

func (s *Store) CountBooks(ctx context.Context, tenantID string) (int, error) {
	var count int
	err := s.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM books WHERE tenant_id = $1`, tenantID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count books: %w", err)
	}
	return count, nil
}

// UpdateBookOwned applies the update only when the stored row belongs to
// tenantID. The ownership check and the write are a single statement, so a
// concurrent move or delete cannot slip between them. Zero affected rows
// surfaces as ErrNotFound; callers that need to distinguish a missing book
// from a foreign one probe with GetBook afterwards.
func (s *Store) UpdateBookOwned(ctx context.Context, tenantID string, b *book.Book) error {
	b.UpdatedAt = time.Now().UTC()
	tag, err := s.pool.Exec(ctx, `
		UPDATE books SET title = $3, author = $4, price = $5, cover_image_url = $6, updated_at = $7
		WHERE id = $1 AND tenant_id = $2`,
		b.ID, tenantID, b.Title, b.Author, b.Price, b.CoverImageURL, b.UpdatedAt,
	)
	return execExpectOne(tag, err, "update book %s", b.ID)
}

// DeleteBookOwned removes the book only when it belongs to tenantID, with the
// same single-statement semantics as UpdateBookOwned.
func (s *Store) DeleteBookOwned(ctx context.Context, tenantID, id string) error {
	tag, err := s.pool.Exec(ctx,
		`DELETE FROM books WHERE id = $1 AND tenant_id = $2`, id, tenantID)
	return execExpectOne(tag, err, "delete book %s", id)
}
