package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/shelfspace/shelfspace/internal/domain/tenant"
)

const tenantColumns = `id, store_name, slug, primary_color, logo_url, enable_3d_model, enable_reviews, created_at, updated_at`

func scanTenant(row scannable) (*tenant.Tenant, error) {
	var t tenant.Tenant
	err := row.Scan(&t.ID, &t.StoreName, &t.Slug,
		&t.Theme.PrimaryColor, &t.Theme.LogoURL,
		&t.Settings.Enable3DModel, &t.Settings.EnableReviews,
		&t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (s *Store) CreateTenant(ctx context.Context, t *tenant.Tenant) error {
	now := time.Now().UTC()
	t.CreatedAt = now
	t.UpdatedAt = now

	_, err := s.pool.Exec(ctx, `
		INSERT INTO tenants (id, store_name, slug, primary_color, logo_url, enable_3d_model, enable_reviews, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		t.ID, t.StoreName, t.Slug,
		t.Theme.PrimaryColor, t.Theme.LogoURL,
		t.Settings.Enable3DModel, t.Settings.EnableReviews,
		t.CreatedAt, t.UpdatedAt,
	)
	if err != nil {
		return conflictWrap(err, "create tenant")
	}
	return nil
}

func (s *Store) GetTenant(ctx context.Context, id string) (*tenant.Tenant, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT `+tenantColumns+` FROM tenants WHERE id = $1`, id)

	t, err := scanTenant(row)
	if err != nil {
		return nil, notFoundWrap(err, "get tenant %s", id)
	}
	return t, nil
}

func (s *Store) GetTenantBySlug(ctx context.Context, slug string) (*tenant.Tenant, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT `+tenantColumns+` FROM tenants WHERE slug = $1`, slug)

	t, err := scanTenant(row)
	if err != nil {
		return nil, notFoundWrap(err, "get tenant by slug %s", slug)
	}
	return t, nil
}

func (s *Store) GetTenantByName(ctx context.Context, storeName string) (*tenant.Tenant, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT `+tenantColumns+` FROM tenants WHERE store_name = $1`, storeName)

	t, err := scanTenant(row)
	if err != nil {
		return nil, notFoundWrap(err, "get tenant by name")
	}
	return t, nil
}

func (s *Store) ListTenants(ctx context.Context) ([]tenant.Tenant, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT `+tenantColumns+` FROM tenants ORDER BY created_at ASC`)
	if err != nil {
		return nil, fmt.Errorf("list tenants: %w", err)
	}
	defer rows.Close()

	var tenants []tenant.Tenant
	for rows.Next() {
		t, err := scanTenant(rows)
		if err != nil {
			return nil, fmt.Errorf("scan tenant: %w", err)
		}
		tenants = append(tenants, *t)
	}
	return tenants, rows.Err()
}

func (s *Store) UpdateTenant(ctx context.Context, t *tenant.Tenant) error {
	t.UpdatedAt = time.Now().UTC()
	tag, err := s.pool.Exec(ctx, `
		UPDATE tenants SET store_name = $2, slug = $3, primary_color = $4, logo_url = $5,
		       enable_3d_model = $6, enable_reviews = $7, updated_at = $8
		WHERE id = $1`,
		t.ID, t.StoreName, t.Slug,
		t.Theme.PrimaryColor, t.Theme.LogoURL,
		t.Settings.Enable3DModel, t.Settings.EnableReviews,
		t.UpdatedAt,
	)
	if err != nil {
		return conflictWrap(err, "update tenant %s", t.ID)
	}
	return execExpectOne(tag, nil, "update tenant %s", t.ID)
}
