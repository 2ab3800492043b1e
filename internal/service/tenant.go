package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/shelfspace/shelfspace/internal/domain/tenant"
	"github.com/shelfspace/shelfspace/internal/port/database"
)

// TenantService manages store branding and feature settings.
type TenantService struct {
	store  database.Store
	public *PublicService
	log    *slog.Logger
}

// NewTenantService creates a new tenant settings service. public may be nil
// in tests that do not exercise storefront caching.
func NewTenantService(store database.Store, public *PublicService, log *slog.Logger) *TenantService {
	return &TenantService{store: store, public: public, log: log}
}

// UpdateSettings applies a partial update to the tenant's branding and
// feature toggles. Renaming the store re-derives its slug; a slug collision
// with another store surfaces as ErrConflict. Unknown settings keys never
// reach this service, the request type only carries the whitelisted ones.
func (s *TenantService) UpdateSettings(ctx context.Context, tenantID string, req *tenant.UpdateRequest) (*tenant.Tenant, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	t, err := s.store.GetTenant(ctx, tenantID)
	if err != nil {
		return nil, fmt.Errorf("get tenant: %w", err)
	}

	oldSlug := t.Slug
	if req.StoreName != "" {
		t.StoreName = req.StoreName
		t.Slug = tenant.Slugify(req.StoreName)
	}
	if req.PrimaryColor != "" {
		t.Theme.PrimaryColor = req.PrimaryColor
	}
	if req.LogoURL != "" {
		t.Theme.LogoURL = req.LogoURL
	}
	if req.Settings != nil {
		if req.Settings.Enable3DModel != nil {
			t.Settings.Enable3DModel = *req.Settings.Enable3DModel
		}
		if req.Settings.EnableReviews != nil {
			t.Settings.EnableReviews = *req.Settings.EnableReviews
		}
	}

	if err := s.store.UpdateTenant(ctx, t); err != nil {
		return nil, fmt.Errorf("update tenant: %w", err)
	}

	if s.public != nil {
		if err := s.public.InvalidateSlug(ctx, oldSlug, t.Slug); err != nil {
			s.log.Warn("storefront cache invalidation failed", "tenant_id", tenantID, "error", err)
		}
	}
	return t, nil
}
