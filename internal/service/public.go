package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/shelfspace/shelfspace/internal/domain"
	"github.com/shelfspace/shelfspace/internal/domain/book"
	"github.com/shelfspace/shelfspace/internal/domain/tenant"
	"github.com/shelfspace/shelfspace/internal/port/cache"
	"github.com/shelfspace/shelfspace/internal/port/database"
)

const storeDirectoryKey = "public:stores"

func storefrontKey(slug string) string {
	return "public:storefront:" + slug
}

// PublicService serves the unauthenticated storefront endpoints. Responses
// are cached as rendered JSON; catalog and settings mutations invalidate
// the affected keys.
type PublicService struct {
	store database.Store
	cache cache.Cache
	ttl   time.Duration
	log   *slog.Logger
}

// NewPublicService creates a new public storefront service.
func NewPublicService(store database.Store, c cache.Cache, ttl time.Duration, log *slog.Logger) *PublicService {
	return &PublicService{store: store, cache: c, ttl: ttl, log: log}
}

// StorefrontResponse is the public store-by-slug payload: the reduced
// tenant projection plus the full catalog.
type StorefrontResponse struct {
	Tenant tenant.Storefront `json:"tenant"`
	Books  []book.Book       `json:"books"`
}

// StorefrontBySlug returns a store's public profile and catalog, serving
// from the cache when the slug was recently requested.
func (s *PublicService) StorefrontBySlug(ctx context.Context, slug string) (*StorefrontResponse, error) {
	key := storefrontKey(slug)
	if cached, ok := s.cacheGet(ctx, key); ok {
		var resp StorefrontResponse
		if err := json.Unmarshal(cached, &resp); err == nil {
			return &resp, nil
		}
	}

	t, err := s.store.GetTenantBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("store %s: %w", slug, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get tenant by slug: %w", err)
	}

	books, err := s.store.ListAllBooks(ctx, t.ID)
	if err != nil {
		return nil, fmt.Errorf("list books: %w", err)
	}
	if books == nil {
		books = []book.Book{}
	}

	resp := &StorefrontResponse{Tenant: t.PublicView(), Books: books}
	s.cachePut(ctx, key, resp)
	return resp, nil
}

// ListStores returns the public directory of all stores.
func (s *PublicService) ListStores(ctx context.Context) ([]tenant.Listing, error) {
	if cached, ok := s.cacheGet(ctx, storeDirectoryKey); ok {
		var listings []tenant.Listing
		if err := json.Unmarshal(cached, &listings); err == nil {
			return listings, nil
		}
	}

	tenants, err := s.store.ListTenants(ctx)
	if err != nil {
		return nil, fmt.Errorf("list tenants: %w", err)
	}

	listings := make([]tenant.Listing, 0, len(tenants))
	for i := range tenants {
		listings = append(listings, tenants[i].ListingView())
	}

	s.cachePut(ctx, storeDirectoryKey, listings)
	return listings, nil
}

// InvalidateTenant drops the cached storefront of the given tenant along
// with the store directory. Used after catalog mutations.
func (s *PublicService) InvalidateTenant(ctx context.Context, tenantID string) error {
	t, err := s.store.GetTenant(ctx, tenantID)
	if err != nil {
		return fmt.Errorf("get tenant: %w", err)
	}
	return s.dropKeys(ctx, storefrontKey(t.Slug), storeDirectoryKey)
}

// InvalidateSlug drops the cached storefronts under both the old and the
// new slug plus the directory. Used after settings updates, where a rename
// may have moved the storefront to a new slug.
func (s *PublicService) InvalidateSlug(ctx context.Context, oldSlug, newSlug string) error {
	keys := []string{storefrontKey(oldSlug), storeDirectoryKey}
	if newSlug != oldSlug {
		keys = append(keys, storefrontKey(newSlug))
	}
	return s.dropKeys(ctx, keys...)
}

func (s *PublicService) dropKeys(ctx context.Context, keys ...string) error {
	var firstErr error
	for _, key := range keys {
		if err := s.cache.Delete(ctx, key); err != nil && firstErr == nil {
			firstErr = fmt.Errorf("drop cache key %s: %w", key, err)
		}
	}
	return firstErr
}

func (s *PublicService) cacheGet(ctx context.Context, key string) ([]byte, bool) {
	data, ok, err := s.cache.Get(ctx, key)
	if err != nil {
		s.log.Warn("cache read failed", "key", key, "error", err)
		return nil, false
	}
	return data, ok
}

func (s *PublicService) cachePut(ctx context.Context, key string, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, key, data, s.ttl); err != nil {
		s.log.Warn("cache write failed", "key", key, "error", err)
	}
}
