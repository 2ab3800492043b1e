package service

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/shelfspace/shelfspace/internal/domain"
	"github.com/shelfspace/shelfspace/internal/domain/book"
	"github.com/shelfspace/shelfspace/internal/domain/tenant"
	"github.com/shelfspace/shelfspace/internal/domain/user"
)

// mockStore is an in-memory database.Store. The err* hook fields inject
// failures into individual methods.
type mockStore struct {
	mu      sync.Mutex
	users   map[string]*user.User
	tenants map[string]*tenant.Tenant
	books   map[string]*book.Book

	errCreateUser   error
	errCreateTenant error
	errCreateBook   error
	errUpdate       error
}

func newMockStore() *mockStore {
	return &mockStore{
		users:   make(map[string]*user.User),
		tenants: make(map[string]*tenant.Tenant),
		books:   make(map[string]*book.Book),
	}
}

func (m *mockStore) CreateUser(_ context.Context, u *user.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.errCreateUser != nil {
		return m.errCreateUser
	}
	for _, existing := range m.users {
		if existing.Email == u.Email {
			return domain.ErrConflict
		}
	}
	cp := *u
	m.users[u.ID] = &cp
	return nil
}

func (m *mockStore) GetUser(_ context.Context, id string) (*user.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (m *mockStore) GetUserByEmail(_ context.Context, email string) (*user.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *mockStore) UpdateUser(_ context.Context, u *user.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.errUpdate != nil {
		return m.errUpdate
	}
	if _, ok := m.users[u.ID]; !ok {
		return domain.ErrNotFound
	}
	for id, existing := range m.users {
		if id != u.ID && existing.Email == u.Email {
			return domain.ErrConflict
		}
	}
	cp := *u
	m.users[u.ID] = &cp
	return nil
}

func (m *mockStore) ListUsers(_ context.Context, tenantID string) ([]user.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []user.User
	for _, u := range m.users {
		if u.TenantID == tenantID {
			out = append(out, *u)
		}
	}
	return out, nil
}

func (m *mockStore) CreateTenant(_ context.Context, t *tenant.Tenant) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.errCreateTenant != nil {
		return m.errCreateTenant
	}
	for _, existing := range m.tenants {
		if existing.Slug == t.Slug {
			return domain.ErrConflict
		}
	}
	now := time.Now()
	t.CreatedAt = now
	t.UpdatedAt = now
	cp := *t
	m.tenants[t.ID] = &cp
	return nil
}

func (m *mockStore) GetTenant(_ context.Context, id string) (*tenant.Tenant, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	t, ok := m.tenants[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *t
	return &cp, nil
}

func (m *mockStore) GetTenantBySlug(_ context.Context, slug string) (*tenant.Tenant, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, t := range m.tenants {
		if t.Slug == slug {
			cp := *t
			return &cp, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *mockStore) GetTenantByName(_ context.Context, storeName string) (*tenant.Tenant, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, t := range m.tenants {
		if t.StoreName == storeName {
			cp := *t
			return &cp, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *mockStore) ListTenants(_ context.Context) ([]tenant.Tenant, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []tenant.Tenant
	for _, t := range m.tenants {
		out = append(out, *t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (m *mockStore) UpdateTenant(_ context.Context, t *tenant.Tenant) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.errUpdate != nil {
		return m.errUpdate
	}
	if _, ok := m.tenants[t.ID]; !ok {
		return domain.ErrNotFound
	}
	for id, existing := range m.tenants {
		if id != t.ID && existing.Slug == t.Slug {
			return domain.ErrConflict
		}
	}
	cp := *t
	m.tenants[t.ID] = &cp
	return nil
}

func (m *mockStore) CreateBook(_ context.Context, b *book.Book) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.errCreateBook != nil {
		return m.errCreateBook
	}
	b.CreatedAt = time.Now()
	b.UpdatedAt = b.CreatedAt
	cp := *b
	m.books[b.ID] = &cp
	return nil
}

func (m *mockStore) GetBook(_ context.Context, id string) (*book.Book, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.books[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *b
	return &cp, nil
}

func (m *mockStore) booksForTenant(tenantID string) []book.Book {
	var out []book.Book
	for _, b := range m.books {
		if b.TenantID == tenantID {
			out = append(out, *b)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out
}

func (m *mockStore) ListBooks(_ context.Context, tenantID string, limit, offset int) ([]book.Book, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	all := m.booksForTenant(tenantID)
	if offset >= len(all) {
		return nil, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], nil
}

func (m *mockStore) ListAllBooks(_ context.Context, tenantID string) ([]book.Book, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.booksForTenant(tenantID), nil
}

func (m *mockStore) CountBooks(_ context.Context, tenantID string) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.booksForTenant(tenantID)), nil
}

func (m *mockStore) UpdateBookOwned(_ context.Context, tenantID string, b *book.Book) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.errUpdate != nil {
		return m.errUpdate
	}
	existing, ok := m.books[b.ID]
	if !ok || existing.TenantID != tenantID {
		return domain.ErrNotFound
	}
	cp := *b
	cp.TenantID = existing.TenantID
	m.books[b.ID] = &cp
	return nil
}

func (m *mockStore) DeleteBookOwned(_ context.Context, tenantID, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	existing, ok := m.books[id]
	if !ok || existing.TenantID != tenantID {
		return domain.ErrNotFound
	}
	delete(m.books, id)
	return nil
}

// mockCache is an in-memory cache.Cache that records deleted keys.
type mockCache struct {
	mu      sync.Mutex
	entries map[string][]byte
	deleted []string
}

func newMockCache() *mockCache {
	return &mockCache{entries: make(map[string][]byte)}
}

func (m *mockCache) Get(_ context.Context, key string) ([]byte, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.entries[key]
	return v, ok, nil
}

func (m *mockCache) Set(_ context.Context, key string, value []byte, _ time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[key] = value
	return nil
}

func (m *mockCache) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.entries, key)
	m.deleted = append(m.deleted, key)
	return nil
}
