package http

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

// memStore is an in-memory database.Store for handler tests.
type memStore struct {
	mu      sync.Mutex
	users   map[string]*user.User
	tenants map[string]*tenant.Tenant
	books   map[string]*book.Book
	seq     int
}

func newMemStore() *memStore {
	return &memStore{
		users:   make(map[string]*user.User),
		tenants: make(map[string]*tenant.Tenant),
		books:   make(map[string]*book.Book),
	}
}

// stamp hands out strictly increasing timestamps so newest-first ordering
// is deterministic even within one test run.
func (m *memStore) stamp() time.Time {
	m.seq++
	return time.Unix(0, int64(m.seq)*int64(time.Millisecond))
}

func (m *memStore) CreateUser(_ context.Context, u *user.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, e := range m.users {
		if e.Email == u.Email {
			return domain.ErrConflict
		}
	}
	cp := *u
	m.users[u.ID] = &cp
	return nil
}

func (m *memStore) GetUser(_ context.Context, id string) (*user.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (m *memStore) GetUserByEmail(_ context.Context, email string) (*user.User, error) {
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

func (m *memStore) UpdateUser(_ context.Context, u *user.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.users[u.ID]; !ok {
		return domain.ErrNotFound
	}
	cp := *u
	m.users[u.ID] = &cp
	return nil
}

func (m *memStore) ListUsers(_ context.Context, tenantID string) ([]user.User, error) {
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

func (m *memStore) CreateTenant(_ context.Context, t *tenant.Tenant) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, e := range m.tenants {
		if e.Slug == t.Slug {
			return domain.ErrConflict
		}
	}
	t.CreatedAt = m.stamp()
	t.UpdatedAt = t.CreatedAt
	cp := *t
	m.tenants[t.ID] = &cp
	return nil
}

func (m *memStore) GetTenant(_ context.Context, id string) (*tenant.Tenant, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	t, ok := m.tenants[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *t
	return &cp, nil
}

func (m *memStore) GetTenantBySlug(_ context.Context, slug string) (*tenant.Tenant, error) {
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

func (m *memStore) GetTenantByName(_ context.Context, name string) (*tenant.Tenant, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, t := range m.tenants {
		if t.StoreName == name {
			cp := *t
			return &cp, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *memStore) ListTenants(_ context.Context) ([]tenant.Tenant, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []tenant.Tenant
	for _, t := range m.tenants {
		out = append(out, *t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (m *memStore) UpdateTenant(_ context.Context, t *tenant.Tenant) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.tenants[t.ID]; !ok {
		return domain.ErrNotFound
	}
	for id, e := range m.tenants {
		if id != t.ID && e.Slug == t.Slug {
			return domain.ErrConflict
		}
	}
	cp := *t
	m.tenants[t.ID] = &cp
	return nil
}

func (m *memStore) CreateBook(_ context.Context, b *book.Book) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	b.CreatedAt = m.stamp()
	b.UpdatedAt = b.CreatedAt
	cp := *b
	m.books[b.ID] = &cp
	return nil
}

func (m *memStore) GetBook(_ context.Context, id string) (*book.Book, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.books[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *b
	return &cp, nil
}

func (m *memStore) tenantBooks(tenantID string) []book.Book {
	var out []book.Book
	for _, b := range m.books {
		if b.TenantID == tenantID {
			out = append(out, *b)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out
}

func (m *memStore) ListBooks(_ context.Context, tenantID string, limit, offset int) ([]book.Book, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	all := m.tenantBooks(tenantID)
	if offset >= len(all) {
		return nil, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], nil
}

func (m *memStore) ListAllBooks(_ context.Context, tenantID string) ([]book.Book, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.tenantBooks(tenantID), nil
}

func (m *memStore) CountBooks(_ context.Context, tenantID string) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.tenantBooks(tenantID)), nil
}

func (m *memStore) UpdateBookOwned(_ context.Context, tenantID string, b *book.Book) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.books[b.ID]
	if !ok || e.TenantID != tenantID {
		return domain.ErrNotFound
	}
	cp := *b
	cp.TenantID = e.TenantID
	m.books[b.ID] = &cp
	return nil
}

func (m *memStore) DeleteBookOwned(_ context.Context, tenantID, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.books[id]
	if !ok || e.TenantID != tenantID {
		return domain.ErrNotFound
	}
	delete(m.books, id)
	return nil
}

// memCache is an in-memory cache.Cache.
type memCache struct {
	mu      sync.Mutex
	entries map[string][]byte
}

func newMemCache() *memCache {
	return &memCache{entries: make(map[string][]byte)}
}

func (m *memCache) Get(_ context.Context, key string) ([]byte, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.entries[key]
	return v, ok, nil
}

func (m *memCache) Set(_ context.Context, key string, value []byte, _ time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[key] = value
	return nil
}

func (m *memCache) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.entries, key)
	return nil
}
