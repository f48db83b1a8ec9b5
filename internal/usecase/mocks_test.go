package usecase

import (
	"context"
	"sync"

	"github.com/velorahq/velora/internal/domain"
)

// mockCartRepo keeps carts in memory keyed by owner token.
type mockCartRepo struct {
	mu        sync.RWMutex
	carts     map[string]*domain.Cart
	findErr   error
	createErr error
	writeErr  error

	replaceCalls int
}

func newMockCartRepo() *mockCartRepo {
	return &mockCartRepo{carts: make(map[string]*domain.Cart)}
}

func (m *mockCartRepo) FindByOwner(_ context.Context, owner string) (*domain.Cart, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.findErr != nil {
		return nil, m.findErr
	}
	c, ok := m.carts[owner]
	if !ok {
		return nil, domain.ErrCartNotFound
	}
	cp := *c
	cp.Items = append([]domain.CartItem(nil), c.Items...)
	return &cp, nil
}

func (m *mockCartRepo) Create(_ context.Context, c *domain.Cart) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.createErr != nil {
		return m.createErr
	}
	m.carts[c.DeviceIdentifier] = c
	return nil
}

func (m *mockCartRepo) ReplaceItems(_ context.Context, cartID string, items []domain.CartItem) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.replaceCalls++
	if m.writeErr != nil {
		return m.writeErr
	}
	for _, c := range m.carts {
		if c.ID == cartID {
			c.Items = items
			return nil
		}
	}
	return domain.ErrCartNotFound
}

// mockCatalogRepo answers existence probes from fixed id sets.
type mockCatalogRepo struct {
	mu       sync.RWMutex
	products map[string]*domain.Product
	upsells  map[string]*domain.Upsell
	probeErr error
}

func newMockCatalogRepo() *mockCatalogRepo {
	return &mockCatalogRepo{
		products: make(map[string]*domain.Product),
		upsells:  make(map[string]*domain.Upsell),
	}
}

func (m *mockCatalogRepo) FindProduct(_ context.Context, id string) (*domain.Product, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	p, ok := m.products[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return p, nil
}

func (m *mockCatalogRepo) ProductExists(_ context.Context, id string) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.probeErr != nil {
		return false, m.probeErr
	}
	_, ok := m.products[id]
	return ok, nil
}

func (m *mockCatalogRepo) ListProducts(_ context.Context, _ domain.ProductFilter) ([]domain.Product, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]domain.Product, 0, len(m.products))
	for _, p := range m.products {
		out = append(out, *p)
	}
	return out, nil
}

func (m *mockCatalogRepo) SaveProduct(_ context.Context, p *domain.Product) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.products[p.ID] = p
	return nil
}

func (m *mockCatalogRepo) FindUpsell(_ context.Context, id string) (*domain.Upsell, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	u, ok := m.upsells[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return u, nil
}

func (m *mockCatalogRepo) UpsellExists(_ context.Context, id string) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.probeErr != nil {
		return false, m.probeErr
	}
	_, ok := m.upsells[id]
	return ok, nil
}

func (m *mockCatalogRepo) ListUpsells(_ context.Context) ([]domain.Upsell, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]domain.Upsell, 0, len(m.upsells))
	for _, u := range m.upsells {
		out = append(out, *u)
	}
	return out, nil
}

func (m *mockCatalogRepo) SaveUpsell(_ context.Context, u *domain.Upsell) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.upsells[u.ID] = u
	return nil
}

// mockStorefrontRepo backs the singleton and collection operations.
type mockStorefrontRepo struct {
	mu          sync.RWMutex
	categories  *domain.StoreCategories
	hero        *domain.PageHero
	collections map[string]*domain.Collection
	saveErr     error
}

func newMockStorefrontRepo() *mockStorefrontRepo {
	return &mockStorefrontRepo{collections: make(map[string]*domain.Collection)}
}

func (m *mockStorefrontRepo) GetCategories(_ context.Context) (*domain.StoreCategories, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.categories == nil {
		return nil, domain.ErrNotFound
	}
	return m.categories, nil
}

func (m *mockStorefrontRepo) SaveCategories(_ context.Context, sc *domain.StoreCategories) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.saveErr != nil {
		return m.saveErr
	}
	m.categories = sc
	return nil
}

func (m *mockStorefrontRepo) GetPageHero(_ context.Context) (*domain.PageHero, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.hero == nil {
		return nil, domain.ErrNotFound
	}
	return m.hero, nil
}

func (m *mockStorefrontRepo) SavePageHero(_ context.Context, h *domain.PageHero) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.saveErr != nil {
		return m.saveErr
	}
	m.hero = h
	return nil
}

func (m *mockStorefrontRepo) ListCollections(_ context.Context) ([]domain.Collection, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]domain.Collection, 0, len(m.collections))
	for _, c := range m.collections {
		out = append(out, *c)
	}
	return out, nil
}

func (m *mockStorefrontRepo) FindCollection(_ context.Context, id string) (*domain.Collection, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	c, ok := m.collections[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *c
	return &cp, nil
}

func (m *mockStorefrontRepo) SaveCollection(_ context.Context, c *domain.Collection) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.saveErr != nil {
		return m.saveErr
	}
	m.collections[c.ID] = c
	return nil
}

func (m *mockStorefrontRepo) DeleteCollection(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.collections[id]; !ok {
		return domain.ErrNotFound
	}
	delete(m.collections, id)
	return nil
}

func (m *mockStorefrontRepo) CountCollections(_ context.Context) (int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return int64(len(m.collections)), nil
}

// recordingRefresher captures invalidated paths.
type recordingRefresher struct {
	mu    sync.Mutex
	paths []string
}

func (r *recordingRefresher) Refresh(_ context.Context, paths ...string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.paths = append(r.paths, paths...)
}

func (r *recordingRefresher) seen() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.paths...)
}
