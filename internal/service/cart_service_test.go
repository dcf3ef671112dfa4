package service

import (
	"context"
	"sort"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"market/internal/domain"
	"market/internal/repository"
)

type mockCatalogRepo struct {
	products map[int64]domain.Product
	err      error
}

func (m *mockCatalogRepo) ListProducts(context.Context) ([]domain.Product, error) {
	if m.err != nil {
		return nil, m.err
	}
	out := make([]domain.Product, 0, len(m.products))
	for _, p := range m.products {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *mockCatalogRepo) GetProduct(_ context.Context, id int64) (*domain.Product, error) {
	if m.err != nil {
		return nil, m.err
	}
	p, ok := m.products[id]
	if !ok {
		return nil, repository.ErrProductNotFound
	}
	return &p, nil
}

func (m *mockCatalogRepo) SeedProducts(context.Context) error { return m.err }

type mockCartRepo struct {
	mu      sync.Mutex
	catalog *mockCatalogRepo
	qty     map[int64]int
	err     error
}

func (m *mockCartRepo) AddItem(_ context.Context, productID int64, qty int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.qty[productID] += qty
	return nil
}

func (m *mockCartRepo) CartItems(context.Context) ([]domain.LineItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	items := make([]domain.LineItem, 0, len(m.qty))
	for id, q := range m.qty {
		p := m.catalog.products[id]
		items = append(items, domain.LineItem{
			ProductID: id,
			Name:      p.Name,
			Price:     p.Price,
			Qty:       q,
			Subtotal:  p.Price * float64(q),
		})
	}
	sort.Slice(items, func(i, j int) bool { return items[i].ProductID < items[j].ProductID })
	return items, nil
}

func (m *mockCartRepo) Checkout(ctx context.Context) (float64, error) {
	items, err := m.CartItems(ctx)
	if err != nil {
		return 0, err
	}
	m.mu.Lock()
	m.qty = map[int64]int{}
	m.mu.Unlock()
	return repository.SumItems(items), nil
}

func (m *mockCartRepo) ClearCart(context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.qty = map[int64]int{}
	return m.err
}

func newTestService() (*CartService, *mockCartRepo) {
	catalog := &mockCatalogRepo{products: map[int64]domain.Product{
		1: {ID: 1, Name: "Apple", Price: 0.50},
		2: {ID: 2, Name: "Bread", Price: 1.20},
	}}
	repo := &mockCartRepo{catalog: catalog, qty: map[int64]int{}}
	return NewCartService(repo, catalog), repo
}

func TestAdd_ZeroQuantity(t *testing.T) {
	svc, repo := newTestService()

	_, err := svc.Add(context.Background(), 1, 0)

	assert.ErrorIs(t, err, ErrInvalidQuantity)
	assert.Empty(t, repo.qty, "rejected add must not mutate the ledger")
}

func TestAdd_NegativeQuantity(t *testing.T) {
	svc, repo := newTestService()

	_, err := svc.Add(context.Background(), 1, -1)

	assert.ErrorIs(t, err, ErrInvalidQuantity)
	assert.Empty(t, repo.qty)
}

func TestAdd_UnknownProduct(t *testing.T) {
	svc, repo := newTestService()

	_, err := svc.Add(context.Background(), 42, 1)

	assert.ErrorIs(t, err, repository.ErrProductNotFound)
	assert.Empty(t, repo.qty)
}

func TestAdd_ReturnsUpdatedCart(t *testing.T) {
	svc, _ := newTestService()

	cart, err := svc.Add(context.Background(), 1, 2)

	require.NoError(t, err)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, 2, cart.Items[0].Qty)
	assert.InDelta(t, 1.00, cart.Total, 1e-9)
}

func TestView_EmptyLedger(t *testing.T) {
	svc, _ := newTestService()

	cart, err := svc.View(context.Background())

	require.NoError(t, err)
	assert.NotNil(t, cart.Items)
	assert.Empty(t, cart.Items)
	assert.Zero(t, cart.Total)
}

func TestCheckout_Scenario(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	cart, err := svc.Add(ctx, 1, 2)
	require.NoError(t, err)
	assert.InDelta(t, 1.00, cart.Total, 1e-9)

	cart, err = svc.Add(ctx, 2, 1)
	require.NoError(t, err)
	assert.InDelta(t, 2.20, cart.Total, 1e-9)

	result, err := svc.Checkout(ctx)
	require.NoError(t, err)
	assert.InDelta(t, 2.20, result.Total, 1e-9)
	assert.Equal(t, "Purchase completed", result.Message)

	cart, err = svc.View(ctx)
	require.NoError(t, err)
	assert.Empty(t, cart.Items)
	assert.Zero(t, cart.Total)
}

func TestClear_EmptiesLedger(t *testing.T) {
	svc, repo := newTestService()
	ctx := context.Background()

	_, err := svc.Add(ctx, 1, 3)
	require.NoError(t, err)

	require.NoError(t, svc.Clear(ctx))
	assert.Empty(t, repo.qty)
}

func TestCheckout_EmptyCart(t *testing.T) {
	svc, _ := newTestService()

	result, err := svc.Checkout(context.Background())

	require.NoError(t, err)
	assert.Zero(t, result.Total)
	assert.Equal(t, "Purchase completed", result.Message)
}
