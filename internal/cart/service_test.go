package cart_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vasiliy-maslov/storefront/internal/cart"
	"github.com/vasiliy-maslov/storefront/internal/catalog"
)

type mockCartRepository struct {
	loadFunc   func(ctx context.Context, sessionID string) (*cart.Cart, error)
	saveFunc   func(ctx context.Context, sessionID string, c *cart.Cart) error
	deleteFunc func(ctx context.Context, sessionID string) error
}

func (m *mockCartRepository) Load(ctx context.Context, sessionID string) (*cart.Cart, error) {
	return m.loadFunc(ctx, sessionID)
}

func (m *mockCartRepository) Save(ctx context.Context, sessionID string, c *cart.Cart) error {
	return m.saveFunc(ctx, sessionID, c)
}

func (m *mockCartRepository) Delete(ctx context.Context, sessionID string) error {
	return m.deleteFunc(ctx, sessionID)
}

func newInMemoryRepo() *mockCartRepository {
	store := make(map[string]cart.Cart)
	return &mockCartRepository{
		loadFunc: func(ctx context.Context, sessionID string) (*cart.Cart, error) {
			c := store[sessionID]
			return &c, nil
		},
		saveFunc: func(ctx context.Context, sessionID string, c *cart.Cart) error {
			store[sessionID] = *c
			return nil
		},
		deleteFunc: func(ctx context.Context, sessionID string) error {
			delete(store, sessionID)
			return nil
		},
	}
}

func TestCartService_AddItem(t *testing.T) {
	cat, err := catalog.Load()
	require.NoError(t, err)

	svc := cart.NewService(newInMemoryRepo(), cat)

	updated, err := svc.AddItem(context.Background(), "session-1", 1, 2, cart.UnitKg)
	require.NoError(t, err)
	require.Len(t, updated.Items, 1)
	assert.Equal(t, 2, updated.Items[0].Quantity)

	// Adding the same (id, unit) again merges; every mutation persists, so a
	// fresh Get observes the merged line.
	_, err = svc.AddItem(context.Background(), "session-1", 1, 1, cart.UnitKg)
	require.NoError(t, err)

	reloaded, err := svc.Get(context.Background(), "session-1")
	require.NoError(t, err)
	require.Len(t, reloaded.Items, 1)
	assert.Equal(t, 3, reloaded.Items[0].Quantity)
}

func TestCartService_AddItem_UnknownProduct(t *testing.T) {
	cat, err := catalog.Load()
	require.NoError(t, err)

	svc := cart.NewService(newInMemoryRepo(), cat)

	_, err = svc.AddItem(context.Background(), "session-1", 99999, 1, cart.UnitKg)
	assert.ErrorIs(t, err, catalog.ErrProductNotFound)
}

func TestCartService_AddItem_SnapshotsCatalogPrice(t *testing.T) {
	cat, err := catalog.Load()
	require.NoError(t, err)

	svc := cart.NewService(newInMemoryRepo(), cat)

	updated, err := svc.AddItem(context.Background(), "session-1", 1, 1, cart.UnitPcs)
	require.NoError(t, err)

	product, err := cat.ByID(1)
	require.NoError(t, err)
	assert.Equal(t, product.Price, updated.Items[0].Price)
	assert.Equal(t, product.Title, updated.Items[0].Title)
}

func TestCartService_PersistenceFailurePropagates(t *testing.T) {
	cat, err := catalog.Load()
	require.NoError(t, err)

	repoErr := errors.New("redis down")
	repo := newInMemoryRepo()
	repo.saveFunc = func(ctx context.Context, sessionID string, c *cart.Cart) error {
		return repoErr
	}

	svc := cart.NewService(repo, cat)

	_, err = svc.AddItem(context.Background(), "session-1", 1, 1, cart.UnitKg)
	assert.ErrorIs(t, err, repoErr)
}

func TestCartService_RemoveAndClear(t *testing.T) {
	cat, err := catalog.Load()
	require.NoError(t, err)

	svc := cart.NewService(newInMemoryRepo(), cat)

	_, err = svc.AddItem(context.Background(), "session-1", 1, 1, cart.UnitKg)
	require.NoError(t, err)
	_, err = svc.AddItem(context.Background(), "session-1", 1, 1, cart.UnitPcs)
	require.NoError(t, err)
	_, err = svc.AddItem(context.Background(), "session-1", 2, 1, cart.UnitPcs)
	require.NoError(t, err)

	updated, err := svc.RemoveProduct(context.Background(), "session-1", 1)
	require.NoError(t, err)
	require.Len(t, updated.Items, 1)
	assert.Equal(t, 2, updated.Items[0].ProductID)

	require.NoError(t, svc.Clear(context.Background(), "session-1"))

	reloaded, err := svc.Get(context.Background(), "session-1")
	require.NoError(t, err)
	assert.True(t, reloaded.IsEmpty())
}
