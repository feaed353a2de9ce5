package cart

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/onlineshop/backend/internal/domain/cart"
)

func TestMemoryStore_GetReturnsEmptyCart(t *testing.T) {
	store := NewMemoryStore()

	c, err := store.Get(context.Background(), uuid.New())

	require.NoError(t, err)
	assert.True(t, c.IsEmpty())
	assert.Nil(t, c.BuyNow)
}

func TestMemoryStore_SaveAndGet(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()
	userID := uuid.New()
	productID := uuid.New()

	c := cart.New()
	c.Add(productID, 2)
	c.SetBuyNow(productID)
	require.NoError(t, store.Save(ctx, userID, c))

	loaded, err := store.Get(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, 2, loaded.Items[productID])
	require.NotNil(t, loaded.BuyNow)
	assert.Equal(t, productID, loaded.BuyNow.ProductID)
}

func TestMemoryStore_GetIsolatesStoredState(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()
	userID := uuid.New()
	productID := uuid.New()

	c := cart.New()
	c.Add(productID, 1)
	require.NoError(t, store.Save(ctx, userID, c))

	loaded, err := store.Get(ctx, userID)
	require.NoError(t, err)
	loaded.Add(productID, 10)

	again, err := store.Get(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, 1, again.Items[productID])
}

func TestMemoryStore_Delete(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()
	userID := uuid.New()

	c := cart.New()
	c.Add(uuid.New(), 3)
	require.NoError(t, store.Save(ctx, userID, c))
	require.NoError(t, store.Delete(ctx, userID))

	loaded, err := store.Get(ctx, userID)
	require.NoError(t, err)
	assert.True(t, loaded.IsEmpty())
}

func TestMemoryStore_PerUserIsolation(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()
	alice, bob := uuid.New(), uuid.New()
	productID := uuid.New()

	c := cart.New()
	c.Add(productID, 5)
	require.NoError(t, store.Save(ctx, alice, c))

	bobCart, err := store.Get(ctx, bob)
	require.NoError(t, err)
	assert.True(t, bobCart.IsEmpty())
}
