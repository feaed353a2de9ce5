package order

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/onlineshop/backend/internal/domain/catalog"
	"github.com/onlineshop/backend/internal/domain/shared"
)

func TestCartService_SetBuyNow(t *testing.T) {
	t.Run("an available product fills the slot", func(t *testing.T) {
		productRepo := new(MockProductRepository)
		carts := newStubCartStore()
		service := NewCartService(carts, productRepo)

		userID := uuid.New()
		mug := newTestProduct(t, "Mug", 8, 10)
		productRepo.On("FindByID", mock.Anything, mug.ID).Return(mug, nil)

		resp, err := service.SetBuyNow(context.Background(), userID, mug.ID)

		require.NoError(t, err)
		require.NotNil(t, resp.BuyNow)
		assert.Equal(t, mug.ID, resp.BuyNow.ProductID)
		assert.Equal(t, 1, resp.BuyNow.Quantity)
	})

	t.Run("a sold-out product is rejected and the slot stays empty", func(t *testing.T) {
		productRepo := new(MockProductRepository)
		carts := newStubCartStore()
		service := NewCartService(carts, productRepo)

		userID := uuid.New()
		soldOut := newTestProduct(t, "Poster", 15, 0)
		productRepo.On("FindByID", mock.Anything, soldOut.ID).Return(soldOut, nil)

		_, err := service.SetBuyNow(context.Background(), userID, soldOut.ID)

		assert.ErrorIs(t, err, shared.ErrProductUnavailable)

		c, err := carts.Get(context.Background(), userID)
		require.NoError(t, err)
		assert.Nil(t, c.BuyNow)
	})

	t.Run("an unapproved product is rejected", func(t *testing.T) {
		productRepo := new(MockProductRepository)
		service := NewCartService(newStubCartStore(), productRepo)

		declined := newTestProduct(t, "Keyboard", 120, 5)
		declined.Status = catalog.ProductStatusDeclined
		productRepo.On("FindByID", mock.Anything, declined.ID).Return(declined, nil)

		_, err := service.SetBuyNow(context.Background(), uuid.New(), declined.ID)

		assert.ErrorIs(t, err, shared.ErrProductUnavailable)
	})

	t.Run("an unknown product is rejected", func(t *testing.T) {
		productRepo := new(MockProductRepository)
		service := NewCartService(newStubCartStore(), productRepo)

		gone := uuid.New()
		productRepo.On("FindByID", mock.Anything, gone).Return(nil, shared.ErrNotFound)

		_, err := service.SetBuyNow(context.Background(), uuid.New(), gone)

		assert.ErrorIs(t, err, shared.ErrProductUnavailable)
	})
}
