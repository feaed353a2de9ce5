package catalog

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/onlineshop/backend/internal/domain/shared"
)

func TestNewProduct(t *testing.T) {
	tests := []struct {
		name        string
		productName string
		price       decimal.Decimal
		stock       int
		wantErr     bool
	}{
		{
			name:        "valid product",
			productName: "Keyboard",
			price:       decimal.NewFromInt(120),
			stock:       5,
			wantErr:     false,
		},
		{
			name:        "empty name",
			productName: "  ",
			price:       decimal.NewFromInt(10),
			stock:       1,
			wantErr:     true,
		},
		{
			name:        "negative price",
			productName: "Keyboard",
			price:       decimal.NewFromInt(-1),
			stock:       1,
			wantErr:     true,
		},
		{
			name:        "negative stock",
			productName: "Keyboard",
			price:       decimal.NewFromInt(10),
			stock:       -1,
			wantErr:     true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			product, err := NewProduct(tt.productName, "desc", tt.price, tt.stock, nil)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, ProductStatusApproved, product.Status)
			assert.Nil(t, product.SuggestedBy)
			assert.False(t, product.IsSuggestion())
		})
	}
}

func TestNewSuggestedProduct(t *testing.T) {
	userID := uuid.New()

	product, err := NewSuggestedProduct("Lamp", "desk lamp", decimal.NewFromInt(30), 3, nil, userID)
	require.NoError(t, err)

	assert.Equal(t, ProductStatusPending, product.Status)
	assert.True(t, product.IsSuggestion())
	assert.True(t, product.IsSuggestedBy(userID))
	assert.False(t, product.IsSuggestedBy(uuid.New()))

	_, err = NewSuggestedProduct("Lamp", "desk lamp", decimal.NewFromInt(30), 3, nil, uuid.Nil)
	assert.Error(t, err)
}

func TestProductModeration(t *testing.T) {
	t.Run("approve clears decline reason", func(t *testing.T) {
		product := createTestSuggestion(t)
		require.NoError(t, product.Decline("bad photos"))
		require.Equal(t, ProductStatusDeclined, product.Status)
		require.NotNil(t, product.DeclineReason)

		product.Approve()

		assert.Equal(t, ProductStatusApproved, product.Status)
		assert.Nil(t, product.DeclineReason)
	})

	t.Run("decline requires a reason", func(t *testing.T) {
		product := createTestSuggestion(t)

		err := product.Decline("   ")

		assert.ErrorIs(t, err, shared.ErrMissingReason)
		assert.Equal(t, ProductStatusPending, product.Status)
	})

	t.Run("decline stores the reason", func(t *testing.T) {
		product := createTestSuggestion(t)

		require.NoError(t, product.Decline("duplicate listing"))

		assert.Equal(t, ProductStatusDeclined, product.Status)
		require.NotNil(t, product.DeclineReason)
		assert.Equal(t, "duplicate listing", *product.DeclineReason)
	})

	t.Run("resubmit keeps stale decline reason", func(t *testing.T) {
		product := createTestSuggestion(t)
		require.NoError(t, product.Decline("wrong category"))

		product.Resubmit()

		assert.Equal(t, ProductStatusPending, product.Status)
		require.NotNil(t, product.DeclineReason)
		assert.Equal(t, "wrong category", *product.DeclineReason)
	})
}

func TestProductIsAvailable(t *testing.T) {
	product, err := NewProduct("Mug", "", decimal.NewFromInt(8), 10, nil)
	require.NoError(t, err)
	assert.True(t, product.IsAvailable())

	product.Stock = 0
	assert.False(t, product.IsAvailable())

	product.Stock = 10
	product.Status = ProductStatusPending
	assert.False(t, product.IsAvailable())
}

func TestProductUpdate(t *testing.T) {
	product := createTestSuggestion(t)
	categoryID := uuid.New()

	err := product.Update("New name", "new desc", decimal.NewFromInt(42), 7, &categoryID)
	require.NoError(t, err)

	assert.Equal(t, "New name", product.Name)
	assert.Equal(t, 7, product.Stock)
	assert.True(t, product.Price.Equal(decimal.NewFromInt(42)))
	require.NotNil(t, product.CategoryID)
	assert.Equal(t, categoryID, *product.CategoryID)

	err = product.Update("", "new desc", decimal.NewFromInt(42), 7, nil)
	assert.Error(t, err)
}

func createTestSuggestion(t *testing.T) *Product {
	t.Helper()
	product, err := NewSuggestedProduct("Chair", "office chair", decimal.NewFromInt(75), 2, nil, uuid.New())
	require.NoError(t, err)
	return product
}
