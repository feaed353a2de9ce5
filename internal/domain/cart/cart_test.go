package cart

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestCartAdd(t *testing.T) {
	c := New()
	productID := uuid.New()

	c.Add(productID, 1)
	c.Add(productID, 1)
	assert.Equal(t, 2, c.Items[productID])

	// non-positive quantity defaults to one
	c.Add(productID, 0)
	assert.Equal(t, 3, c.Items[productID])
}

func TestCartSetQuantity(t *testing.T) {
	c := New()
	productID := uuid.New()

	c.SetQuantity(productID, 5)
	assert.Equal(t, 5, c.Items[productID])

	c.SetQuantity(productID, 0)
	_, ok := c.Items[productID]
	assert.False(t, ok)

	c.SetQuantity(productID, -3)
	assert.True(t, c.IsEmpty())
}

func TestCartClearItemsKeepsBuyNow(t *testing.T) {
	c := New()
	c.Add(uuid.New(), 2)
	c.SetBuyNow(uuid.New())

	c.ClearItems()

	assert.True(t, c.IsEmpty())
	assert.NotNil(t, c.BuyNow)
}

func TestCartBuyNowSlot(t *testing.T) {
	c := New()
	first := uuid.New()
	second := uuid.New()

	c.SetBuyNow(first)
	c.SetBuyNow(second)

	// each buy-now overwrites the slot and quantity stays one
	assert.Equal(t, second, c.BuyNow.ProductID)
	assert.Equal(t, 1, c.BuyNow.Quantity)

	c.ClearBuyNow()
	assert.Nil(t, c.BuyNow)
}
