package cart

import (
	"context"

	"github.com/google/uuid"
)

// BuyNowItem is the single-product fast checkout slot. It always holds
// quantity one and is overwritten by each buy-now request.
type BuyNowItem struct {
	ProductID uuid.UUID `json:"product_id"`
	Quantity  int       `json:"quantity"`
}

// Cart is a user's session cart: product quantities plus the buy-now
// slot. Totals are not stored here; they are recomputed from live
// product prices at view time.
type Cart struct {
	Items  map[uuid.UUID]int `json:"items"`
	BuyNow *BuyNowItem       `json:"buy_now,omitempty"`
}

// New returns an empty cart
func New() *Cart {
	return &Cart{Items: make(map[uuid.UUID]int)}
}

// Add increments a product's quantity by the given amount (at least one)
func (c *Cart) Add(productID uuid.UUID, quantity int) {
	if quantity < 1 {
		quantity = 1
	}
	if c.Items == nil {
		c.Items = make(map[uuid.UUID]int)
	}
	c.Items[productID] += quantity
}

// SetQuantity sets a product's quantity. Zero or less removes the line.
func (c *Cart) SetQuantity(productID uuid.UUID, quantity int) {
	if quantity <= 0 {
		delete(c.Items, productID)
		return
	}
	if c.Items == nil {
		c.Items = make(map[uuid.UUID]int)
	}
	c.Items[productID] = quantity
}

// Remove drops a product from the cart
func (c *Cart) Remove(productID uuid.UUID) {
	delete(c.Items, productID)
}

// IsEmpty reports whether the cart holds no lines
func (c *Cart) IsEmpty() bool {
	return len(c.Items) == 0
}

// ClearItems empties the cart lines, leaving the buy-now slot alone
func (c *Cart) ClearItems() {
	c.Items = make(map[uuid.UUID]int)
}

// SetBuyNow overwrites the buy-now slot with the given product
func (c *Cart) SetBuyNow(productID uuid.UUID) {
	c.BuyNow = &BuyNowItem{ProductID: productID, Quantity: 1}
}

// ClearBuyNow empties the buy-now slot
func (c *Cart) ClearBuyNow() {
	c.BuyNow = nil
}

// Store persists per-user carts. Implementations exist for in-process
// memory and for Redis.
type Store interface {
	// Get loads a user's cart, returning an empty cart if none is stored
	Get(ctx context.Context, userID uuid.UUID) (*Cart, error)

	// Save stores a user's cart
	Save(ctx context.Context, userID uuid.UUID, c *Cart) error

	// Delete removes a user's cart entirely
	Delete(ctx context.Context, userID uuid.UUID) error
}
