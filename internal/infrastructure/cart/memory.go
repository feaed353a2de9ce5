package cart

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/onlineshop/backend/internal/domain/cart"
)

// MemoryStore is an in-process cart store. Suitable for single-instance
// deployments and tests; carts do not survive a restart.
type MemoryStore struct {
	mu    sync.RWMutex
	carts map[uuid.UUID]*cart.Cart
}

// NewMemoryStore creates a new in-memory cart store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{carts: make(map[uuid.UUID]*cart.Cart)}
}

// Get loads a user's cart, returning an empty cart if none is stored
func (s *MemoryStore) Get(ctx context.Context, userID uuid.UUID) (*cart.Cart, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stored, ok := s.carts[userID]
	if !ok {
		return cart.New(), nil
	}
	return cloneCart(stored), nil
}

// Save stores a user's cart
func (s *MemoryStore) Save(ctx context.Context, userID uuid.UUID, c *cart.Cart) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.carts[userID] = cloneCart(c)
	return nil
}

// Delete removes a user's cart entirely
func (s *MemoryStore) Delete(ctx context.Context, userID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.carts, userID)
	return nil
}

// cloneCart copies a cart so callers cannot mutate stored state
func cloneCart(c *cart.Cart) *cart.Cart {
	clone := cart.New()
	for id, qty := range c.Items {
		clone.Items[id] = qty
	}
	if c.BuyNow != nil {
		buyNow := *c.BuyNow
		clone.BuyNow = &buyNow
	}
	return clone
}

// Ensure MemoryStore implements cart.Store
var _ cart.Store = (*MemoryStore)(nil)
