package order

import (
	"context"

	"github.com/google/uuid"

	"github.com/onlineshop/backend/internal/domain/shared"
)

// OrderRepository defines the interface for order persistence. Creation
// and cancellation carry their stock side effects in the same database
// transaction as the status change.
type OrderRepository interface {
	// FindByID finds an order with its items
	FindByID(ctx context.Context, id uuid.UUID) (*Order, error)

	// FindByUser finds a user's orders with items, newest first
	FindByUser(ctx context.Context, userID uuid.UUID) ([]Order, error)

	// FindAll finds all orders matching the filter, newest first
	FindAll(ctx context.Context, filter shared.Filter) ([]Order, error)

	// Create inserts the order and its items and decrements each line's
	// product stock atomically, all in one transaction. Stock is not
	// re-checked here; the decrement may drive it negative.
	Create(ctx context.Context, o *Order) error

	// Save updates an existing order
	Save(ctx context.Context, o *Order) error

	// SaveWithStockRestore updates the order and increments each line's
	// product stock in one transaction. Used by cancellation.
	SaveWithStockRestore(ctx context.Context, o *Order) error

	// Count counts orders matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)
}
