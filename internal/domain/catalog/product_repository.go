package catalog

import (
	"context"

	"github.com/google/uuid"

	"github.com/onlineshop/backend/internal/domain/shared"
)

// SortDirection values accepted by the catalog listing sorts
const (
	SortLowHigh = "low_high"
	SortHighLow = "high_low"
)

// CatalogQuery holds the public catalog listing filters. PriceSort and
// StockSort each take "low_high" or "high_low"; when both are set the
// stock sort is applied last and wins.
type CatalogQuery struct {
	Search     string
	CategoryID *uuid.UUID
	PriceSort  string
	StockSort  string
}

// ProductRepository defines the interface for product persistence
type ProductRepository interface {
	// FindByID finds a product by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Product, error)

	// FindAvailable finds approved, in-stock products matching the catalog query
	FindAvailable(ctx context.Context, query CatalogQuery) ([]Product, error)

	// FindAll finds all products matching the filter
	FindAll(ctx context.Context, filter shared.Filter) ([]Product, error)

	// FindByStatus finds products in the given moderation status
	FindByStatus(ctx context.Context, status ProductStatus, filter shared.Filter) ([]Product, error)

	// FindBySuggestedBy finds the suggestions owned by a user
	FindBySuggestedBy(ctx context.Context, userID uuid.UUID) ([]Product, error)

	// Save creates or updates a product
	Save(ctx context.Context, product *Product) error

	// Delete deletes a product
	Delete(ctx context.Context, id uuid.UUID) error

	// Count counts products matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)
}
