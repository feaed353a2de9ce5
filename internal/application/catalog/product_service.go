// Package catalog contains application services for the product catalog:
// storefront browsing, admin product management, categories, and
// customer product suggestions.
package catalog

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/onlineshop/backend/internal/domain/catalog"
	"github.com/onlineshop/backend/internal/domain/shared"
)

// ImageStore persists product images. Implemented by the storage
// infrastructure (local disk or S3).
type ImageStore interface {
	Save(ctx context.Context, key string, content io.Reader) (string, error)
	Delete(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
}

// ProductService handles storefront browsing and admin product management
type ProductService struct {
	productRepo  catalog.ProductRepository
	categoryRepo catalog.CategoryRepository
	images       ImageStore
}

// NewProductService creates a new ProductService
func NewProductService(
	productRepo catalog.ProductRepository,
	categoryRepo catalog.CategoryRepository,
	images ImageStore,
) *ProductService {
	return &ProductService{
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
		images:       images,
	}
}

// Browse returns the storefront catalog: approved, in-stock products
// matching the filter. When both price and stock sorts are requested the
// stock sort takes precedence.
func (s *ProductService) Browse(ctx context.Context, filter CatalogFilter) ([]ProductResponse, error) {
	products, err := s.productRepo.FindAvailable(ctx, catalog.CatalogQuery{
		Search:     filter.Search,
		CategoryID: filter.CategoryID,
		PriceSort:  filter.PriceSort,
		StockSort:  filter.StockSort,
	})
	if err != nil {
		return nil, err
	}
	return ToProductResponses(products), nil
}

// Get returns a single product by ID
func (s *ProductService) Get(ctx context.Context, id uuid.UUID) (*ProductResponse, error) {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := ToProductResponse(product)
	return &resp, nil
}

// List returns products for the admin dashboard, with pagination and
// status/category filters.
func (s *ProductService) List(ctx context.Context, filter ProductListFilter) ([]ProductResponse, int64, error) {
	domainFilter := shared.DefaultFilter()
	if filter.Page > 0 {
		domainFilter.Page = filter.Page
	}
	if filter.PageSize > 0 {
		domainFilter.PageSize = filter.PageSize
	}
	if filter.OrderBy != "" {
		domainFilter.OrderBy = filter.OrderBy
	}
	if filter.OrderDir != "" {
		domainFilter.OrderDir = filter.OrderDir
	}
	domainFilter.Search = filter.Search
	if filter.Status != "" {
		domainFilter.Filters["status"] = filter.Status
	}
	if filter.CategoryID != nil {
		domainFilter.Filters["category_id"] = *filter.CategoryID
	}

	products, err := s.productRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.productRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	return ToProductResponses(products), total, nil
}

// Create creates a new, immediately approved product
func (s *ProductService) Create(ctx context.Context, req CreateProductRequest) (*ProductResponse, error) {
	if err := s.validateCategory(ctx, req.CategoryID); err != nil {
		return nil, err
	}

	product, err := catalog.NewProduct(req.Name, req.Description, req.Price, req.Stock, req.CategoryID)
	if err != nil {
		return nil, err
	}

	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}

	resp := ToProductResponse(product)
	return &resp, nil
}

// Update modifies an existing product's details
func (s *ProductService) Update(ctx context.Context, id uuid.UUID, req UpdateProductRequest) (*ProductResponse, error) {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	name := product.Name
	description := product.Description
	price := product.Price
	stock := product.Stock
	categoryID := product.CategoryID

	if req.Name != nil {
		name = *req.Name
	}
	if req.Description != nil {
		description = *req.Description
	}
	if req.Price != nil {
		price = *req.Price
	}
	if req.Stock != nil {
		stock = *req.Stock
	}
	if req.CategoryID != nil {
		if err := s.validateCategory(ctx, req.CategoryID); err != nil {
			return nil, err
		}
		categoryID = req.CategoryID
	}

	if err := product.Update(name, description, price, stock, categoryID); err != nil {
		return nil, err
	}
	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}

	resp := ToProductResponse(product)
	return &resp, nil
}

// Delete removes a product and its stored image
func (s *ProductService) Delete(ctx context.Context, id uuid.UUID) error {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.productRepo.Delete(ctx, id); err != nil {
		return err
	}

	if product.Image != nil && s.images != nil {
		if err := s.images.Delete(ctx, *product.Image); err != nil {
			// The product row is already gone; an orphaned file is not
			// worth failing the request over.
			return nil
		}
	}
	return nil
}

// AttachImage stores an uploaded image and links it to the product,
// replacing any previous image.
func (s *ProductService) AttachImage(ctx context.Context, id uuid.UUID, filename string, content io.Reader) (*ProductResponse, error) {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	stored, err := s.images.Save(ctx, productImageKey(filename), content)
	if err != nil {
		return nil, fmt.Errorf("failed to store product image: %w", err)
	}

	old := product.Image
	product.SetImage(stored)
	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}
	if old != nil && *old != stored {
		_ = s.images.Delete(ctx, *old)
	}

	resp := ToProductResponse(product)
	return &resp, nil
}

func (s *ProductService) validateCategory(ctx context.Context, categoryID *uuid.UUID) error {
	if categoryID == nil {
		return nil
	}
	if _, err := s.categoryRepo.FindByID(ctx, *categoryID); err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return shared.NewDomainError("INVALID_CATEGORY", "Category not found")
		}
		return err
	}
	return nil
}

// productImageKey builds a unique file name for a product image upload
func productImageKey(filename string) string {
	return fmt.Sprintf("prod_%d_%s", time.Now().Unix(), filepath.Base(filename))
}
