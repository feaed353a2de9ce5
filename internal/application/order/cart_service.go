// Package order contains application services for carts, checkout, and
// order management.
package order

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/onlineshop/backend/internal/domain/cart"
	"github.com/onlineshop/backend/internal/domain/catalog"
	"github.com/onlineshop/backend/internal/domain/shared"
)

// CartService manages per-user shopping carts and the buy-now slot
type CartService struct {
	carts       cart.Store
	productRepo catalog.ProductRepository
}

// NewCartService creates a new CartService
func NewCartService(carts cart.Store, productRepo catalog.ProductRepository) *CartService {
	return &CartService{carts: carts, productRepo: productRepo}
}

// Get returns the user's cart enriched with current product details.
// Lines whose product no longer exists are dropped from the view.
func (s *CartService) Get(ctx context.Context, userID uuid.UUID) (*CartResponse, error) {
	c, err := s.carts.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.toCartResponse(ctx, c)
}

// Add puts a product in the user's cart, incrementing the quantity if it
// is already there.
func (s *CartService) Add(ctx context.Context, userID uuid.UUID, req AddCartItemRequest) (*CartResponse, error) {
	if _, err := s.productRepo.FindByID(ctx, req.ProductID); err != nil {
		return nil, err
	}

	c, err := s.carts.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	c.Add(req.ProductID, req.Quantity)
	if err := s.carts.Save(ctx, userID, c); err != nil {
		return nil, err
	}
	return s.toCartResponse(ctx, c)
}

// SetQuantity sets a cart line's quantity; zero or less removes the line
func (s *CartService) SetQuantity(ctx context.Context, userID, productID uuid.UUID, quantity int) (*CartResponse, error) {
	c, err := s.carts.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	c.SetQuantity(productID, quantity)
	if err := s.carts.Save(ctx, userID, c); err != nil {
		return nil, err
	}
	return s.toCartResponse(ctx, c)
}

// Remove takes a product out of the user's cart
func (s *CartService) Remove(ctx context.Context, userID, productID uuid.UUID) (*CartResponse, error) {
	c, err := s.carts.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	c.Remove(productID)
	if err := s.carts.Save(ctx, userID, c); err != nil {
		return nil, err
	}
	return s.toCartResponse(ctx, c)
}

// Clear empties the user's cart lines, leaving the buy-now slot alone
func (s *CartService) Clear(ctx context.Context, userID uuid.UUID) error {
	c, err := s.carts.Get(ctx, userID)
	if err != nil {
		return err
	}
	c.ClearItems()
	return s.carts.Save(ctx, userID, c)
}

// SetBuyNow places a product in the buy-now slot, replacing whatever was
// there. The slot always holds quantity one. Availability is checked
// here, when the slot is filled; checkout itself does not re-verify.
func (s *CartService) SetBuyNow(ctx context.Context, userID, productID uuid.UUID) (*CartResponse, error) {
	product, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.ErrProductUnavailable
		}
		return nil, err
	}
	if !product.IsAvailable() {
		return nil, shared.ErrProductUnavailable
	}

	c, err := s.carts.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	c.SetBuyNow(productID)
	if err := s.carts.Save(ctx, userID, c); err != nil {
		return nil, err
	}
	return s.toCartResponse(ctx, c)
}

func (s *CartService) toCartResponse(ctx context.Context, c *cart.Cart) (*CartResponse, error) {
	resp := &CartResponse{
		Items: make([]CartItemResponse, 0, len(c.Items)),
		Total: decimal.Zero,
	}

	for productID, quantity := range c.Items {
		product, err := s.productRepo.FindByID(ctx, productID)
		if err != nil {
			continue
		}
		amount := product.Price.Mul(decimal.NewFromInt(int64(quantity)))
		resp.Items = append(resp.Items, CartItemResponse{
			ProductID:   product.ID,
			ProductName: product.Name,
			UnitPrice:   product.Price,
			Quantity:    quantity,
			Amount:      amount,
			Stock:       product.Stock,
			Image:       product.Image,
		})
		resp.Total = resp.Total.Add(amount)
	}

	if c.BuyNow != nil {
		if product, err := s.productRepo.FindByID(ctx, c.BuyNow.ProductID); err == nil {
			resp.BuyNow = &CartItemResponse{
				ProductID:   product.ID,
				ProductName: product.Name,
				UnitPrice:   product.Price,
				Quantity:    c.BuyNow.Quantity,
				Amount:      product.Price.Mul(decimal.NewFromInt(int64(c.BuyNow.Quantity))),
				Stock:       product.Stock,
				Image:       product.Image,
			}
		}
	}

	return resp, nil
}
