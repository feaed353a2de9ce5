package order

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/onlineshop/backend/internal/domain/cart"
	"github.com/onlineshop/backend/internal/domain/catalog"
	"github.com/onlineshop/backend/internal/domain/identity"
	"github.com/onlineshop/backend/internal/domain/order"
	"github.com/onlineshop/backend/internal/domain/shared"
)

// ProofStore persists payment proof uploads. Implemented by the storage
// infrastructure (local disk or S3).
type ProofStore interface {
	Save(ctx context.Context, key string, content io.Reader) (string, error)
	Delete(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
}

// OrderService handles checkout, order history, cancellation, payment
// proofs, and admin order review.
type OrderService struct {
	orderRepo   order.OrderRepository
	productRepo catalog.ProductRepository
	userRepo    identity.UserRepository
	carts       cart.Store
	proofs      ProofStore
}

// NewOrderService creates a new OrderService
func NewOrderService(
	orderRepo order.OrderRepository,
	productRepo catalog.ProductRepository,
	userRepo identity.UserRepository,
	carts cart.Store,
	proofs ProofStore,
) *OrderService {
	return &OrderService{
		orderRepo:   orderRepo,
		productRepo: productRepo,
		userRepo:    userRepo,
		carts:       carts,
		proofs:      proofs,
	}
}

// Checkout places an order for the user. With BuyNow set it orders the
// single product in the buy-now slot, re-checking that the product is
// still available; otherwise it orders the cart contents as-is. Prices
// are frozen into the order lines at this point. The source (cart lines
// or the slot) is cleared only after the order is stored.
func (s *OrderService) Checkout(ctx context.Context, userID uuid.UUID, req CheckoutRequest) (*OrderResponse, error) {
	c, err := s.carts.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	var lines []order.Line
	if req.BuyNow {
		lines, err = s.buyNowLines(ctx, c)
	} else {
		lines, err = s.cartLines(ctx, c)
	}
	if err != nil {
		return nil, err
	}

	o, err := order.NewOrder(userID, req.PaymentMethod, lines)
	if err != nil {
		return nil, err
	}
	if err := s.orderRepo.Create(ctx, o); err != nil {
		return nil, err
	}

	if req.BuyNow {
		c.ClearBuyNow()
	} else {
		c.ClearItems()
	}
	if err := s.carts.Save(ctx, userID, c); err != nil {
		return nil, err
	}

	resp := ToOrderResponse(o)
	return &resp, nil
}

// buyNowLines builds the single checkout line from the buy-now slot.
// Availability was already checked when the slot was filled; like the
// cart path, the commit itself does not re-verify, so a product that
// sold out in between is still ordered.
func (s *OrderService) buyNowLines(ctx context.Context, c *cart.Cart) ([]order.Line, error) {
	if c.BuyNow == nil {
		return nil, shared.ErrEmptyCart
	}

	product, err := s.productRepo.FindByID(ctx, c.BuyNow.ProductID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.ErrProductUnavailable
		}
		return nil, err
	}

	return []order.Line{{
		ProductID:   product.ID,
		ProductName: product.Name,
		Quantity:    c.BuyNow.Quantity,
		UnitPrice:   product.Price,
	}}, nil
}

// cartLines builds checkout lines from the cart. Availability is not
// re-checked here; the stock decrement happens unconditionally when the
// order is stored.
func (s *OrderService) cartLines(ctx context.Context, c *cart.Cart) ([]order.Line, error) {
	if c.IsEmpty() {
		return nil, shared.ErrEmptyCart
	}

	lines := make([]order.Line, 0, len(c.Items))
	for productID, quantity := range c.Items {
		product, err := s.productRepo.FindByID(ctx, productID)
		if err != nil {
			return nil, err
		}
		lines = append(lines, order.Line{
			ProductID:   product.ID,
			ProductName: product.Name,
			Quantity:    quantity,
			UnitPrice:   product.Price,
		})
	}
	return lines, nil
}

// ListMine returns the user's orders, newest first
func (s *OrderService) ListMine(ctx context.Context, userID uuid.UUID) ([]OrderResponse, error) {
	orders, err := s.orderRepo.FindByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return ToOrderResponses(orders), nil
}

// Get returns one of the user's orders. Orders belonging to someone else
// come back as not found rather than leaking their existence.
func (s *OrderService) Get(ctx context.Context, userID, orderID uuid.UUID) (*OrderResponse, error) {
	o, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if !o.IsOwnedBy(userID) {
		return nil, shared.ErrNotFound
	}

	resp := ToOrderResponse(o)
	return &resp, nil
}

// Cancel cancels one of the user's pending orders and restores the stock
// its lines had taken.
func (s *OrderService) Cancel(ctx context.Context, userID, orderID uuid.UUID) (*OrderResponse, error) {
	o, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if err := o.Cancel(userID); err != nil {
		return nil, err
	}
	if err := s.orderRepo.SaveWithStockRestore(ctx, o); err != nil {
		return nil, err
	}

	resp := ToOrderResponse(o)
	return &resp, nil
}

// AttachPaymentProof stores an uploaded payment proof for one of the
// user's orders and links it to the order.
func (s *OrderService) AttachPaymentProof(ctx context.Context, userID, orderID uuid.UUID, filename string, content io.Reader) (*OrderResponse, error) {
	o, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if !o.IsOwnedBy(userID) {
		return nil, shared.ErrNotOwner
	}

	stored, err := s.proofs.Save(ctx, proofKey(orderID, filename), content)
	if err != nil {
		return nil, fmt.Errorf("failed to store payment proof: %w", err)
	}

	o.AttachProof(stored)
	if err := s.orderRepo.Save(ctx, o); err != nil {
		return nil, err
	}

	resp := ToOrderResponse(o)
	return &resp, nil
}

// List returns orders for the admin dashboard
func (s *OrderService) List(ctx context.Context, filter OrderListFilter) ([]OrderResponse, int64, error) {
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
	if filter.Status != "" {
		domainFilter.Filters["status"] = filter.Status
	}
	if filter.UserID != nil {
		domainFilter.Filters["user_id"] = *filter.UserID
	}

	orders, err := s.orderRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.orderRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	responses := ToOrderResponses(orders)
	s.fillCustomerNames(ctx, responses)
	return responses, total, nil
}

// fillCustomerNames resolves user IDs to display names for the admin
// list. A user that no longer resolves just leaves the name empty.
func (s *OrderService) fillCustomerNames(ctx context.Context, responses []OrderResponse) {
	names := make(map[uuid.UUID]string)
	for i := range responses {
		userID := responses[i].UserID
		name, ok := names[userID]
		if !ok {
			if user, err := s.userRepo.FindByID(ctx, userID); err == nil {
				name = user.Name
			}
			names[userID] = name
		}
		responses[i].CustomerName = name
	}
}

// GetAny returns any order by ID, for admins
func (s *OrderService) GetAny(ctx context.Context, orderID uuid.UUID) (*OrderResponse, error) {
	o, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	resp := ToOrderResponse(o)
	return &resp, nil
}

// Review applies an admin decision to an order: approve ships it,
// decline declines it. The note is stored either way, and a later review
// overwrites an earlier one.
func (s *OrderService) Review(ctx context.Context, orderID uuid.UUID, req ReviewOrderRequest) (*OrderResponse, error) {
	o, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if err := o.Review(order.ReviewAction(req.Action), req.Note); err != nil {
		return nil, err
	}
	if err := s.orderRepo.Save(ctx, o); err != nil {
		return nil, err
	}

	resp := ToOrderResponse(o)
	return &resp, nil
}

// proofKey builds the stored file name for a payment proof
func proofKey(orderID uuid.UUID, filename string) string {
	return fmt.Sprintf("proof_%s_%s", orderID, filepath.Base(filename))
}
