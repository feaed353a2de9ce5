package order

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/onlineshop/backend/internal/domain/order"
)

// AddCartItemRequest adds a product to the cart
type AddCartItemRequest struct {
	ProductID uuid.UUID `json:"product_id" binding:"required"`
	Quantity  int       `json:"quantity"`
}

// UpdateCartItemRequest changes a cart line's quantity. Zero or negative
// removes the line.
type UpdateCartItemRequest struct {
	Quantity int `json:"quantity"`
}

// CartItemResponse is one cart line enriched with product details
type CartItemResponse struct {
	ProductID   uuid.UUID       `json:"product_id"`
	ProductName string          `json:"product_name"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Quantity    int             `json:"quantity"`
	Amount      decimal.Decimal `json:"amount"`
	Stock       int             `json:"stock"`
	Image       *string         `json:"image,omitempty"`
}

// CartResponse is the cart view: lines, the buy-now slot, and the grand
// total over the lines (the buy-now item is not part of the total).
type CartResponse struct {
	Items  []CartItemResponse `json:"items"`
	BuyNow *CartItemResponse  `json:"buy_now,omitempty"`
	Total  decimal.Decimal    `json:"total"`
}

// CheckoutRequest places an order from the cart or the buy-now slot
type CheckoutRequest struct {
	PaymentMethod string `json:"payment_method" binding:"required,oneof=cash online"`
	BuyNow        bool   `json:"buy_now"`
}

// ReviewOrderRequest is an admin decision on a pending order
type ReviewOrderRequest struct {
	Action string `json:"action" binding:"required,oneof=approve decline"`
	Note   string `json:"note"`
}

// OrderListFilter represents admin filter options for the order list
type OrderListFilter struct {
	Status   string     `form:"status" binding:"omitempty,oneof=Pending Shipped Declined Cancelled Delivered"`
	UserID   *uuid.UUID `form:"user_id"`
	Page     int        `form:"page" binding:"min=0"`
	PageSize int        `form:"page_size" binding:"min=0,max=100"`
	OrderBy  string     `form:"order_by"`
	OrderDir string     `form:"order_dir" binding:"omitempty,oneof=asc desc ASC DESC"`
}

// OrderItemResponse is one line of an order
type OrderItemResponse struct {
	ProductID   uuid.UUID       `json:"product_id"`
	ProductName string          `json:"product_name"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Amount      decimal.Decimal `json:"amount"`
}

// OrderResponse represents an order in API responses
type OrderResponse struct {
	ID            uuid.UUID           `json:"id"`
	UserID        uuid.UUID           `json:"user_id"`
	CustomerName  string              `json:"customer_name,omitempty"`
	OrderDate     time.Time           `json:"order_date"`
	TotalAmount   decimal.Decimal     `json:"total_amount"`
	PaymentMethod string              `json:"payment_method"`
	Status        string              `json:"status"`
	AdminNote     *string             `json:"admin_note,omitempty"`
	ProofImage    *string             `json:"proof_image,omitempty"`
	RequiresProof bool                `json:"requires_proof"`
	Items         []OrderItemResponse `json:"items"`
	CreatedAt     time.Time           `json:"created_at"`
}

// ToOrderResponse converts a domain Order to OrderResponse
func ToOrderResponse(o *order.Order) OrderResponse {
	items := make([]OrderItemResponse, 0, len(o.Items))
	for _, item := range o.Items {
		items = append(items, OrderItemResponse{
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
			Amount:      item.Amount,
		})
	}

	return OrderResponse{
		ID:            o.ID,
		UserID:        o.UserID,
		OrderDate:     o.OrderDate,
		TotalAmount:   o.TotalAmount,
		PaymentMethod: o.PaymentMethod,
		Status:        string(o.Status),
		AdminNote:     o.AdminNote,
		ProofImage:    o.ProofImage,
		RequiresProof: o.PaymentMethod == order.PaymentMethodOnline && o.ProofImage == nil,
		Items:         items,
		CreatedAt:     o.CreatedAt,
	}
}

// ToOrderResponses converts a slice of orders
func ToOrderResponses(orders []order.Order) []OrderResponse {
	responses := make([]OrderResponse, 0, len(orders))
	for i := range orders {
		responses = append(responses, ToOrderResponse(&orders[i]))
	}
	return responses
}
