package order

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/onlineshop/backend/internal/domain/shared"
)

// OrderStatus represents the status of an order
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "Pending"
	OrderStatusShipped   OrderStatus = "Shipped"
	OrderStatusDeclined  OrderStatus = "Declined"
	OrderStatusCancelled OrderStatus = "Cancelled"
	OrderStatusDelivered OrderStatus = "Delivered"
)

// IsValid checks if the status is a valid OrderStatus
func (s OrderStatus) IsValid() bool {
	switch s {
	case OrderStatusPending, OrderStatusShipped, OrderStatusDeclined, OrderStatusCancelled, OrderStatusDelivered:
		return true
	}
	return false
}

// String returns the string representation of OrderStatus
func (s OrderStatus) String() string {
	return string(s)
}

// CountsTowardSales reports whether orders in this status are included in
// sales totals and reports.
func (s OrderStatus) CountsTowardSales() bool {
	return s == OrderStatusShipped || s == OrderStatusDelivered
}

// Payment methods accepted at checkout
const (
	PaymentMethodCash   = "cash"
	PaymentMethodOnline = "online"
)

// ReviewAction is an admin decision on a pending order
type ReviewAction string

const (
	ReviewActionApprove ReviewAction = "approve"
	ReviewActionDecline ReviewAction = "decline"
)

// OrderItem is a line of an order. Name and price are snapshots taken at
// checkout; later product edits do not change them.
type OrderItem struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey"`
	OrderID     uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductID   uuid.UUID       `gorm:"type:uuid;not null"`
	ProductName string          `gorm:"type:varchar(200);not null"`
	Quantity    int             `gorm:"not null"`
	UnitPrice   decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	Amount      decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TableName returns the table name for GORM
func (OrderItem) TableName() string {
	return "order_items"
}

// NewOrderItem creates an order line from a checkout snapshot
func NewOrderItem(orderID, productID uuid.UUID, productName string, quantity int, unitPrice decimal.Decimal) (*OrderItem, error) {
	if productID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PRODUCT", "Product ID cannot be empty")
	}
	if quantity <= 0 {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}
	if unitPrice.IsNegative() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Unit price cannot be negative")
	}

	now := time.Now()
	return &OrderItem{
		ID:          uuid.New(),
		OrderID:     orderID,
		ProductID:   productID,
		ProductName: productName,
		Quantity:    quantity,
		UnitPrice:   unitPrice,
		Amount:      unitPrice.Mul(decimal.NewFromInt(int64(quantity))),
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

// Order is a customer order. TotalAmount is frozen at creation from the
// prices read at checkout.
type Order struct {
	shared.BaseEntity
	UserID        uuid.UUID       `gorm:"type:uuid;not null;index"`
	OrderDate     time.Time       `gorm:"not null;index"`
	TotalAmount   decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	PaymentMethod string          `gorm:"type:varchar(20);not null"`
	Status        OrderStatus     `gorm:"type:varchar(20);not null;default:'Pending';index"`
	AdminNote     *string         `gorm:"type:text"`
	ProofImage    *string         `gorm:"type:varchar(255)"`
	Items         []OrderItem     `gorm:"foreignKey:OrderID"`
}

// TableName returns the table name for GORM
func (Order) TableName() string {
	return "orders"
}

// Line is a (product, quantity, snapshot) tuple handed to NewOrder
type Line struct {
	ProductID   uuid.UUID
	ProductName string
	Quantity    int
	UnitPrice   decimal.Decimal
}

// NewOrder creates a pending order from checkout lines. The total is the
// sum of price times quantity over the lines, computed once here.
func NewOrder(userID uuid.UUID, paymentMethod string, lines []Line) (*Order, error) {
	if userID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_USER", "User ID cannot be empty")
	}
	if len(lines) == 0 {
		return nil, shared.ErrEmptyCart
	}

	o := &Order{
		BaseEntity:    shared.NewBaseEntity(),
		UserID:        userID,
		OrderDate:     time.Now(),
		TotalAmount:   decimal.Zero,
		PaymentMethod: paymentMethod,
		Status:        OrderStatusPending,
	}

	for _, line := range lines {
		item, err := NewOrderItem(o.ID, line.ProductID, line.ProductName, line.Quantity, line.UnitPrice)
		if err != nil {
			return nil, err
		}
		o.Items = append(o.Items, *item)
		o.TotalAmount = o.TotalAmount.Add(item.Amount)
	}

	return o, nil
}

// Cancel cancels the order on behalf of the requesting user. Only the
// owner can cancel, and only while the order is still pending; any
// other combination fails the same way.
func (o *Order) Cancel(requester uuid.UUID) error {
	if o.UserID != requester || o.Status != OrderStatusPending {
		return shared.ErrNotCancellable
	}
	o.Status = OrderStatusCancelled
	return nil
}

// Review applies an admin decision. Approve ships the order, decline
// declines it; the note is stored either way and may be empty. There is
// no guard against reviewing an already reviewed order: a second review
// overwrites the first.
func (o *Order) Review(action ReviewAction, note string) error {
	switch action {
	case ReviewActionApprove:
		o.Status = OrderStatusShipped
	case ReviewActionDecline:
		o.Status = OrderStatusDeclined
	default:
		return shared.NewDomainError("INVALID_ACTION", "Unknown review action")
	}
	o.AdminNote = &note
	return nil
}

// AttachProof records the stored payment proof reference
func (o *Order) AttachProof(image string) {
	o.ProofImage = &image
}

// RequiresPaymentProof reports whether the order was paid online and still
// needs a proof upload before review.
func (o *Order) RequiresPaymentProof() bool {
	return o.PaymentMethod == PaymentMethodOnline
}

// IsOwnedBy reports whether the order belongs to the given user
func (o *Order) IsOwnedBy(userID uuid.UUID) bool {
	return o.UserID == userID
}

// IsPending reports whether the order awaits review
func (o *Order) IsPending() bool {
	return o.Status == OrderStatusPending
}
