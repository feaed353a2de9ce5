package catalog

import (
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/onlineshop/backend/internal/domain/shared"
)

// ProductStatus represents the moderation status of a product
type ProductStatus string

const (
	ProductStatusPending  ProductStatus = "pending"
	ProductStatusApproved ProductStatus = "approved"
	ProductStatusDeclined ProductStatus = "declined"
)

// IsValid checks if the status is a valid ProductStatus
func (s ProductStatus) IsValid() bool {
	switch s {
	case ProductStatusPending, ProductStatusApproved, ProductStatusDeclined:
		return true
	}
	return false
}

// String returns the string representation of ProductStatus
func (s ProductStatus) String() string {
	return string(s)
}

// Product is a catalog product. Admin-created products start approved;
// customer suggestions start pending and carry the suggesting user's ID.
type Product struct {
	shared.BaseEntity
	Name          string          `gorm:"type:varchar(200);not null"`
	Description   string          `gorm:"type:text"`
	Price         decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	Stock         int             `gorm:"not null;default:0"`
	CategoryID    *uuid.UUID      `gorm:"type:uuid;index"`
	Status        ProductStatus   `gorm:"type:varchar(20);not null;default:'pending';index"`
	DeclineReason *string         `gorm:"type:text"`
	SuggestedBy   *uuid.UUID      `gorm:"type:uuid;index"`
	Image         *string         `gorm:"type:varchar(255)"`
}

// TableName returns the table name for GORM
func (Product) TableName() string {
	return "products"
}

// NewProduct creates an admin-created product, which is approved immediately
func NewProduct(name, description string, price decimal.Decimal, stock int, categoryID *uuid.UUID) (*Product, error) {
	if err := validateProduct(name, price, stock); err != nil {
		return nil, err
	}

	return &Product{
		BaseEntity:  shared.NewBaseEntity(),
		Name:        name,
		Description: description,
		Price:       price,
		Stock:       stock,
		CategoryID:  categoryID,
		Status:      ProductStatusApproved,
	}, nil
}

// NewSuggestedProduct creates a customer suggestion awaiting moderation
func NewSuggestedProduct(name, description string, price decimal.Decimal, stock int, categoryID *uuid.UUID, suggestedBy uuid.UUID) (*Product, error) {
	if err := validateProduct(name, price, stock); err != nil {
		return nil, err
	}
	if suggestedBy == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_USER", "Suggesting user ID cannot be empty")
	}

	return &Product{
		BaseEntity:  shared.NewBaseEntity(),
		Name:        name,
		Description: description,
		Price:       price,
		Stock:       stock,
		CategoryID:  categoryID,
		Status:      ProductStatusPending,
		SuggestedBy: &suggestedBy,
	}, nil
}

func validateProduct(name string, price decimal.Decimal, stock int) error {
	if strings.TrimSpace(name) == "" {
		return shared.NewDomainError("INVALID_NAME", "Product name cannot be empty")
	}
	if price.IsNegative() {
		return shared.NewDomainError("INVALID_PRICE", "Price cannot be negative")
	}
	if stock < 0 {
		return shared.NewDomainError("INVALID_STOCK", "Stock cannot be negative")
	}
	return nil
}

// Approve marks the product approved and clears any prior decline reason
func (p *Product) Approve() {
	p.Status = ProductStatusApproved
	p.DeclineReason = nil
}

// Decline marks the product declined. The reason is mandatory.
func (p *Product) Decline(reason string) error {
	if strings.TrimSpace(reason) == "" {
		return shared.ErrMissingReason
	}
	p.Status = ProductStatusDeclined
	p.DeclineReason = &reason
	return nil
}

// Resubmit puts an edited suggestion back into the moderation queue.
// A previous decline reason is kept until an admin acts on it again.
func (p *Product) Resubmit() {
	p.Status = ProductStatusPending
}

// Update replaces the editable fields of the product
func (p *Product) Update(name, description string, price decimal.Decimal, stock int, categoryID *uuid.UUID) error {
	if err := validateProduct(name, price, stock); err != nil {
		return err
	}
	p.Name = name
	p.Description = description
	p.Price = price
	p.Stock = stock
	p.CategoryID = categoryID
	return nil
}

// SetImage replaces the stored image reference
func (p *Product) SetImage(image string) {
	p.Image = &image
}

// IsAvailable reports whether the product can appear in the public catalog
func (p *Product) IsAvailable() bool {
	return p.Status == ProductStatusApproved && p.Stock > 0
}

// IsSuggestion reports whether the product came from a customer suggestion
func (p *Product) IsSuggestion() bool {
	return p.SuggestedBy != nil
}

// IsSuggestedBy reports whether the given user owns this suggestion
func (p *Product) IsSuggestedBy(userID uuid.UUID) bool {
	return p.SuggestedBy != nil && *p.SuggestedBy == userID
}
