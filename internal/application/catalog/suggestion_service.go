package catalog

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/onlineshop/backend/internal/domain/catalog"
	"github.com/onlineshop/backend/internal/domain/shared"
)

// SuggestionService handles the customer product suggestion workflow:
// customers propose products, admins approve or decline them, declined
// suggestions can be resubmitted by their owner.
type SuggestionService struct {
	productRepo catalog.ProductRepository
	images      ImageStore
}

// NewSuggestionService creates a new SuggestionService
func NewSuggestionService(productRepo catalog.ProductRepository, images ImageStore) *SuggestionService {
	return &SuggestionService{productRepo: productRepo, images: images}
}

// Suggest creates a pending product on behalf of a customer
func (s *SuggestionService) Suggest(ctx context.Context, userID uuid.UUID, req SuggestProductRequest) (*ProductResponse, error) {
	product, err := catalog.NewSuggestedProduct(req.Name, req.Description, req.Price, req.Stock, req.CategoryID, userID)
	if err != nil {
		return nil, err
	}
	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}

	resp := ToProductResponse(product)
	return &resp, nil
}

// AttachImage stores an uploaded image for a suggestion. Only the
// suggesting customer may attach one.
func (s *SuggestionService) AttachImage(ctx context.Context, userID, productID uuid.UUID, filename string, content io.Reader) (*ProductResponse, error) {
	product, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if !product.IsSuggestedBy(userID) {
		return nil, shared.ErrNotOwner
	}

	stored, err := s.images.Save(ctx, suggestionImageKey(filename), content)
	if err != nil {
		return nil, fmt.Errorf("failed to store suggestion image: %w", err)
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

// ListMine returns all suggestions made by the given customer, whatever
// their current status.
func (s *SuggestionService) ListMine(ctx context.Context, userID uuid.UUID) ([]ProductResponse, error) {
	products, err := s.productRepo.FindBySuggestedBy(ctx, userID)
	if err != nil {
		return nil, err
	}
	return ToProductResponses(products), nil
}

// ListPending returns suggestions awaiting moderation, oldest first
func (s *SuggestionService) ListPending(ctx context.Context) ([]ProductResponse, error) {
	filter := shared.DefaultFilter()
	filter.PageSize = 100
	filter.OrderDir = "asc"

	products, err := s.productRepo.FindByStatus(ctx, catalog.ProductStatusPending, filter)
	if err != nil {
		return nil, err
	}
	return ToProductResponses(products), nil
}

// Approve publishes a suggestion to the catalog and clears any previous
// decline reason.
func (s *SuggestionService) Approve(ctx context.Context, productID uuid.UUID) (*ProductResponse, error) {
	product, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}

	product.Approve()
	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}

	resp := ToProductResponse(product)
	return &resp, nil
}

// Decline rejects a suggestion with a mandatory reason
func (s *SuggestionService) Decline(ctx context.Context, productID uuid.UUID, reason string) (*ProductResponse, error) {
	product, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}

	if err := product.Decline(reason); err != nil {
		return nil, err
	}
	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}

	resp := ToProductResponse(product)
	return &resp, nil
}

// Update lets the suggesting customer edit their suggestion. Any edit
// puts the suggestion back into review, whatever its prior status. A
// previous decline reason is not cleared; it stays until the next
// moderation decision.
func (s *SuggestionService) Update(ctx context.Context, userID, productID uuid.UUID, req SuggestProductRequest) (*ProductResponse, error) {
	product, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if !product.IsSuggestedBy(userID) {
		return nil, shared.ErrNotOwner
	}

	if err := product.Update(req.Name, req.Description, req.Price, req.Stock, req.CategoryID); err != nil {
		return nil, err
	}
	product.Resubmit()
	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}

	resp := ToProductResponse(product)
	return &resp, nil
}

// Delete removes a customer's own suggestion and its stored image
func (s *SuggestionService) Delete(ctx context.Context, userID, productID uuid.UUID) error {
	product, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		return err
	}
	if !product.IsSuggestedBy(userID) {
		return shared.ErrNotOwner
	}

	if err := s.productRepo.Delete(ctx, productID); err != nil {
		return err
	}
	if product.Image != nil {
		// The row is gone; a leftover file is not worth failing over.
		_ = s.images.Delete(ctx, *product.Image)
	}
	return nil
}

// Resubmit moves a customer's declined suggestion back into review
func (s *SuggestionService) Resubmit(ctx context.Context, userID, productID uuid.UUID) (*ProductResponse, error) {
	product, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if !product.IsSuggestedBy(userID) {
		return nil, shared.ErrNotOwner
	}

	product.Resubmit()
	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}

	resp := ToProductResponse(product)
	return &resp, nil
}

// suggestionImageKey builds a unique file name for a suggestion image
func suggestionImageKey(filename string) string {
	return fmt.Sprintf("prod_sugg_%d_%s", time.Now().Unix(), filepath.Base(filename))
}
