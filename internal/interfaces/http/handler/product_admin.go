package handler

import (
	"github.com/gin-gonic/gin"

	catalogapp "github.com/onlineshop/backend/internal/application/catalog"
)

// ProductAdminHandler handles admin product and suggestion moderation
// endpoints.
type ProductAdminHandler struct {
	BaseHandler
	productService    *catalogapp.ProductService
	suggestionService *catalogapp.SuggestionService
}

// NewProductAdminHandler creates a new ProductAdminHandler
func NewProductAdminHandler(productService *catalogapp.ProductService, suggestionService *catalogapp.SuggestionService) *ProductAdminHandler {
	return &ProductAdminHandler{
		productService:    productService,
		suggestionService: suggestionService,
	}
}

// List handles GET /api/v1/admin/products
func (h *ProductAdminHandler) List(c *gin.Context) {
	var filter catalogapp.ProductListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	products, total, err := h.productService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	page, pageSize := filter.Page, filter.PageSize
	if page == 0 {
		page = 1
	}
	if pageSize == 0 {
		pageSize = 20
	}
	h.SuccessWithMeta(c, products, total, page, pageSize)
}

// Create handles POST /api/v1/admin/products
func (h *ProductAdminHandler) Create(c *gin.Context) {
	var req catalogapp.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	product, err := h.productService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, product)
}

// Update handles PUT /api/v1/admin/products/:id
func (h *ProductAdminHandler) Update(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid product ID")
		return
	}

	var req catalogapp.UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	product, err := h.productService.Update(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, product)
}

// Delete handles DELETE /api/v1/admin/products/:id
func (h *ProductAdminHandler) Delete(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid product ID")
		return
	}

	if err := h.productService.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// UploadImage handles POST /api/v1/admin/products/:id/image
func (h *ProductAdminHandler) UploadImage(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid product ID")
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		h.BadRequest(c, "An image file is required")
		return
	}
	if fileHeader.Size > maxImageSize {
		h.BadRequest(c, "Image is too large")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		h.HandleError(c, err)
		return
	}
	defer file.Close()

	product, err := h.productService.AttachImage(c.Request.Context(), id, fileHeader.Filename, file)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, product)
}

// ListSuggestions handles GET /api/v1/admin/suggestions
func (h *ProductAdminHandler) ListSuggestions(c *gin.Context) {
	suggestions, err := h.suggestionService.ListPending(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, suggestions)
}

// ApproveSuggestion handles POST /api/v1/admin/suggestions/:id/approve
func (h *ProductAdminHandler) ApproveSuggestion(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid suggestion ID")
		return
	}

	suggestion, err := h.suggestionService.Approve(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, suggestion)
}

// DeclineSuggestion handles POST /api/v1/admin/suggestions/:id/decline
func (h *ProductAdminHandler) DeclineSuggestion(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid suggestion ID")
		return
	}

	var req catalogapp.DeclineSuggestionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	suggestion, err := h.suggestionService.Decline(c.Request.Context(), id, req.Reason)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, suggestion)
}
