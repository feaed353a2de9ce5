package handler

import (
	"github.com/gin-gonic/gin"

	catalogapp "github.com/onlineshop/backend/internal/application/catalog"
)

// CatalogHandler handles the public storefront endpoints
type CatalogHandler struct {
	BaseHandler
	productService  *catalogapp.ProductService
	categoryService *catalogapp.CategoryService
}

// NewCatalogHandler creates a new CatalogHandler
func NewCatalogHandler(productService *catalogapp.ProductService, categoryService *catalogapp.CategoryService) *CatalogHandler {
	return &CatalogHandler{
		productService:  productService,
		categoryService: categoryService,
	}
}

// ListProducts handles GET /api/v1/catalog/products
func (h *CatalogHandler) ListProducts(c *gin.Context) {
	var filter catalogapp.CatalogFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	products, err := h.productService.Browse(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, products)
}

// GetProduct handles GET /api/v1/catalog/products/:id
func (h *CatalogHandler) GetProduct(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid product ID")
		return
	}

	product, err := h.productService.Get(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, product)
}

// ListCategories handles GET /api/v1/catalog/categories
func (h *CatalogHandler) ListCategories(c *gin.Context) {
	categories, err := h.categoryService.List(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, categories)
}
