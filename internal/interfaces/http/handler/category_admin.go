package handler

import (
	"github.com/gin-gonic/gin"

	catalogapp "github.com/onlineshop/backend/internal/application/catalog"
)

// CategoryAdminHandler handles admin category management. The public
// category list lives on CatalogHandler.
type CategoryAdminHandler struct {
	BaseHandler
	categoryService *catalogapp.CategoryService
}

// NewCategoryAdminHandler creates a new CategoryAdminHandler
func NewCategoryAdminHandler(categoryService *catalogapp.CategoryService) *CategoryAdminHandler {
	return &CategoryAdminHandler{categoryService: categoryService}
}

// Create handles POST /api/v1/admin/categories
func (h *CategoryAdminHandler) Create(c *gin.Context) {
	var req catalogapp.CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	category, err := h.categoryService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, category)
}

// Update handles PUT /api/v1/admin/categories/:id
func (h *CategoryAdminHandler) Update(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid category ID")
		return
	}

	var req catalogapp.UpdateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	category, err := h.categoryService.Update(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, category)
}

// Delete handles DELETE /api/v1/admin/categories/:id
func (h *CategoryAdminHandler) Delete(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid category ID")
		return
	}

	if err := h.categoryService.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
