package handler

import (
	"github.com/gin-gonic/gin"

	identityapp "github.com/onlineshop/backend/internal/application/identity"
)

// UserAdminHandler handles admin management of customer accounts
type UserAdminHandler struct {
	BaseHandler
	userService *identityapp.UserService
}

// NewUserAdminHandler creates a new UserAdminHandler
func NewUserAdminHandler(userService *identityapp.UserService) *UserAdminHandler {
	return &UserAdminHandler{userService: userService}
}

// List handles GET /api/v1/admin/users
func (h *UserAdminHandler) List(c *gin.Context) {
	var filter identityapp.UserListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	users, total, err := h.userService.List(c.Request.Context(), filter)
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
	h.SuccessWithMeta(c, users, total, page, pageSize)
}

// Get handles GET /api/v1/admin/users/:id
func (h *UserAdminHandler) Get(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid user ID")
		return
	}

	user, err := h.userService.Get(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, user)
}

// ToggleActive handles POST /api/v1/admin/users/:id/toggle
func (h *UserAdminHandler) ToggleActive(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid user ID")
		return
	}

	user, err := h.userService.ToggleActive(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, user)
}

// ResetPassword handles POST /api/v1/admin/users/:id/reset-password
func (h *UserAdminHandler) ResetPassword(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid user ID")
		return
	}

	if err := h.userService.ResetPassword(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
