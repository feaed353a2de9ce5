package handler

import (
	"github.com/gin-gonic/gin"

	orderapp "github.com/onlineshop/backend/internal/application/order"
)

// OrderAdminHandler handles admin order management
type OrderAdminHandler struct {
	BaseHandler
	orderService *orderapp.OrderService
}

// NewOrderAdminHandler creates a new OrderAdminHandler
func NewOrderAdminHandler(orderService *orderapp.OrderService) *OrderAdminHandler {
	return &OrderAdminHandler{orderService: orderService}
}

// List handles GET /api/v1/admin/orders
func (h *OrderAdminHandler) List(c *gin.Context) {
	var filter orderapp.OrderListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	orders, total, err := h.orderService.List(c.Request.Context(), filter)
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
	h.SuccessWithMeta(c, orders, total, page, pageSize)
}

// Get handles GET /api/v1/admin/orders/:id
func (h *OrderAdminHandler) Get(c *gin.Context) {
	orderID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid order ID")
		return
	}

	order, err := h.orderService.GetAny(c.Request.Context(), orderID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, order)
}

// Review handles POST /api/v1/admin/orders/:id/review
func (h *OrderAdminHandler) Review(c *gin.Context) {
	orderID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid order ID")
		return
	}

	var req orderapp.ReviewOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	order, err := h.orderService.Review(c.Request.Context(), orderID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, order)
}
