package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	reportapp "github.com/onlineshop/backend/internal/application/report"
)

// ReportHandler handles the admin dashboard and sales reports
type ReportHandler struct {
	BaseHandler
	reportService *reportapp.Service
}

// NewReportHandler creates a new ReportHandler
func NewReportHandler(reportService *reportapp.Service) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

// Dashboard handles GET /api/v1/admin/dashboard?year=2026
func (h *ReportHandler) Dashboard(c *gin.Context) {
	year := 0
	if raw := c.Query("year"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			h.BadRequest(c, "Invalid year")
			return
		}
		year = parsed
	}

	dashboard, err := h.reportService.Dashboard(c.Request.Context(), year)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, dashboard)
}

// Sales handles GET /api/v1/admin/reports/sales?period=weekly
func (h *ReportHandler) Sales(c *gin.Context) {
	report, err := h.reportService.Sales(c.Request.Context(), c.Query("period"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, report)
}
