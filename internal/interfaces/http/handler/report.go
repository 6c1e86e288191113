package handler

import (
	"strconv"
	"time"

	appreport "github.com/commerce/backend/internal/application/report"
	"github.com/commerce/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const defaultTopLimit = 10

// ReportHandler serves reporting endpoints
type ReportHandler struct {
	BaseHandler
	reports *appreport.ReportService
}

// NewReportHandler creates a report handler
func NewReportHandler(reports *appreport.ReportService, logger *zap.Logger) *ReportHandler {
	return &ReportHandler{BaseHandler: NewBaseHandler(logger), reports: reports}
}

// parseDateRange reads optional from/to query parameters in YYYY-MM-DD
// form. Zero times mean "use the default window".
func (h *ReportHandler) parseDateRange(c *gin.Context) (time.Time, time.Time, bool) {
	var from, to time.Time
	var err error
	if raw := c.Query("from"); raw != "" {
		if from, err = time.Parse("2006-01-02", raw); err != nil {
			c.JSON(400, dto.Fail(dto.CodeValidation, "Invalid from date, expected YYYY-MM-DD"))
			return time.Time{}, time.Time{}, false
		}
	}
	if raw := c.Query("to"); raw != "" {
		if to, err = time.Parse("2006-01-02", raw); err != nil {
			c.JSON(400, dto.Fail(dto.CodeValidation, "Invalid to date, expected YYYY-MM-DD"))
			return time.Time{}, time.Time{}, false
		}
	}
	return from, to, true
}

func (h *ReportHandler) parseLimit(c *gin.Context) int {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(defaultTopLimit)))
	if err != nil || limit < 1 || limit > 100 {
		return defaultTopLimit
	}
	return limit
}

// SalesSummary handles GET /reports/sales/summary
func (h *ReportHandler) SalesSummary(c *gin.Context) {
	from, to, ok := h.parseDateRange(c)
	if !ok {
		return
	}

	result, err := h.reports.SalesSummary(c.Request.Context(), h.TenantID(c), from, to)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.OK(c, result)
}

// DailySales handles GET /reports/sales/daily
func (h *ReportHandler) DailySales(c *gin.Context) {
	from, to, ok := h.parseDateRange(c)
	if !ok {
		return
	}

	result, err := h.reports.DailySales(c.Request.Context(), h.TenantID(c), from, to)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.OK(c, result)
}

// TopProducts handles GET /reports/products/top
func (h *ReportHandler) TopProducts(c *gin.Context) {
	from, to, ok := h.parseDateRange(c)
	if !ok {
		return
	}

	result, err := h.reports.TopProducts(c.Request.Context(), h.TenantID(c), from, to, h.parseLimit(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.OK(c, result)
}

// TopCustomers handles GET /reports/customers/top
func (h *ReportHandler) TopCustomers(c *gin.Context) {
	from, to, ok := h.parseDateRange(c)
	if !ok {
		return
	}

	result, err := h.reports.TopCustomers(c.Request.Context(), h.TenantID(c), from, to, h.parseLimit(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.OK(c, result)
}

// CategorySales handles GET /reports/sales/categories
func (h *ReportHandler) CategorySales(c *gin.Context) {
	from, to, ok := h.parseDateRange(c)
	if !ok {
		return
	}

	result, err := h.reports.CategorySales(c.Request.Context(), h.TenantID(c), from, to)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.OK(c, result)
}

// StatusBreakdown handles GET /reports/orders/status
func (h *ReportHandler) StatusBreakdown(c *gin.Context) {
	result, err := h.reports.StatusBreakdown(c.Request.Context(), h.TenantID(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.OK(c, result)
}

// InventorySummary handles GET /reports/inventory/summary
func (h *ReportHandler) InventorySummary(c *gin.Context) {
	result, err := h.reports.InventorySummary(c.Request.Context(), h.TenantID(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.OK(c, result)
}

// LowStock handles GET /reports/inventory/low-stock
func (h *ReportHandler) LowStock(c *gin.Context) {
	result, err := h.reports.LowStock(c.Request.Context(), h.TenantID(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.OK(c, result)
}
