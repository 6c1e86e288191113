package handler

import (
	appinventory "github.com/commerce/backend/internal/application/inventory"
	"github.com/commerce/backend/internal/domain/inventory"
	"github.com/commerce/backend/internal/domain/shared"
	"github.com/commerce/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AdjustStockRequest changes a product's stock level
type AdjustStockRequest struct {
	Mode     string `json:"mode" binding:"required,oneof=set add remove"`
	Quantity int    `json:"quantity" binding:"min=0"`
	Notes    string `json:"notes" binding:"omitempty,max=500"`
}

// InventoryHandler serves stock adjustment and ledger endpoints
type InventoryHandler struct {
	BaseHandler
	stock *appinventory.StockService
}

// NewInventoryHandler creates an inventory handler
func NewInventoryHandler(stock *appinventory.StockService, logger *zap.Logger) *InventoryHandler {
	return &InventoryHandler{BaseHandler: NewBaseHandler(logger), stock: stock}
}

// Adjust handles POST /inventory/products/:id/adjust
func (h *InventoryHandler) Adjust(c *gin.Context) {
	productID, ok := h.ParseUUIDParam(c, "id")
	if !ok {
		return
	}
	var req AdjustStockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err)
		return
	}

	result, err := h.stock.Adjust(c.Request.Context(), appinventory.AdjustStockCommand{
		TenantID:    h.TenantID(c),
		ProductID:   productID,
		Mode:        appinventory.AdjustMode(req.Mode),
		Quantity:    req.Quantity,
		Notes:       req.Notes,
		PerformedBy: h.UserID(c),
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.OK(c, result)
}

// History handles GET /inventory/products/:id/transactions
func (h *InventoryHandler) History(c *gin.Context) {
	productID, ok := h.ParseUUIDParam(c, "id")
	if !ok {
		return
	}
	var q dto.PageQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		h.BadRequest(c, err)
		return
	}

	result, err := h.stock.History(c.Request.Context(), h.TenantID(c), productID, h.BuildFilter(q))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.OK(c, result)
}

// List handles GET /inventory/transactions
func (h *InventoryHandler) List(c *gin.Context) {
	var q dto.PageQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		h.BadRequest(c, err)
		return
	}

	filter := h.BuildFilter(q)
	if txType := c.Query("type"); txType != "" {
		if !inventory.TransactionType(txType).IsValid() {
			h.BadRequest(c, shared.NewDomainError("VALIDATION_ERROR", "Unknown transaction type"))
			return
		}
		filter.Filters["type"] = txType
	}

	result, err := h.stock.List(c.Request.Context(), h.TenantID(c), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.OK(c, result)
}
